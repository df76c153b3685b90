// auction-bid submits Alice's or Bob's sealed bid to the computation servers.
package main

import (
	"os"

	auctioncli "github.com/sealedbid/sealedbid/internal/auction-cli"
)

func main() {
	if err := auctioncli.BidCLI().Run(os.Args); err != nil {
		os.Exit(1)
	}
}

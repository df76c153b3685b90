// auction-result reveals the winner of the auction and the winning bid.
package main

import (
	"os"

	auctioncli "github.com/sealedbid/sealedbid/internal/auction-cli"
)

func main() {
	if err := auctioncli.ResultCLI().Run(os.Args); err != nil {
		os.Exit(1)
	}
}

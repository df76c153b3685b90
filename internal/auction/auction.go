// Package auction drives the sealed-bid auction programs on the quorum.
package auction

import (
	"context"
	"errors"
	"fmt"

	"github.com/sealedbid/sealedbid/common/log"
	"github.com/sealedbid/sealedbid/common/value"
	"github.com/sealedbid/sealedbid/internal/quorum"
)

// ResultProgram resolves the auction from the bids stored on the quorum.
const ResultProgram = "charlie_result.sb"

// Names of the values exchanged with the auction programs.
const (
	BidArgument    = "bid"
	AliceWonResult = "aliceWon"
	WinningResult  = "winningBid"
)

// ErrNoBidder is returned when exactly one bidder has not been selected.
var ErrNoBidder = errors.New("exactly one of alice or bob must be selected")

// Runner runs a program on the quorum and returns the results it agrees on.
type Runner interface {
	RunCode(ctx context.Context, program string, args *value.Map) (*value.Map, error)
}

// Bidder is one of the two auction participants.
type Bidder int

const (
	Alice Bidder = iota
	Bob
)

// ParseBidder picks the bidder from the two command line switches.
func ParseBidder(alice, bob bool) (Bidder, error) {
	switch {
	case alice && !bob:
		return Alice, nil
	case bob && !alice:
		return Bob, nil
	default:
		return 0, ErrNoBidder
	}
}

// Program returns the identifier of the program storing the bidder's bid.
func (b Bidder) Program() string {
	if b == Alice {
		return "alice_bid.sb"
	}
	return "bob_bid.sb"
}

func (b Bidder) String() string {
	if b == Alice {
		return "Alice"
	}
	return "Bob"
}

// Bid secret-shares amount as b's bid. The program's results are ignored.
func Bid(ctx context.Context, r Runner, b Bidder, amount uint64) error {
	l := log.FromContextOrDefault(ctx)
	args := value.NewMap()
	if err := args.Insert(value.NewUint64(BidArgument, value.SharedDomain, amount)); err != nil {
		return err
	}
	l.Debugw("submitting bid", "bidder", b.String(), "program", b.Program())
	if _, err := r.RunCode(ctx, b.Program(), args); err != nil {
		return fmt.Errorf("submitting %s's bid: %w", b, err)
	}
	l.Infow("bid submitted", "bidder", b.String())
	return nil
}

// Outcome is the revealed result of the auction.
type Outcome struct {
	AliceWon   bool   `json:"aliceWon"`
	WinningBid uint64 `json:"winningBid"`
}

// Winner returns the winning bidder.
func (o Outcome) Winner() Bidder {
	if o.AliceWon {
		return Alice
	}
	return Bob
}

func (o Outcome) String() string {
	return fmt.Sprintf("The winner is %s. With a bid of %d.", o.Winner(), o.WinningBid)
}

// Result runs the result program and decodes the revealed outcome.
func Result(ctx context.Context, r Runner) (Outcome, error) {
	out, err := r.RunCode(ctx, ResultProgram, value.NewMap())
	if err != nil {
		return Outcome{}, fmt.Errorf("resolving auction: %w", err)
	}
	won, err := out.Bool(AliceWonResult)
	if err != nil {
		return Outcome{}, fmt.Errorf("decoding %s: %w", AliceWonResult, err)
	}
	bid, err := out.Uint64(WinningResult)
	if err != nil {
		return Outcome{}, fmt.Errorf("decoding %s: %w", WinningResult, err)
	}
	o := Outcome{AliceWon: won, WinningBid: bid}
	log.FromContextOrDefault(ctx).Infow("auction resolved", "winner", o.Winner().String(), "winningBid", o.WinningBid)
	return o, nil
}

// LogFailure logs err, one line per failed server when it comes from the
// quorum.
func LogFailure(l log.Logger, err error) {
	werr, ok := quorum.AsWorkerError(err)
	if !ok {
		l.Errorw("auction failed", "err", err)
		return
	}
	for _, i := range werr.Failed() {
		kv := []interface{}{"server", i, "err", werr.Err(i)}
		var merr *quorum.MemberError
		if errors.As(werr.Err(i), &merr) {
			kv = append(kv, "addr", merr.Address)
			kv[3] = merr.Err
		}
		l.Errorw(fmt.Sprintf("Exception from server %d", i), kv...)
	}
}

package quorum

import (
	"fmt"

	"github.com/sealedbid/sealedbid/common/value"
)

// Program is a plaintext stand-in for a precompiled secure program. It runs
// against the member's own state.
type Program func(s *State, args *value.Map) (*value.Map, error)

// State is what the auction programs remember between runs on one member.
type State struct {
	AliceBid, BobBid *uint64
}

// Programs maps program identifiers to their stand-ins.
var Programs = map[string]Program{
	"alice_bid.sb":      storeBid(func(s *State) **uint64 { return &s.AliceBid }),
	"bob_bid.sb":        storeBid(func(s *State) **uint64 { return &s.BobBid }),
	"charlie_result.sb": resolve,
}

func storeBid(slot func(s *State) **uint64) Program {
	return func(s *State, args *value.Map) (*value.Map, error) {
		v, err := args.Get("bid")
		if err != nil {
			return nil, fmt.Errorf("argument mismatch: %w", err)
		}
		if v.Domain() != value.SharedDomain {
			return nil, fmt.Errorf("argument %q is in domain %s, want %s", v.Name(), v.Domain(), value.SharedDomain)
		}
		bid, err := v.Uint64()
		if err != nil {
			return nil, fmt.Errorf("argument mismatch: %w", err)
		}
		*slot(s) = &bid
		return value.NewMap(), nil
	}
}

// resolve reveals whether Alice won and the winning bid. Bob wins ties, and a
// missing bid counts as zero.
func resolve(s *State, _ *value.Map) (*value.Map, error) {
	var alice, bob uint64
	if s.AliceBid != nil {
		alice = *s.AliceBid
	}
	if s.BobBid != nil {
		bob = *s.BobBid
	}
	aliceWon := alice > bob
	winning := bob
	if aliceWon {
		winning = alice
	}
	out := value.NewMap()
	if err := out.Insert(value.NewBool("aliceWon", value.SharedDomain, aliceWon)); err != nil {
		return nil, err
	}
	if err := out.Insert(value.NewUint64("winningBid", value.SharedDomain, winning)); err != nil {
		return nil, err
	}
	return out, nil
}

package auction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/sealedbid/sealedbid/common/log"
	"github.com/sealedbid/sealedbid/common/value"
	"github.com/sealedbid/sealedbid/internal/quorum"
)

type call struct {
	program string
	args    *value.Map
}

type fakeRunner struct {
	calls   []call
	results *value.Map
	err     error
}

func (f *fakeRunner) RunCode(_ context.Context, program string, args *value.Map) (*value.Map, error) {
	f.calls = append(f.calls, call{program, args})
	if f.err != nil {
		return nil, f.err
	}
	if f.results == nil {
		return value.NewMap(), nil
	}
	return f.results, nil
}

func TestParseBidder(t *testing.T) {
	b, err := ParseBidder(true, false)
	require.NoError(t, err)
	require.Equal(t, Alice, b)
	require.Equal(t, "alice_bid.sb", b.Program())

	b, err = ParseBidder(false, true)
	require.NoError(t, err)
	require.Equal(t, Bob, b)
	require.Equal(t, "bob_bid.sb", b.Program())

	_, err = ParseBidder(true, true)
	require.ErrorIs(t, err, ErrNoBidder)
	_, err = ParseBidder(false, false)
	require.ErrorIs(t, err, ErrNoBidder)
}

func TestBid(t *testing.T) {
	r := &fakeRunner{}
	require.NoError(t, Bid(context.Background(), r, Bob, 300))
	require.Len(t, r.calls, 1)
	require.Equal(t, "bob_bid.sb", r.calls[0].program)

	v, err := r.calls[0].args.Get(BidArgument)
	require.NoError(t, err)
	require.Equal(t, value.SharedDomain, v.Domain())
	require.Equal(t, value.Uint64, v.Type())
	amount, err := v.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(300), amount)

	r.err = errors.New("boom")
	require.ErrorIs(t, Bid(context.Background(), r, Alice, 1), r.err)
}

func TestResult(t *testing.T) {
	results := value.NewMap()
	require.NoError(t, results.Insert(value.NewBool(AliceWonResult, value.SharedDomain, true)))
	require.NoError(t, results.Insert(value.NewUint64(WinningResult, value.SharedDomain, 500)))
	r := &fakeRunner{results: results}

	o, err := Result(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, Outcome{AliceWon: true, WinningBid: 500}, o)
	require.Equal(t, Alice, o.Winner())
	require.Equal(t, "The winner is Alice. With a bid of 500.", o.String())
	require.Equal(t, ResultProgram, r.calls[0].program)
	require.Equal(t, 0, r.calls[0].args.Len())

	require.Equal(t, "The winner is Bob. With a bid of 0.", Outcome{}.String())
}

func TestResultDecodeErrors(t *testing.T) {
	missing := value.NewMap()
	require.NoError(t, missing.Insert(value.NewBool(AliceWonResult, value.SharedDomain, true)))
	_, err := Result(context.Background(), &fakeRunner{results: missing})
	require.ErrorIs(t, err, value.ErrNameNotFound)

	wrongType := value.NewMap()
	require.NoError(t, wrongType.Insert(value.NewUint8(AliceWonResult, value.SharedDomain, 1)))
	require.NoError(t, wrongType.Insert(value.NewUint64(WinningResult, value.SharedDomain, 1)))
	_, err = Result(context.Background(), &fakeRunner{results: wrongType})
	require.ErrorIs(t, err, value.ErrTypeMismatch)
}

func TestLogFailure(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(zapcore.AddSync(&buf), log.InfoLevel, true)

	werr := quorum.NewWorkerError([]error{
		nil,
		&quorum.MemberError{Index: 1, Address: "10.0.0.2:30000", Err: errors.New("disconnected")},
		quorum.ErrInconsistentResult,
	})
	LogFailure(l, werr)
	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	require.Equal(t, "Exception from server 1", entries[0]["msg"])
	require.Equal(t, "10.0.0.2:30000", entries[0]["addr"])
	require.Equal(t, "disconnected", entries[0]["err"])
	require.Equal(t, "Exception from server 2", entries[1]["msg"])

	buf.Reset()
	LogFailure(l, errors.New("no configuration"))
	entries = decodeLines(t, &buf)
	require.Len(t, entries, 1)
	require.Equal(t, "auction failed", entries[0]["msg"])
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := log.ToContext(context.Background(), log.New(zapcore.AddSync(&buf), log.InfoLevel, true))

	require.NoError(t, Bid(ctx, &fakeRunner{}, Alice, 987654))
	require.NotContains(t, buf.String(), "987654")

	results := value.NewMap()
	require.NoError(t, results.Insert(value.NewBool(AliceWonResult, value.SharedDomain, false)))
	require.NoError(t, results.Insert(value.NewUint64(WinningResult, value.SharedDomain, 42)))
	_, err := Result(ctx, &fakeRunner{results: results})
	require.NoError(t, err)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	require.Equal(t, "bid submitted", entries[0]["msg"])
	require.Equal(t, "Alice", entries[0]["bidder"])
	require.Equal(t, "auction resolved", entries[1]["msg"])
	require.Equal(t, "Bob", entries[1]["winner"])
	require.Equal(t, float64(42), entries[1]["winningBid"])
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	var out []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var entry map[string]interface{}
		require.NoError(t, dec.Decode(&entry))
		out = append(out, entry)
	}
	return out
}

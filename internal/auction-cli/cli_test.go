package auctioncli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	json "github.com/nikkolasg/hexjson"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/sealedbid/sealedbid/internal/auction"
	"github.com/sealedbid/sealedbid/internal/quorum"
	testquorum "github.com/sealedbid/sealedbid/internal/test/quorum"
)

type harness struct {
	q    *testquorum.Quorum
	conf string
	dir  string
}

func newHarness(t *testing.T, n int) *harness {
	dir := t.TempDir()
	q := testquorum.New(t, n)
	return &harness{
		q:    q,
		conf: q.WriteConfig(t, dir),
		dir:  dir,
	}
}

// bid runs auction-bid and returns its standard and error outputs.
func (h *harness) bid(args ...string) (string, string, error) {
	full := append([]string{"auction-bid", "--conf", h.conf,
		"--log-file", filepath.Join(h.dir, "auction-bid.log")}, args...)
	return run(BidCLI(), full)
}

// result runs auction-result and returns its standard and error outputs.
func (h *harness) result(args ...string) (string, string, error) {
	full := append([]string{"auction-result", "--conf", h.conf,
		"--log-file", filepath.Join(h.dir, "auction-result.log")}, args...)
	return run(ResultCLI(), full)
}

func run(app *cli.App, args []string) (string, string, error) {
	var out, errOut syncBuffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(args)
	return out.String(), errOut.String(), err
}

// syncBuffer is shared by the logger and the progress spinner.
type syncBuffer struct {
	sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.Lock()
	defer b.Unlock()
	return b.buf.String()
}

func TestAuctionAliceWins(t *testing.T) {
	h := newHarness(t, 3)

	_, _, err := h.bid("--alice", "--bid", "500")
	require.NoError(t, err)
	_, _, err = h.bid("--bob", "--bid", "300")
	require.NoError(t, err)

	out, _, err := h.result()
	require.NoError(t, err)
	require.Equal(t, "The winner is Alice. With a bid of 500.\n", out)

	logs, err := os.ReadFile(filepath.Join(h.dir, "auction-result.log"))
	require.NoError(t, err)
	require.Contains(t, string(logs), "auction resolved")
}

func TestAuctionBobWins(t *testing.T) {
	h := newHarness(t, 3)

	_, _, err := h.bid("-a", "--bid", "100")
	require.NoError(t, err)
	_, _, err = h.bid("-b", "--bid", "900")
	require.NoError(t, err)

	out, _, err := h.result()
	require.NoError(t, err)
	require.Equal(t, "The winner is Bob. With a bid of 900.\n", out)
}

func TestAuctionTie(t *testing.T) {
	h := newHarness(t, 3)

	_, _, err := h.bid("--alice", "--bid", "400")
	require.NoError(t, err)
	_, _, err = h.bid("--bob", "--bid", "400")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		out, _, err := h.result()
		require.NoError(t, err)
		require.Equal(t, "The winner is Bob. With a bid of 400.\n", out)
	}
}

func TestResultBeforeBids(t *testing.T) {
	h := newHarness(t, 3)

	out, _, err := h.result("--json")
	require.NoError(t, err)
	var got jsonOutcome
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, jsonOutcome{Winner: "Bob", AliceWon: false, WinningBid: 0}, got)
}

func TestResultJSON(t *testing.T) {
	h := newHarness(t, 2)

	_, _, err := h.bid("--alice", "--bid", "18446744073709551615")
	require.NoError(t, err)

	out, _, err := h.result("--json")
	require.NoError(t, err)
	var got jsonOutcome
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.True(t, got.AliceWon)
	require.Equal(t, "Alice", got.Winner)
	require.Equal(t, uint64(18446744073709551615), got.WinningBid)
}

func TestBidUsageErrors(t *testing.T) {
	h := newHarness(t, 1)

	_, errOut, err := h.bid("--alice", "--bob", "--bid", "1")
	require.ErrorIs(t, err, auction.ErrNoBidder)
	require.Contains(t, errOut, "auction-bid")

	_, _, err = h.bid("--bid", "1")
	require.ErrorIs(t, err, auction.ErrNoBidder)

	_, _, err = h.bid("--alice")
	require.ErrorIs(t, err, errMissingBid)

	// none of these reached the servers
	require.Empty(t, h.q.Members[0].Calls())
}

func TestBidMemberFailure(t *testing.T) {
	h := newHarness(t, 3)
	h.q.Members[1].FailWith(errors.New("out of memory"))

	_, _, err := h.bid("--bob", "--bid", "10")
	werr, ok := quorum.AsWorkerError(err)
	require.True(t, ok)
	require.Equal(t, []int{1}, werr.Failed())

	logs, rerr := os.ReadFile(filepath.Join(h.dir, "auction-bid.log"))
	require.NoError(t, rerr)
	require.Contains(t, string(logs), "Exception from server 1")
	require.NotContains(t, string(logs), "bid submitted")

	out, _, err := h.result()
	require.Error(t, err)
	require.Empty(t, out)
}

func TestMissingConfig(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(ResultCLI(), []string{"auction-result",
		"--conf", filepath.Join(dir, "missing.toml"), "--log-file", ""})
	require.Error(t, err)
}

func TestProgressAndVerbose(t *testing.T) {
	h := newHarness(t, 2)

	out, errOut, err := h.result("--progress", "--verbose")
	require.NoError(t, err)
	require.Equal(t, "The winner is Bob. With a bid of 0.\n", out)
	require.Contains(t, errOut, "dispatching program")
}

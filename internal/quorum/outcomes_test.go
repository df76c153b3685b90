package quorum

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealedbid/sealedbid/common/value"
)

func results(t *testing.T, won bool, bid uint64) *value.Map {
	m := value.NewMap()
	require.NoError(t, m.Insert(value.NewBool("aliceWon", value.SharedDomain, won)))
	require.NoError(t, m.Insert(value.NewUint64("winningBid", value.SharedDomain, bid)))
	return m
}

func TestOutcomesAllSuccess(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			o := NewOutcomes(n)
			for i := 0; i < n; i++ {
				o.Success(i, results(t, true, 500))
			}
			m, err := o.Result()
			require.NoError(t, err)
			require.True(t, m.Equal(results(t, true, 500)))
			require.Equal(t, 0, o.Failures())
		})
	}
}

func TestOutcomesOneFailure(t *testing.T) {
	const n = 3
	for failing := 0; failing < n; failing++ {
		t.Run(fmt.Sprintf("failing=%d", failing), func(t *testing.T) {
			o := NewOutcomes(n)
			cause := errors.New("connection reset")
			for i := 0; i < n; i++ {
				if i == failing {
					o.Failure(i, &MemberError{Index: i, Address: "127.0.0.1:1", Err: cause})
					continue
				}
				o.Success(i, results(t, false, 300))
			}

			m, err := o.Result()
			require.Nil(t, m)
			werr, ok := AsWorkerError(err)
			require.True(t, ok)
			require.Equal(t, n, werr.NumWorkers())
			require.Equal(t, []int{failing}, werr.Failed())
			for i := 0; i < n; i++ {
				if i == failing {
					require.ErrorIs(t, werr.Err(i), cause)
				} else {
					require.NoError(t, werr.Err(i))
				}
			}
			require.ErrorIs(t, err, cause)
			var merr *MemberError
			require.ErrorAs(t, err, &merr)
			require.Equal(t, failing, merr.Index)
		})
	}
}

func TestOutcomesInconsistent(t *testing.T) {
	o := NewOutcomes(3)
	o.Success(0, results(t, true, 500))
	o.Success(1, results(t, false, 500))
	o.Success(2, results(t, true, 500))

	m, err := o.Result()
	require.Nil(t, m)
	werr, ok := AsWorkerError(err)
	require.True(t, ok)
	require.Equal(t, []int{1}, werr.Failed())
	require.ErrorIs(t, werr.Err(1), ErrInconsistentResult)

	// an even split blames the group not holding member 0
	o = NewOutcomes(2)
	o.Success(1, results(t, true, 1))
	o.Success(0, results(t, true, 2))
	_, err = o.Result()
	werr, ok = AsWorkerError(err)
	require.True(t, ok)
	require.Equal(t, []int{1}, werr.Failed())
}

func TestOutcomesPending(t *testing.T) {
	o := NewOutcomes(3)
	o.Success(0, results(t, true, 1))
	o.Failure(2, nil)

	_, err := o.Result()
	werr, ok := AsWorkerError(err)
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, werr.Failed())
	require.ErrorIs(t, werr.Err(1), ErrNoOutcome)
	require.ErrorIs(t, werr.Err(2), ErrNoOutcome)
}

func TestOutcomesOrderIndependent(t *testing.T) {
	const n = 16
	shared := results(t, true, 7)
	for round := 0; round < 10; round++ {
		o := NewOutcomes(n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if i%5 == 0 {
					o.Failure(i, fmt.Errorf("failure %d", i))
					return
				}
				o.Success(i, shared)
			}(i)
		}
		wg.Wait()
		_, err := o.Result()
		werr, ok := AsWorkerError(err)
		require.True(t, ok)
		require.Equal(t, []int{0, 5, 10, 15}, werr.Failed())
	}
}

func TestWorkerErrorMessage(t *testing.T) {
	werr := NewWorkerError([]error{
		nil,
		&MemberError{Index: 1, Address: "10.0.0.2:30000", Err: errors.New("disconnected")},
		&MemberError{Index: 2, Err: errors.New("out of memory")},
	})
	msg := werr.Error()
	require.Contains(t, msg, "2 of 3 servers failed")
	require.Contains(t, msg, "server 1 (10.0.0.2:30000): disconnected")
	require.Contains(t, msg, "server 2: out of memory")
	require.Len(t, werr.Errors(), 3)
	require.Nil(t, werr.Err(7))
}

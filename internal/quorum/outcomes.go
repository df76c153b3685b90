// Package quorum collects the outcome of one dispatch to every member of the
// computation quorum and reduces them to a single result: the output map all
// members agree on, or a WorkerError carrying each member's failure.
package quorum

import (
	"bytes"
	"sync"

	"github.com/sealedbid/sealedbid/common/value"
)

// Outcomes holds one slot per quorum member. It is safe for concurrent use
// and the order in which slots are recorded does not matter.
type Outcomes struct {
	mu      sync.Mutex
	results []*value.Map
	errs    []error
	done    []bool
}

// NewOutcomes returns n pending slots.
func NewOutcomes(n int) *Outcomes {
	return &Outcomes{
		results: make([]*value.Map, n),
		errs:    make([]error, n),
		done:    make([]bool, n),
	}
}

// Len returns the number of slots.
func (o *Outcomes) Len() int {
	return len(o.done)
}

// Success records the results returned by member i.
func (o *Outcomes) Success(i int, m *value.Map) {
	if m == nil {
		m = value.NewMap()
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results[i] = m
	o.errs[i] = nil
	o.done[i] = true
}

// Failure records the failure of member i. A nil err is recorded as
// ErrNoOutcome so that a failed slot is never empty.
func (o *Outcomes) Failure(i int, err error) {
	if err == nil {
		err = ErrNoOutcome
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results[i] = nil
	o.errs[i] = err
	o.done[i] = true
}

// Failures returns the number of slots recorded as failed so far.
func (o *Outcomes) Failures() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for i := range o.errs {
		if o.done[i] && o.errs[i] != nil {
			n++
		}
	}
	return n
}

// Result reduces the slots. Pending slots are failed with ErrNoOutcome first.
// It returns the shared results only when every member succeeded with equal
// results; otherwise it returns a *WorkerError and no map.
func (o *Outcomes) Result() (*value.Map, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.done) == 0 {
		return nil, NewWorkerError(nil)
	}

	failed := false
	for i := range o.done {
		if !o.done[i] {
			o.errs[i] = ErrNoOutcome
			o.done[i] = true
		}
		if o.errs[i] != nil {
			failed = true
		}
	}
	if failed {
		return nil, NewWorkerError(o.errs)
	}

	ref := o.agreement()
	errs := make([]error, len(o.results))
	inconsistent := false
	for i, m := range o.results {
		if !bytes.Equal(m.Digest(), ref) {
			errs[i] = ErrInconsistentResult
			inconsistent = true
		}
	}
	if inconsistent {
		return nil, NewWorkerError(errs)
	}
	return o.results[0], nil
}

// agreement returns the digest shared by the largest group of members, ties
// going to the group holding the lowest member index.
func (o *Outcomes) agreement() []byte {
	digests := make([][]byte, len(o.results))
	for i, m := range o.results {
		digests[i] = m.Digest()
	}
	best, bestCount := 0, 0
	for i := range digests {
		count := 0
		for j := range digests {
			if bytes.Equal(digests[i], digests[j]) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return digests[best]
}

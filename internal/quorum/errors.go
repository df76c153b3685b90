package quorum

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrNoOutcome fills the slot of a member whose outcome was never
	// recorded.
	ErrNoOutcome = errors.New("no outcome recorded for server")
	// ErrInconsistentResult marks a member whose results differ from the
	// ones agreed on by the rest of the quorum.
	ErrInconsistentResult = errors.New("server results differ from the rest of the quorum")
)

// MemberError labels the failure of one quorum member with its position and
// address.
type MemberError struct {
	Index   int
	Address string
	Err     error
}

func (e *MemberError) Error() string {
	if e.Address == "" {
		return fmt.Sprintf("server %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("server %d (%s): %v", e.Index, e.Address, e.Err)
}

func (e *MemberError) Unwrap() error {
	return e.Err
}

// WorkerError is the failure of a single dispatch to the quorum. It holds one
// slot per member, in member order; a nil slot means that member did not
// fail.
type WorkerError struct {
	errs []error
}

// NewWorkerError wraps the given per member slots. The slice is copied.
func NewWorkerError(errs []error) *WorkerError {
	return &WorkerError{errs: append([]error(nil), errs...)}
}

// NumWorkers returns the number of slots, the quorum size.
func (e *WorkerError) NumWorkers() int {
	return len(e.errs)
}

// Err returns the failure of member i, nil if it did not fail.
func (e *WorkerError) Err(i int) error {
	if i < 0 || i >= len(e.errs) {
		return nil
	}
	return e.errs[i]
}

// Errors returns a copy of all slots.
func (e *WorkerError) Errors() []error {
	return append([]error(nil), e.errs...)
}

// Failed returns the indexes of the members that failed.
func (e *WorkerError) Failed() []int {
	var out []int
	for i, err := range e.errs {
		if err != nil {
			out = append(out, i)
		}
	}
	return out
}

func (e *WorkerError) Error() string {
	var merr *multierror.Error
	for _, err := range e.errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr == nil {
		return "quorum failure without a failing server"
	}
	merr.ErrorFormat = func(es []error) string {
		s := fmt.Sprintf("%d of %d servers failed:", len(es), len(e.errs))
		for _, err := range es {
			s += "\n\t* " + err.Error()
		}
		return s
	}
	return merr.Error()
}

// Unwrap exposes the populated slots to errors.Is and errors.As.
func (e *WorkerError) Unwrap() []error {
	var out []error
	for _, err := range e.errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// AsWorkerError returns the WorkerError in err's chain, if any.
func AsWorkerError(err error) (*WorkerError, bool) {
	var werr *WorkerError
	if errors.As(err, &werr) {
		return werr, true
	}
	return nil, false
}

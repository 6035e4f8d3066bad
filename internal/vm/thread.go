package vm

import "fmt"

// RuntimeError is a fully-formed interpreted-program error value. It is what
// sits in a thread's pending-error slot while an error is in flight and not
// yet handled by program code.
type RuntimeError struct {
	Kind    string
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ThreadState is the per-thread execution state of the interpreter. It is
// owned by exactly one goroutine; nothing here is safe for concurrent use.
//
// The pending error is modeled as an explicit movable value so that
// instrumentation can fetch, stash, and restore it around its own work.
// ThreadState satisfies probes.Thread.
type ThreadState struct {
	pending error
}

// NewThreadState returns a thread state with no error pending.
func NewThreadState() *ThreadState {
	return &ThreadState{}
}

// FetchPendingError moves the pending error out, leaving none pending.
func (ts *ThreadState) FetchPendingError() error {
	err := ts.pending
	ts.pending = nil
	return err
}

// RestorePendingError reinstates a previously fetched value verbatim.
func (ts *ThreadState) RestorePendingError(err error) {
	ts.pending = err
}

// SetPendingError records err as the thread's in-flight error, replacing any
// previous one.
func (ts *ThreadState) SetPendingError(err error) {
	ts.pending = err
}

// PendingError returns the in-flight error without clearing it.
func (ts *ThreadState) PendingError() error {
	return ts.pending
}

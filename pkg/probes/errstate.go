//go:build !noprobes
// +build !noprobes

package probes

// errStateGuard preserves the calling thread's pending error state across a
// unit of work that may itself set one. Acquiring the guard moves the state
// out of the thread (fetch-and-clear); restore puts the exact value back and
// throws away anything the guarded work left pending.
//
// Guards nest: each dispatcher invocation holds its own saved value on its
// own stack, so recursive firings restore in strict LIFO order and never
// touch another invocation's snapshot.
type errStateGuard struct {
	t     Thread
	saved error
}

func preservePendingError(t Thread) errStateGuard {
	return errStateGuard{t: t, saved: t.FetchPendingError()}
}

// restore discards whatever the guarded work set and reinstates the saved
// state. It must run on every exit path of the guarded work.
func (g errStateGuard) restore() {
	g.t.FetchPendingError()
	g.t.RestorePendingError(g.saved)
}

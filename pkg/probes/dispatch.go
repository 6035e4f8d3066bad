//go:build !noprobes
// +build !noprobes

package probes

// OnFunctionEntry is called by the interpreter's dispatch loop at the top of
// every interpreted call. With no consumer attached it costs one atomic
// load. With a consumer attached it captures frame metadata under an
// error-state guard, fires the entry probe after the guard has restored the
// thread's state, and releases the metadata.
//
// Safe at arbitrary call depth and under recursion: everything it touches
// beyond the probe point's read-only handler snapshot is scoped to this
// invocation's stack.
func OnFunctionEntry(t Thread, f Frame) {
	if !FunctionEntry.Enabled() {
		return
	}
	fmi := captureFrameMarker(t, f)
	FunctionEntry.fire(fmi.filename, fmi.funcname, fmi.line, f)
	fmi.release()
}

// OnFunctionReturn is the mirror hook, called as every interpreted call
// unwinds. The interpreter calls it on error unwinds too, so a pending
// error is the normal case here, not the exception; the guard keeps it
// intact.
func OnFunctionReturn(t Thread, f Frame) {
	if !FunctionReturn.Enabled() {
		return
	}
	fmi := captureFrameMarker(t, f)
	FunctionReturn.fire(fmi.filename, fmi.funcname, fmi.line, f)
	fmi.release()
}

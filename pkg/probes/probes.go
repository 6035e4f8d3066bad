// Package probes implements the function-boundary instrumentation points of
// the reef interpreter.
//
// The interpreter's dispatch loop calls OnFunctionEntry and OnFunctionReturn
// around every interpreted call. When a consumer is attached to the matching
// probe point, the hook captures minimal frame metadata (encoded source file
// name, encoded function name, current line) and fires the probe with it.
// When nothing is attached the hooks reduce to a single atomic load.
//
// Metadata capture may allocate and may fail partway through (string
// re-encoding can reject its input). Neither outcome is ever visible to the
// interpreted program: any pending error on the calling thread is saved
// before capture and restored, unchanged, before the probe fires, and
// capture failures degrade to nil fields rather than errors.
//
// Building with the "noprobes" tag compiles the whole subsystem out: the
// hooks become empty functions, the enabled predicates become constant
// false, and no capture or registry code is present in the binary.
package probes

import "errors"

// Probe point names, as seen by attaching consumers.
const (
	FunctionEntryName  = "function-entry"
	FunctionReturnName = "function-return"
)

// ErrProbesDisabled is returned by Attach in binaries built with the
// "noprobes" tag.
var ErrProbesDisabled = errors.New("probes: compiled out (noprobes build)")

// Frame is the read-only view of one in-progress interpreted call. It is the
// only part of the interpreter's frame the probe subsystem may touch.
//
// CurrentLine resolves the frame's current instruction to a source line. For
// a frame that has not executed an instruction yet this is the function's
// first line. A frame with no line information reports -1.
type Frame interface {
	Filename() string
	FuncName() string
	CurrentLine() int
}

// Thread exposes the calling thread's pending error state as a movable
// value. FetchPendingError moves the state out, leaving none pending;
// RestorePendingError puts a previously fetched value back verbatim.
// SetPendingError is what the capture path's own failures use.
type Thread interface {
	FetchPendingError() error
	RestorePendingError(err error)
	SetPendingError(err error)
}

// Handler receives one probe firing.
//
// filename and funcname are NUL-terminated byte sequences, or nil when
// encoding the corresponding string failed. They are only valid for the
// duration of the call; handlers that need to keep them must copy.
// line is -1 when the current line could not be resolved.
type Handler func(filename, funcname []byte, line int, frame Frame)

// CString returns the string contents of a NUL-terminated byte sequence as
// delivered to a Handler. It returns "" for nil.
func CString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}

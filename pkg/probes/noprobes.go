//go:build noprobes
// +build noprobes

package probes

// Stand-ins for binaries built with the "noprobes" tag. The dispatcher, the
// capture path, and the registry are not compiled in; the hooks are empty
// and the enabled predicates are constant false, so the interpreter's
// dispatch loop pays nothing for instrumentation it cannot use.

// ProbePoint is an inert stand-in; nothing can attach to it.
type ProbePoint struct {
	name string
}

// FunctionEntry is the inert entry probe point.
var FunctionEntry = &ProbePoint{name: FunctionEntryName}

// FunctionReturn is the inert return probe point.
var FunctionReturn = &ProbePoint{name: FunctionReturnName}

// Name returns the probe point's wire name.
func (p *ProbePoint) Name() string { return p.name }

// Enabled always reports false in a noprobes build.
func (p *ProbePoint) Enabled() bool { return false }

// Attach always fails with ErrProbesDisabled in a noprobes build.
func (p *ProbePoint) Attach(Handler) (func(), error) {
	return nil, ErrProbesDisabled
}

// OnFunctionEntry does nothing in a noprobes build.
func OnFunctionEntry(Thread, Frame) {}

// OnFunctionReturn does nothing in a noprobes build.
func OnFunctionReturn(Thread, Frame) {}

// FunctionEntryEnabled always reports false in a noprobes build.
func FunctionEntryEnabled() bool { return false }

// FunctionReturnEnabled always reports false in a noprobes build.
func FunctionReturnEnabled() bool { return false }

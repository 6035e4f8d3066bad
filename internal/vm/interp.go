package vm

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reeflang/reef/pkg/probes"
)

// DefaultMaxDepth bounds the interpreter call stack.
const DefaultMaxDepth = 256

// Interp executes a Program on a single thread state, firing the
// function-entry and function-return probes at every call boundary, exactly
// as the dispatch loop of a full interpreter would.
type Interp struct {
	logger   zerolog.Logger
	prog     *Program
	ts       *ThreadState
	maxDepth int
}

// Option configures an Interp.
type Option func(*Interp)

// WithMaxDepth overrides the interpreter's call-depth limit.
func WithMaxDepth(n int) Option {
	return func(in *Interp) { in.maxDepth = n }
}

// NewInterp creates an interpreter for prog with a fresh thread state.
func NewInterp(logger zerolog.Logger, prog *Program, opts ...Option) *Interp {
	in := &Interp{
		logger:   logger.With().Str("component", "vm").Logger(),
		prog:     prog,
		ts:       NewThreadState(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Thread returns the interpreter's thread state.
func (in *Interp) Thread() *ThreadState { return in.ts }

// Run executes the program's entry function. It returns the program's own
// error if one is still pending when the entry function unwinds.
func (in *Interp) Run() error {
	entry, ok := in.prog.Lookup(in.prog.Entry)
	if !ok {
		return fmt.Errorf("entry function %q is not defined", in.prog.Entry)
	}

	in.logger.Debug().Str("entry", entry.Name).Msg("program start")
	in.call(entry, nil, 1)

	if err := in.ts.FetchPendingError(); err != nil {
		in.logger.Debug().Err(err).Msg("program finished with unhandled error")
		return fmt.Errorf("unhandled program error: %w", err)
	}
	in.logger.Debug().Msg("program finished")
	return nil
}

// call runs one function body. The probe hooks bracket the body: entry
// before the first instruction, return on every unwind path. The hot-path
// gate mirrors the hooks' own enabled check so an uninstrumented run pays
// one predicate call per boundary and nothing else.
func (in *Interp) call(fn *FuncDef, back *Frame, depth int) {
	if depth > in.maxDepth {
		in.ts.SetPendingError(&RuntimeError{
			Kind:    "RecursionError",
			Message: fmt.Sprintf("maximum call depth %d exceeded", in.maxDepth),
		})
		return
	}

	f := NewFrame(fn.code, back)

	if probes.FunctionEntryEnabled() {
		probes.OnFunctionEntry(in.ts, f)
	}

	for i, step := range fn.Steps {
		if in.ts.PendingError() != nil && !step.Clear {
			break
		}
		f.setLastInstr(i)

		switch {
		case step.Clear:
			in.ts.FetchPendingError()
		case step.Raise != "":
			in.ts.SetPendingError(&RuntimeError{Kind: "Error", Message: step.Raise})
		case step.Call != "":
			if step.MaxDepth > 0 && depth >= step.MaxDepth {
				continue
			}
			callee, _ := in.prog.Lookup(step.Call)
			in.call(callee, f, depth+1)
		}
	}

	if probes.FunctionReturnEnabled() {
		probes.OnFunctionReturn(in.ts, f)
	}
}

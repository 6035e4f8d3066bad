package vm

// Frame is one in-progress invocation of an interpreted function. The
// interpreter owns its lifecycle; instrumentation only ever sees it through
// the narrow read-only view required by probes.Frame.
type Frame struct {
	code      *CodeObject
	lastInstr int
	back      *Frame
}

// NewFrame creates a frame for code, linked to the calling frame. A fresh
// frame has not executed an instruction yet (lastInstr -1).
func NewFrame(code *CodeObject, back *Frame) *Frame {
	return &Frame{code: code, lastInstr: -1, back: back}
}

// Code returns the frame's code object.
func (f *Frame) Code() *CodeObject { return f.code }

// Back returns the calling frame, or nil for the entry frame.
func (f *Frame) Back() *Frame { return f.back }

// setLastInstr records the offset of the instruction being executed.
func (f *Frame) setLastInstr(offset int) { f.lastInstr = offset }

// Filename returns the source filename of the frame's code object.
func (f *Frame) Filename() string { return f.code.Filename }

// FuncName returns the name of the function being executed.
func (f *Frame) FuncName() string { return f.code.Name }

// CurrentLine resolves the frame's last executed instruction to a source
// line. For a just-started frame this is the function's first line.
func (f *Frame) CurrentLine() int { return f.code.Addr2Line(f.lastInstr) }

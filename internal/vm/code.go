// Package vm is reef's minimal interpreter runtime: code objects, frames,
// per-thread pending-error state, and a call-tree evaluator that drives the
// function-boundary probes in pkg/probes.
package vm

// LineEntry maps the first instruction offset of a source line to that line.
type LineEntry struct {
	Start int
	Line  int
}

// CodeObject is the compiled body of one interpreted function: its source
// filename, its name, and a line table mapping instruction offsets back to
// source lines. Code objects are immutable once built.
type CodeObject struct {
	Filename  string
	Name      string
	FirstLine int

	// lineTable is sorted by Start. Offsets before the first entry resolve
	// to FirstLine.
	lineTable []LineEntry
}

// NewCodeObject builds a code object. Entries must be in increasing Start
// order; NewCodeObject does not re-sort.
func NewCodeObject(filename, name string, firstLine int, table []LineEntry) *CodeObject {
	return &CodeObject{
		Filename:  filename,
		Name:      name,
		FirstLine: firstLine,
		lineTable: table,
	}
}

// Addr2Line resolves an instruction offset to a source line.
//
// A negative offset means the frame has not executed an instruction yet and
// resolves to the function's first line. Returns -1 when the code object
// carries no usable line information.
func (c *CodeObject) Addr2Line(offset int) int {
	line := -1
	if c.FirstLine > 0 {
		line = c.FirstLine
	}
	if offset < 0 {
		return line
	}
	for _, e := range c.lineTable {
		if e.Start > offset {
			break
		}
		line = e.Line
	}
	return line
}

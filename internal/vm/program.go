package vm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one instruction of an interpreted function body. Exactly one of
// the action fields is set per step; instruction offsets are step indices.
type Step struct {
	// Line advances execution to the given source line.
	Line int `yaml:"line,omitempty"`

	// Call invokes the named function. When MaxDepth is set the call is
	// performed only while the current call depth is below it, which is how
	// programs express bounded recursion.
	Call     string `yaml:"call,omitempty"`
	MaxDepth int    `yaml:"maxdepth,omitempty"`

	// Raise leaves a runtime error pending, starting an unwind.
	Raise string `yaml:"raise,omitempty"`

	// Clear discards the pending error, stopping an unwind.
	Clear bool `yaml:"clear,omitempty"`
}

// FuncDef is the source form of one interpreted function.
type FuncDef struct {
	Name      string `yaml:"name"`
	Filename  string `yaml:"filename"`
	FirstLine int    `yaml:"firstline"`
	Steps     []Step `yaml:"steps"`

	code *CodeObject
}

// Program is a loaded interpreted program: function definitions plus the
// entry function name.
type Program struct {
	Entry     string     `yaml:"entry"`
	Functions []*FuncDef `yaml:"functions"`

	byName map[string]*FuncDef
}

// ParseProgram parses and validates a yaml program description and compiles
// each function's line table.
func ParseProgram(data []byte) (*Program, error) {
	var prog Program
	if err := yaml.Unmarshal(data, &prog); err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}

	if len(prog.Functions) == 0 {
		return nil, fmt.Errorf("program defines no functions")
	}

	prog.byName = make(map[string]*FuncDef, len(prog.Functions))
	for _, fn := range prog.Functions {
		if fn.Name == "" {
			return nil, fmt.Errorf("function with empty name")
		}
		if _, dup := prog.byName[fn.Name]; dup {
			return nil, fmt.Errorf("duplicate function %q", fn.Name)
		}
		fn.code = compile(fn)
		prog.byName[fn.Name] = fn
	}

	if prog.Entry == "" {
		prog.Entry = prog.Functions[0].Name
	}
	if _, ok := prog.byName[prog.Entry]; !ok {
		return nil, fmt.Errorf("entry function %q is not defined", prog.Entry)
	}

	for _, fn := range prog.Functions {
		for i, step := range fn.Steps {
			if step.Call == "" {
				continue
			}
			if _, ok := prog.byName[step.Call]; !ok {
				return nil, fmt.Errorf("%s step %d calls undefined function %q", fn.Name, i, step.Call)
			}
		}
	}

	return &prog, nil
}

// LoadProgram reads a program description from a yaml file.
func LoadProgram(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	return ParseProgram(data)
}

// Lookup returns the named function definition.
func (p *Program) Lookup(name string) (*FuncDef, bool) {
	fn, ok := p.byName[name]
	return fn, ok
}

// compile derives a function's code object. Each step occupies one
// instruction offset; line steps contribute line-table entries.
func compile(fn *FuncDef) *CodeObject {
	var table []LineEntry
	for i, step := range fn.Steps {
		if step.Line > 0 {
			table = append(table, LineEntry{Start: i, Line: step.Line})
		}
	}
	return NewCodeObject(fn.Filename, fn.Name, fn.FirstLine, table)
}

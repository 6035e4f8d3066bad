package vm

import (
	"strings"
	"testing"
)

const sampleProgram = `
entry: main
functions:
  - name: main
    filename: demo.reef
    firstline: 1
    steps:
      - line: 2
      - call: pulse
      - line: 4
  - name: pulse
    filename: demo.reef
    firstline: 10
    steps:
      - line: 11
`

func TestParseProgram(t *testing.T) {
	prog, err := ParseProgram([]byte(sampleProgram))
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}

	if prog.Entry != "main" {
		t.Errorf("entry = %q, want main", prog.Entry)
	}

	fn, ok := prog.Lookup("pulse")
	if !ok {
		t.Fatal("pulse not found")
	}
	if fn.code.Filename != "demo.reef" || fn.code.FirstLine != 10 {
		t.Errorf("pulse code = %+v", fn.code)
	}
	if got := fn.code.Addr2Line(0); got != 11 {
		t.Errorf("pulse line at offset 0 = %d, want 11", got)
	}
}

func TestParseProgram_DefaultsEntryToFirstFunction(t *testing.T) {
	prog, err := ParseProgram([]byte(`
functions:
  - name: solo
    filename: s.reef
    firstline: 1
`))
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}
	if prog.Entry != "solo" {
		t.Errorf("entry = %q, want solo", prog.Entry)
	}
}

func TestParseProgram_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"no functions", `entry: main`, "no functions"},
		{"duplicate", `
functions:
  - name: f
  - name: f
`, "duplicate function"},
		{"missing entry", `
entry: ghost
functions:
  - name: f
`, "not defined"},
		{"undefined callee", `
functions:
  - name: f
    steps:
      - call: ghost
`, "undefined function"},
		{"bad yaml", `{{`, "parse program"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProgram([]byte(tc.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

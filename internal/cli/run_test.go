//go:build !noprobes
// +build !noprobes

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoProgram = `
entry: main
functions:
  - name: main
    filename: demo.reef
    firstline: 1
    steps:
      - line: 2
      - call: pulse
      - line: 3
      - call: pulse
  - name: pulse
    filename: demo.reef
    firstline: 10
    steps:
      - line: 11
`

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func execRun(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCmd_StatsReport(t *testing.T) {
	path := writeProgram(t, demoProgram)

	out, err := execRun(t, path, "--sink", "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "FUNCTION")
	assert.Contains(t, out, "pulse")
	assert.Contains(t, out, "main")
}

func TestRunCmd_OTLPFileOutput(t *testing.T) {
	path := writeProgram(t, demoProgram)
	outFile := filepath.Join(t.TempDir(), "trace.json")

	_, err := execRun(t, path, "--sink", "otlp", "--otlp-out", outFile, "--service", "demo-svc")
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "demo-svc")
	assert.Contains(t, string(data), "pulse")
}

func TestRunCmd_UnknownSink(t *testing.T) {
	path := writeProgram(t, demoProgram)

	_, err := execRun(t, path, "--sink", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestRunCmd_ProgramErrorSurfaces(t *testing.T) {
	path := writeProgram(t, `
functions:
  - name: main
    filename: err.reef
    firstline: 1
    steps:
      - raise: boom
`)

	_, err := execRun(t, path, "--sink", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunCmd_MissingProgram(t *testing.T) {
	_, err := execRun(t, filepath.Join(t.TempDir(), "ghost.yaml"))
	require.Error(t, err)
}

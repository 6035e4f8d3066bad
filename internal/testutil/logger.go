// Package testutil provides shared helpers for reef's tests.
package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// NewLogger returns a logger for use in tests. Output is discarded unless
// the REEF_TEST_LOG environment variable is set, in which case log lines go
// to t.Log for interleaving with test output.
func NewLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	if os.Getenv("REEF_TEST_LOG") == "" {
		return zerolog.New(io.Discard)
	}
	return zerolog.New(&testLogWriter{t: t}).With().Timestamp().Logger()
}

// testLogWriter adapts testing.T to io.Writer.
type testLogWriter struct {
	t *testing.T
}

func (w *testLogWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

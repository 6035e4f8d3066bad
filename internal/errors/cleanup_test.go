package errors

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("close failed") }

type okCloser struct{ closed bool }

func (c *okCloser) Close() error {
	c.closed = true
	return nil
}

func TestDeferClose_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	DeferClose(logger, failingCloser{}, "closing widget")

	if !strings.Contains(buf.String(), "closing widget") {
		t.Error("close failure was not logged")
	}
}

func TestDeferClose_QuietOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	c := &okCloser{}

	DeferClose(zerolog.New(&buf), c, "closing widget")

	if !c.closed {
		t.Error("closer was not closed")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestDeferClose_NilCloser(t *testing.T) {
	DeferClose(zerolog.Nop(), nil, "nothing to close")
}

func TestMust(t *testing.T) {
	Must(nil, "fine")

	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(errors.New("boom"), "init")
}

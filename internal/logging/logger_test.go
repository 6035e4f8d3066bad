package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Output: &buf})

	logger.Info().Msg("info message")
	logger.Warn().Msg("warn message")

	output := buf.String()
	if strings.Contains(output, "info message") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message missing at warn level")
	}
}

func TestNew_LevelParsing(t *testing.T) {
	cases := []struct {
		level    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			logger := New(Config{Level: tc.level, Output: &bytes.Buffer{}})
			if logger.GetLevel() != tc.expected {
				t.Errorf("level %q parsed to %v, want %v", tc.level, logger.GetLevel(), tc.expected)
			}
		})
	}
}

func TestNew_NilOutputDoesNotPanic(t *testing.T) {
	logger := New(Config{Level: "info"})
	logger.Info().Msg("goes to stderr")
}

func TestNew_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Pretty: true, Output: &buf})

	logger.Info().Msg("pretty message")

	if !strings.Contains(buf.String(), "pretty message") {
		t.Error("pretty output lost the message")
	}
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Output: &buf}, "probe-cli")

	logger.Info().Msg("tagged")

	if !strings.Contains(buf.String(), "probe-cli") {
		t.Error("component field missing")
	}
}

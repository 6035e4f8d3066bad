// Package sink provides reference consumers for reef's function-boundary
// probes: structured logging, per-function statistics, and OTLP trace
// assembly. Sinks attach their handler methods to the probe points in
// pkg/probes; they run inline with the interpreted program, so handlers stay
// small and never block.
package sink

import (
	"github.com/rs/zerolog"

	"github.com/reeflang/reef/pkg/probes"
)

// LogSink emits one structured log event per probe firing.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a log sink writing through logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "probe-log").Logger()}
}

// OnEntry is a probes.Handler for the function-entry probe.
func (s *LogSink) OnEntry(filename, funcname []byte, line int, _ probes.Frame) {
	s.emit(probes.FunctionEntryName, filename, funcname, line)
}

// OnReturn is a probes.Handler for the function-return probe.
func (s *LogSink) OnReturn(filename, funcname []byte, line int, _ probes.Frame) {
	s.emit(probes.FunctionReturnName, filename, funcname, line)
}

func (s *LogSink) emit(probe string, filename, funcname []byte, line int) {
	s.logger.Info().
		Str("probe", probe).
		Str("file", probes.CString(filename)).
		Str("func", probes.CString(funcname)).
		Int("line", line).
		Msg("probe fired")
}

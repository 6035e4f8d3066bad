package sink

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/ptrace"

	"github.com/reeflang/reef/pkg/probes"
)

// OTLPSink pairs entry and return firings per frame and materializes each
// pair as a span in a pdata trace. Spans nest the way the interpreted call
// stack did; the whole run shares one trace ID.
type OTLPSink struct {
	mu     sync.Mutex
	traces ptrace.Traces
	scope  ptrace.ScopeSpans

	traceID pcommon.TraceID
	stack   []openSpan

	now func() time.Time
}

type openSpan struct {
	frame  probes.Frame
	spanID pcommon.SpanID
	parent pcommon.SpanID
	file   string
	fn     string
	line   int
	start  time.Time
}

// NewOTLPSink creates an OTLP sink reporting as service.
func NewOTLPSink(service string) *OTLPSink {
	traces := ptrace.NewTraces()
	rs := traces.ResourceSpans().AppendEmpty()
	rs.Resource().Attributes().PutStr("service.name", service)
	scope := rs.ScopeSpans().AppendEmpty()
	scope.Scope().SetName("reef.probes")

	return &OTLPSink{
		traces:  traces,
		scope:   scope,
		traceID: pcommon.TraceID(uuid.New()),
		now:     time.Now,
	}
}

// OnEntry is a probes.Handler for the function-entry probe.
func (s *OTLPSink) OnEntry(filename, funcname []byte, line int, frame probes.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var parent pcommon.SpanID
	if n := len(s.stack); n > 0 {
		parent = s.stack[n-1].spanID
	}
	s.stack = append(s.stack, openSpan{
		frame:  frame,
		spanID: newSpanID(),
		parent: parent,
		file:   probes.CString(filename),
		fn:     probes.CString(funcname),
		line:   line,
		start:  s.now(),
	})
}

// OnReturn is a probes.Handler for the function-return probe. A return with
// no matching entry (the consumer attached mid-call) is dropped.
func (s *OTLPSink) OnReturn(_, _ []byte, _ int, frame probes.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].frame != frame {
			continue
		}
		open := s.stack[i]
		s.stack = s.stack[:i]
		s.appendSpan(open)
		return
	}
}

func (s *OTLPSink) appendSpan(open openSpan) {
	span := s.scope.Spans().AppendEmpty()
	span.SetTraceID(s.traceID)
	span.SetSpanID(open.spanID)
	span.SetParentSpanID(open.parent)
	span.SetName(open.fn)
	span.SetKind(ptrace.SpanKindInternal)
	span.SetStartTimestamp(pcommon.NewTimestampFromTime(open.start))
	span.SetEndTimestamp(pcommon.NewTimestampFromTime(s.now()))

	attrs := span.Attributes()
	if open.file != "" {
		attrs.PutStr("code.filepath", open.file)
	}
	if open.fn != "" {
		attrs.PutStr("code.function", open.fn)
	}
	if open.line >= 0 {
		attrs.PutInt("code.lineno", int64(open.line))
	}
}

// SpanCount returns the number of completed spans.
func (s *OTLPSink) SpanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traces.SpanCount()
}

// WriteJSON writes the collected trace as OTLP JSON.
func (s *OTLPSink) WriteJSON(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	marshaler := &ptrace.JSONMarshaler{}
	data, err := marshaler.MarshalTraces(s.traces)
	if err != nil {
		return fmt.Errorf("marshal traces: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write traces: %w", err)
	}
	return nil
}

func newSpanID() pcommon.SpanID {
	u := uuid.New()
	var id pcommon.SpanID
	copy(id[:], u[:8])
	return id
}

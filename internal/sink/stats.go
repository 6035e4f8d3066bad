package sink

import (
	"sort"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/reeflang/reef/pkg/probes"
)

// FuncStats holds entry/return counts for one function.
type FuncStats struct {
	Filename string
	FuncName string
	Entries  uint64
	Returns  uint64
}

// StatsSink aggregates per-function call counts, keyed by an xxh3 hash of
// the file and function names so the per-firing cost is one hash and one
// map lookup.
type StatsSink struct {
	mu    sync.Mutex
	funcs map[uint64]*FuncStats
}

// NewStatsSink creates an empty stats sink.
func NewStatsSink() *StatsSink {
	return &StatsSink{funcs: make(map[uint64]*FuncStats)}
}

// OnEntry is a probes.Handler for the function-entry probe.
func (s *StatsSink) OnEntry(filename, funcname []byte, _ int, _ probes.Frame) {
	s.bump(filename, funcname, true)
}

// OnReturn is a probes.Handler for the function-return probe.
func (s *StatsSink) OnReturn(filename, funcname []byte, _ int, _ probes.Frame) {
	s.bump(filename, funcname, false)
}

func (s *StatsSink) bump(filename, funcname []byte, entry bool) {
	h := xxh3.New()
	_, _ = h.Write(filename) // includes the NUL terminator, a natural separator
	_, _ = h.Write(funcname)
	key := h.Sum64()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.funcs[key]
	if !ok {
		st = &FuncStats{
			Filename: probes.CString(filename),
			FuncName: probes.CString(funcname),
		}
		s.funcs[key] = st
	}
	if entry {
		st.Entries++
	} else {
		st.Returns++
	}
}

// Snapshot returns the current per-function counts, most-called first, name
// as a tiebreaker.
func (s *StatsSink) Snapshot() []FuncStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]FuncStats, 0, len(s.funcs))
	for _, st := range s.funcs {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Entries != out[j].Entries {
			return out[i].Entries > out[j].Entries
		}
		return out[i].FuncName < out[j].FuncName
	})
	return out
}

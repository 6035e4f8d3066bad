//go:build !noprobes
// +build !noprobes

package probes

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ProbePoint is one statically-defined trace point. The two instances,
// FunctionEntry and FunctionReturn, are package-level; consumers attach
// handlers to them and the dispatcher fires them.
//
// The handler list is copy-on-write behind an atomic pointer so that
// Enabled and fire never take the attach lock. Attach and Detach are safe
// to call concurrently with firings; a firing observes the handler list as
// it was when the firing started.
type ProbePoint struct {
	name string

	mu       sync.Mutex // guards attach/detach rewrites
	handlers atomic.Pointer[[]attachment]
}

type attachment struct {
	id uuid.UUID
	h  Handler
}

// FunctionEntry fires at the top of every interpreted call.
var FunctionEntry = &ProbePoint{name: FunctionEntryName}

// FunctionReturn fires as every interpreted call unwinds, including unwinds
// caused by a pending error.
var FunctionReturn = &ProbePoint{name: FunctionReturnName}

// Name returns the probe point's wire name.
func (p *ProbePoint) Name() string { return p.name }

// Enabled reports whether at least one consumer is attached. It is a single
// atomic load and is called on every interpreted call, attached or not.
func (p *ProbePoint) Enabled() bool {
	hs := p.handlers.Load()
	return hs != nil && len(*hs) > 0
}

// Attach registers a handler and returns a detach function. Detach is
// idempotent. The handler starts receiving firings that begin after Attach
// returns.
func (p *ProbePoint) Attach(h Handler) (detach func(), err error) {
	if h == nil {
		return nil, fmt.Errorf("probes: nil handler for %s", p.name)
	}

	id := uuid.New()

	p.mu.Lock()
	defer p.mu.Unlock()

	var cur []attachment
	if hs := p.handlers.Load(); hs != nil {
		cur = *hs
	}
	next := make([]attachment, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = attachment{id: id, h: h}
	p.handlers.Store(&next)

	var once sync.Once
	return func() { once.Do(func() { p.detach(id) }) }, nil
}

func (p *ProbePoint) detach(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	hs := p.handlers.Load()
	if hs == nil {
		return
	}
	next := make([]attachment, 0, len(*hs))
	for _, a := range *hs {
		if a.id != id {
			next = append(next, a)
		}
	}
	p.handlers.Store(&next)
}

// fire delivers one firing to every attached handler, in attach order.
func (p *ProbePoint) fire(filename, funcname []byte, line int, frame Frame) {
	hs := p.handlers.Load()
	if hs == nil {
		return
	}
	for _, a := range *hs {
		a.h(filename, funcname, line, frame)
	}
}

// FunctionEntryEnabled reports whether the entry probe has a consumer.
// The interpreter's dispatch loop may consult it directly.
func FunctionEntryEnabled() bool { return FunctionEntry.Enabled() }

// FunctionReturnEnabled reports whether the return probe has a consumer.
func FunctionReturnEnabled() bool { return FunctionReturn.Enabled() }

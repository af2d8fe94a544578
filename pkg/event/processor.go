// Package event implements the generic typed pub/sub substrate every core
// component publishes lifecycle notifications through (§4.D). A single
// Processor serves one event hierarchy: register global consumers that
// see every event, or consumers keyed to one runtime event type name.
package event

import (
	"sync"
	"sync/atomic"

	"github.com/resilientgo/core/pkg/rlog"
)

// Event is anything dispatchable through a Processor. TypeName identifies
// which keyed consumers should see it; implementations typically return a
// fixed string per concrete event type.
type Event interface {
	TypeName() string
}

// Consumer receives a dispatched Event. A non-nil return is logged and
// swallowed by Process — it never stops other consumers from running and
// never propagates out of Process.
type Consumer func(Event) error

// Processor is a typed pub/sub dispatcher. The zero value is not usable;
// construct with New. Registration is serialized under a mutex; Process
// takes no locks and is safe to call concurrently with registration
// (copy-on-write consumer sets).
type Processor struct {
	mu           sync.Mutex // guards registration only
	hasConsumers atomic.Bool
	global       atomic.Pointer[[]Consumer]
	byType       atomic.Pointer[map[string][]Consumer]
	log          *rlog.Logger
}

// New creates an empty Processor that logs swallowed consumer errors
// through logger. If logger is nil, rlog.Global() is used.
func New(logger *rlog.Logger) *Processor {
	if logger == nil {
		logger = rlog.Global()
	}
	p := &Processor{log: logger}
	empty := []Consumer(nil)
	p.global.Store(&empty)
	emptyMap := map[string][]Consumer{}
	p.byType.Store(&emptyMap)
	return p
}

// OnEvent registers a consumer that receives every event dispatched
// through this processor.
func (p *Processor) OnEvent(c Consumer) {
	if c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := *p.global.Load()
	next := make([]Consumer, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = c
	p.global.Store(&next)
	p.hasConsumers.Store(true)
}

// Register registers a consumer that receives only events whose TypeName
// equals eventTypeName.
func (p *Processor) Register(eventTypeName string, c Consumer) {
	if c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := *p.byType.Load()
	next := make(map[string][]Consumer, len(cur))
	for k, v := range cur {
		next[k] = v
	}
	existing := next[eventTypeName]
	updated := make([]Consumer, len(existing)+1)
	copy(updated, existing)
	updated[len(existing)] = c
	next[eventTypeName] = updated

	p.byType.Store(&next)
	p.hasConsumers.Store(true)
}

// Process dispatches e to every global consumer, then every consumer
// registered for e.TypeName(). It returns whether any consumer was
// invoked. A consumer error (or panic) is logged and does not prevent the
// remaining consumers from running.
func (p *Processor) Process(e Event) bool {
	if !p.hasConsumers.Load() {
		return false
	}

	invoked := false

	for _, c := range *p.global.Load() {
		p.invoke(c, e)
		invoked = true
	}

	byType := *p.byType.Load()
	for _, c := range byType[e.TypeName()] {
		p.invoke(c, e)
		invoked = true
	}

	return invoked
}

func (p *Processor) invoke(c Consumer, e Event) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorf("event consumer panicked for %s: %v", e.TypeName(), r)
		}
	}()
	if err := c(e); err != nil {
		p.log.Errorf("event consumer failed for %s: %v", e.TypeName(), err)
	}
}

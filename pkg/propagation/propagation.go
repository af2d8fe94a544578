// Package propagation implements the context-propagator contract (§4.H):
// capture ambient state on the submitting goroutine, install it on the
// executing goroutine before a task body runs, and tear it down afterward.
// Go has no thread-locals, so state travels through context.Context rather
// than mutable ambient storage — Clear exists as a compatibility seam for
// propagators that also maintain a non-context-based fallback, not because
// ordinary propagators need to undo anything a context.Context wouldn't
// already scope away on its own.
package propagation

import "context"

// WorkItem is a unit of work a Propagator (or list of Propagators) decorates.
type WorkItem func(ctx context.Context)

// Propagator moves one kind of ambient state across a goroutine boundary.
type Propagator interface {
	// Retrieve captures the ambient value on the submitting goroutine,
	// before the task crosses the boundary.
	Retrieve() (value interface{}, ok bool)
	// Apply installs the captured value into ctx on the executing
	// goroutine, before the task body runs, returning the decorated
	// context.
	Apply(ctx context.Context, value interface{}, ok bool) context.Context
	// Clear runs on the executing goroutine after the task body, whether
	// it completed normally or not.
	Clear(ctx context.Context)
}

// Decorate wraps item with a single propagator: retrieve happens once, at
// decoration time (on the submitting goroutine); apply and clear happen
// every time the returned WorkItem is invoked.
func Decorate(p Propagator, item WorkItem) WorkItem {
	value, ok := p.Retrieve()
	return func(ctx context.Context) {
		ctx = p.Apply(ctx, value, ok)
		defer p.Clear(ctx)
		item(ctx)
	}
}

// capture pairs a Propagator with the value it retrieved at decoration time.
type capture struct {
	p     Propagator
	value interface{}
	ok    bool
}

// DecorateAll wraps item with every propagator in props. Each propagator's
// Retrieve is invoked once, at decoration time. Apply runs for every entry
// before the body; Clear runs for every entry after, in a defer, regardless
// of how the body exits. Apply order across propagators is unspecified;
// each propagator's own Apply/Clear pair is always matched correctly.
func DecorateAll(props []Propagator, item WorkItem) WorkItem {
	if len(props) == 0 {
		return item
	}

	captures := make([]capture, len(props))
	for i, p := range props {
		v, ok := p.Retrieve()
		captures[i] = capture{p: p, value: v, ok: ok}
	}

	return func(ctx context.Context) {
		defer func() {
			for _, c := range captures {
				c.p.Clear(ctx)
			}
		}()
		for _, c := range captures {
			ctx = c.p.Apply(ctx, c.value, c.ok)
		}
		item(ctx)
	}
}

// Empty is a Propagator that carries no state: Retrieve always reports
// absent, Apply and Clear are no-ops. Provided for composition where a
// caller's propagator list must never be empty-but-nil.
type Empty struct{}

// Retrieve implements Propagator.
func (Empty) Retrieve() (interface{}, bool) { return nil, false }

// Apply implements Propagator.
func (Empty) Apply(ctx context.Context, _ interface{}, _ bool) context.Context { return ctx }

// Clear implements Propagator.
func (Empty) Clear(context.Context) {}

package propagation

import "context"

type correlationKey struct{}

// CorrelationFrom returns the logging-correlation map installed on ctx, if
// any. The scheduled executor runs the built-in Correlation propagator on
// every task regardless of whether the caller configured additional
// propagators, so a map present on the submitting context is installed on
// the task's context; with none present, none is installed
// (§4.I step 1: "a well-known logging-correlation context ... treated as a
// fixed, built-in propagator").
func CorrelationFrom(ctx context.Context) (map[string]string, bool) {
	v, ok := ctx.Value(correlationKey{}).(map[string]string)
	return v, ok
}

// WithCorrelation returns a copy of ctx carrying m as its correlation map.
func WithCorrelation(ctx context.Context, m map[string]string) context.Context {
	return context.WithValue(ctx, correlationKey{}, m)
}

// Correlation is the built-in propagator for a string->string
// logging-correlation mapping (trace ID, request ID, tenant, ...). Retrieve
// reads whatever correlation map is present on the submitting goroutine's
// context; Apply installs a copy of it on the executing goroutine's
// context so the task body cannot mutate the submitter's map.
type Correlation struct {
	// Ctx is read by Retrieve; set it to the submitting goroutine's
	// context before decorating a work item.
	Ctx context.Context
}

// Retrieve implements Propagator.
func (c Correlation) Retrieve() (interface{}, bool) {
	if c.Ctx == nil {
		return nil, false
	}
	m, ok := CorrelationFrom(c.Ctx)
	if !ok {
		return nil, false
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp, true
}

// Apply implements Propagator.
func (Correlation) Apply(ctx context.Context, value interface{}, ok bool) context.Context {
	if !ok {
		return ctx
	}
	return WithCorrelation(ctx, value.(map[string]string))
}

// Clear implements Propagator. Context-scoped state needs no teardown.
func (Correlation) Clear(context.Context) {}

package rclock

import "time"

// Stopwatch records a start instant from a Clock and yields elapsed
// duration on demand. Immutable after construction: the start is never
// reset.
type Stopwatch struct {
	clock    Clock
	startNs  int64
}

// Start begins a Stopwatch against clock.
func Start(clock Clock) Stopwatch {
	return Stopwatch{clock: clock, startNs: clock.MonotonicNanos()}
}

// Elapsed returns now - start. May be called repeatedly.
func (s Stopwatch) Elapsed() time.Duration {
	return time.Duration(s.clock.MonotonicNanos() - s.startNs)
}

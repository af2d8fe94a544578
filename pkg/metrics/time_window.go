package metrics

import (
	"sync"
	"time"

	"github.com/resilientgo/core/pkg/rclock"
)

// timeBucket accumulates every sample recorded during one epoch-second.
type timeBucket struct {
	initialized   bool
	epochSecond   int64
	count         int64
	failed        int64
	slow          int64
	slowFailed    int64
	durationNanos int64
}

func (b timeBucket) isStaleAt(t int64, windowSeconds int64) bool {
	return b.initialized && b.epochSecond <= t-windowSeconds
}

// TimeWindow is the mutex-guarded reference implementation of the
// time-bounded window (§4.G.2): only samples recorded within the last W
// whole seconds contribute to the snapshot. Older samples are evicted
// lazily, on the next Record or Snapshot that reaches them.
type TimeWindow struct {
	mu            sync.Mutex
	windowSeconds int64
	clock         rclock.Clock
	buckets       []timeBucket

	total, failed, slow, slowFailed, totalDuration int64
}

// NewTimeWindow creates a time-bounded window spanning windowSeconds
// seconds, sampling the given clock. If clock is nil, rclock.System is used.
func NewTimeWindow(windowSeconds int, clock rclock.Clock) (*TimeWindow, error) {
	if err := validateSize("window seconds", windowSeconds); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = rclock.System
	}
	return &TimeWindow{
		windowSeconds: int64(windowSeconds),
		clock:         clock,
		buckets:       make([]timeBucket, windowSeconds),
	}, nil
}

func (w *TimeWindow) epochSecond() int64 {
	return w.clock.MonotonicNanos() / int64(time.Second)
}

func (w *TimeWindow) subtractAggregate(b *timeBucket) {
	w.total -= b.count
	w.failed -= b.failed
	w.slow -= b.slow
	w.slowFailed -= b.slowFailed
	w.totalDuration -= b.durationNanos
}

// Record implements Window.
func (w *TimeWindow) Record(d time.Duration, outcome Outcome) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := w.epochSecond()
	idx := t % w.windowSeconds
	b := &w.buckets[idx]

	if !b.initialized || b.epochSecond != t {
		if b.initialized {
			w.subtractAggregate(b)
		}
		*b = timeBucket{initialized: true, epochSecond: t}
	}

	failed, slow, slowFailed := classify(outcome)
	b.count++
	if failed {
		b.failed++
	}
	if slow {
		b.slow++
	}
	if slowFailed {
		b.slowFailed++
	}
	b.durationNanos += int64(d)

	w.total++
	if failed {
		w.failed++
	}
	if slow {
		w.slow++
	}
	if slowFailed {
		w.slowFailed++
	}
	w.totalDuration += int64(d)
}

// sweepStale recycles every bucket whose stored second is at or before
// t-W, so a snapshot never includes a sample older than W seconds even when
// writes are sparse.
func (w *TimeWindow) sweepStale(t int64) {
	for i := range w.buckets {
		b := &w.buckets[i]
		if b.isStaleAt(t, w.windowSeconds) {
			w.subtractAggregate(b)
			*b = timeBucket{}
		}
	}
}

// Snapshot implements Window.
func (w *TimeWindow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sweepStale(w.epochSecond())
	return newSnapshot(w.total, w.failed, w.slow, w.slowFailed, w.totalDuration)
}

package metrics

import (
	"sync/atomic"
	"time"

	"github.com/resilientgo/core/pkg/rclock"
)

// TimeWindowLockFree is the lock-free, CAS-based variant of TimeWindow. Each
// bucket is an immutable snapshot swapped in whole by compare-and-swap; the
// aggregate fields are updated with atomic adds after a successful swap, so
// an observer may see an aggregate that does not exactly equal the sum of
// currently-live buckets for an instant — the aggregate is the source of
// truth (§4.G.3).
type TimeWindowLockFree struct {
	windowSeconds int64
	clock         rclock.Clock
	buckets       []atomic.Pointer[timeBucket]

	total, failed, slow, slowFailed, totalDuration atomic.Int64
}

// NewTimeWindowLockFree creates a time-bounded lock-free window spanning
// windowSeconds seconds.
func NewTimeWindowLockFree(windowSeconds int, clock rclock.Clock) (*TimeWindowLockFree, error) {
	if err := validateSize("window seconds", windowSeconds); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = rclock.System
	}
	w := &TimeWindowLockFree{
		windowSeconds: int64(windowSeconds),
		clock:         clock,
		buckets:       make([]atomic.Pointer[timeBucket], windowSeconds),
	}
	for i := range w.buckets {
		w.buckets[i].Store(&timeBucket{})
	}
	return w, nil
}

func (w *TimeWindowLockFree) epochSecond() int64 {
	return w.clock.MonotonicNanos() / int64(time.Second)
}

func (w *TimeWindowLockFree) applyDelta(old, next *timeBucket) {
	w.total.Add(next.count - old.count)
	w.failed.Add(next.failed - old.failed)
	w.slow.Add(next.slow - old.slow)
	w.slowFailed.Add(next.slowFailed - old.slowFailed)
	w.totalDuration.Add(next.durationNanos - old.durationNanos)
}

// Record implements Window.
func (w *TimeWindowLockFree) Record(d time.Duration, outcome Outcome) {
	t := w.epochSecond()
	idx := t % w.windowSeconds
	failed, slow, slowFailed := classify(outcome)

	for {
		old := w.buckets[idx].Load()

		base := *old
		if !base.initialized || base.epochSecond != t {
			base = timeBucket{initialized: true, epochSecond: t}
		}
		next := base
		next.count++
		if failed {
			next.failed++
		}
		if slow {
			next.slow++
		}
		if slowFailed {
			next.slowFailed++
		}
		next.durationNanos += int64(d)

		if w.buckets[idx].CompareAndSwap(old, &next) {
			// old's counts leave the aggregate whether next extends it
			// (same second) or recycles it (an older second).
			w.applyDelta(old, &next)
			return
		}
	}
}

func (w *TimeWindowLockFree) sweepStale(t int64) {
	for i := range w.buckets {
		for {
			old := w.buckets[i].Load()
			if !old.isStaleAt(t, w.windowSeconds) {
				break
			}
			empty := &timeBucket{}
			if w.buckets[i].CompareAndSwap(old, empty) {
				w.applyDelta(old, empty)
				break
			}
		}
	}
}

// Snapshot implements Window.
func (w *TimeWindowLockFree) Snapshot() Snapshot {
	w.sweepStale(w.epochSecond())
	return newSnapshot(
		w.total.Load(),
		w.failed.Load(),
		w.slow.Load(),
		w.slowFailed.Load(),
		w.totalDuration.Load(),
	)
}

package metrics

import (
	"sync"
	"time"
)

// CountWindow is the mutex-guarded reference implementation of the
// count-bounded window (§4.G.1): the last N recorded samples, no more and
// no fewer, contribute to the snapshot once N samples have been recorded.
type CountWindow struct {
	mu      sync.Mutex
	buckets []countBucket
	index   int

	total, failed, slow, slowFailed, totalDuration int64
}

// NewCountWindow creates a count-bounded window of size n. n must be >= 1.
func NewCountWindow(n int) (*CountWindow, error) {
	if err := validateSize("size", n); err != nil {
		return nil, err
	}
	return &CountWindow{buckets: make([]countBucket, n)}, nil
}

// Record implements Window.
func (w *CountWindow) Record(d time.Duration, outcome Outcome) {
	w.mu.Lock()
	defer w.mu.Unlock()

	newBucket := newCountBucket(d, outcome)
	old := w.buckets[w.index]
	w.buckets[w.index] = newBucket

	dTotal, dFailed, dSlow, dSlowFailed, dDuration := newBucket.deltaAgainst(old)
	w.total += dTotal
	w.failed += dFailed
	w.slow += dSlow
	w.slowFailed += dSlowFailed
	w.totalDuration += dDuration

	w.index = (w.index + 1) % len(w.buckets)
}

// Snapshot implements Window.
func (w *CountWindow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return newSnapshot(w.total, w.failed, w.slow, w.slowFailed, w.totalDuration)
}

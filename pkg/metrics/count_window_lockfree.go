package metrics

import (
	"sync/atomic"
	"time"
)

// CountWindowLockFree is the lock-free, CAS-based variant of CountWindow.
// record uses compare-and-swap on the target bucket and atomic adds on the
// aggregate; a retry loop resolves contention on the same bucket. It
// produces the same snapshot values as CountWindow under any interleaving
// equivalent to some serialization of the same Record calls (§4.G.3).
type CountWindowLockFree struct {
	buckets []atomic.Pointer[countBucket]
	seq     atomic.Uint64

	total, failed, slow, slowFailed, totalDuration atomic.Int64
}

// NewCountWindowLockFree creates a count-bounded lock-free window of size n.
func NewCountWindowLockFree(n int) (*CountWindowLockFree, error) {
	if err := validateSize("size", n); err != nil {
		return nil, err
	}
	w := &CountWindowLockFree{buckets: make([]atomic.Pointer[countBucket], n)}
	empty := countBucket{}
	for i := range w.buckets {
		w.buckets[i].Store(&empty)
	}
	return w, nil
}

// Record implements Window.
func (w *CountWindowLockFree) Record(d time.Duration, outcome Outcome) {
	idx := int(w.seq.Add(1)-1) % len(w.buckets)
	newBucket := newCountBucket(d, outcome)

	for {
		old := w.buckets[idx].Load()
		if w.buckets[idx].CompareAndSwap(old, &newBucket) {
			dTotal, dFailed, dSlow, dSlowFailed, dDuration := newBucket.deltaAgainst(*old)
			w.total.Add(dTotal)
			w.failed.Add(dFailed)
			w.slow.Add(dSlow)
			w.slowFailed.Add(dSlowFailed)
			w.totalDuration.Add(dDuration)
			return
		}
	}
}

// Snapshot implements Window.
func (w *CountWindowLockFree) Snapshot() Snapshot {
	return newSnapshot(
		w.total.Load(),
		w.failed.Load(),
		w.slow.Load(),
		w.slowFailed.Load(),
		w.totalDuration.Load(),
	)
}

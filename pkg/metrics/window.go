package metrics

import (
	"time"

	"github.com/resilientgo/core/pkg/rerrors"
)

const component = "metrics"

// Window is the shared contract both the count-based and time-based windows
// satisfy, in either their mutex-guarded or lock-free form.
type Window interface {
	// Record adds one sample of the given outcome and duration.
	Record(d time.Duration, outcome Outcome)
	// Snapshot returns the current aggregate view.
	Snapshot() Snapshot
}

// RecordValue is a convenience over Record for callers holding a raw value
// in a closed unit (§6 "Outcome classification and duration units")
// instead of a time.Duration.
func RecordValue(w Window, value int64, unit Unit, outcome Outcome) {
	w.Record(unit.ToDuration(value), outcome)
}

func validateSize(name string, n int) error {
	if n < 1 {
		return rerrors.Validationf(component, "%s must be >= 1, got %d", name, n)
	}
	return nil
}

type countBucket struct {
	occupied      bool
	durationNanos int64
	failed        bool
	slow          bool
	slowFailed    bool
}

func newCountBucket(d time.Duration, outcome Outcome) countBucket {
	failed, slow, slowFailed := classify(outcome)
	return countBucket{occupied: true, durationNanos: int64(d), failed: failed, slow: slow, slowFailed: slowFailed}
}

func (b countBucket) deltaAgainst(old countBucket) (deltaTotal, deltaFailed, deltaSlow, deltaSlowFailed, deltaDuration int64) {
	deltaTotal = b2i(b.occupied) - b2i(old.occupied)
	deltaFailed = b2i(b.failed) - b2i(old.occupied && old.failed)
	deltaSlow = b2i(b.slow) - b2i(old.occupied && old.slow)
	deltaSlowFailed = b2i(b.slowFailed) - b2i(old.occupied && old.slowFailed)
	deltaDuration = b.durationNanos - zeroIfUnoccupied(old)
	return
}

func zeroIfUnoccupied(b countBucket) int64 {
	if !b.occupied {
		return 0
	}
	return b.durationNanos
}

func b2i(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

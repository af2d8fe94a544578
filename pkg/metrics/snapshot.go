package metrics

import "time"

// Snapshot is an immutable, by-value view derived from a window's aggregate
// counters at one instant (§3). Snapshot generation with zero samples
// returns a well-formed snapshot with all counts zero and both rates 0.0.
type Snapshot struct {
	TotalCalls           int64
	SuccessfulCalls      int64
	FailedCalls          int64
	SlowCalls            int64
	SlowSuccessfulCalls  int64
	SlowFailedCalls      int64
	FailureRatePct       float64
	SlowCallRatePct      float64
	TotalDuration        time.Duration
	AverageDuration      time.Duration
}

func newSnapshot(total, failed, slow, slowFailed, totalDurationNanos int64) Snapshot {
	var failureRate, slowRate float64
	var avg time.Duration
	if total > 0 {
		failureRate = 100 * float64(failed) / float64(total)
		slowRate = 100 * float64(slow) / float64(total)
		avg = time.Duration(totalDurationNanos / total)
	}
	return Snapshot{
		TotalCalls:          total,
		SuccessfulCalls:     total - failed,
		FailedCalls:         failed,
		SlowCalls:           slow,
		SlowSuccessfulCalls: slow - slowFailed,
		SlowFailedCalls:     slowFailed,
		FailureRatePct:      failureRate,
		SlowCallRatePct:     slowRate,
		TotalDuration:       time.Duration(totalDurationNanos),
		AverageDuration:     avg,
	}
}

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/resilientgo/core/pkg/rclock"
)

func assertSnapshot(t *testing.T, s Snapshot, total, failed, slow, slowFailed int64, totalDuration time.Duration) {
	t.Helper()
	if s.TotalCalls != total {
		t.Errorf("TotalCalls = %d, want %d", s.TotalCalls, total)
	}
	if s.FailedCalls != failed {
		t.Errorf("FailedCalls = %d, want %d", s.FailedCalls, failed)
	}
	if s.SlowCalls != slow {
		t.Errorf("SlowCalls = %d, want %d", s.SlowCalls, slow)
	}
	if s.SlowFailedCalls != slowFailed {
		t.Errorf("SlowFailedCalls = %d, want %d", s.SlowFailedCalls, slowFailed)
	}
	if s.TotalDuration != totalDuration {
		t.Errorf("TotalDuration = %v, want %v", s.TotalDuration, totalDuration)
	}
}

// §8 scenario 1: count-window basic.
func TestCountWindowBasicScenario(t *testing.T) {
	w, err := NewCountWindow(5)
	if err != nil {
		t.Fatalf("NewCountWindow: %v", err)
	}
	w.Record(100*time.Nanosecond, Success)
	w.Record(200*time.Nanosecond, Error)
	w.Record(300*time.Nanosecond, SlowSuccess)
	w.Record(400*time.Nanosecond, SlowError)
	w.Record(500*time.Nanosecond, Success)

	s := w.Snapshot()
	assertSnapshot(t, s, 5, 2, 2, 1, 1500*time.Nanosecond)
	if s.SuccessfulCalls != 3 {
		t.Errorf("SuccessfulCalls = %d, want 3", s.SuccessfulCalls)
	}
	if s.SlowSuccessfulCalls != 1 {
		t.Errorf("SlowSuccessfulCalls = %d, want 1", s.SlowSuccessfulCalls)
	}
	if s.AverageDuration != 300*time.Nanosecond {
		t.Errorf("AverageDuration = %v, want 300ns", s.AverageDuration)
	}
	if s.FailureRatePct != 40.0 {
		t.Errorf("FailureRatePct = %v, want 40.0", s.FailureRatePct)
	}
	if s.SlowCallRatePct != 40.0 {
		t.Errorf("SlowCallRatePct = %v, want 40.0", s.SlowCallRatePct)
	}
}

// §8 scenario 2: count-window eviction.
func TestCountWindowEvictionScenario(t *testing.T) {
	w, _ := NewCountWindow(5)
	w.Record(100*time.Nanosecond, Success)
	w.Record(200*time.Nanosecond, Error)
	w.Record(300*time.Nanosecond, SlowSuccess)
	w.Record(400*time.Nanosecond, SlowError)
	w.Record(500*time.Nanosecond, Success)
	w.Record(600*time.Nanosecond, Success) // evicts the first (100ns, SUCCESS)

	s := w.Snapshot()
	assertSnapshot(t, s, 5, 1, 2, 1, 2000*time.Nanosecond)
	if s.AverageDuration != 400*time.Nanosecond {
		t.Errorf("AverageDuration = %v, want 400ns", s.AverageDuration)
	}
	if s.FailureRatePct != 20.0 {
		t.Errorf("FailureRatePct = %v, want 20.0", s.FailureRatePct)
	}
}

func TestCountWindowPartiallyFilled(t *testing.T) {
	w, _ := NewCountWindow(5)
	w.Record(100*time.Nanosecond, Success)
	w.Record(200*time.Nanosecond, Error)

	s := w.Snapshot()
	assertSnapshot(t, s, 2, 1, 0, 0, 300*time.Nanosecond)
}

func TestCountWindowZeroSamplesSnapshot(t *testing.T) {
	w, _ := NewCountWindow(5)
	s := w.Snapshot()
	assertSnapshot(t, s, 0, 0, 0, 0, 0)
	if s.FailureRatePct != 0 || s.SlowCallRatePct != 0 {
		t.Errorf("expected zero rates on empty window, got %v / %v", s.FailureRatePct, s.SlowCallRatePct)
	}
	if s.AverageDuration != 0 {
		t.Errorf("expected zero average duration on empty window, got %v", s.AverageDuration)
	}
}

func TestCountWindowRejectsInvalidSize(t *testing.T) {
	if _, err := NewCountWindow(0); err == nil {
		t.Error("expected error for size 0")
	}
}

// §8 scenario 3: time-window eviction.
func TestTimeWindowEvictionScenario(t *testing.T) {
	clock := rclock.NewFake(0)
	w, err := NewTimeWindow(2, clock)
	if err != nil {
		t.Fatalf("NewTimeWindow: %v", err)
	}

	w.Record(100*time.Nanosecond, Error) // t=0
	clock.Advance(1000)                  // t=1s
	w.Record(100*time.Nanosecond, Success)

	s := w.Snapshot()
	assertSnapshot(t, s, 2, 1, 0, 0, 200*time.Nanosecond)

	clock.Advance(1000) // t=2s
	s = w.Snapshot()
	assertSnapshot(t, s, 1, 0, 0, 0, 100*time.Nanosecond)
}

func TestCountWindowAggregateEqualsSumOfBuckets(t *testing.T) {
	w, _ := NewCountWindow(3)
	outcomes := []Outcome{Success, Error, SlowSuccess, SlowError, Success, Error, Success}
	for i, o := range outcomes {
		w.Record(time.Duration(i+1)*time.Millisecond, o)
	}

	s := w.Snapshot()

	var total, failed, slow, slowFailed int64
	var dur time.Duration
	for _, b := range w.buckets {
		if !b.occupied {
			continue
		}
		total++
		if b.failed {
			failed++
		}
		if b.slow {
			slow++
		}
		if b.slowFailed {
			slowFailed++
		}
		dur += time.Duration(b.durationNanos)
	}

	assertSnapshot(t, s, total, failed, slow, slowFailed, dur)
}

func TestLockFreeCountWindowMatchesReferenceUnderConcurrency(t *testing.T) {
	ref, _ := NewCountWindow(100)
	lf, _ := NewCountWindowLockFree(100)

	samples := make([]struct {
		d time.Duration
		o Outcome
	}, 500)
	outcomes := []Outcome{Success, Error, SlowSuccess, SlowError}
	for i := range samples {
		samples[i].d = time.Duration(i+1) * time.Microsecond
		samples[i].o = outcomes[i%len(outcomes)]
	}

	var wg sync.WaitGroup
	for _, s := range samples {
		wg.Add(2)
		s := s
		go func() { defer wg.Done(); ref.Record(s.d, s.o) }()
		go func() { defer wg.Done(); lf.Record(s.d, s.o) }()
	}
	wg.Wait()

	refSnap := ref.Snapshot()
	lfSnap := lf.Snapshot()
	if refSnap.TotalCalls != lfSnap.TotalCalls {
		t.Errorf("total calls diverged: ref=%d lockfree=%d", refSnap.TotalCalls, lfSnap.TotalCalls)
	}
}

func TestRecordValueNormalizesUnit(t *testing.T) {
	w, _ := NewCountWindow(5)
	RecordValue(w, 2, Seconds, Success)
	s := w.Snapshot()
	if s.TotalDuration != 2*time.Second {
		t.Errorf("TotalDuration = %v, want 2s", s.TotalDuration)
	}
}

package rclock

import (
	"testing"
	"time"
)

func TestSystemClockMonotonicNeverDecreases(t *testing.T) {
	a := System.MonotonicNanos()
	time.Sleep(time.Millisecond)
	b := System.MonotonicNanos()
	if b < a {
		t.Errorf("monotonic clock went backwards: %d then %d", a, b)
	}
}

func TestStopwatchElapsed(t *testing.T) {
	fake := NewFake(0)
	sw := Start(fake)

	if got := sw.Elapsed(); got != 0 {
		t.Errorf("expected 0 elapsed immediately after start, got %v", got)
	}

	fake.AdvanceNanos(1500)
	if got := sw.Elapsed(); got != 1500*time.Nanosecond {
		t.Errorf("expected 1500ns elapsed, got %v", got)
	}

	// Elapsed may be called repeatedly; start is never reset.
	fake.AdvanceNanos(500)
	if got := sw.Elapsed(); got != 2000*time.Nanosecond {
		t.Errorf("expected 2000ns elapsed, got %v", got)
	}
}

func TestFakeClockAdvance(t *testing.T) {
	fake := NewFake(1000)
	if fake.WallTimeMillis() != 1000 {
		t.Fatalf("expected initial wall time 1000, got %d", fake.WallTimeMillis())
	}
	fake.Advance(250)
	if fake.WallTimeMillis() != 1250 {
		t.Errorf("expected wall time 1250 after advance, got %d", fake.WallTimeMillis())
	}
	if fake.MonotonicNanos() != 250*int64(time.Millisecond) {
		t.Errorf("expected monotonic 250ms in ns, got %d", fake.MonotonicNanos())
	}
}

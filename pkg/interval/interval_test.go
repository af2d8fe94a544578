package interval

import (
	"math/rand"
	"testing"

	"github.com/resilientgo/core/pkg/rerrors"
)

func TestFixedDelay(t *testing.T) {
	f, err := Fixed(500)
	if err != nil {
		t.Fatalf("Fixed returned error: %v", err)
	}
	for attempt := int64(1); attempt <= 5; attempt++ {
		d, err := f(attempt)
		if err != nil {
			t.Fatalf("f(%d) returned error: %v", attempt, err)
		}
		if d != 500 {
			t.Errorf("f(%d) = %d, want 500", attempt, d)
		}
	}
}

func TestFixedRejectsInvalidInterval(t *testing.T) {
	if _, err := Fixed(0); !rerrors.IsKind(err, rerrors.KindValidation) {
		t.Errorf("expected validation error for interval 0, got %v", err)
	}
}

func TestFixedRejectsInvalidAttempt(t *testing.T) {
	f, _ := Fixed(500)
	if _, err := f(0); !rerrors.IsKind(err, rerrors.KindValidation) {
		t.Errorf("expected validation error for attempt 0, got %v", err)
	}
}

// Exponential-backoff capped: ofExponentialBackoff(500ms, 2.0, 10000ms):
// attempts 1..7 => 500, 1000, 2000, 4000, 8000, 10000, 10000. §8 scenario 4.
func TestExponentialCappedScenario(t *testing.T) {
	f, err := ExponentialCapped(500, 2.0, 10000)
	if err != nil {
		t.Fatalf("ExponentialCapped returned error: %v", err)
	}
	want := []int64{500, 1000, 2000, 4000, 8000, 10000, 10000}
	for i, w := range want {
		attempt := int64(i + 1)
		got, err := f(attempt)
		if err != nil {
			t.Fatalf("f(%d) returned error: %v", attempt, err)
		}
		if got != w {
			t.Errorf("f(%d) = %d, want %d", attempt, got, w)
		}
	}
}

// Exponential monotonicity: delay(n+1) >= delay(n) for m >= 1.
func TestExponentialMonotonic(t *testing.T) {
	f, _ := Exponential(500, 1.5)
	prev, _ := f(1)
	for attempt := int64(2); attempt <= 10; attempt++ {
		cur, err := f(attempt)
		if err != nil {
			t.Fatalf("f(%d) returned error: %v", attempt, err)
		}
		if cur < prev {
			t.Errorf("delay(%d)=%d < delay(%d)=%d, expected non-decreasing", attempt, cur, attempt-1, prev)
		}
		prev = cur
	}
}

func TestExponentialCappedNeverExceedsCap(t *testing.T) {
	f, _ := ExponentialCapped(500, 3.0, 5000)
	for attempt := int64(1); attempt <= 20; attempt++ {
		d, err := f(attempt)
		if err != nil {
			t.Fatalf("f(%d) returned error: %v", attempt, err)
		}
		if d > 5000 {
			t.Errorf("f(%d) = %d, exceeds cap 5000", attempt, d)
		}
	}
}

// Randomization bounds: each value in [max(1, I*(1-r)), I*(1+r)].
func TestRandomizedBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f, err := Randomized(1000, 0.5, rng)
	if err != nil {
		t.Fatalf("Randomized returned error: %v", err)
	}
	lo := int64(500)
	hi := int64(1500)
	for attempt := int64(1); attempt <= 200; attempt++ {
		d, err := f(attempt)
		if err != nil {
			t.Fatalf("f(%d) returned error: %v", attempt, err)
		}
		if d < lo || d > hi {
			t.Errorf("f(%d) = %d, want in [%d, %d]", attempt, d, lo, hi)
		}
	}
}

func TestRandomizedRejectsFactorOutOfRange(t *testing.T) {
	if _, err := Randomized(500, 1.5, nil); !rerrors.IsKind(err, rerrors.KindValidation) {
		t.Errorf("expected validation error for factor 1.5, got %v", err)
	}
	if _, err := Randomized(500, -0.1, nil); !rerrors.IsKind(err, rerrors.KindValidation) {
		t.Errorf("expected validation error for factor -0.1, got %v", err)
	}
}

func TestRandomizedClampsToAtLeastOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f, _ := Randomized(1, 1.0, rng)
	for attempt := int64(1); attempt <= 50; attempt++ {
		d, err := f(attempt)
		if err != nil {
			t.Fatalf("f(%d) returned error: %v", attempt, err)
		}
		if d < 1 {
			t.Errorf("f(%d) = %d, want >= 1", attempt, d)
		}
	}
}

// CustomBackoff computes f^(n-1)(I) and must return the same value for
// the same n regardless of call order or memoization.
func TestCustomBackoffIteratedSemantics(t *testing.T) {
	double := func(prev int64) int64 { return prev * 2 }
	f, err := CustomBackoff(100, double)
	if err != nil {
		t.Fatalf("CustomBackoff returned error: %v", err)
	}

	// Query out of order to exercise the memoization cache.
	d5, _ := f(5)
	d3, _ := f(3)
	d5Again, _ := f(5)

	if d5 != 1600 { // 100 * 2^4
		t.Errorf("f(5) = %d, want 1600", d5)
	}
	if d3 != 400 { // 100 * 2^2
		t.Errorf("f(3) = %d, want 400", d3)
	}
	if d5Again != d5 {
		t.Errorf("f(5) not stable across calls: %d then %d", d5, d5Again)
	}
}

func TestLiftIgnoresOutcome(t *testing.T) {
	f, _ := Fixed(250)
	biased := Lift(f)

	success := Success[any](struct{}{})
	failure := Failure[any](errSentinel{})

	gotS, err := biased(1, success)
	if err != nil || gotS != 250 {
		t.Errorf("biased(1, success) = (%d, %v), want (250, nil)", gotS, err)
	}
	gotF, err := biased(1, failure)
	if err != nil || gotF != 250 {
		t.Errorf("biased(1, failure) = (%d, %v), want (250, nil)", gotF, err)
	}
}

type errSentinel struct{}

func (errSentinel) Error() string { return "sentinel" }

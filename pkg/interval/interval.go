package interval

import (
	"math"
	"math/rand"
	"sync"

	"github.com/resilientgo/core/pkg/rerrors"
)

const component = "interval"

// Defaults mirror §4.C: I = 500ms, m = 1.5, r = 0.5.
const (
	DefaultIntervalMs          int64   = 500
	DefaultMultiplier          float64 = 1.5
	DefaultRandomizationFactor float64 = 0.5
)

// Func maps a 1-based attempt count to a delay in milliseconds. It is
// total on attempt >= 1; attempt < 1 is a validation error, never a
// negative or zero delay.
type Func func(attempt int64) (int64, error)

// BiasedFunc is the superset of Func that also sees whether the attempt
// being scheduled follows a success or a failure.
type BiasedFunc func(attempt int64, outcome Result[any]) (int64, error)

// Lift turns a plain Func into a BiasedFunc that ignores the outcome.
func Lift(f Func) BiasedFunc {
	return func(attempt int64, _ Result[any]) (int64, error) {
		return f(attempt)
	}
}

func validateAttempt(attempt int64) error {
	if attempt < 1 {
		return rerrors.Validationf(component, "attempt must be >= 1, got %d", attempt)
	}
	return nil
}

func validatePositive(name string, v int64) error {
	if v < 1 {
		return rerrors.Validationf(component, "%s must be >= 1, got %d", name, v)
	}
	return nil
}

// Fixed returns a Func that always delays intervalMs.
func Fixed(intervalMs int64) (Func, error) {
	if err := validatePositive("interval", intervalMs); err != nil {
		return nil, err
	}
	return func(attempt int64) (int64, error) {
		if err := validateAttempt(attempt); err != nil {
			return 0, err
		}
		return intervalMs, nil
	}, nil
}

// CustomBackoff applies f iteratively to the prior delay, n-1 times
// (f^(n-1)(I)), the same as the source corpus's
// `LongStream.iterate(I, f).skip(n-1)`. A reimplementation may memoize —
// it must not change the value produced for a given n — so results are
// cached by attempt number behind a mutex, amortizing repeated queries
// for the same or a smaller n without altering the iterated semantics a
// user-supplied f relies on.
func CustomBackoff(intervalMs int64, f func(prevMs int64) int64) (Func, error) {
	if err := validatePositive("interval", intervalMs); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, rerrors.Validationf(component, "custom backoff function must not be nil")
	}

	var mu sync.Mutex
	cache := []int64{intervalMs} // cache[i] == delay for attempt i+1

	return func(attempt int64) (int64, error) {
		if err := validateAttempt(attempt); err != nil {
			return 0, err
		}

		mu.Lock()
		defer mu.Unlock()

		for int64(len(cache)) < attempt {
			cache = append(cache, f(cache[len(cache)-1]))
		}
		return cache[attempt-1], nil
	}, nil
}

// Exponential returns delay(n) = I * m^(n-1), computed directly rather
// than by iteration (§9 open question resolved: the exponential family
// does not need O(n) iteration).
func Exponential(intervalMs int64, multiplier float64) (Func, error) {
	if err := validatePositive("interval", intervalMs); err != nil {
		return nil, err
	}
	return func(attempt int64) (int64, error) {
		if err := validateAttempt(attempt); err != nil {
			return 0, err
		}
		return exponentialDelay(intervalMs, multiplier, attempt), nil
	}, nil
}

// ExponentialCapped is Exponential clamped to at most capMs.
func ExponentialCapped(intervalMs int64, multiplier float64, capMs int64) (Func, error) {
	if err := validatePositive("interval", intervalMs); err != nil {
		return nil, err
	}
	if err := validatePositive("cap", capMs); err != nil {
		return nil, err
	}
	return func(attempt int64) (int64, error) {
		if err := validateAttempt(attempt); err != nil {
			return 0, err
		}
		delay := exponentialDelay(intervalMs, multiplier, attempt)
		if delay > capMs {
			return capMs, nil
		}
		return delay, nil
	}, nil
}

func exponentialDelay(intervalMs int64, multiplier float64, attempt int64) int64 {
	delay := float64(intervalMs) * math.Pow(multiplier, float64(attempt-1))
	return int64(delay)
}

// Randomized samples uniformly from [I*(1-r), I*(1+r)], clamped to >= 1.
// rng may be nil, in which case a package-level source is used.
func Randomized(intervalMs int64, randomizationFactor float64, rng *rand.Rand) (Func, error) {
	if err := validatePositive("interval", intervalMs); err != nil {
		return nil, err
	}
	if randomizationFactor < 0 || randomizationFactor > 1 {
		return nil, rerrors.Validationf(component, "randomization factor must be in [0, 1], got %v", randomizationFactor)
	}
	return func(attempt int64) (int64, error) {
		if err := validateAttempt(attempt); err != nil {
			return 0, err
		}
		return randomize(rng, intervalMs, randomizationFactor), nil
	}, nil
}

// ExponentialRandomized randomizes the exponential delay for each attempt.
func ExponentialRandomized(intervalMs int64, multiplier, randomizationFactor float64, rng *rand.Rand) (Func, error) {
	if err := validatePositive("interval", intervalMs); err != nil {
		return nil, err
	}
	if randomizationFactor < 0 || randomizationFactor > 1 {
		return nil, rerrors.Validationf(component, "randomization factor must be in [0, 1], got %v", randomizationFactor)
	}
	return func(attempt int64) (int64, error) {
		if err := validateAttempt(attempt); err != nil {
			return 0, err
		}
		base := exponentialDelay(intervalMs, multiplier, attempt)
		return randomize(rng, base, randomizationFactor), nil
	}, nil
}

// ExponentialRandomizedCapped randomizes, then caps, the exponential delay.
func ExponentialRandomizedCapped(intervalMs int64, multiplier, randomizationFactor float64, capMs int64, rng *rand.Rand) (Func, error) {
	if err := validatePositive("interval", intervalMs); err != nil {
		return nil, err
	}
	if err := validatePositive("cap", capMs); err != nil {
		return nil, err
	}
	if randomizationFactor < 0 || randomizationFactor > 1 {
		return nil, rerrors.Validationf(component, "randomization factor must be in [0, 1], got %v", randomizationFactor)
	}
	return func(attempt int64) (int64, error) {
		if err := validateAttempt(attempt); err != nil {
			return 0, err
		}
		base := exponentialDelay(intervalMs, multiplier, attempt)
		randomized := randomize(rng, base, randomizationFactor)
		if randomized > capMs {
			return capMs, nil
		}
		return randomized, nil
	}, nil
}

func randomize(rng *rand.Rand, baseMs int64, factor float64) int64 {
	lo := float64(baseMs) * (1 - factor)
	hi := float64(baseMs) * (1 + factor)

	var u float64
	if rng != nil {
		u = rng.Float64()
	} else {
		u = rand.Float64()
	}

	v := int64(lo + u*(hi-lo))
	if v < 1 {
		return 1
	}
	return v
}

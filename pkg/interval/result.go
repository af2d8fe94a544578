// Package interval computes retry delays for attempt n under several
// backoff families (§4.C), and carries the Either/Result vocabulary the
// biased variant is built from (§9 "From Either to native tagged
// results").
package interval

// Either is a tagged union of a Left value or a Right value, exactly one
// of which is present. It exists to give Result[T] (Left=error,
// Right=T) a native, exception-free representation instead of relying on
// panics to signal failure.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left builds an Either holding a Left value.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right builds an Either holding a Right value.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: r, isRight: true}
}

// IsRight reports whether e holds a Right value.
func (e Either[L, R]) IsRight() bool { return e.isRight }

// IsLeft reports whether e holds a Left value.
func (e Either[L, R]) IsLeft() bool { return !e.isRight }

// LeftValue returns the Left value and true if e holds one.
func (e Either[L, R]) LeftValue() (L, bool) { return e.left, !e.isRight }

// RightValue returns the Right value and true if e holds one.
func (e Either[L, R]) RightValue() (R, bool) { return e.right, e.isRight }

// Fold collapses e to a single value by applying onLeft or onRight.
func Fold[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// MapRight transforms a Right value, passing a Left value through untouched.
func MapRight[L, R, T any](e Either[L, R], f func(R) T) Either[L, T] {
	if e.isRight {
		return Right[L, T](f(e.right))
	}
	return Left[L, T](e.left)
}

// MapLeft transforms a Left value, passing a Right value through untouched.
func MapLeft[L, R, T any](e Either[L, R], f func(L) T) Either[T, R] {
	if e.isRight {
		return Right[T, R](e.right)
	}
	return Left[T, R](f(e.left))
}

// Swap exchanges the Left and Right sides.
func Swap[L, R any](e Either[L, R]) Either[R, L] {
	if e.isRight {
		return Left[R, L](e.right)
	}
	return Right[R, L](e.left)
}

// Result is an Either specialized to the success/failure shape §3
// describes: `success(value) | failure(error)`.
type Result[T any] = Either[error, T]

// Success builds a successful Result.
func Success[T any](v T) Result[T] { return Right[error, T](v) }

// Failure builds a failed Result.
func Failure[T any](err error) Result[T] { return Left[error, T](err) }

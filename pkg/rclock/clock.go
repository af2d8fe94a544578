// Package rclock provides the abstract time source every other core
// package measures against: wall-clock milliseconds for human-visible
// timestamps, and a monotonic nanosecond counter for anything that
// measures an interval. Tests install a fake Clock; production code uses
// System.
package rclock

import "time"

// Clock is the abstract source of wall-clock and monotonic time. Wall time
// must only be used for human-visible timestamps; monotonic time is the
// sole basis for interval measurement anywhere in this module.
type Clock interface {
	// WallTimeMillis returns the current real-time milliseconds since the
	// Unix epoch. May jump backwards or forwards (NTP adjustment, etc).
	WallTimeMillis() int64
	// MonotonicNanos returns a value guaranteed non-decreasing across the
	// lifetime of a single process. Not comparable across processes.
	MonotonicNanos() int64
}

// systemClock is the process-provided Clock backed by the Go runtime.
type systemClock struct{}

// System is the always-available, process-wide Clock. The Clock
// abstraction exists so tests can install a fake instead.
var System Clock = systemClock{}

func (systemClock) WallTimeMillis() int64 {
	return time.Now().UnixMilli()
}

func (systemClock) MonotonicNanos() int64 {
	// time.Since retains the monotonic reading time.Now() attaches to its
	// Time value, so this never regresses even if the wall clock is
	// stepped backwards.
	return time.Since(processStart).Nanoseconds()
}

var processStart = time.Now()

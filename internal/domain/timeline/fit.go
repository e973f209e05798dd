// Package timeline holds the pure duration math behind clip fitting.
package timeline

import "time"

// SlotFloor keeps very short narrations from producing unusably short
// per-keyword search windows.
const SlotFloor = 6 * time.Second

// SlotDuration divides the target runtime across n segments, floored at 6s.
func SlotDuration(target time.Duration, n int) time.Duration {
	if n <= 0 {
		return 0
	}
	slot := target / time.Duration(n)
	if slot < SlotFloor {
		slot = SlotFloor
	}
	return slot
}

// FitPlan describes how to make a clip of arbitrary native duration fill a
// slot exactly: repeat it Loops times, then trim to ClipTo. Downstream
// concatenation assumes uniform per-slot durations, so ClipTo is always the
// required duration.
type FitPlan struct {
	Loops  int
	ClipTo time.Duration
}

// Fit decides trim vs loop-then-trim.
func Fit(native, required time.Duration) FitPlan {
	loops := 1
	if native > 0 && native < required {
		loops = int(required/native) + 1
	}
	return FitPlan{Loops: loops, ClipTo: required}
}

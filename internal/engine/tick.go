package engine

import "time"

// DefaultTickRate is the loop frequency in ticks per second.
const DefaultTickRate = 20

// Interval returns the time between ticks at the given rate.
// Non-positive rates fall back to DefaultTickRate.
func Interval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// Package noise holds the deterministic functions every bar generator is
// built on. Everything here is pure: the same inputs produce the same
// outputs on every platform, up to float rounding in the sine terms.
package noise

import (
	"math"
	"time"
)

// DefaultEpoch is the reference instant generators measure elapsed time from.
var DefaultEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Hash mixes a tick count (milliseconds) with a seed into a non-negative
// 32-bit value. Not cryptographic.
func Hash(ticks int64, seed int64) uint32 {
	v := ticks ^ (ticks >> 32)
	x := uint32(v) ^ uint32(seed)

	x ^= x >> 16
	x *= 0x85EBCA6B
	x ^= x >> 13
	x *= 0xC2B2AE35
	x ^= x >> 16

	h := int32(x)
	if h == math.MinInt32 {
		return math.MaxInt32
	}
	if h < 0 {
		h = -h
	}
	return uint32(h)
}

// HashTime hashes ts at millisecond resolution.
func HashTime(ts time.Time, seed int64) uint32 {
	return Hash(ts.UnixMilli(), seed)
}

// PseudoNoise is a smooth stand-in for Brownian increments, roughly in [-1, 1].
func PseudoNoise(t float64, seed int64) float64 {
	s := float64(seed)
	v := math.Sin(0.1*t+s) +
		0.5*math.Sin(0.05*t+1.37*s) +
		0.25*math.Sin(0.02*t+2.17*s)
	return v / 1.75
}

// Seconds returns the time elapsed from epoch to ts in seconds.
func Seconds(ts, epoch time.Time) float64 {
	return float64(ts.UnixMilli()-epoch.UnixMilli()) / 1000.0
}

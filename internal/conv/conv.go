// Package conv provides safe integer narrowing helpers.
//
// The helpers panic on overflow: an out-of-range value means a pattern blew
// past internal limits, which is a programming error rather than user input
// to be recovered from.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// uint comparison avoids overflow on 32-bit platforms where int cannot
	// represent math.MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Package conv provides checked integer conversions and zero-copy string views
// used across the batch engine.
//
// The conversion functions perform bounds checking before narrowing. They panic
// on overflow since this indicates a programming error (e.g., a vocabulary or
// batch too large for the sparse output's index type).
package conv

import (
	"math"
	"unsafe"
)

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToInt32 safely converts an int to int32.
// Panics if n is outside the int32 range.
//
//go:inline
func IntToInt32(n int) int32 {
	if n < math.MinInt32 || n > math.MaxInt32 {
		panic("integer overflow: int value out of int32 range")
	}
	return int32(n)
}

// Uint32ToInt32 safely converts a uint32 to int32.
// Panics if n > math.MaxInt32.
//
//go:inline
func Uint32ToInt32(n uint32) int32 {
	if n > math.MaxInt32 {
		panic("integer overflow: uint32 value out of int32 range")
	}
	return int32(n)
}

// StringBytes returns the bytes of s without copying.
// The returned slice must not be modified.
func StringBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Within reports whether sub points into the storage of s, i.e. sub was
// obtained by slicing s. Empty strings are never within anything.
func Within(sub, s string) bool {
	if sub == "" || s == "" {
		return false
	}
	p := uintptr(unsafe.Pointer(unsafe.StringData(sub)))
	lo := uintptr(unsafe.Pointer(unsafe.StringData(s)))
	return p >= lo && p < lo+uintptr(len(s))
}

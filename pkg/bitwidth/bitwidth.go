// Package bitwidth answers how many bits an integer type or value needs.
package bitwidth

import (
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// BitCount returns the width of T in bits.
func BitCount[T constraints.Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// BitsToRepresent returns the number of significant bits in v. Zero needs none.
func BitsToRepresent(v uint64) int {
	return 64 - bits.LeadingZeros64(v)
}

// IntBitsToFit returns the smallest standard integer width holding n bits,
// or -1 when n exceeds 64.
func IntBitsToFit(n int) int {
	switch {
	case n <= 8:
		return 8
	case n <= 16:
		return 16
	case n <= 32:
		return 32
	case n <= 64:
		return 64
	}
	return -1
}

// FitsUnsigned reports whether v can be stored in an unsigned integer of width bits.
func FitsUnsigned(v uint64, width int) bool {
	return BitsToRepresent(v) <= width
}

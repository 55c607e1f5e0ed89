// Package interval provides an inclusive numeric range and the min/max helpers
// used for index and length clamping.
package interval

import "golang.org/x/exp/constraints"

// Number is any type supporting the arithmetic an Interval needs.
type Number interface {
	constraints.Integer | constraints.Float
}

// Interval is a contiguous, inclusive range [Min, Max].
type Interval[T Number] struct {
	Min T
	Max T
}

// New returns the interval spanning a and b, whichever order they are given in.
func New[T Number](a, b T) Interval[T] {
	return Interval[T]{Min: Minimum(a, b), Max: Maximum(a, b)}
}

// Clip returns v if it lies within the interval, else the nearest bound.
func (iv Interval[T]) Clip(v T) T {
	return Minimum(iv.Max, Maximum(iv.Min, v))
}

// InRange reports whether Min <= v <= Max.
func (iv Interval[T]) InRange(v T) bool {
	return iv.Clip(v) == v
}

// Deadband returns v if it lies outside the interval, else band.
func (iv Interval[T]) Deadband(v, band T) T {
	if iv.InRange(v) {
		return band
	}
	return v
}

// DeadbandMid returns v if it lies outside the interval, else the midpoint.
func (iv Interval[T]) DeadbandMid(v T) T {
	return iv.Deadband(v, iv.Mid())
}

func (iv Interval[T]) Mid() T {
	return (iv.Min + iv.Max) / 2
}

// Length returns Max - Min.
func (iv Interval[T]) Length() T {
	return iv.Max - iv.Min
}

// Intersect returns the values accepted by both a and b.
// Disjoint inputs yield the span between the two inner bounds.
func Intersect[T Number](a, b Interval[T]) Interval[T] {
	return New(Maximum(a.Min, b.Min), Minimum(a.Max, b.Max))
}

// Union returns the span covering both a and b, including any gap between them.
func Union[T Number](a, b Interval[T]) Interval[T] {
	return New(Minimum(a.Min, b.Min), Maximum(a.Max, b.Max))
}

// Minimum returns the lesser of two values; rhs on a tie.
func Minimum[T constraints.Ordered](lhs, rhs T) T {
	if lhs < rhs {
		return lhs
	}
	return rhs
}

// Maximum returns the greater of two values; rhs on a tie.
func Maximum[T constraints.Ordered](lhs, rhs T) T {
	if lhs > rhs {
		return lhs
	}
	return rhs
}

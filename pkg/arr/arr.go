// Package arr implements read access for fixed-layout contiguous sequences once,
// on top of two methods every such sequence already has: its length and its storage.
package arr

import (
	"iter"
	"unsafe"

	"lil-go/pkg/errs"
)

// Sequence is the capability a contiguous, indexable type exposes.
//
// Data returns the first Len() elements, aliasing the implementer's storage.
// The slice is invalidated by any mutation of the sequence.
type Sequence[T any] interface {
	Len() int
	Data() []T
}

// Empty reports whether s holds no elements.
func Empty[T any](s Sequence[T]) bool {
	return s.Len() == 0
}

// At returns element i without a range check of its own; an index outside
// [0, Len()) is a caller bug and panics.
func At[T any](s Sequence[T], i int) T {
	return s.Data()[i]
}

// Get returns element i, or an errs.OutOfRange error.
func Get[T any](s Sequence[T], i int) (T, error) {
	if i < 0 || i >= s.Len() {
		var zero T
		return zero, errs.Errorf(errs.OutOfRange, "index %d out of bounds (length %d)", i, s.Len())
	}
	return s.Data()[i], nil
}

// Front returns the first element, or errs.OutOfRange when s is empty.
func Front[T any](s Sequence[T]) (T, error) {
	if Empty(s) {
		var zero T
		return zero, errs.Errorf(errs.OutOfRange, "front of empty sequence")
	}
	return s.Data()[0], nil
}

// Back returns the last element, or errs.OutOfRange when s is empty.
func Back[T any](s Sequence[T]) (T, error) {
	n := s.Len()
	if n == 0 {
		var zero T
		return zero, errs.Errorf(errs.OutOfRange, "back of empty sequence")
	}
	return s.Data()[n-1], nil
}

// All yields (index, element) over [0, Len()). Stopping early is allowed.
func All[T any](s Sequence[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.Data() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Cursor is a position within a Sequence. The half-open range [Begin, End)
// covers the logical content.
type Cursor[T any] struct {
	seq Sequence[T]
	pos int
}

func Begin[T any](s Sequence[T]) Cursor[T] {
	return Cursor[T]{seq: s, pos: 0}
}

func End[T any](s Sequence[T]) Cursor[T] {
	return Cursor[T]{seq: s, pos: s.Len()}
}

// Pos returns the cursor's offset from the sequence origin.
func (c Cursor[T]) Pos() int {
	return c.pos
}

// Value returns the element under the cursor. Dereferencing End panics.
func (c Cursor[T]) Value() T {
	return c.seq.Data()[c.pos]
}

func (c Cursor[T]) Next() Cursor[T] {
	return c.Advance(1)
}

func (c Cursor[T]) Prev() Cursor[T] {
	return c.Advance(-1)
}

// Advance moves the cursor n elements; n may be negative.
func (c Cursor[T]) Advance(n int) Cursor[T] {
	c.pos += n
	return c
}

// Done reports whether the cursor has reached or passed End.
func (c Cursor[T]) Done() bool {
	return c.pos >= c.seq.Len()
}

// Of reports whether the cursor was taken from s, judged by storage origin.
func (c Cursor[T]) Of(s Sequence[T]) bool {
	if c.seq == nil || s == nil {
		return false
	}
	return unsafe.SliceData(c.seq.Data()) == unsafe.SliceData(s.Data())
}

// Distance returns last.Pos() - first.Pos().
func Distance[T any](first, last Cursor[T]) int {
	return last.pos - first.pos
}

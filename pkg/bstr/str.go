// Package bstr implements Str, a fixed-capacity byte string whose storage lives
// inside the value itself.
//
// A Str[S] is backed by an inline array S of N bytes, the capacity budget. It
// holds at most N-1 content bytes. Every mutation keeps the storage laid out as
//
//	[0, len)   content
//	len        terminator (0)
//	N-1        remaining capacity, N-1-len
//
// with every other byte zero; Layout returns exactly these N bytes. When the
// string is full the terminator and the remaining-capacity byte share the last
// slot, both being zero.
//
// Operations that change the length never grow the storage and never fail:
// inserts keep the earliest bytes and drop whatever overflows the tail, and
// indices are clamped. Single-element operations whose precondition does not
// hold (PushBack on a full string, PopBack/Front/Back on an empty one) return
// errors instead.
//
// The zero value is an empty string. A Str is not safe for concurrent use.
package bstr

import (
	"bytes"
	"iter"
	"unsafe"

	"lil-go/pkg/arr"
	"lil-go/pkg/assert"
	"lil-go/pkg/errs"
)

// maxBudget is the largest array length in Storage.
const maxBudget = 255

// Str is a bounded byte string stored in S.
type Str[S Storage] struct {
	data S
	n    uint8
}

var _ arr.Sequence[byte] = (*Str[[16]byte])(nil)

// Capacity returns the maximum content length of a Str[S].
func Capacity[S Storage]() int {
	var zero S
	return len(zero) - 1
}

// From copies src, dropping whatever does not fit.
func From[S Storage](src []byte) Str[S] {
	var s Str[S]
	s.Append(src)
	return s
}

// FromString copies src, dropping whatever does not fit.
func FromString[S Storage](src string) Str[S] {
	var s Str[S]
	s.AppendString(src)
	return s
}

// FromCString copies src up to its first zero byte, bounded by the capacity.
func FromCString[S Storage](src []byte) Str[S] {
	var s Str[S]
	s.AppendCString(src)
	return s
}

// FromView copies the content of any byte sequence, dropping whatever does not fit.
func FromView[S Storage](v arr.Sequence[byte]) Str[S] {
	var s Str[S]
	s.AppendView(v)
	return s
}

// Literal returns a Str holding lit, which must fill the capacity exactly.
func Literal[S Storage](lit string) (Str[S], error) {
	var s Str[S]
	if len(lit) != s.Cap() {
		return s, errs.Errorf(errs.InvalidArgument, "literal of length %d does not match capacity %d", len(lit), s.Cap())
	}
	copy(s.storage(), lit)
	s.setLen(len(lit))
	return s, nil
}

// MustLiteral is like Literal but panics on a size mismatch.
func MustLiteral[S Storage](lit string) Str[S] {
	s, err := Literal[S](lit)
	if err != nil {
		panic(err)
	}
	return s
}

// storage returns all N bytes of the backing array.
func (s *Str[S]) storage() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&s.data)), len(s.data))
}

// setLen is the only place the length changes. It keeps the terminator and the
// remaining-capacity byte in step with n and zeroes bytes given up by a shrink.
func (s *Str[S]) setLen(n int) {
	b := s.storage()
	last := len(b) - 1
	assert.That(n >= 0 && n <= last, errs.OutOfRange, "0 <= n <= capacity")
	if old := int(s.n); n < old {
		clear(b[n:old])
	}
	s.n = uint8(n)
	b[last] = byte(last - n)
	b[n] = 0
}

// --- Size ---

// Len returns the number of content bytes, excluding the terminator.
func (s *Str[S]) Len() int { return int(s.n) }

// Cap returns the maximum content length, N-1.
func (s *Str[S]) Cap() int { return len(s.data) - 1 }

// Available returns Cap() - Len().
func (s *Str[S]) Available() int { return s.Cap() - s.Len() }

func (s *Str[S]) Full() bool  { return s.Len() == s.Cap() }
func (s *Str[S]) Empty() bool { return arr.Empty[byte](s) }

// --- Access ---

// Data returns the content bytes. The slice aliases the storage and is
// invalidated by the next mutation; its capacity is clipped to its length.
func (s *Str[S]) Data() []byte {
	n := s.Len()
	return s.storage()[:n:n]
}

// Bytes is Data.
func (s *Str[S]) Bytes() []byte { return s.Data() }

// CString returns the content followed by its terminator.
func (s *Str[S]) CString() []byte {
	n := s.Len() + 1
	return s.storage()[:n:n]
}

func (s *Str[S]) String() string { return string(s.Data()) }

// At returns byte i; i outside [0, Len()) panics.
func (s *Str[S]) At(i int) byte { return arr.At[byte](s, i) }

// Get returns byte i or an errs.OutOfRange error.
func (s *Str[S]) Get(i int) (byte, error) { return arr.Get[byte](s, i) }

func (s *Str[S]) Front() (byte, error) { return arr.Front[byte](s) }
func (s *Str[S]) Back() (byte, error)  { return arr.Back[byte](s) }

func (s *Str[S]) Begin() arr.Cursor[byte] { return arr.Begin[byte](s) }
func (s *Str[S]) End() arr.Cursor[byte]   { return arr.End[byte](s) }

// All yields (index, byte) over the content.
func (s *Str[S]) All() iter.Seq2[int, byte] { return arr.All[byte](s) }

// Set overwrites byte i in place; the length does not change.
func (s *Str[S]) Set(i int, c byte) error {
	if i < 0 || i >= s.Len() {
		return errs.Errorf(errs.OutOfRange, "index %d out of bounds (length %d)", i, s.Len())
	}
	s.storage()[i] = c
	return nil
}

// Equal reports whether s and v hold the same bytes.
func (s *Str[S]) Equal(v arr.Sequence[byte]) bool {
	return bytes.Equal(s.Data(), v.Data())
}

// Compare orders s and v lexicographically, like bytes.Compare.
func (s *Str[S]) Compare(v arr.Sequence[byte]) int {
	return bytes.Compare(s.Data(), v.Data())
}

// --- Single-element mutations ---

// PushBack appends c, or returns errs.ResourceFull when no room is left.
func (s *Str[S]) PushBack(c byte) error {
	if s.Full() {
		return errs.Errorf(errs.ResourceFull, "push onto full string (capacity %d)", s.Cap())
	}
	n := s.Len()
	s.storage()[n] = c
	s.setLen(n + 1)
	return nil
}

// PopBack removes and returns the last byte, or returns errs.ResourceEmpty.
func (s *Str[S]) PopBack() (byte, error) {
	if s.Empty() {
		return 0, errs.Errorf(errs.ResourceEmpty, "pop from empty string")
	}
	n := s.Len()
	c := s.storage()[n-1]
	s.setLen(n - 1)
	return c, nil
}

// Clear empties the string.
func (s *Str[S]) Clear() {
	s.setLen(0)
}

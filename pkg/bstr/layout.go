package bstr

import (
	"bytes"

	"lil-go/pkg/errs"
)

// Layout returns a copy of the N-byte storage image: content, terminator, zero
// padding and, in the final byte, the remaining capacity.
func (s *Str[S]) Layout() []byte {
	b := bytes.Clone(s.storage())
	last := len(b) - 1
	b[last] = byte(last - s.Len())
	b[s.Len()] = 0
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler with the Layout image.
func (s *Str[S]) MarshalBinary() ([]byte, error) {
	return s.Layout(), nil
}

// UnmarshalBinary replaces the content with a Layout image of the same budget.
// The remaining-capacity byte decides the length; the byte at that length must
// be a terminator. Padding after the terminator is not inspected and is zeroed.
func (s *Str[S]) UnmarshalBinary(data []byte) error {
	b := s.storage()
	if len(data) != len(b) {
		return errs.Errorf(errs.InvalidFormat, "layout of %d bytes, want %d", len(data), len(b))
	}
	last := len(b) - 1
	remaining := int(data[last])
	if remaining > last {
		return errs.Errorf(errs.DataCorrupted, "remaining capacity %d exceeds capacity %d", remaining, last)
	}
	n := last - remaining
	if data[n] != 0 {
		return errs.Errorf(errs.DataCorrupted, "no terminator at length %d", n)
	}
	copy(b[:n], data[:n])
	clear(b[n:])
	s.n = uint8(n)
	s.setLen(n)
	return nil
}

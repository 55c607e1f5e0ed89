package bstr

import (
	"bytes"
	"unsafe"

	"lil-go/pkg/arr"
	"lil-go/pkg/errs"
	"lil-go/pkg/interval"
)

// open makes room for count bytes at index and returns the gap for the caller
// to fill. Trailing bytes pushed past the capacity are dropped, and so is the
// part of the gap that does not fit. An index beyond the content clamps to the
// end; an index beyond the capacity, or a non-positive count, changes nothing.
func (s *Str[S]) open(index, count int) []byte {
	limit := s.Cap()
	if count <= 0 || index < 0 || index > limit {
		return nil
	}
	n := s.Len()
	at := interval.Minimum(index, n)
	fits := interval.Minimum(count, limit-at)
	kept := interval.Minimum(n-at, limit-at-fits)

	b := s.storage()
	copy(b[at+fits:at+fits+kept], b[at:at+kept])
	s.setLen(at + fits + kept)
	return b[at : at+fits]
}

// InsertFill inserts count copies of fill at index.
func (s *Str[S]) InsertFill(index, count int, fill byte) {
	gap := s.open(index, count)
	for i := range gap {
		gap[i] = fill
	}
}

// Insert inserts src at index. src may alias the string's own storage.
func (s *Str[S]) Insert(index int, src []byte) {
	if overlaps(src, s.storage()) {
		var tmp [maxBudget]byte
		src = tmp[:copy(tmp[:], src)]
	}
	copy(s.open(index, len(src)), src)
}

func (s *Str[S]) InsertString(index int, src string) {
	copy(s.open(index, len(src)), src)
}

// InsertCString inserts src up to its first zero byte, scanning at most Cap() bytes.
func (s *Str[S]) InsertCString(index int, src []byte) {
	s.Insert(index, src[:cstrlen(src, s.Cap())])
}

func (s *Str[S]) InsertView(index int, v arr.Sequence[byte]) {
	s.Insert(index, v.Data())
}

// --- Appends are inserts at Len() ---

func (s *Str[S]) AppendFill(count int, fill byte) { s.InsertFill(s.Len(), count, fill) }
func (s *Str[S]) Append(src []byte)               { s.Insert(s.Len(), src) }
func (s *Str[S]) AppendString(src string)         { s.InsertString(s.Len(), src) }
func (s *Str[S]) AppendCString(src []byte)        { s.InsertCString(s.Len(), src) }
func (s *Str[S]) AppendView(v arr.Sequence[byte]) { s.InsertView(s.Len(), v) }

// AppendByte appends c if there is room. Unlike PushBack it never fails.
func (s *Str[S]) AppendByte(c byte) { s.InsertFill(s.Len(), 1, c) }

// --- Erase ---

// Erase removes up to count bytes starting at index. Ranges reaching past the
// end are cut at the end; empty or out-of-range ranges change nothing.
func (s *Str[S]) Erase(index, count int) {
	n := s.Len()
	if count <= 0 || index < 0 || index >= n {
		return
	}
	gone := interval.Minimum(count, n-index)
	b := s.storage()
	copy(b[index:], b[index+gone:n])
	s.setLen(n - gone)
}

// EraseAt removes the byte under pos, which must come from this string.
func (s *Str[S]) EraseAt(pos arr.Cursor[byte]) error {
	if !pos.Of(s) {
		return errs.Errorf(errs.InvalidArgument, "cursor does not belong to this string")
	}
	s.Erase(pos.Pos(), 1)
	return nil
}

// EraseRange removes [first, last), both taken from this string.
func (s *Str[S]) EraseRange(first, last arr.Cursor[byte]) error {
	if !first.Of(s) || !last.Of(s) {
		return errs.Errorf(errs.InvalidArgument, "cursor does not belong to this string")
	}
	d := arr.Distance(first, last)
	if d < 0 {
		return errs.Errorf(errs.InvalidArgument, "inverted range [%d, %d)", first.Pos(), last.Pos())
	}
	s.Erase(first.Pos(), d)
	return nil
}

// Concat returns a new string holding lhs followed by rhs. D must be able to
// hold both capacities in full; neither operand is modified.
func Concat[D, L, R Storage](lhs *Str[L], rhs *Str[R]) (Str[D], error) {
	var out Str[D]
	if need := lhs.Cap() + rhs.Cap(); out.Cap() < need {
		return out, errs.Errorf(errs.InvalidArgument, "capacity %d cannot hold %d + %d", out.Cap(), lhs.Cap(), rhs.Cap())
	}
	out.Append(lhs.Data())
	out.Append(rhs.Data())
	return out, nil
}

// cstrlen returns the index of the first zero byte in src[:limit], or the
// bounded length when there is none.
func cstrlen(src []byte, limit int) int {
	src = src[:interval.Minimum(len(src), limit)]
	if i := bytes.IndexByte(src, 0); i >= 0 {
		return i
	}
	return len(src)
}

func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}

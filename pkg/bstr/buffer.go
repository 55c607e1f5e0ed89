package bstr

import (
	"encoding"
	"fmt"
	"iter"
	"slices"

	"lil-go/pkg/arr"
	"lil-go/pkg/errs"
	"lil-go/pkg/interval"
)

//go:generate go run ../../cmd/gensizes -o storage_gen.go

// Buffer is the method set of every Str instantiation, for code that picks a
// budget at run time.
type Buffer interface {
	arr.Sequence[byte]
	fmt.Stringer
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	Cap() int
	Available() int
	Full() bool
	Empty() bool
	Bytes() []byte
	CString() []byte
	Layout() []byte

	At(i int) byte
	Get(i int) (byte, error)
	Set(i int, c byte) error
	Front() (byte, error)
	Back() (byte, error)
	Begin() arr.Cursor[byte]
	End() arr.Cursor[byte]
	All() iter.Seq2[int, byte]

	PushBack(c byte) error
	PopBack() (byte, error)
	Clear()

	InsertFill(index, count int, fill byte)
	Insert(index int, src []byte)
	InsertString(index int, src string)
	InsertCString(index int, src []byte)
	InsertView(index int, v arr.Sequence[byte])

	AppendFill(count int, fill byte)
	Append(src []byte)
	AppendString(src string)
	AppendCString(src []byte)
	AppendView(v arr.Sequence[byte])
	AppendByte(c byte)

	Erase(index, count int)
	EraseAt(pos arr.Cursor[byte]) error
	EraseRange(first, last arr.Cursor[byte]) error
}

var (
	_ Buffer = (*Str[[8]byte])(nil)
	_ Buffer = (*Str[[255]byte])(nil)
)

// Presets are the budgets New accepts.
var Presets = []int{8, 16, 32, 64, 128, 255}

var budgetRange = interval.New(1, maxBudget)

// New returns an empty Buffer with the given capacity budget (array length),
// which must be one of Presets.
func New(budget int) (Buffer, error) {
	if !budgetRange.InRange(budget) {
		return nil, errs.Errorf(errs.OutOfRange, "budget %d outside %d..%d", budget, budgetRange.Min, budgetRange.Max)
	}
	switch budget {
	case 8:
		return new(Str[[8]byte]), nil
	case 16:
		return new(Str[[16]byte]), nil
	case 32:
		return new(Str[[32]byte]), nil
	case 64:
		return new(Str[[64]byte]), nil
	case 128:
		return new(Str[[128]byte]), nil
	case 255:
		return new(Str[[255]byte]), nil
	}
	return nil, errs.Errorf(errs.InvalidArgument, "budget %d is not a preset %v", budget, Presets)
}

// PresetFor returns the smallest preset budget whose capacity holds length bytes.
func PresetFor(length int) (int, error) {
	i, _ := slices.BinarySearch(Presets, length+1)
	if i == len(Presets) {
		return 0, errs.Errorf(errs.OutOfRange, "no preset holds %d bytes", length)
	}
	return Presets[i], nil
}

// Budget returns the capacity budget (array length) of b.
func Budget(b Buffer) int {
	return b.Cap() + 1
}

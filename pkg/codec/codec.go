// Package codec gob-encodes values and pushes the bytes through a transform
// pipeline, so the same snapshot can be written raw or compressed.
package codec

import (
	"bytes"
	"encoding/gob"
	"io"

	"lil-go/pkg/errs"
	"lil-go/pkg/transform"
)

func Encode[T any](x T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(x); err != nil {
		return nil, errs.Wrap(errs.EncodeFail, err, "gob encode")
	}
	return buf.Bytes(), nil
}

func Decode[T any](data []byte) (*T, error) {
	var x T
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&x); err != nil {
		return nil, errs.Wrap(errs.DecodeFail, err, "gob decode")
	}
	return &x, nil
}

// Codec encodes T and applies a transform to the encoded bytes.
type Codec[T any] struct {
	tr transform.Transform
}

// NewCodec returns a codec over tr; a nil tr leaves the gob bytes untouched.
func NewCodec[T any](tr transform.Transform) *Codec[T] {
	if tr == nil {
		tr = transform.NewNoOpTransform()
	}
	return &Codec[T]{tr: tr}
}

func (c *Codec[T]) Encode(x T) ([]byte, error) {
	data, err := Encode(x)
	if err != nil {
		return nil, err
	}
	out, err := c.tr.Apply(data)
	if err != nil {
		return nil, errs.Wrap(errs.EncodeFail, err, "transform")
	}
	return out, nil
}

func (c *Codec[T]) Decode(data []byte) (*T, error) {
	raw, err := c.tr.Reverse(data)
	if err != nil {
		return nil, errs.Wrap(errs.DecodeFail, err, "transform")
	}
	return Decode[T](raw)
}

// Write encodes x to w in one piece.
func (c *Codec[T]) Write(w io.Writer, x T) (int, error) {
	data, err := c.Encode(x)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return n, errs.Wrap(errs.TxFail, err, "write")
	}
	return n, nil
}

// Read consumes r to EOF and decodes its content.
func (c *Codec[T]) Read(r io.Reader) (*T, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.RxFail, err, "read")
	}
	return c.Decode(data)
}

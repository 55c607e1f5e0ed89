// Package transform holds reversible byte pipelines applied to buffer snapshots
// before they leave the process (export files, HTTP bodies).
package transform

import (
	"strings"

	"github.com/klauspost/compress/zstd"

	"lil-go/pkg/errs"
)

type Transform interface {
	Apply(data []byte) ([]byte, error)
	Reverse(data []byte) ([]byte, error)
}

type noOpTransform struct{}

func NewNoOpTransform() Transform                            { return &noOpTransform{} }
func (n *noOpTransform) Apply(data []byte) ([]byte, error)   { return data, nil }
func (n *noOpTransform) Reverse(data []byte) ([]byte, error) { return data, nil }

// Names accepted by ForName, as found in the compression config key.
const (
	None = "none"
	Gzip = "gzip"
	Zstd = "zstd"
)

// ForName returns the transform registered under name. The empty name is None.
// Names joined by "+" build a pipeline applied left to right, e.g. "zstd+gzip".
func ForName(name string) (Transform, error) {
	if parts := strings.Split(name, "+"); len(parts) > 1 {
		pipeline := make([]Transform, 0, len(parts))
		for _, part := range parts {
			t, err := ForName(part)
			if err != nil {
				return nil, err
			}
			pipeline = append(pipeline, t)
		}
		return NewPayloadProcessor(pipeline...)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", None:
		return NewNoOpTransform(), nil
	case Gzip:
		return NewGzipTransform(), nil
	case Zstd:
		return NewZstdTransform(zstd.SpeedDefault)
	}
	return nil, errs.Errorf(errs.InvalidArgument, "unknown compression %q (want %s, %s or %s)", name, None, Gzip, Zstd)
}

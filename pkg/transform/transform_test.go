package transform

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zstd"

	"lil-go/pkg/errs"
)

var payload = bytes.Repeat([]byte("fixed capacity buffers "), 64)

func TestRoundTrip(t *testing.T) {
	z, err := NewZstdTransform(zstd.SpeedFastest)
	if err != nil {
		t.Fatalf("NewZstdTransform failed: %v", err)
	}
	tests := []struct {
		name string
		tr   Transform
	}{
		{"none", NewNoOpTransform()},
		{"gzip", NewGzipTransform()},
		{"zstd", z},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.tr.Apply(payload)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if tt.name != "none" && len(out) >= len(payload) {
				t.Errorf("expected compression, got %d >= %d bytes", len(out), len(payload))
			}
			back, err := tt.tr.Reverse(out)
			if err != nil {
				t.Fatalf("Reverse failed: %v", err)
			}
			if !bytes.Equal(back, payload) {
				t.Errorf("expected round trip to restore the payload")
			}
		})
	}
}

func TestReverseRejectsGarbage(t *testing.T) {
	garbage := []byte("definitely not compressed")
	if _, err := NewGzipTransform().Reverse(garbage); err == nil {
		t.Error("expected gzip to reject garbage")
	}
	z, _ := NewZstdTransform(zstd.SpeedDefault)
	if _, err := z.Reverse(garbage); err == nil {
		t.Error("expected zstd to reject garbage")
	}
}

func TestForName(t *testing.T) {
	for _, name := range []string{"", "none", "GZIP", " zstd ", "zstd+gzip"} {
		if _, err := ForName(name); err != nil {
			t.Errorf("ForName(%q) failed: %v", name, err)
		}
	}
	for _, name := range []string{"lz4", "zstd+lz4"} {
		if _, err := ForName(name); !errors.Is(err, errs.InvalidArgument) {
			t.Errorf("ForName(%q): expected InvalidArgument, got %v", name, err)
		}
	}
}

func TestPayloadProcessor(t *testing.T) {
	if _, err := NewPayloadProcessor(); err == nil {
		t.Fatal("expected an empty pipeline to be rejected")
	}
	z, _ := NewZstdTransform(zstd.SpeedFastest)
	p, err := NewPayloadProcessor(z, NewGzipTransform())
	if err != nil {
		t.Fatalf("NewPayloadProcessor failed: %v", err)
	}
	out, err := p.PrepareOutput(payload)
	if err != nil {
		t.Fatalf("PrepareOutput failed: %v", err)
	}
	// The outer layer is gzip.
	if out[0] != 0x1f || out[1] != 0x8b {
		t.Errorf("expected gzip magic, got % x", out[:2])
	}
	back, err := p.ParseInput(out)
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if !bytes.Equal(back, payload) {
		t.Error("expected round trip to restore the payload")
	}
}

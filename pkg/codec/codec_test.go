package codec

import (
	"bytes"
	"errors"
	"testing"

	"lil-go/pkg/bstr"
	"lil-go/pkg/errs"
	"lil-go/pkg/transform"
)

type record struct {
	Name   string
	Budget int
	Layout []byte
}

func TestCodecOverTransforms(t *testing.T) {
	s := bstr.FromString[[16]byte]("snapshot")
	in := record{Name: "greeting", Budget: 16, Layout: s.Layout()}

	for _, name := range []string{transform.None, transform.Gzip, transform.Zstd} {
		t.Run(name, func(t *testing.T) {
			tr, err := transform.ForName(name)
			if err != nil {
				t.Fatalf("ForName failed: %v", err)
			}
			c := NewCodec[record](tr)
			var buf bytes.Buffer
			if _, err := c.Write(&buf, in); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			out, err := c.Read(&buf)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if out.Name != in.Name || out.Budget != in.Budget || !bytes.Equal(out.Layout, in.Layout) {
				t.Errorf("expected %+v, got %+v", in, *out)
			}
		})
	}
}

func TestStrGobRoundTrip(t *testing.T) {
	in := bstr.FromString[[8]byte]("abc")
	data, err := Encode(&in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := Decode[bstr.Str[[8]byte]](data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !out.Equal(&in) {
		t.Errorf("expected %q, got %q", in.String(), out.String())
	}
}

func TestDecodeFailure(t *testing.T) {
	_, err := Decode[record]([]byte("not a gob stream"))
	if !errors.Is(err, errs.DecodeFail) {
		t.Errorf("expected DecodeFail, got %v", err)
	}
	_, err = NewCodec[record](transform.NewGzipTransform()).Decode([]byte("plain"))
	if !errors.Is(err, errs.DecodeFail) {
		t.Errorf("expected DecodeFail from a failed transform, got %v", err)
	}
}

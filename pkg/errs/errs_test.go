package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorfMatchesCode(t *testing.T) {
	err := Errorf(OutOfRange, "index %d out of bounds (length %d)", 7, 3)
	if !errors.Is(err, OutOfRange) {
		t.Fatalf("expected errors.Is(err, OutOfRange), got %v", err)
	}
	if errors.Is(err, ResourceFull) {
		t.Errorf("did not expect %v to match ResourceFull", err)
	}
	expected := "OutOfRange: index 7 out of bounds (length 3)"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, None},
		{"bare code", ResourceEmpty, ResourceEmpty},
		{"wrapped twice", fmt.Errorf("store: %w", Errorf(DataCorrupted, "bad marker")), DataCorrupted},
		{"foreign error", errors.New("boom"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{InvalidArgument, "InvalidArgument"},
		{KeyExpired, "KeyExpired"},
		{UserError + 3, "UserError(0x103)"},
		{Last, "Code(0x27)"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestWrap(t *testing.T) {
	if Wrap(DecodeFail, nil, "ignored") != nil {
		t.Fatal("expected nil for a nil error")
	}
	cause := errors.New("unexpected EOF")
	err := Wrap(DecodeFail, cause, "decode snapshot")
	if !errors.Is(err, DecodeFail) || !errors.Is(err, cause) {
		t.Errorf("expected both code and cause in the chain, got %v", err)
	}
	if err.Error() != "DecodeFail: decode snapshot: unexpected EOF" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

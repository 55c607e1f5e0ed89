package fn

import "testing"

func TestT(t *testing.T) {
	if T(true, "a", "b") != "a" || T(false, 1, 2) != 2 {
		t.Error("unexpected ternary result")
	}
}

func TestOr(t *testing.T) {
	if got := Or(0, 0, 64, 8); got != 64 {
		t.Errorf("expected 64, got %d", got)
	}
	if got := Or("", ""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := Or[int](); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

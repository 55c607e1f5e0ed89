package assert

import (
	"errors"
	"strings"
	"testing"

	"lil-go/pkg/errs"
)

func TestThatDisabledIsSilent(t *testing.T) {
	Enable(false)
	That(false, errs.OutOfRange, "1 < 0")
}

func TestThatEnabledPanics(t *testing.T) {
	Enable(true)
	defer Enable(false)

	defer func() {
		r := recover()
		f, ok := r.(*Failure)
		if !ok {
			t.Fatalf("expected *Failure panic, got %#v", r)
		}
		if f.Code != errs.OutOfRange {
			t.Errorf("expected OutOfRange, got %v", f.Code)
		}
		if !errors.Is(f, errs.OutOfRange) {
			t.Errorf("expected failure to unwrap to its code")
		}
		if !strings.Contains(f.Location, "assert_test.go") {
			t.Errorf("expected location in the test file, got %s", f.Location)
		}
	}()
	That(false, errs.OutOfRange, "n <= max")
}

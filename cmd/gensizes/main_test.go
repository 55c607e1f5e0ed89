package main

import (
	"go/parser"
	"go/token"
	"slices"
	"strings"
	"testing"

	"lil-go/pkg/bstr"
)

func TestBudgetsMatchCheckedIn(t *testing.T) {
	got, err := budgets(64, 8, 255)
	if err != nil {
		t.Fatalf("budgets failed: %v", err)
	}
	if !slices.Equal(got, bstr.Budgets) {
		t.Errorf("expected %v, got %v", bstr.Budgets, got)
	}
}

func TestBudgetsLimits(t *testing.T) {
	tests := []struct {
		name               string
		dense, step, limit int
	}{
		{"marker overflows a byte", 64, 8, 300},
		{"too many union terms", 255, 1, 255},
		{"dense past max", 80, 8, 64},
		{"zero step", 8, 0, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := budgets(tt.dense, tt.step, tt.limit); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGenerateParses(t *testing.T) {
	bs, _ := budgets(4, 4, 16)
	src, err := generate("bstr", bs)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := parser.ParseFile(token.NewFileSet(), "storage_gen.go", src, 0); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
	text := string(src)
	for _, want := range []string{"~[1]byte |", "~[12]byte |", "~[16]byte\n}", "1, 2, 3, 4, 8, 12, 16,"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in output:\n%s", want, text)
		}
	}
}

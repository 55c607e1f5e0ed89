package interval

import "testing"

func TestNewOrdersBounds(t *testing.T) {
	iv := New(10, -2)
	if iv.Min != -2 || iv.Max != 10 {
		t.Fatalf("expected [-2, 10], got [%d, %d]", iv.Min, iv.Max)
	}
}

func TestClip(t *testing.T) {
	iv := New(0, 9)
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{4, 4},
		{9, 9},
		{42, 9},
	}
	for _, tt := range tests {
		if got := iv.Clip(tt.in); got != tt.want {
			t.Errorf("Clip(%d): expected %d, got %d", tt.in, tt.want, got)
		}
		if iv.InRange(tt.in) != (tt.in == tt.want) {
			t.Errorf("InRange(%d) disagrees with Clip", tt.in)
		}
	}
}

func TestDeadband(t *testing.T) {
	iv := New(-1.0, 1.0)
	if got := iv.DeadbandMid(0.5); got != 0 {
		t.Errorf("expected midpoint 0, got %v", got)
	}
	if got := iv.Deadband(2.5, 0.25); got != 2.5 {
		t.Errorf("expected 2.5 outside the band, got %v", got)
	}
	if got := iv.Length(); got != 2 {
		t.Errorf("expected length 2, got %v", got)
	}
}

func TestIntersectUnion(t *testing.T) {
	a, b := New(1, 2), New(3, 4)
	if got := Intersect(a, b); got != New(2, 3) {
		t.Errorf("expected [2, 3], got %+v", got)
	}
	if got := Union(a, b); got != New(1, 4) {
		t.Errorf("expected [1, 4], got %+v", got)
	}
	c := New(0, 10)
	if got := Intersect(c, New(2, 20)); got != New(2, 10) {
		t.Errorf("expected [2, 10], got %+v", got)
	}
}

func TestMinimumMaximum(t *testing.T) {
	if Minimum(3, 7) != 3 || Maximum(3, 7) != 7 {
		t.Error("wrong min/max for ints")
	}
	if Minimum("b", "a") != "a" {
		t.Error("wrong min for strings")
	}
}

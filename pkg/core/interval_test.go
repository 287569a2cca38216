package core

import (
	"math"
	"testing"
)

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	i := NewInterval(0, 1)

	if !i.Contains(0) || !i.Contains(1) {
		t.Error("Contains should include both endpoints")
	}
	if i.Surrounds(0) || i.Surrounds(1) {
		t.Error("Surrounds should exclude both endpoints")
	}
	if !i.Surrounds(0.5) {
		t.Error("Surrounds should include interior values")
	}
	if EmptyInterval.Contains(0) {
		t.Error("Empty interval should contain nothing")
	}
	if !UniverseInterval.Contains(math.MaxFloat64) {
		t.Error("Universe interval should contain everything")
	}
}

func TestInterval_Clamp(t *testing.T) {
	i := NewInterval(0, 0.999)
	tests := []struct {
		in, expected float64
	}{
		{-1, 0},
		{0.5, 0.5},
		{1, 0.999},
	}
	for _, tt := range tests {
		if got := i.Clamp(tt.in); got != tt.expected {
			t.Errorf("Clamp(%g) = %g, expected %g", tt.in, got, tt.expected)
		}
	}
}

func TestInterval_ExpandAndUnion(t *testing.T) {
	expanded := NewInterval(1, 1).Expand(0.5)
	if expanded.Min != 0.75 || expanded.Max != 1.25 {
		t.Errorf("Expand(0.5) = %v, expected [0.75, 1.25]", expanded)
	}

	u := UnionInterval(NewInterval(0, 1), NewInterval(2, 3))
	if u.Min != 0 || u.Max != 3 {
		t.Errorf("Union = %v, expected [0, 3]", u)
	}

	shifted := NewInterval(0, 1).Shift(2)
	if shifted.Min != 2 || shifted.Max != 3 {
		t.Errorf("Shift(2) = %v, expected [2, 3]", shifted)
	}
}

package core

import (
	"math"
	"testing"
)

func TestVec3_Reflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	got := Reflect(v, n)
	if got != NewVec3(1, 1, 0) {
		t.Errorf("Reflect(%v, %v) = %v", v, n, got)
	}
}

func TestVec3_RefractStraightThrough(t *testing.T) {
	uv := NewVec3(0, -1, 0)
	n := NewVec3(0, 1, 0)
	got := Refract(uv, n, 1/1.5)
	if got.Subtract(uv).Length() > 1e-9 {
		t.Errorf("Normal incidence should not bend, got %v", got)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize of zero vector should be zero, got %v", got)
	}
}

func TestVec3_AxisAndMaxComponent(t *testing.T) {
	v := NewVec3(0.2, 0.9, 0.4)
	if v.Axis(0) != 0.2 || v.Axis(1) != 0.9 || v.Axis(2) != 0.4 {
		t.Errorf("Axis accessors wrong for %v", v)
	}
	if v.MaxComponent() != 0.9 {
		t.Errorf("MaxComponent() = %g", v.MaxComponent())
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}

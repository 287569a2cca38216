package core

import (
	"math"
	"testing"
)

func TestONB_IsOrthonormal(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, -1, 0),
		NewVec3(1, 2, 3),
		NewVec3(0.95, 0.1, 0),
	}

	for _, n := range normals {
		onb := NewONB(n)
		if math.Abs(onb.U.Length()-1) > 1e-9 || math.Abs(onb.V.Length()-1) > 1e-9 || math.Abs(onb.W.Length()-1) > 1e-9 {
			t.Errorf("ONB(%v) axes not unit length: %+v", n, onb)
		}
		if math.Abs(onb.U.Dot(onb.V)) > 1e-9 || math.Abs(onb.V.Dot(onb.W)) > 1e-9 || math.Abs(onb.U.Dot(onb.W)) > 1e-9 {
			t.Errorf("ONB(%v) axes not orthogonal: %+v", n, onb)
		}
		if onb.W.Subtract(n.Normalize()).Length() > 1e-9 {
			t.Errorf("ONB(%v) W axis should follow the normal, got %v", n, onb.W)
		}
	}
}

func TestONB_ZeroNormalFallsBack(t *testing.T) {
	onb := NewONB(Vec3{})
	if !onb.W.IsFinite() || onb.W.Length() == 0 {
		t.Errorf("Expected finite fallback basis for zero normal, got %+v", onb)
	}
}

func TestRandomCosineDirection_UpperHemisphere(t *testing.T) {
	sampler := NewSeededSampler(3, 5)
	for i := 0; i < 1000; i++ {
		d := RandomCosineDirection(sampler.Get2D())
		if d.Z < 0 {
			t.Fatalf("cosine direction below hemisphere: %v", d)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("cosine direction not unit length: %v", d)
		}
	}
}

func TestSampleOnUnitSphere_MeanIsZero(t *testing.T) {
	sampler := NewSeededSampler(9, 9)
	const n = 20000
	var sum Vec3
	for i := 0; i < n; i++ {
		sum = sum.Add(SampleOnUnitSphere(sampler.Get2D()))
	}
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.03 {
		t.Errorf("Expected uniform sphere samples to average near zero, got %v", mean)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(4, 2)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.Z != 0 || p.X*p.X+p.Y*p.Y > 1+1e-9 {
			t.Fatalf("disk sample outside unit disk: %v", p)
		}
	}
}

func TestSampleIndex(t *testing.T) {
	if got := SampleIndex(0, 4); got != 0 {
		t.Errorf("SampleIndex(0, 4) = %d", got)
	}
	if got := SampleIndex(0.99999999, 4); got != 3 {
		t.Errorf("SampleIndex(~1, 4) = %d", got)
	}
	if got := SampleIndex(0.5, 4); got != 2 {
		t.Errorf("SampleIndex(0.5, 4) = %d", got)
	}
}

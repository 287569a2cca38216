package pdf

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Monte Carlo estimate of ∫ f(ω) dω using p's own samples
func estimateIntegral(p core.PDF, f func(core.Vec3) float64, n int, sampler core.Sampler) float64 {
	sum := 0.0
	for i := 0; i < n; i++ {
		direction := p.Generate(sampler)
		value := p.Value(direction)
		if value > 0 {
			sum += f(direction) / value
		}
	}
	return sum / float64(n)
}

func TestCosinePDF_Normalization(t *testing.T) {
	normal := core.NewVec3(0.3, 0.8, -0.2).Normalize()
	p := NewCosinePDF(normal)
	sampler := core.NewSeededSampler(11, 13)

	// ∫ cos²θ over the hemisphere = 2π/3
	cosSquared := func(d core.Vec3) float64 {
		c := d.Normalize().Dot(normal)
		return c * c
	}
	got := estimateIntegral(p, cosSquared, 100000, sampler)
	expected := 2 * math.Pi / 3
	if math.Abs(got-expected)/expected > 0.02 {
		t.Errorf("cos² integral = %f, expected %f", got, expected)
	}

	// ∫ 1 over the hemisphere = 2π, which also checks Value integrates to 1
	one := func(core.Vec3) float64 { return 1 }
	got = estimateIntegral(p, one, 100000, sampler)
	if math.Abs(got-2*math.Pi)/(2*math.Pi) > 0.02 {
		t.Errorf("solid angle estimate = %f, expected %f", got, 2*math.Pi)
	}
}

func TestCosinePDF_BelowHemisphereIsZero(t *testing.T) {
	p := NewCosinePDF(core.NewVec3(0, 1, 0))
	if got := p.Value(core.NewVec3(0, -1, 0)); got != 0 {
		t.Errorf("Value below hemisphere = %g, expected 0", got)
	}
	if got := p.Value(core.NewVec3(0, 1, 0)); math.Abs(got-1/math.Pi) > 1e-12 {
		t.Errorf("Value along normal = %g, expected 1/π", got)
	}
}

func TestSpherePDF_Value(t *testing.T) {
	p := NewSpherePDF()
	sampler := core.NewSeededSampler(1, 1)
	for i := 0; i < 10; i++ {
		d := p.Generate(sampler)
		if got := p.Value(d); math.Abs(got-1/(4*math.Pi)) > 1e-15 {
			t.Fatalf("Value() = %g, expected 1/4π", got)
		}
	}
}

func TestMixturePDF_ValueIsAverage(t *testing.T) {
	a := NewCosinePDF(core.NewVec3(0, 0, 1))
	b := NewSpherePDF()
	m := NewMixturePDF(a, b)

	directions := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 1),
		core.NewVec3(0, 0, -1),
	}
	for _, d := range directions {
		expected := 0.5*a.Value(d) + 0.5*b.Value(d)
		if got := m.Value(d); math.Abs(got-expected) > 1e-15 {
			t.Errorf("Value(%v) = %g, expected %g", d, got, expected)
		}
	}
}

func TestMixturePDF_GeneratesHalfFromEach(t *testing.T) {
	up := NewCosinePDF(core.NewVec3(0, 0, 1))
	down := NewCosinePDF(core.NewVec3(0, 0, -1))
	m := NewMixturePDF(up, down)
	sampler := core.NewSeededSampler(21, 22)

	const n = 20000
	upCount := 0
	for i := 0; i < n; i++ {
		if m.Generate(sampler).Z > 0 {
			upCount++
		}
	}

	fraction := float64(upCount) / n
	if math.Abs(fraction-0.5) > 0.02 {
		t.Errorf("fraction from first component = %f, expected about 0.5", fraction)
	}
}

func TestHittablePDF_DelegatesToObject(t *testing.T) {
	light := geometry.NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), nil)
	origin := core.NewVec3(0, 0, 10)
	p := NewHittablePDF(light, origin)
	sampler := core.NewSeededSampler(3, 3)

	for i := 0; i < 100; i++ {
		d := p.Generate(sampler)
		if got, expected := p.Value(d), light.PDFValue(origin, d); got != expected || got <= 0 {
			t.Fatalf("Value(%v) = %g, expected %g > 0", d, got, expected)
		}
	}
}

package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func unitQuad() *Quad {
	return NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), nil)
}

func TestQuad_Hit(t *testing.T) {
	quad := unitQuad()

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectedT float64
		expectedU float64
		expectedV float64
	}{
		{"center", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), true, 5, 0.5, 0.5},
		{"corner", core.NewRay(core.NewVec3(-1, -1, 5), core.NewVec3(0, 0, -1)), true, 5, 0, 0},
		{"outside", core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1)), false, 0, 0, 0},
		{"parallel", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(1, 0, 0)), false, 0, 0, 0},
		{"behind", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)), false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := quad.Hit(tt.ray, testRange, nil)
			if ok != tt.expectHit {
				t.Fatalf("Hit() = %v, expected %v", ok, tt.expectHit)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if math.Abs(hit.U-tt.expectedU) > 1e-9 || math.Abs(hit.V-tt.expectedV) > 1e-9 {
				t.Errorf("Expected uv=(%f,%f), got (%f,%f)", tt.expectedU, tt.expectedV, hit.U, hit.V)
			}
			if !hit.FrontFace {
				t.Error("Expected front face for ray against the normal")
			}
		})
	}
}

func TestQuad_BoundingBoxIsPadded(t *testing.T) {
	box := unitQuad().BoundingBox()
	if box.Z.Size() < 0.0001 {
		t.Errorf("Flat quad should have a padded Z extent, got %v", box.Z)
	}
	if box.X.Min != -1 || box.X.Max != 1 || box.Y.Min != -1 || box.Y.Max != 1 {
		t.Errorf("Unexpected quad bounds %v", box)
	}
}

func TestQuad_PDF(t *testing.T) {
	quad := unitQuad()
	origin := core.NewVec3(0, 0, 10)

	// distance² / (cos · area) = 100 / 4
	if got := quad.PDFValue(origin, core.NewVec3(0, 0, -1)); math.Abs(got-25) > 1e-9 {
		t.Errorf("PDFValue straight down = %g, expected 25", got)
	}
	if got := quad.PDFValue(origin, core.NewVec3(0, 0, 1)); got != 0 {
		t.Errorf("PDFValue away from quad = %g, expected 0", got)
	}

	sampler := core.NewSeededSampler(5, 6)
	for i := 0; i < 200; i++ {
		direction := quad.SampleDirection(origin, sampler)
		if quad.PDFValue(origin, direction) <= 0 {
			t.Fatalf("Sampled direction %v should point at the quad", direction)
		}
	}
}

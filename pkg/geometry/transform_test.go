package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestTranslate_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	moved := NewTranslate(sphere, core.NewVec3(10, 0, 0))

	hit, ok := moved.Hit(core.NewRay(core.NewVec3(10, 0, 5), core.NewVec3(0, 0, -1)), testRange, nil)
	if !ok {
		t.Fatal("Expected hit on translated sphere")
	}
	if hit.P.Subtract(core.NewVec3(10, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected hit point in world space, got %v", hit.P)
	}

	if _, ok := moved.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), testRange, nil); ok {
		t.Error("Original position should no longer be hit")
	}

	if box := moved.BoundingBox(); box.X.Min < 8.99 || box.X.Max > 11.01 {
		t.Errorf("Unexpected translated bounds %v", box)
	}
}

func TestTranslate_ForwardsPDF(t *testing.T) {
	quad := unitQuad()
	moved := NewTranslate(quad, core.NewVec3(0, 0, -5))

	origin := core.NewVec3(0, 0, 5)
	got := moved.PDFValue(origin, core.NewVec3(0, 0, -1))
	if math.Abs(got-25) > 1e-9 {
		t.Errorf("PDFValue() = %g, expected 25 at distance 10", got)
	}
}

func TestRotateY(t *testing.T) {
	// A long thin box along X becomes a long thin box along Z after 90 degrees
	box := NewBox(core.NewVec3(-2, -0.5, -0.5), core.NewVec3(2, 0.5, 0.5), nil)
	rotated := NewRotateY(box, 90)

	bounds := rotated.BoundingBox()
	if math.Abs(bounds.Z.Size()-4) > 1e-9 || math.Abs(bounds.X.Size()-1) > 1e-9 {
		t.Errorf("Unexpected rotated bounds %v", bounds)
	}

	hit, ok := rotated.Hit(core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1)), testRange, nil)
	if !ok {
		t.Fatal("Expected hit along the rotated long axis")
	}
	if math.Abs(hit.T-8) > 1e-9 {
		t.Errorf("Expected t=8, got %f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected world-space normal (0,0,1), got %v", hit.Normal)
	}

	if _, ok := rotated.Hit(core.NewRay(core.NewVec3(1.5, 0, 10), core.NewVec3(0, 0, -1)), testRange, nil); ok {
		t.Error("Expected miss where the unrotated box used to be")
	}
}

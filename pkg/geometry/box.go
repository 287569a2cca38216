package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Box represents an axis-aligned box made up of 6 quads.
// Rotated boxes are built by wrapping a Box in RotateY and Translate.
type Box struct {
	NotLight
	Min, Max core.Vec3     // Opposite corners
	Material core.Material // Material for all faces
	faces    [6]*Quad      // The 6 quad faces
	bbox     core.AABB     // Cached bounding box
}

// NewBox creates a box with a and b as opposite vertices
func NewBox(a, b core.Vec3, material core.Material) *Box {
	box := &Box{
		Min:      core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max:      core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
		Material: material,
	}
	box.generateFaces()

	box.bbox = box.faces[0].BoundingBox()
	for _, face := range box.faces[1:] {
		box.bbox = core.SurroundingBox(box.bbox, face.BoundingBox())
	}
	return box
}

// generateFaces creates the 6 quad faces with outward-facing normals
func (b *Box) generateFaces() {
	lo, hi := b.Min, b.Max
	dx := core.NewVec3(hi.X-lo.X, 0, 0)
	dy := core.NewVec3(0, hi.Y-lo.Y, 0)
	dz := core.NewVec3(0, 0, hi.Z-lo.Z)

	b.faces[0] = NewQuad(core.NewVec3(lo.X, lo.Y, hi.Z), dx, dy, b.Material)          // front
	b.faces[1] = NewQuad(core.NewVec3(hi.X, lo.Y, hi.Z), dz.Negate(), dy, b.Material) // right
	b.faces[2] = NewQuad(core.NewVec3(hi.X, lo.Y, lo.Z), dx.Negate(), dy, b.Material) // back
	b.faces[3] = NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dz, dy, b.Material)          // left
	b.faces[4] = NewQuad(core.NewVec3(lo.X, hi.Y, hi.Z), dx, dz.Negate(), b.Material) // top
	b.faces[5] = NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dx, dz, b.Material)          // bottom
}

// Faces returns the six quads of the box
func (b *Box) Faces() [6]*Quad {
	return b.faces
}

// Hit tests the ray against all faces and returns the closest hit
func (b *Box) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	if !b.bbox.Hit(ray, rayT) {
		return nil, false
	}

	var closest *core.HitRecord
	closestSoFar := rayT.Max
	for _, face := range b.faces {
		if hit, ok := face.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}
	return closest, closest != nil
}

// BoundingBox returns the bounding box of the box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}

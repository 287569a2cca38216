package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Translate places an object at an offset without copying its geometry
type Translate struct {
	Object core.Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object moved by offset
func NewTranslate(object core.Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space and the hit point back out
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Object.Hit(offsetRay, rayT, sampler)
	if !ok {
		return nil, false
	}
	hit.P = hit.P.Add(t.Offset)
	return hit, true
}

func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

func (t *Translate) PDFValue(origin, direction core.Vec3) float64 {
	return t.Object.PDFValue(origin.Subtract(t.Offset), direction)
}

func (t *Translate) SampleDirection(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return t.Object.SampleDirection(origin.Subtract(t.Offset), sampler)
}

// RotateY rotates an object about the Y axis
type RotateY struct {
	Object   core.Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object core.Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Bound the rotated corners of the object's box
	lo := core.NewVec3(posInf, posInf, posInf)
	hi := core.NewVec3(-posInf, -posInf, -posInf)
	for _, corner := range object.BoundingBox().Corners() {
		p := r.toWorld(corner)
		lo = core.NewVec3(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z))
		hi = core.NewVec3(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z))
	}
	r.bbox = core.NewAABBFromPoints(lo, hi)

	return r
}

func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(r.cosTheta*v.X-r.sinTheta*v.Z, v.Y, r.sinTheta*v.X+r.cosTheta*v.Z)
}

func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(r.cosTheta*v.X+r.sinTheta*v.Z, v.Y, -r.sinTheta*v.X+r.cosTheta*v.Z)
}

// Hit rotates the ray into object space, then the hit point and normal back to world space
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(rotated, rayT, sampler)
	if !ok {
		return nil, false
	}
	hit.P = r.toWorld(hit.P)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}

func (r *RotateY) PDFValue(origin, direction core.Vec3) float64 {
	return r.Object.PDFValue(r.toObject(origin), r.toObject(direction))
}

func (r *RotateY) SampleDirection(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return r.toWorld(r.Object.SampleDirection(r.toObject(origin), sampler))
}

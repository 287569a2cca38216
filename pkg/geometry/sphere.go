package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

var posInf = math.Inf(1)

// Sphere represents a sphere shape, optionally moving linearly over the shutter interval
type Sphere struct {
	Center   core.Ray // Center at time 0 plus motion vector
	Radius   float64
	Material core.Material
	bbox     core.AABB
}

// NewSphere creates a stationary sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	return &Sphere{
		Center:   core.NewRay(center, core.Vec3{}),
		Radius:   radius,
		Material: material,
		bbox:     core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere whose center moves from center1 at time 0 to center2 at time 1
func NewMovingSphere(center1, center2 core.Vec3, radius float64, material core.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	box1 := core.NewAABBFromPoints(center1.Subtract(rvec), center1.Add(rvec))
	box2 := core.NewAABBFromPoints(center2.Subtract(rvec), center2.Add(rvec))
	return &Sphere{
		Center:   core.NewRay(center1, center2.Subtract(center1)),
		Radius:   radius,
		Material: material,
		bbox:     core.SurroundingBox(box1, box2),
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	center := s.Center.At(ray.Time)
	oc := center.Subtract(ray.Origin)

	// Quadratic equation coefficients with b = -2h
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 || a == 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Nearest root in the acceptable range
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:        root,
		P:        ray.At(root),
		Material: s.Material,
	}
	outwardNormal := hitRecord.P.Subtract(center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = sphereUV(outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// PDFValue returns the solid-angle density of the cone subtended by the sphere.
// From inside the sphere every direction hits it, so the density is uniform.
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	distanceSquared := s.Center.At(0).Subtract(origin).LengthSquared()
	radiusSquared := s.Radius * s.Radius
	if distanceSquared <= radiusSquared {
		return 1.0 / (4.0 * math.Pi)
	}

	if _, ok := s.Hit(core.NewRay(origin, direction), lightSampleRange, nil); !ok {
		return 0
	}

	cosThetaMax := math.Sqrt(1 - radiusSquared/distanceSquared)
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)
	if solidAngle <= 0 {
		return 0
	}
	return 1.0 / solidAngle
}

// SampleDirection returns a direction inside the cone subtended by the sphere
func (s *Sphere) SampleDirection(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := s.Center.At(0).Subtract(origin)
	distanceSquared := direction.LengthSquared()
	if distanceSquared <= s.Radius*s.Radius {
		return core.SampleOnUnitSphere(sampler.Get2D())
	}
	uvw := core.NewONB(direction)
	return uvw.Transform(randomToSphere(s.Radius, distanceSquared, sampler.Get2D()))
}

// randomToSphere samples a direction around +Z uniformly within the cone of a
// sphere of the given radius seen from distance sqrt(distanceSquared)
func randomToSphere(radius, distanceSquared float64, sample core.Vec2) core.Vec3 {
	z := 1 + sample.Y*(math.Sqrt(1-radius*radius/distanceSquared)-1)
	phi := 2 * math.Pi * sample.X
	sinTheta := math.Sqrt(math.Max(0, 1-z*z))
	return core.NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, z)
}

// sphereUV maps a point on the unit sphere to texture coordinates:
// u is the angle around Y from X=-1, v the angle from Y=-1 to Y=+1, both in [0,1]
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

package core

import "math"

// minAxisWidth is the smallest extent an AABB may have along any axis.
// Flat primitives such as quads would otherwise produce zero-thickness slabs.
const minAxisWidth = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB bounds nothing
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// NewAABB creates an AABB from per-axis intervals, padding degenerate axes
func NewAABB(x, y, z Interval) AABB {
	aabb := AABB{X: x, Y: y, Z: z}
	aabb.padToMinimums()
	return aabb
}

// NewAABBFromPoints creates an AABB with a and b as opposite corners
func NewAABBFromPoints(a, b Vec3) AABB {
	return NewAABB(
		NewInterval(math.Min(a.X, b.X), math.Max(a.X, b.X)),
		NewInterval(math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)),
		NewInterval(math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)),
	)
}

// SurroundingBox returns an AABB that bounds both a and b
func SurroundingBox(a, b AABB) AABB {
	return AABB{
		X: UnionInterval(a.X, b.X),
		Y: UnionInterval(a.Y, b.Y),
		Z: UnionInterval(a.Z, b.Z),
	}
}

func (aabb *AABB) padToMinimums() {
	if aabb.X.Size() < minAxisWidth {
		aabb.X = aabb.X.Expand(minAxisWidth)
	}
	if aabb.Y.Size() < minAxisWidth {
		aabb.Y = aabb.Y.Expand(minAxisWidth)
	}
	if aabb.Z.Size() < minAxisWidth {
		aabb.Z = aabb.Z.Expand(minAxisWidth)
	}
}

// AxisInterval returns the interval for axis 0 (X), 1 (Y) or 2 (Z).
// Any other axis is a programming error.
func (aabb AABB) AxisInterval(axis int) Interval {
	switch axis {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	}
	panic("core: AABB axis index out of range")
}

// Hit tests if a ray intersects the box within rayT using the slab method.
//
// A direction component of exactly zero puts no constraint on that axis when
// the origin lies inside the slab and misses otherwise, so no reciprocal of
// zero is ever taken.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	tMin, tMax := rayT.Min, rayT.Max

	for axis := 0; axis < 3; axis++ {
		slab := aabb.AxisInterval(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		if direction == 0 {
			if origin < slab.Min || origin > slab.Max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)

		if tMax <= tMin {
			return false
		}
	}

	return true
}

// LongestAxis returns the axis with the largest extent; later axes win ties
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x > y {
		if x > z {
			return 0
		}
		return 2
	}
	if y > z {
		return 1
	}
	return 2
}

// Translate returns the box moved by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Shift(offset.X),
		Y: aabb.Y.Shift(offset.Y),
		Z: aabb.Z.Shift(offset.Z),
	}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.X.ContainsInterval(other.X) &&
		aabb.Y.ContainsInterval(other.Y) &&
		aabb.Z.ContainsInterval(other.Z)
}

// ContainsPoint reports whether p lies strictly inside the box
func (aabb AABB) ContainsPoint(p Vec3) bool {
	return aabb.X.Surrounds(p.X) && aabb.Y.Surrounds(p.Y) && aabb.Z.Surrounds(p.Z)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return NewVec3(
		(aabb.X.Min+aabb.X.Max)*0.5,
		(aabb.Y.Min+aabb.Y.Max)*0.5,
		(aabb.Z.Min+aabb.Z.Max)*0.5,
	)
}

// Corners returns the eight corners of the box
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := 0; i < 8; i++ {
		x, y, z := aabb.X.Min, aabb.Y.Min, aabb.Z.Min
		if i&1 != 0 {
			x = aabb.X.Max
		}
		if i&2 != 0 {
			y = aabb.Y.Max
		}
		if i&4 != 0 {
			z = aabb.Z.Max
		}
		corners[i] = NewVec3(x, y, z)
	}
	return corners
}

package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// NotLight provides the light-sampling half of core.Hittable for objects
// that are never sampled directly: a zero density and a fixed direction.
type NotLight struct{}

// PDFValue always returns 0
func (NotLight) PDFValue(origin, direction core.Vec3) float64 {
	return 0
}

// SampleDirection always returns +X
func (NotLight) SampleDirection(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.NewVec3(1, 0, 0)
}

// lightSampleRange is the ray range used when probing a light from a shading point
var lightSampleRange = core.NewInterval(0.001, posInf)

// Package pdf provides the direction distributions used for importance sampling.
package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SpherePDF samples directions uniformly over the unit sphere
type SpherePDF struct{}

// NewSpherePDF creates a uniform sphere distribution
func NewSpherePDF() SpherePDF {
	return SpherePDF{}
}

func (SpherePDF) Value(direction core.Vec3) float64 {
	return 1 / (4 * math.Pi)
}

func (SpherePDF) Generate(sampler core.Sampler) core.Vec3 {
	return core.SampleOnUnitSphere(sampler.Get2D())
}

// CosinePDF samples the hemisphere around a normal proportionally to cos(theta)
type CosinePDF struct {
	uvw core.ONB
}

// NewCosinePDF creates a cosine-weighted distribution around normal
func NewCosinePDF(normal core.Vec3) CosinePDF {
	return CosinePDF{uvw: core.NewONB(normal)}
}

// Value returns max(0, cos(theta)) / pi
func (p CosinePDF) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	return math.Max(0, cosine/math.Pi)
}

func (p CosinePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.uvw.Transform(core.RandomCosineDirection(sampler.Get2D()))
}

// HittablePDF samples directions from an origin towards an object, usually the scene lights
type HittablePDF struct {
	Objects core.Hittable
	Origin  core.Vec3
}

// NewHittablePDF creates a distribution towards objects as seen from origin
func NewHittablePDF(objects core.Hittable, origin core.Vec3) HittablePDF {
	return HittablePDF{Objects: objects, Origin: origin}
}

func (p HittablePDF) Value(direction core.Vec3) float64 {
	return p.Objects.PDFValue(p.Origin, direction)
}

func (p HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.Objects.SampleDirection(p.Origin, sampler)
}

// MixturePDF is an equal-weight combination of two distributions
type MixturePDF struct {
	P [2]core.PDF
}

// NewMixturePDF mixes p0 and p1 with weight 0.5 each
func NewMixturePDF(p0, p1 core.PDF) MixturePDF {
	return MixturePDF{P: [2]core.PDF{p0, p1}}
}

func (m MixturePDF) Value(direction core.Vec3) float64 {
	return 0.5*m.P[0].Value(direction) + 0.5*m.P[1].Value(direction)
}

// Generate flips a coin to pick the component to sample from
func (m MixturePDF) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.P[0].Generate(sampler)
	}
	return m.P[1].Generate(sampler)
}

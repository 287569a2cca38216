package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

const (
	// minPDF is the smallest sampling density used as a denominator
	minPDF = 1e-12

	// maxSurvivalProbability caps Russian roulette so bright paths still terminate
	maxSurvivalProbability = 0.95

	// shadowAcneEpsilon offsets secondary ray starts from the surface
	shadowAcneEpsilon = 0.001
)

// PathTracer implements unidirectional path tracing with light sampling
type PathTracer struct {
	World      core.Hittable // Scene root, usually a BVH
	Lights     core.Hittable // Light-sampling geometry, nil when the scene has none
	MaxDepth   int
	Background core.Vec3 // Radiance for rays that leave the scene
}

// NewPathTracer creates a path tracer. An empty light list is treated as no lights.
func NewPathTracer(world, lights core.Hittable, maxDepth int, background core.Vec3) *PathTracer {
	if counted, ok := lights.(interface{ Len() int }); ok && counted.Len() == 0 {
		lights = nil
	}
	return &PathTracer{
		World:      world,
		Lights:     lights,
		MaxDepth:   maxDepth,
		Background: background,
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracer) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, pt.MaxDepth, sampler)
}

func (pt *PathTracer) rayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := pt.World.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)), sampler)
	if !isHit {
		return pt.Background
	}

	colorEmitted := hit.Material.Emitted(ray, hit)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return colorEmitted
	}

	survivalProbability, survives := russianRoulette(scatter.Attenuation, sampler)
	if !survives {
		return colorEmitted
	}

	if scatter.SkipPDF {
		colorScattered := scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.SkipPDFRay, depth-1, sampler))
		return colorEmitted.Add(colorScattered.Divide(survivalProbability))
	}

	return colorEmitted.Add(pt.sampleScattered(ray, hit, scatter, depth, survivalProbability, sampler))
}

// sampleScattered importance samples one bounce from the mixture of light and material densities
func (pt *PathTracer) sampleScattered(ray core.Ray, hit *core.HitRecord, scatter core.ScatterRecord, depth int, survivalProbability float64, sampler core.Sampler) core.Vec3 {
	samplingPDF := scatter.PDF
	if pt.Lights != nil {
		lightPDF := pdf.NewHittablePDF(pt.Lights, hit.P)
		samplingPDF = pdf.NewMixturePDF(lightPDF, scatter.PDF)
	}

	scattered := core.NewRayAtTime(hit.P, samplingPDF.Generate(sampler), ray.Time)
	pdfValue := samplingPDF.Value(scattered.Direction)
	if !usablePDF(pdfValue) {
		return core.Vec3{}
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	if scatteringPDF <= 0 {
		return core.Vec3{}
	}

	sampleColor := pt.rayColor(scattered, depth-1, sampler)
	weight := scatteringPDF / (pdfValue * survivalProbability)
	return scatter.Attenuation.MultiplyVec(sampleColor).Multiply(weight)
}

// russianRoulette continues a path with probability min(0.95, max attenuation channel)
func russianRoulette(attenuation core.Vec3, sampler core.Sampler) (float64, bool) {
	p := math.Min(maxSurvivalProbability, attenuation.MaxComponent())
	if !(p > 0) {
		return 0, false
	}
	if sampler.Get1D() >= p {
		return p, false
	}
	return p, true
}

// usablePDF rejects densities too small, infinite or NaN to divide by
func usablePDF(value float64) bool {
	return value >= minPDF && !math.IsInf(value, 0)
}

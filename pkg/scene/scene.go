package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	World      core.Hittable         // BVH over every object in the scene
	Lights     core.Hittable         // Emitters sampled for direct lighting; nil when none
	Camera     renderer.CameraConfig // Camera and image defaults for the scene
	Primitives int                   // Top-level objects before BVH construction
}

// newScene builds the BVH over objects and logs its shape
func newScene(name string, objects []core.Hittable, lights []core.Hittable, camera renderer.CameraConfig) *Scene {
	bvh := geometry.NewBVH(objects)
	stats := bvh.Stats()
	core.Logger().Debug("scene prepared", "scene", name, "objects", len(objects),
		"bvhNodes", stats.TotalNodes, "bvhMaxDepth", stats.MaxDepth, "bvhAvgDepth", stats.AvgDepth)

	s := &Scene{
		Name:       name,
		World:      bvh,
		Camera:     camera,
		Primitives: len(objects),
	}
	if len(lights) > 0 {
		s.Lights = geometry.NewHittableList(lights...)
	}
	return s
}

// lightSampler returns an invisible copy of an emissive quad for the light list
func lightSampler(q *geometry.Quad) *geometry.Quad {
	return geometry.NewQuad(q.Corner, q.U, q.V, material.Empty{})
}

// randomRange returns a random value in [lo, hi)
func randomRange(sampler core.Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// randomColor returns a color with each channel in [lo, hi)
func randomColor(sampler core.Sampler, lo, hi float64) core.Vec3 {
	return core.NewVec3(randomRange(sampler, lo, hi), randomRange(sampler, lo, hi), randomRange(sampler, lo, hi))
}

// bookCamera returns the camera settings shared by the outdoor scenes
func bookCamera(width int, aspect float64, samples int, lookFrom, lookAt core.Vec3, vfov float64, background core.Vec3) renderer.CameraConfig {
	return renderer.CameraConfig{
		VFov:            vfov,
		LookFrom:        lookFrom,
		LookAt:          lookAt,
		Up:              core.NewVec3(0, 1, 0),
		AspectRatio:     aspect,
		ImageWidth:      width,
		SamplesPerPixel: samples,
		MaxDepth:        50,
		DefocusAngle:    0,
		FocusDist:       lookFrom.Subtract(lookAt).Length(),
		Background:      background,
	}
}

var (
	skyBlue = core.NewVec3(0.70, 0.80, 1.00)
	black   = core.NewVec3(0, 0, 0)
)

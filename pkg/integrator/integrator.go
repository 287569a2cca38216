package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the linear radiance arriving along ray.
	// The sampler is owned by the calling worker and not shared.
	RayColor(ray core.Ray, sampler core.Sampler) core.Vec3
}

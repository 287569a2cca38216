package core

// Hittable is anything a ray can intersect: primitives, instances, lists and BVH nodes
type Hittable interface {
	// Hit returns the nearest intersection with t inside rayT.
	// The sampler is only consumed by participating media.
	Hit(ray Ray, rayT Interval, sampler Sampler) (*HitRecord, bool)

	// BoundingBox returns a box enclosing the object over the whole shutter interval
	BoundingBox() AABB

	// PDFValue returns the solid-angle density of sampling direction from origin
	// towards this object, 0 when the object cannot be sampled as a light
	PDFValue(origin, direction Vec3) float64

	// SampleDirection returns a direction from origin towards a random point on the object
	SampleDirection(origin Vec3, sampler Sampler) Vec3
}

// Material describes how a surface emits and scatters light
type Material interface {
	// Emitted returns the radiance emitted at the hit point towards the incoming ray
	Emitted(rayIn Ray, hit *HitRecord) Vec3

	// Scatter returns the scattering description for the hit, false when the ray is absorbed
	Scatter(rayIn Ray, hit *HitRecord, sampler Sampler) (ScatterRecord, bool)

	// ScatteringPDF returns the material's own density for the scattered direction
	ScatteringPDF(rayIn Ray, hit *HitRecord, scattered Ray) float64
}

// PDF is a sampleable probability distribution over directions
type PDF interface {
	Value(direction Vec3) float64
	Generate(sampler Sampler) Vec3
}

// HitRecord contains information about a ray-object intersection.
// It lives for one intersection query and only references its material.
type HitRecord struct {
	P         Vec3     // Point of intersection
	Normal    Vec3     // Surface normal, always facing against the ray
	T         float64  // Parameter t along the ray
	U, V      float64  // Surface parametrization
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// ScatterRecord contains the result of material scattering
type ScatterRecord struct {
	Attenuation Vec3 // Color attenuation
	PDF         PDF  // Distribution to draw the next direction from (nil when SkipPDF)
	SkipPDF     bool // Deterministic scattering that bypasses importance sampling
	SkipPDFRay  Ray  // The scattered ray when SkipPDF is set
}

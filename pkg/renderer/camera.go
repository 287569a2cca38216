package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera and image parameters
type CameraConfig struct {
	VFov            float64   // Vertical field of view in degrees
	LookFrom        core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera looks at
	Up              core.Vec3 // View up vector
	AspectRatio     float64   // Width / height
	ImageWidth      int       // Image width in pixels; height is derived
	SamplesPerPixel int
	MaxDepth        int     // Maximum ray bounce depth
	DefocusAngle    float64 // Variation angle of rays through each pixel, degrees; 0 disables depth of field
	FocusDist       float64 // Distance from LookFrom to the plane of perfect focus
	Background      core.Vec3
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		DefocusAngle:    0,
		FocusDist:       10,
		Background:      core.NewVec3(0.70, 0.80, 1.00),
	}
}

// Camera generates rays for rendering
type Camera struct {
	config        CameraConfig
	imageHeight   int
	sqrtSpp       int     // Stratification grid size per axis
	recipSqrtSpp  float64 // 1 / sqrtSpp
	center        core.Vec3
	pixel00       core.Vec3 // Center of pixel (0, 0)
	pixelDeltaU   core.Vec3 // Offset to the pixel to the right
	pixelDeltaV   core.Vec3 // Offset to the pixel below
	defocusDiskU  core.Vec3
	defocusDiskV  core.Vec3
	defocusActive bool
}

// NewCamera normalizes config and precomputes the view basis.
// Invalid values are replaced by safe defaults and reported at warn level.
func NewCamera(config CameraConfig) *Camera {
	config = normalizeConfig(config)
	logger := core.Logger()

	c := &Camera{config: config}
	c.imageHeight = max(1, int(float64(config.ImageWidth)/config.AspectRatio))
	c.sqrtSpp = int(math.Sqrt(float64(config.SamplesPerPixel)))
	c.recipSqrtSpp = 1.0 / float64(c.sqrtSpp)
	c.center = config.LookFrom

	// Viewport dimensions at the focus plane
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDist
	viewportWidth := viewportHeight * (float64(config.ImageWidth) / float64(c.imageHeight))

	// Orthonormal camera basis
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	if w == (core.Vec3{}) {
		logger.Warn("camera look direction is degenerate, looking down -Z", "lookFrom", config.LookFrom, "lookAt", config.LookAt)
		w = core.NewVec3(0, 0, 1)
	}
	up := config.Up
	if up.Cross(w).NearZero() {
		up = alternateUp(w)
		logger.Warn("camera up vector is parallel to the view direction, using alternate", "up", up)
	}
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)
	c.pixelDeltaU = viewportU.Divide(float64(config.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(w.Multiply(config.FocusDist)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	c.pixel00 = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDist * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))
	c.defocusDiskU = u.Multiply(defocusRadius)
	c.defocusDiskV = v.Multiply(defocusRadius)
	c.defocusActive = config.DefocusAngle > 0

	return c
}

// normalizeConfig replaces unusable values with safe minimums
func normalizeConfig(config CameraConfig) CameraConfig {
	logger := core.Logger()

	if config.ImageWidth <= 0 {
		logger.Warn("image width must be positive, using 1", "width", config.ImageWidth)
		config.ImageWidth = 1
	}
	if !(config.AspectRatio > 0) || math.IsInf(config.AspectRatio, 0) {
		logger.Warn("aspect ratio must be positive, using 1", "aspectRatio", config.AspectRatio)
		config.AspectRatio = 1
	}
	if config.SamplesPerPixel <= 0 {
		logger.Warn("samples per pixel must be positive, using 1", "samples", config.SamplesPerPixel)
		config.SamplesPerPixel = 1
	}
	if config.MaxDepth < 0 {
		config.MaxDepth = 0
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		logger.Warn("vertical field of view must be in (0, 180), using 90", "vfov", config.VFov)
		config.VFov = 90
	}
	if config.DefocusAngle < 0 {
		config.DefocusAngle = 0
	}
	if !(config.FocusDist > 0) {
		focusDist := config.LookFrom.Subtract(config.LookAt).Length()
		if focusDist == 0 {
			focusDist = 1
		}
		logger.Warn("focus distance must be positive, using look distance", "focusDist", config.FocusDist, "using", focusDist)
		config.FocusDist = focusDist
	}
	return config
}

// alternateUp picks a world axis that is not parallel to w
func alternateUp(w core.Vec3) core.Vec3 {
	if math.Abs(w.Y) < 0.9 {
		return core.NewVec3(0, 1, 0)
	}
	return core.NewVec3(0, 0, 1)
}

// Config returns the normalized configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.ImageWidth
}

// ImageHeight returns int(width / aspect), at least 1
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// GetRay returns a ray through pixel (i, j) offset from the pixel center by
// offset, with offset components in [-0.5, 0.5). The ray starts on the defocus
// disk and carries a random time in [0, 1).
func (c *Camera) GetRay(i, j int, offset core.Vec2, sampler core.Sampler) core.Ray {
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.defocusActive {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// stratifiedOffset jitters inside cell (si, sj) of the sqrtSpp × sqrtSpp pixel grid
func (c *Camera) stratifiedOffset(si, sj int, sample core.Vec2) core.Vec2 {
	return core.NewVec2(
		(float64(si)+sample.X)*c.recipSqrtSpp-0.5,
		(float64(sj)+sample.Y)*c.recipSqrtSpp-0.5,
	)
}

// uniformOffset jitters anywhere inside the pixel
func uniformOffset(sample core.Vec2) core.Vec2 {
	return core.NewVec2(sample.X-0.5, sample.Y-0.5)
}

package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns the color at surface coordinates (u, v) and point p.
	// UV is used for image textures, the point for solid textures.
	Value(u, v float64, p core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Albedo core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(albedo core.Vec3) *SolidColor {
	return &SolidColor{Albedo: albedo}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Vec3 {
	return s.Albedo
}

// CheckerTexture alternates two textures on a 3-D grid of cubes with side Scale
type CheckerTexture struct {
	invScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a checker pattern of two textures
func NewCheckerTexture(scale float64, even, odd Texture) *CheckerTexture {
	return &CheckerTexture{invScale: 1 / scale, Even: even, Odd: odd}
}

// NewCheckerColors creates a checker pattern of two solid colors
func NewCheckerColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

func (c *CheckerTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * p.X))
	y := int(math.Floor(c.invScale * p.Y))
	z := int(math.Floor(c.invScale * p.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Value(u, v, p)
	}
	return c.Odd.Value(u, v, p)
}

// missingTextureColor marks surfaces whose image could not be loaded
var missingTextureColor = core.NewVec3(0, 1, 1)

// ImageTexture maps UV coordinates onto an image.
// A texture without image data renders as solid cyan.
type ImageTexture struct {
	Image *loaders.ImageData
}

// NewImageTexture wraps already loaded image data
func NewImageTexture(image *loaders.ImageData) *ImageTexture {
	return &ImageTexture{Image: image}
}

// NewImageTextureFromFile loads filename through the texture search path.
// Load failures are logged and produce the cyan fallback texture so rendering can continue.
func NewImageTextureFromFile(filename string) *ImageTexture {
	image, err := loaders.LoadImage(filename)
	if err != nil {
		core.Logger().Warn("could not load texture image, using fallback color", "file", filename, "error", err)
		return &ImageTexture{}
	}
	return NewImageTexture(image)
}

// Value samples the texture at the given UV coordinates using nearest-neighbor filtering.
// V=0 is the bottom row of the image.
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	if t.Image == nil || t.Image.Height <= 0 || t.Image.Width <= 0 {
		return missingTextureColor
	}

	unit := core.NewInterval(0, 1)
	u = unit.Clamp(u)
	v = 1.0 - unit.Clamp(v) // flip to image rows

	x := int(u * float64(t.Image.Width))
	y := int(v * float64(t.Image.Height))
	return t.Image.At(x, y)
}

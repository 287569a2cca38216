package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds the linear color of every pixel, row-major from the top-left.
// Tiles write disjoint regions through Splice; reads happen after the render is joined.
type Framebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Bounds returns the image rectangle
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// Splice copies a tile's pixels, row-major within bounds, into the framebuffer
// under a single lock acquisition
func (f *Framebuffer) Splice(bounds image.Rectangle, pixels []core.Vec3) error {
	if !bounds.In(f.Bounds()) {
		return fmt.Errorf("splice bounds %v outside image %v", bounds, f.Bounds())
	}
	if len(pixels) != bounds.Dx()*bounds.Dy() {
		return fmt.Errorf("splice of %v needs %d pixels, got %d", bounds, bounds.Dx()*bounds.Dy(), len(pixels))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	rowWidth := bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		src := pixels[(y-bounds.Min.Y)*rowWidth : (y-bounds.Min.Y+1)*rowWidth]
		copy(f.pixels[y*f.width+bounds.Min.X:], src)
	}
	return nil
}

// At returns the linear color of pixel (x, y)
func (f *Framebuffer) At(x, y int) core.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pixels[y*f.width+x]
}

// intensity is the output range before scaling to bytes
var intensity = core.NewInterval(0.000, 0.999)

// linearToByte gamma-encodes one channel: int(256 * clamp(sqrt(max(x, 0)), 0, 0.999)).
// NaN encodes as 0.
func linearToByte(x float64) uint8 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	return uint8(256 * intensity.Clamp(math.Sqrt(x)))
}

// EncodeColor converts a linear color to gamma-encoded 8-bit channels
func EncodeColor(c core.Vec3) (r, g, b uint8) {
	return linearToByte(c.X), linearToByte(c.Y), linearToByte(c.Z)
}

// WritePPM writes the image as plain-text PPM (P3): a header followed by one
// "r g b" line per pixel
func (f *Framebuffer) WritePPM(w io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.width, f.height); err != nil {
		return fmt.Errorf("failed to write ppm header: %w", err)
	}
	for _, pixel := range f.pixels {
		r, g, b := EncodeColor(pixel)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("failed to write ppm pixel: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ppm: %w", err)
	}
	return nil
}

// ToRGBA converts the framebuffer to an 8-bit image with the same encoding as WritePPM
func (f *Framebuffer) ToRGBA() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()

	img := image.NewRGBA(f.Bounds())
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			r, g, b := EncodeColor(f.pixels[y*f.width+x])
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// WritePNG encodes the image as PNG
func (f *Framebuffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, f.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

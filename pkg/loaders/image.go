package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ImagesEnvVar names a directory searched first for texture images
const ImagesEnvVar = "RTW_IMAGES"

// ErrImageNotFound is returned when no search location holds the requested file
var ErrImageNotFound = errors.New("image not found")

// maxParentSearch is how many parent directories are probed for an images/ folder
const maxParentSearch = 6

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major from the top-left, channels in [0, 1]
}

// At returns the pixel at (x, y), clamping coordinates into the image
func (d *ImageData) At(x, y int) core.Vec3 {
	x = max(0, min(x, d.Width-1))
	y = max(0, min(y, d.Height-1))
	return d.Pixels[y*d.Width+x]
}

// SearchPaths returns the candidate locations for filename in lookup order:
// $RTW_IMAGES, the name itself, images/, then images/ in up to six parent directories
func SearchPaths(filename string) []string {
	var paths []string
	if dir := os.Getenv(ImagesEnvVar); dir != "" {
		paths = append(paths, filepath.Join(dir, filename))
	}
	paths = append(paths, filename, filepath.Join("images", filename))

	prefix := ""
	for i := 0; i < maxParentSearch; i++ {
		prefix = filepath.Join(prefix, "..")
		paths = append(paths, filepath.Join(prefix, "images", filename))
	}
	return paths
}

// ResolveImagePath returns the first existing search location for filename
func ResolveImagePath(filename string) (string, error) {
	for _, path := range SearchPaths(filename) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", filename, ErrImageNotFound)
}

// LoadImage resolves filename through the search path and decodes it.
// PNG, JPEG, BMP, TIFF, WebP and PPM are recognised by their headers.
func LoadImage(filename string) (*ImageData, error) {
	path, err := ResolveImagePath(filename)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	core.Logger().Debug("loaded image", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	return FromImage(img), nil
}

// FromImage converts an image to 8-bit RGB colors scaled to [0, 1], dropping alpha
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			pixels[y*width+x] = core.NewVec3(
				float64(c.R)/255.0,
				float64(c.G)/255.0,
				float64(c.B)/255.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

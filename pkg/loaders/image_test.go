package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"golang.org/x/image/bmp"
)

func testPattern() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // red
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})     // green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})     // blue
	return img
}

func writeImage(t *testing.T, path string, encode func(f *os.File) error) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
}

func checkPattern(t *testing.T, imageData *ImageData) {
	t.Helper()
	if imageData.Width != 2 || imageData.Height != 2 {
		t.Fatalf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}

	expected := []core.Vec3{
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}
	for i, want := range expected {
		if imageData.Pixels[i] != want {
			t.Errorf("pixel %d: expected %v, got %v", i, want, imageData.Pixels[i])
		}
	}
}

func TestLoadImage(t *testing.T) {
	tmpDir := t.TempDir()
	img := testPattern()

	tests := []struct {
		name   string
		file   string
		encode func(f *os.File) error
	}{
		{"png", "test.png", func(f *os.File) error { return png.Encode(f, img) }},
		{"bmp", "test.bmp", func(f *os.File) error { return bmp.Encode(f, img) }},
		{"ppm", "test.ppm", func(f *os.File) error {
			_, err := f.WriteString("P3\n# comment\n2 2\n255\n255 255 255\n255 0 0\n0 255 0\n0 0 255\n")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.file)
			writeImage(t, path, tt.encode)

			imageData, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			checkPattern(t, imageData)
		})
	}
}

func TestLoadImage_SearchesEnvDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeImage(t, filepath.Join(tmpDir, "earthmap.png"), func(f *os.File) error {
		return png.Encode(f, testPattern())
	})
	t.Setenv(ImagesEnvVar, tmpDir)

	imageData, err := LoadImage("earthmap.png")
	if err != nil {
		t.Fatalf("Expected image to be found via %s: %v", ImagesEnvVar, err)
	}
	checkPattern(t, imageData)
}

func TestSearchPaths_Order(t *testing.T) {
	t.Setenv(ImagesEnvVar, "/textures")
	paths := SearchPaths("a.png")

	expectedPrefix := []string{
		filepath.Join("/textures", "a.png"),
		"a.png",
		filepath.Join("images", "a.png"),
		filepath.Join("..", "images", "a.png"),
	}
	for i, want := range expectedPrefix {
		if paths[i] != want {
			t.Errorf("path %d: expected %q, got %q", i, want, paths[i])
		}
	}
	if len(paths) != 3+maxParentSearch {
		t.Errorf("Expected %d paths, got %d", 3+maxParentSearch, len(paths))
	}
}

func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent-texture-file.png")
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("Expected ErrImageNotFound, got %v", err)
	}
}

func TestLoadImageUndecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	writeImage(t, path, func(f *os.File) error {
		_, err := f.WriteString("definitely not an image")
		return err
	})

	if _, err := LoadImage(path); err == nil {
		t.Error("Expected decode error for garbage file")
	}
}

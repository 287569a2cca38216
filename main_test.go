package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		check       func(t *testing.T, opts cliOptions)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, opts cliOptions) {
				if opts.scene != "cornell-box" || opts.format != "ppm" || opts.tiles != 32 || opts.seed != 42 {
					t.Errorf("unexpected defaults: %+v", opts)
				}
			},
		},
		{
			name: "all overrides",
			args: []string{"-scene", "earth", "-width", "80", "-samples", "9", "-depth", "3", "-workers", "2", "-tiles", "4", "-seed", "7", "-format", "PNG", "-o", "out.png", "-v"},
			check: func(t *testing.T, opts cliOptions) {
				want := cliOptions{scene: "earth", width: 80, samples: 9, depth: 3, workers: 2, tiles: 4, seed: 7, format: "png", output: "out.png", verbose: true}
				if opts != want {
					t.Errorf("got %+v, want %+v", opts, want)
				}
			},
		},
		{name: "bad format", args: []string{"-format", "jpeg"}, expectError: true},
		{name: "unknown flag", args: []string{"-bogus"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, io.Discard)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected an error for args %v", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	base := renderer.DefaultCameraConfig()

	got := applyOverrides(base, cliOptions{})
	if got != base {
		t.Errorf("zero options changed the config: %+v", got)
	}

	got = applyOverrides(base, cliOptions{width: 33, samples: 4, depth: 2})
	if got.ImageWidth != 33 || got.SamplesPerPixel != 4 || got.MaxDepth != 2 {
		t.Errorf("overrides not applied: %+v", got)
	}
}

func TestRun_ListScenes(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), cliOptions{list: true}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, info := range scene.List() {
		if !strings.Contains(out.String(), info.ID) {
			t.Errorf("listing is missing scene %q", info.ID)
		}
	}
}

func TestRun_UnknownScene(t *testing.T) {
	err := run(context.Background(), cliOptions{scene: "nonexistent", format: "ppm", tiles: 4}, io.Discard)
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("error = %v, want ErrUnknownScene", err)
	}
}

func TestRun_RendersToStdout(t *testing.T) {
	var out bytes.Buffer
	opts := cliOptions{scene: "emissive-sphere", width: 8, samples: 1, tiles: 2, workers: 2, seed: 1, format: "ppm", output: "-"}
	if err := run(context.Background(), opts, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if lines[0] != "P3" || lines[1] != "8 8" || lines[2] != "255" {
		t.Fatalf("unexpected ppm header: %q", lines[:3])
	}
	if len(lines) != 3+64 {
		t.Errorf("got %d pixel lines, want 64", len(lines)-3)
	}
}

func TestRun_RendersPNGFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "render.png")
	opts := cliOptions{scene: "emissive-sphere", width: 8, samples: 1, tiles: 2, seed: 1, format: "png", output: filename}
	if err := run(context.Background(), opts, io.Discard); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	f, err := os.Open(filename)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a png: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("image size = %v, want 8x8", img.Bounds())
	}
}

func TestConvertPath(t *testing.T) {
	dir := t.TempDir()
	framebuffer := renderer.NewFramebuffer(2, 1)
	if err := framebuffer.Splice(framebuffer.Bounds(), []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 0.25, 1)}); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"a.ppm", "b.ppm"} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := framebuffer.WritePPM(f); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}

	if err := convertPath(dir); err != nil {
		t.Fatalf("convertPath failed: %v", err)
	}

	for _, name := range []string{"a.png", "b.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s is not a png: %v", name, err)
		}

		r, g, b, _ := img.At(1, 0).RGBA()
		if r>>8 != 0 || g>>8 != 128 || b>>8 != 255 {
			t.Errorf("%s pixel (1,0) = (%d,%d,%d), want (0,128,255)", name, r>>8, g>>8, b>>8)
		}
	}

	if err := convertPath(filepath.Join(dir, "missing.ppm")); err == nil {
		t.Error("expected an error converting a missing file")
	}
}

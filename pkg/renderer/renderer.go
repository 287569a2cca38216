package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Options controls how the image is split up and scheduled
type Options struct {
	TilesPerAxis int    // Tile grid size per axis, independent of image size
	MaxWorkers   int    // Maximum tiles rendered concurrently (0 = logical CPU count)
	Seed         uint64 // Base seed of every per-pixel random stream
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		TilesPerAxis: 32,
		MaxWorkers:   0, // Auto-detect CPU count
		Seed:         42,
	}
}

// Renderer renders a scene through a camera, one tile per admitted worker
type Renderer struct {
	camera     *Camera
	integrator integrator.Integrator
	options    Options
}

// NewRenderer creates a renderer for camera using the given integrator
func NewRenderer(camera *Camera, integratorInst integrator.Integrator, options Options) *Renderer {
	if options.TilesPerAxis <= 0 {
		options.TilesPerAxis = DefaultOptions().TilesPerAxis
	}
	if options.MaxWorkers <= 0 {
		options.MaxWorkers = DefaultWorkers()
	}
	return &Renderer{
		camera:     camera,
		integrator: integratorInst,
		options:    options,
	}
}

// Render path traces world as seen by the camera config. lights may be nil.
func Render(ctx context.Context, world, lights core.Hittable, config CameraConfig, options Options) (*Framebuffer, RenderStats, error) {
	camera := NewCamera(config)
	config = camera.Config()
	pathTracer := integrator.NewPathTracer(world, lights, config.MaxDepth, config.Background)
	return NewRenderer(camera, pathTracer, options).Render(ctx)
}

// Render renders every tile and returns the finished framebuffer.
// Any tile failure fails the whole render; cancelling ctx stops admitting tiles.
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	width, height := r.camera.ImageWidth(), r.camera.ImageHeight()
	framebuffer := NewFramebuffer(width, height)
	tiles := NewTileGrid(width, height, r.options.TilesPerAxis)
	tileRenderer := NewTileRenderer(r.camera, r.integrator, r.options.Seed)
	spp := r.camera.Config().SamplesPerPixel

	logger := core.Logger()
	logger.Info("render started", "width", width, "height", height, "samples", spp,
		"tiles", len(tiles), "workers", r.options.MaxWorkers)

	start := time.Now()
	peak, err := runTiles(ctx, tiles, r.options.MaxWorkers, func(tile Tile) error {
		return framebuffer.Splice(tile.Bounds, tileRenderer.RenderTile(tile))
	})

	stats := RenderStats{
		Width:           width,
		Height:          height,
		Tiles:           len(tiles),
		TotalPixels:     width * height,
		SamplesPerPixel: spp,
		TotalSamples:    width * height * spp,
		Workers:         r.options.MaxWorkers,
		PeakInFlight:    peak,
		Duration:        time.Since(start),
	}
	if err != nil {
		return nil, stats, fmt.Errorf("render failed: %w", err)
	}

	logger.Info("render finished", "duration", stats.Duration, "peakInFlight", stats.PeakInFlight,
		"samplesPerSecond", int(stats.SamplesPerSecond()))
	return framebuffer, stats, nil
}

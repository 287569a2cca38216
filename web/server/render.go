package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

const (
	defaultScene = "cornell-box"
	minWidth     = 16
	maxWidth     = 2000
	maxSamples   = 10000
	maxDepth     = 1000
	maxTiles     = 256
)

// RenderRequest represents a render request from the client. Zero values keep the scene defaults.
type RenderRequest struct {
	Scene   string // Scene name (e.g., "cornell-box")
	Width   int    // Image width
	Samples int    // Samples per pixel
	Depth   int    // Maximum bounce depth
	Tiles   int    // Tiles per image axis
	Seed    uint64
	Format  string // "png" or "ppm"
}

// parseRenderRequest parses and validates query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: defaultScene, Format: "png", Seed: renderer.DefaultOptions().Seed}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Tiles, err = parseIntParam(values, "tiles", renderer.DefaultOptions().TilesPerAxis, 1, maxTiles); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	if format := strings.ToLower(values.Get("format")); format != "" {
		if format != "png" && format != "ppm" {
			return nil, fmt.Errorf("format must be png or ppm, got: %s", format)
		}
		req.Format = format
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// cameraFor applies the request's overrides to the scene camera
func (req *RenderRequest) cameraFor(s *scene.Scene) renderer.CameraConfig {
	config := s.Camera
	if req.Width > 0 {
		config.ImageWidth = req.Width
	}
	if req.Samples > 0 {
		config.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		config.MaxDepth = req.Depth
	}
	return config
}

// handleRender renders a scene and responds with the encoded image.
// The render stops admitting tiles when the client disconnects.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
	}

	sceneObj, err := scene.Build(req.Scene)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	config := req.cameraFor(sceneObj)

	ctx := c.Request().Context()
	if err := s.renderSlots.Acquire(ctx, 1); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "render cancelled while queued"})
	}
	defer s.renderSlots.Release(1)

	if config.ImageWidth*config.SamplesPerPixel > 800*500 {
		core.Logger().Warn("large render requested, may render slowly", "scene", req.Scene,
			"width", config.ImageWidth, "samples", config.SamplesPerPixel)
	}

	options := renderer.Options{TilesPerAxis: req.Tiles, Seed: req.Seed}
	framebuffer, stats, err := renderer.Render(ctx, sceneObj.World, sceneObj.Lights, config, options)
	if err != nil {
		core.Logger().Warn("render failed", "scene", req.Scene, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Render error: " + err.Error()})
	}

	var buf bytes.Buffer
	contentType := "image/png"
	if req.Format == "ppm" {
		contentType = "image/x-portable-pixmap"
		err = framebuffer.WritePPM(&buf)
	} else {
		err = framebuffer.WritePNG(&buf)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	header := c.Response().Header()
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	header.Set("X-Render-Tiles", strconv.Itoa(stats.Tiles))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

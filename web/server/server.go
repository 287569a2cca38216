package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"
)

// Server handles web requests for the path tracer
type Server struct {
	port        int
	echo        *echo.Echo
	console     *Console
	renderSlots *semaphore.Weighted // Bounds concurrent renders; each render already uses every core
}

// Options configures a Server
type Options struct {
	Port              int
	ConcurrentRenders int      // Renders allowed at once; further requests wait
	Console           *Console // Recent log messages served at /api/console; may be nil
}

// NewServer creates a new web server with its routes registered
func NewServer(opts Options) *Server {
	if opts.ConcurrentRenders <= 0 {
		opts.ConcurrentRenders = 1
	}

	s := &Server{
		port:        opts.Port,
		echo:        echo.New(),
		console:     opts.Console,
		renderSlots: semaphore.NewWeighted(int64(opts.ConcurrentRenders)),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(corsMiddleware)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene-config", s.handleSceneConfig)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.GET("/api/console", s.handleConsole)
	s.echo.Static("/", "static")

	return s
}

// Handler exposes the router, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	core.Logger().Info("starting web server", "url", fmt.Sprintf("http://localhost%s", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes grouped by category
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"groups": scene.Groups()})
}

// handleSceneConfig returns the default camera configuration for a scene with validation limits
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	build, ok := scene.Lookup(sceneName)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown scene: " + sceneName})
	}
	config := build().Camera

	return c.JSON(http.StatusOK, map[string]any{
		"scene": sceneName,
		"defaults": map[string]any{
			"width":           config.ImageWidth,
			"aspectRatio":     config.AspectRatio,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]any{
			"width":   map[string]int{"min": minWidth, "max": maxWidth},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 1, "max": maxDepth},
		},
	})
}

// handleConsole returns the most recent log messages
func (s *Server) handleConsole(c echo.Context) error {
	if s.console == nil {
		return c.JSON(http.StatusOK, []ConsoleMessage{})
	}
	return c.JSON(http.StatusOK, s.console.Messages())
}

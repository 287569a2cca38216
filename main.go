package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// cliOptions holds the parsed command line. Zero numeric values keep the scene's defaults.
type cliOptions struct {
	scene   string
	width   int
	samples int
	depth   int
	workers int
	tiles   int
	seed    uint64
	format  string
	output  string
	convert string
	list    bool
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.scene, "scene", "cornell-box", "Scene to render (see -list)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Maximum tiles rendered concurrently (0 = logical CPU count)")
	fs.IntVar(&opts.tiles, "tiles", renderer.DefaultOptions().TilesPerAxis, "Tiles per image axis")
	fs.Uint64Var(&opts.seed, "seed", renderer.DefaultOptions().Seed, "Base random seed")
	fs.StringVar(&opts.format, "format", "ppm", "Output format: 'ppm' or 'png'")
	fs.StringVar(&opts.output, "o", "", "Output file, '-' for stdout (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.convert, "convert", "", "Convert a PPM file, or every PPM file in a directory, to PNG and exit")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose (debug) logging")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Tiled Monte Carlo path tracer")
		fmt.Fprintln(stderr, "Usage: pathtracer [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.format = strings.ToLower(opts.format)
	if opts.format != "ppm" && opts.format != "png" {
		return opts, fmt.Errorf("unsupported output format %q", opts.format)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		core.Logger().Error("pathtracer failed", "error", err)
		os.Exit(1)
	}
}

// run executes one CLI invocation: list, convert or render
func run(ctx context.Context, opts cliOptions, stdout io.Writer) error {
	switch {
	case opts.list:
		listScenes(stdout)
		return nil
	case opts.convert != "":
		return convertPath(opts.convert)
	}

	selectedScene, err := scene.Build(opts.scene)
	if err != nil {
		return err
	}

	config := applyOverrides(selectedScene.Camera, opts)
	renderOptions := renderer.Options{
		TilesPerAxis: opts.tiles,
		MaxWorkers:   opts.workers,
		Seed:         opts.seed,
	}

	framebuffer, stats, err := renderer.Render(ctx, selectedScene.World, selectedScene.Lights, config, renderOptions)
	if err != nil {
		return err
	}
	core.Logger().Info("render stats", "scene", selectedScene.Name, "width", stats.Width, "height", stats.Height,
		"samples", stats.TotalSamples, "tiles", stats.Tiles, "duration", stats.Duration.Round(time.Millisecond))

	if opts.output == "-" {
		return writeImage(stdout, framebuffer, opts.format)
	}

	filename := opts.output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", selectedScene.Name, fmt.Sprintf("render_%s.%s", timestamp, opts.format))
	}
	if err := saveImage(filename, framebuffer, opts.format); err != nil {
		return err
	}
	core.Logger().Info("render saved", "file", filename)
	return nil
}

// applyOverrides replaces scene camera defaults with any non-zero command line values
func applyOverrides(config renderer.CameraConfig, opts cliOptions) renderer.CameraConfig {
	if opts.width > 0 {
		config.ImageWidth = opts.width
	}
	if opts.samples > 0 {
		config.SamplesPerPixel = opts.samples
	}
	if opts.depth > 0 {
		config.MaxDepth = opts.depth
	}
	return config
}

func listScenes(w io.Writer) {
	for _, group := range scene.Groups() {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-18s %s\n", info.ID, info.Description)
		}
	}
}

func writeImage(w io.Writer, framebuffer *renderer.Framebuffer, format string) error {
	if format == "png" {
		return framebuffer.WritePNG(w)
	}
	return framebuffer.WritePPM(w)
}

func saveImage(filename string, framebuffer *renderer.Framebuffer, format string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := writeImage(file, framebuffer, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// convertPath converts path, or every .ppm file directly inside it, to PNG next to the source
func convertPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot convert %s: %w", path, err)
	}
	if !info.IsDir() {
		return convertPPM(path)
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.ppm"))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", path, err)
	}
	for _, match := range matches {
		if err := convertPPM(match); err != nil {
			return err
		}
	}
	core.Logger().Info("conversion finished", "dir", path, "files", len(matches))
	return nil
}

func convertPPM(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer in.Close()

	img, err := loaders.DecodePPM(in)
	if err != nil {
		return fmt.Errorf("cannot decode %s: %w", path, err)
	}

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("error saving PNG: %w", err)
	}
	core.Logger().Debug("converted", "from", path, "to", outPath)
	return out.Close()
}

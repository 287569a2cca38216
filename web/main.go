package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	renders := flag.Int("renders", 1, "Renders allowed to run at once")
	verbose := flag.Bool("v", false, "Verbose (debug) logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	console := server.NewConsole(200)
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	core.SetLogger(slog.New(server.NewConsoleHandler(console, textHandler, slog.LevelInfo)))

	webServer := server.NewServer(server.Options{Port: *port, ConcurrentRenders: *renders, Console: console})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			core.Logger().Error("shutdown failed", "error", err)
		}
	}()

	core.Logger().Info("path tracer web server", "port", *port)
	if err := webServer.Start(); err != nil {
		core.Logger().Error("error starting server", "error", err)
		os.Exit(1)
	}
}

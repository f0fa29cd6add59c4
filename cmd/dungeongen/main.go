// Package main is the entry point for dungeongen.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samdwyer/dungeongen/internal/config"
	"github.com/samdwyer/dungeongen/internal/presets"
	"github.com/samdwyer/dungeongen/internal/server"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/ui"
	"github.com/samdwyer/dungeongen/internal/world"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load .env file for local development
	if err := config.LoadDotEnv(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	serve := flag.Bool("serve", false, "run the HTTP server")
	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	seed := flag.Int64("seed", cfg.Seed, "generation seed (0 = time-based)")
	preset := flag.String("preset", cfg.Preset, "preset name")
	view := flag.Bool("view", false, "open the terminal preview")
	asJSON := flag.Bool("json", false, "print the map as JSON")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Continuing without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	registry, err := presets.LoadRegistry()
	if err != nil {
		log.Fatalf("Failed to load presets: %v", err)
	}

	if *serve {
		if err := runServer(ctx, logger, registry, *addr, *preset, cfg); err != nil {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := runOnce(ctx, logger, registry, *preset, resolveSeed(*seed), cfg.MaxSteps, *view, *asJSON); err != nil {
		logger.Error("generation failed", "err", err)
		os.Exit(1)
	}
}

func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

func runServer(ctx context.Context, logger *slog.Logger, registry *presets.Registry, addr, preset string, cfg config.Config) error {
	if _, err := registry.Get(preset); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(logger, registry, server.Defaults{
			Preset:   preset,
			MaxSteps: cfg.MaxSteps,
			Timeout:  cfg.Timeout,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "preset", preset)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runOnce(ctx context.Context, logger *slog.Logger, registry *presets.Registry, name string, seed int64, maxSteps int, view, asJSON bool) error {
	p, err := registry.Get(name)
	if err != nil {
		return err
	}
	params := p.Params(seed)
	params.MaxSteps = maxSteps

	m, err := world.New(world.WithLogger(logger)).Generate(ctx, params)
	if err != nil {
		return err
	}

	switch {
	case view:
		palette, err := ui.PaletteFrom(p.Palette)
		if err != nil {
			return err
		}
		v, err := ui.NewViewer(m, palette)
		if err != nil {
			return err
		}
		return v.Run(ctx)
	case asJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	default:
		fmt.Print(m.String())
		return nil
	}
}

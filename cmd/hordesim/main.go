package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/hordesim/internal/ai"
	"github.com/udisondev/hordesim/internal/config"
	"github.com/udisondev/hordesim/internal/db"
	"github.com/udisondev/hordesim/internal/game/episode"
	"github.com/udisondev/hordesim/internal/sim"
)

const (
	ConfigPath = "config/hordesim.yaml"

	// resultBuffer is how many finished episodes may wait for the writer.
	resultBuffer = 256
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("HORDESIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable AI debug logging if log level is debug
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	slog.Info("hordesim starting",
		"config", cfgPath,
		"scenario", cfg.Scenario,
		"tick", cfg.TickInterval,
		"seed", seed,
		"log_level", cfg.LogLevel)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	var recorder episode.Recorder
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		results := make(chan episode.Result, resultBuffer)
		recorder = episode.NewChanRecorder(results)

		writer := db.NewResultWriter(db.NewEpisodeRepository(database.Pool()), results)
		g.Go(func() error {
			if err := writer.Run(gctx); err != nil {
				return fmt.Errorf("result writer: %w", err)
			}
			return nil
		})
	} else {
		slog.Info("database disabled, episode results are only logged")
	}

	scenario, err := sim.NewScenario(cfg, rng, recorder)
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}
	runner := sim.NewRunner(scenario, cfg.TickInterval, cfg.MaxEpisodes)

	g.Go(func() error {
		// episode limit reached: stop the writer too
		defer cancel()

		if err := runner.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation error: %w", err)
	}

	slog.Info("hordesim stopped", "steps", runner.Steps(), "episodes", scenario.Finished())
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

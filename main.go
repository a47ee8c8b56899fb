package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/game"
	"github.com/pthm-cable/aquarium/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed for crab relocation (0 = time-based)")
	ticks := flag.Int("ticks", 10, "Ticks to run in headless mode")
	demo := flag.Bool("demo", false, "Run the scripted feeding demo")
	view := flag.Bool("view", false, "Open the interactive terminal viewer")
	sound := flag.Bool("sound", false, "Play tones in the viewer (overrides config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (empty = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *sound {
		cfg.Viewer.Sound = true
	}

	// Logs go to stderr; stdout carries the board in headless modes
	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	slog.SetDefault(newLogger(cfg.Logging.Format, level))

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.New(cfg, game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to create aquarium", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	if err := g.SpawnPopulation(); err != nil {
		// Skipped animals are already logged individually
		slog.Warn("starting population incomplete", "placed", g.Count(), "configured", len(cfg.Population))
	}

	slog.Info("starting aquarium",
		"seed", rngSeed,
		"width", cfg.Tank.Width,
		"height", cfg.Tank.Height,
		"animals", g.Count(),
	)

	switch {
	case *view:
		err = runViewer(g, cfg)
	case *demo:
		err = runDemo(g)
	default:
		err = runHeadless(g, *ticks)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		g.Close()
		os.Exit(1)
	}
	g.LogWorldState()
}

func newLogger(format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func runHeadless(g *game.Game, ticks int) error {
	if err := g.PrintBoard(os.Stdout); err != nil {
		return err
	}
	var printErr error
	g.RunTicks(ticks, func(int32) {
		if printErr == nil {
			printErr = g.PrintBoard(os.Stdout)
		}
	})
	if printErr != nil {
		return printErr
	}
	return g.PrintAll(os.Stdout)
}

func runDemo(g *game.Game) error {
	var printErr error
	g.RunDemo(func(tick int32) {
		if printErr != nil {
			return
		}
		if _, err := fmt.Fprintf(os.Stdout, "turn %d\n", tick); err != nil {
			printErr = err
			return
		}
		printErr = g.PrintBoard(os.Stdout)
	})
	if printErr != nil {
		return printErr
	}
	return g.PrintAll(os.Stdout)
}

func runViewer(g *game.Game, cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, stop := viewerContext()
	defer stop()

	v := ui.NewViewer(screen, g, ui.Options{
		TickInterval: time.Duration(cfg.Viewer.TickIntervalMs) * time.Millisecond,
		Sound:        cfg.Viewer.Sound,
	})
	return v.Run(ctx)
}

// viewerContext is cancelled on SIGINT or SIGTERM so the screen is restored.
func viewerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

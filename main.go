package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"tankdemo/app"
	"tankdemo/hal"
	"tankdemo/internal/buildinfo"
	"tankdemo/internal/config"
	"tankdemo/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a YAML config file.")
		renderer   = flag.String("renderer", "", "Renderer: immediate, buffered or software.")
		headless   = flag.Bool("headless", false, "Run without a window (software renderer only).")
		hz         = flag.Int("hz", 0, "Tick rate in headless mode.")
		ticks      = flag.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn or error.")
		version    = flag.Bool("version", false, "Print the build version and exit.")
	)
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = *loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "renderer":
			cfg.Renderer = *renderer
		case "headless":
			cfg.Headless.Enabled = *headless
		case "hz":
			cfg.Headless.Hz = *hz
		case "ticks":
			cfg.Headless.Ticks = *ticks
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("tank demo failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	newLoop := func(h hal.HAL) (hal.Loop, error) {
		return app.New(h, cfg, log)
	}

	if !cfg.Headless.Enabled {
		log.Info("opening window", zap.String("renderer", cfg.Renderer), zap.Int("fps", cfg.Window.FPS))
		return hal.RunWindow(hal.WindowConfig{
			Title:       cfg.Window.Title,
			Width:       cfg.Window.Width,
			Height:      cfg.Window.Height,
			Scale:       cfg.Window.Scale,
			TPS:         cfg.Window.FPS,
			Framebuffer: cfg.Renderer == config.RendererSoftware,
		}, newLoop)
	}

	kbd, err := scriptKeyboard(cfg.Headless)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("running headless",
		zap.Int("hz", cfg.Headless.Hz),
		zap.Uint64("ticks", cfg.Headless.Ticks),
		zap.String("clock", cfg.Headless.Clock),
		zap.Int("script_steps", len(cfg.Headless.Script)),
	)
	err = hal.RunHeadless(ctx, hal.HeadlessConfig{
		Hz:         cfg.Headless.Hz,
		Ticks:      cfg.Headless.Ticks,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Keyboard:   kbd,
		FixedClock: cfg.Headless.Clock == config.ClockFixed,
	}, newLoop)
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		return nil
	}
	return err
}

// scriptKeyboard resolves the configured key script.
func scriptKeyboard(cfg config.HeadlessConfig) (*hal.ScriptKeyboard, error) {
	steps := make([]hal.ScriptStep, 0, len(cfg.Script))
	for i, s := range cfg.Script {
		step := hal.ScriptStep{Frames: s.Frames}
		for _, name := range s.Keys {
			code, ok := hal.ParseKey(name)
			if !ok {
				return nil, fmt.Errorf("headless.script[%d]: unknown key %q", i, name)
			}
			step.Keys = append(step.Keys, code)
		}
		steps = append(steps, step)
	}
	return hal.NewScriptKeyboard(steps, cfg.Loop), nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ld49/drift/internal/app"
	"github.com/ld49/drift/internal/config"
	"github.com/ld49/drift/internal/data"
	"github.com/ld49/drift/internal/render"
	"github.com/ld49/drift/internal/render/ebitenrender"
	"github.com/ld49/drift/internal/render/termrender"
	"github.com/ld49/drift/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", os.Getenv("DRIFT_CONFIG"), "path to a TOML config file")
	frontend := flag.String("frontend", "ebiten", "ebiten or term")
	prof := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	// 1. Load config
	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if *frontend == "term" && cfg.Logging.File == "" {
		cfg.Logging.File = "drift.log"
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q", *prof)
	}

	// 3. Load data tables and scripts
	sprites := data.DefaultSprites()
	if cfg.Data.Sprites != "" {
		if sprites, err = data.LoadSpriteTable(cfg.Data.Sprites); err != nil {
			return err
		}
	}
	log.Info("sprite table", zap.Int("sprites", sprites.Count()), zap.Uint32("background_frames", sprites.BackgroundFrames))

	var lua *scripting.Engine
	if cfg.Scripting.Dir != "" {
		if lua, err = scripting.NewEngine(cfg.Scripting.Dir, log); err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer lua.Close()
	}

	// 4. Frontend
	switch *frontend {
	case "ebiten":
		return runEbiten(cfg, sprites, lua, log)
	case "term":
		return runTerminal(cfg, sprites, lua, log)
	}
	return fmt.Errorf("unknown frontend %q", *frontend)
}

func newApp(cfg *config.Config, sprites *data.SpriteTable, lua *scripting.Engine, r render.Renderer, log *zap.Logger) (*app.App, error) {
	a, err := app.New(app.Options{
		Config:   cfg,
		Sprites:  sprites,
		Lua:      lua,
		Renderer: r,
		Log:      log,
	})
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	return a, nil
}

func runEbiten(cfg *config.Config, sprites *data.SpriteTable, lua *scripting.Engine, log *zap.Logger) error {
	r := ebitenrender.NewRenderer(cfg.Game.WindowWidth, cfg.Game.WindowHeight)
	a, err := newApp(cfg, sprites, lua, r, log)
	if err != nil {
		return err
	}
	log.Info("opening window", zap.Uint32("width", cfg.Game.WindowWidth), zap.Uint32("height", cfg.Game.WindowHeight))
	g := ebitenrender.NewGame(a, r, log)
	if err := ebitenrender.Run(g, "Drift", int(cfg.Game.WindowWidth), int(cfg.Game.WindowHeight)); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	log.Info("window closed", zap.Uint64("ticks", a.Ticks()))
	return nil
}

func runTerminal(cfg *config.Config, sprites *data.SpriteTable, lua *scripting.Engine, log *zap.Logger) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer scr.Fini()
	scr.HideCursor()

	s := termrender.NewScreen(scr, cfg.Game.WindowWidth, cfg.Game.WindowHeight)
	a, err := newApp(cfg, sprites, lua, s, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = termrender.Run(ctx, a, scr, s, log)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("terminal closed", zap.Uint64("ticks", a.Ticks()))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		// The terminal frontend owns stdout.
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapCfg.Build()
}

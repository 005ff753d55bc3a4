package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/echomaze/internal/config"
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/levels"
	"github.com/vovakirdan/echomaze/internal/logging"
	"github.com/vovakirdan/echomaze/internal/storage"
)

// app holds what every command needs: the merged configuration, a logger,
// the level loader and, when it could be opened, the scores database.
type app struct {
	cfg    config.Config
	logger *log.Logger
	levels *levels.Loader
	store  *storage.Store

	logCloser io.Closer
}

// loadConfig reads the config file and applies the global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.DB = flagDBPath
	}
	if len(flagScenes) > 0 {
		cfg.Scenes = flagScenes
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp loads the configuration and opens the logger and loader. With
// withStore set it also opens the scores database; a database that cannot be
// opened is logged and the game runs without recording scores.
func newApp(withStore bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "source", cfg.Source, "tick_rate", cfg.TickRate)

	a := &app{
		cfg:       cfg,
		logger:    logger,
		levels:    levels.NewLoader(config.ExpandPath(cfg.LevelsDir)),
		logCloser: closer,
	}

	if withStore {
		store, err := storage.Open(cfg.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
			logger.Warn("scores disabled", "db", cfg.DB, "err", err)
		} else {
			a.store = store
		}
	}
	return a, nil
}

// Close releases the database and the log file.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close scores database", "err", err)
		}
	}
	_ = a.logCloser.Close()
}

// runtime returns the screen and timing settings for a local terminal.
func (a *app) runtime() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.TickRate,
		Seed:     a.cfg.Seed,
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

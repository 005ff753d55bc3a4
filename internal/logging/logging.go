// Package logging builds the game's structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echomaze/internal/config"
)

// Prefix is printed on every log line.
const Prefix = "echomaze"

// New creates a logger for cfg. The returned closer releases the log file
// and is never nil. A session owns the terminal, so "stdout" should only be
// used by commands that do not start one.
func New(cfg config.LogConfig) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		lvl, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = lvl
	}

	w, closer, err := open(cfg.File)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func open(file string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(file) {
	case "", "none", "off":
		return io.Discard, nopCloser{}, nil
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	}

	path := config.ExpandPath(file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: failed to open %s: %w", path, err)
	}
	return f, f, nil
}

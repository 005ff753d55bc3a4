// Package config provides YAML/TOML configuration loading for echomaze.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/echomaze/internal/audio"
	"github.com/vovakirdan/echomaze/internal/core"
)

// Config is the full game configuration.
type Config struct {
	TickRate  int          `yaml:"tick_rate" toml:"tick_rate"`
	Seed      int64        `yaml:"seed" toml:"seed"`
	Scenes    []string     `yaml:"scenes" toml:"scenes"`
	LevelsDir string       `yaml:"levels_dir" toml:"levels_dir"`
	Colors    ColorsConfig `yaml:"colors" toml:"colors"`
	Camera    CameraConfig `yaml:"camera" toml:"camera"`
	Player    PlayerConfig `yaml:"player" toml:"player"`
	OverlayMS int          `yaml:"overlay_ms" toml:"overlay_ms"` // how long transient messages stay up
	Log       LogConfig    `yaml:"log" toml:"log"`
	Audio     AudioConfig  `yaml:"audio" toml:"audio"`
	DB        string       `yaml:"db" toml:"db"`

	// Source is the file the configuration was read from.
	Source string `yaml:"-" toml:"-"`
}

// ColorsConfig sets the scene foreground and background.
type ColorsConfig struct {
	Fg string `yaml:"fg" toml:"fg"`
	Bg string `yaml:"bg" toml:"bg"`
}

// CameraConfig sets up the level camera.
type CameraConfig struct {
	Size      int     `yaml:"size" toml:"size"`           // window edge in map cells
	Quickness float64 `yaml:"quickness" toml:"quickness"` // 0 = every waypoint, 1 = jump
	Margin    int     `yaml:"margin" toml:"margin"`       // cells kept between player and window edge
}

// PlayerConfig sets scoring and sensing.
type PlayerConfig struct {
	StartScore        float64 `yaml:"start_score" toml:"start_score"`
	Penalty           float64 `yaml:"penalty" toml:"penalty"`                       // per tick outside a box
	CollisionCooldown int     `yaml:"collision_cooldown" toml:"collision_cooldown"` // ticks
	EchoRadius        int     `yaml:"echo_radius" toml:"echo_radius"`
}

// LogConfig sets where logs go. File may be "stderr" or "stdout".
type LogConfig struct {
	File  string `yaml:"file" toml:"file"`
	Level string `yaml:"level" toml:"level"`
}

// AudioConfig enables sound cues.
type AudioConfig struct {
	Enabled bool     `yaml:"enabled" toml:"enabled"`
	Bell    bool     `yaml:"bell" toml:"bell"`
	Events  []string `yaml:"events" toml:"events"` // cues that ring the bell; empty = defaults
}

// ColorsParsed returns the configured colors.
func (c Config) ColorsParsed() (fg, bg core.Color, err error) {
	fg, ok := core.ParseColor(c.Colors.Fg)
	if !ok {
		return 0, 0, fmt.Errorf("config: unknown color %q", c.Colors.Fg)
	}
	bg, ok = core.ParseColor(c.Colors.Bg)
	if !ok {
		return 0, 0, fmt.Errorf("config: unknown color %q", c.Colors.Bg)
	}
	return fg, bg, nil
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}
	if len(c.Scenes) == 0 {
		errs = append(errs, errors.New("scenes must not be empty"))
	}
	if _, _, err := c.ColorsParsed(); err != nil {
		errs = append(errs, err)
	}
	if c.Camera.Size <= 0 {
		errs = append(errs, fmt.Errorf("camera.size must be positive, got %d", c.Camera.Size))
	}
	if c.Camera.Quickness < 0 || c.Camera.Quickness > 1 {
		errs = append(errs, fmt.Errorf("camera.quickness must be within [0, 1], got %v", c.Camera.Quickness))
	}
	if c.Player.StartScore < 1 || c.Player.StartScore <= c.Player.Penalty {
		errs = append(errs, fmt.Errorf("player.start_score must be at least 1 and above player.penalty, got %v", c.Player.StartScore))
	}
	if c.Player.Penalty < 0 {
		errs = append(errs, fmt.Errorf("player.penalty must not be negative, got %v", c.Player.Penalty))
	}
	if c.Player.CollisionCooldown < 0 || c.Player.EchoRadius < 0 || c.OverlayMS < 0 {
		errs = append(errs, errors.New("collision_cooldown, echo_radius and overlay_ms must not be negative"))
	}
	if _, err := audio.ParseEvents(c.Audio.Events); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}

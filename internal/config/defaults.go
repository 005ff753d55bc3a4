package config

import (
	_ "embed"
)

//go:embed defaults/echomaze.yaml
var defaultYAML []byte

// DefaultScenes is the scene list played when none is configured.
var DefaultScenes = []string{"title", "level:1", "level:2", "level:3", "end"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickRate:  20,
		Scenes:    append([]string(nil), DefaultScenes...),
		LevelsDir: "levels",
		Colors: ColorsConfig{
			Fg: "black",
			Bg: "peach",
		},
		Camera: CameraConfig{
			Size:      24,
			Quickness: 0,
			Margin:    4,
		},
		Player: PlayerConfig{
			StartScore:        200,
			Penalty:           0.05,
			CollisionCooldown: 10,
			EchoRadius:        2,
		},
		OverlayMS: 500,
		Log: LogConfig{
			File:  "~/.echomaze/debug.log",
			Level: "info",
		},
		Audio: AudioConfig{
			Enabled: true,
			Bell:    true,
		},
		DB:     "~/.echomaze/scores.db",
		Source: "default",
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration.
// Search order: customPath -> ~/.echomaze/config.{yaml,toml} ->
// ./configs/echomaze.{yaml,toml} -> embedded default -> Default().
// Only a broken customPath is an error; other candidates are skipped when
// missing or unreadable. Values absent from the file keep their defaults.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	for _, p := range searchPaths() {
		if cfg, err := loadFile(p); err == nil {
			return cfg, nil
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil
	}
	cfg.Source = "embedded"
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".echomaze", "config.yaml"),
			filepath.Join(home, ".echomaze", "config.toml"))
	}
	return append(paths,
		filepath.Join("configs", "echomaze.yaml"),
		filepath.Join("configs", "echomaze.toml"))
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes data on top of Default(). ext selects TOML (".toml") or YAML.
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	if strings.EqualFold(ext, ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

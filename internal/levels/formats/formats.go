// Package formats provides the level file parsers.
package formats

import (
	"fmt"
	"strings"
)

// Level is the on-disk shape of a level, shared by every format.
type Level struct {
	ID       string     `yaml:"id" toml:"id"`
	Name     string     `yaml:"name" toml:"name"`
	Map      []string   `yaml:"map" toml:"map"`
	Start    []int      `yaml:"start,omitempty" toml:"start,omitempty"`
	Ends     [][]int    `yaml:"ends,omitempty" toml:"ends,omitempty"`
	Boxes    []Box      `yaml:"boxes,omitempty" toml:"boxes,omitempty"`
	Dialogue []Dialogue `yaml:"dialogue,omitempty" toml:"dialogue,omitempty"`
}

// Box is a colored region. Standing in it reveals the Reveal area of the
// maze (the whole maze when empty).
type Box struct {
	Color  string `yaml:"color" toml:"color"`
	At     []int  `yaml:"at" toml:"at"`
	Size   []int  `yaml:"size,omitempty" toml:"size,omitempty"`
	Reveal []int  `yaml:"reveal,omitempty" toml:"reveal,omitempty"`
}

// Dialogue is a message shown the first time the player steps on At.
type Dialogue struct {
	At   []int  `yaml:"at" toml:"at"`
	Text string `yaml:"text" toml:"text"`
}

// FormatExtensions returns supported file extensions in lookup order.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml", ".json"}
}

// Parse routes data to the parser for ext.
func Parse(data []byte, ext string) (Level, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

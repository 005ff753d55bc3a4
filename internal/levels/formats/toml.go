package formats

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML level file. Unknown keys are rejected.
func ParseTOML(data []byte) (Level, error) {
	var l Level
	meta, err := toml.Decode(string(data), &l)
	if err != nil {
		return Level{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Level{}, fmt.Errorf("toml decode: unknown keys %v", undecoded)
	}
	return l, nil
}

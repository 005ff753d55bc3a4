package scenes

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/echomaze/internal/levels"
	"github.com/vovakirdan/echomaze/internal/maze"
	"github.com/vovakirdan/echomaze/internal/registry"
)

// Default room counts of a random maze.
const (
	DefaultRandomWidth  = 12
	DefaultRandomHeight = 6
)

// NewRandom builds a level on a freshly carved maze. arg is "WxH" in rooms
// and may be empty. The maze is seeded from the runtime seed, so the same
// seed gives the same maze. Random mazes are not scored.
func NewRandom(env registry.Env, arg string) (*Level, error) {
	w, h, err := parseSize(arg)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(env.Runtime.Seed))
	m := maze.Generate(w, h, rng)

	lvl := levels.Level{
		ID:     "random",
		Name:   fmt.Sprintf("Random %dx%d", w, h),
		Map:    m.Grid(),
		Start:  m.Start,
		Ends:   m.Ends,
		Source: "generated",
	}
	return NewLevel(env, lvl, "")
}

func parseSize(arg string) (w, h int, err error) {
	if arg == "" {
		return DefaultRandomWidth, DefaultRandomHeight, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(arg), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid maze size %q, expected WxH", arg)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("invalid maze width %q: %w", ws, err)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("invalid maze height %q: %w", hs, err)
	}
	if w < 1 || h < 1 || w > 200 || h > 200 {
		return 0, 0, fmt.Errorf("maze size %dx%d out of range 1..200", w, h)
	}
	return w, h, nil
}

// Package registry provides a global registry for scene factories.
// Scene packages register themselves in init() functions, allowing the
// platform to build a scene sequence from configuration strings such as
// "title" or "level:2" without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echomaze/internal/audio"
	"github.com/vovakirdan/echomaze/internal/config"
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/levels"
	"github.com/vovakirdan/echomaze/internal/scene"
)

var (
	// ErrUnknownScene is returned for a spec whose id is not registered.
	ErrUnknownScene = errors.New("registry: unknown scene")
	// ErrConstruction wraps every failure to build a scene.
	ErrConstruction = errors.New("registry: scene construction failed")
)

// HighScores looks up the best recorded score of a level.
type HighScores interface {
	HighScore(levelID string) (int, error)
}

// Env is what factories need to build a scene for one session.
type Env struct {
	Runtime core.RuntimeConfig
	Config  config.Config
	Sink    core.Sink
	Levels  *levels.Loader
	Audio   *audio.Trigger // nil disables sound
	Logger  *log.Logger
	Scores  HighScores // nil hides high scores
}

// Log returns the env logger or a discarding one.
func (e Env) Log() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// Factory creates a scene. arg is the part of the spec after the colon.
type Factory func(env Env, arg string) (scene.Scene, error)

// Info contains metadata about a registered scene.
type Info struct {
	ID    string
	Title string
}

type entry struct {
	title   string
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a scene factory to the registry.
// Panics if a scene with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns information about all registered scenes, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for id, e := range entries {
		result = append(result, Info{ID: id, Title: e.title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// ParseSpec splits "id[:arg]".
func ParseSpec(spec string) (id, arg string) {
	id, arg, _ = strings.Cut(strings.TrimSpace(spec), ":")
	return id, arg
}

// Create builds the scene described by spec.
func Create(env Env, spec string) (scene.Scene, error) {
	id, arg := ParseSpec(spec)

	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", ErrConstruction, ErrUnknownScene, id)
	}

	s, err := e.factory(env, arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstruction, spec, err)
	}
	return s, nil
}

// Build creates every scene in order. Scenes are built eagerly so that a
// broken level is reported before the game starts.
func Build(env Env, specs []string) ([]scene.Scene, error) {
	scenes := make([]scene.Scene, 0, len(specs))
	for _, spec := range specs {
		s, err := Create(env, spec)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, s)
	}
	return scenes, nil
}

// Sequence builds the scenes and wraps them in a scene.Sequence.
func Sequence(env Env, specs []string) (*scene.Sequence, error) {
	scenes, err := Build(env, specs)
	if err != nil {
		return nil, err
	}
	return scene.NewSequence(scenes...)
}

// Package scene defines the Scene contract driven by the game loop and the
// forward-only Sequence the loop walks through.
//
// Each screen (title, level, ending) implements Scene. The loop only ever
// calls Reset and NextFrame; the optional interfaces below let it log,
// record scores and release resources without knowing concrete types.
package scene

import (
	"fmt"

	"github.com/vovakirdan/echomaze/internal/core"
)

// Scene is one unit of gameplay behavior.
type Scene interface {
	// Reset restores the state the scene had right after construction.
	// It may be called any number of times.
	Reset()

	// NextFrame runs one tick with the given input and returns the control
	// signal for the loop. It must accept the sentinel event (core.Empty()).
	// Drawing goes to the scene's sink as a side effect.
	// A non-nil error is unrecoverable and ends the run.
	NextFrame(ev core.InputEvent) (core.Signal, error)
}

// Exiter is implemented by scenes that hold resources (timers, overlays)
// which must be released when the loop leaves them.
type Exiter interface {
	OnExit()
}

// Loser is implemented by scenes that tell the player about a loss. The
// loop calls OnLose right after resetting the scene on SignalLose.
type Loser interface {
	OnLose()
}

// Named is implemented by scenes that have a display name for logs.
type Named interface {
	Name() string
}

// Scorer is implemented by scenes whose result is recorded when they finish.
type Scorer interface {
	// Score returns the key scores are stored under and the final score.
	Score() (key string, score int)
}

// NameOf returns the scene's name, or its type when it has none.
func NameOf(s Scene) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// Exit calls OnExit when the scene implements Exiter.
func Exit(s Scene) {
	if e, ok := s.(Exiter); ok {
		e.OnExit()
	}
}

// Lose calls OnLose when the scene implements Loser.
func Lose(s Scene) {
	if l, ok := s.(Loser); ok {
		l.OnLose()
	}
}

package scenes

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/registry"
	"github.com/vovakirdan/echomaze/internal/scene"
)

const echoHeader = "hit 'n' to end the game"

// Echo prints every key it receives. n moves on, r clears, q quits.
type Echo struct {
	*scene.Base
	lines []string
	dirty bool
}

// NewEcho creates the key echo scene.
func NewEcho(env registry.Env) (*Echo, error) {
	base, err := newBase(env)
	if err != nil {
		return nil, err
	}
	return &Echo{Base: base, dirty: true}, nil
}

// Name implements scene.Named.
func (e *Echo) Name() string { return "echo" }

// Reset implements scene.Scene.
func (e *Echo) Reset() {
	e.Release()
	e.lines = nil
	e.dirty = true
}

// Lines returns the lines printed so far.
func (e *Echo) Lines() []string {
	return append([]string(nil), e.lines...)
}

// NextFrame implements scene.Scene.
func (e *Echo) NextFrame(ev core.InputEvent) (core.Signal, error) {
	switch {
	case ev.IsEmpty():
	case ev.IsSequence:
		e.print(fmt.Sprintf("got sequence: (%q, %s, %d).", ev.Text, ev.Name(), int(ev.Code)))
	case strings.EqualFold(ev.Text, "n"):
		return core.SignalAdvance, nil
	case strings.EqualFold(ev.Text, "q"):
		return core.SignalQuit, nil
	case strings.EqualFold(ev.Text, "r"):
		return core.SignalReset, nil
	default:
		e.print(fmt.Sprintf("got %s.", ev.Text))
	}

	if e.dirty {
		e.dirty = false
		e.draw()
	}
	return core.SignalContinue, nil
}

func (e *Echo) print(line string) {
	e.lines = append(e.lines, line)
	// keep what fits below the header
	if max := e.Height - 1; max > 0 && len(e.lines) > max {
		e.lines = e.lines[len(e.lines)-max:]
	}
	e.dirty = true
}

func (e *Echo) draw() {
	e.ClearFrame()
	e.Text(0, 0, echoHeader)
	for i, line := range e.lines {
		e.Text(0, i+1, line)
	}
	e.Commit()
}

// OnExit implements scene.Exiter.
func (e *Echo) OnExit() { e.Release() }

package scenes

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echomaze/internal/audio"
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/registry"
	"github.com/vovakirdan/echomaze/internal/scene"
)

// End congratulates the player and lists the best score of every level in
// the configured sequence. Space or enter advances past it, any other key
// except r quits.
type End struct {
	*scene.Base
	scores   registry.HighScores
	levelIDs []string
	audio    *audio.Trigger
	logger   *log.Logger
	drawn    bool
}

// NewEnd creates the ending screen.
func NewEnd(env registry.Env) (*End, error) {
	base, err := newBase(env)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, spec := range env.Config.Scenes {
		if id, arg := registry.ParseSpec(spec); id == "level" && arg != "" {
			ids = append(ids, arg)
		}
	}
	return &End{
		Base:     base,
		scores:   env.Scores,
		levelIDs: ids,
		audio:    env.Audio,
		logger:   env.Log(),
	}, nil
}

// Name implements scene.Named.
func (e *End) Name() string { return "end" }

// Reset implements scene.Scene.
func (e *End) Reset() {
	e.Release()
	e.drawn = false
}

// NextFrame implements scene.Scene.
func (e *End) NextFrame(ev core.InputEvent) (core.Signal, error) {
	if !e.drawn {
		e.drawn = true
		e.draw()
		e.audio.Fire(audio.LevelUp)
		return core.SignalContinue, nil
	}
	switch {
	case ev.IsEmpty():
		return core.SignalContinue, nil
	case ev.Is("r"):
		return core.SignalReset, nil
	case isConfirm(ev):
		return core.SignalAdvance, nil
	}
	return core.SignalQuit, nil
}

func (e *End) draw() {
	e.ClearFrame()
	y := e.Height/2 - 2 - len(e.levelIDs)/2
	e.Centered(y, "You won :o")
	e.Frame.DrawHLine(e.Width/2-10, y+1, 20, '─')
	y += 2
	if e.scores != nil {
		for _, id := range e.levelIDs {
			best, err := e.scores.HighScore(id)
			if err != nil {
				e.logger.Warn("cannot read high score", "level", id, "err", err)
				continue
			}
			e.Centered(y, fmt.Sprintf("level %-4s best %5d", id, best))
			y++
		}
	}
	e.Centered(e.Height-2, "press any key to leave")
	e.Commit()
}

// OnExit implements scene.Exiter.
func (e *End) OnExit() { e.Release() }

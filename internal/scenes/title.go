package scenes

import (
	"github.com/vovakirdan/echomaze/internal/audio"
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/registry"
	"github.com/vovakirdan/echomaze/internal/scene"
)

// Title is the welcome screen. Space or Enter moves on.
type Title struct {
	*scene.Base
	audio *audio.Trigger
	drawn bool
}

// NewTitle creates the title screen.
func NewTitle(env registry.Env) (*Title, error) {
	base, err := newBase(env)
	if err != nil {
		return nil, err
	}
	return &Title{Base: base, audio: env.Audio}, nil
}

// Name implements scene.Named.
func (t *Title) Name() string { return "title" }

// Reset implements scene.Scene.
func (t *Title) Reset() {
	t.Release()
	t.drawn = false
}

// NextFrame implements scene.Scene.
func (t *Title) NextFrame(ev core.InputEvent) (core.Signal, error) {
	if !t.drawn {
		t.drawn = true
		t.draw()
		t.audio.Fire(audio.EnterGame)
	}
	switch {
	case isConfirm(ev):
		return core.SignalAdvance, nil
	case ev.Is("q"):
		return core.SignalQuit, nil
	}
	return core.SignalContinue, nil
}

func (t *Title) draw() {
	t.ClearFrame()
	mid := t.Height / 2
	w := 34
	t.Frame.DrawBox(core.NewRect((t.Width-w)/2, mid-4, w, 7))
	t.Centered(mid-2, "~ e c h o m a z e ~")
	t.Centered(mid, "find the way out of the dark")
	t.Centered(mid+1, "hit space to start")
	t.Centered(t.Height-2, "arrows move  space echo  p pause  r restart  q quit")
	t.Commit()
}

// OnExit implements scene.Exiter.
func (t *Title) OnExit() { t.Release() }

// Package scenes contains the concrete scenes of the game and registers
// them with the scene registry.
package scenes

import (
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/registry"
	"github.com/vovakirdan/echomaze/internal/scene"
)

func init() {
	registry.Register("title", "Title screen", func(env registry.Env, _ string) (scene.Scene, error) {
		return NewTitle(env)
	})
	registry.Register("echo", "Key echo tester", func(env registry.Env, _ string) (scene.Scene, error) {
		return NewEcho(env)
	})
	registry.Register("level", "Maze level", func(env registry.Env, arg string) (scene.Scene, error) {
		return LoadLevel(env, arg)
	})
	registry.Register("random", "Random maze", func(env registry.Env, arg string) (scene.Scene, error) {
		return NewRandom(env, arg)
	})
	registry.Register("end", "Ending screen", func(env registry.Env, _ string) (scene.Scene, error) {
		return NewEnd(env)
	})
}

func newBase(env registry.Env) (*scene.Base, error) {
	fg, bg, err := env.Config.ColorsParsed()
	if err != nil {
		return nil, err
	}
	return scene.NewBase(env.Runtime, fg, bg, env.Sink), nil
}

func isConfirm(ev core.InputEvent) bool {
	return ev.Is(" ") || ev.Code == core.KeyEnter
}

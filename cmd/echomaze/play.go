package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echomaze/internal/engine"
	"github.com/vovakirdan/echomaze/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [scene...]",
	Short: "Play the configured scenes",
	Long: `Play a list of scenes, by default the one from the config file.

A scene is written as id or id:arg:
  title       - Title screen
  level:<id>  - A level from the levels directory or the built-in set
  random:WxH  - A generated maze (default 12x6)
  echo        - Key tester
  end         - Best scores of the played levels

Controls:
  Arrows  - Move
  Space   - Echo
  P       - Pause
  R       - Restart the scene
  Q       - Quit
  Ctrl+C  - Leave immediately

Examples:
  echomaze play
  echomaze play level:3 end
  echomaze play random:30x12 --seed 42`,
	Run: runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	a, err := newApp(true)
	if err != nil {
		exitf("%v", err)
	}

	// The end scene lists the levels of the played sequence.
	if len(args) > 0 {
		a.cfg.Scenes = args
	}

	res, runErr := tui.Run(tui.Options{
		Config:  a.cfg,
		Runtime: a.runtime(),
		Specs:   a.cfg.Scenes,
		Levels:  a.levels,
		Store:   a.store,
		Audio:   tui.AudioPlayer(a.cfg, os.Stderr),
		Logger:  a.logger,
	})
	a.logger.Info("game finished", "reason", res.Reason, "scene", res.Scene, "ticks", res.Ticks)

	// Close before a potential exit
	a.Close()

	if runErr != nil {
		// The alternate screen is gone by now.
		var serr *engine.SceneError
		if errors.As(runErr, &serr) {
			fmt.Fprintln(os.Stderr, engine.EndMessage)
		}
		exitf("%v", runErr)
	}
}

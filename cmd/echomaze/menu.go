package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echomaze/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level from a menu",
	Long: `Start echomaze in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start. After a run ends you
return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Scoreboard
  Q            - Quit

Examples:
  echomaze menu
  echomaze menu --fps 30
  echomaze menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := newApp(true)
	if err != nil {
		exitf("%v", err)
	}
	defer a.Close()

	rc := a.runtime()
	items := tui.MenuItems(a.levels, a.cfg, a.logger)

	for {
		menuResult, err := tui.RunMenu(items, rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rc = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			tabs := tui.ScoreboardLevels(a.levels, a.store)
			goBack, err := tui.RunScoreboard(a.store, tabs, rc.ScreenW, rc.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		// Fresh seed per run unless one was pinned
		run := rc
		if run.Seed == 0 {
			run.Seed = time.Now().UnixNano()
		}

		res, err := tui.Run(tui.Options{
			Config:  a.cfg,
			Runtime: run,
			Specs:   menuResult.Specs,
			Levels:  a.levels,
			Store:   a.store,
			Audio:   tui.AudioPlayer(a.cfg, os.Stderr),
			Logger:  a.logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			a.logger.Error("game failed", "specs", menuResult.Specs, "err", err)
			continue
		}
		a.logger.Info("game finished", "reason", res.Reason, "scene", res.Scene)
	}
}

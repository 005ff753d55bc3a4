package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echomaze/internal/levels"
	"github.com/vovakirdan/echomaze/internal/platform/tui"
	"github.com/vovakirdan/echomaze/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best runs",
	Long: `Display the best runs for a level, or a summary of every level that
has recorded runs.

Examples:
  echomaze scores
  echomaze scores 1
  echomaze scores 2 --limit 20
  echomaze scores --tui
  echomaze scores 3 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs of the level")
}

func runScores(_ *cobra.Command, args []string) {
	a, err := newApp(true)
	if err != nil {
		exitf("%v", err)
	}
	defer a.Close()

	if a.store == nil {
		a.Close()
		exitf("no scores database")
	}

	switch {
	case flagScoresTUI:
		rc := a.runtime()
		if _, err := tui.RunScoreboard(a.store, tui.ScoreboardLevels(a.levels, a.store), rc.ScreenW, rc.ScreenH); err != nil {
			a.Close()
			exitf("%v", err)
		}
	case len(args) == 0:
		if err := printSummary(a.store); err != nil {
			a.Close()
			exitf("%v", err)
		}
	case flagScoresClear:
		if err := a.store.ClearScores(args[0]); err != nil {
			a.Close()
			exitf("%v", err)
		}
		fmt.Printf("Cleared scores for level %s.\n", args[0])
	default:
		if err := printLevelScores(a.store, a.levels, args[0], flagScoresLimit); err != nil {
			a.Close()
			exitf("%v", err)
		}
	}
}

func printSummary(store *storage.Store) error {
	ids, err := store.Levels()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-5s  %-6s  %-8s  %s\n", "Level", "Runs", "Best", "Average", "Last")
	fmt.Printf("  %-8s  %-5s  %-6s  %-8s  %s\n", "-----", "----", "----", "-------", "----")
	for _, id := range ids {
		st, err := store.Stats(id)
		if err != nil {
			return err
		}
		fmt.Printf("  %-8s  %-5d  %-6d  %-8.1f  %s\n",
			id, st.Runs, st.Best, st.Average, st.Last.Format("2006-01-02 15:04"))
	}
	return nil
}

func printLevelScores(store *storage.Store, loader *levels.Loader, levelID string, limit int) error {
	title := "Level " + levelID
	if l, err := loader.LoadByID(levelID); err == nil {
		title = l.Title()
	}

	scores, err := store.TopScores(levelID, limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'echomaze play level:%s' to set the first high score!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.Stats(levelID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  (%d runs, average %.1f)\n", st.Best, st.Runs, st.Average)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echomaze/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [file...]",
	Short: "List levels or check level files",
	Long: `Without arguments, shows every level found in the levels directory and
the built-in set, in play order.

With file arguments, parses and validates each file (YAML, TOML or JSON)
and reports what is wrong with it.

Examples:
  echomaze levels
  echomaze levels ./levels/7.yaml ./levels/8.toml`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, args []string) {
	a, err := newApp(false)
	if err != nil {
		exitf("%v", err)
	}
	defer a.Close()

	if len(args) > 0 {
		if !checkLevelFiles(a.levels, args) {
			a.Close()
			os.Exit(1)
		}
		return
	}

	lvls, err := a.levels.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "-----")
	for _, l := range lvls {
		size := fmt.Sprintf("%dx%d", l.Map.Cols(), l.Map.Rows())
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, l.ID, size, l.Title())
	}

	fmt.Println()
	fmt.Println("Run 'echomaze play level:<id>' to play a level.")
}

// checkLevelFiles reports each file and returns false if any is invalid.
func checkLevelFiles(loader *levels.Loader, files []string) bool {
	ok := true
	for _, f := range files {
		l, err := loader.LoadFile(f)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", f, err)
			ok = false
			continue
		}
		fmt.Printf("ok    %s: %q, %dx%d, %d end(s), %d box(es)\n",
			f, l.Title(), l.Map.Cols(), l.Map.Rows(), len(l.Ends), len(l.Boxes))
	}
	return ok
}

// echomaze is a terminal maze game played in the dark: the walls only show
// up when you bump into them or send out an echo.
//
// Usage:
//
//	echomaze play [scene...]   - Play the configured scene list (or the given one)
//	echomaze menu              - Pick a level interactively
//	echomaze levels [file...]  - List levels, or check level files
//	echomaze scores [level]    - Show best runs
//	echomaze serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>   - Config file (YAML or TOML)
//	--fps <rate>      - Override tick rate
//	--seed <value>    - RNG seed for random mazes
//	--db <path>       - Scores database
//	--scenes <list>   - Comma separated scene list, e.g. title,level:2,end
//	--log-file <path> - Log destination ("stderr", "none" or a file)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register scenes
	_ "github.com/vovakirdan/echomaze/internal/scenes"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagScenes  []string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "echomaze",
	Short: "echomaze - find the way out of the dark",
	Long: `echomaze is a maze game for the terminal. The map is dark: walls show up
when you walk into them or send out an echo, and every tick in the dark
costs points.

Available commands:
  play     - Play the configured scenes
  menu     - Interactive level picker
  levels   - List or check levels
  scores   - View best runs
  serve    - Start SSH server for remote play

Examples:
  echomaze play
  echomaze play level:2 end
  echomaze menu --fps 30
  echomaze levels ./my-level.yaml
  echomaze scores 1
  echomaze serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringSliceVar(&flagScenes, "scenes", nil, "Scene list (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log destination (default from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

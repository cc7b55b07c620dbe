// platformer is a side-view platform game for the terminal and the desktop.
//
// Usage:
//
//	platformer play [--level id]    - Play in the terminal
//	platformer window [--level id]  - Play in an 800x600 window
//	platformer menu                 - Pick levels interactively
//	platformer serve                - Start SSH server for remote play
//	platformer scores [level]       - Show the best runs
//	platformer levels               - List available levels
//
// Global flags:
//
//	--fps <rate>         - Override the simulation rate
//	--db <path>          - Set database path (default: ~/.platformer/platformer.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/platformer/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "platformer",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Platformer - run, jump and collect coins",
	Long: `Platformer is a single-screen platform game. Run and jump across the
platforms, collect every coin, and keep away from the patrolling enemies.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  levels   - List available levels

Examples:
  platformer play
  platformer play --level stairs --difficulty hard
  platformer window
  platformer serve --ssh :2222
  platformer scores meadow`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Simulation rate (0 = use the config's fps)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// openStore opens the run database, degrading to no history on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database, runs will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// playerName is recorded with every local run.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

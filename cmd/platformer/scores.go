package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/platformer/internal/levels"
	"github.com/vovakirdan/platformer/internal/platform/tui"
	"github.com/vovakirdan/platformer/internal/storage"
)

var (
	flagScoresPlain bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the best runs",
	Long: `Display the best runs per level.

On an interactive terminal this opens the scoreboard; use --plain (or pipe
the output) for a text listing. With a level id only that level is shown.

Examples:
  platformer scores
  platformer scores meadow --plain
  platformer scores stairs --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a text listing instead of the scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Runs per level")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored runs of the given level")
}

func runScores(_ *cobra.Command, args []string) {
	all, err := levels.NewLoader(levels.DefaultDirs()...).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 1 {
		all = filterLevels(all, args[0])
		if len(all) == 0 {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'platformer levels' to see available levels.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a level id")
			os.Exit(1)
		}
		if err := store.ClearRuns(all[0].ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("runs cleared", "level", all[0].ID)
		return
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := terminalSize()
		if _, err := tui.RunScoreboard(all, store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printScores(all, store)
}

func filterLevels(all []levels.Level, id string) []levels.Level {
	for _, l := range all {
		if l.ID == id {
			return []levels.Level{l}
		}
	}
	return nil
}

func printScores(all []levels.Level, store *storage.Store) {
	for i, lvl := range all {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Best Runs - %s (%s)\n", lvl.Name, lvl.ID)
		fmt.Println()

		runs, err := store.TopRuns(lvl.ID, flagScoresLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
			continue
		}
		if len(runs) == 0 {
			fmt.Println("  No runs recorded yet.")
			continue
		}

		rows := tui.RunRows(runs)
		cols := tui.RunColumns(0)
		for j, c := range cols {
			if j > 0 {
				fmt.Print("  ")
			}
			fmt.Printf("%-*s", c.Width, c.Title)
		}
		fmt.Println()
		for _, row := range rows {
			for j, cell := range row {
				if j > 0 {
					fmt.Print("  ")
				}
				fmt.Printf("%-*s", cols[j].Width, cell)
			}
			fmt.Println()
		}

		if stats, err := store.GetLevelStats(lvl.ID); err == nil {
			fmt.Println()
			fmt.Printf("  Runs: %d  Best: %d  Average: %.1f  Caught: %d\n",
				stats.Runs, stats.HighScore, stats.AvgScore, stats.Deaths)
		}
	}
}

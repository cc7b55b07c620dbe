package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/platformer/internal/levels"
	"github.com/vovakirdan/platformer/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows the built-in levels and any user levels found in
~/.platformer/levels or ./levels. A user level with the same id as a
built-in one replaces it.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	loader := levels.NewLoader(levels.DefaultDirs()...)
	all, err := loader.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No levels available.")
		return
	}

	var stats map[string]*storage.LevelStats
	if store := openStore(); store != nil {
		stats, _ = store.GetAllLevelStats()
		store.Close()
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, l := range all {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %5s  %5s  %7s  %4s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Plats", "Coins", "Enemies", "Best", "Source")
	fmt.Printf("  %-*s  %-*s  %5s  %5s  %7s  %4s  %s\n", maxIDLen, "--", maxNameLen, "----", "-----", "-----", "-------", "----", "------")

	for _, l := range all {
		best := "-"
		if s, ok := stats[l.ID]; ok && s.Runs > 0 {
			best = fmt.Sprint(s.HighScore)
		}
		fmt.Printf("  %-*s  %-*s  %5d  %5d  %7d  %4s  %s\n", maxIDLen, l.ID, maxNameLen, l.Name,
			len(l.Platforms), len(l.Coins), len(l.Enemies), best, l.Source)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play --level <id>' to play a level.")
}

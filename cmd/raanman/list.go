package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/raanman3d/internal/layout"
	"github.com/vovakirdan/raanman3d/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows the registered game modes and the built-in levels.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	if levels, err := layout.Embedded(); err == nil && len(levels) > 0 {
		fmt.Println()
		fmt.Println("Built-in levels:")
		fmt.Println()
		for _, l := range levels {
			fmt.Printf("  %-10s  %s\n", l.ID, l.Name)
		}
	}

	fmt.Println()
	fmt.Println("Run 'raanman play <id>' to play a game.")
}

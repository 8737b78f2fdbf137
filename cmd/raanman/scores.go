package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/raanman3d/internal/registry"
	"github.com/vovakirdan/raanman3d/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top high scores for the specified game, or a summary of
every game when none is given.

Examples:
  raanman scores
  raanman scores raanman3d
  raanman scores raanman2d --limit 20
  raanman scores raanman3d --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the game")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'raanman list' to see available games.")
		store.Close()
		os.Exit(1)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			store.Close()
			fail("clearing scores: %v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return
	}

	game, err := registry.Create(gameID)
	if err != nil {
		store.Close()
		fail("creating game: %v", err)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'raanman play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-10s  %-6s  %s\n", "Rank", "Score", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-10s  %-6s  %s\n",
			i+1, entry.Score, entry.LevelID,
			formatRunTime(entry.Duration.Seconds()),
			entry.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.AllGamesStats()
	if err != nil {
		store.Close()
		fail("retrieving stats: %v", err)
	}

	fmt.Println("High Scores")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %s\n", "Game", "Runs", "Best")
	fmt.Printf("  %-10s  %-6s  %s\n", "----", "----", "----")
	for _, g := range registry.List() {
		runs, best := 0, 0
		if s, ok := stats[g.ID]; ok {
			runs, best = s.GamesCount, s.HighScore
		}
		fmt.Printf("  %-10s  %-6d  %d\n", g.ID, runs, best)
	}
}

func formatRunTime(secs float64) string {
	if secs <= 0 {
		return "-"
	}
	s := int(secs + 0.5)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

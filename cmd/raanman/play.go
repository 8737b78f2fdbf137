package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/raanman3d/internal/platform/tui"
	"github.com/vovakirdan/raanman3d/internal/registry"
	"github.com/vovakirdan/raanman3d/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls (raanman3d):
  W/S, Up/Down     - Move forward/back
  A/D              - Strafe
  Q/E, Left/Right  - Turn
  I/K              - Camera pitch
  Space            - Jump
  H                - Hack (when the meter is full)
  P                - Pause
  R                - Restart (after game over)
  B/Esc            - Back (when paused or over)
  Ctrl+C           - Quit

Difficulty options:
  easy   - Half hazard and contact damage, slow enemies at first
  normal - Default damage, enemies start at 30% speed-up
  hard   - 1.5x hazard and contact damage, enemies start fast
  fixed  - Default damage, no enemy speed-up

Examples:
  raanman play raanman3d
  raanman play raanman2d --difficulty easy
  raanman play raanman3d --seed 42 --device mobile
  raanman play raanman3d --config ./my-tuning.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'raanman list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(gameID, true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := runtimeConfig(logger)
	if err != nil {
		fail("%v", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}

// raanman runs the raanman platformer in the terminal, over SSH, or as a
// frame server for a browser renderer.
//
// Usage:
//
//	raanman list              - List available games
//	raanman play <game>       - Play a game
//	raanman menu              - Start menu to pick games interactively
//	raanman serve             - Start SSH server for remote play
//	raanman bridge            - Start the websocket frame bridge
//	raanman simulate          - Run a headless scripted simulation
//	raanman layout            - Print a generated level layout
//	raanman scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set level seed for reproducible layouts
//	--db <path>           - Set database path (default: ~/.raanman/scores.db)
//	--config <path>       - Custom tuning YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--device <tier>       - auto, desktop, mobile
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/raanman3d/internal/games/raanman"
	"github.com/vovakirdan/raanman3d/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDevice     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raanman",
	Short: "Raanman - a chase-camera platformer for the terminal",
	Long: `Raanman is a platformer with a 3D chase camera and a 2D side view,
played in the terminal, over SSH, or through a browser renderer.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  bridge    - Serve frames to a browser renderer over a websocket
  simulate  - Run a headless scripted simulation
  layout    - Print the generated layout of a level
  scores    - View high scores

Examples:
  raanman list
  raanman play raanman3d
  raanman menu --difficulty hard
  raanman serve --ssh :2222
  raanman bridge --addr :8080
  raanman simulate --frames 600 --json
  raanman scores raanman3d`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "Level seed (0 = random based on time for play, 0 for simulate)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagDevice, "device", "auto", "Device tier: auto, desktop, mobile")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bridgeCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(scoresCmd)
}

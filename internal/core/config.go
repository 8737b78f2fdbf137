package core

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/raanman3d/internal/config"
	"github.com/vovakirdan/raanman3d/internal/device"
)

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // Mixed into the level seed

	Tuning  config.Tuning
	Profile device.Profile
	Logger  *log.Logger // nil discards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Tuning:   config.DefaultTuning(),
		Profile:  device.ProfileFor(device.Desktop),
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}

// RunInfo describes a run for score recording. Games that can report it
// implement RunReporter.
type RunInfo struct {
	LevelID  string
	Seed     int64
	Duration time.Duration // simulated time
}

// RunReporter is implemented by games that know which level and seed a run
// used.
type RunReporter interface {
	Run() RunInfo
}

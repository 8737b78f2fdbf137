// Package raanman adapts the platformer simulation to the arcade game
// interface: raanman3d is the chase-camera platformer, raanman2d the
// side-scrolling companion on the same levels.
package raanman

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/raanman3d/internal/config"
	"github.com/vovakirdan/raanman3d/internal/core"
	"github.com/vovakirdan/raanman3d/internal/registry"
	"github.com/vovakirdan/raanman3d/internal/sim"
)

// Registered game IDs.
const (
	ID3D = "raanman3d"
	ID2D = "raanman2d"
)

// lookRate is the keyboard camera pitch speed in radians per second.
const lookRate = 1.2

func init() {
	registry.Register(ID3D, func() registry.Game { return New(false) })
	registry.Register(ID2D, func() registry.Game { return New(true) })
}

var (
	_ registry.Game    = (*Game)(nil)
	_ core.RunReporter = (*Game)(nil)
)

// Game implements registry.Game on top of a sim.Simulation.
type Game struct {
	flat    bool
	runtime core.RuntimeConfig
	sim     *sim.Simulation
	last    sim.FrameOutput
	paused  bool
	elapsed time.Duration // simulated time of the current run
	err     error
}

// New creates a game; flat selects the 2D variant.
func New(flat bool) *Game {
	return &Game{flat: flat}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.flat {
		return ID2D
	}
	return ID3D
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.flat {
		return "Raanman 2D"
	}
	return "Raanman 3D"
}

// Reset builds a fresh simulation from the runtime config.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.elapsed = 0
	g.err = nil

	logger := runtime.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	tuning := runtime.Tuning
	if err := tuning.Validate(); err != nil {
		logger.Warn("invalid tuning, using defaults", "err", err)
		tuning = config.DefaultTuning()
	}

	s, err := sim.New(sim.Options{
		Tuning:  tuning,
		Profile: runtime.Profile,
		Seed:    runtime.Seed,
		Flat:    g.flat,
		Logger:  logger.WithPrefix(g.ID()),
	})
	if err != nil {
		logger.Error("cannot build level", "level", tuning.Level.ID, "err", err)
		g.sim = nil
		g.err = err
		return
	}
	g.sim = s
	g.last = s.Step(0, sim.Input{})
}

// Step advances the simulation by the measured frame duration.
func (g *Game) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{State: g.State()}
	}

	if g.last.GameOver {
		if in.Has(core.ActionRestart) {
			g.sim.Restart()
			g.elapsed = 0
			g.last = g.sim.Step(0, sim.Input{})
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	ms := float64(dt) / float64(time.Millisecond)
	g.last = g.sim.Step(ms, g.translate(in, dt))
	g.elapsed += time.Duration(g.last.Delta * float64(time.Second))

	return core.StepResult{State: g.State()}
}

// translate maps platform actions onto simulation intent.
func (g *Game) translate(in core.InputFrame, dt time.Duration) sim.Input {
	out := sim.Input{
		Forward: in.Has(core.ActionForward),
		Back:    in.Has(core.ActionBackward),
		Left:    in.Has(core.ActionStrafeLeft),
		Right:   in.Has(core.ActionStrafeRight),
		Jump:    in.Has(core.ActionJump),
		Hack:    in.Has(core.ActionHack),
	}
	if g.flat {
		// Turning has no meaning side-on; the arrows walk instead.
		out.Left = out.Left || in.Has(core.ActionTurnLeft)
		out.Right = out.Right || in.Has(core.ActionTurnRight)
		return out
	}
	out.Turn = in.Axis(core.ActionTurnRight, core.ActionTurnLeft)
	out.LookPitch = in.Axis(core.ActionLookUp, core.ActionLookDown) * lookRate * dt.Seconds()
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.last.HUD.Score,
		GameOver: g.last.GameOver || g.err != nil,
		Paused:   g.paused,
	}
}

// Frame returns the latest simulation snapshot.
func (g *Game) Frame() sim.FrameOutput {
	return g.last
}

// Run returns the level, seed and simulated duration of the current run.
func (g *Game) Run() core.RunInfo {
	r := core.RunInfo{Seed: g.runtime.Seed, Duration: g.elapsed}
	if g.sim != nil {
		r.LevelID = g.sim.Layout().LevelID
	}
	return r
}

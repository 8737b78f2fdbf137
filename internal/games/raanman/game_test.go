package raanman

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/raanman3d/internal/config"
	"github.com/vovakirdan/raanman3d/internal/core"
	"github.com/vovakirdan/raanman3d/internal/device"
	"github.com/vovakirdan/raanman3d/internal/registry"
)

const frame = 16 * time.Millisecond

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func newGame(t *testing.T, flat bool) *Game {
	t.Helper()
	g := New(flat)
	cfg := core.DefaultConfig()
	cfg.Profile = device.Profile{MaxParticles: 16}
	g.Reset(cfg)
	if g.sim == nil {
		t.Fatalf("Reset failed: %v", g.err)
	}
	return g
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{ID3D, ID2D} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestResetProducesFirstFrame(t *testing.T) {
	g := newGame(t, false)

	f := g.Frame()
	if len(f.Entities) == 0 {
		t.Fatal("first frame has no entities")
	}
	if f.HUD.Lives != config.DefaultTuning().Player.Lives {
		t.Errorf("lives = %d, want %d", f.HUD.Lives, config.DefaultTuning().Player.Lives)
	}
	if st := g.State(); st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("unexpected initial state %+v", st)
	}
}

func TestForwardMovesPlayer(t *testing.T) {
	tests := []struct {
		name   string
		flat   bool
		action core.Action
	}{
		{"3d forward", false, core.ActionForward},
		{"2d arrow walks", true, core.ActionTurnRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, tt.flat)
			start := g.Frame().Player.Position

			for range 10 {
				g.Step(frame, input(tt.action))
			}

			moved := g.Frame().Player.Position.Sub(start)
			if moved.Len() < 0.5 {
				t.Errorf("player moved %.3f, want at least 0.5", moved.Len())
			}
		})
	}
}

func TestTurnKeysRotateIn3D(t *testing.T) {
	g := newGame(t, false)
	before := g.Frame().Player.Yaw

	g.Step(frame, input(core.ActionTurnLeft))

	if g.Frame().Player.Yaw == before {
		t.Error("turn key did not change heading")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newGame(t, false)

	res := g.Step(frame, input(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("pause did not take effect")
	}
	n := g.Frame().Frame

	for range 5 {
		g.Step(frame, input(core.ActionForward))
	}
	if g.Frame().Frame != n {
		t.Errorf("frame advanced while paused: %d -> %d", n, g.Frame().Frame)
	}

	g.Step(frame, input(core.ActionPause))
	g.Step(frame, input())
	if g.State().Paused || g.Frame().Frame == n {
		t.Error("simulation did not resume after second pause")
	}
}

func TestElapsedTracksClampedDelta(t *testing.T) {
	g := newGame(t, false)

	// A one-second hitch counts as a single clamped step.
	g.Step(time.Second, input())

	got := g.Run().Duration
	want := time.Duration(config.DefaultTuning().Physics.MaxDelta * float64(time.Second))
	if got != want {
		t.Errorf("elapsed = %v, want %v", got, want)
	}
	if g.Run().LevelID != config.DefaultTuning().Level.ID {
		t.Errorf("level = %q", g.Run().LevelID)
	}
}

func TestInvalidTuningFallsBackToDefaults(t *testing.T) {
	g := New(false)
	cfg := core.DefaultConfig()
	cfg.Tuning = config.Tuning{}

	g.Reset(cfg)

	if g.sim == nil {
		t.Fatalf("expected fallback to defaults, got error %v", g.err)
	}
	if g.sim.Tuning().Physics.Gravity != config.DefaultTuning().Physics.Gravity {
		t.Error("fallback did not use default tuning")
	}
}

func TestUnknownLevelReportsError(t *testing.T) {
	g := New(false)
	cfg := core.DefaultConfig()
	cfg.Tuning.Level.ID = "no-such-level"

	g.Reset(cfg)

	if g.err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	if !g.State().GameOver {
		t.Error("broken game should report game over")
	}
	// Stepping a broken game is a no-op.
	g.Step(frame, input(core.ActionForward))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Level unavailable") {
		t.Error("render did not explain the failure")
	}
}

func TestRenderDrawsWorldAndHUD(t *testing.T) {
	for _, flat := range []bool{false, true} {
		g := newGame(t, flat)
		scr := core.NewScreen(80, 24)

		g.Render(scr)

		if hud := scr.Row(0); !strings.Contains(hud, "SCORE 0") || !strings.Contains(hud, "LIVES 3") {
			t.Errorf("flat=%v: HUD row = %q", flat, hud)
		}
		out := scr.String()
		if !strings.Contains(out, "@") {
			t.Errorf("flat=%v: player glyph missing\n%s", flat, out)
		}
		if !strings.ContainsAny(out, "▒▓") {
			t.Errorf("flat=%v: no platforms drawn\n%s", flat, out)
		}
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newGame(t, false)
	g.Step(frame, input(core.ActionPause))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := New(false)
	cfg := core.DefaultConfig()
	cfg.Tuning.Player.Lives = 1
	cfg.Profile = device.Profile{MaxParticles: 16}
	g.Reset(cfg)

	// Walk backwards off the spawn platform until the kill plane ends the run.
	for i := 0; i < 2000 && !g.State().GameOver; i++ {
		g.Step(frame, input(core.ActionBackward))
	}
	if !g.State().GameOver {
		t.Fatal("run never ended")
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}

	g.Step(frame, input(core.ActionRestart))
	if g.State().GameOver {
		t.Error("restart did not start a new run")
	}
	if g.Run().Duration != 0 {
		t.Errorf("elapsed not reset: %v", g.Run().Duration)
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/raanman3d/internal/games/raanman"
	"github.com/vovakirdan/raanman3d/internal/sim"
)

var (
	flagSimGame   string
	flagSimFrames int
	flagSimDelta  float64
	flagSimScript string
	flagSimJSON   bool
	flagSimEvery  int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless scripted simulation",
	Long: `Run the simulation without a display and print what happened.

Without --script the player runs forward and jumps on every landing for
--frames frames. A script is a YAML list of steps, each held for a number
of frames:

  steps:
    - {frames: 60, forward: true}
    - {frames: 1, jump: true, forward: true}
    - {frames: 90, forward: true, turn: 0.5}
    - {frames: 30, delta_ms: 50}

With --json every --every'th frame (and every frame with events) is
written as one JSON object per line, in the same shape the websocket
bridge sends.

Examples:
  raanman simulate --frames 600
  raanman simulate --script run.yaml --seed 42 --json
  raanman simulate --game raanman2d --difficulty hard`,
	Run: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&flagSimGame, "game", raanman.ID3D, "Game mode: raanman3d or raanman2d")
	f.IntVar(&flagSimFrames, "frames", 600, "Frames to run without a script")
	f.Float64Var(&flagSimDelta, "delta", 1000.0/60, "Default frame time in milliseconds")
	f.StringVar(&flagSimScript, "script", "", "YAML input script")
	f.BoolVar(&flagSimJSON, "json", false, "Write frames as JSON lines")
	f.IntVar(&flagSimEvery, "every", 60, "With --json, write every Nth frame")
}

// script is a sequence of held inputs.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

type scriptStep struct {
	Frames    int     `yaml:"frames"`
	DeltaMS   float64 `yaml:"delta_ms"`
	Forward   bool    `yaml:"forward"`
	Back      bool    `yaml:"back"`
	Left      bool    `yaml:"left"`
	Right     bool    `yaml:"right"`
	Jump      bool    `yaml:"jump"`
	Hack      bool    `yaml:"hack"`
	Turn      float64 `yaml:"turn"`
	LookYaw   float64 `yaml:"look_yaw"`
	LookPitch float64 `yaml:"look_pitch"`
}

func (st scriptStep) input() sim.Input {
	return sim.Input{
		Forward:   st.Forward,
		Back:      st.Back,
		Left:      st.Left,
		Right:     st.Right,
		Jump:      st.Jump,
		Hack:      st.Hack,
		Turn:      st.Turn,
		LookYaw:   st.LookYaw,
		LookPitch: st.LookPitch,
	}
}

var errEmptyScript = errors.New("script has no steps")

// parseScript decodes a YAML script, rejecting unknown keys.
func parseScript(r io.Reader) (script, error) {
	var sc script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return script{}, errEmptyScript
		}
		return script{}, fmt.Errorf("parsing script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return script{}, errEmptyScript
	}
	for i, st := range sc.Steps {
		if st.Frames <= 0 {
			return script{}, fmt.Errorf("step %d: frames must be positive, got %d", i+1, st.Frames)
		}
	}
	return sc, nil
}

// defaultScript runs forward and jumps whenever grounded.
func defaultScript(frames int) script {
	return script{Steps: []scriptStep{{Frames: frames, Forward: true, Jump: true}}}
}

// summary aggregates a finished simulation.
type summary struct {
	Frames   int
	Last     sim.FrameOutput
	Events   map[sim.EventKind]int
	Faults   int
	GameOver bool
}

// playScript steps s through sc. onFrame, if set, sees every frame.
func playScript(s *sim.Simulation, sc script, defaultDelta float64, onFrame func(sim.FrameOutput) error) (summary, error) {
	sum := summary{Events: make(map[sim.EventKind]int)}
	for _, st := range sc.Steps {
		delta := st.DeltaMS
		if delta == 0 {
			delta = defaultDelta
		}
		in := st.input()
		for range st.Frames {
			out := s.Step(delta, in)
			sum.Frames++
			sum.Last = out
			for _, e := range out.Events {
				sum.Events[e.Kind]++
			}
			if out.Fault {
				sum.Faults++
			}
			if onFrame != nil {
				if err := onFrame(out); err != nil {
					return sum, err
				}
			}
			if out.GameOver {
				sum.GameOver = true
				return sum, nil
			}
		}
	}
	return sum, nil
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagSimGame != raanman.ID3D && flagSimGame != raanman.ID2D {
		fail("unknown game %q (want %s or %s)", flagSimGame, raanman.ID3D, raanman.ID2D)
	}

	logger, closeLog, err := newLogger("simulate", false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	tuning, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}
	profile, err := localProfile()
	if err != nil {
		fail("%v", err)
	}

	sc := defaultScript(flagSimFrames)
	if flagSimScript != "" {
		f, err := os.Open(flagSimScript)
		if err != nil {
			fail("opening script: %v", err)
		}
		sc, err = parseScript(f)
		f.Close()
		if err != nil {
			fail("%s: %v", flagSimScript, err)
		}
	}

	s, err := sim.New(sim.Options{
		Tuning:  tuning,
		Profile: profile,
		Seed:    flagSeed,
		Flat:    flagSimGame == raanman.ID2D,
		Logger:  logger,
	})
	if err != nil {
		fail("building level: %v", err)
	}

	var onFrame func(sim.FrameOutput) error
	if flagSimJSON {
		enc := json.NewEncoder(os.Stdout)
		every := max(flagSimEvery, 1)
		onFrame = func(out sim.FrameOutput) error {
			if out.Frame%every != 0 && len(out.Events) == 0 && !out.GameOver {
				return nil
			}
			return enc.Encode(out)
		}
	}

	sum, err := playScript(s, sc, flagSimDelta, onFrame)
	if err != nil {
		fail("writing frames: %v", err)
	}
	if !flagSimJSON {
		printSimSummary(os.Stdout, s, sum)
	}
}

func printSimSummary(w io.Writer, s *sim.Simulation, sum summary) {
	lay := s.Layout()
	last := sum.Last

	fmt.Fprintf(w, "Level:     %s (%s), seed %d\n", lay.LevelID, lay.Name, lay.Seed)
	fmt.Fprintf(w, "Frames:    %d (%.2fs simulated)\n", sum.Frames, last.Time)
	fmt.Fprintf(w, "Score:     %d (combo x%d)\n", last.HUD.Score, last.HUD.Combo)
	fmt.Fprintf(w, "Health:    %.1f, lives %d, hack %.0f%%\n", last.HUD.Health, last.HUD.Lives, last.HUD.HackPercent)
	p := last.Player.Position
	fmt.Fprintf(w, "Position:  (%.2f, %.2f, %.2f)\n", p.X(), p.Y(), p.Z())
	if sum.GameOver {
		fmt.Fprintln(w, "Result:    game over")
	}
	if sum.Faults > 0 {
		fmt.Fprintf(w, "Faults:    %d frames rolled back\n", sum.Faults)
	}

	if len(sum.Events) == 0 {
		return
	}
	kinds := make([]string, 0, len(sum.Events))
	for k := range sum.Events {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	fmt.Fprintln(w, "Events:")
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-13s %d\n", k, sum.Events[sim.EventKind(k)])
	}
}

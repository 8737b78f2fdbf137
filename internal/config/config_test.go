package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/raanman3d/internal/camera"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := ParseTuning(defaultTuningYAML)
	if err != nil {
		t.Fatalf("embedded defaults: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTuning()) {
		t.Errorf("embedded YAML drifted from DefaultTuning:\n got %+v\nwant %+v", cfg, DefaultTuning())
	}
}

func TestDefaultTuningValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestDefaultCameraMatchesController(t *testing.T) {
	want := camera.DefaultSettings()
	got := DefaultTuning().Camera
	if got.Offset.X != want.Offset.X() || got.Offset.Y != want.Offset.Y() || got.Offset.Z != want.Offset.Z() {
		t.Errorf("offset = %+v, want %v", got.Offset, want.Offset)
	}
	if got.SmoothingBase != want.SmoothingBase || got.PitchLimit != want.PitchLimit || got.LookHeight != want.LookHeight {
		t.Errorf("camera = %+v, want %+v", got, want)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"positive gravity", func(c *Tuning) { c.Physics.Gravity = 5 }},
		{"zero jump", func(c *Tuning) { c.Physics.JumpForce = 0 }},
		{"peak too low", func(c *Tuning) { c.Physics.JumpForce = 5 }},
		{"peak too high", func(c *Tuning) { c.Physics.JumpForce = 30 }},
		{"zero max delta", func(c *Tuning) { c.Physics.MaxDelta = 0 }},
		{"kill plane above ground", func(c *Tuning) { c.Physics.KillPlaneY = 1 }},
		{"no lives", func(c *Tuning) { c.Player.Lives = 0 }},
		{"smoothing base one", func(c *Tuning) { c.Camera.SmoothingBase = 1 }},
		{"negative hazard", func(c *Tuning) { c.Damage.HazardPerSecond = -1 }},
		{"too few platforms", func(c *Tuning) { c.Level.ProceduralPlatforms = 10 }},
		{"enemy chance above one", func(c *Tuning) { c.Level.EnemyChance = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTuning()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidTuning) {
				t.Errorf("error %v does not wrap ErrInvalidTuning", err)
			}
		})
	}
}

func TestParseTuningPartial(t *testing.T) {
	cfg, err := ParseTuning([]byte("player:\n  move_speed: 9\n"))
	if err != nil {
		t.Fatalf("ParseTuning: %v", err)
	}
	if cfg.Player.MoveSpeed != 9 {
		t.Errorf("MoveSpeed = %v, want 9", cfg.Player.MoveSpeed)
	}
	if cfg.Physics.Gravity != DefaultTuning().Physics.Gravity {
		t.Errorf("unset gravity should keep default, got %v", cfg.Physics.Gravity)
	}
}

func TestLoadTuningSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default.
	cfg, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if cfg.Player.MoveSpeed != DefaultTuning().Player.MoveSpeed {
		t.Errorf("expected default move speed, got %v", cfg.Player.MoveSpeed)
	}

	// Local configs directory.
	writeFile(t, filepath.Join(work, "configs", FileName), "player:\n  move_speed: 5\n")
	cfg, _ = LoadTuning("")
	if cfg.Player.MoveSpeed != 5 {
		t.Errorf("local config: move speed = %v, want 5", cfg.Player.MoveSpeed)
	}

	// User directory wins over local.
	writeFile(t, filepath.Join(home, ".raanman", "configs", FileName), "player:\n  move_speed: 6\n")
	cfg, _ = LoadTuning("")
	if cfg.Player.MoveSpeed != 6 {
		t.Errorf("user config: move speed = %v, want 6", cfg.Player.MoveSpeed)
	}

	// Custom path wins over everything.
	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "player:\n  move_speed: 8\n")
	cfg, err = LoadTuning(custom)
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	if cfg.Player.MoveSpeed != 8 {
		t.Errorf("custom config: move speed = %v, want 8", cfg.Player.MoveSpeed)
	}
}

func TestLoadTuningInvalidFallsThrough(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	writeFile(t, filepath.Join(home, ".raanman", "configs", FileName), "physics:\n  gravity: 3\n")
	cfg, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if cfg.Physics.Gravity != DefaultTuning().Physics.Gravity {
		t.Errorf("invalid user config should be skipped, gravity = %v", cfg.Physics.Gravity)
	}
}

func TestLoadTuningCustomErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadTuning(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "physics:\n  jump_force: 40\n")
	_, err := LoadTuning(bad)
	if !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("expected ErrInvalidTuning, got %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultTuning()
	tests := []struct {
		preset      DifficultyPreset
		hazard      float64
		enabled     bool
		initial     float64
		contactMult float64
	}{
		{"", base.Damage.HazardPerSecond, base.Difficulty.Enabled, base.Difficulty.InitialLevel, 1},
		{DifficultyNormal, base.Damage.HazardPerSecond, true, 0.3, 1},
		{DifficultyEasy, base.Damage.HazardPerSecond * 0.5, true, 0.0, 0.5},
		{DifficultyHard, base.Damage.HazardPerSecond * 1.5, true, 0.7, 1.5},
		{DifficultyFixed, base.Damage.HazardPerSecond, false, base.Difficulty.InitialLevel, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultTuning()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Damage.HazardPerSecond != tt.hazard {
				t.Errorf("hazard = %v, want %v", cfg.Damage.HazardPerSecond, tt.hazard)
			}
			if cfg.Damage.EnemyContact != base.Damage.EnemyContact*tt.contactMult {
				t.Errorf("contact = %v, want %v", cfg.Damage.EnemyContact, base.Damage.EnemyContact*tt.contactMult)
			}
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initial {
				t.Errorf("initial level = %v, want %v", cfg.Difficulty.InitialLevel, tt.initial)
			}
			if cfg.Damage.FallDamage != base.Damage.FallDamage {
				t.Errorf("fall damage must stay flat, got %v", cfg.Damage.FallDamage)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"easy", "normal", "hard", "fixed"} {
		if got := ParsePreset(s); string(got) != s {
			t.Errorf("ParsePreset(%q) = %q", s, got)
		}
	}
	if got := ParsePreset("insane"); got != "" {
		t.Errorf("ParsePreset(insane) = %q, want empty", got)
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultTuning().Difficulty
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 0); got != 0 {
		t.Errorf("Level at start = %v, want 0", got)
	}
	if got := dm.Level(cfg.Progression.MaxAt, 0); got != 1 {
		t.Errorf("Level at max = %v, want 1", got)
	}
	if got := dm.Level(cfg.Progression.MaxAt*3, 0); got != 1 {
		t.Errorf("Level past max = %v, want 1", got)
	}
	if got := dm.Speed(1.5, cfg.Progression.MaxAt, 0); got != 3 {
		t.Errorf("Speed at max = %v, want 3", got)
	}

	cfg.Enabled = false
	cfg.InitialLevel = 0.7
	if got := NewDifficultyManager(cfg).Level(cfg.Progression.MaxAt, 0); got != 0.7 {
		t.Errorf("disabled Level = %v, want 0.7", got)
	}
	cfg.InitialLevel = 4
	if got := NewDifficultyManager(cfg).Level(0, 0); got != 1 {
		t.Errorf("initial level should clamp to 1, got %v", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1},
	})
	if got := dm.Level(99999, 50); got != 0.5 {
		t.Errorf("Level = %v, want 0.5", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

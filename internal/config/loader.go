package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/raanman3d/internal/physics"
)

// FileName is the tuning file looked up in the config directories.
const FileName = "raanman.yaml"

// LoadTuning loads simulation tuning.
// Search order: customPath -> ~/.raanman/configs/raanman.yaml -> ./configs/raanman.yaml -> embedded default
// Files are decoded on top of DefaultTuning, so a partial file only overrides
// the keys it names. The result is validated before it is returned.
func LoadTuning(customPath string) (Tuning, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Tuning{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseTuning(data)
		if err != nil {
			return Tuning{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTuning(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := ParseTuning(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseTuning(defaultTuningYAML)
	if err != nil {
		return DefaultTuning(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseTuning decodes YAML on top of DefaultTuning and validates the result.
func ParseTuning(data []byte) (Tuning, error) {
	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Tuning{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".raanman", "configs", filename)
}

// ErrInvalidTuning is wrapped by every validation failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// Peak height bounds for the gravity/jump pair.
const (
	MinPeakHeight = 1.5
	MaxPeakHeight = 6.0
)

// Validate rejects tuning that would break the physics contract.
func (t Tuning) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidTuning, fmt.Sprintf(format, args...))
	}

	for name, v := range map[string]float64{
		"physics.gravity":          t.Physics.Gravity,
		"physics.jump_force":       t.Physics.JumpForce,
		"physics.max_delta":        t.Physics.MaxDelta,
		"camera.smoothing_base":    t.Camera.SmoothingBase,
		"damage.fall_damage":       t.Damage.FallDamage,
		"damage.hazard_per_second": t.Damage.HazardPerSecond,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid("%s is not finite", name)
		}
	}

	if t.Physics.Gravity >= 0 {
		return invalid("physics.gravity must be negative, got %g", t.Physics.Gravity)
	}
	if t.Physics.JumpForce <= 0 {
		return invalid("physics.jump_force must be positive, got %g", t.Physics.JumpForce)
	}
	peak := physics.PeakHeight(t.Physics.JumpForce, t.Physics.Gravity)
	if peak <= MinPeakHeight || peak >= MaxPeakHeight {
		return invalid("jump peak %.2f outside (%.1f, %.1f)", peak, MinPeakHeight, MaxPeakHeight)
	}
	if t.Physics.MaxDelta <= 0 || t.Physics.MaxDelta > 0.25 {
		return invalid("physics.max_delta must be in (0, 0.25], got %g", t.Physics.MaxDelta)
	}
	if t.Physics.KillPlaneY >= 0 {
		return invalid("physics.kill_plane_y must be below ground, got %g", t.Physics.KillPlaneY)
	}
	if t.Player.MoveSpeed <= 0 {
		return invalid("player.move_speed must be positive")
	}
	if t.Player.Lives < 1 {
		return invalid("player.lives must be at least 1")
	}
	if t.Camera.SmoothingBase <= 0 || t.Camera.SmoothingBase >= 1 {
		return invalid("camera.smoothing_base must be in (0, 1), got %g", t.Camera.SmoothingBase)
	}
	if t.Camera.PitchLimit <= 0 || t.Camera.PitchLimit >= math.Pi/2 {
		return invalid("camera.pitch_limit must be in (0, pi/2)")
	}
	if t.Damage.FallDamage < 0 || t.Damage.HazardPerSecond < 0 || t.Damage.EnemyContact < 0 {
		return invalid("damage values must not be negative")
	}
	if t.Damage.FallHeight <= 0 {
		return invalid("damage.fall_height must be positive")
	}
	if t.Scoring.CollectValue < 0 || t.Scoring.EnemyValue < 0 {
		return invalid("scoring values must not be negative")
	}
	if t.Level.ProceduralPlatforms < 30 {
		return invalid("level.procedural_platforms must be at least 30, got %d", t.Level.ProceduralPlatforms)
	}
	if t.Level.BobAmplitude < 0 {
		return invalid("level.bob_amplitude must not be negative")
	}
	if t.Level.EnemyChance < 0 || t.Level.EnemyChance > 1 {
		return invalid("level.enemy_chance must be in [0, 1]")
	}
	return nil
}

// ApplyPreset modifies the tuning based on a difficulty preset. Easy and hard
// scale the continuous and contact damage rates and shift where enemy speed
// progression starts; normal and the empty preset leave the rates untouched.
func ApplyPreset(cfg *Tuning, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust damage based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Damage.HazardPerSecond *= 0.5
		cfg.Damage.EnemyContact *= 0.5
	case DifficultyHard:
		cfg.Damage.HazardPerSecond *= 1.5
		cfg.Damage.EnemyContact *= 1.5
	}
}

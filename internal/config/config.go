// Package config provides YAML-based simulation tuning, the difficulty
// presets and the loader that resolves which tuning file to use.
package config

import "github.com/vovakirdan/raanman3d/internal/vecmath"

// Tuning groups every numeric constant the simulation reads. It is built once
// and handed to the simulation at construction; the algorithms never embed
// their own magic numbers.
type Tuning struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Camera     CameraConfig     `yaml:"camera"`
	Damage     DamageConfig     `yaml:"damage"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Level      LevelConfig      `yaml:"level"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the integrator constants.
type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`      // units/s², negative is down
	JumpForce  float64 `yaml:"jump_force"`   // vertical velocity set on jump
	MaxDelta   float64 `yaml:"max_delta"`    // per-step cap in seconds
	KillPlaneY float64 `yaml:"kill_plane_y"` // falling below this is fatal
}

// PlayerConfig defines movement parameters.
type PlayerConfig struct {
	MoveSpeed float64 `yaml:"move_speed"` // units/s along the ground
	TurnSpeed float64 `yaml:"turn_speed"` // radians/s for keyboard turning
	Lives     int     `yaml:"lives"`
}

// Vec is a YAML-friendly 3D vector.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// V converts to the core vector type.
func (v Vec) V() vecmath.Vec3 {
	return vecmath.V3(v.X, v.Y, v.Z)
}

// CameraConfig defines the chase camera.
type CameraConfig struct {
	Offset        Vec     `yaml:"offset"`
	SmoothingBase float64 `yaml:"smoothing_base"` // fraction of distance left after 1s
	PitchLimit    float64 `yaml:"pitch_limit"`
	LookHeight    float64 `yaml:"look_height"`
}

// DamageConfig defines every damage source.
type DamageConfig struct {
	FallDamage          float64 `yaml:"fall_damage"`          // flat deduction
	FallHeight          float64 `yaml:"fall_height"`          // drop that triggers it
	HazardPerSecond     float64 `yaml:"hazard_per_second"`    // continuous rate
	EnemyContact        float64 `yaml:"enemy_contact"`        // instantaneous hit
	InvulnerableSeconds float64 `yaml:"invulnerable_seconds"` // immunity after a hit
	StompBounce         float64 `yaml:"stomp_bounce"`         // vertical velocity after a stomp
}

// ScoringConfig defines score and hack meter gains.
type ScoringConfig struct {
	CollectValue   int     `yaml:"collect_value"`
	EnemyValue     int     `yaml:"enemy_value"`
	HackPerCollect float64 `yaml:"hack_per_collect"`
	HackPerDefeat  float64 `yaml:"hack_per_defeat"`
	HackDuration   float64 `yaml:"hack_duration"` // seconds hazards stay off
}

// LevelConfig defines layout generation.
type LevelConfig struct {
	ID                  string  `yaml:"id"`
	File                string  `yaml:"file,omitempty"` // custom hand-placed level
	ProceduralPlatforms int     `yaml:"procedural_platforms"`
	EnemyChance         float64 `yaml:"enemy_chance"`
	EnemySpeed          float64 `yaml:"enemy_speed"`
	BobAmplitude        float64 `yaml:"bob_amplitude"`
	BobFrequency        float64 `yaml:"bob_frequency"`
	BobPhaseShift       float64 `yaml:"bob_phase_shift"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score, or simulated seconds for "time", at full difficulty
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings map to "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

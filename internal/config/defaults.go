package config

import (
	_ "embed"

	"github.com/vovakirdan/raanman3d/internal/camera"
	"github.com/vovakirdan/raanman3d/internal/physics"
)

//go:embed defaults/raanman.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the hardcoded tuning. It matches the embedded YAML.
func DefaultTuning() Tuning {
	cam := camera.DefaultSettings()
	return Tuning{
		Physics: PhysicsConfig{
			Gravity:    physics.DefaultGravity,
			JumpForce:  physics.DefaultJumpForce,
			MaxDelta:   physics.MaxDeltaSeconds,
			KillPlaneY: -30,
		},
		Player: PlayerConfig{
			MoveSpeed: 7,
			TurnSpeed: 2.5,
			Lives:     3,
		},
		Camera: CameraConfig{
			Offset:        Vec{X: cam.Offset.X(), Y: cam.Offset.Y(), Z: cam.Offset.Z()},
			SmoothingBase: cam.SmoothingBase,
			PitchLimit:    cam.PitchLimit,
			LookHeight:    cam.LookHeight,
		},
		Damage: DamageConfig{
			FallDamage:          physics.DefaultFallDamage,
			FallHeight:          8,
			HazardPerSecond:     physics.DefaultHazardDamagePerSecond,
			EnemyContact:        10,
			InvulnerableSeconds: 1,
			StompBounce:         7,
		},
		Scoring: ScoringConfig{
			CollectValue:   100,
			EnemyValue:     250,
			HackPerCollect: 5,
			HackPerDefeat:  15,
			HackDuration:   5,
		},
		Level: LevelConfig{
			ID:                  "level-1",
			ProceduralPlatforms: 30,
			EnemyChance:         0.25,
			EnemySpeed:          1.5,
			BobAmplitude:        0.3,
			BobFrequency:        2.0,
			BobPhaseShift:       0.7,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

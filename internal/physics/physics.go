// Package physics integrates player motion: gravity, jump impulses, intent
// driven horizontal movement and the delta-time clamp that keeps every step
// bounded regardless of host scheduling jitter.
package physics

import (
	"math"

	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

// Default tuning. The gravity/jump pair bounds traversable platform spacing,
// so PeakHeight of the defaults must stay within (1.5, 6).
const (
	DefaultGravity               = -28.0
	DefaultJumpForce             = 11.0
	MaxDeltaSeconds              = 0.05
	DefaultFallDamage            = 20.0
	DefaultHazardDamagePerSecond = 25.0
)

// GroundSnap is how far feet may sit from the support surface and still count
// as standing on it.
const GroundSnap = 0.05

// Body is the integrated state of a moving entity. Position is at the feet.
type Body struct {
	Position vecmath.Vec3
	Velocity vecmath.Vec3
	Grounded bool

	airPeakY float64 // highest feet Y since last leaving the ground
}

// NewBody creates a grounded body at pos.
func NewBody(pos vecmath.Vec3) Body {
	return Body{Position: pos, Grounded: true, airPeakY: pos.Y()}
}

// Landing describes the outcome of a single integration step.
type Landing struct {
	Landed bool    // body touched ground during this step
	Drop   float64 // height fallen from the highest point of the airborne phase
}

// ClampDelta converts a raw frame delta in milliseconds to seconds and caps it
// at MaxDeltaSeconds.
func ClampDelta(rawMS float64) float64 {
	return ClampDeltaTo(rawMS, MaxDeltaSeconds)
}

// ClampDeltaTo is ClampDelta with an explicit cap. Negative or non-finite
// deltas produce a zero step.
func ClampDeltaTo(rawMS, maxSeconds float64) float64 {
	if !vecmath.FiniteF(rawMS) || rawMS <= 0 {
		return 0
	}
	dt := rawMS / 1000
	if dt > maxSeconds {
		return maxSeconds
	}
	return dt
}

// Jump sets the vertical velocity to force. Only permitted when grounded.
func Jump(b *Body, force float64) bool {
	if !b.Grounded {
		return false
	}
	b.Velocity[1] = force
	b.Grounded = false
	b.airPeakY = b.Position.Y()
	return true
}

// Integrate advances the vertical motion of b by dt seconds.
// groundY is the height of the support surface below the body; pass
// math.Inf(-1) when there is none.
func Integrate(b *Body, gravity, dt, groundY float64) Landing {
	if b.Grounded {
		if math.Abs(b.Position.Y()-groundY) <= GroundSnap {
			b.Position[1] = groundY
			b.Velocity[1] = 0
			return Landing{}
		}
		// Walked off an edge.
		b.Grounded = false
		b.airPeakY = b.Position.Y()
	}

	b.Velocity[1] += gravity * dt
	b.Position[1] += b.Velocity[1] * dt

	if b.Position.Y() > b.airPeakY {
		b.airPeakY = b.Position.Y()
	}

	if b.Position.Y() <= groundY {
		drop := b.airPeakY - groundY
		b.Position[1] = groundY
		b.Velocity[1] = 0
		b.Grounded = true
		b.airPeakY = groundY
		return Landing{Landed: true, Drop: drop}
	}

	return Landing{}
}

// MoveHorizontal displaces b along the horizontal projection of dir at speed
// units per second. A zero direction is a no-op.
func MoveHorizontal(b *Body, dir vecmath.Vec3, speed, dt float64) {
	flat := vecmath.Horizontal(dir)
	if flat.Len() == 0 {
		return
	}
	step := flat.Normalize().Mul(speed * dt)
	b.Position = b.Position.Add(step)
}

// PeakHeight returns the apex of a jump launched with force under gravity.
func PeakHeight(force, gravity float64) float64 {
	if gravity >= 0 {
		return math.Inf(1)
	}
	return force * force / (2 * -gravity)
}

// AirTime returns the time to return to launch height.
func AirTime(force, gravity float64) float64 {
	if gravity >= 0 {
		return math.Inf(1)
	}
	return 2 * force / -gravity
}

// FallDamage returns amount when drop exceeds threshold, zero otherwise.
// The deduction is flat, not proportional to the distance fallen.
func FallDamage(drop, threshold, amount float64) float64 {
	if drop > threshold {
		return amount
	}
	return 0
}

// ContinuousDamage returns the damage accrued over dt at rate per second.
func ContinuousDamage(rate, dt float64) float64 {
	return rate * dt
}

// Finite reports whether the body's position and velocity are usable.
func Finite(b Body) bool {
	return vecmath.Finite(b.Position) && vecmath.Finite(b.Velocity)
}

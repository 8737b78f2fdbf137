// Package camera implements the chase camera: a yaw/pitch orbit of a fixed
// local offset around the player, followed with frame-rate independent
// exponential smoothing.
package camera

import (
	"math"

	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

// Defaults.
const (
	DefaultSmoothingBase = 0.001
	DefaultPitchLimit    = 1.2
	DefaultLookHeight    = 1.4
)

// DefaultOffset sits behind (+Z) and above the player.
var DefaultOffset = vecmath.V3(0, 4, 8)

// Settings configures a Controller.
type Settings struct {
	Offset        vecmath.Vec3 // local offset relative to the player
	SmoothingBase float64      // fraction of distance left after one second
	PitchLimit    float64      // absolute pitch bound in radians
	LookHeight    float64      // look target height above the feet
}

// DefaultSettings returns the stock chase camera.
func DefaultSettings() Settings {
	return Settings{
		Offset:        DefaultOffset,
		SmoothingBase: DefaultSmoothingBase,
		PitchLimit:    DefaultPitchLimit,
		LookHeight:    DefaultLookHeight,
	}
}

// Controller owns the camera state. Only the simulation mutates it.
type Controller struct {
	settings Settings

	Yaw      float64
	Pitch    float64
	Position vecmath.Vec3

	lookTarget vecmath.Vec3
}

// New creates a controller snapped behind target.
func New(settings Settings, target vecmath.Vec3) *Controller {
	c := &Controller{settings: settings}
	c.Snap(target)
	return c
}

// Settings returns the controller settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// RotateOffset rotates a local offset by yaw and couples pitch into the
// vertical component. Yaw 0 is the identity; yaw Pi flips Z.
func RotateOffset(offset vecmath.Vec3, yaw, pitch float64) vecmath.Vec3 {
	ox, oy, oz := offset.X(), offset.Y(), offset.Z()
	sinY, cosY := math.Sincos(yaw)
	return vecmath.V3(
		ox*cosY-oz*sinY,
		oy+oz*math.Sin(pitch),
		ox*sinY+oz*cosY,
	)
}

// SmoothingFactor returns the fraction of the remaining distance to cover in
// a step of dt seconds.
func SmoothingFactor(base, dt float64) float64 {
	return 1 - math.Pow(base, dt)
}

// ApplyLook accumulates look deltas. Yaw wraps, pitch is clamped.
func (c *Controller) ApplyLook(dYaw, dPitch float64) {
	if vecmath.FiniteF(dYaw) {
		c.Yaw = vecmath.WrapAngle(c.Yaw + dYaw)
	}
	if vecmath.FiniteF(dPitch) {
		limit := c.settings.PitchLimit
		c.Pitch = vecmath.Clamp(c.Pitch+dPitch, -limit, limit)
	}
}

// Desired returns the unsmoothed camera position for a player at target.
func (c *Controller) Desired(target vecmath.Vec3) vecmath.Vec3 {
	return target.Add(RotateOffset(c.settings.Offset, c.Yaw, c.Pitch))
}

// Update moves the camera toward its desired position for target.
func (c *Controller) Update(target vecmath.Vec3, dt float64) {
	desired := c.Desired(target)
	f := SmoothingFactor(c.settings.SmoothingBase, dt)
	c.Position = vecmath.Lerp(c.Position, desired, f)
	c.lookTarget = target.Add(vecmath.V3(0, c.settings.LookHeight, 0))
}

// Snap places the camera at its desired position immediately.
func (c *Controller) Snap(target vecmath.Vec3) {
	c.Position = c.Desired(target)
	c.lookTarget = target.Add(vecmath.V3(0, c.settings.LookHeight, 0))
}

// LookTarget returns the point the camera looks at.
func (c *Controller) LookTarget() vecmath.Vec3 {
	return c.lookTarget
}

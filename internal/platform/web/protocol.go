package web

import (
	"github.com/vovakirdan/raanman3d/internal/device"
	"github.com/vovakirdan/raanman3d/internal/layout"
	"github.com/vovakirdan/raanman3d/internal/sim"
	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

// Message types.
const (
	TypeHello   = "hello"
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeRestart = "restart"
	TypeError   = "error"
)

// ClientMessage is anything the browser sends. Only the fields of its Type
// are read.
type ClientMessage struct {
	Type string `json:"type"`

	// hello
	Capabilities *device.Capabilities `json:"capabilities,omitempty"`
	Level        string               `json:"level,omitempty"`
	Flat         bool                 `json:"flat,omitempty"`
	Seed         int64                `json:"seed,omitempty"`

	// frame
	DeltaMS float64   `json:"deltaMs,omitempty"`
	Input   sim.Input `json:"input"`
}

// Platform is the static geometry a renderer builds meshes from.
type Platform struct {
	ID     int          `json:"id"`
	Center vecmath.Vec3 `json:"center"`
	Size   vecmath.Vec3 `json:"size"`
	Fixed  bool         `json:"fixed"`
}

// Hazard is a static damaging zone.
type Hazard struct {
	ID     int          `json:"id"`
	Center vecmath.Vec3 `json:"center"`
	Size   vecmath.Vec3 `json:"size"`
}

// WelcomeMessage answers a hello with everything that never changes
// during a run.
type WelcomeMessage struct {
	Type      string         `json:"type"`
	Profile   device.Profile `json:"profile"`
	Level     string         `json:"level"`
	Name      string         `json:"name"`
	Seed      int64          `json:"seed"`
	Flat      bool           `json:"flat"`
	Spawn     vecmath.Vec3   `json:"spawn"`
	Platforms []Platform     `json:"platforms"`
	Hazards   []Hazard       `json:"hazards"`
}

// FrameMessage carries one simulation snapshot.
type FrameMessage struct {
	Type string `json:"type"`
	sim.FrameOutput
}

// ErrorMessage reports a request the server could not serve.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newWelcome(p device.Profile, lay layout.Layout) WelcomeMessage {
	w := WelcomeMessage{
		Type:      TypeWelcome,
		Profile:   p,
		Level:     lay.LevelID,
		Name:      lay.Name,
		Seed:      lay.Seed,
		Flat:      lay.Flat,
		Spawn:     lay.Spawn,
		Platforms: make([]Platform, len(lay.Platforms)),
		Hazards:   make([]Hazard, len(lay.Hazards)),
	}
	for i, pl := range lay.Platforms {
		w.Platforms[i] = Platform{ID: pl.ID, Center: pl.Center, Size: pl.Size, Fixed: pl.Fixed}
	}
	for i, h := range lay.Hazards {
		w.Hazards[i] = Hazard{ID: h.ID, Center: h.Center, Size: h.Size}
	}
	return w
}

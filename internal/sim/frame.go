package sim

import (
	"github.com/vovakirdan/raanman3d/internal/gamestate"
	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

// Input is the per-frame intent produced by a host.
type Input struct {
	Forward bool `json:"forward,omitempty"`
	Back    bool `json:"back,omitempty"`
	Left    bool `json:"left,omitempty"`
	Right   bool `json:"right,omitempty"`
	Jump    bool `json:"jump,omitempty"`
	Hack    bool `json:"hack,omitempty"`

	// Turn is a keyboard turn axis in [-1, 1], scaled by the turn speed.
	Turn float64 `json:"turn,omitempty"`
	// LookYaw and LookPitch are pointer deltas in radians for this frame.
	LookYaw   float64 `json:"lookYaw,omitempty"`
	LookPitch float64 `json:"lookPitch,omitempty"`
}

// Transform is a position plus heading.
type Transform struct {
	Position vecmath.Vec3 `json:"position"`
	Yaw      float64      `json:"yaw"`
}

// CameraTransform is what a renderer needs to place its camera.
type CameraTransform struct {
	Position vecmath.Vec3 `json:"position"`
	Target   vecmath.Vec3 `json:"target"`
	Yaw      float64      `json:"yaw"`
	Pitch    float64      `json:"pitch"`
}

// EntityKind names a world object class.
type EntityKind string

const (
	EntityPlatform    EntityKind = "platform"
	EntityCollectible EntityKind = "collectible"
	EntityEnemy       EntityKind = "enemy"
	EntityHazard      EntityKind = "hazard"
)

// Entity is one world object's transform for this frame.
type Entity struct {
	ID       int          `json:"id"`
	Kind     EntityKind   `json:"kind"`
	Position vecmath.Vec3 `json:"position"`
	Visible  bool         `json:"visible"`
}

// EventKind names a discrete event that happened during a frame.
type EventKind string

const (
	EventJump       EventKind = "jump"
	EventLand       EventKind = "land"
	EventFallDamage EventKind = "fall_damage"
	EventCollect    EventKind = "collect"
	EventDefeat     EventKind = "defeat"
	EventHit        EventKind = "hit"
	EventHazard     EventKind = "hazard"
	EventHack       EventKind = "hack"
	EventOutOfWorld EventKind = "out_of_world"
	EventDeath      EventKind = "death"
	EventRespawn    EventKind = "respawn"
	EventGameOver   EventKind = "game_over"
	EventFault      EventKind = "fault"
)

// Event is a discrete occurrence, emitted in the order it happened.
type Event struct {
	Kind   EventKind `json:"kind"`
	ID     int       `json:"id,omitempty"`
	Points int       `json:"points,omitempty"`
	Amount float64   `json:"amount,omitempty"`
}

// FrameOutput is the snapshot a host reads after each step. It holds copies,
// never references into simulation state.
type FrameOutput struct {
	Frame     int             `json:"frame"`
	Time      float64         `json:"time"`
	Delta     float64         `json:"dt"`
	Player    Transform       `json:"player"`
	Velocity  vecmath.Vec3    `json:"velocity"`
	Grounded  bool            `json:"grounded"`
	Camera    CameraTransform `json:"camera"`
	Entities  []Entity        `json:"entities"`
	Events    []Event         `json:"events,omitempty"`
	HUD       gamestate.HUD   `json:"hud"`
	Particles int             `json:"particles"`
	GameOver  bool            `json:"gameOver"`
	Fault     bool            `json:"fault,omitempty"`
}

// Has reports whether an event of kind occurred this frame.
func (f FrameOutput) Has(kind EventKind) bool {
	for _, e := range f.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Package gamestate tracks the run counters: score and combo, health, the
// hack meter and lives. Each counter follows its own transition rules; all
// clamps saturate.
package gamestate

import "math"

// Bounds for the bounded counters.
const (
	MaxHealth = 100.0
	MaxHack   = 100.0
	MaxBars   = 10
)

// State holds the counters of one run.
type State struct {
	Health float64
	Hack   float64
	Score  int
	Combo  int
	Lives  int

	startLives   int
	invulnerable float64 // seconds of contact immunity left
	hackActive   float64 // seconds of hack effect left
}

// New creates a fresh run with the given number of lives (at least 1).
func New(lives int) *State {
	s := &State{}
	s.Reset(lives)
	return s
}

// Reset restores every counter for a new run.
func (s *State) Reset(lives int) {
	if lives < 1 {
		lives = 1
	}
	s.startLives = lives
	s.Lives = lives
	s.Score = 0
	s.Respawn()
}

// Respawn restores the per-life counters. Score and lives are kept.
func (s *State) Respawn() {
	s.Health = MaxHealth
	s.Hack = 0
	s.Combo = 1
	s.invulnerable = 0
	s.hackActive = 0
}

// Collect awards an item pickup and returns the points granted.
func (s *State) Collect(base int) int {
	return s.award(base)
}

// Defeat awards an enemy defeat and returns the points granted.
func (s *State) Defeat(base int) int {
	return s.award(base)
}

// award adds base*combo then grows the combo. The combo has no cap.
func (s *State) award(base int) int {
	points := base * s.Combo
	s.Score += points
	s.Combo++
	return points
}

// Damage removes amount of health, floored at zero, and resets the combo.
// Returns true when health reaches zero.
func (s *State) Damage(amount float64) bool {
	if amount <= 0 || math.IsNaN(amount) {
		return false
	}
	s.Health = math.Max(0, s.Health-amount)
	s.Combo = 1
	return s.Health == 0
}

// Hit applies instantaneous contact damage unless the player is still
// invulnerable from the previous hit. It reports whether damage landed and
// whether it was fatal.
func (s *State) Hit(amount, invulnerableFor float64) (applied, died bool) {
	if s.invulnerable > 0 {
		return false, false
	}
	s.invulnerable = invulnerableFor
	return true, s.Damage(amount)
}

// AddHack raises the hack meter, saturating at MaxHack.
func (s *State) AddHack(delta float64) {
	s.Hack = math.Min(MaxHack, s.Hack+delta)
}

// TriggerHack spends a full meter to activate the hack for duration seconds.
func (s *State) TriggerHack(duration float64) bool {
	if s.Hack < MaxHack {
		return false
	}
	s.Hack = 0
	s.hackActive = duration
	return true
}

// HackActive reports whether the hack effect is running.
func (s *State) HackActive() bool {
	return s.hackActive > 0
}

// Invulnerable reports whether contact damage is currently ignored.
func (s *State) Invulnerable() bool {
	return s.invulnerable > 0
}

// Tick counts down the timed effects.
func (s *State) Tick(dt float64) {
	s.invulnerable = math.Max(0, s.invulnerable-dt)
	s.hackActive = math.Max(0, s.hackActive-dt)
}

// Dead reports whether health is exhausted.
func (s *State) Dead() bool {
	return s.Health <= 0
}

// LoseLife consumes a life. Returns true when none are left.
func (s *State) LoseLife() bool {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives == 0
}

// HealthBars maps health to the HUD bar count: max(0, round(health/10)).
func HealthBars(health float64) int {
	bars := int(math.Round(health / 10))
	if bars < 0 {
		return 0
	}
	if bars > MaxBars {
		return MaxBars
	}
	return bars
}

// HUD is the read-only view the heads-up display consumes.
type HUD struct {
	Health      float64 `json:"health"`
	HealthBars  int     `json:"healthBars"`
	Score       int     `json:"score"`
	Combo       int     `json:"combo"`
	HackPercent float64 `json:"hackPercent"`
	HackActive  bool    `json:"hackActive"`
	Lives       int     `json:"lives"`

	// Invulnerable is set during the immunity window after a contact hit.
	Invulnerable bool `json:"invulnerable"`
}

// HUD returns the current display values.
func (s *State) HUD() HUD {
	return HUD{
		Health:      s.Health,
		HealthBars:  HealthBars(s.Health),
		Score:       s.Score,
		Combo:       s.Combo,
		HackPercent: s.Hack * 100 / MaxHack,
		HackActive:  s.HackActive(),
		Lives:       s.Lives,

		Invulnerable: s.Invulnerable(),
	}
}

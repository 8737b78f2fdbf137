// Package sim sequences one frame of the platformer: delta clamp, movement
// and gravity, collision resolution, game-state mutation, camera follow. A
// Simulation is owned by a single host goroutine and needs no locking.
package sim

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/raanman3d/internal/camera"
	"github.com/vovakirdan/raanman3d/internal/collision"
	"github.com/vovakirdan/raanman3d/internal/config"
	"github.com/vovakirdan/raanman3d/internal/device"
	"github.com/vovakirdan/raanman3d/internal/effects"
	"github.com/vovakirdan/raanman3d/internal/gamestate"
	"github.com/vovakirdan/raanman3d/internal/layout"
	"github.com/vovakirdan/raanman3d/internal/physics"
	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

// FlatCameraOffset is the side-on camera used by the 2D variant.
var FlatCameraOffset = vecmath.V3(0, 3, 14)

// Particle counts per burst.
const (
	pickupBurst  = 12
	defeatBurst  = 20
	landingBurst = 8
	ambientRange = 25.0
)

// Options configures a Simulation.
type Options struct {
	Tuning  config.Tuning
	Profile device.Profile
	Seed    int64
	Flat    bool
	Logger  *log.Logger // nil discards
}

// Player is the simulated avatar.
type Player struct {
	Body physics.Body
	Yaw  float64
}

type enemyState struct {
	offset float64 // along X from Home
	dir    float64 // +1 or -1
	alive  bool
}

// patrol moves the enemy dist along its path, reflecting off both ends so the
// distance covered is the same whatever the step size.
func (st *enemyState) patrol(half, dist float64) {
	if half <= 0 {
		st.offset = 0
		return
	}
	st.offset += st.dir * math.Mod(dist, 4*half)
	for st.offset > half || st.offset < -half {
		if st.offset > half {
			st.offset = 2*half - st.offset
			st.dir = -1
		} else {
			st.offset = -2*half - st.offset
			st.dir = 1
		}
	}
}

// Simulation is the explicit per-run state. All mutation goes through Step
// and Restart.
type Simulation struct {
	tuning  config.Tuning
	profile device.Profile
	flat    bool
	log     *log.Logger

	layout     layout.Layout
	platforms  []collision.AABB
	hazards    []collision.AABB
	difficulty *config.DifficultyManager

	player    Player
	lastGood  Player
	state     *gamestate.State
	cam       *camera.Controller
	particles *effects.Pool
	collected []bool
	enemies   []enemyState

	time   float64
	frame  int
	over   bool
	events []Event
}

// New resolves the configured level and builds a simulation for it.
func New(opts Options) (*Simulation, error) {
	lay, err := layout.Build(opts.Tuning, opts.Seed, opts.Flat)
	if err != nil {
		return nil, err
	}
	return NewWithLayout(opts, lay), nil
}

// NewWithLayout builds a simulation over an already generated layout.
func NewWithLayout(opts Options, lay layout.Layout) *Simulation {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	settings := camera.Settings{
		Offset:        opts.Tuning.Camera.Offset.V(),
		SmoothingBase: opts.Tuning.Camera.SmoothingBase,
		PitchLimit:    opts.Tuning.Camera.PitchLimit,
		LookHeight:    opts.Tuning.Camera.LookHeight,
	}
	if lay.Flat {
		settings.Offset = FlatCameraOffset
	}

	s := &Simulation{
		tuning:     opts.Tuning,
		profile:    opts.Profile,
		flat:       lay.Flat,
		log:        logger,
		layout:     lay,
		difficulty: config.NewDifficultyManager(opts.Tuning.Difficulty),
		state:      gamestate.New(opts.Tuning.Player.Lives),
		cam:        camera.New(settings, lay.Spawn),
		particles:  effects.NewPool(opts.Profile, lay.Seed),
	}
	for _, p := range lay.Platforms {
		s.platforms = append(s.platforms, p.Box())
	}
	for _, h := range lay.Hazards {
		s.hazards = append(s.hazards, h.Box())
	}
	s.reset()
	return s
}

// Restart begins a new run on the same layout.
func (s *Simulation) Restart() {
	s.state.Reset(s.tuning.Player.Lives)
	s.reset()
	s.log.Debug("run restarted", "level", s.layout.LevelID)
}

func (s *Simulation) reset() {
	s.collected = make([]bool, len(s.layout.Collectibles))
	s.enemies = make([]enemyState, len(s.layout.Enemies))
	for i := range s.enemies {
		s.enemies[i] = enemyState{dir: 1, alive: true}
	}
	s.time = 0
	s.frame = 0
	s.over = false
	s.spawnPlayer()
	s.particles.Clear()
	s.particles.SeedBackground(s.layout.Spawn, ambientRange)
}

func (s *Simulation) spawnPlayer() {
	s.player = Player{Body: physics.NewBody(s.layout.Spawn)}
	if s.flat {
		s.player.Yaw = math.Pi / 2
	} else {
		s.player.Yaw = s.cam.Yaw
	}
	s.lastGood = s.player
	s.cam.Snap(s.player.Body.Position)
}

// Step advances one frame. rawDeltaMS is the host's measured frame time in
// milliseconds; it is clamped before any integration.
func (s *Simulation) Step(rawDeltaMS float64, in Input) FrameOutput {
	dt := physics.ClampDeltaTo(rawDeltaMS, s.tuning.Physics.MaxDelta)
	s.events = s.events[:0]

	if s.over {
		s.particles.Update(dt, s.tuning.Physics.Gravity)
		return s.snapshot(dt, false)
	}

	s.time += dt
	s.frame++

	// Look and movement intent.
	s.look(in, dt)
	s.move(in, dt)

	// Gravity and grounding.
	feetBefore := s.player.Body.Position.Y()
	if in.Jump && physics.Jump(&s.player.Body, s.tuning.Physics.JumpForce) {
		s.emit(Event{Kind: EventJump})
	}
	ground := s.support(s.player.Body.Position)
	landing := physics.Integrate(&s.player.Body, s.tuning.Physics.Gravity, dt, ground)
	s.resolveCeiling()

	if !physics.Finite(s.player.Body) {
		s.player = s.lastGood
		s.log.Error("non-finite player state, frame rolled back",
			"frame", s.frame, "position", s.player.Body.Position)
		s.emit(Event{Kind: EventFault})
		s.cam.Update(s.player.Body.Position, dt)
		return s.snapshot(dt, true)
	}

	// Collision resolution and game-state mutation.
	fellHard := false
	if landing.Landed {
		s.emit(Event{Kind: EventLand, Amount: landing.Drop})
		dmg := physics.FallDamage(landing.Drop, s.tuning.Damage.FallHeight, s.tuning.Damage.FallDamage)
		if dmg > 0 {
			s.state.Damage(dmg)
			fellHard = true
			s.emit(Event{Kind: EventFallDamage, Amount: dmg})
			s.particles.Burst(s.player.Body.Position, effects.KindDust, landingBurst)
		}
	}

	if s.player.Body.Position.Y() < s.tuning.Physics.KillPlaneY {
		s.emit(Event{Kind: EventOutOfWorld})
		s.state.Damage(s.state.Health)
	}

	if in.Hack && s.state.TriggerHack(s.tuning.Scoring.HackDuration) {
		s.emit(Event{Kind: EventHack})
		s.log.Debug("hack activated", "frame", s.frame)
	}

	s.collect()
	s.updateEnemies(dt, feetBefore)
	if !fellHard {
		s.applyHazards(dt)
	}
	s.state.Tick(dt)

	if s.state.Dead() {
		s.die()
	}

	s.lastGood = s.player

	// Camera and effects.
	s.cam.Update(s.player.Body.Position, dt)
	s.particles.Recenter(s.player.Body.Position)
	s.particles.Update(dt, s.tuning.Physics.Gravity)

	return s.snapshot(dt, false)
}

func (s *Simulation) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Simulation) look(in Input, dt float64) {
	if s.flat {
		return
	}
	turn := vecmath.Clamp(in.Turn, -1, 1) * s.tuning.Player.TurnSpeed * dt
	s.cam.ApplyLook(in.LookYaw+turn, in.LookPitch)
	s.player.Yaw = s.cam.Yaw
}

func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// move applies horizontal intent one axis at a time, reverting an axis that
// would push the player into a platform.
func (s *Simulation) move(in Input, dt float64) {
	var dir vecmath.Vec3
	if s.flat {
		x := axis(in.Right, in.Left) + axis(in.Forward, in.Back)
		dir = vecmath.V3(vecmath.Clamp(x, -1, 1), 0, 0)
		if x > 0 {
			s.player.Yaw = math.Pi / 2
		} else if x < 0 {
			s.player.Yaw = -math.Pi / 2
		}
	} else {
		fwd := axis(in.Forward, in.Back)
		side := axis(in.Right, in.Left)
		dir = vecmath.Forward(s.player.Yaw).Mul(fwd).Add(vecmath.Right(s.player.Yaw).Mul(side))
	}

	start := s.player.Body.Position
	physics.MoveHorizontal(&s.player.Body, dir, s.tuning.Player.MoveSpeed, dt)
	target := s.player.Body.Position

	pos := start
	pos[0] = target.X()
	if s.solid(pos) {
		pos[0] = start.X()
	}
	pos[2] = target.Z()
	if s.solid(pos) {
		pos[2] = start.Z()
	}
	if s.flat {
		pos[2] = 0
	}
	s.player.Body.Position = pos
}

// solid reports whether a player standing at pos would penetrate a platform.
func (s *Simulation) solid(pos vecmath.Vec3) bool {
	box := collision.PlayerAABB(pos)
	for _, p := range s.platforms {
		if collision.Overlap(box, p) {
			return true
		}
	}
	return false
}

// support returns the highest platform top under the player's footprint that
// is not above the feet, or -Inf when nothing is below.
func (s *Simulation) support(pos vecmath.Vec3) float64 {
	box := collision.PlayerAABB(pos)
	best := math.Inf(-1)
	for _, p := range s.platforms {
		if !collision.OverlapXZ(box, p) {
			continue
		}
		if p.MaxY <= pos.Y()+physics.GroundSnap && p.MaxY > best {
			best = p.MaxY
		}
	}
	return best
}

// resolveCeiling stops upward motion into the underside of a platform.
func (s *Simulation) resolveCeiling() {
	b := &s.player.Body
	if b.Velocity.Y() <= 0 {
		return
	}
	box := collision.PlayerAABB(b.Position)
	for _, p := range s.platforms {
		if collision.Overlap(box, p) {
			b.Position[1] = p.MinY - collision.PlayerHeight
			b.Velocity[1] = 0
			box = collision.PlayerAABB(b.Position)
		}
	}
}

func (s *Simulation) collectiblePos(c layout.Collectible) vecmath.Vec3 {
	lv := s.tuning.Level
	y := layout.Bob(c.Base.Y(), s.time, lv.BobFrequency, lv.BobPhaseShift, lv.BobAmplitude)
	return vecmath.V3(c.Base.X(), y, c.Base.Z())
}

func (s *Simulation) collect() {
	box := collision.PlayerAABB(s.player.Body.Position)
	for i, c := range s.layout.Collectibles {
		if s.collected[i] {
			continue
		}
		pos := s.collectiblePos(c)
		if !collision.Overlap(box, collision.BoxAround(pos, layout.CollectibleSize)) {
			continue
		}
		s.collected[i] = true
		points := s.state.Collect(s.tuning.Scoring.CollectValue)
		s.state.AddHack(s.tuning.Scoring.HackPerCollect)
		s.emit(Event{Kind: EventCollect, ID: c.ID, Points: points})
		s.particles.Burst(pos, effects.KindPickup, pickupBurst)
	}
}

func (s *Simulation) enemyPos(i int) vecmath.Vec3 {
	return s.layout.Enemies[i].Home.Add(vecmath.V3(s.enemies[i].offset, 0, 0))
}

// updateEnemies advances patrols and resolves player contact. Landing on an
// enemy from above defeats it; any other contact hurts the player.
func (s *Simulation) updateEnemies(dt, feetBefore float64) {
	// Midpoint time keeps a linearly ramping speed exact for any step size.
	speed := s.difficulty.Speed(s.tuning.Level.EnemySpeed, s.state.Score, s.time-dt/2)
	body := &s.player.Body
	for i, e := range s.layout.Enemies {
		st := &s.enemies[i]
		if !st.alive {
			continue
		}
		st.patrol(e.Range, speed*dt)

		pos := s.enemyPos(i)
		enemyBox := layout.EnemyBox(pos)
		if !collision.Overlap(collision.PlayerAABB(body.Position), enemyBox) {
			continue
		}

		midY := pos.Y() + layout.EnemySize.Y()/2
		if body.Velocity.Y() < 0 && feetBefore >= midY {
			st.alive = false
			points := s.state.Defeat(s.tuning.Scoring.EnemyValue)
			s.state.AddHack(s.tuning.Scoring.HackPerDefeat)
			body.Velocity[1] = s.tuning.Damage.StompBounce
			body.Grounded = false
			s.emit(Event{Kind: EventDefeat, ID: e.ID, Points: points})
			s.particles.Burst(pos, effects.KindSpark, defeatBurst)
			continue
		}

		if applied, _ := s.state.Hit(s.tuning.Damage.EnemyContact, s.tuning.Damage.InvulnerableSeconds); applied {
			s.emit(Event{Kind: EventHit, ID: e.ID, Amount: s.tuning.Damage.EnemyContact})
		}
	}
}

// applyHazards drains health while the player stands in any hazard zone.
// Overlapping zones do not stack.
func (s *Simulation) applyHazards(dt float64) {
	if s.state.HackActive() {
		return
	}
	box := collision.PlayerAABB(s.player.Body.Position)
	for _, h := range s.hazards {
		if collision.Overlap(box, h) {
			amount := physics.ContinuousDamage(s.tuning.Damage.HazardPerSecond, dt)
			if amount > 0 {
				s.state.Damage(amount)
				s.emit(Event{Kind: EventHazard, Amount: amount})
			}
			return
		}
	}
}

func (s *Simulation) die() {
	s.emit(Event{Kind: EventDeath})
	if s.state.LoseLife() {
		s.over = true
		s.emit(Event{Kind: EventGameOver, Points: s.state.Score})
		s.log.Info("game over", "level", s.layout.LevelID, "score", s.state.Score, "frame", s.frame)
		return
	}
	s.state.Respawn()
	s.spawnPlayer()
	s.emit(Event{Kind: EventRespawn})
	s.log.Debug("respawned", "lives", s.state.Lives, "score", s.state.Score)
}

func (s *Simulation) snapshot(dt float64, fault bool) FrameOutput {
	out := FrameOutput{
		Frame:    s.frame,
		Time:     s.time,
		Delta:    dt,
		Player:   Transform{Position: s.player.Body.Position, Yaw: s.player.Yaw},
		Velocity: s.player.Body.Velocity,
		Grounded: s.player.Body.Grounded,
		Camera: CameraTransform{
			Position: s.cam.Position,
			Target:   s.cam.LookTarget(),
			Yaw:      s.cam.Yaw,
			Pitch:    s.cam.Pitch,
		},
		HUD:       s.state.HUD(),
		Particles: s.particles.Len(),
		GameOver:  s.over,
		Fault:     fault,
	}
	if len(s.events) > 0 {
		out.Events = append([]Event(nil), s.events...)
	}

	lay := s.layout
	out.Entities = make([]Entity, 0, len(lay.Platforms)+len(lay.Collectibles)+len(lay.Enemies)+len(lay.Hazards))
	for _, p := range lay.Platforms {
		out.Entities = append(out.Entities, Entity{ID: p.ID, Kind: EntityPlatform, Position: p.Center, Visible: true})
	}
	for i, c := range lay.Collectibles {
		out.Entities = append(out.Entities, Entity{ID: c.ID, Kind: EntityCollectible, Position: s.collectiblePos(c), Visible: !s.collected[i]})
	}
	for i, e := range lay.Enemies {
		out.Entities = append(out.Entities, Entity{ID: e.ID, Kind: EntityEnemy, Position: s.enemyPos(i), Visible: s.enemies[i].alive})
	}
	hazardsOn := !s.state.HackActive()
	for _, h := range lay.Hazards {
		out.Entities = append(out.Entities, Entity{ID: h.ID, Kind: EntityHazard, Position: h.Center, Visible: hazardsOn})
	}
	return out
}

// Layout returns the level geometry. The slices are shared and must not be
// modified.
func (s *Simulation) Layout() layout.Layout {
	return s.layout
}

// Profile returns the device profile the simulation was built with.
func (s *Simulation) Profile() device.Profile {
	return s.profile
}

// Tuning returns the tuning in use.
func (s *Simulation) Tuning() config.Tuning {
	return s.tuning
}

// Flat reports whether this is the 2D variant.
func (s *Simulation) Flat() bool {
	return s.flat
}

// Score returns the current score.
func (s *Simulation) Score() int {
	return s.state.Score
}

// Player returns a copy of the player.
func (s *Simulation) Player() Player {
	return s.player
}

// Particles returns a copy of the live particles.
func (s *Simulation) Particles() []effects.Particle {
	return append([]effects.Particle(nil), s.particles.Particles()...)
}

// Package layout builds level geometry: the hand-placed platforms of a level
// file followed by a deterministic procedural run, plus the collectibles,
// enemies and hazards placed on them.
package layout

import (
	"hash/fnv"
	"iter"
	"math"
	"math/rand"

	"github.com/vovakirdan/raanman3d/internal/collision"
	"github.com/vovakirdan/raanman3d/internal/config"
	"github.com/vovakirdan/raanman3d/internal/physics"
	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

// Procedural placement bounds.
const (
	MinGap         = 1.0  // edge-to-edge distance between consecutive platforms
	GapReachRatio  = 0.55 // largest gap as a fraction of jump reach
	RiseReachRatio = 0.7  // largest rise as a fraction of peak height
	MaxDrop        = 1.5
	MaxLateral     = 2.5
	WorldHalfWidth = 12.0
	PlatformHeight = 1.0
	CollectLift    = 1.2 // collectible height above a platform top
	HazardEvery    = 7   // every Nth procedural platform carries a hazard strip
)

// EnemySize is the full extents of a patrolling enemy.
var EnemySize = vecmath.V3(0.9, 1.2, 0.9)

// CollectibleSize is the full extents of a pickup.
var CollectibleSize = vecmath.V3(0.6, 0.6, 0.6)

// Platform is a collidable platform descriptor.
type Platform struct {
	ID     int
	Center vecmath.Vec3
	Size   vecmath.Vec3
	Fixed  bool
}

// Box returns the platform's collision box.
func (p Platform) Box() collision.AABB {
	return collision.BoxAround(p.Center, p.Size)
}

// Top returns the walkable surface height.
func (p Platform) Top() float64 {
	return p.Center.Y() + p.Size.Y()/2
}

// Collectible is a pickup bobbing around its base position.
type Collectible struct {
	ID   int
	Base vecmath.Vec3
}

// Enemy patrols along X across its platform. Home is the feet position at the
// middle of the patrol.
type Enemy struct {
	ID       int
	Platform int
	Home     vecmath.Vec3
	Range    float64 // half the patrol length
}

// EnemyBox returns an enemy's collision box with feet at pos.
func EnemyBox(pos vecmath.Vec3) collision.AABB {
	return collision.BoxAround(pos.Add(vecmath.V3(0, EnemySize.Y()/2, 0)), EnemySize)
}

// Hazard is a damaging zone.
type Hazard struct {
	ID     int
	Center vecmath.Vec3
	Size   vecmath.Vec3
}

// Box returns the hazard zone.
func (h Hazard) Box() collision.AABB {
	return collision.BoxAround(h.Center, h.Size)
}

// Layout is a fully materialized level.
type Layout struct {
	LevelID      string
	Name         string
	Seed         int64
	Flat         bool
	Spawn        vecmath.Vec3
	Platforms    []Platform
	Collectibles []Collectible
	Enemies      []Enemy
	Hazards      []Hazard
}

// Params controls procedural generation.
type Params struct {
	Seed        int64 // mixed into the level seed
	Procedural  int
	Flat        bool // 2D: the run is laid out along +X with Z = 0
	Gravity     float64
	JumpForce   float64
	MoveSpeed   float64
	EnemyChance float64
}

// ParamsFrom derives generation parameters from tuning.
func ParamsFrom(t config.Tuning, seed int64, flat bool) Params {
	return Params{
		Seed:        seed,
		Procedural:  t.Level.ProceduralPlatforms,
		Flat:        flat,
		Gravity:     t.Physics.Gravity,
		JumpForce:   t.Physics.JumpForce,
		MoveSpeed:   t.Player.MoveSpeed,
		EnemyChance: t.Level.EnemyChance,
	}
}

// Reach returns the horizontal distance covered during a full jump.
func Reach(gravity, jumpForce, moveSpeed float64) float64 {
	return moveSpeed * physics.AirTime(jumpForce, gravity)
}

// MaxRise returns the largest height difference procedural placement allows.
func MaxRise(gravity, jumpForce float64) float64 {
	return RiseReachRatio * physics.PeakHeight(jumpForce, gravity)
}

// SeedFor derives a stable seed from a level identifier.
func SeedFor(levelID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(levelID))
	return int64(h.Sum64())
}

// Bob returns the height of a bobbing object at absolute time t. The offset
// from baseY never exceeds amplitude.
func Bob(baseY, t, freq, phaseShift, amplitude float64) float64 {
	return baseY + math.Sin(t*freq+baseY*phaseShift)*amplitude
}

// Generator produces the platform sequence for one level.
type Generator struct {
	level  Level
	params Params
}

// NewGenerator creates a generator for level.
func NewGenerator(level Level, params Params) *Generator {
	return &Generator{level: level, params: params}
}

// Level returns the source level.
func (g *Generator) Level() Level {
	return g.level
}

// Seed returns the seed procedural placement uses.
func (g *Generator) Seed() int64 {
	return SeedFor(g.level.ID) ^ g.params.Seed
}

// Platforms lazily yields the fixed platforms followed by the procedural
// ones. Every iteration restarts from the seed, so the sequence is identical
// each time it is ranged over.
func (g *Generator) Platforms() iter.Seq[Platform] {
	return func(yield func(Platform) bool) {
		var prev Platform
		for i, b := range g.level.Platforms {
			prev = Platform{ID: i, Center: b.Center, Size: b.Size, Fixed: true}
			if !yield(g.place(prev)) {
				return
			}
		}

		rng := rand.New(rand.NewSource(g.Seed()))
		for i := 0; i < g.params.Procedural; i++ {
			prev = g.next(rng, prev, len(g.level.Platforms)+i)
			if !yield(g.place(prev)) {
				return
			}
		}
	}
}

// next places a platform beyond prev along -Z within jump reach.
func (g *Generator) next(rng *rand.Rand, prev Platform, id int) Platform {
	w := 3 + rng.Float64()*3
	d := 3 + rng.Float64()*3
	gapRoll := rng.Float64()
	riseRoll := rng.Float64()
	lateral := (rng.Float64()*2 - 1) * MaxLateral

	maxGap := math.Max(MinGap, GapReachRatio*Reach(g.params.Gravity, g.params.JumpForce, g.params.MoveSpeed))
	gap := MinGap + gapRoll*(maxGap-MinGap)

	maxRise := MaxRise(g.params.Gravity, g.params.JumpForce)
	rise := -MaxDrop + riseRoll*(maxRise+MaxDrop)
	top := math.Max(0, prev.Top()+rise)

	x := vecmath.Clamp(prev.Center.X()+lateral, -WorldHalfWidth, WorldHalfWidth)
	z := prev.Center.Z() - prev.Size.Z()/2 - gap - d/2

	return Platform{
		ID:     id,
		Center: vecmath.V3(x, top-PlatformHeight/2, z),
		Size:   vecmath.V3(w, PlatformHeight, d),
	}
}

// place maps a platform into the output space.
func (g *Generator) place(p Platform) Platform {
	if !g.params.Flat {
		return p
	}
	p.Center = flattenPoint(p.Center)
	p.Size = vecmath.V3(p.Size.Z(), p.Size.Y(), p.Size.X())
	return p
}

// flattenPoint turns progress along -Z into progress along +X on the Z = 0 plane.
func flattenPoint(v vecmath.Vec3) vecmath.Vec3 {
	return vecmath.V3(-v.Z(), v.Y(), 0)
}

func (g *Generator) placeBox(b Box) (vecmath.Vec3, vecmath.Vec3) {
	if !g.params.Flat {
		return b.Center, b.Size
	}
	return flattenPoint(b.Center), vecmath.V3(b.Size.Z(), b.Size.Y(), b.Size.X())
}

func (g *Generator) placePoint(v vecmath.Vec3) vecmath.Vec3 {
	if !g.params.Flat {
		return v
	}
	return flattenPoint(v)
}

// Build materializes the full layout. Entity placement draws from its own
// stream, so it never perturbs the platform sequence.
func (g *Generator) Build() Layout {
	out := Layout{
		LevelID: g.level.ID,
		Name:    g.level.Name,
		Seed:    g.Seed(),
		Flat:    g.params.Flat,
		Spawn:   g.placePoint(g.level.Spawn),
	}
	for p := range g.Platforms() {
		out.Platforms = append(out.Platforms, p)
	}

	for _, c := range g.level.Collectibles {
		out.Collectibles = append(out.Collectibles, Collectible{ID: len(out.Collectibles), Base: g.placePoint(c)})
	}
	for _, h := range g.level.Hazards {
		center, size := g.placeBox(h)
		out.Hazards = append(out.Hazards, Hazard{ID: len(out.Hazards), Center: center, Size: size})
	}

	rng := rand.New(rand.NewSource(g.Seed() + 1))
	for i, p := range out.Platforms {
		if p.Fixed {
			continue
		}
		top := p.Top()
		out.Collectibles = append(out.Collectibles, Collectible{
			ID:   len(out.Collectibles),
			Base: vecmath.V3(p.Center.X(), top+CollectLift, p.Center.Z()),
		})

		roll := rng.Float64()
		patrol := (p.Size.X()-EnemySize.X())/2 - 0.2
		if roll < g.params.EnemyChance && patrol >= 0.5 {
			out.Enemies = append(out.Enemies, Enemy{
				ID:       len(out.Enemies),
				Platform: i,
				Home:     vecmath.V3(p.Center.X(), top, p.Center.Z()),
				Range:    patrol,
			})
		}

		if (i-FixedPlatforms+1)%HazardEvery == 0 {
			out.Hazards = append(out.Hazards, Hazard{
				ID:     len(out.Hazards),
				Center: vecmath.V3(p.Center.X(), top+0.25, p.Center.Z()),
				Size:   vecmath.V3(p.Size.X()*0.4, 0.5, p.Size.Z()*0.4),
			})
		}
	}
	return out
}

// Build is a convenience that resolves a level and generates its layout.
func Build(t config.Tuning, seed int64, flat bool) (Layout, error) {
	lvl, err := Resolve(t.Level.ID, t.Level.File)
	if err != nil {
		return Layout{}, err
	}
	return NewGenerator(lvl, ParamsFrom(t, seed, flat)).Build(), nil
}

// Package effects holds the visual particle pool. Its capacity comes from the
// device profile; it never feeds back into the simulation.
package effects

import (
	"math/rand"

	"github.com/vovakirdan/raanman3d/internal/device"
	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

// Kind tags a particle for the renderer.
type Kind uint8

const (
	KindSpark   Kind = iota // enemy defeat
	KindPickup              // collectible grabbed
	KindDust                // hard landing
	KindAmbient             // background drift, never expires
)

// Particle is a single visual point.
type Particle struct {
	Position vecmath.Vec3
	Velocity vecmath.Vec3
	Life     float64 // seconds left; ignored for ambient particles
	Kind     Kind
}

// Pool is a bounded particle buffer. When full, new particles overwrite the
// oldest transient slots in a circle.
type Pool struct {
	max        int
	background int
	particles  []Particle
	rng        *rand.Rand
	ovrIdx     int

	anchor vecmath.Vec3
	radius float64
}

// NewPool sizes a pool from the device profile.
func NewPool(profile device.Profile, seed int64) *Pool {
	capacity := profile.MaxParticles
	if capacity <= 0 {
		capacity = device.ProfileFor(device.Desktop).MaxParticles
	}
	return &Pool{
		max:        capacity,
		background: profile.BackgroundParticles,
		particles:  make([]Particle, 0, capacity),
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Len returns the number of live particles.
func (p *Pool) Len() int {
	return len(p.particles)
}

// Particles returns the live particles. The slice is reused between frames.
func (p *Pool) Particles() []Particle {
	return p.particles
}

// Clear drops every particle.
func (p *Pool) Clear() {
	p.particles = p.particles[:0]
	p.ovrIdx = 0
}

// Add inserts a particle, overwriting a transient slot when full.
func (p *Pool) Add(pt Particle) {
	if len(p.particles) < p.max {
		p.particles = append(p.particles, pt)
		return
	}
	// Circular overwrite, skipping ambient slots.
	for range p.max {
		if p.ovrIdx >= p.max {
			p.ovrIdx = 0
		}
		i := p.ovrIdx
		p.ovrIdx++
		if p.particles[i].Kind != KindAmbient {
			p.particles[i] = pt
			return
		}
	}
}

// SeedBackground fills in the profile's ambient particles around anchor.
func (p *Pool) SeedBackground(anchor vecmath.Vec3, radius float64) {
	p.anchor = anchor
	p.radius = radius
	for range p.background {
		p.Add(Particle{
			Position: anchor.Add(vecmath.V3(p.spread(radius), p.spread(radius/2), p.spread(radius))),
			Velocity: vecmath.V3(p.spread(0.3), p.spread(0.1), p.spread(0.3)),
			Kind:     KindAmbient,
		})
	}
}

// Recenter moves the ambient wrap box; particles drift in on their next update.
func (p *Pool) Recenter(anchor vecmath.Vec3) {
	p.anchor = anchor
}

// Burst emits count particles of kind at pos.
func (p *Pool) Burst(pos vecmath.Vec3, kind Kind, count int) {
	for range count {
		p.Add(Particle{
			Position: pos,
			Velocity: vecmath.V3(p.spread(4), 2+p.rng.Float64()*4, p.spread(4)),
			Life:     0.4 + p.rng.Float64()*0.6,
			Kind:     kind,
		})
	}
}

// Update moves particles and drops expired transient ones.
func (p *Pool) Update(dt float64, gravity float64) {
	live := p.particles[:0]
	for _, pt := range p.particles {
		pt.Position = pt.Position.Add(pt.Velocity.Mul(dt))
		if pt.Kind == KindAmbient {
			pt.Position = p.wrap(pt.Position)
			live = append(live, pt)
			continue
		}
		pt.Velocity[1] += gravity * dt
		pt.Life -= dt
		if pt.Life > 0 {
			live = append(live, pt)
		}
	}
	p.particles = live
	if p.ovrIdx > len(p.particles) {
		p.ovrIdx = 0
	}
}

// wrap keeps ambient particles inside the box around the anchor.
func (p *Pool) wrap(v vecmath.Vec3) vecmath.Vec3 {
	if p.radius <= 0 {
		return v
	}
	for i := range 3 {
		lo, hi := p.anchor[i]-p.radius, p.anchor[i]+p.radius
		if v[i] < lo {
			v[i] = hi
		} else if v[i] > hi {
			v[i] = lo
		}
	}
	return v
}

func (p *Pool) spread(r float64) float64 {
	return (p.rng.Float64()*2 - 1) * r
}

package game

import (
	"image/color"
	"math"
	"math/rand"
)

// Particle is a short-lived cosmetic effect. Particles are not
// entities: they carry their own pseudo-gravity and never interact
// with platforms or collision.
type Particle struct {
	Position Vec2
	Velocity Vec2
	Age      float64
	Lifetime float64
	Color    color.NRGBA
	Size     float64
	Active   bool
}

// Alpha returns the remaining-lifetime fraction for fading.
func (p *Particle) Alpha() float64 {
	if p.Lifetime <= 0 {
		return 0
	}
	a := 1 - p.Age/p.Lifetime
	if a < 0 {
		return 0
	}
	return a
}

// ParticlePool recycles particle instances. Like the projectile pool
// it grows on exhaustion rather than dropping spawns.
type ParticlePool struct {
	free   []*Particle
	active []*Particle
	rng    *rand.Rand
}

// NewParticlePool preallocates size inactive particles. rng drives the
// spawn recipes and may be seeded for deterministic tests.
func NewParticlePool(size int, rng *rand.Rand) *ParticlePool {
	pool := &ParticlePool{
		free:   make([]*Particle, 0, size),
		active: make([]*Particle, 0, size),
		rng:    rng,
	}
	for i := 0; i < size; i++ {
		pool.free = append(pool.free, &Particle{})
	}
	return pool
}

// Acquire takes a particle from the free list, growing if empty.
func (p *ParticlePool) Acquire(pos, vel Vec2, lifetime float64, clr color.NRGBA, size float64) *Particle {
	var part *Particle
	if n := len(p.free); n > 0 {
		part = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		part = &Particle{}
	}
	*part = Particle{
		Position: pos,
		Velocity: vel,
		Lifetime: lifetime,
		Color:    clr,
		Size:     size,
		Active:   true,
	}
	p.active = append(p.active, part)
	return part
}

// Update ages and moves live particles under the particle
// pseudo-gravity, returning expired ones to the free list.
func (p *ParticlePool) Update(dt float64) {
	n := 0
	for _, part := range p.active {
		part.Age += dt
		if part.Age >= part.Lifetime {
			part.Active = false
		}
		if !part.Active {
			p.free = append(p.free, part)
			continue
		}
		part.Velocity.Y += ParticleGravity * dt
		part.Position.X += part.Velocity.X * dt
		part.Position.Y += part.Velocity.Y * dt
		p.active[n] = part
		n++
	}
	p.active = p.active[:n]
}

// Active returns the live particles, valid until the next Update.
func (p *ParticlePool) Active() []*Particle {
	return p.active
}

// FreeCount returns the number of recycled instances available.
func (p *ParticlePool) FreeCount() int { return len(p.free) }

// TotalCount returns the number of instances the pool has ever made.
func (p *ParticlePool) TotalCount() int { return len(p.free) + len(p.active) }

// coneVelocity picks a random speed and angle within spread radians of
// direction.
func (p *ParticlePool) coneVelocity(direction, spread, minSpeed, maxSpeed float64) Vec2 {
	angle := direction + (p.rng.Float64()-0.5)*spread*2
	speed := minSpeed + p.rng.Float64()*(maxSpeed-minSpeed)
	return Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed}
}

// SpawnMuzzleFlash emits a narrow warm cone in the fire direction.
func (p *ParticlePool) SpawnMuzzleFlash(pos Vec2, direction float64) {
	for i := 0; i < 8; i++ {
		vel := p.coneVelocity(direction, DegToRad(30), 150, 300)
		clr := color.NRGBA{R: 255, G: uint8(180 + p.rng.Intn(60)), B: 60, A: 255}
		p.Acquire(pos, vel, 0.2, clr, 2+p.rng.Float64()*2)
	}
}

// SpawnHitSparks emits a wide spark cone roughly opposite the impact
// direction.
func (p *ParticlePool) SpawnHitSparks(pos Vec2, impactDirection float64) {
	back := impactDirection + math.Pi
	for i := 0; i < 12; i++ {
		vel := p.coneVelocity(back, DegToRad(70), 100, 280)
		clr := color.NRGBA{R: 255, G: uint8(200 + p.rng.Intn(55)), B: uint8(p.rng.Intn(120)), A: 255}
		p.Acquire(pos, vel, 0.3+p.rng.Float64()*0.2, clr, 1.5+p.rng.Float64()*1.5)
	}
}

// SpawnDust emits a small upward puff of brown dust (landings,
// footfalls).
func (p *ParticlePool) SpawnDust(pos Vec2) {
	for i := 0; i < 6; i++ {
		vel := p.coneVelocity(-math.Pi/2, DegToRad(45), 40, 120)
		clr := color.NRGBA{R: 140, G: 110, B: 80, A: 255}
		p.Acquire(pos, vel, 0.5+p.rng.Float64()*0.3, clr, 2+p.rng.Float64()*2)
	}
}

package game

import (
	"math"
)

// Projectile is a pooled entity variant fired by weapons. Destruction
// is deactivation plus return to the pool, never deallocation.
type Projectile struct {
	Entity

	// OwnerID is the entity that fired the projectile; it is exempt
	// from being hit by it.
	OwnerID int

	Damage float64
	Speed  float64

	// Lifetime counts down each tick; at zero the projectile
	// deactivates. MaxLifetime is kept for fade-alpha rendering.
	Lifetime    float64
	MaxLifetime float64
}

// Update moves the projectile along its velocity and burns lifetime.
func (p *Projectile) Update(dt float64) {
	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		p.Lifetime = 0
		p.Active = false
	}
}

// FadeAlpha returns the remaining-lifetime fraction for rendering.
func (p *Projectile) FadeAlpha() float64 {
	if p.MaxLifetime <= 0 {
		return 1
	}
	return p.Lifetime / p.MaxLifetime
}

// reset reinitializes a pooled instance for reuse.
func (p *Projectile) reset(x, y, angle, speed, damage float64, ownerID int, lifetime float64) {
	p.ID = 0
	p.Position = Vec2{x, y}
	p.PrevPosition = Vec2{x, y}
	p.Velocity = Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed}
	p.Size = Vec2{6, 6}
	p.Active = true
	p.tags = map[string]struct{}{TagProjectile: {}}
	p.OwnerID = ownerID
	p.Damage = damage
	p.Speed = speed
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
}

// ProjectilePool recycles projectile instances so firing never
// allocates in the steady state. An exhausted pool grows by one
// instance instead of refusing the spawn.
type ProjectilePool struct {
	free   []*Projectile
	active []*Projectile
}

// NewProjectilePool preallocates size inactive projectiles.
func NewProjectilePool(size int) *ProjectilePool {
	pool := &ProjectilePool{
		free:   make([]*Projectile, 0, size),
		active: make([]*Projectile, 0, size),
	}
	for i := 0; i < size; i++ {
		pool.free = append(pool.free, &Projectile{})
	}
	return pool
}

// Acquire takes a projectile from the free list (growing the pool if
// empty), resets it and marks it active.
func (p *ProjectilePool) Acquire(x, y, angle, speed, damage float64, ownerID int, lifetime float64) *Projectile {
	var proj *Projectile
	if n := len(p.free); n > 0 {
		proj = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		proj = &Projectile{}
	}
	proj.reset(x, y, angle, speed, damage, ownerID, lifetime)
	p.active = append(p.active, proj)
	return proj
}

// Cleanup returns every deactivated projectile to the free list.
func (p *ProjectilePool) Cleanup() {
	n := 0
	for _, proj := range p.active {
		if proj.Active {
			p.active[n] = proj
			n++
			continue
		}
		p.free = append(p.free, proj)
	}
	p.active = p.active[:n]
}

// Active returns the live projectiles. The slice is owned by the pool
// and only valid until the next Cleanup.
func (p *ProjectilePool) Active() []*Projectile {
	return p.active
}

// FreeCount returns the number of recycled instances available.
func (p *ProjectilePool) FreeCount() int { return len(p.free) }

// TotalCount returns the number of instances the pool has ever made.
func (p *ProjectilePool) TotalCount() int { return len(p.free) + len(p.active) }

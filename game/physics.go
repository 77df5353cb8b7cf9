package game

import (
	"math"
)

// Platform is a static rectangle of level geometry. One-way platforms
// only stop entities landing from above.
type Platform struct {
	Rect   Rect
	OneWay bool
}

// PhysicsEngine integrates gravity and resolves platform collisions
// for physics-tagged entities. Platforms are replaced wholesale on
// level load.
type PhysicsEngine struct {
	platforms []Platform
}

// NewPhysicsEngine creates a physics engine with no platforms.
func NewPhysicsEngine() *PhysicsEngine {
	return &PhysicsEngine{}
}

// SetPlatforms replaces the current level's platform list.
func (p *PhysicsEngine) SetPlatforms(platforms []Platform) {
	p.platforms = platforms
}

// Platforms returns the current platform list.
func (p *PhysicsEngine) Platforms() []Platform {
	return p.platforms
}

// Update advances every physics-tagged entity by dt: gravity, friction,
// integration, then platform resolution. Entities without the physics
// tag are untouched.
func (p *PhysicsEngine) Update(entities []*Entity, dt float64) {
	for _, e := range entities {
		if !e.Active || !e.HasTag(TagPhysics) {
			continue
		}
		p.step(e, dt)
	}
}

// step runs one physics tick for a single entity.
func (p *PhysicsEngine) step(e *Entity, dt float64) {
	e.Velocity.Y += Gravity * dt

	// Friction is per-tick multiplicative decay, not scaled by dt.
	if e.HasTag(TagGrounded) {
		e.Velocity.X *= GroundFriction
	} else {
		e.Velocity.X *= AirFriction
	}

	// One-way resolution needs the bottom edge before this tick's move.
	preMoveBottom := e.Position.Y + e.Size.Y

	e.Position.X += e.Velocity.X * dt
	e.Position.Y += e.Velocity.Y * dt

	grounded := false
	bounds := e.Bounds()
	for _, plat := range p.platforms {
		if !bounds.Overlaps(plat.Rect) {
			continue
		}
		if plat.OneWay {
			if p.resolveOneWay(e, plat, preMoveBottom) {
				grounded = true
			}
		} else {
			if p.resolveSolid(e, plat) {
				grounded = true
			}
		}
		bounds = e.Bounds()
	}

	if grounded {
		e.AddTag(TagGrounded)
	} else {
		e.RemoveTag(TagGrounded)
	}
}

// resolveOneWay resolves a one-way platform: only an entity whose
// bottom edge was at or above the platform top before the move and
// which is not moving upward lands on it. Returns true if the entity
// was grounded by the resolution.
func (p *PhysicsEngine) resolveOneWay(e *Entity, plat Platform, preMoveBottom float64) bool {
	if preMoveBottom > plat.Rect.Top() {
		return false
	}
	if e.Velocity.Y < 0 {
		return false
	}
	e.Position.Y = plat.Rect.Top() - e.Size.Y
	e.Velocity.Y = 0
	return true
}

// resolveSolid pushes the entity out of a solid platform along the
// axis of minimum penetration and zeroes the velocity component on
// that axis. Returns true if the entity ended up standing on the
// platform's top.
func (p *PhysicsEngine) resolveSolid(e *Entity, plat Platform) bool {
	bounds := e.Bounds()

	pushLeft := bounds.Right() - plat.Rect.Left()
	pushRight := plat.Rect.Right() - bounds.Left()
	pushUp := bounds.Bottom() - plat.Rect.Top()
	pushDown := plat.Rect.Bottom() - bounds.Top()

	minPush := math.Min(math.Min(pushLeft, pushRight), math.Min(pushUp, pushDown))

	switch minPush {
	case pushUp:
		e.Position.Y = plat.Rect.Top() - e.Size.Y
		e.Velocity.Y = 0
	case pushDown:
		e.Position.Y = plat.Rect.Bottom()
		e.Velocity.Y = 0
	case pushLeft:
		e.Position.X = plat.Rect.Left() - e.Size.X
		e.Velocity.X = 0
	default:
		e.Position.X = plat.Rect.Right()
		e.Velocity.X = 0
	}

	// A sideways push can still leave the entity standing on top.
	bottom := e.Position.Y + e.Size.Y
	return math.Abs(bottom-plat.Rect.Top()) <= GroundedTolerance
}

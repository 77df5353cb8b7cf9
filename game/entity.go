package game

// Well-known entity tags. Tags are the sole mechanism for polymorphic
// behavior selection: physics eligibility, collision routing, debug
// coloring.
const (
	TagPlayer     = "player"
	TagEnemy      = "enemy"
	TagProjectile = "projectile"
	TagPhysics    = "physics"
	TagGrounded   = "grounded"
)

// Entity is the base record shared by every simulated object. Variants
// (Player, Enemy, Projectile) embed it.
type Entity struct {
	// ID is assigned by the registry at spawn time. Zero means
	// detached (not yet registered). IDs are monotonic and never
	// reused.
	ID int

	// Position of the top-left corner in world coordinates.
	Position Vec2

	// PrevPosition is the position at the start of the current tick,
	// kept for render-time interpolation.
	PrevPosition Vec2

	// Velocity in pixels per second.
	Velocity Vec2

	// Size of the bounding box.
	Size Vec2

	// Active reports whether the entity participates in simulation.
	// Inactive entities are swept from the registry at end of tick.
	Active bool

	tags map[string]struct{}
}

// NewEntity creates a detached entity with the given bounds. It has no
// id until spawned into the registry.
func NewEntity(x, y, w, h float64) *Entity {
	return &Entity{
		Position:     Vec2{x, y},
		PrevPosition: Vec2{x, y},
		Size:         Vec2{w, h},
		Active:       true,
		tags:         make(map[string]struct{}),
	}
}

// Base returns the entity itself; variants embedding Entity inherit
// this to satisfy SimObject.
func (e *Entity) Base() *Entity { return e }

// Update is a no-op on the base entity. Variants override it with
// their per-tick logic.
func (e *Entity) Update(dt float64) {}

// AddTag adds a tag to the entity's tag set.
func (e *Entity) AddTag(tag string) {
	if e.tags == nil {
		e.tags = make(map[string]struct{})
	}
	e.tags[tag] = struct{}{}
}

// RemoveTag removes a tag. Removing an absent tag is a no-op.
func (e *Entity) RemoveTag(tag string) {
	delete(e.tags, tag)
}

// HasTag reports whether the entity carries the given tag.
func (e *Entity) HasTag(tag string) bool {
	_, ok := e.tags[tag]
	return ok
}

// Tags returns the entity's tags. Order is unspecified.
func (e *Entity) Tags() []string {
	out := make([]string, 0, len(e.tags))
	for t := range e.tags {
		out = append(out, t)
	}
	return out
}

// Bounds returns the entity's axis-aligned bounding box.
func (e *Entity) Bounds() Rect {
	return Rect{X: e.Position.X, Y: e.Position.Y, Width: e.Size.X, Height: e.Size.Y}
}

// Center returns the center of the entity's bounding box.
func (e *Entity) Center() Vec2 {
	return Vec2{e.Position.X + e.Size.X/2, e.Position.Y + e.Size.Y/2}
}

// DistanceTo returns the center-to-center distance to another entity.
func (e *Entity) DistanceTo(other *Entity) float64 {
	return e.Center().DistanceTo(other.Center())
}

// SimObject is the closed capability interface the registry dispatches
// through. Player, Enemy and Projectile are the variants.
type SimObject interface {
	// Update runs one tick of the variant's own logic (movement, aim,
	// AI stepping). Damage and effects are routed by the engine, not
	// applied here.
	Update(dt float64)

	// Base exposes the shared entity record.
	Base() *Entity
}

package game

// CollisionCallback is invoked once per colliding pair per matching
// tag combination. a carries the first registered tag, b the second.
type CollisionCallback func(a, b *Entity)

// tagPair is an unordered registration key.
type tagPair struct {
	first, second string
}

// CollisionSystem performs the broad-phase pairwise AABB scan and
// routes overlapping pairs to callbacks registered by tag pair.
type CollisionSystem struct {
	handlers map[tagPair][]CollisionCallback
}

// NewCollisionSystem creates a collision system with no handlers.
func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{
		handlers: make(map[tagPair][]CollisionCallback),
	}
}

// OnCollision registers a callback for collisions between an entity
// tagged tagA and an entity tagged tagB. The callback receives the
// entities in registration order regardless of scan order.
func (c *CollisionSystem) OnCollision(tagA, tagB string, cb CollisionCallback) {
	key := tagPair{tagA, tagB}
	c.handlers[key] = append(c.handlers[key], cb)
}

// DetectCollisions runs an O(n²) scan over the active entities and,
// for every overlapping pair, invokes the callbacks registered for
// every combination of one tag from each side. A pair sharing several
// registered tag combinations fires several callbacks; gameplay
// handlers stay idempotent by checking Active before acting.
func (c *CollisionSystem) DetectCollisions(entities []*Entity) {
	for i := 0; i < len(entities); i++ {
		a := entities[i]
		if !a.Active {
			continue
		}
		for j := i + 1; j < len(entities); j++ {
			b := entities[j]
			if !b.Active {
				continue
			}
			if !a.Bounds().Overlaps(b.Bounds()) {
				continue
			}
			c.dispatch(a, b)
		}
	}
}

// dispatch fires every registered callback matching a tag combination
// of the overlapping pair, in both orientations.
func (c *CollisionSystem) dispatch(a, b *Entity) {
	for tagA := range a.tags {
		for tagB := range b.tags {
			for _, cb := range c.handlers[tagPair{tagA, tagB}] {
				cb(a, b)
			}
			// Asymmetric registrations also match with the roles
			// swapped; skip the double fire for same-tag pairs.
			if tagA != tagB {
				for _, cb := range c.handlers[tagPair{tagB, tagA}] {
					cb(b, a)
				}
			}
		}
	}
}

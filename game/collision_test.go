package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taggedEntity(x, y float64, tags ...string) *Entity {
	e := NewEntity(x, y, 10, 10)
	for _, tag := range tags {
		e.AddTag(tag)
	}
	return e
}

func TestDispatchPreservesRegistrationOrder(t *testing.T) {
	cs := NewCollisionSystem()

	var gotA, gotB *Entity
	calls := 0
	cs.OnCollision(TagProjectile, TagEnemy, func(a, b *Entity) {
		gotA, gotB = a, b
		calls++
	})

	proj := taggedEntity(0, 0, TagProjectile)
	enemy := taggedEntity(5, 5, TagEnemy)

	// Scan order enemy-first must still hand the projectile to the
	// first callback slot.
	cs.DetectCollisions([]*Entity{enemy, proj})

	require.Equal(t, 1, calls)
	assert.Same(t, proj, gotA)
	assert.Same(t, enemy, gotB)
}

func TestDispatchSkipsNonOverlapping(t *testing.T) {
	cs := NewCollisionSystem()
	calls := 0
	cs.OnCollision(TagProjectile, TagEnemy, func(a, b *Entity) { calls++ })

	proj := taggedEntity(0, 0, TagProjectile)
	far := taggedEntity(100, 100, TagEnemy)
	touching := taggedEntity(10, 0, TagEnemy) // shares an edge only

	cs.DetectCollisions([]*Entity{proj, far, touching})
	assert.Zero(t, calls)
}

func TestDispatchSkipsInactive(t *testing.T) {
	cs := NewCollisionSystem()
	calls := 0
	cs.OnCollision(TagProjectile, TagEnemy, func(a, b *Entity) { calls++ })

	proj := taggedEntity(0, 0, TagProjectile)
	enemy := taggedEntity(5, 5, TagEnemy)
	enemy.Active = false

	cs.DetectCollisions([]*Entity{proj, enemy})
	assert.Zero(t, calls)
}

func TestMultipleTagCombinationsFireMultipleCallbacks(t *testing.T) {
	cs := NewCollisionSystem()
	calls := 0
	cs.OnCollision(TagProjectile, TagEnemy, func(a, b *Entity) { calls++ })
	cs.OnCollision(TagProjectile, "boss", func(a, b *Entity) { calls++ })

	proj := taggedEntity(0, 0, TagProjectile)
	boss := taggedEntity(5, 5, TagEnemy, "boss")

	// Both registered pairs match this overlap: two invocations.
	cs.DetectCollisions([]*Entity{proj, boss})
	assert.Equal(t, 2, calls)
}

func TestSameTagPairFiresOnce(t *testing.T) {
	cs := NewCollisionSystem()
	calls := 0
	cs.OnCollision(TagEnemy, TagEnemy, func(a, b *Entity) { calls++ })

	a := taggedEntity(0, 0, TagEnemy)
	b := taggedEntity(5, 5, TagEnemy)

	cs.DetectCollisions([]*Entity{a, b})
	assert.Equal(t, 1, calls)
}

func TestDamageAppliedOncePerPass(t *testing.T) {
	// An enemy carrying a redundant tag matches the projectile across
	// two registered pairs; the deactivation guard in the engine's
	// handler must keep the damage single.
	eng := newTestEngine(t)

	enemy := NewEnemy(100, 100, nil)
	enemy.AddTag("boss")
	eng.Spawn(enemy)
	eng.collisions.OnCollision(TagProjectile, "boss", eng.handleProjectileHit)

	proj := eng.projectiles.Acquire(105, 105, 0, 0, 10, 999, 1)
	eng.Spawn(proj)

	eng.collisions.DetectCollisions(eng.activeEntities())

	assert.Equal(t, enemy.MaxHealth-10, enemy.Health)
	assert.False(t, proj.Active)
}

func TestProjectileNeverHitsItsOwner(t *testing.T) {
	eng := newTestEngine(t)

	enemy := NewEnemy(100, 100, nil)
	id := eng.Spawn(enemy)

	proj := eng.projectiles.Acquire(105, 105, 0, 0, 10, id, 1)
	eng.Spawn(proj)

	eng.collisions.DetectCollisions(eng.activeEntities())

	assert.Equal(t, enemy.MaxHealth, enemy.Health)
	assert.True(t, proj.Active)
}

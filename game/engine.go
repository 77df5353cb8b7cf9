package game

import (
	"math"
	"math/rand"
)

// ProjectileLifetime is how long a fired projectile lives without
// hitting anything.
const ProjectileLifetime = 2.0

// Engine owns the entity registry and runs the per-tick system order:
// pause handling, entity updates, physics, weapons, particles,
// projectile cleanup, collision, sweep. Damage, sounds and particle
// spawns are routed here through collision handlers, never from inside
// entity updates.
type Engine struct {
	objects []SimObject
	byID    map[int]SimObject
	nextID  int

	physics     *PhysicsEngine
	collisions  *CollisionSystem
	weapons     *WeaponSystem
	projectiles *ProjectilePool
	particles   *ParticlePool

	input  InputProvider
	audio  AudioSink
	camera *Camera

	player *Player
	score  int
	paused bool
}

// NewEngine wires the sub-systems together and installs the canonical
// collision handlers.
func NewEngine(input InputProvider, audio AudioSink, camera *Camera, rng *rand.Rand) *Engine {
	e := &Engine{
		byID:        make(map[int]SimObject),
		physics:     NewPhysicsEngine(),
		collisions:  NewCollisionSystem(),
		weapons:     NewWeaponSystem(rng),
		projectiles: NewProjectilePool(ProjectilePoolSize),
		particles:   NewParticlePool(ParticlePoolSize, rng),
		input:       input,
		audio:       audio,
		camera:      camera,
	}

	e.collisions.OnCollision(TagProjectile, TagPlayer, e.handleProjectileHit)
	e.collisions.OnCollision(TagProjectile, TagEnemy, e.handleProjectileHit)

	return e
}

// Spawn assigns a fresh monotonic id to the object and inserts it into
// the registry. Players and enemies are registered with the weapon
// system as they spawn.
func (e *Engine) Spawn(obj SimObject) int {
	e.nextID++
	id := e.nextID
	obj.Base().ID = id
	e.objects = append(e.objects, obj)
	e.byID[id] = obj

	switch v := obj.(type) {
	case *Player:
		e.player = v
		e.weapons.Register(id, v.CurrentWeapon())
	case *Enemy:
		e.weapons.Register(id, v.Weapon)
	}
	return id
}

// Despawn removes the object with the given id immediately. The object
// is also deactivated, so a pooled instance still flows back to its
// pool on the next Cleanup.
func (e *Engine) Despawn(id int) {
	obj, ok := e.byID[id]
	if !ok {
		return
	}
	obj.Base().Active = false
	delete(e.byID, id)
	e.weapons.Unregister(id)
	for i, o := range e.objects {
		if o == obj {
			e.objects = append(e.objects[:i], e.objects[i+1:]...)
			break
		}
	}
	if p, ok := obj.(*Player); ok && p == e.player {
		e.player = nil
	}
}

// GetEntity returns the registered object with the given id.
func (e *Engine) GetEntity(id int) (SimObject, bool) {
	obj, ok := e.byID[id]
	return obj, ok
}

// QueryEntities returns the active entities matching pred, in registry
// insertion order.
func (e *Engine) QueryEntities(pred func(*Entity) bool) []*Entity {
	var out []*Entity
	for _, obj := range e.objects {
		base := obj.Base()
		if base.Active && pred(base) {
			out = append(out, base)
		}
	}
	return out
}

// Objects returns every registered object in insertion order.
func (e *Engine) Objects() []SimObject { return e.objects }

// Player returns the player, or nil after death.
func (e *Engine) Player() *Player { return e.player }

// Score returns the session score.
func (e *Engine) Score() int { return e.score }

// Paused reports whether the simulation is paused.
func (e *Engine) Paused() bool { return e.paused }

// Weapons exposes the weapon system (HUD, level setup).
func (e *Engine) Weapons() *WeaponSystem { return e.weapons }

// Physics exposes the physics engine (level setup, rendering).
func (e *Engine) Physics() *PhysicsEngine { return e.physics }

// Projectiles exposes the projectile pool for rendering.
func (e *Engine) Projectiles() *ProjectilePool { return e.projectiles }

// Particles exposes the particle pool for rendering.
func (e *Engine) Particles() *ParticlePool { return e.particles }

// EnemiesRemaining counts active enemies.
func (e *Engine) EnemiesRemaining() int {
	n := 0
	for _, obj := range e.objects {
		if en, ok := obj.(*Enemy); ok && en.Active {
			n++
		}
	}
	return n
}

// activeEntities collects the base records of active objects in
// insertion order. Valid only within the current tick.
func (e *Engine) activeEntities() []*Entity {
	out := make([]*Entity, 0, len(e.objects))
	for _, obj := range e.objects {
		if base := obj.Base(); base.Active {
			out = append(out, base)
		}
	}
	return out
}

// Tick advances the simulation by one fixed step. The system order is
// a strict contract: later systems read state mutated by earlier ones.
func (e *Engine) Tick(dt float64) {
	// 1. Pause handling. A paused tick skips everything below, but the
	// input edge snapshot still rolls so the unpause edge is seen.
	if e.input.IsKeyPressed(KeyPause) {
		e.paused = !e.paused
	}
	if e.paused {
		e.input.Update()
		return
	}

	// Record positions for render interpolation before anything moves.
	for _, obj := range e.objects {
		base := obj.Base()
		if base.Active {
			base.PrevPosition = base.Position
		}
	}

	e.updatePlayerControls()

	// 2. Per-entity updates, over a snapshot: objects spawned during
	// the loop (projectiles) first update next tick.
	snapshot := append([]SimObject(nil), e.objects...)
	for _, obj := range snapshot {
		base := obj.Base()
		if !base.Active {
			continue
		}
		obj.Update(dt)

		switch v := obj.(type) {
		case *Player:
			if v.consumeJumped() {
				e.audio.PlayEffect("jump")
				e.particles.SpawnDust(Vec2{v.Center().X, v.Bounds().Bottom()})
			}
			if v.Active && e.input.IsMouseButtonDown(MouseButtonLeft) {
				e.fireWeapon(base, v.AimAngle)
			}
		case *Enemy:
			if v.consumeAttack() {
				e.fireWeapon(base, v.AimAngle)
			}
		}
	}

	// 3. Physics over physics-tagged entities.
	e.physics.Update(e.activeEntities(), dt)
	e.cullProjectilesAgainstWalls()

	// 4. Weapon cooldowns and reload timers.
	e.weapons.Update(dt)

	// 5. Particle aging and motion.
	e.particles.Update(dt)

	// 6. Return expired projectiles to the pool.
	e.projectiles.Cleanup()

	// 7. Collision detection and dispatch.
	e.collisions.DetectCollisions(e.activeEntities())

	// 8. Sweep entities deactivated during this tick.
	e.sweep()

	e.input.Update()
}

// updatePlayerControls resolves aim, weapon switching and manual
// reload before the entity updates run.
func (e *Engine) updatePlayerControls() {
	p := e.player
	if p == nil || !p.Active {
		return
	}

	mx, my := e.input.MousePosition()
	wx, wy := e.camera.ScreenToWorld(mx, my)
	center := p.Center()
	p.AimAngle = math.Atan2(wy-center.Y, wx-center.X)

	for i, key := range []Key{KeyWeapon1, KeyWeapon2, KeyWeapon3} {
		if i < len(p.Inventory) && e.input.IsKeyPressed(key) && i != p.WeaponIndex {
			p.WeaponIndex = i
			// A fresh state at full ammo; cancels any reload.
			e.weapons.Register(p.ID, p.Inventory[i])
		}
	}

	if e.input.IsKeyPressed(KeyReload) {
		e.weapons.StartReload(p.ID)
	}
}

// fireWeapon fires the owner's registered weapon and materializes the
// resulting shots as pooled projectiles.
func (e *Engine) fireWeapon(owner *Entity, aim float64) {
	shots := e.weapons.Fire(owner.ID, aim)
	if len(shots) == 0 {
		return
	}

	center := owner.Center()
	muzzle := Vec2{
		X: center.X + math.Cos(aim)*(owner.Size.X/2+8),
		Y: center.Y + math.Sin(aim)*(owner.Size.Y/2+8),
	}

	for _, shot := range shots {
		proj := e.projectiles.Acquire(muzzle.X, muzzle.Y, shot.Angle, shot.Speed, shot.Damage, owner.ID, ProjectileLifetime)
		e.Spawn(proj)
	}

	e.particles.SpawnMuzzleFlash(muzzle, aim)
	e.audio.PlayEffect("shoot")
}

// handleProjectileHit is the canonical collision handler for
// projectile×player and projectile×enemy. Repeat invocations within a
// detection pass are no-ops once the projectile deactivates.
func (e *Engine) handleProjectileHit(projEnt, targetEnt *Entity) {
	if !projEnt.Active || !targetEnt.Active {
		return
	}
	obj, ok := e.byID[projEnt.ID]
	if !ok {
		return
	}
	proj, ok := obj.(*Projectile)
	if !ok {
		return
	}
	if proj.OwnerID == targetEnt.ID {
		return
	}

	switch target := e.byID[targetEnt.ID].(type) {
	case *Player:
		target.TakeDamage(proj.Damage)
	case *Enemy:
		target.TakeDamage(proj.Damage)
	default:
		return
	}

	proj.Active = false
	impact := math.Atan2(proj.Velocity.Y, proj.Velocity.X)
	e.particles.SpawnHitSparks(proj.Center(), impact)
	e.audio.PlayEffect("hit")
}

// cullProjectilesAgainstWalls deactivates projectiles that flew into
// solid level geometry.
func (e *Engine) cullProjectilesAgainstWalls() {
	for _, proj := range e.projectiles.Active() {
		if !proj.Active {
			continue
		}
		bounds := proj.Bounds()
		for _, plat := range e.physics.Platforms() {
			if plat.OneWay {
				continue
			}
			if bounds.Overlaps(plat.Rect) {
				proj.Active = false
				impact := math.Atan2(proj.Velocity.Y, proj.Velocity.X)
				e.particles.SpawnHitSparks(proj.Center(), impact)
				break
			}
		}
	}
}

// sweep removes every entity whose active flag dropped during this
// tick, releasing any per-owner weapon state with it.
func (e *Engine) sweep() {
	n := 0
	for _, obj := range e.objects {
		base := obj.Base()
		if base.Active {
			e.objects[n] = obj
			n++
			continue
		}
		delete(e.byID, base.ID)
		e.weapons.Unregister(base.ID)

		switch v := obj.(type) {
		case *Enemy:
			e.score += v.ScoreValue
			e.audio.PlayEffect("death")
			e.particles.SpawnDust(v.Center())
		case *Player:
			e.audio.PlayEffect("death")
			e.player = nil
		}
	}
	e.objects = e.objects[:n]
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	camera := NewCamera(960, 540)
	return NewEngine(NewScriptedInput(), NopAudio{}, camera, testRNG())
}

// newTestEngineWithInput returns an engine plus its scripted input for
// driving ticks.
func newTestEngineWithInput(t *testing.T) (*Engine, *ScriptedInput) {
	t.Helper()
	input := NewScriptedInput()
	camera := NewCamera(960, 540)
	return NewEngine(input, NopAudio{}, camera, testRNG()), input
}

func TestSpawnAssignsMonotonicIDs(t *testing.T) {
	eng := newTestEngine(t)

	a := eng.Spawn(NewEnemy(0, 0, nil))
	b := eng.Spawn(NewEnemy(50, 0, nil))
	c := eng.Spawn(NewEnemy(100, 0, nil))

	assert.Equal(t, []int{1, 2, 3}, []int{a, b, c})

	// IDs are never reused, even after a despawn.
	eng.Despawn(b)
	d := eng.Spawn(NewEnemy(150, 0, nil))
	assert.Equal(t, 4, d)
}

func TestDespawnRemovesImmediately(t *testing.T) {
	eng := newTestEngine(t)
	id := eng.Spawn(NewEnemy(0, 0, nil))
	require.NotNil(t, eng.Weapons().State(id))

	eng.Despawn(id)

	_, ok := eng.GetEntity(id)
	assert.False(t, ok)
	assert.Nil(t, eng.Weapons().State(id), "weapon state released")

	// Despawning an unknown id is a no-op.
	eng.Despawn(999)
}

func TestQueryEntitiesInsertionOrder(t *testing.T) {
	eng := newTestEngine(t)
	eng.Spawn(NewEnemy(0, 0, nil))
	eng.Spawn(NewPlayer(10, 0, NewScriptedInput()))
	eng.Spawn(NewEnemy(20, 0, nil))

	enemies := eng.QueryEntities(func(e *Entity) bool { return e.HasTag(TagEnemy) })
	require.Len(t, enemies, 2)
	assert.Equal(t, 1, enemies[0].ID)
	assert.Equal(t, 3, enemies[1].ID)

	all := eng.QueryEntities(func(e *Entity) bool { return true })
	assert.Len(t, all, 3)
}

func TestSweepRemovesInactiveAndScores(t *testing.T) {
	eng := newTestEngine(t)
	enemy := NewEnemy(0, 0, nil)
	id := eng.Spawn(enemy)

	enemy.TakeDamage(enemy.Health)
	require.False(t, enemy.Active)

	eng.Tick(TimeStep)

	_, ok := eng.GetEntity(id)
	assert.False(t, ok)
	assert.Nil(t, eng.Weapons().State(id))
	assert.Equal(t, enemy.ScoreValue, eng.Score())
	assert.Zero(t, eng.EnemiesRemaining())
}

func TestPauseSkipsTickButTracksEdges(t *testing.T) {
	eng, input := newTestEngineWithInput(t)
	eng.Physics().SetPlatforms(nil)

	e := NewEnemy(0, 0, nil)
	eng.Spawn(e)

	input.Keys[KeyPause] = true
	eng.Tick(TimeStep)
	require.True(t, eng.Paused())
	assert.Equal(t, Vec2{}, e.Velocity, "no physics while paused")

	// Holding the key does not toggle again.
	eng.Tick(TimeStep)
	assert.True(t, eng.Paused())

	// Release, then press again: unpause edge is detected.
	input.Keys[KeyPause] = false
	eng.Tick(TimeStep)
	input.Keys[KeyPause] = true
	eng.Tick(TimeStep)
	assert.False(t, eng.Paused())

	// Simulation resumes.
	input.Keys[KeyPause] = false
	eng.Tick(TimeStep)
	assert.NotZero(t, e.Velocity.Y)
}

func TestPlayerFireSpawnsProjectilesAndDamagesEnemy(t *testing.T) {
	eng, input := newTestEngineWithInput(t)
	eng.Physics().SetPlatforms([]Platform{
		{Rect: NewRect(-500, 644, 3000, 60)},
	})

	player := NewPlayer(100, 600, input)
	eng.Spawn(player)

	enemy := NewEnemy(300, 600, nil)
	enemy.SetTarget(player)
	enemy.SightRadius = 1 // keep it passive
	eng.Spawn(enemy)

	// Aim flat right at the enemy and hold the trigger.
	input.MouseX, input.MouseY = 600, 622
	input.Buttons[MouseButtonLeft] = true

	eng.Tick(TimeStep)
	require.NotEmpty(t, eng.Projectiles().Active(), "pistol round in flight")

	startHealth := enemy.Health
	for i := 0; i < 60 && enemy.Health == startHealth; i++ {
		eng.Tick(TimeStep)
	}
	assert.Less(t, enemy.Health, startHealth)

	// The spent round went back to the pool.
	for i := 0; i < 3; i++ {
		eng.Tick(TimeStep)
	}
	for _, p := range eng.Projectiles().Active() {
		assert.True(t, p.Active)
	}
}

func TestWeaponSwitchCancelsReloadThroughEngine(t *testing.T) {
	eng, input := newTestEngineWithInput(t)
	player := NewPlayer(0, 0, input)
	id := eng.Spawn(player)

	require.False(t, eng.Weapons().StartReload(id))
	eng.Weapons().Fire(id, 0)
	eng.Weapons().Update(1.0 / Pistol.FireRate)
	require.True(t, eng.Weapons().StartReload(id))

	input.Keys[KeyWeapon2] = true
	eng.Tick(TimeStep)

	st := eng.Weapons().State(id)
	require.NotNil(t, st)
	assert.Equal(t, Shotgun.Name, st.Def.Name)
	assert.False(t, st.IsReloading)
	assert.Equal(t, Shotgun.MagazineSize, st.CurrentAmmo)
	assert.Equal(t, 1, player.WeaponIndex)
}

func TestEnemyAttackFiresItsWeapon(t *testing.T) {
	eng, _ := newTestEngineWithInput(t)
	eng.Physics().SetPlatforms([]Platform{
		{Rect: NewRect(-500, 644, 3000, 60)},
	})

	player := NewPlayer(100, 600, NewScriptedInput())
	eng.Spawn(player)

	enemy := NewEnemy(250, 600, nil)
	enemy.SetTarget(player)
	eng.Spawn(enemy)

	// Within attack range: the enemy fires once its cooldown allows.
	fired := false
	for i := 0; i < 10 && !fired; i++ {
		eng.Tick(TimeStep)
		fired = len(eng.Projectiles().Active()) > 0
	}
	assert.True(t, fired)
}

func TestProjectilesStopAtSolidWalls(t *testing.T) {
	eng := newTestEngine(t)
	eng.Physics().SetPlatforms([]Platform{
		{Rect: NewRect(200, 0, 40, 400)},
	})

	proj := eng.projectiles.Acquire(150, 100, 0, 1200, 10, 99, 5)
	eng.Spawn(proj)

	for i := 0; i < 10 && proj.Active; i++ {
		eng.Tick(TimeStep)
	}
	assert.False(t, proj.Active)
}

func TestDespawnedProjectileReturnsToPool(t *testing.T) {
	eng := newTestEngine(t)
	proj := eng.projectiles.Acquire(0, 0, 0, 0, 5, 99, 10)
	id := eng.Spawn(proj)
	free := eng.projectiles.FreeCount()

	eng.Despawn(id)
	assert.False(t, proj.Active)

	// The next tick's cleanup reclaims it; it is not rendered or
	// scanned as live anymore.
	eng.Tick(TimeStep)
	assert.Empty(t, eng.Projectiles().Active())
	assert.Equal(t, free+1, eng.projectiles.FreeCount())
}

func TestMuzzleOffsetTracksOwnerExtents(t *testing.T) {
	eng, input := newTestEngineWithInput(t)
	player := NewPlayer(100, 600, input)
	eng.Spawn(player)
	center := player.Center()

	// Aim straight down: the muzzle sits half the owner's height plus
	// the barrel stand-off below center, not half its width.
	input.MouseX, input.MouseY = center.X, center.Y+500
	input.Buttons[MouseButtonLeft] = true
	eng.Tick(TimeStep)

	active := eng.Projectiles().Active()
	require.Len(t, active, 1)
	assert.InDelta(t, center.Y+player.Size.Y/2+8, active[0].Position.Y, 1e-6)
	assert.InDelta(t, center.X, active[0].Position.X, 1e-6)
}

func TestPlayerDeathClearsPlayer(t *testing.T) {
	eng := newTestEngine(t)
	player := NewPlayer(0, 0, NewScriptedInput())
	eng.Spawn(player)
	require.NotNil(t, eng.Player())

	player.TakeDamage(player.MaxHealth)
	eng.Tick(TimeStep)

	assert.Nil(t, eng.Player())
}

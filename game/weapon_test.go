package game

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRNG returns a seeded RNG for deterministic tests.
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestFireRespectsRateLimit(t *testing.T) {
	ws := NewWeaponSystem(testRNG())
	ws.Register(1, Pistol)

	first := ws.Fire(1, 0)
	second := ws.Fire(1, 0) // within the same instant
	require.Len(t, first, 1)
	assert.Empty(t, second)

	// Not enough simulated time: still on cooldown.
	ws.Update(1.0/Pistol.FireRate - 0.01)
	assert.Empty(t, ws.Fire(1, 0))

	ws.Update(0.02)
	assert.Len(t, ws.Fire(1, 0), 1)
}

func TestMagazineDrainAutoReloads(t *testing.T) {
	ws := NewWeaponSystem(testRNG())
	ws.Register(1, Pistol)

	// Fire 12 times at the weapon's own cooldown spacing.
	for i := 0; i < Pistol.MagazineSize; i++ {
		shots := ws.Fire(1, 0)
		require.Len(t, shots, 1, "shot %d", i)
		if i < Pistol.MagazineSize-1 {
			ws.Update(1.0 / Pistol.FireRate)
		}
	}

	st := ws.State(1)
	require.NotNil(t, st)
	assert.Zero(t, st.CurrentAmmo)
	assert.True(t, st.IsReloading)
	assert.Equal(t, Pistol.ReloadTime, st.ReloadTimer)

	// Ammo stays at zero until the reload finishes, then snaps full.
	ws.Update(Pistol.ReloadTime - 0.01)
	assert.Zero(t, st.CurrentAmmo)
	assert.True(t, st.IsReloading)

	ws.Update(0.02)
	assert.Equal(t, Pistol.MagazineSize, st.CurrentAmmo)
	assert.False(t, st.IsReloading)
}

func TestFireWhileReloadingIsNoop(t *testing.T) {
	ws := NewWeaponSystem(testRNG())
	ws.Register(1, Pistol)

	require.False(t, ws.StartReload(1)) // full magazine: refused
	require.Len(t, ws.Fire(1, 0), 1)
	ws.Update(1.0 / Pistol.FireRate)
	require.True(t, ws.StartReload(1))

	assert.Empty(t, ws.Fire(1, 0))
}

func TestManualReloadRefusedWhenFullOrReloading(t *testing.T) {
	ws := NewWeaponSystem(testRNG())
	ws.Register(1, Rifle)

	assert.False(t, ws.StartReload(1), "full magazine")

	ws.Fire(1, 0)
	ws.Update(1.0 / Rifle.FireRate)
	assert.True(t, ws.StartReload(1))
	assert.False(t, ws.StartReload(1), "already reloading")
}

func TestSwitchWeaponCancelsReload(t *testing.T) {
	ws := NewWeaponSystem(testRNG())
	ws.Register(1, Pistol)

	ws.Fire(1, 0)
	ws.Update(1.0 / Pistol.FireRate)
	require.True(t, ws.StartReload(1))

	// Switching replaces the state wholesale: full ammo, no reload.
	ws.Register(1, Shotgun)
	st := ws.State(1)
	assert.False(t, st.IsReloading)
	assert.Equal(t, Shotgun.MagazineSize, st.CurrentAmmo)
	assert.Zero(t, st.FireCooldown)
}

func TestFireWithoutRegisteredWeapon(t *testing.T) {
	ws := NewWeaponSystem(testRNG())
	assert.Empty(t, ws.Fire(99, 0))
	assert.False(t, ws.StartReload(99))
	assert.Nil(t, ws.State(99))
}

func TestUnregisterDropsState(t *testing.T) {
	ws := NewWeaponSystem(testRNG())
	ws.Register(1, Pistol)
	require.NotNil(t, ws.State(1))
	ws.Unregister(1)
	assert.Nil(t, ws.State(1))
}

func TestShotgunPelletSymmetry(t *testing.T) {
	const aim = 0.7

	ws := NewWeaponSystem(testRNG())
	ws.Register(1, Shotgun)
	shots := ws.Fire(1, aim)
	require.Len(t, shots, Shotgun.ProjectileCount)

	angles := make([]float64, len(shots))
	for i, s := range shots {
		angles[i] = s.Angle - aim
	}
	sort.Float64s(angles)

	half := DegToRad(Shotgun.Spread) / 2
	assert.InDelta(t, -half, angles[0], 1e-9)
	assert.InDelta(t, half, angles[len(angles)-1], 1e-9)

	spacing := DegToRad(Shotgun.Spread) / float64(Shotgun.ProjectileCount-1)
	for i := 1; i < len(angles); i++ {
		assert.InDelta(t, spacing, angles[i]-angles[i-1], 1e-9)
	}

	// Deterministic: a second system with a different seed produces
	// identical pellet angles.
	ws2 := NewWeaponSystem(rand.New(rand.NewSource(999)))
	ws2.Register(1, Shotgun)
	shots2 := ws2.Fire(1, aim)
	for i := range shots {
		assert.Equal(t, shots[i].Angle, shots2[i].Angle)
	}
}

func TestSingleShotSpreadStaysInArc(t *testing.T) {
	ws := NewWeaponSystem(testRNG())
	ws.Register(1, Pistol)

	half := DegToRad(Pistol.Spread) / 2
	for i := 0; i < 50; i++ {
		shots := ws.Fire(1, 1.25)
		require.Len(t, shots, 1)
		assert.LessOrEqual(t, math.Abs(shots[0].Angle-1.25), half)

		st := ws.State(1)
		st.FireCooldown = 0
		st.CurrentAmmo = Pistol.MagazineSize
		st.IsReloading = false
	}
}

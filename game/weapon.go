package game

import (
	"math"
	"math/rand"
)

// WeaponDef is an immutable weapon description. The three stock
// weapons are Pistol, Shotgun and Rifle.
type WeaponDef struct {
	Name            string
	Damage          float64
	FireRate        float64 // shots per second
	MagazineSize    int
	ReloadTime      float64 // seconds
	ProjectileSpeed float64
	Spread          float64 // degrees, full arc
	ProjectileCount int     // pellets per shot
}

// Stock weapon definitions.
var (
	Pistol = WeaponDef{
		Name:            "Pistol",
		Damage:          25,
		FireRate:        3,
		MagazineSize:    12,
		ReloadTime:      1.5,
		ProjectileSpeed: 900,
		Spread:          2,
		ProjectileCount: 1,
	}
	Shotgun = WeaponDef{
		Name:            "Shotgun",
		Damage:          15,
		FireRate:        1,
		MagazineSize:    6,
		ReloadTime:      2.5,
		ProjectileSpeed: 750,
		Spread:          15,
		ProjectileCount: 6,
	}
	Rifle = WeaponDef{
		Name:            "Rifle",
		Damage:          20,
		FireRate:        8,
		MagazineSize:    30,
		ReloadTime:      2.0,
		ProjectileSpeed: 1100,
		Spread:          3,
		ProjectileCount: 1,
	}
)

// WeaponState is the mutable per-owner firing state. States: Ready
// (ammo > 0, no cooldown, not reloading), Cooldown (fireCooldown > 0),
// Reloading (isReloading).
type WeaponState struct {
	Def          WeaponDef
	CurrentAmmo  int
	IsReloading  bool
	ReloadTimer  float64
	FireCooldown float64
}

// Shot describes one projectile produced by a fire call.
type Shot struct {
	Angle  float64 // radians
	Speed  float64
	Damage float64
}

// WeaponSystem owns the per-owner weapon states, keyed by entity id.
// The rng drives single-shot spread; multi-pellet spread is
// deterministic.
type WeaponSystem struct {
	states map[int]*WeaponState
	rng    *rand.Rand
}

// NewWeaponSystem creates a weapon system. rng may not be nil.
func NewWeaponSystem(rng *rand.Rand) *WeaponSystem {
	return &WeaponSystem{
		states: make(map[int]*WeaponState),
		rng:    rng,
	}
}

// Register gives an owner a fresh weapon state at full ammo. Also used
// for weapon switching: any in-progress reload is cancelled, which is
// deliberate.
func (w *WeaponSystem) Register(ownerID int, def WeaponDef) {
	w.states[ownerID] = &WeaponState{
		Def:         def,
		CurrentAmmo: def.MagazineSize,
	}
}

// Unregister drops an owner's weapon state (on despawn).
func (w *WeaponSystem) Unregister(ownerID int) {
	delete(w.states, ownerID)
}

// State returns the owner's weapon state, or nil if none registered.
func (w *WeaponSystem) State(ownerID int) *WeaponState {
	return w.states[ownerID]
}

// Fire attempts to fire the owner's weapon at aimAngle (radians).
// Returns the projectile batch, or nil while on cooldown, reloading,
// out of ammo, or with no registered weapon. Draining the magazine
// auto-starts a reload.
func (w *WeaponSystem) Fire(ownerID int, aimAngle float64) []Shot {
	st := w.states[ownerID]
	if st == nil {
		return nil
	}
	if st.FireCooldown > 0 || st.IsReloading || st.CurrentAmmo <= 0 {
		return nil
	}

	st.CurrentAmmo--
	st.FireCooldown = 1.0 / st.Def.FireRate
	if st.CurrentAmmo == 0 {
		st.IsReloading = true
		st.ReloadTimer = st.Def.ReloadTime
	}

	return w.fanOut(st.Def, aimAngle)
}

// fanOut computes the batch of shot angles. A single projectile gets a
// uniform random offset within the spread arc; multiple pellets are
// spaced evenly across the arc with the extremes exactly at the edges.
// The asymmetry (random single shot, deterministic pellets) is part of
// the weapon feel and is relied on by tests.
func (w *WeaponSystem) fanOut(def WeaponDef, aimAngle float64) []Shot {
	spreadRad := DegToRad(def.Spread)
	shots := make([]Shot, 0, def.ProjectileCount)

	if def.ProjectileCount <= 1 {
		offset := (w.rng.Float64() - 0.5) * spreadRad
		shots = append(shots, Shot{
			Angle:  aimAngle + offset,
			Speed:  def.ProjectileSpeed,
			Damage: def.Damage,
		})
		return shots
	}

	for i := 0; i < def.ProjectileCount; i++ {
		frac := float64(i)/float64(def.ProjectileCount-1) - 0.5
		shots = append(shots, Shot{
			Angle:  aimAngle + frac*spreadRad,
			Speed:  def.ProjectileSpeed,
			Damage: def.Damage,
		})
	}
	return shots
}

// StartReload begins a manual reload. Returns false (and does nothing)
// if already reloading or the magazine is full.
func (w *WeaponSystem) StartReload(ownerID int) bool {
	st := w.states[ownerID]
	if st == nil {
		return false
	}
	if st.IsReloading || st.CurrentAmmo == st.Def.MagazineSize {
		return false
	}
	st.IsReloading = true
	st.ReloadTimer = st.Def.ReloadTime
	return true
}

// Update advances cooldowns and reload timers for every owner.
func (w *WeaponSystem) Update(dt float64) {
	for _, st := range w.states {
		if st.FireCooldown > 0 {
			st.FireCooldown = math.Max(0, st.FireCooldown-dt)
		}
		if st.IsReloading {
			st.ReloadTimer -= dt
			if st.ReloadTimer <= 0 {
				st.ReloadTimer = 0
				st.IsReloading = false
				st.CurrentAmmo = st.Def.MagazineSize
			}
		}
	}
}

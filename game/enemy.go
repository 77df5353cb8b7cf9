package game

import (
	"math"
)

// AIState is the enemy behavior state.
type AIState int

const (
	AIStateIdle AIState = iota
	AIStatePatrol
	AIStateChase
	AIStateAttack
)

// String returns the state name for debug display.
func (s AIState) String() string {
	switch s {
	case AIStateIdle:
		return "idle"
	case AIStatePatrol:
		return "patrol"
	case AIStateChase:
		return "chase"
	case AIStateAttack:
		return "attack"
	}
	return "unknown"
}

// EnemyClassConfig describes the stats for one enemy class.
type EnemyClassConfig struct {
	Health      float64
	MoveSpeed   float64
	SightRadius float64
	AttackRange float64
	Score       int
	Weapon      WeaponDef
	Width       float64
	Height      float64
}

// enemyClasses maps level-data type names to stats.
var enemyClasses = map[string]EnemyClassConfig{
	"grunt": {
		Health:      50,
		MoveSpeed:   EnemyMoveSpeed,
		SightRadius: DefaultEnemySight,
		AttackRange: DefaultEnemyAttack,
		Score:       100,
		Weapon:      Pistol,
		Width:       28,
		Height:      44,
	},
	"heavy": {
		Health:      120,
		MoveSpeed:   EnemyMoveSpeed * 0.6,
		SightRadius: DefaultEnemySight * 0.9,
		AttackRange: DefaultEnemyAttack,
		Score:       250,
		Weapon:      Shotgun,
		Width:       36,
		Height:      52,
	},
	"sniper": {
		Health:      35,
		MoveSpeed:   EnemyMoveSpeed * 0.8,
		SightRadius: DefaultEnemySight * 1.5,
		AttackRange: DefaultEnemyAttack * 1.4,
		Score:       150,
		Weapon:      Rifle,
		Width:       26,
		Height:      42,
	},
}

// GetEnemyClassConfig returns the stats for a class name, falling back
// to grunt for unknown names.
func GetEnemyClassConfig(name string) EnemyClassConfig {
	if cfg, ok := enemyClasses[name]; ok {
		return cfg
	}
	return enemyClasses["grunt"]
}

// Enemy is an AI-controlled entity. Detection is straight-line
// distance to the player; there is no line-of-sight occlusion.
type Enemy struct {
	Entity

	Health    float64
	MaxHealth float64

	State       AIState
	SightRadius float64
	AttackRange float64
	MoveSpeed   float64

	// Waypoints are patrolled cyclically. Fewer than two degrades the
	// enemy to idle-only behavior.
	Waypoints     []Vec2
	WaypointIndex int

	// AimAngle toward the player, used when firing.
	AimAngle float64

	// ScoreValue is awarded on kill.
	ScoreValue int

	// Weapon is registered with the weapon system at spawn.
	Weapon WeaponDef

	waitTimer   float64 // pause at a reached waypoint
	attackTimer float64 // countdown to the next shot

	// attackRequested is set when the attack cooldown elapses in
	// Attack state; the engine consumes it to fire the enemy weapon.
	attackRequested bool

	// target is the player entity, set at spawn. Checked for nil and
	// Active every tick.
	target *Player
}

// NewEnemy creates a grunt-class enemy at the given spawn. It starts
// patrolling if it has two or more waypoints, otherwise idle.
func NewEnemy(x, y float64, waypoints []Vec2) *Enemy {
	return NewEnemyWithClass(x, y, "grunt", waypoints)
}

// NewEnemyWithClass creates an enemy with the stats of the named
// class.
func NewEnemyWithClass(x, y float64, class string, waypoints []Vec2) *Enemy {
	cfg := GetEnemyClassConfig(class)
	e := &Enemy{
		Entity:      *NewEntity(x, y, cfg.Width, cfg.Height),
		Health:      cfg.Health,
		MaxHealth:   cfg.Health,
		SightRadius: cfg.SightRadius,
		AttackRange: cfg.AttackRange,
		MoveSpeed:   cfg.MoveSpeed,
		Waypoints:   waypoints,
		ScoreValue:  cfg.Score,
		Weapon:      cfg.Weapon,
		State:       AIStateIdle,
	}
	if len(waypoints) >= 2 {
		e.State = AIStatePatrol
	}
	e.AddTag(TagEnemy)
	e.AddTag(TagPhysics)
	return e
}

// SetTarget points the enemy at the player to detect and attack.
func (e *Enemy) SetTarget(target *Player) {
	e.target = target
}

// Update runs one tick of the AI state machine.
func (e *Enemy) Update(dt float64) {
	if !e.Active {
		return
	}

	e.attackTimer -= dt
	if e.attackTimer < 0 {
		e.attackTimer = 0
	}

	dist := math.Inf(1)
	if e.target != nil && e.target.Active {
		dist = e.DistanceTo(&e.target.Entity)
		delta := e.target.Center().Sub(e.Center())
		e.AimAngle = math.Atan2(delta.Y, delta.X)
	}

	switch e.State {
	case AIStateIdle:
		e.Velocity.X = 0
		if dist <= e.SightRadius {
			e.State = AIStateChase
		} else if len(e.Waypoints) >= 2 {
			e.State = AIStatePatrol
		}

	case AIStatePatrol:
		if dist <= e.SightRadius {
			e.State = AIStateChase
			break
		}
		e.stepPatrol(dt)

	case AIStateChase:
		if dist > e.SightRadius*EnemySightHysteresis {
			e.Velocity.X = 0
			if len(e.Waypoints) >= 2 {
				e.State = AIStatePatrol
			} else {
				e.State = AIStateIdle
			}
			break
		}
		if dist <= e.AttackRange {
			e.State = AIStateAttack
			e.Velocity.X = 0
			break
		}
		e.moveToward(e.target.Center().X)

	case AIStateAttack:
		if dist > e.AttackRange {
			e.State = AIStateChase
			break
		}
		e.Velocity.X = 0
		if e.attackTimer <= 0 {
			e.attackRequested = true
			e.attackTimer = EnemyAttackCooldown
		}
	}
}

// stepPatrol walks toward the current waypoint, waiting at each one
// before advancing cyclically.
func (e *Enemy) stepPatrol(dt float64) {
	if len(e.Waypoints) < 2 {
		e.State = AIStateIdle
		e.Velocity.X = 0
		return
	}

	if e.waitTimer > 0 {
		e.waitTimer -= dt
		e.Velocity.X = 0
		if e.waitTimer <= 0 {
			e.waitTimer = 0
			e.WaypointIndex = (e.WaypointIndex + 1) % len(e.Waypoints)
		}
		return
	}

	wp := e.Waypoints[e.WaypointIndex]
	if math.Abs(wp.X-e.Center().X) < EnemyWaypointArrival {
		e.Velocity.X = 0
		e.waitTimer = EnemyWaypointWait
		return
	}
	e.moveToward(wp.X)
}

// moveToward sets horizontal velocity toward the target x. Vertical
// motion is left to physics.
func (e *Enemy) moveToward(x float64) {
	if x < e.Center().X {
		e.Velocity.X = -e.MoveSpeed
	} else {
		e.Velocity.X = e.MoveSpeed
	}
}

// TakeDamage reduces health; at zero the enemy deactivates and is
// swept at end of tick.
func (e *Enemy) TakeDamage(amount float64) {
	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		e.Active = false
	}
}

// consumeAttack reports and clears the pending attack request.
func (e *Enemy) consumeAttack() bool {
	a := e.attackRequested
	e.attackRequested = false
	return a
}

package game

import (
	"math"
)

// Gameplay constants
const (
	// TimeStep is the fixed simulation step in seconds.
	TimeStep = 1.0 / 60.0

	// MaxFrameTime clamps wall-clock catch-up so a stalled host (e.g. a
	// backgrounded tab) cannot trigger a runaway update spiral.
	MaxFrameTime = 0.25

	// Gravity is vertical acceleration in pixels per second^2.
	Gravity = 980.0

	// GroundFriction and AirFriction are per-tick multiplicative decay
	// factors on horizontal velocity. Applied once per tick, never
	// scaled by dt.
	GroundFriction = 0.85
	AirFriction    = 0.98

	// GroundedTolerance is how close (in pixels) a solid-platform
	// resolution must leave the entity's bottom edge to the platform
	// top before the entity counts as grounded.
	GroundedTolerance = 5.0

	// ParticleGravity is the pseudo-gravity applied to particles,
	// independent of the physics engine.
	ParticleGravity = 500.0

	// Enemy behavior tuning
	EnemyMoveSpeed       = 120.0 // horizontal chase/patrol speed, px/s
	EnemyAttackCooldown  = 2.0   // seconds between enemy shots
	EnemyWaypointArrival = 10.0  // px, close enough to a patrol waypoint
	EnemyWaypointWait    = 1.0   // seconds paused at each waypoint
	EnemySightHysteresis = 1.5   // Chase breaks at sightRadius * this
	DefaultEnemySight    = 400.0
	DefaultEnemyAttack   = 300.0

	// Player tuning
	PlayerMoveSpeed   = 240.0
	PlayerJumpForce   = 480.0
	PlayerMaxHealth   = 100.0
	JumpHoldDuration  = 0.25 // seconds of reduced gravity while jump is held
	JumpHoldGravityMu = 0.5  // gravity multiplier during jump hold

	// Pool sizes (initial capacity; pools grow on exhaustion)
	ProjectilePoolSize = 64
	ParticlePoolSize   = 256
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Config holds game configuration constants
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// SavePath is where the progress blob is persisted
	SavePath string

	// AudioSampleRate is the mixing rate for the tone synthesizer
	AudioSampleRate int
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:     960,
		ScreenHeight:    540,
		SavePath:        "armour-mayhem-save.json",
		AudioSampleRate: 44100,
	}
}

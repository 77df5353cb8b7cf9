package game

// Player is the avatar entity. Input drives horizontal movement, jump
// and aim every tick; damage is applied from outside by the engine's
// collision handlers.
type Player struct {
	Entity

	Health    float64
	MaxHealth float64

	MoveSpeed float64
	JumpForce float64

	// AimAngle in radians, toward the mouse cursor. Updated by the
	// engine before entity updates (the engine owns the camera needed
	// to unproject the cursor).
	AimAngle float64

	// WeaponIndex selects from Inventory.
	WeaponIndex int
	Inventory   []WeaponDef

	input InputProvider

	// jumpHoldTimer sustains reduced gravity while the jump key is
	// held, for variable jump height.
	jumpHoldTimer float64

	// jumpedThisTick is set on takeoff and consumed by the engine for
	// the jump sound and dust puff.
	jumpedThisTick bool
}

// NewPlayer creates a player at the given spawn with the stock
// inventory, controlled by input.
func NewPlayer(x, y float64, input InputProvider) *Player {
	p := &Player{
		Entity:    *NewEntity(x, y, 28, 44),
		Health:    PlayerMaxHealth,
		MaxHealth: PlayerMaxHealth,
		MoveSpeed: PlayerMoveSpeed,
		JumpForce: PlayerJumpForce,
		Inventory: []WeaponDef{Pistol, Shotgun, Rifle},
		input:     input,
	}
	p.AddTag(TagPlayer)
	p.AddTag(TagPhysics)
	return p
}

// CurrentWeapon returns the selected weapon definition.
func (p *Player) CurrentWeapon() WeaponDef {
	return p.Inventory[p.WeaponIndex]
}

// Update applies movement and jump input. Physics integrates the
// resulting velocity later in the same tick.
func (p *Player) Update(dt float64) {
	if !p.Active {
		return
	}

	switch {
	case p.input.IsKeyDown(KeyLeft):
		p.Velocity.X = -p.MoveSpeed
	case p.input.IsKeyDown(KeyRight):
		p.Velocity.X = p.MoveSpeed
	}

	jumpHeld := p.input.IsKeyDown(KeyJump)
	if jumpHeld && p.HasTag(TagGrounded) {
		p.Velocity.Y = -p.JumpForce
		p.jumpHoldTimer = JumpHoldDuration
		p.jumpedThisTick = true
	}

	// While the hold timer runs and the key stays down, cancel part of
	// this tick's gravity so the jump carries higher.
	if p.jumpHoldTimer > 0 {
		if jumpHeld && p.Velocity.Y < 0 {
			p.Velocity.Y -= Gravity * (1 - JumpHoldGravityMu) * dt
			p.jumpHoldTimer -= dt
		} else {
			p.jumpHoldTimer = 0
		}
	}
}

// TakeDamage reduces health; at zero the player deactivates and is
// swept at end of tick.
func (p *Player) TakeDamage(amount float64) {
	p.Health -= amount
	if p.Health <= 0 {
		p.Health = 0
		p.Active = false
	}
}

// consumeJumped reports and clears the takeoff flag.
func (p *Player) consumeJumped() bool {
	j := p.jumpedThisTick
	p.jumpedThisTick = false
	return j
}

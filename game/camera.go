package game

// Camera is the viewport into the world. It eases toward its target
// each frame and clamps to the world bounds.
type Camera struct {
	X, Y          float64 // top-left corner in world coordinates
	Width, Height float64 // viewport size in pixels

	worldWidth  float64
	worldHeight float64
}

// NewCamera creates a camera with the given viewport size.
func NewCamera(width, height float64) *Camera {
	return &Camera{Width: width, Height: height}
}

// SetWorldBounds sets the rectangle the camera is clamped inside.
func (c *Camera) SetWorldBounds(width, height float64) {
	c.worldWidth = width
	c.worldHeight = height
}

// Follow eases the camera toward centering on (x, y). The 0.1 factor
// gives the same smooth trail the camera had in earlier builds.
func (c *Camera) Follow(x, y float64) {
	targetX := x - c.Width/2
	targetY := y - c.Height/2
	c.X += (targetX - c.X) * 0.1
	c.Y += (targetY - c.Y) * 0.1
	c.clamp()
}

// SnapTo centers the camera on (x, y) immediately (level start).
func (c *Camera) SnapTo(x, y float64) {
	c.X = x - c.Width/2
	c.Y = y - c.Height/2
	c.clamp()
}

func (c *Camera) clamp() {
	if c.worldWidth <= 0 || c.worldHeight <= 0 {
		return
	}
	maxX := c.worldWidth - c.Width
	maxY := c.worldHeight - c.Height
	if c.X < 0 {
		c.X = 0
	} else if maxX > 0 && c.X > maxX {
		c.X = maxX
	}
	if c.Y < 0 {
		c.Y = 0
	} else if maxY > 0 && c.Y > maxY {
		c.Y = maxY
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx - c.X, wy - c.Y
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return sx + c.X, sy + c.Y
}

// Visible reports whether any part of the rectangle is on screen.
func (c *Camera) Visible(r Rect) bool {
	view := Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
	return view.Overlaps(r)
}

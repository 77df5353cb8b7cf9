package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Palette
var (
	colorBackground = color.NRGBA{R: 24, G: 26, B: 34, A: 255}
	colorPlatform   = color.NRGBA{R: 90, G: 95, B: 110, A: 255}
	colorOneWay     = color.NRGBA{R: 130, G: 120, B: 90, A: 255}
	colorPlayer     = color.NRGBA{R: 80, G: 200, B: 120, A: 255}
	colorEnemy      = color.NRGBA{R: 210, G: 80, B: 70, A: 255}
	colorProjectile = color.NRGBA{R: 255, G: 230, B: 120, A: 255}
	colorAimLine    = color.NRGBA{R: 255, G: 255, B: 255, A: 90}
	colorHUDText    = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	colorBarBack    = color.NRGBA{R: 40, G: 40, B: 40, A: 220}
)

// healthColor maps a health fraction to the green/amber/red HUD
// thresholds (50% and 25%).
func healthColor(frac float64) color.NRGBA {
	switch {
	case frac > 0.5:
		return color.NRGBA{R: 60, G: 220, B: 80, A: 255}
	case frac > 0.25:
		return color.NRGBA{R: 230, G: 180, B: 40, A: 255}
	default:
		return color.NRGBA{R: 230, G: 60, B: 50, A: 255}
	}
}

// Renderer draws the simulation through the camera every frame,
// interpolating entity positions with the loop alpha.
type Renderer struct {
	camera *Camera
}

// NewRenderer creates a renderer viewing through camera.
func NewRenderer(camera *Camera) *Renderer {
	return &Renderer{camera: camera}
}

// Render draws one frame of the session.
func (r *Renderer) Render(screen *ebiten.Image, lm *LevelManager, alpha float64) {
	screen.Fill(colorBackground)

	engine := lm.Engine()

	r.drawPlatforms(screen, engine.Physics().Platforms())
	r.drawEntities(screen, engine, alpha)
	r.drawProjectiles(screen, engine.Projectiles(), alpha)
	r.drawParticles(screen, engine.Particles())
	r.drawHUD(screen, lm)
}

// lerpPos interpolates an entity's render position.
func lerpPos(e *Entity, alpha float64) (float64, float64) {
	x := e.PrevPosition.X + (e.Position.X-e.PrevPosition.X)*alpha
	y := e.PrevPosition.Y + (e.Position.Y-e.PrevPosition.Y)*alpha
	return x, y
}

func (r *Renderer) drawPlatforms(screen *ebiten.Image, platforms []Platform) {
	for _, plat := range platforms {
		if !r.camera.Visible(plat.Rect) {
			continue
		}
		sx, sy := r.camera.WorldToScreen(plat.Rect.X, plat.Rect.Y)
		clr := colorPlatform
		if plat.OneWay {
			clr = colorOneWay
		}
		vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(plat.Rect.Width), float32(plat.Rect.Height), clr, false)
	}
}

func (r *Renderer) drawEntities(screen *ebiten.Image, engine *Engine, alpha float64) {
	for _, obj := range engine.Objects() {
		base := obj.Base()
		if !base.Active || !r.camera.Visible(base.Bounds()) {
			continue
		}

		switch v := obj.(type) {
		case *Player:
			x, y := lerpPos(base, alpha)
			sx, sy := r.camera.WorldToScreen(x, y)
			vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(base.Size.X), float32(base.Size.Y), colorPlayer, false)
			r.drawHealthBar(screen, sx, sy-8, base.Size.X, v.Health/v.MaxHealth)
			r.drawAim(screen, v, float32(sx+base.Size.X/2), float32(sy+base.Size.Y/2))
		case *Enemy:
			x, y := lerpPos(base, alpha)
			sx, sy := r.camera.WorldToScreen(x, y)
			vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(base.Size.X), float32(base.Size.Y), colorEnemy, false)
			r.drawHealthBar(screen, sx, sy-8, base.Size.X, v.Health/v.MaxHealth)
		}
	}
}

func (r *Renderer) drawAim(screen *ebiten.Image, p *Player, cx, cy float32) {
	ex := cx + float32(math.Cos(p.AimAngle))*30
	ey := cy + float32(math.Sin(p.AimAngle))*30
	vector.StrokeLine(screen, cx, cy, ex, ey, 2, colorAimLine, true)
}

func (r *Renderer) drawHealthBar(screen *ebiten.Image, sx, sy, width, frac float64) {
	if frac < 0 {
		frac = 0
	}
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(width), 4, colorBarBack, false)
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(width*frac), 4, healthColor(frac), false)
}

func (r *Renderer) drawProjectiles(screen *ebiten.Image, pool *ProjectilePool, alpha float64) {
	for _, proj := range pool.Active() {
		if !proj.Active || !r.camera.Visible(proj.Bounds()) {
			continue
		}
		x, y := lerpPos(&proj.Entity, alpha)
		sx, sy := r.camera.WorldToScreen(x+proj.Size.X/2, y+proj.Size.Y/2)
		clr := colorProjectile
		clr.A = uint8(255 * proj.FadeAlpha())
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(proj.Size.X/2), clr, true)
	}
}

func (r *Renderer) drawParticles(screen *ebiten.Image, pool *ParticlePool) {
	for _, part := range pool.Active() {
		sx, sy := r.camera.WorldToScreen(part.Position.X, part.Position.Y)
		clr := part.Color
		clr.A = uint8(float64(clr.A) * part.Alpha())
		vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(part.Size), float32(part.Size), clr, false)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, lm *LevelManager) {
	engine := lm.Engine()
	face := basicfont.Face7x13

	// Player vitals and ammo.
	if p := engine.Player(); p != nil {
		r.drawHealthBar(screen, 16, 16, 160, p.Health/p.MaxHealth)

		ammo := "--"
		if st := engine.Weapons().State(p.ID); st != nil {
			if st.IsReloading {
				ammo = fmt.Sprintf("%s RELOADING %.1fs", st.Def.Name, st.ReloadTimer)
			} else {
				ammo = fmt.Sprintf("%s %d/%d", st.Def.Name, st.CurrentAmmo, st.Def.MagazineSize)
			}
		}
		text.Draw(screen, ammo, face, 16, 44, colorHUDText)
	}

	status := fmt.Sprintf("%s  score %d  best %d  enemies %d  fps %.0f",
		lm.CurrentLevel().Name, engine.Score(), lm.BestScore(),
		engine.EnemiesRemaining(), ebiten.ActualFPS())
	text.Draw(screen, status, face, 16, int(r.camera.Height)-12, colorHUDText)

	switch {
	case engine.Paused():
		r.drawBanner(screen, "PAUSED")
	case lm.State() == SessionGameOver:
		r.drawBanner(screen, "GAME OVER - press Enter to retry")
	case lm.State() == SessionLevelComplete:
		r.drawBanner(screen, "LEVEL COMPLETE - press Enter to continue")
	}
}

func (r *Renderer) drawBanner(screen *ebiten.Image, msg string) {
	face := basicfont.Face7x13
	w := len(msg) * 7
	x := (int(r.camera.Width) - w) / 2
	y := int(r.camera.Height) / 2
	vector.DrawFilledRect(screen, float32(x-12), float32(y-20), float32(w+24), 32, colorBarBack, false)
	text.Draw(screen, msg, face, x, y, colorHUDText)
}

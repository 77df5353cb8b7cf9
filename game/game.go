package game

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game is the ebiten host adapter. Each host frame it lets the fixed
// loop run zero or more simulation ticks, then draws once with the
// loop's interpolation alpha.
type Game struct {
	config   Config
	loop     *FixedLoop
	levels   *LevelManager
	camera   *Camera
	renderer *Renderer
}

// NewGame wires up a full game session from configuration.
func NewGame(config Config) (*Game, error) {
	levels, err := LoadLevels()
	if err != nil {
		return nil, err
	}

	camera := NewCamera(float64(config.ScreenWidth), float64(config.ScreenHeight))
	input := NewKeyboardInput()
	audio := newHostAudio(config.AudioSampleRate)
	store := NewFileStore(config.SavePath)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	manager := NewLevelManager(levels, store, input, audio, camera, rng)

	g := &Game{
		config:   config,
		levels:   manager,
		camera:   camera,
		renderer: NewRenderer(camera),
	}
	g.loop = NewFixedLoop(manager.Tick)
	g.loop.Start()
	return g, nil
}

// Update runs the fixed-timestep simulation for this frame.
func (g *Game) Update() error {
	g.loop.RunFrame()

	if engine := g.levels.Engine(); engine != nil {
		if p := engine.Player(); p != nil {
			center := p.Center()
			g.camera.Follow(center.X, center.Y)
		}
	}
	return nil
}

// Draw renders the frame with the interpolation alpha left over from
// the update phase.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.levels, g.loop.Alpha())
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}

// Levels exposes the session orchestrator.
func (g *Game) Levels() *LevelManager { return g.levels }

// Loop exposes the fixed-timestep driver.
func (g *Game) Loop() *FixedLoop { return g.loop }

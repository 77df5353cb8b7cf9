package game

import (
	_ "embed"
	"fmt"
	"log"
	"math/rand"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var levelData []byte

// PointDef is a coordinate pair in level data.
type PointDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlatformDef is one platform rectangle in level data.
type PlatformDef struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	OneWay bool    `yaml:"oneWay"`
}

// EnemySpawn describes one enemy in level data.
type EnemySpawn struct {
	Type   string     `yaml:"type"`
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Patrol []PointDef `yaml:"patrol"`
}

// WorldDef is the playable area size.
type WorldDef struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Level is a read-only level description.
type Level struct {
	Name        string        `yaml:"name"`
	World       WorldDef      `yaml:"world"`
	PlayerSpawn PointDef      `yaml:"playerSpawn"`
	Platforms   []PlatformDef `yaml:"platforms"`
	Enemies     []EnemySpawn  `yaml:"enemies"`
}

// LoadLevels decodes the embedded level set.
func LoadLevels() ([]Level, error) {
	var doc struct {
		Levels []Level `yaml:"levels"`
	}
	if err := yaml.Unmarshal(levelData, &doc); err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if len(doc.Levels) == 0 {
		return nil, fmt.Errorf("levels: empty level set")
	}
	return doc.Levels, nil
}

// SessionState is the level-session outcome state.
type SessionState int

const (
	SessionPlaying SessionState = iota
	SessionGameOver
	SessionLevelComplete
)

// LevelManager loads level data into the simulation systems and
// tracks win/lose conditions. Completing a level unlocks the next and
// records the best score through the save store.
type LevelManager struct {
	levels []Level
	index  int
	state  SessionState

	engine *Engine
	store  SaveStore
	save   *SaveData

	input  InputProvider
	audio  AudioSink
	camera *Camera
	rng    *rand.Rand
}

// NewLevelManager loads persisted progress (absence falls back to
// defaults) and prepares the first unlocked level.
func NewLevelManager(levels []Level, store SaveStore, input InputProvider, audio AudioSink, camera *Camera, rng *rand.Rand) *LevelManager {
	save, err := store.Load()
	if err != nil || save == nil {
		save = NewSaveData()
	}
	lm := &LevelManager{
		levels: levels,
		store:  store,
		save:   save,
		input:  input,
		audio:  audio,
		camera: camera,
		rng:    rng,
	}
	lm.LoadLevel(0)
	return lm
}

// LoadLevel rebuilds the simulation from the level at index. The old
// engine, and every entity in it, is discarded wholesale.
func (lm *LevelManager) LoadLevel(index int) error {
	if index < 0 || index >= len(lm.levels) {
		return fmt.Errorf("level %d out of range", index)
	}
	if !lm.save.IsUnlocked(index) {
		return fmt.Errorf("level %d is locked", index)
	}

	level := lm.levels[index]
	lm.index = index
	lm.state = SessionPlaying

	lm.engine = NewEngine(lm.input, lm.audio, lm.camera, lm.rng)

	platforms := make([]Platform, 0, len(level.Platforms))
	for _, pd := range level.Platforms {
		platforms = append(platforms, Platform{
			Rect:   NewRect(pd.X, pd.Y, pd.Width, pd.Height),
			OneWay: pd.OneWay,
		})
	}
	lm.engine.Physics().SetPlatforms(platforms)

	player := NewPlayer(level.PlayerSpawn.X, level.PlayerSpawn.Y, lm.input)
	lm.engine.Spawn(player)

	for _, spawn := range level.Enemies {
		waypoints := make([]Vec2, 0, len(spawn.Patrol))
		for _, p := range spawn.Patrol {
			waypoints = append(waypoints, Vec2{p.X, p.Y})
		}
		enemy := NewEnemyWithClass(spawn.X, spawn.Y, spawn.Type, waypoints)
		enemy.SetTarget(player)
		lm.engine.Spawn(enemy)
	}

	lm.camera.SetWorldBounds(level.World.Width, level.World.Height)
	center := player.Center()
	lm.camera.SnapTo(center.X, center.Y)

	return nil
}

// Tick advances the session one fixed step: runs the simulation while
// playing, otherwise waits for the restart/continue key.
func (lm *LevelManager) Tick(dt float64) {
	switch lm.state {
	case SessionPlaying:
		lm.engine.Tick(dt)
		lm.checkOutcome()
	default:
		if lm.input.IsKeyPressed(KeyRestart) {
			lm.advance()
		}
		lm.input.Update()
	}
}

// checkOutcome applies the fall-out-of-world rule and the win/lose
// conditions.
func (lm *LevelManager) checkOutcome() {
	level := lm.levels[lm.index]

	// Falling past the bottom of the world is lethal.
	for _, obj := range lm.engine.Objects() {
		base := obj.Base()
		if base.Active && base.Position.Y > level.World.Height+200 {
			switch v := obj.(type) {
			case *Player:
				v.TakeDamage(v.Health)
			case *Enemy:
				v.TakeDamage(v.Health)
			default:
				base.Active = false
			}
		}
	}

	if lm.engine.Player() == nil {
		lm.state = SessionGameOver
		return
	}

	if lm.engine.EnemiesRemaining() == 0 {
		lm.state = SessionLevelComplete
		lm.completeLevel()
	}
}

// completeLevel persists the unlock and best score. Store faults are
// already swallowed by the store; progress simply stays in memory.
func (lm *LevelManager) completeLevel() {
	next := lm.index + 1
	if next < len(lm.levels) {
		lm.save.Unlock(next)
	}
	lm.save.RecordScore(lm.index, lm.engine.Score())
	if err := lm.store.Save(lm.save); err != nil {
		log.Printf("level: persist progress: %v", err)
	}
}

// advance restarts after a loss, or moves to the next level (wrapping
// back to the first past the end) after a win.
func (lm *LevelManager) advance() {
	if lm.state == SessionLevelComplete {
		next := lm.index + 1
		if next >= len(lm.levels) {
			next = 0
		}
		if err := lm.LoadLevel(next); err == nil {
			return
		}
	}
	lm.LoadLevel(lm.index)
}

// Engine returns the live simulation.
func (lm *LevelManager) Engine() *Engine { return lm.engine }

// State returns the session outcome state.
func (lm *LevelManager) State() SessionState { return lm.state }

// CurrentLevel returns the loaded level's data.
func (lm *LevelManager) CurrentLevel() Level { return lm.levels[lm.index] }

// Index returns the loaded level's index.
func (lm *LevelManager) Index() int { return lm.index }

// BestScore returns the persisted best score for the loaded level.
func (lm *LevelManager) BestScore() int {
	return lm.save.BestScores[lm.index]
}

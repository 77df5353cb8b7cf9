package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Key identifies a game action key, decoupled from the host keyboard
// layout.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyJump
	KeyReload
	KeyPause
	KeyRestart
	KeyWeapon1
	KeyWeapon2
	KeyWeapon3
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
)

// InputProvider is the query surface the simulation reads each tick.
// IsKeyPressed is edge-detected (true only on the tick the key went
// down) and is what pause toggling uses; Update rolls the edge
// snapshot forward and must be called exactly once at the end of each
// tick, after all queries.
type InputProvider interface {
	IsKeyDown(key Key) bool
	IsKeyPressed(key Key) bool
	MousePosition() (float64, float64)
	IsMouseButtonDown(button MouseButton) bool
	Update()
}

// keyBindings maps action keys to physical keys.
var keyBindings = map[Key][]ebiten.Key{
	KeyLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
	KeyRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
	KeyJump:    {ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp},
	KeyReload:  {ebiten.KeyR},
	KeyPause:   {ebiten.KeyEscape, ebiten.KeyP},
	KeyRestart: {ebiten.KeyEnter},
	KeyWeapon1: {ebiten.KeyDigit1},
	KeyWeapon2: {ebiten.KeyDigit2},
	KeyWeapon3: {ebiten.KeyDigit3},
}

// KeyboardInput reads the ebiten keyboard and mouse. Edges are derived
// from the snapshot taken at the last Update, not from the host frame:
// a press reads as just-pressed for exactly one tick, whether the frame
// runs several catch-up ticks or none at all.
type KeyboardInput struct {
	poll func(key Key) bool
	prev map[Key]bool
}

// NewKeyboardInput creates the standard keyboard/mouse provider.
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		poll: pollKeyboard,
		prev: make(map[Key]bool),
	}
}

// pollKeyboard reports whether any binding for key is held on the host.
func pollKeyboard(key Key) bool {
	for _, ek := range keyBindings[key] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether any binding for key is held.
func (k *KeyboardInput) IsKeyDown(key Key) bool {
	return k.poll(key)
}

// IsKeyPressed reports keys held now that were up at the last Update.
func (k *KeyboardInput) IsKeyPressed(key Key) bool {
	return k.poll(key) && !k.prev[key]
}

// MousePosition returns the cursor position in screen pixels.
func (k *KeyboardInput) MousePosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// IsMouseButtonDown reports whether the button is held.
func (k *KeyboardInput) IsMouseButtonDown(button MouseButton) bool {
	switch button {
	case MouseButtonLeft:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	case MouseButtonRight:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	}
	return false
}

// Update snapshots the current key state for edge detection.
func (k *KeyboardInput) Update() {
	for key := range keyBindings {
		k.prev[key] = k.poll(key)
	}
}

// ScriptedInput is an InputProvider driven by test code. Set key and
// button state directly; edges are derived from the previous tick's
// snapshot on Update.
type ScriptedInput struct {
	Keys    map[Key]bool
	Buttons map[MouseButton]bool
	MouseX  float64
	MouseY  float64

	prevKeys map[Key]bool
}

// NewScriptedInput creates an empty scripted provider.
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{
		Keys:     make(map[Key]bool),
		Buttons:  make(map[MouseButton]bool),
		prevKeys: make(map[Key]bool),
	}
}

// IsKeyDown reports the scripted key state.
func (s *ScriptedInput) IsKeyDown(key Key) bool { return s.Keys[key] }

// IsKeyPressed reports keys that are down now but were up at the last
// Update.
func (s *ScriptedInput) IsKeyPressed(key Key) bool {
	return s.Keys[key] && !s.prevKeys[key]
}

// MousePosition returns the scripted cursor position.
func (s *ScriptedInput) MousePosition() (float64, float64) { return s.MouseX, s.MouseY }

// IsMouseButtonDown reports the scripted button state.
func (s *ScriptedInput) IsMouseButtonDown(button MouseButton) bool { return s.Buttons[button] }

// Update snapshots the current key state for edge detection.
func (s *ScriptedInput) Update() {
	for k := range s.prevKeys {
		delete(s.prevKeys, k)
	}
	for k, down := range s.Keys {
		s.prevKeys[k] = down
	}
}

package hal

import "github.com/hajimehoshi/ebiten/v2"

var ebitenKeys = map[KeyCode]ebiten.Key{
	KeyW:      ebiten.KeyW,
	KeyA:      ebiten.KeyA,
	KeyS:      ebiten.KeyS,
	KeyD:      ebiten.KeyD,
	KeyQ:      ebiten.KeyQ,
	KeyE:      ebiten.KeyE,
	KeyUp:     ebiten.KeyArrowUp,
	KeyDown:   ebiten.KeyArrowDown,
	KeyLeft:   ebiten.KeyArrowLeft,
	KeyRight:  ebiten.KeyArrowRight,
	KeySpace:  ebiten.KeySpace,
	KeyEnter:  ebiten.KeyEnter,
	KeyEscape: ebiten.KeyEscape,
}

// hostKeyboard keeps the held-key snapshot taken at the start of the frame, so
// every query within one step sees the same state.
type hostKeyboard struct {
	held map[KeyCode]bool
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{held: make(map[KeyCode]bool, len(ebitenKeys))}
}

func (k *hostKeyboard) Pressed(code KeyCode) bool { return k.held[code] }

func (k *hostKeyboard) poll() {
	for code, key := range ebitenKeys {
		k.held[code] = ebiten.IsKeyPressed(key)
	}
}

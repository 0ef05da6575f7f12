package hal

import "errors"

// ErrQuit is returned by a Loop step to end the run cleanly.
var ErrQuit = errors.New("quit requested")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a hardware-independent key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
)

var keyNames = map[string]KeyCode{
	"w":      KeyW,
	"a":      KeyA,
	"s":      KeyS,
	"d":      KeyD,
	"q":      KeyQ,
	"e":      KeyE,
	"up":     KeyUp,
	"down":   KeyDown,
	"left":   KeyLeft,
	"right":  KeyRight,
	"space":  KeySpace,
	"enter":  KeyEnter,
	"escape": KeyEscape,
}

// ParseKey maps a config key name ("w", "up", "escape", ...) to a KeyCode.
func ParseKey(name string) (KeyCode, bool) {
	k, ok := keyNames[name]
	return k, ok
}

func (k KeyCode) String() string {
	for name, code := range keyNames {
		if code == k {
			return name
		}
	}
	return "unknown"
}

// Keyboard reports which keys are currently held.
//
// The snapshot is refreshed by the host runner once per frame.
type Keyboard interface {
	Pressed(k KeyCode) bool
}

// Clock is a monotonic millisecond tick source.
type Clock interface {
	Millis() uint64
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// HAL provides the only contact point between the demo and the outside world.
type HAL interface {
	Display() Display
	Input() Input
	Clock() Clock
}

// Loop is stepped once per frame by RunWindow or RunHeadless.
type Loop interface {
	Step() error
}

// Package input turns held keys into the two normalized control axes.
package input

import (
	"fmt"

	"tankdemo/hal"
)

// KeyState reports whether a key is currently held.
type KeyState interface {
	Pressed(k hal.KeyCode) bool
}

// Axes are the per-frame control values. Each is -1, 0 or 1.
type Axes struct {
	Forward float64
	Turn    float64
}

// Binding is held when any of its keys is held.
type Binding []hal.KeyCode

func (b Binding) held(keys KeyState) bool {
	for _, k := range b {
		if keys.Pressed(k) {
			return true
		}
	}
	return false
}

// Bindings maps the control actions to keys.
type Bindings struct {
	Forward Binding
	Back    Binding
	Left    Binding
	Right   Binding
	Quit    Binding
}

// DefaultBindings is WASD plus arrow keys, escape to quit.
func DefaultBindings() Bindings {
	return Bindings{
		Forward: Binding{hal.KeyW, hal.KeyUp},
		Back:    Binding{hal.KeyS, hal.KeyDown},
		Left:    Binding{hal.KeyA, hal.KeyLeft},
		Right:   Binding{hal.KeyD, hal.KeyRight},
		Quit:    Binding{hal.KeyEscape},
	}
}

// Sample reads the axes from the current key snapshot.
//
// Forward is checked before back and left before right, so holding both keys
// of a pair yields the first one's value.
func Sample(keys KeyState, b Bindings) Axes {
	var a Axes
	if keys == nil {
		return a
	}

	switch {
	case b.Forward.held(keys):
		a.Forward = 1
	case b.Back.held(keys):
		a.Forward = -1
	}

	switch {
	case b.Left.held(keys):
		a.Turn = 1
	case b.Right.held(keys):
		a.Turn = -1
	}
	return a
}

// QuitRequested reports whether a quit key is held.
func QuitRequested(keys KeyState, b Bindings) bool {
	return keys != nil && b.Quit.held(keys)
}

// KeyNames is the config form of Bindings.
type KeyNames struct {
	Forward []string `yaml:"forward"`
	Back    []string `yaml:"back"`
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	Quit    []string `yaml:"quit"`
}

// ParseBindings resolves key names. Empty actions keep their default keys.
func ParseBindings(n KeyNames) (Bindings, error) {
	b := DefaultBindings()
	for _, f := range []struct {
		action string
		names  []string
		dst    *Binding
	}{
		{"forward", n.Forward, &b.Forward},
		{"back", n.Back, &b.Back},
		{"left", n.Left, &b.Left},
		{"right", n.Right, &b.Right},
		{"quit", n.Quit, &b.Quit},
	} {
		if len(f.names) == 0 {
			continue
		}
		keys := make(Binding, 0, len(f.names))
		for _, name := range f.names {
			code, ok := hal.ParseKey(name)
			if !ok {
				return Bindings{}, fmt.Errorf("input: %s: unknown key %q", f.action, name)
			}
			keys = append(keys, code)
		}
		*f.dst = keys
	}
	return b, nil
}

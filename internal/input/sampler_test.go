package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankdemo/hal"
)

type keySet map[hal.KeyCode]bool

func (k keySet) Pressed(code hal.KeyCode) bool { return k[code] }

func TestSample(t *testing.T) {
	b := DefaultBindings()
	tests := []struct {
		name string
		keys keySet
		want Axes
	}{
		{"none", keySet{}, Axes{}},
		{"forward", keySet{hal.KeyW: true}, Axes{Forward: 1}},
		{"back", keySet{hal.KeyS: true}, Axes{Forward: -1}},
		{"forward wins over back", keySet{hal.KeyW: true, hal.KeyS: true}, Axes{Forward: 1}},
		{"left", keySet{hal.KeyA: true}, Axes{Turn: 1}},
		{"right", keySet{hal.KeyD: true}, Axes{Turn: -1}},
		{"left wins over right", keySet{hal.KeyA: true, hal.KeyD: true}, Axes{Turn: 1}},
		{"arrow keys", keySet{hal.KeyDown: true, hal.KeyRight: true}, Axes{Forward: -1, Turn: -1}},
		{"unbound key", keySet{hal.KeySpace: true}, Axes{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sample(tt.keys, b))
		})
	}
}

func TestSampleNilKeys(t *testing.T) {
	assert.Equal(t, Axes{}, Sample(nil, DefaultBindings()))
	assert.False(t, QuitRequested(nil, DefaultBindings()))
}

func TestQuitRequested(t *testing.T) {
	b := DefaultBindings()
	assert.True(t, QuitRequested(keySet{hal.KeyEscape: true}, b))
	assert.False(t, QuitRequested(keySet{hal.KeyW: true}, b))
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(KeyNames{Forward: []string{"e"}, Quit: []string{"q", "escape"}})
	require.NoError(t, err)
	assert.Equal(t, Binding{hal.KeyE}, b.Forward)
	assert.Equal(t, Binding{hal.KeyQ, hal.KeyEscape}, b.Quit)
	assert.Equal(t, DefaultBindings().Back, b.Back)

	_, err = ParseBindings(KeyNames{Left: []string{"ctrl"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `left: unknown key "ctrl"`)
}

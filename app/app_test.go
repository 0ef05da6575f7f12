package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tankdemo/hal"
	"tankdemo/internal/config"
	"tankdemo/internal/kinematics"
	"tankdemo/internal/mesh"
	"tankdemo/internal/render"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Renderer = config.RendererSoftware
	cfg.Window.Width, cfg.Window.Height = 160, 120
	cfg.Window.HUD = false
	return cfg
}

// runScript steps a demo headless under a fixed 1 ms clock.
func runScript(t *testing.T, cfg config.Config, steps []hal.ScriptStep, ticks uint64) *Demo {
	t.Helper()
	var demo *Demo
	err := hal.RunHeadless(context.Background(), hal.HeadlessConfig{
		Hz:         1000,
		Ticks:      ticks,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Keyboard:   hal.NewScriptKeyboard(steps, false),
		FixedClock: true,
	}, func(h hal.HAL) (hal.Loop, error) {
		d, err := New(h, cfg, zap.NewNop())
		demo = d
		return d, err
	})
	require.NoError(t, err)
	require.NotNil(t, demo)
	return demo
}

func TestStepForward(t *testing.T) {
	// 1000 Hz gives a 1 ms fixed step; the first frame has dt 0, so
	// 1001 frames of forward input cover one second.
	d := runScript(t, testConfig(), []hal.ScriptStep{{Frames: 1001, Keys: []hal.KeyCode{hal.KeyW}}}, 1001)

	s := d.State()
	assert.InDelta(t, 0, s.Position.X(), 1e-9)
	assert.InDelta(t, 5, s.Position.Y(), 1e-6)
	assert.InDelta(t, 0, s.RotationZ, 1e-12)
	assert.Equal(t, uint64(1001), d.Frames())
}

func TestStepTurnQuarter(t *testing.T) {
	d := runScript(t, testConfig(), []hal.ScriptStep{
		{Frames: 1, Keys: nil},
		{Frames: 250, Keys: []hal.KeyCode{hal.KeyA}},
	}, 251)
	assert.InDelta(t, math.Pi/2, d.State().RotationZ, 1e-6)
	assert.InDelta(t, 0, d.State().Position.Len(), 1e-12)
}

func TestStepIdle(t *testing.T) {
	d := runScript(t, testConfig(), nil, 50)
	assert.Equal(t, 0.0, d.State().Position.Len())
	assert.Equal(t, 0.0, d.State().RotationZ)
}

func TestQuitKeyEndsRun(t *testing.T) {
	d := runScript(t, testConfig(), []hal.ScriptStep{
		{Frames: 3, Keys: nil},
		{Frames: 1, Keys: []hal.KeyCode{hal.KeyEscape}},
	}, 100)
	assert.Equal(t, uint64(3), d.Frames())
	assert.ErrorIs(t, d.Step(), hal.ErrQuit)
}

// The stock settings must show the tank and the horizon.
func TestDefaultConfigDrawsScene(t *testing.T) {
	cfg := config.Default()
	cfg.Window.HUD = false
	h := hal.New(hal.HostConfig{Width: cfg.Window.Width, Height: cfg.Window.Height, Keyboard: hal.NewScriptKeyboard(nil, false)})
	d, err := New(h, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, d.Step())

	fb := h.Display().Framebuffer()
	lit := func(x0, x1, y0, y1 int) int {
		n := 0
		buf := fb.Buffer()
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				off := y*fb.StrideBytes() + x*2
				if buf[off] != 0 || buf[off+1] != 0 {
					n++
				}
			}
		}
		return n
	}
	w, hgt := fb.Width(), fb.Height()
	// The tank sits below the centre line, the horizon around it.
	assert.Greater(t, lit(0, w, hgt/2, hgt), 0, "tank pixels")
	assert.Greater(t, lit(0, w, 0, hgt), lit(0, w, hgt/2, hgt), "horizon pixels above the centre line")
}

func TestSceneFollowsConfig(t *testing.T) {
	cfg := config.Default()
	s := Scene(&cfg)
	require.NotNil(t, s.Scenery)
	assert.Equal(t, mgl32.Vec4{10, 10, 0, 1}, s.SceneryModel.Mul4x1(mgl32.Vec4{0.5, 0, 0, 1}))

	cfg.Scenery.Enabled = false
	assert.Nil(t, Scene(&cfg).Scenery)
}

func TestNewRejectsUnknownRenderer(t *testing.T) {
	cfg := testConfig()
	cfg.Renderer = "vulkan"
	_, err := New(hal.New(hal.HostConfig{Width: 16, Height: 16}), cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNewRejectsUnknownKey(t *testing.T) {
	cfg := testConfig()
	cfg.Keys.Forward = []string{"f13"}
	_, err := New(hal.New(hal.HostConfig{Width: 16, Height: 16}), cfg, nil)
	assert.Error(t, err)
}

func TestNewLogsMesh(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	_, err := New(hal.New(hal.HostConfig{Width: 32, Height: 32}), testConfig(), zap.New(core))
	require.NoError(t, err)

	entries := logs.FilterMessage("demo ready").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "software", fields["renderer"])
	assert.Equal(t, int64(len(mesh.Tank().Edges)), fields["edges"])
}

type panicRenderer struct{}

func (panicRenderer) Upload(render.Scene) error { return nil }
func (panicRenderer) Draw(render.Frame) error { panic("boom") }

func TestStepRecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	d, err := New(hal.New(hal.HostConfig{Width: 64, Height: 64, Keyboard: hal.NewScriptKeyboard(nil, false)}), testConfig(), zap.New(core))
	require.NoError(t, err)
	d.renderer = panicRenderer{}

	err = d.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, logs.FilterMessage("frame panic").Len())
}

type failingRenderer struct{ panicRenderer }

var errDraw = errors.New("draw failed")

func (failingRenderer) Draw(render.Frame) error { return errDraw }

func TestStepWrapsDrawError(t *testing.T) {
	d, err := New(hal.New(hal.HostConfig{Width: 16, Height: 16, Keyboard: hal.NewScriptKeyboard(nil, false)}), testConfig(), nil)
	require.NoError(t, err)
	d.renderer = failingRenderer{}
	assert.ErrorIs(t, d.Step(), errDraw)
}

func TestStatsReport(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := newFrameStats(0)
	s.every = 100
	log := zap.New(core)

	for now := uint64(0); now <= 1000; now += 10 {
		s.record(now, 0.01)
		s.report(log, now, kinematics.State{})
	}
	assert.Equal(t, 10, logs.FilterMessage("frame stats").Len())
	assert.InDelta(t, 100, s.fps, 1e-9)
}

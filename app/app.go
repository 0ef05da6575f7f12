// Package app owns the demo state and runs one frame per Step: sample the
// keyboard, advance the tank, hand the pose to the renderer.
package app

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"tankdemo/hal"
	"tankdemo/internal/config"
	"tankdemo/internal/input"
	"tankdemo/internal/kinematics"
	"tankdemo/internal/render"
)

// Demo is the per-run context. It implements hal.Loop, and hal.Painter for
// the window backends.
type Demo struct {
	cfg config.Config
	log *zap.Logger
	h   hal.HAL

	bindings input.Bindings
	tank     *kinematics.Tank
	renderer render.Renderer
	screen   render.ScreenRenderer

	last    uint64
	started bool
	quit    bool
	stats   frameStats
}

var (
	_ hal.Loop    = (*Demo)(nil)
	_ hal.Painter = (*Demo)(nil)
)

// New builds the renderer chosen by cfg and uploads the scene.
func New(h hal.HAL, cfg config.Config, log *zap.Logger) (*Demo, error) {
	if log == nil {
		log = zap.NewNop()
	}
	bindings, err := input.ParseBindings(cfg.Keys)
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(h, &cfg)
	if err != nil {
		return nil, fmt.Errorf("app: renderer %s: %w", cfg.Renderer, err)
	}

	scene := Scene(&cfg)
	m := scene.Tank
	if err := r.Upload(scene); err != nil {
		return nil, fmt.Errorf("app: upload scene: %w", err)
	}

	d := &Demo{
		cfg:      cfg,
		log:      log,
		h:        h,
		bindings: bindings,
		tank:     kinematics.New(),
		renderer: r,
		stats:    newFrameStats(cfg.Logging.StatsInterval),
	}
	if sr, ok := r.(render.ScreenRenderer); ok {
		d.screen = sr
	}

	log.Info("demo ready",
		zap.String("renderer", cfg.Renderer),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("mesh", m.Name),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("edges", len(m.Edges)),
		zap.String("mesh_fingerprint", fmt.Sprintf("%016x", m.Fingerprint())),
		zap.Bool("scenery", scene.Scenery != nil),
	)
	return d, nil
}

// Step runs one frame. It returns hal.ErrQuit once the quit key was seen.
func (d *Demo) Step() (err error) {
	defer d.recoverFrame(&err)

	if d.quit {
		return hal.ErrQuit
	}
	keys := d.h.Input().Keyboard()
	if input.QuitRequested(keys, d.bindings) {
		d.quit = true
		d.log.Info("quit requested", zap.Uint64("frames", d.stats.frames))
		return hal.ErrQuit
	}
	axes := input.Sample(keys, d.bindings)

	now := d.h.Clock().Millis()
	var dt float64
	if d.started && now >= d.last {
		dt = float64(now-d.last) / 1000
	}
	d.last, d.started = now, true

	d.tank.Update(axes, dt, d.cfg.Tank.RotSpeed, d.cfg.Tank.LinSpeed)
	d.stats.record(now, dt)

	s := d.tank.State()
	f := render.Frame{
		Model:    render.Mat4From64(d.tank.ModelMatrix()),
		Position: render.Vec3From64(s.Position),
		Heading:  float32(s.RotationZ),
		FPS:      d.stats.fps,
	}
	if err := d.renderer.Draw(f); err != nil {
		return fmt.Errorf("app: draw frame %d: %w", d.stats.frames, err)
	}
	d.stats.report(d.log, now, s)
	return nil
}

// Paint draws the latched frame for renderers that paint the window.
func (d *Demo) Paint(screen *ebiten.Image) {
	if d.screen != nil {
		d.screen.DrawScreen(screen)
	}
}

// State returns the tank pose.
func (d *Demo) State() kinematics.State { return d.tank.State() }

// Frames returns the number of frames stepped so far.
func (d *Demo) Frames() uint64 { return d.stats.frames }

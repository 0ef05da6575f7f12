// Package config loads the demo settings from YAML on top of built-in
// defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tankdemo/hal"
	"tankdemo/internal/input"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Renderer names.
const (
	RendererImmediate = "immediate"
	RendererBuffered  = "buffered"
	RendererSoftware  = "software"
)

// Clock names for headless runs.
const (
	ClockWall  = "wall"
	ClockFixed = "fixed"
)

type Config struct {
	Renderer string         `yaml:"renderer"`
	Window   WindowConfig   `yaml:"window"`
	Tank     TankConfig     `yaml:"tank"`
	Camera   CameraConfig   `yaml:"camera"`
	Scenery  SceneryConfig  `yaml:"scenery"`
	Software SoftwareConfig `yaml:"software"`
	Buffered BufferedConfig `yaml:"buffered"`
	Keys     input.KeyNames `yaml:"keys"`
	Headless HeadlessConfig `yaml:"headless"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Scale  int    `yaml:"scale"`
	FPS    int    `yaml:"fps"`
	HUD    bool   `yaml:"hud"`
}

type TankConfig struct {
	// RotSpeed is radians per second.
	RotSpeed float64 `yaml:"rot_speed"`
	// LinSpeed is units per second.
	LinSpeed float64 `yaml:"lin_speed"`
}

type CameraConfig struct {
	FOVY  float32    `yaml:"fov_y"`
	Near  float32    `yaml:"near"`
	Far   float32    `yaml:"far"`
	Eye   [3]float32 `yaml:"eye"`
	Pitch float32    `yaml:"pitch"`
}

// SceneryConfig places the horizon mesh: scaled about its origin, then
// moved to Offset.
type SceneryConfig struct {
	Enabled bool       `yaml:"enabled"`
	Scale   float32    `yaml:"scale"`
	Offset  [3]float32 `yaml:"offset"`
}

type SoftwareConfig struct {
	PerspectiveDivide bool     `yaml:"perspective_divide"`
	Color             [3]uint8 `yaml:"color"`
	Background        [3]uint8 `yaml:"background"`
}

// BufferedConfig styles the lines drawn by both window backends.
type BufferedConfig struct {
	LineWidth float32  `yaml:"line_width"`
	Color     [3]uint8 `yaml:"color"`
}

type HeadlessConfig struct {
	Enabled bool         `yaml:"enabled"`
	Hz      int          `yaml:"hz"`
	Ticks   uint64       `yaml:"ticks"`
	Clock   string       `yaml:"clock"`
	Loop    bool         `yaml:"loop"`
	Script  []ScriptStep `yaml:"script"`
}

// ScriptStep holds Keys for Frames frames of a headless run.
type ScriptStep struct {
	Frames int      `yaml:"frames"`
	Keys   []string `yaml:"keys"`
}

type LoggingConfig struct {
	Level         string        `yaml:"level"`
	Format        string        `yaml:"format"`
	Output        []string      `yaml:"output"`
	StatsInterval time.Duration `yaml:"stats_interval"`
}

// Default returns the stock settings: a 640x480 window at 30 FPS, one turn
// per second and 5 units per second.
func Default() Config {
	return Config{
		Renderer: RendererSoftware,
		Window: WindowConfig{
			Title:  "Tank Demo",
			Width:  640,
			Height: 480,
			Scale:  1,
			FPS:    30,
			HUD:    true,
		},
		Tank: TankConfig{
			RotSpeed: 2 * math.Pi,
			LinSpeed: 5,
		},
		Camera: CameraConfig{
			FOVY:  60,
			Near:  0.1,
			Far:   100,
			Eye:   [3]float32{0, -1, -5},
			Pitch: -90,
		},
		Scenery: SceneryConfig{
			Enabled: true,
			Scale:   20,
			Offset:  [3]float32{0, 10, 0},
		},
		Software: SoftwareConfig{
			PerspectiveDivide: true,
			Color:             [3]uint8{0x33, 0xFF, 0x66},
		},
		Buffered: BufferedConfig{
			LineWidth: 1.5,
			Color:     [3]uint8{0x33, 0xFF, 0x66},
		},
		Headless: HeadlessConfig{
			Hz:    30,
			Clock: ClockFixed,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			Output:        []string{"stderr"},
			StatsInterval: 5 * time.Second,
		},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Aspect is the window width over height.
func (c *Config) Aspect() float32 {
	if c.Window.Height == 0 {
		return 1
	}
	return float32(c.Window.Width) / float32(c.Window.Height)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch c.Renderer {
	case RendererImmediate, RendererBuffered, RendererSoftware:
	default:
		bad("renderer %q (want %s, %s or %s)", c.Renderer, RendererImmediate, RendererBuffered, RendererSoftware)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		bad("window.fps %d", c.Window.FPS)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"tank.rot_speed", c.Tank.RotSpeed},
		{"tank.lin_speed", c.Tank.LinSpeed},
		{"camera.fov_y", float64(c.Camera.FOVY)},
		{"camera.near", float64(c.Camera.Near)},
		{"camera.far", float64(c.Camera.Far)},
		{"camera.eye[0]", float64(c.Camera.Eye[0])},
		{"camera.eye[1]", float64(c.Camera.Eye[1])},
		{"camera.eye[2]", float64(c.Camera.Eye[2])},
		{"camera.pitch", float64(c.Camera.Pitch)},
		{"scenery.scale", float64(c.Scenery.Scale)},
		{"scenery.offset[0]", float64(c.Scenery.Offset[0])},
		{"scenery.offset[1]", float64(c.Scenery.Offset[1])},
		{"scenery.offset[2]", float64(c.Scenery.Offset[2])},
		{"buffered.line_width", float64(c.Buffered.LineWidth)},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			bad("%s must be finite, got %v", f.name, f.v)
		}
	}
	if c.Tank.RotSpeed < 0 || c.Tank.LinSpeed < 0 {
		bad("tank speeds must be non-negative (rot %v, lin %v)", c.Tank.RotSpeed, c.Tank.LinSpeed)
	}
	if !(c.Camera.FOVY > 0 && c.Camera.FOVY < 180) {
		bad("camera.fov_y %v", c.Camera.FOVY)
	}
	if !(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near) {
		bad("camera near/far %v/%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Scenery.Enabled && !(c.Scenery.Scale > 0) {
		bad("scenery.scale %v", c.Scenery.Scale)
	}
	if !(c.Buffered.LineWidth > 0) {
		bad("buffered.line_width %v", c.Buffered.LineWidth)
	}
	if c.Headless.Enabled {
		if c.Renderer != RendererSoftware {
			bad("headless runs need the %s renderer, got %q", RendererSoftware, c.Renderer)
		}
		if c.Headless.Hz <= 0 {
			bad("headless.hz %d", c.Headless.Hz)
		}
	}
	switch c.Headless.Clock {
	case ClockWall, ClockFixed:
	default:
		bad("headless.clock %q", c.Headless.Clock)
	}
	for i, s := range c.Headless.Script {
		if s.Frames < 0 {
			bad("headless.script[%d].frames %d", i, s.Frames)
		}
		for _, k := range s.Keys {
			if _, ok := hal.ParseKey(k); !ok {
				bad("headless.script[%d]: unknown key %q", i, k)
			}
		}
	}
	if _, err := input.ParseBindings(c.Keys); err != nil {
		bad("keys: %v", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		bad("logging.format %q", c.Logging.Format)
	}
	return errors.Join(errs...)
}

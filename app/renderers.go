package app

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"tankdemo/hal"
	"tankdemo/internal/config"
	"tankdemo/internal/mesh"
	"tankdemo/internal/projection"
	"tankdemo/internal/render"
	"tankdemo/internal/render/buffered"
	"tankdemo/internal/render/immediate"
	"tankdemo/internal/render/soft"
)

// Camera converts the camera settings for a window of cfg's size.
func Camera(cfg *config.Config) projection.Camera {
	e := cfg.Camera.Eye
	return projection.Camera{
		FOVYDegrees:  cfg.Camera.FOVY,
		Aspect:       cfg.Aspect(),
		Near:         cfg.Camera.Near,
		Far:          cfg.Camera.Far,
		Eye:          mgl32.Vec3{e[0], e[1], e[2]},
		PitchDegrees: cfg.Camera.Pitch,
	}
}

// Scene returns the tank plus, when enabled, the landscape placed by the
// scenery settings.
func Scene(cfg *config.Config) render.Scene {
	s := render.Scene{Tank: mesh.Tank()}
	if sc := cfg.Scenery; sc.Enabled {
		s.Scenery = mesh.Landscape()
		s.SceneryModel = mgl32.Translate3D(sc.Offset[0], sc.Offset[1], sc.Offset[2]).
			Mul4(mgl32.Scale3D(sc.Scale, sc.Scale, sc.Scale))
	}
	return s
}

func newRenderer(h hal.HAL, cfg *config.Config) (render.Renderer, error) {
	cam := Camera(cfg)
	switch cfg.Renderer {
	case config.RendererImmediate:
		return immediate.New(cam, immediate.Options{
			Color:      render.RGB(cfg.Buffered.Color),
			Background: render.RGB(cfg.Software.Background),
			LineWidth:  cfg.Buffered.LineWidth,
			HUD:        cfg.Window.HUD,
		}), nil
	case config.RendererBuffered:
		return buffered.New(cam, buffered.Options{
			Color:      render.RGB(cfg.Buffered.Color),
			Background: render.RGB(cfg.Software.Background),
			LineWidth:  cfg.Buffered.LineWidth,
			HUD:        cfg.Window.HUD,
		}), nil
	case config.RendererSoftware:
		d := h.Display()
		if d == nil || d.Framebuffer() == nil {
			return nil, fmt.Errorf("no framebuffer")
		}
		return soft.New(d.Framebuffer(), cam, soft.Options{
			PerspectiveDivide: cfg.Software.PerspectiveDivide,
			Color:             render.RGB(cfg.Software.Color),
			Background:        render.RGB(cfg.Software.Background),
			HUD:               cfg.Window.HUD,
		})
	}
	return nil, fmt.Errorf("%w: unknown renderer %q", config.ErrInvalid, cfg.Renderer)
}

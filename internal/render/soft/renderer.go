// Package soft is the software backend: the core projects the mesh to
// screen-space segments and this package rasterizes them into the RGB565
// framebuffer.
package soft

import (
	"errors"
	"image/color"

	"tankdemo/hal"
	"tankdemo/internal/projection"
	"tankdemo/internal/render"
)

// Options controls the software backend.
type Options struct {
	// PerspectiveDivide selects the corrected projection. When false, clip
	// coordinates are remapped to pixels without dividing by w.
	PerspectiveDivide bool
	Color             color.RGBA
	Background        color.RGBA
	HUD               bool
}

// Renderer rasterizes the projected wireframe into a framebuffer.
//
// Create it once and reuse it; the segment buffer is kept across frames.
type Renderer struct {
	fb     hal.Framebuffer
	target *RGB565Target
	cam    projection.Camera
	opts   Options

	scene  render.Scene
	loaded bool
	segs   []projection.Segment
	hud  *hud
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a renderer drawing into fb through cam.
func New(fb hal.Framebuffer, cam projection.Camera, opts Options) (*Renderer, error) {
	t := FramebufferTarget(fb)
	if t == nil {
		return nil, errors.New("soft: framebuffer must be RGB565")
	}
	if opts.Color == (color.RGBA{}) {
		opts.Color = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	r := &Renderer{fb: fb, target: t, cam: cam, opts: opts}
	if opts.HUD {
		r.hud = newHUD(t)
	}
	return r, nil
}

// Upload keeps references to the scene meshes. They must stay unchanged
// afterwards.
func (r *Renderer) Upload(s render.Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.scene = s
	r.loaded = true
	r.segs = make([]projection.Segment, 0, s.Edges())
	return nil
}

// Draw projects the tank with the frame's model matrix and the scenery with
// its fixed one, rasterizes both and presents the framebuffer.
func (r *Renderer) Draw(f render.Frame) error {
	if !r.loaded {
		return render.ErrNotUploaded
	}
	w, h := r.target.Size()
	div := r.opts.PerspectiveDivide
	r.segs = projection.ProjectSegments(r.segs[:0], r.scene.Tank, r.cam.MVP(f.Model), w, h, div)
	if r.scene.Scenery != nil {
		r.segs = projection.ProjectSegments(r.segs, r.scene.Scenery, r.cam.MVP(r.scene.SceneryModel), w, h, div)
	}

	r.target.Clear(r.opts.Background)
	for _, s := range r.segs {
		drawSegment(r.target, s, r.opts.Color)
	}
	if r.hud != nil {
		r.hud.draw(f, "software")
	}
	return r.fb.Present()
}

// Segments returns the segments projected by the last Draw.
func (r *Renderer) Segments() []projection.Segment { return r.segs }

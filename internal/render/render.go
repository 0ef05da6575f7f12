// Package render defines the renderer capability shared by the immediate,
// buffered and software backends.
package render

import (
	"errors"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"tankdemo/internal/mesh"
)

// ErrNotUploaded is returned by Draw before Upload succeeded.
var ErrNotUploaded = errors.New("render: mesh not uploaded")

// Frame is the per-frame input to a renderer.
type Frame struct {
	Model mgl32.Mat4

	// HUD data.
	Position mgl32.Vec3
	Heading  float32
	FPS      float64
}

// Scene is the geometry uploaded once at startup. The tank is drawn with
// Frame.Model; the optional scenery stays fixed at SceneryModel.
type Scene struct {
	Tank         *mesh.Mesh
	Scenery      *mesh.Mesh
	SceneryModel mgl32.Mat4
}

// Validate checks both meshes. Scenery may be nil.
func (s Scene) Validate() error {
	if err := s.Tank.Validate(); err != nil {
		return err
	}
	if s.Scenery != nil {
		return s.Scenery.Validate()
	}
	return nil
}

// Edges returns the edge count over all meshes.
func (s Scene) Edges() int {
	n := 0
	if s.Tank != nil {
		n += len(s.Tank.Edges)
	}
	if s.Scenery != nil {
		n += len(s.Scenery.Edges)
	}
	return n
}

// Renderer draws the scene. Upload is called once at startup; Draw once per
// frame.
type Renderer interface {
	Upload(s Scene) error
	Draw(f Frame) error
}

// ScreenRenderer is a Renderer that paints onto the window surface instead
// of the framebuffer. Draw latches the frame; DrawScreen paints it.
type ScreenRenderer interface {
	Renderer
	DrawScreen(screen *ebiten.Image)
}

// Mat4From64 narrows a simulation matrix for rendering.
func Mat4From64(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// Vec3From64 narrows a simulation vector for rendering.
func Vec3From64(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// RGB builds an opaque color from a config triple.
func RGB(c [3]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}

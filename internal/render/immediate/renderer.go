// Package immediate draws the tank through an emulated fixed-function
// pipeline: the transforms are rebuilt on the matrix stacks every frame and
// each edge is submitted as a line primitive.
package immediate

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tankdemo/internal/mesh"
	"tankdemo/internal/projection"
	"tankdemo/internal/render"
)

// Options controls line appearance.
type Options struct {
	Color      color.RGBA
	Background color.RGBA
	LineWidth  float32
	HUD        bool
}

// Renderer is a render.ScreenRenderer. Draw runs the transform stage and
// latches the clip-space lines; DrawScreen rasterizes them.
type Renderer struct {
	gl   *Context
	cam  projection.Camera
	opts Options

	scene  render.Scene
	loaded bool
	frame  render.Frame
}

var _ render.ScreenRenderer = (*Renderer)(nil)

func New(cam projection.Camera, opts Options) *Renderer {
	if opts.Color == (color.RGBA{}) {
		opts.Color = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	return &Renderer{gl: NewContext(), cam: cam, opts: opts}
}

func (r *Renderer) Upload(s render.Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.scene = s
	r.loaded = true
	return nil
}

func (r *Renderer) Draw(f render.Frame) error {
	if !r.loaded {
		return render.ErrNotUploaded
	}
	r.frame = f
	gl := r.gl
	gl.Reset()

	w, h := projection.HalfExtents(r.cam.FOVYDegrees, r.cam.Aspect, r.cam.Near)
	gl.MatrixMode(Projection)
	gl.LoadIdentity()
	gl.Frustum(-w, w, -h, h, r.cam.Near, r.cam.Far)

	gl.MatrixMode(ModelView)
	gl.LoadIdentity()
	gl.Translate(r.cam.Eye.X(), r.cam.Eye.Y(), r.cam.Eye.Z())
	gl.Rotate(r.cam.PitchDegrees, 1, 0, 0)

	r.emit(r.scene.Tank, f.Model)
	if r.scene.Scenery != nil {
		r.emit(r.scene.Scenery, r.scene.SceneryModel)
	}

	if err := gl.Err(); err != nil {
		return fmt.Errorf("immediate: draw: %w", err)
	}
	return nil
}

// emit submits every edge of m as a line under model.
func (r *Renderer) emit(m *mesh.Mesh, model mgl32.Mat4) {
	gl := r.gl
	gl.PushMatrix()
	gl.MultMatrix(model)
	gl.Begin(Lines)
	for _, e := range m.Edges {
		a, b := m.Vertices[e[0]], m.Vertices[e[1]]
		gl.Vertex(a.X(), a.Y(), a.Z())
		gl.Vertex(b.X(), b.Y(), b.Z())
	}
	gl.End()
	gl.PopMatrix()
}

// DrawScreen applies the viewport transform and strokes the latched lines.
func (r *Renderer) DrawScreen(screen *ebiten.Image) {
	screen.Fill(r.opts.Background)
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()

	lines := r.gl.Lines()
	for i := 0; i+1 < len(lines); i += 2 {
		x0, y0, ok0 := projection.NDCToScreen(lines[i], w, h)
		x1, y1, ok1 := projection.NDCToScreen(lines[i+1], w, h)
		if !ok0 || !ok1 {
			continue
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, r.opts.LineWidth, r.opts.Color, true)
	}

	if r.opts.HUD {
		drawHUD(screen, r.frame, "immediate")
	}
}

// drawHUD prints the status lines with ebiten's debug font.
func drawHUD(screen *ebiten.Image, f render.Frame, backend string) {
	msg := fmt.Sprintf("tank demo [%s]\npos %6.2f %6.2f\nheading %5.1f deg\nfps %4.1f",
		backend, f.Position.X(), f.Position.Y(), mgl32.RadToDeg(f.Heading), f.FPS)
	ebitenutil.DebugPrintAt(screen, msg, 6, 6)
}

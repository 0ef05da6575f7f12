// Package buffered draws the tank from geometry uploaded once: the vertex
// and index buffers are static, only the model matrix changes per frame.
// Lines are widened to quads and filled by a Kage shader.
package buffered

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"tankdemo/internal/mesh"
	"tankdemo/internal/projection"
	"tankdemo/internal/render"
)

//go:embed line.kage
var lineShaderSrc []byte

// Options controls line appearance.
type Options struct {
	Color      color.RGBA
	Background color.RGBA
	LineWidth  float32
	HUD        bool
}

// Renderer is a render.ScreenRenderer backed by static buffers and a shader.
type Renderer struct {
	cam  projection.Camera
	opts Options

	shader  *ebiten.Shader
	buf     *buffers
	scenery *buffers
	// sceneryModel is fixed at upload.
	sceneryModel mgl32.Mat4

	// model is the per-frame uniform.
	model mgl32.Mat4
	frame render.Frame

	dv []ebiten.Vertex
	di []uint16
	op ebiten.DrawTrianglesShaderOptions
}

var _ render.ScreenRenderer = (*Renderer)(nil)

func New(cam projection.Camera, opts Options) *Renderer {
	if opts.Color == (color.RGBA{}) {
		opts.Color = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1.5
	}
	r := &Renderer{cam: cam, opts: opts, model: mgl32.Ident4()}
	r.op.AntiAlias = true
	r.op.Uniforms = map[string]any{
		"Color": []float32{
			float32(opts.Color.R) / 0xFF,
			float32(opts.Color.G) / 0xFF,
			float32(opts.Color.B) / 0xFF,
			float32(opts.Color.A) / 0xFF,
		},
	}
	return r
}

// Upload compiles the shader and builds the static buffers. Buffers whose
// geometry is unchanged since the last upload are kept.
func (r *Renderer) Upload(s render.Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	// Every quad adds four vertices addressed by uint16 indices.
	n := s.Edges()
	if 4*n > math.MaxUint16+1 {
		return fmt.Errorf("buffered: scene has too many edges (%d)", n)
	}
	if r.shader == nil {
		s, err := ebiten.NewShader(lineShaderSrc)
		if err != nil {
			return fmt.Errorf("buffered: compile line shader: %w", err)
		}
		r.shader = s
	}

	r.buf = reuseBuffers(r.buf, s.Tank)
	r.scenery = reuseBuffers(r.scenery, s.Scenery)
	r.sceneryModel = s.SceneryModel
	if cap(r.di) < 6*n {
		r.dv = make([]ebiten.Vertex, 0, 4*n)
		r.di = make([]uint16, 0, 6*n)
	}
	return nil
}

// reuseBuffers returns b when it already holds m's geometry, else fresh
// buffers for m. A nil mesh yields nil.
func reuseBuffers(b *buffers, m *mesh.Mesh) *buffers {
	if m == nil {
		return nil
	}
	fp := m.Fingerprint()
	if b != nil && b.fingerprint == fp {
		return b
	}
	b = newBuffers(m)
	b.fingerprint = fp
	return b
}

func newBuffers(m *mesh.Mesh) *buffers {
	b := &buffers{
		vertices: append([]mgl32.Vec3(nil), m.Vertices...),
		indices:  make([]uint16, 0, 2*len(m.Edges)),
	}
	for _, e := range m.Edges {
		b.indices = append(b.indices, e[0], e[1])
	}
	return b
}

// Draw sets the model uniform for the next DrawScreen.
func (r *Renderer) Draw(f render.Frame) error {
	if r.buf == nil {
		return render.ErrNotUploaded
	}
	r.model = f.Model
	r.frame = f
	return nil
}

func (r *Renderer) DrawScreen(screen *ebiten.Image) {
	screen.Fill(r.opts.Background)
	if r.buf == nil {
		return
	}
	b := screen.Bounds()
	r.runVertexStage(b.Dx(), b.Dy())
	if len(r.di) > 0 {
		screen.DrawTrianglesShader(r.dv, r.di, r.shader, &r.op)
	}
	if r.opts.HUD {
		drawHUD(screen, r.frame)
	}
}

// runVertexStage fills dv and di with the tank under the model uniform and
// the scenery under its fixed model.
func (r *Renderer) runVertexStage(w, h int) {
	r.dv, r.di = expandLines(r.dv[:0], r.di[:0], r.buf, r.cam.MVP(r.model), w, h, r.opts.LineWidth)
	if r.scenery != nil {
		r.dv, r.di = expandLines(r.dv, r.di, r.scenery, r.cam.MVP(r.sceneryModel), w, h, r.opts.LineWidth)
	}
}

package immediate

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankdemo/internal/input"
	"tankdemo/internal/kinematics"
	"tankdemo/internal/mesh"
	"tankdemo/internal/projection"
	"tankdemo/internal/render"
)

func assertMat4InDelta(t *testing.T, want, got mgl32.Mat4, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d", i)
	}
}

func TestStackMatchesKinematicsModel(t *testing.T) {
	tank := kinematics.New()
	for i := 0; i < 20; i++ {
		tank.Update(input.Axes{Forward: 1, Turn: 1}, 0.05, 2*math.Pi, 5)
	}
	s := tank.State()

	gl := NewContext()
	gl.MatrixMode(ModelView)
	gl.Translate(float32(s.Position.X()), float32(s.Position.Y()), float32(s.Position.Z()))
	gl.Rotate(float32(mgl64.RadToDeg(s.RotationZ)), 0, 0, 1)

	assertMat4InDelta(t, render.Mat4From64(tank.ModelMatrix()), gl.Matrix(ModelView), 1e-4)
}

func TestStackMatchesCamera(t *testing.T) {
	cam := projection.DefaultCamera()
	w, h := projection.HalfExtents(cam.FOVYDegrees, cam.Aspect, cam.Near)

	gl := NewContext()
	gl.MatrixMode(Projection)
	gl.Frustum(-w, w, -h, h, cam.Near, cam.Far)
	gl.MatrixMode(ModelView)
	gl.Translate(cam.Eye.X(), cam.Eye.Y(), cam.Eye.Z())
	gl.Rotate(cam.PitchDegrees, 1, 0, 0)

	assertMat4InDelta(t, cam.Projection(), gl.Matrix(Projection), 1e-5)
	assertMat4InDelta(t, cam.View(), gl.Matrix(ModelView), 1e-5)
}

func TestPushPop(t *testing.T) {
	gl := NewContext()
	gl.Translate(1, 2, 3)
	before := gl.Matrix(ModelView)

	gl.PushMatrix()
	gl.Rotate(45, 0, 0, 1)
	assert.NotEqual(t, before, gl.Matrix(ModelView))
	gl.PopMatrix()
	assert.Equal(t, before, gl.Matrix(ModelView))
	require.NoError(t, gl.Err())

	gl.PopMatrix()
	assert.ErrorIs(t, gl.Err(), errStackUnderflow)
	gl.Reset()
	assert.NoError(t, gl.Err())
}

func TestStackIsPerMode(t *testing.T) {
	gl := NewContext()
	gl.MatrixMode(Projection)
	gl.Translate(5, 0, 0)
	assert.Equal(t, mgl32.Ident4(), gl.Matrix(ModelView))
	assert.Equal(t, mgl32.Translate3D(5, 0, 0), gl.Matrix(Projection))
}

func TestBeginEndLines(t *testing.T) {
	gl := NewContext()
	gl.Translate(0, 0, -2)
	gl.Begin(Lines)
	gl.Vertex(0, 0, 0)
	gl.Vertex(1, 0, 0)
	gl.Vertex(2, 0, 0)
	gl.End()

	require.NoError(t, gl.Err())
	lines := gl.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, mgl32.Vec4{0, 0, -2, 1}, lines[0])
	assert.Equal(t, mgl32.Vec4{1, 0, -2, 1}, lines[1])

	gl.End()
	assert.ErrorIs(t, gl.Err(), errNoBegin)
}

func TestRendererDraw(t *testing.T) {
	r := New(projection.DefaultCamera(), Options{})
	assert.ErrorIs(t, r.Draw(render.Frame{Model: mgl32.Ident4()}), render.ErrNotUploaded)

	m := mesh.Tank()
	require.NoError(t, r.Upload(render.Scene{Tank: m}))

	model := mgl32.Translate3D(1, 2, 0).Mul4(mgl32.HomogRotate3DZ(0.3))
	require.NoError(t, r.Draw(render.Frame{Model: model}))

	lines := r.gl.Lines()
	require.Len(t, lines, 2*len(m.Edges))

	mvp := projection.DefaultCamera().MVP(model)
	for i, e := range m.Edges {
		want := mvp.Mul4x1(m.Vertices[e[0]].Vec4(1))
		for j := range want {
			assert.InDelta(t, want[j], lines[2*i][j], 1e-4)
		}
	}
	// The stack is balanced after a frame.
	assertMat4InDelta(t, projection.DefaultCamera().View(), r.gl.Matrix(ModelView), 1e-6)
}

func TestRendererDrawsScenery(t *testing.T) {
	r := New(projection.DefaultCamera(), Options{})
	tank, land := mesh.Tank(), mesh.Landscape()
	scenery := mgl32.Translate3D(0, 10, 0).Mul4(mgl32.Scale3D(20, 20, 20))
	require.NoError(t, r.Upload(render.Scene{Tank: tank, Scenery: land, SceneryModel: scenery}))

	require.NoError(t, r.Draw(render.Frame{Model: mgl32.Translate3D(2, 0, 0)}))
	lines := r.gl.Lines()
	require.Len(t, lines, 2*(len(tank.Edges)+len(land.Edges)))

	mvp := projection.DefaultCamera().MVP(scenery)
	first := 2 * len(tank.Edges)
	want := mvp.Mul4x1(land.Vertices[land.Edges[0][0]].Vec4(1))
	for j := range want {
		assert.InDelta(t, want[j], lines[first][j], 1e-4)
	}
	assertMat4InDelta(t, projection.DefaultCamera().View(), r.gl.Matrix(ModelView), 1e-6)
}

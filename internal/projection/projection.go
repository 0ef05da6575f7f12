// Package projection composes the view and projection transforms used by
// backends that do not own a transform pipeline, and maps the results to
// screen space.
package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"tankdemo/internal/mesh"
)

// Camera holds the fixed projection and view parameters.
type Camera struct {
	FOVYDegrees float32
	Aspect      float32
	Near        float32
	Far         float32

	// Eye is the view translation, applied after the pitch rotation.
	Eye mgl32.Vec3
	// PitchDegrees rotates the world about X before translating. -90 turns
	// the Z-up world into the Y-up screen convention.
	PitchDegrees float32
}

// DefaultCamera matches a 640x480 window looking at the origin from behind.
func DefaultCamera() Camera {
	return Camera{
		FOVYDegrees:  60,
		Aspect:       640.0 / 480.0,
		Near:         0.1,
		Far:          100,
		Eye:          mgl32.Vec3{0, -1, -5},
		PitchDegrees: -90,
	}
}

// Projection builds the perspective frustum.
func (c Camera) Projection() mgl32.Mat4 {
	return Frustum(c.FOVYDegrees, c.Aspect, c.Near, c.Far)
}

// View translates by Eye, then rotates about X by PitchDegrees.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(c.Eye.X(), c.Eye.Y(), c.Eye.Z()).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.PitchDegrees)))
}

// MVP returns projection * view * model.
func (c Camera) MVP(model mgl32.Mat4) mgl32.Mat4 {
	return c.Projection().Mul4(c.View()).Mul4(model)
}

// Frustum builds a symmetric perspective frustum from a vertical field of
// view in degrees.
func Frustum(fovYDegrees, aspect, near, far float32) mgl32.Mat4 {
	width, height := HalfExtents(fovYDegrees, aspect, near)
	return mgl32.Frustum(-width, width, -height, height, near, far)
}

// HalfExtents returns the half width and half height of the near plane.
func HalfExtents(fovYDegrees, aspect, near float32) (width, height float32) {
	tangent := float32(math.Tan(float64(mgl32.DegToRad(fovYDegrees)) / 2))
	height = near * tangent
	return height * aspect, height
}

// ComposeMVP is Camera.MVP with the default -90° pitch.
func ComposeMVP(fovYDegrees, aspect, near, far float32, eye mgl32.Vec3, model mgl32.Mat4) mgl32.Mat4 {
	c := Camera{
		FOVYDegrees:  fovYDegrees,
		Aspect:       aspect,
		Near:         near,
		Far:          far,
		Eye:          eye,
		PitchDegrees: -90,
	}
	return c.MVP(model)
}

// ScreenRemap maps a clip-space position straight to pixels:
// x*w + w/2, y*h + h/2. There is no perspective divide.
func ScreenRemap(p mgl32.Vec4, w, h int) (x, y float32) {
	fw, fh := float32(w), float32(h)
	return p.X()*fw + fw/2, p.Y()*fh + fh/2
}

// NDCToScreen divides by w and applies the viewport transform, with +Y up.
// ok is false for points at or behind the eye.
func NDCToScreen(p mgl32.Vec4, w, h int) (x, y float32, ok bool) {
	if p.W() <= 0 {
		return 0, 0, false
	}
	inv := 1 / p.W()
	nx, ny := p.X()*inv, p.Y()*inv
	x = (nx*0.5 + 0.5) * float32(w-1)
	y = (1 - (ny*0.5 + 0.5)) * float32(h-1)
	return x, y, true
}

// Segment is a screen-space line.
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// ProjectSegments appends one segment per mesh edge to dst. With divide set,
// edges touching a point behind the eye are dropped.
func ProjectSegments(dst []Segment, m *mesh.Mesh, mvp mgl32.Mat4, w, h int, divide bool) []Segment {
	if m == nil {
		return dst
	}
	for _, e := range m.Edges {
		a := mvp.Mul4x1(m.Vertices[e[0]].Vec4(1))
		b := mvp.Mul4x1(m.Vertices[e[1]].Vec4(1))

		var s Segment
		if divide {
			var okA, okB bool
			s.X0, s.Y0, okA = NDCToScreen(a, w, h)
			s.X1, s.Y1, okB = NDCToScreen(b, w, h)
			if !okA || !okB {
				continue
			}
		} else {
			s.X0, s.Y0 = ScreenRemap(a, w, h)
			s.X1, s.Y1 = ScreenRemap(b, w, h)
		}
		dst = append(dst, s)
	}
	return dst
}

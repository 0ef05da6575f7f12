// Package kinematics integrates the tank's planar motion from the control
// axes and derives its model transform.
package kinematics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"tankdemo/internal/input"
)

const fullTurn = 2 * math.Pi

// localForward is the mesh's forward axis in body space.
var localForward = mgl64.Vec3{0, 1, 0}

// State is the tank pose. RotationZ is radians in [0, 2π).
type State struct {
	Position  mgl64.Vec3
	RotationZ float64
}

// Tank owns the pose and the model matrix derived from it.
type Tank struct {
	state State
	model mgl64.Mat4
}

// New returns a tank at the origin facing +Y.
func New() *Tank {
	t := &Tank{}
	t.Reset(State{})
	return t
}

// Reset places the tank at s, wrapping the rotation.
func (t *Tank) Reset(s State) {
	s.RotationZ = WrapAngle(s.RotationZ)
	t.state = s
	t.model = modelMatrix(s)
}

// State returns the current pose.
func (t *Tank) State() State { return t.state }

// ModelMatrix returns the transform computed by the last Update or Reset.
func (t *Tank) ModelMatrix() mgl64.Mat4 { return t.model }

// Heading is the world-space forward direction for the current rotation.
func (t *Tank) Heading() mgl64.Vec3 {
	return HeadingFor(t.state.RotationZ)
}

// Update advances the pose by dt seconds. rotSpeed is radians per second,
// linSpeed units per second.
func (t *Tank) Update(axes input.Axes, dt, rotSpeed, linSpeed float64) {
	s := t.state

	s.RotationZ = WrapAngle(s.RotationZ + axes.Turn*rotSpeed*dt)

	// dt is folded into the velocity once; the position step below adds it as is.
	velocity := mgl64.Vec3{0, axes.Forward * linSpeed * dt, 0}
	velocity = mgl64.TransformNormal(velocity, mgl64.HomogRotate3DZ(s.RotationZ))
	s.Position = s.Position.Add(velocity)

	t.state = s
	t.model = modelMatrix(s)
}

// HeadingFor returns the world forward direction for a rotation about Z.
func HeadingFor(rotationZ float64) mgl64.Vec3 {
	return mgl64.TransformNormal(localForward, mgl64.HomogRotate3DZ(rotationZ))
}

// WrapAngle normalizes r into [0, 2π).
func WrapAngle(r float64) float64 {
	r = math.Mod(r, fullTurn)
	if r < 0 {
		r += fullTurn
	}
	// r+2π can round up to exactly 2π for tiny negative r.
	if r >= fullTurn {
		r = 0
	}
	return r
}

// modelMatrix rotates in body space, then translates to the world position.
func modelMatrix(s State) mgl64.Mat4 {
	p := s.Position
	return mgl64.Translate3D(p.X(), p.Y(), p.Z()).Mul4(mgl64.HomogRotate3DZ(s.RotationZ))
}

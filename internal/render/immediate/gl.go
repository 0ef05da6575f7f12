package immediate

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// MatrixMode selects the stack affected by matrix operations.
type MatrixMode int

const (
	ModelView MatrixMode = iota
	Projection
)

// Primitive is the assembly mode passed to Begin.
type Primitive int

const (
	Lines Primitive = iota
)

var (
	errStackOverflow  = errors.New("immediate: matrix stack overflow")
	errStackUnderflow = errors.New("immediate: matrix stack underflow")
	errNestedBegin    = errors.New("immediate: Begin inside Begin/End")
	errNoBegin        = errors.New("immediate: End without Begin")
)

const maxStackDepth = 32

// Context emulates the fixed-function transform pipeline: a modelview and a
// projection stack, and Begin/Vertex/End primitive assembly. Vertices are
// transformed to clip space when submitted, like the classic pipeline.
//
// The first failing call latches an error; Err reports it.
type Context struct {
	mode   MatrixMode
	stacks [2][]mgl32.Mat4

	prim    Primitive
	inBegin bool
	pending []mgl32.Vec4

	// lines holds clip-space endpoints, two per line.
	lines []mgl32.Vec4
	err   error
}

// NewContext returns a context with identity on both stacks.
func NewContext() *Context {
	c := &Context{}
	for i := range c.stacks {
		c.stacks[i] = append(make([]mgl32.Mat4, 0, 4), mgl32.Ident4())
	}
	return c
}

func (c *Context) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first error since the last Reset.
func (c *Context) Err() error { return c.err }

func (c *Context) top() *mgl32.Mat4 {
	s := c.stacks[c.mode]
	return &s[len(s)-1]
}

func (c *Context) MatrixMode(m MatrixMode) { c.mode = m }

func (c *Context) LoadIdentity() { *c.top() = mgl32.Ident4() }

// LoadMatrix replaces the current matrix.
func (c *Context) LoadMatrix(m mgl32.Mat4) { *c.top() = m }

// MultMatrix post-multiplies the current matrix by m.
func (c *Context) MultMatrix(m mgl32.Mat4) {
	t := c.top()
	*t = t.Mul4(m)
}

func (c *Context) Frustum(left, right, bottom, top, near, far float32) {
	c.MultMatrix(mgl32.Frustum(left, right, bottom, top, near, far))
}

func (c *Context) Translate(x, y, z float32) {
	c.MultMatrix(mgl32.Translate3D(x, y, z))
}

// Rotate rotates by angle degrees about the axis (x, y, z).
func (c *Context) Rotate(angle, x, y, z float32) {
	axis := mgl32.Vec3{x, y, z}
	if axis.Len() == 0 {
		return
	}
	c.MultMatrix(mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis.Normalize()))
}

func (c *Context) PushMatrix() {
	s := c.stacks[c.mode]
	if len(s) >= maxStackDepth {
		c.setErr(errStackOverflow)
		return
	}
	c.stacks[c.mode] = append(s, s[len(s)-1])
}

func (c *Context) PopMatrix() {
	s := c.stacks[c.mode]
	if len(s) <= 1 {
		c.setErr(errStackUnderflow)
		return
	}
	c.stacks[c.mode] = s[:len(s)-1]
}

// Matrix returns the top of the stack for mode.
func (c *Context) Matrix(mode MatrixMode) mgl32.Mat4 {
	s := c.stacks[mode]
	return s[len(s)-1]
}

func (c *Context) Begin(p Primitive) {
	if c.inBegin {
		c.setErr(errNestedBegin)
		return
	}
	c.prim = p
	c.inBegin = true
	c.pending = c.pending[:0]
}

// Vertex transforms (x, y, z) by projection * modelview.
func (c *Context) Vertex(x, y, z float32) {
	if !c.inBegin {
		return
	}
	mvp := c.Matrix(Projection).Mul4(c.Matrix(ModelView))
	c.pending = append(c.pending, mvp.Mul4x1(mgl32.Vec4{x, y, z, 1}))
}

// End assembles the pending vertices. A trailing odd vertex is dropped.
func (c *Context) End() {
	if !c.inBegin {
		c.setErr(errNoBegin)
		return
	}
	c.inBegin = false
	n := len(c.pending) &^ 1
	c.lines = append(c.lines, c.pending[:n]...)
	c.pending = c.pending[:0]
}

// Lines returns the clip-space endpoints assembled since the last Reset.
func (c *Context) Lines() []mgl32.Vec4 { return c.lines }

// Reset drops assembled geometry and the latched error. Matrices are kept.
func (c *Context) Reset() {
	c.lines = c.lines[:0]
	c.pending = c.pending[:0]
	c.inBegin = false
	c.err = nil
}

package buffered

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"tankdemo/internal/projection"
)

// buffers is the static geometry built once at upload: positions and a
// line index list, two indices per edge.
type buffers struct {
	vertices    []mgl32.Vec3
	indices     []uint16
	fingerprint uint64
}

// expandLines is the vertex stage. Each indexed line is transformed by mvp,
// mapped to pixels and widened into a quad of two triangles. Lines touching
// a point behind the eye are dropped. The results are appended to dv and di.
func expandLines(dv []ebiten.Vertex, di []uint16, b *buffers, mvp mgl32.Mat4, w, h int, width float32) ([]ebiten.Vertex, []uint16) {
	half := width / 2
	for i := 0; i+1 < len(b.indices); i += 2 {
		a := mvp.Mul4x1(b.vertices[b.indices[i]].Vec4(1))
		c := mvp.Mul4x1(b.vertices[b.indices[i+1]].Vec4(1))
		x0, y0, ok0 := projection.NDCToScreen(a, w, h)
		x1, y1, ok1 := projection.NDCToScreen(c, w, h)
		if !ok0 || !ok1 {
			continue
		}

		d := mgl32.Vec2{x1 - x0, y1 - y0}
		if d.Len() == 0 {
			d = mgl32.Vec2{1, 0}
		}
		n := mgl32.Vec2{-d.Y(), d.X()}.Normalize().Mul(half)

		base := uint16(len(dv))
		dv = append(dv,
			quadVertex(x0+n.X(), y0+n.Y()),
			quadVertex(x0-n.X(), y0-n.Y()),
			quadVertex(x1+n.X(), y1+n.Y()),
			quadVertex(x1-n.X(), y1-n.Y()),
		)
		di = append(di, base, base+1, base+2, base+1, base+3, base+2)
	}
	return dv, di
}

func quadVertex(x, y float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	}
}

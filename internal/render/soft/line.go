package soft

import (
	"image/color"
	"math"

	"tankdemo/internal/projection"
)

// Outcodes for clipSegment.
const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

func outcode(x, y, maxX, maxY float32) int {
	var c int
	if x < 0 {
		c |= outLeft
	} else if x > maxX {
		c |= outRight
	}
	if y < 0 {
		c |= outTop
	} else if y > maxY {
		c |= outBottom
	}
	return c
}

// clipSegment trims s to the pixel rectangle [0,w-1]x[0,h-1]
// (Cohen-Sutherland). ok is false when nothing is visible.
func clipSegment(s projection.Segment, w, h int) (projection.Segment, bool) {
	if w <= 0 || h <= 0 {
		return s, false
	}
	for _, v := range [4]float32{s.X0, s.Y0, s.X1, s.Y1} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return s, false
		}
	}
	maxX, maxY := float32(w-1), float32(h-1)
	c0 := outcode(s.X0, s.Y0, maxX, maxY)
	c1 := outcode(s.X1, s.Y1, maxX, maxY)
	for {
		switch {
		case c0|c1 == 0:
			return s, true
		case c0&c1 != 0:
			return s, false
		}

		c := c0
		if c == 0 {
			c = c1
		}
		dx, dy := s.X1-s.X0, s.Y1-s.Y0
		var x, y float32
		switch {
		case c&outBottom != 0:
			x, y = s.X0+dx*(maxY-s.Y0)/dy, maxY
		case c&outTop != 0:
			x, y = s.X0+dx*(0-s.Y0)/dy, 0
		case c&outRight != 0:
			x, y = maxX, s.Y0+dy*(maxX-s.X0)/dx
		default:
			x, y = 0, s.Y0+dy*(0-s.X0)/dx
		}
		if c == c0 {
			s.X0, s.Y0 = x, y
			c0 = outcode(x, y, maxX, maxY)
		} else {
			s.X1, s.Y1 = x, y
			c1 = outcode(x, y, maxX, maxY)
		}
	}
}

// drawLine is Bresenham over integer pixel coordinates.
func drawLine(t Target, x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawSegment clips s to t and rasterizes what is left.
func drawSegment(t Target, s projection.Segment, c color.RGBA) {
	w, h := t.Size()
	s, ok := clipSegment(s, w, h)
	if !ok {
		return
	}
	drawLine(t, round(s.X0), round(s.Y0), round(s.X1), round(s.Y1), c)
}

func round(v float32) int { return int(math.Floor(float64(v) + 0.5)) }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package soft

import (
	"image/color"

	"tankdemo/hal"
)

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c color.RGBA)
	Clear(c color.RGBA)
}

// RGB565Target renders into an RGB565 framebuffer buffer.
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

// FramebufferTarget wraps fb, or returns nil for non-RGB565 framebuffers.
func FramebufferTarget(fb hal.Framebuffer) *RGB565Target {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	return &RGB565Target{
		Buf:    fb.Buffer(),
		Stride: fb.StrideBytes(),
		W:      fb.Width(),
		H:      fb.Height(),
	}
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) valid() bool {
	return t != nil && t.Buf != nil && t.Stride > 0 && t.W > 0 && t.H > 0
}

func (t *RGB565Target) Clear(c color.RGBA) {
	if !t.valid() {
		return
	}
	p := rgb565From888(c.R, c.G, c.B)
	lo := byte(p)
	hi := byte(p >> 8)
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*2
			if off+1 >= len(t.Buf) {
				return
			}
			t.Buf[off] = lo
			t.Buf[off+1] = hi
		}
	}
}

func (t *RGB565Target) SetPixel(x, y int, c color.RGBA) {
	if !t.valid() {
		return
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*2
	if off+1 >= len(t.Buf) {
		return
	}
	p := rgb565From888(c.R, c.G, c.B)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

// At reads a pixel back, expanded to 8-bit channels.
func (t *RGB565Target) At(x, y int) color.RGBA {
	if !t.valid() || x < 0 || y < 0 || x >= t.W || y >= t.H {
		return color.RGBA{}
	}
	off := y*t.Stride + x*2
	if off+1 >= len(t.Buf) {
		return color.RGBA{}
	}
	p := uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8
	return color.RGBA{
		R: uint8(((p >> 11) & 0x1F) * 255 / 31),
		G: uint8(((p >> 5) & 0x3F) * 255 / 63),
		B: uint8((p & 0x1F) * 255 / 31),
		A: 0xFF,
	}
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

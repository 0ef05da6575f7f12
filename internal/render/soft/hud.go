package soft

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"tankdemo/internal/render"
)

var (
	hudTitle = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	hudText  = color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF}
)

// hud writes status text into the target with tinyfont.
type hud struct {
	d          *targetDisplayer
	font       tinyfont.Fonter
	lineHeight int16
}

func newHUD(t Target) *hud {
	return &hud{
		d:          &targetDisplayer{t: t},
		font:       &proggy.TinySZ8pt7b,
		lineHeight: 10,
	}
}

func (h *hud) draw(f render.Frame, backend string) {
	lines := [...]string{
		"tank demo [" + backend + "]",
		fmt.Sprintf("pos %6.2f %6.2f", f.Position.X(), f.Position.Y()),
		fmt.Sprintf("heading %5.1f deg", mgl32.RadToDeg(f.Heading)),
		fmt.Sprintf("fps %4.1f", f.FPS),
	}
	for i, s := range lines {
		c := hudText
		if i == 0 {
			c = hudTitle
		}
		y := int16(6) + int16(i+1)*h.lineHeight
		tinyfont.WriteLine(h.d, h.font, 6, y, s, c)
	}
}

// targetDisplayer adapts a Target to tinyfont.Displayer.
type targetDisplayer struct {
	t Target
}

func (d *targetDisplayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d *targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), c)
}

func (d *targetDisplayer) Display() error { return nil }

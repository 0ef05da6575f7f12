package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"tankdemo/internal/config"
	"tankdemo/internal/render/soft"
)

// recoverFrame turns a panic inside Step into an error. The panic and its
// stack are logged, and for the software backend also painted into the
// framebuffer so the last frame shows what happened.
func (d *Demo) recoverFrame(err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()
	d.log.Error("frame panic",
		zap.Uint64("frame", d.stats.frames),
		zap.Any("panic", v),
		zap.ByteString("stack", stack),
	)
	d.paintPanic(v, stack)
	*err = fmt.Errorf("app: panic in frame %d: %v", d.stats.frames, v)
}

func (d *Demo) paintPanic(v any, stack []byte) {
	if d.cfg.Renderer != config.RendererSoftware {
		return
	}
	disp := d.h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	t := soft.FramebufferTarget(fb)
	if t == nil {
		return
	}
	t.Clear(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	font := &proggy.TinySZ8pt7b
	_, outbox := tinyfont.LineWidth(font, "0")
	cols := int16(1)
	if outbox > 0 {
		cols = int16(t.W / int(outbox))
	}
	const lineHeight = 10

	lines := []string{"Tank Demo Panic:", fmt.Sprintf("frame: %d", d.stats.frames), fmt.Sprintf("panic: %v", v), "stack:"}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}

	out := panicDisplay{t: t}
	fg := color.RGBA{A: 0xFF}
	y := int16(lineHeight)
	for _, line := range lines {
		for len(line) > 0 {
			if int(y) > t.H {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(out, font, 0, y, chunk, fg)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

type panicDisplay struct {
	t *soft.RGB565Target
}

func (d panicDisplay) Size() (x, y int16) { return int16(d.t.W), int16(d.t.H) }

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) { d.t.SetPixel(int(x), int(y), c) }

func (d panicDisplay) Display() error { return nil }

// takeRunes splits s after n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}

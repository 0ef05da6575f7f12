package hal

import (
	"errors"
	"image"

	"tankdemo/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
	TPS    int

	// Framebuffer blits the HAL framebuffer to the window every frame. Loops
	// that paint straight onto the window surface leave it off.
	Framebuffer bool
}

// Painter is implemented by loops that draw onto the window surface directly.
type Painter interface {
	Paint(screen *ebiten.Image)
}

// RunWindow opens a desktop window, steps the loop at cfg.TPS and presents
// frames. It blocks until the window closes or the loop returns ErrQuit.
func RunWindow(cfg WindowConfig, newLoop func(HAL) (Loop, error)) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 30
	}
	h := New(HostConfig{Width: cfg.Width, Height: cfg.Height}).(*hostHAL)
	loop, err := newLoop(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, loop: loop, blit: cfg.Framebuffer}
	if p, ok := loop.(Painter); ok {
		g.painter = p
	}
	title := cfg.Title
	if title == "" {
		title = "Tank Demo"
	}
	ebiten.SetWindowTitle(title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	loop    Loop
	painter Painter
	blit    bool

	img   *image.RGBA
	fbImg *ebiten.Image
	seen  uint64
}

func (g *hostGame) Update() error {
	g.h.pollInput()
	g.h.advanceClock()
	if err := g.loop.Step(); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.blit {
		g.drawFramebuffer(screen)
	}
	if g.painter != nil {
		g.painter.Paint(screen)
	}
}

func (g *hostGame) drawFramebuffer(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.seen = 0
	}

	// Only re-upload when the loop presented a new frame.
	if n := fb.frames(); n != g.seen {
		fb.expandRGBA(g.img.Pix)
		g.fbImg.WritePixels(g.img.Pix)
		g.seen = n
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}

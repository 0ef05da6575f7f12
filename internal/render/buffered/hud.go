package buffered

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"tankdemo/internal/render"
)

func drawHUD(screen *ebiten.Image, f render.Frame) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"tank demo [buffered]\npos %6.2f %6.2f\nheading %5.1f deg\nfps %4.1f",
		f.Position.X(), f.Position.Y(), mgl32.RadToDeg(f.Heading), f.FPS), 6, 6)
}

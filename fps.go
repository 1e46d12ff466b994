package glint

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefresh = 0.5

// fpsOverlay draws the current FPS and TPS. The text is re-rendered about
// every half second into a small cached image.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	stale   bool
	text    string
	op      ebiten.DrawImageOptions
}

// update accumulates dt and marks the readout stale once per refresh period.
func (f *fpsOverlay) update(dt float64) {
	f.elapsed += dt
	if f.text != "" && f.elapsed < fpsRefresh {
		return
	}
	f.elapsed = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	f.stale = true
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.text == "" {
		return
	}
	if f.img == nil {
		// 100x32 fits "FPS: 60.0\nTPS: 60.0".
		f.img = ebiten.NewImage(100, 32)
		f.stale = true
	}
	if f.stale {
		f.stale = false
		f.img.Clear()
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, f.text)
	}
	f.op.GeoM.Reset()
	screen.DrawImage(f.img, &f.op)
}

func (f *fpsOverlay) dispose() {
	if f.img != nil {
		f.img.Deallocate()
		f.img = nil
	}
}

package confetti

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefresh is how often, in seconds, the debug HUD text is rebuilt.
const hudRefresh = 0.5

// debugHUD shows FPS, TPS and live burst counts in the top-left corner of a
// Stage in debug mode.
type debugHUD struct {
	img   *ebiten.Image
	text  string
	since float64
	dirty bool
}

func newDebugHUD() *debugHUD {
	// since starts past the threshold so the first update fills the text.
	return &debugHUD{since: hudRefresh}
}

// update rebuilds the text at most every hudRefresh seconds.
func (h *debugHUD) update(dt float64, layers []*BurstController) {
	h.since += dt
	if h.since < hudRefresh {
		return
	}
	h.since = 0

	var emitters, particles, pending int
	for _, c := range layers {
		st := c.Scene().Stats()
		emitters += st.Emitters
		particles += st.Particles
		pending += c.Pending()
	}
	h.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nbursts: %d (%d pending)\nparticles: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), emitters, pending, particles)
	h.dirty = true
}

func (h *debugHUD) draw(screen *ebiten.Image) {
	if h.text == "" {
		return
	}
	if h.img == nil {
		// 160x64 fits four lines of the debug font.
		h.img = ebiten.NewImage(160, 64)
		h.dirty = true
	}
	if h.dirty {
		h.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.img, h.text)
		h.dirty = false
	}
	screen.DrawImage(h.img, nil)
}

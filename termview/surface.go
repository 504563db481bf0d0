// Package termview draws confetti scenes into a terminal through tcell.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/confetti"
)

// cellAspect is the height/width ratio of a terminal cell.
const cellAspect = 2.0

// glyphs are chosen by particle rotation so tumbling confetti flickers
// between edge-on and face-on shapes.
var glyphs = []rune{'▬', '▮', '▪', '▰'}

// Surface renders projected particles as coloured cells. Each cell holds at
// most one particle; nearer particles overwrite farther ones.
type Surface struct {
	screen tcell.Screen
	// Background is the style of empty cells.
	Background tcell.Style
}

// New creates a Surface drawing onto screen.
func New(screen tcell.Screen) *Surface {
	return &Surface{screen: screen, Background: tcell.StyleDefault}
}

// Render clears the screen and draws the scenes in order, so later scenes
// cover earlier ones. It does not call Show.
func (s *Surface) Render(scenes ...*confetti.SceneGraph) int {
	w, h := s.screen.Size()
	s.screen.Fill(' ', s.Background)
	if w == 0 || h == 0 {
		return 0
	}

	// Project into a viewport with square pixels, then squash rows.
	vp := confetti.Rect{Width: float64(w), Height: float64(h) * cellAspect}
	drawn := 0
	for _, scene := range scenes {
		if scene == nil {
			continue
		}
		scene.VisitParticles(vp, func(p confetti.ProjectedParticle) {
			x := int(p.X)
			y := int(p.Y / cellAspect)
			if x < 0 || x >= w || y < 0 || y >= h {
				return
			}
			style := s.Background.Foreground(particleColor(p.Color))
			s.screen.SetContent(x, y, glyph(p.Rotation), nil, style)
			drawn++
		})
	}
	return drawn
}

// particleColor flattens a tinted, translucent particle colour onto black.
func particleColor(c confetti.Color) tcell.Color {
	a := math.Max(0, math.Min(1, c.A))
	return tcell.NewRGBColor(channel(c.R*a), channel(c.G*a), channel(c.B*a))
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func glyph(rot float64) rune {
	i := int(math.Floor(rot/(math.Pi/2))) % len(glyphs)
	if i < 0 {
		i += len(glyphs)
	}
	return glyphs[i]
}

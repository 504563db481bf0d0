package confetti

import (
	"cmp"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// blurAlphaLoss and blurGrowth control how strongly depth of field softens
// particles of a Blurred profile at full blur.
const (
	blurAlphaLoss = 0.35
	blurGrowth    = 0.25
)

// ProjectedParticle is one live particle mapped into viewport space.
type ProjectedParticle struct {
	// X and Y are the particle centre in viewport pixels.
	X, Y float64
	// Size is the particle width in pixels.
	Size float64
	// Rotation is the in-plane rotation in radians.
	Rotation float64
	// Color is the lit tint; A includes the emitter fade and blur.
	Color Color
	// Depth is the distance in front of the camera.
	Depth float64
	// Blur is the depth-of-field softening in [0, 1].
	Blur    float64
	Variant Variant
	Image   *ebiten.Image
}

// VisitParticles projects every live particle through the scene camera into
// vp and calls fn for each visible one, farthest first.
func (s *SceneGraph) VisitParticles(vp Rect, fn func(ProjectedParticle)) {
	s.projected = s.projectParticles(vp, s.projected[:0])
	for i := range s.projected {
		fn(s.projected[i])
	}
}

func (s *SceneGraph) projectParticles(vp Rect, out []ProjectedParticle) []ProjectedParticle {
	if s.disposed {
		return out
	}
	cam := s.Camera()
	light := s.light.light

	// Far anchor first so equal depths keep background particles behind.
	for _, a := range []*Node{s.far, s.near} {
		for _, e := range a.emitters {
			p := e.profile
			for i := 0; i < e.alive; i++ {
				pt := &e.particles[i]
				x, y, depth, ok := cam.Project(pt.pos, vp)
				if !ok {
					continue
				}
				size := p.ParticleSize * cam.PixelScale(depth, vp.Height)
				if x < vp.X-size || x > vp.X+vp.Width+size || y < vp.Y-size || y > vp.Y+vp.Height+size {
					continue
				}

				c := pt.color
				if p.LightingEnabled {
					sin, cos := math.Sincos(pt.rot)
					shade := light.Shade(Vec3{0, sin, cos})
					c.R *= shade
					c.G *= shade
					c.B *= shade
				}
				c.A *= e.opacity

				var blur float64
				if p.Blurred {
					blur = cam.Blur(depth)
					c.A *= 1 - blurAlphaLoss*blur
					size *= 1 + blurGrowth*blur
				}
				if c.A <= 0 {
					continue
				}

				out = append(out, ProjectedParticle{
					X:        x,
					Y:        y,
					Size:     size,
					Rotation: pt.rot,
					Color:    c,
					Depth:    depth,
					Blur:     blur,
					Variant:  p.Variant,
					Image:    p.Image,
				})
			}
		}
	}
	slices.SortStableFunc(out, func(a, b ProjectedParticle) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return out
}

// Draw renders every live particle onto screen, using the whole image as
// the viewport.
func (s *SceneGraph) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	vp := Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
	var op ebiten.DrawImageOptions
	s.VisitParticles(vp, func(pp ProjectedParticle) {
		img := pp.Image
		if img == nil {
			return
		}
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		if w == 0 || h == 0 {
			return
		}
		k := pp.Size / float64(w)

		op.GeoM.Reset()
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Scale(k, k)
		op.GeoM.Rotate(pp.Rotation)
		op.GeoM.Translate(pp.X, pp.Y)

		a := float32(pp.Color.A)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(pp.Color.R)*a, float32(pp.Color.G)*a, float32(pp.Color.B)*a, a)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, &op)
	})
}

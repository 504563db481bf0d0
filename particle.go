package confetti

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// gravityAccel is the downward acceleration applied when a profile has
	// GravityEnabled, in world units per second squared.
	gravityAccel = 9.8
	// maxFadeDuration bounds the fade-out at the end of an emitter's life.
	maxFadeDuration = 1.0
)

// particle holds per-particle simulation state. Unexported; managed by ParticleEmitter.
type particle struct {
	pos    Vec3
	vel    Vec3
	rot    float64 // radians
	angVel float64 // radians per second
	life   float64 // remaining lifetime in seconds
	mass   float64
	color  Color
}

// emitterIDCounter is a plain counter (no atomic; the engine is single-threaded).
var emitterIDCounter uint32

// ParticleEmitter is one burst-capable emission source created from a
// profile. It owns its lifetime counter; the SceneGraph advances it while it
// is attached to an anchor.
type ParticleEmitter struct {
	id        uint32
	profile   *EmitterProfile
	particles []particle
	alive     int
	spawned   int
	emitAccum float64
	elapsed   float64

	anchor *Node
	origin Vec3
	spent  bool

	opacity   float64
	fade      *gween.Tween
	fadeStart float64

	rng *rand.Rand
}

// NewParticleEmitter allocates emission state for profile. It does not emit
// until attached to an anchor.
func NewParticleEmitter(profile *EmitterProfile) *ParticleEmitter {
	if profile == nil {
		panic("confetti: nil emitter profile")
	}
	emitterIDCounter++
	fadeDur := math.Min(maxFadeDuration, profile.LifeSpan-profile.EmissionDuration)
	if fadeDur < 0 {
		fadeDur = 0
	}
	return &ParticleEmitter{
		id:        emitterIDCounter,
		profile:   profile,
		particles: make([]particle, profile.MaxParticles()),
		opacity:   1,
		fade:      gween.New(1, 0, float32(fadeDur), ease.InQuad),
		fadeStart: profile.LifeSpan - fadeDur,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// ID returns the emitter's process-unique identifier.
func (e *ParticleEmitter) ID() uint32 { return e.id }

// Profile returns a copy of the emitter's profile.
func (e *ParticleEmitter) Profile() EmitterProfile { return *e.profile }

// Variant returns the profile variant.
func (e *ParticleEmitter) Variant() Variant { return e.profile.Variant }

// Anchor returns the node the emitter is attached to, or nil.
func (e *ParticleEmitter) Anchor() *Node { return e.anchor }

// Attached reports whether the emitter is currently hosted by an anchor.
func (e *ParticleEmitter) Attached() bool { return e.anchor != nil }

// Elapsed returns the seconds since the emitter was attached.
func (e *ParticleEmitter) Elapsed() float64 { return e.elapsed }

// Emitting reports whether the emitter is attached and still inside its
// emission window.
func (e *ParticleEmitter) Emitting() bool {
	return e.anchor != nil && e.elapsed < e.profile.EmissionDuration
}

// IsExpired reports whether elapsed seconds reach the profile's life span.
func (e *ParticleEmitter) IsExpired(elapsed float64) bool {
	return elapsed >= e.profile.LifeSpan
}

// Expired reports IsExpired for the emitter's own elapsed time.
func (e *ParticleEmitter) Expired() bool { return e.IsExpired(e.elapsed) }

// AliveCount returns the number of live particles.
func (e *ParticleEmitter) AliveCount() int { return e.alive }

// Spawned returns the number of particles born since attach.
func (e *ParticleEmitter) Spawned() int { return e.spawned }

// Opacity returns the emitter-wide fade factor in [0, 1].
func (e *ParticleEmitter) Opacity() float64 { return e.opacity }

// attach starts a burst at the anchor's position. Called by SceneGraph.
func (e *ParticleEmitter) attach(anchor *Node) {
	e.anchor = anchor
	e.origin = anchor.WorldPosition()
	e.elapsed = 0
	e.emitAccum = 0
	e.alive = 0
	e.spawned = 0
	e.opacity = 1
	e.fade.Reset()
}

// detach releases the particle pool. A detached emitter cannot be attached
// again. Called by SceneGraph.
func (e *ParticleEmitter) detach() {
	e.anchor = nil
	e.spent = true
	e.alive = 0
	e.particles = nil
}

// update advances the burst by dt seconds: ages and moves live particles,
// then births new ones for the part of dt inside the emission window.
func (e *ParticleEmitter) update(dt float64) {
	if e.anchor == nil || dt <= 0 {
		return
	}
	p := e.profile
	prev := e.elapsed
	e.elapsed += dt

	var gy float64
	if p.GravityEnabled {
		gy = -gravityAccel * dt
	}

	i := 0
	for i < e.alive {
		pt := &e.particles[i]
		pt.life -= dt
		if pt.life <= 0 {
			// Swap with last alive particle.
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}
		pt.vel.Y += gy
		drag := 1 - p.Damping/pt.mass*dt
		if drag < 0 {
			drag = 0
		}
		pt.vel = pt.vel.Scale(drag)
		pt.pos = pt.pos.Add(pt.vel.Scale(dt))
		pt.rot += pt.angVel * dt
		i++
	}

	if emitEnd := math.Min(e.elapsed, p.EmissionDuration); emitEnd > prev && p.BirthRate > 0 {
		e.emitAccum += p.BirthRate * (emitEnd - prev)
		for e.emitAccum >= 1.0 {
			e.emitAccum -= 1.0
			if e.alive < len(e.particles) {
				e.spawnParticle()
			}
		}
	}

	if e.elapsed > e.fadeStart {
		step := e.elapsed - math.Max(prev, e.fadeStart)
		v, _ := e.fade.Update(float32(step))
		e.opacity = clamp01(float64(v))
	}
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
func (e *ParticleEmitter) spawnParticle() {
	p := e.profile
	pt := &e.particles[e.alive]

	offX := (e.rng.Float64() - 0.5) * p.Shape.Width
	offZ := (e.rng.Float64() - 0.5) * p.Shape.Height
	pt.pos = e.origin.Add(Vec3{X: offX, Z: offZ})

	speed := Around(p.Velocity, p.VelocityVariation).Random(e.rng)
	pt.vel = coneDirection(p.EmittingDirection, degToRad(p.SpreadAngle), e.rng).Scale(speed)

	pt.rot = degToRad(Around(p.ParticleAngle, p.ParticleAngleVariation).Random(e.rng))
	pt.angVel = degToRad(Around(p.AngularVelocity, p.AngularVelocityVariation).Random(e.rng))
	pt.life = p.LifeSpan
	pt.mass = math.Max(0.01, Around(p.Mass, p.MassVariation).Random(e.rng))
	pt.color = jitterColor(p.BaseColor, p.ColorVariation, e.rng)

	e.alive++
	e.spawned++
}

// coneDirection returns a unit vector within halfAngle radians of axis.
// A half-angle of π covers the whole sphere.
func coneDirection(axis Vec3, halfAngle float64, rng *rand.Rand) Vec3 {
	axis = axis.Normalize()
	if axis.Len() == 0 {
		axis = Vec3{0, -1, 0}
	}
	helper := Vec3{1, 0, 0}
	if math.Abs(axis.X) > 0.9 {
		helper = Vec3{0, 0, 1}
	}
	u := cross(axis, helper).Normalize()
	w := cross(axis, u)

	theta := rng.Float64() * halfAngle
	phi := rng.Float64() * 2 * math.Pi
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	return axis.Scale(ct).Add(u.Scale(st * cp)).Add(w.Scale(st * sp))
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// jitterColor varies base in HSV space by up to half of each jitter range in
// either direction.
func jitterColor(base Color, j ColorJitter, rng *rand.Rand) Color {
	h, s, v := colorful.Color{R: base.R, G: base.G, B: base.B}.Hsv()
	h = math.Mod(h+(rng.Float64()-0.5)*j.Hue+360, 360)
	s = clamp01(s + (rng.Float64()-0.5)*j.Saturation)
	v = clamp01(v + (rng.Float64()-0.5)*j.Brightness)
	c := colorful.Hsv(h, s, v).Clamped()
	a := clamp01(base.A + (rng.Float64()-0.5)*j.Alpha)
	return Color{R: c.R, G: c.G, B: c.B, A: a}
}

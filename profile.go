package confetti

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// ColorJitter is the per-particle random variation applied to the base color,
// expressed as full ranges: hue in degrees, the rest in [0, 1].
type ColorJitter struct {
	Hue, Saturation, Brightness, Alpha float64
}

// PlaneShape is the rectangular emitter surface, width along X and height
// along Z, centred on the anchor.
type PlaneShape struct {
	Width, Height float64
}

// EmitterProfile is the immutable parameter set describing one visual variant
// of confetti. Profiles are values; a *EmitterProfile handed to an emitter is
// never written to.
type EmitterProfile struct {
	Variant Variant

	// BirthRate is the number of particles born per second while emitting.
	BirthRate float64
	// SpreadAngle is the half-angle in degrees of the emission cone around
	// EmittingDirection.
	SpreadAngle float64
	// EmittingDirection is the cone axis in world space.
	EmittingDirection Vec3
	// Shape is the surface particles are born on.
	Shape PlaneShape

	// ImageName is the asset looked up to fill Image.
	ImageName string
	// Image is the sprite drawn for every particle. Nil until the profile is
	// loaded through an AssetLoader.
	Image *ebiten.Image
	// ParticleSize is the particle's world-space width.
	ParticleSize float64

	// LifeSpan is how long, in seconds, every particle survives after birth.
	LifeSpan float64
	// EmissionDuration is how long, in seconds, the emitter births particles
	// once attached.
	EmissionDuration float64

	ParticleAngle            float64 // initial rotation, degrees
	ParticleAngleVariation   float64
	Velocity                 float64 // world units per second
	VelocityVariation        float64
	AngularVelocity          float64 // degrees per second
	AngularVelocityVariation float64

	BaseColor      Color
	ColorVariation ColorJitter

	GravityEnabled bool
	Mass           float64
	MassVariation  float64
	Bounce         float64
	Friction       float64
	Damping        float64

	// LightingEnabled shades particles with the scene's directional light.
	LightingEnabled bool
	// Blurred softens particles with the camera's depth of field.
	Blurred bool
}

// baseProfile holds the values shared by both variants.
var baseProfile = EmitterProfile{
	EmittingDirection: Vec3{0, -1, 0},
	Shape:             PlaneShape{Width: 15, Height: 5},

	LifeSpan:         20.0,
	EmissionDuration: 0.5,

	ParticleAngle:            180,
	ParticleAngleVariation:   45,
	Velocity:                 5,
	VelocityVariation:        10,
	AngularVelocity:          300,
	AngularVelocityVariation: 90,

	BaseColor:      ColorRed,
	ColorVariation: ColorJitter{Hue: 180, Saturation: 0.1, Brightness: 0.1, Alpha: 0},

	GravityEnabled: true,
	Mass:           5,
	MassVariation:  1,
	Bounce:         0.7,
	Friction:       1.0,
	Damping:        0.2,

	LightingEnabled: true,
}

// ProfileFor returns the constant profile for a variant. The Image field is
// nil; use LoadProfile to resolve it.
func ProfileFor(v Variant) EmitterProfile {
	p := baseProfile
	p.Variant = v
	switch v {
	case VariantFar:
		p.BirthRate = 700
		p.SpreadAngle = 45
		p.ImageName = BackgroundImageName
		p.ParticleSize = 0.13
		p.Blurred = true
	default:
		p.Variant = VariantNear
		p.BirthRate = 500
		p.SpreadAngle = 180
		p.ImageName = ForegroundImageName
		p.ParticleSize = 0.16
	}
	return p
}

// LoadProfile returns the profile for v with its sprite resolved through
// assets. A lookup failure is reported as a *ConfigurationError.
func LoadProfile(v Variant, assets AssetLoader) (EmitterProfile, error) {
	p := ProfileFor(v)
	if assets == nil {
		return EmitterProfile{}, &ConfigurationError{Variant: v, Asset: p.ImageName, Err: errors.New("no asset loader")}
	}
	img, err := assets.LoadImage(p.ImageName)
	if err != nil {
		return EmitterProfile{}, &ConfigurationError{Variant: v, Asset: p.ImageName, Err: err}
	}
	if img == nil {
		return EmitterProfile{}, &ConfigurationError{Variant: v, Asset: p.ImageName, Err: ErrAssetNotFound}
	}
	p.Image = img
	if err := p.Validate(); err != nil {
		return EmitterProfile{}, &ConfigurationError{Variant: v, Asset: p.ImageName, Err: err}
	}
	return p, nil
}

// Validate checks the profile's internal consistency.
func (p EmitterProfile) Validate() error {
	switch {
	case p.LifeSpan <= 0:
		return errors.Wrapf(ErrInvalidProfile, "life span %v must be positive", p.LifeSpan)
	case p.EmissionDuration < 0 || p.EmissionDuration > p.LifeSpan:
		return errors.Wrapf(ErrInvalidProfile, "emission duration %v must be within [0, %v]", p.EmissionDuration, p.LifeSpan)
	case p.BirthRate < 0:
		return errors.Wrapf(ErrInvalidProfile, "birth rate %v must not be negative", p.BirthRate)
	case p.ParticleSize <= 0:
		return errors.Wrapf(ErrInvalidProfile, "particle size %v must be positive", p.ParticleSize)
	}
	return nil
}

// MaxParticles is the upper bound of simultaneously live particles for one
// emitter of this profile.
func (p EmitterProfile) MaxParticles() int {
	return int(p.BirthRate*p.EmissionDuration) + 1
}

// Profiles pairs the two loaded variants. Each anchor of a SceneGraph keeps a
// pointer to exactly one of them.
type Profiles struct {
	Near EmitterProfile
	Far  EmitterProfile
}

// LoadProfiles loads both variants, failing on the first unresolved asset.
func LoadProfiles(assets AssetLoader) (Profiles, error) {
	near, err := LoadProfile(VariantNear, assets)
	if err != nil {
		return Profiles{}, err
	}
	far, err := LoadProfile(VariantFar, assets)
	if err != nil {
		return Profiles{}, err
	}
	return Profiles{Near: near, Far: far}, nil
}

// For returns the profile of variant v.
func (ps Profiles) For(v Variant) EmitterProfile {
	if v == VariantFar {
		return ps.Far
	}
	return ps.Near
}

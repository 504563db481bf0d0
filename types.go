package confetti

import (
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorRed is the base particle color before hue jitter.
var ColorRed = Color{1, 0, 0, 1}

// toRGBA returns the premultiplied 8-bit form used by image.Fill.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Vec3 is a 3D vector used for node positions, velocities, and directions.
// The coordinate system is right-handed: +Y up, the camera looks down -Z.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return v
	}
	return v.Scale(1 / l)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range used for randomized particle
// properties.
type Range struct {
	Min, Max float64
}

// Around returns the range base ± variation/2.
func Around(base, variation float64) Range {
	return Range{Min: base - variation/2, Max: base + variation/2}
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Variant selects the visual tier of an emitter profile.
type Variant uint8

const (
	VariantNear Variant = iota // crisp, larger particles in front of the camera
	VariantFar                 // blurred, smaller particles further back
)

// String returns "near" or "far".
func (v Variant) String() string {
	switch v {
	case VariantNear:
		return "near"
	case VariantFar:
		return "far"
	default:
		return "unknown"
	}
}

// Placement selects which anchor(s) receive a new emitter for a dispense call.
type Placement uint8

const (
	PlacementNear Placement = iota // foreground anchor only
	PlacementFar                   // background anchor only
	PlacementBoth                  // both anchors
)

// String returns "near", "far", or "both".
func (p Placement) String() string {
	switch p {
	case PlacementNear:
		return "near"
	case PlacementFar:
		return "far"
	case PlacementBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Variants returns the variants a placement targets, near first.
func (p Placement) Variants() []Variant {
	switch p {
	case PlacementNear:
		return []Variant{VariantNear}
	case PlacementFar:
		return []Variant{VariantFar}
	default:
		return []Variant{VariantNear, VariantFar}
	}
}

// ParsePlacement parses a placement name. "foreground" and "background" are
// accepted as aliases for "near" and "far".
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "near", "foreground":
		return PlacementNear, nil
	case "far", "background":
		return PlacementFar, nil
	case "both":
		return PlacementBoth, nil
	default:
		return 0, errors.Errorf("unknown placement %q", s)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

package confetti

import "math"

// ambientLight is the brightness a lit particle keeps when it faces away
// from the directional light.
const ambientLight = 0.35

// DirectionalLight is the scene's single fixed light.
type DirectionalLight struct {
	// Intensity is in lumens; 1000 is neutral.
	Intensity float64
	direction Vec3
}

// newDirectionalLight creates a light pointing down -Z rotated by euler
// degrees, applied Z, then X, then Y.
func newDirectionalLight(intensity float64, euler Vec3) *DirectionalLight {
	d := Vec3{0, 0, -1}
	d = rotateZ(d, degToRad(euler.Z))
	d = rotateX(d, degToRad(euler.X))
	d = rotateY(d, degToRad(euler.Y))
	return &DirectionalLight{Intensity: intensity, direction: d.Normalize()}
}

// Direction returns the unit vector the light travels along.
func (l *DirectionalLight) Direction() Vec3 { return l.direction }

// Shade returns the brightness factor in [ambientLight, 1] for a surface
// with the given normal. Both faces of a particle are lit.
func (l *DirectionalLight) Shade(normal Vec3) float64 {
	diffuse := math.Abs(normal.Normalize().Dot(l.direction.Scale(-1)))
	return clamp01(ambientLight + diffuse*l.Intensity/1000)
}

func rotateX(v Vec3, a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

func rotateY(v Vec3, a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

func rotateZ(v Vec3, a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

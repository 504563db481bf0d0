package confetti

import "math"

// Camera is a fixed perspective camera looking down -Z. All fields are set at
// construction and never change.
type Camera struct {
	position      Vec3
	fieldOfView   float64 // vertical, degrees
	focalLength   float64 // millimetres
	depthOfField  bool
	focusDistance float64
	focusRange    float64
	zNear, zFar   float64
}

// newCamera creates a Camera at pos with the given vertical field of view.
func newCamera(pos Vec3, fovDeg, focalLength float64, depthOfField bool) *Camera {
	return &Camera{
		position:      pos,
		fieldOfView:   fovDeg,
		focalLength:   focalLength,
		depthOfField:  depthOfField,
		focusDistance: defaultFocusDistance,
		focusRange:    defaultFocusRange,
		zNear:         1,
		zFar:          100,
	}
}

// Position returns the camera's world position.
func (c *Camera) Position() Vec3 { return c.position }

// FieldOfView returns the vertical field of view in degrees.
func (c *Camera) FieldOfView() float64 { return c.fieldOfView }

// FocalLength returns the lens focal length.
func (c *Camera) FocalLength() float64 { return c.focalLength }

// DepthOfField reports whether depth-of-field softening is enabled.
func (c *Camera) DepthOfField() bool { return c.depthOfField }

// Depth returns the distance of p in front of the camera. Points behind the
// camera have negative depth.
func (c *Camera) Depth(p Vec3) float64 {
	return c.position.Z - p.Z
}

// HalfHeight returns half the visible world height at the given depth.
func (c *Camera) HalfHeight(depth float64) float64 {
	return math.Tan(degToRad(c.fieldOfView)/2) * depth
}

// PixelScale returns how many pixels one world unit spans at depth inside a
// viewport of height viewportH.
func (c *Camera) PixelScale(depth, viewportH float64) float64 {
	if depth <= 0 {
		return 0
	}
	return viewportH / (2 * c.HalfHeight(depth))
}

// Project maps world point p into viewport coordinates. ok is false when p
// lies outside the clip range.
func (c *Camera) Project(p Vec3, vp Rect) (x, y, depth float64, ok bool) {
	depth = c.Depth(p)
	if depth < c.zNear || depth > c.zFar {
		return 0, 0, depth, false
	}
	s := c.PixelScale(depth, vp.Height)
	x = vp.X + vp.Width/2 + (p.X-c.position.X)*s
	y = vp.Y + vp.Height/2 - (p.Y-c.position.Y)*s
	return x, y, depth, true
}

// InFrustum reports whether p is visible for a viewport with the given
// width/height aspect ratio.
func (c *Camera) InFrustum(p Vec3, aspect float64) bool {
	depth := c.Depth(p)
	if depth < c.zNear || depth > c.zFar {
		return false
	}
	hh := c.HalfHeight(depth)
	hw := hh * aspect
	return math.Abs(p.Y-c.position.Y) <= hh && math.Abs(p.X-c.position.X) <= hw
}

// Blur returns the depth-of-field softening in [0, 1] at depth; 0 is in
// focus. Always 0 when depth of field is disabled.
func (c *Camera) Blur(depth float64) float64 {
	if !c.depthOfField || c.focusRange <= 0 {
		return 0
	}
	return clamp01(math.Abs(depth-c.focusDistance) / c.focusRange)
}

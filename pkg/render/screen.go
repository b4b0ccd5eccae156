package render

import (
	"github.com/taigrr/dimenshift/pkg/math4d"
)

// Screen projection defaults.
const (
	DefaultViewerDistance = 4.0
	DefaultPixelScale     = 600.0
	DefaultNearPlane      = 0.1
)

// ScreenProjection is the 3D to 2D perspective step applied to points
// already flattened onto the camera's 3-flat. It is independent of the
// camera's focal length.
type ScreenProjection struct {
	ViewerDistance float32 // viewer offset along +Z from the 3-flat origin
	PixelScale     float32
	Near           float32 // points with depth <= Near are invalid
}

// DefaultScreenProjection returns the standard viewer setup.
func DefaultScreenProjection() ScreenProjection {
	return ScreenProjection{
		ViewerDistance: DefaultViewerDistance,
		PixelScale:     DefaultPixelScale,
		Near:           DefaultNearPlane,
	}
}

// ScreenPoint is a projected pixel position.
type ScreenPoint struct {
	X, Y  float32
	Depth float32
	Valid bool
}

// Pixel returns the integer pixel coordinates.
func (p ScreenPoint) Pixel() (int, int) {
	return int(p.X), int(p.Y)
}

// Project maps a 3-flat point to pixels in a width x height viewport.
// +Y is up on screen.
func (s ScreenProjection) Project(v math4d.Vec4, width, height int) ScreenPoint {
	depth := s.ViewerDistance - v.Z
	if depth <= s.Near {
		return ScreenPoint{Depth: depth}
	}

	scale := s.PixelScale / depth
	return ScreenPoint{
		X:     v.X*scale + float32(width)/2,
		Y:     float32(height)/2 - v.Y*scale,
		Depth: depth,
		Valid: true,
	}
}

// Unproject inverts Project for a 3-flat point at the given z, returning a
// point on the w = 0 hyperplane.
func (s ScreenProjection) Unproject(sx, sy float32, width, height int, z float32) math4d.Vec4 {
	depth := s.ViewerDistance - z
	scale := s.PixelScale / depth
	return math4d.V4(
		(sx-float32(width)/2)/scale,
		(float32(height)/2-sy)/scale,
		z,
		0,
	)
}

package geometry

import "math"

// CenteredPoint is a 2D point with the origin at the middle of the view and +Y pointing up.
// Projections produce centered points; they are not pixels yet.
type CenteredPoint struct {
	X, Y float64
}

// SurfacePoint is a 2D point in drawing-surface coordinates: origin at the top-left
// corner, +Y pointing down, measured in logical (not device) pixels.
type SurfacePoint struct {
	X, Y float64
}

// NewCenteredPoint creates a centered point
func NewCenteredPoint(x, y float64) CenteredPoint {
	return CenteredPoint{X: x, Y: y}
}

// NewSurfacePoint creates a surface point
func NewSurfacePoint(x, y float64) SurfacePoint {
	return SurfacePoint{X: x, Y: y}
}

// ToSurface places a centered point on a surface of the given logical size.
// The Y axis is flipped because centered coordinates grow upwards.
func (c CenteredPoint) ToSurface(width, height float64) SurfacePoint {
	return SurfacePoint{
		X: c.X + width/2,
		Y: height/2 - c.Y,
	}
}

// ToCentered is the inverse of CenteredPoint.ToSurface
func (s SurfacePoint) ToCentered(width, height float64) CenteredPoint {
	return CenteredPoint{
		X: s.X - width/2,
		Y: height/2 - s.Y,
	}
}

// Add offsets a surface point
func (s SurfacePoint) Add(dx, dy float64) SurfacePoint {
	return SurfacePoint{X: s.X + dx, Y: s.Y + dy}
}

// Sub returns the vector from other to s
func (s SurfacePoint) Sub(other SurfacePoint) (dx, dy float64) {
	return s.X - other.X, s.Y - other.Y
}

// Distance returns the euclidean distance between two surface points
func (s SurfacePoint) Distance(other SurfacePoint) float64 {
	return math.Hypot(s.X-other.X, s.Y-other.Y)
}

// Scale multiplies both coordinates, e.g. to go from logical to device pixels
func (s SurfacePoint) Scale(factor float64) SurfacePoint {
	return SurfacePoint{X: s.X * factor, Y: s.Y * factor}
}

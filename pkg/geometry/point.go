package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point3D represents a point or direction in world space
type Point3D struct {
	X, Y, Z float64
}

// NewPoint3D creates a new 3D point
func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// FromVec3 converts a mathgl vector into a point
func FromVec3(v mgl64.Vec3) Point3D {
	return Point3D{X: v[0], Y: v[1], Z: v[2]}
}

// Vec3 returns the point as a mathgl vector
func (p Point3D) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Add returns the sum of two points
func (p Point3D) Add(other Point3D) Point3D {
	return Point3D{
		X: p.X + other.X,
		Y: p.Y + other.Y,
		Z: p.Z + other.Z,
	}
}

// Sub returns the difference between two points
func (p Point3D) Sub(other Point3D) Point3D {
	return Point3D{
		X: p.X - other.X,
		Y: p.Y - other.Y,
		Z: p.Z - other.Z,
	}
}

// Mul multiplies the point by a scalar
func (p Point3D) Mul(scalar float64) Point3D {
	return Point3D{
		X: p.X * scalar,
		Y: p.Y * scalar,
		Z: p.Z * scalar,
	}
}

// Dot returns the dot product of two vectors
func (p Point3D) Dot(other Point3D) float64 {
	return p.X*other.X + p.Y*other.Y + p.Z*other.Z
}

// Cross returns the cross product of two vectors
func (p Point3D) Cross(other Point3D) Point3D {
	return Point3D{
		X: p.Y*other.Z - p.Z*other.Y,
		Y: p.Z*other.X - p.X*other.Z,
		Z: p.X*other.Y - p.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (p Point3D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Distance returns the distance between two points
func (p Point3D) Distance(other Point3D) float64 {
	return p.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction
func (p Point3D) Normalize() Point3D {
	length := p.Length()
	if length == 0 {
		return Point3D{}
	}
	return p.Mul(1.0 / length)
}

// IsFinite reports whether no component is NaN or infinite
func (p Point3D) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

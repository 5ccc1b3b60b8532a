package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/goaxes/pkg/geometry"
)

// ErrInvalidCamera is returned when a camera update would leave the engine
// with a configuration that cannot be projected.
var ErrInvalidCamera = errors.New("invalid camera")

// Rotation holds Euler angles in radians
type Rotation struct {
	Pitch float64 // around world X (up/down)
	Yaw   float64 // around world Y (left/right)
	Roll  float64 // around world Z (tilt)
}

// Camera is the virtual camera used by the perspective engine
type Camera struct {
	Position     geometry.Point3D
	Rotation     Rotation
	FocalLength  float64 // smaller = wider field of view
	ViewDistance float64 // added to camera-space Z after rotation
}

// DefaultCamera returns a camera looking slightly down and to the right
func DefaultCamera() Camera {
	return Camera{
		Position: geometry.NewPoint3D(0, 0, 0),
		Rotation: Rotation{
			Pitch: -0.5, // ~-28.6°
			Yaw:   0.6,  // ~34.4°
			Roll:  0,
		},
		FocalLength:  400,
		ViewDistance: 500,
	}
}

// Validate checks that the camera can be used for projection
func (c Camera) Validate() error {
	if !c.Position.IsFinite() {
		return fmt.Errorf("%w: position %v is not finite", ErrInvalidCamera, c.Position)
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"pitch", c.Rotation.Pitch},
		{"yaw", c.Rotation.Yaw},
		{"roll", c.Rotation.Roll},
		{"view distance", c.ViewDistance},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalidCamera, f.name, f.v)
		}
	}
	if math.IsNaN(c.FocalLength) || math.IsInf(c.FocalLength, 0) || c.FocalLength <= 0 {
		return fmt.Errorf("%w: focal length must be a positive number, got %v", ErrInvalidCamera, c.FocalLength)
	}
	return nil
}

// Merge applies a patch field by field. Nil fields keep their current value,
// including the individual components of rotation and position.
func (c Camera) Merge(p CameraPatch) Camera {
	if p.Position != nil {
		c.Position.X = pick(p.Position.X, c.Position.X)
		c.Position.Y = pick(p.Position.Y, c.Position.Y)
		c.Position.Z = pick(p.Position.Z, c.Position.Z)
	}
	if p.Rotation != nil {
		c.Rotation.Pitch = pick(p.Rotation.Pitch, c.Rotation.Pitch)
		c.Rotation.Yaw = pick(p.Rotation.Yaw, c.Rotation.Yaw)
		c.Rotation.Roll = pick(p.Rotation.Roll, c.Rotation.Roll)
	}
	c.FocalLength = pick(p.FocalLength, c.FocalLength)
	c.ViewDistance = pick(p.ViewDistance, c.ViewDistance)
	return c
}

// Patch returns a patch that sets every field to the values of c
func (c Camera) Patch() CameraPatch {
	return CameraPatch{
		Position: &PositionPatch{
			X: Float(c.Position.X),
			Y: Float(c.Position.Y),
			Z: Float(c.Position.Z),
		},
		Rotation: &RotationPatch{
			Pitch: Float(c.Rotation.Pitch),
			Yaw:   Float(c.Rotation.Yaw),
			Roll:  Float(c.Rotation.Roll),
		},
		FocalLength:  Float(c.FocalLength),
		ViewDistance: Float(c.ViewDistance),
	}
}

// Orbit returns the patch for a drag gesture: horizontal movement turns the yaw,
// vertical movement the pitch, and roll is reset.
func (c Camera) Orbit(dx, dy, sensitivity float64) CameraPatch {
	return CameraPatch{
		Rotation: &RotationPatch{
			Yaw:   Float(c.Rotation.Yaw + dx*sensitivity),
			Pitch: Float(c.Rotation.Pitch + dy*sensitivity),
			Roll:  Float(0),
		},
	}
}

// Zoom returns the patch that scales the focal length by factor
func (c Camera) Zoom(factor float64) CameraPatch {
	return CameraPatch{FocalLength: Float(c.FocalLength * factor)}
}

// CameraPatch is a partial camera update. Only non-nil fields are applied.
type CameraPatch struct {
	Position     *PositionPatch `yaml:"position,omitempty"`
	Rotation     *RotationPatch `yaml:"rotation,omitempty"`
	FocalLength  *float64       `yaml:"focal_length,omitempty"`
	ViewDistance *float64       `yaml:"view_distance,omitempty"`
}

// PositionPatch is a partial camera position
type PositionPatch struct {
	X *float64 `yaml:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty"`
	Z *float64 `yaml:"z,omitempty"`
}

// RotationPatch is a partial camera rotation
type RotationPatch struct {
	Pitch *float64 `yaml:"pitch,omitempty"`
	Yaw   *float64 `yaml:"yaw,omitempty"`
	Roll  *float64 `yaml:"roll,omitempty"`
}

// Then returns a patch that applies p first and next on top of it
func (p CameraPatch) Then(next CameraPatch) CameraPatch {
	out := p
	if next.Position != nil {
		pos := PositionPatch{}
		if p.Position != nil {
			pos = *p.Position
		}
		pos.X = pickPtr(next.Position.X, pos.X)
		pos.Y = pickPtr(next.Position.Y, pos.Y)
		pos.Z = pickPtr(next.Position.Z, pos.Z)
		out.Position = &pos
	}
	if next.Rotation != nil {
		rot := RotationPatch{}
		if p.Rotation != nil {
			rot = *p.Rotation
		}
		rot.Pitch = pickPtr(next.Rotation.Pitch, rot.Pitch)
		rot.Yaw = pickPtr(next.Rotation.Yaw, rot.Yaw)
		rot.Roll = pickPtr(next.Rotation.Roll, rot.Roll)
		out.Rotation = &rot
	}
	out.FocalLength = pickPtr(next.FocalLength, p.FocalLength)
	out.ViewDistance = pickPtr(next.ViewDistance, p.ViewDistance)
	return out
}

// Float returns a pointer to v, for building patches
func Float(v float64) *float64 {
	return &v
}

func pick(v *float64, current float64) float64 {
	if v == nil {
		return current
	}
	return *v
}

func pickPtr(v, current *float64) *float64 {
	if v == nil {
		return current
	}
	return Float(*v)
}

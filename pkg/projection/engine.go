// Package projection turns world-space points into centered 2D coordinates.
//
// The Engine implements a perspective camera: points are translated by the camera
// position, rotated yaw (Y) → pitch (X) → roll (Z), pushed forward by the view
// distance and divided by depth. Fixed-formula alternatives (isometric, orthographic,
// one-point perspective) live in strategy.go and need no camera state.
package projection

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/goaxes/pkg/geometry"
)

// DefaultNearThreshold is the camera-space depth at or below which a point is
// considered not projectable.
const DefaultNearThreshold = 1.0

// Projector maps a world-space point to centered 2D coordinates
type Projector interface {
	Project(point geometry.Point3D) geometry.CenteredPoint
}

// Engine owns a camera and projects points through it.
// It is safe for concurrent use; a frame that reads, updates and draws should
// still be driven from a single goroutine.
type Engine struct {
	mu       sync.RWMutex
	camera   Camera
	rotation mgl64.Mat3
	near     float64
}

// Option configures an Engine
type Option func(*Engine)

// WithNearThreshold overrides the depth clamp (default 1)
func WithNearThreshold(z float64) Option {
	return func(e *Engine) {
		e.near = z
	}
}

// NewEngine creates an engine from the default camera with patch applied on top.
// A nil patch keeps the defaults.
func NewEngine(patch *CameraPatch, opts ...Option) (*Engine, error) {
	camera := DefaultCamera()
	if patch != nil {
		camera = camera.Merge(*patch)
	}
	if err := camera.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		camera: camera,
		near:   DefaultNearThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := validateNear(e.near); err != nil {
		return nil, err
	}
	e.rotation = rotationMatrix(camera.Rotation)
	return e, nil
}

// UpdateCamera merges patch into the current camera. If the result is invalid
// the camera is left untouched and an error wrapping ErrInvalidCamera is returned.
func (e *Engine) UpdateCamera(patch CameraPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.camera.Merge(patch)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("update camera: %w", err)
	}
	e.camera = next
	e.rotation = rotationMatrix(next.Rotation)
	return nil
}

// Camera returns a copy of the current camera
func (e *Engine) Camera() Camera {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.camera
}

func validateNear(z float64) error {
	if math.IsNaN(z) || math.IsInf(z, 0) || z <= 0 {
		return fmt.Errorf("%w: near threshold must be a positive number, got %v", ErrInvalidCamera, z)
	}
	return nil
}

// NearThreshold returns the depth clamp in use
func (e *Engine) NearThreshold() float64 {
	return e.near
}

// ToCameraSpace translates and rotates a point and adds the view distance.
// The result is the vector right before the perspective divide.
func (e *Engine) ToCameraSpace(point geometry.Point3D) geometry.Point3D {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.toCameraSpace(point)
}

func (e *Engine) toCameraSpace(point geometry.Point3D) geometry.Point3D {
	relative := point.Sub(e.camera.Position)
	rotated := geometry.FromVec3(e.rotation.Mul3x1(relative.Vec3()))
	rotated.Z += e.camera.ViewDistance
	return rotated
}

// Project returns the centered screen position of a point. Points at or behind
// the near threshold collapse to the origin; use ProjectDepth to tell them apart.
func (e *Engine) Project(point geometry.Point3D) geometry.CenteredPoint {
	p, _, _ := e.ProjectDepth(point)
	return p
}

// ProjectDepth projects a point and also reports its camera-space depth and
// whether it was in front of the near threshold.
func (e *Engine) ProjectDepth(point geometry.Point3D) (geometry.CenteredPoint, float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.projectLocked(point)
}

func (e *Engine) projectLocked(point geometry.Point3D) (geometry.CenteredPoint, float64, bool) {
	rotated := e.toCameraSpace(point)
	if rotated.Z <= e.near {
		return geometry.CenteredPoint{}, rotated.Z, false
	}

	scale := e.camera.FocalLength / rotated.Z
	return geometry.CenteredPoint{
		X: rotated.X * scale,
		Y: rotated.Y * scale,
	}, rotated.Z, true
}

// ProjectMultiple projects points in order. All points see the same camera,
// even while another goroutine updates it.
func (e *Engine) ProjectMultiple(points []geometry.Point3D) []geometry.CenteredPoint {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make([]geometry.CenteredPoint, len(points))
	for i, p := range points {
		result[i], _, _ = e.projectLocked(p)
	}
	return result
}

// rotationMatrix composes yaw, then pitch, then roll. The order matters: any
// other composition produces a different view for the same angles.
func rotationMatrix(r Rotation) mgl64.Mat3 {
	yaw := mgl64.Rotate3DY(r.Yaw)
	pitch := mgl64.Rotate3DX(r.Pitch)
	roll := mgl64.Rotate3DZ(r.Roll)
	return roll.Mul3(pitch).Mul3(yaw)
}

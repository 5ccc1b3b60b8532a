// Package animate drives per-frame camera updates: every frame reads the
// camera, computes a patch, applies it and redraws, as one step.
package animate

import (
	"context"
	"fmt"
	"time"

	"github.com/philipparndt/goaxes/pkg/projection"
)

// Camera is the part of the projection engine an animation needs
type Camera interface {
	Camera() projection.Camera
	UpdateCamera(patch projection.CameraPatch) error
}

// StepFunc computes the update for the next frame from the current camera
type StepFunc func(current projection.Camera) projection.CameraPatch

// Step runs a single frame: read camera, compute patch, update, draw
func Step(cam Camera, next StepFunc, draw func() error) error {
	patch := next(cam.Camera())
	if err := cam.UpdateCamera(patch); err != nil {
		return fmt.Errorf("failed to update camera: %w", err)
	}
	if draw == nil {
		return nil
	}
	return draw()
}

// Loop runs Step once per interval until ctx is cancelled or a frame fails.
// Cancellation is a normal stop and returns nil.
func Loop(ctx context.Context, interval time.Duration, cam Camera, next StepFunc, draw func() error) error {
	if interval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %v", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			if err := Step(cam, next, draw); err != nil {
				return err
			}
		}
	}
}

// Orbit turns the yaw by step radians per frame at a fixed pitch, roll 0
func Orbit(step, pitch float64) StepFunc {
	return func(current projection.Camera) projection.CameraPatch {
		return projection.CameraPatch{
			Rotation: &projection.RotationPatch{
				Pitch: projection.Float(pitch),
				Yaw:   projection.Float(current.Rotation.Yaw + step),
				Roll:  projection.Float(0),
			},
		}
	}
}

// Default orbit parameters: 0.01 rad per frame looking slightly down
const (
	DefaultOrbitStep  = 0.01
	DefaultOrbitPitch = -0.5
	DefaultFrameRate  = 60
)

// FrameInterval returns the ticker interval for a frame rate
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return time.Second / time.Duration(fps)
}

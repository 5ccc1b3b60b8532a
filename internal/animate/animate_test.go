package animate

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goaxes/internal/presets"
	"github.com/philipparndt/goaxes/pkg/projection"
)

func newEngine(t *testing.T) *projection.Engine {
	t.Helper()
	e, err := projection.NewEngine(&projection.CameraPatch{
		Rotation: &projection.RotationPatch{Pitch: projection.Float(-0.5), Yaw: projection.Float(0)},
	})
	require.NoError(t, err)
	return e
}

func TestStep(t *testing.T) {
	e := newEngine(t)
	drawn := 0

	err := Step(e, Orbit(0.01, -0.5), func() error {
		drawn++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, drawn)
	require.InDelta(t, 0.01, e.Camera().Rotation.Yaw, 1e-12)
	require.Equal(t, -0.5, e.Camera().Rotation.Pitch)
	require.Equal(t, 0.0, e.Camera().Rotation.Roll)
}

func TestStepRejectsInvalidPatch(t *testing.T) {
	e := newEngine(t)
	before := e.Camera()
	drawn := false

	err := Step(e, func(projection.Camera) projection.CameraPatch {
		return projection.CameraPatch{FocalLength: projection.Float(0)}
	}, func() error {
		drawn = true
		return nil
	})
	require.ErrorIs(t, err, projection.ErrInvalidCamera)
	require.False(t, drawn)
	require.Equal(t, before, e.Camera())
}

func TestLoopStopsOnCancel(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := 0
	err := Loop(ctx, time.Millisecond, e, Orbit(0.1, -0.5), func() error {
		frames++
		if frames == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, frames)
	require.InDelta(t, 0.3, e.Camera().Rotation.Yaw, 1e-12)
}

func TestLoopReturnsDrawError(t *testing.T) {
	boom := errors.New("surface lost")
	err := Loop(context.Background(), time.Millisecond, newEngine(t), Orbit(0.1, 0), func() error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}

func TestLoopRejectsInterval(t *testing.T) {
	require.Error(t, Loop(context.Background(), 0, newEngine(t), Orbit(0.1, 0), nil))
}

func TestOrbitFullTurn(t *testing.T) {
	e := newEngine(t)
	steps := 100
	for i := 0; i < steps; i++ {
		require.NoError(t, Step(e, Orbit(2*math.Pi/float64(steps), -0.5), nil))
	}
	require.InDelta(t, 2*math.Pi, e.Camera().Rotation.Yaw, 1e-9)
}

func TestFrameInterval(t *testing.T) {
	require.Equal(t, time.Second/60, FrameInterval(0))
	require.Equal(t, 40*time.Millisecond, FrameInterval(25))
}

func TestShowcaseCycles(t *testing.T) {
	e := newEngine(t)
	var applied []string

	s, err := NewShowcase([]string{presets.Wide, presets.Front}, func(p presets.Preset) error {
		applied = append(applied, p.Name)
		return e.UpdateCamera(p.Camera)
	}, nil)
	require.NoError(t, err)
	require.Equal(t, presets.Wide, s.Current())
	require.Equal(t, 250.0, e.Camera().FocalLength)

	require.NoError(t, s.Advance())
	require.Equal(t, presets.Front, s.Current())
	require.Equal(t, 0.0, e.Camera().Rotation.Pitch)

	require.NoError(t, s.Advance())
	require.Equal(t, presets.Wide, s.Current())
	require.Equal(t, []string{presets.Wide, presets.Front, presets.Wide}, applied)
}

func TestShowcaseDefaultsToAllPresets(t *testing.T) {
	count := 0
	s, err := NewShowcase(nil, func(presets.Preset) error {
		count++
		return nil
	}, nil)
	require.NoError(t, err)

	for range presets.Names() {
		require.NoError(t, s.Advance())
	}
	require.Equal(t, presets.Standard, s.Current())
	require.Equal(t, len(presets.Names())+1, count)
}

func TestShowcaseUnknownPreset(t *testing.T) {
	_, err := NewShowcase([]string{"fisheye"}, func(presets.Preset) error { return nil }, nil)
	require.ErrorIs(t, err, presets.ErrUnknownPreset)
}

func TestShowcaseRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	advances := 0

	s, err := NewShowcase(nil, func(presets.Preset) error {
		advances++
		if advances == 3 {
			cancel()
		}
		return nil
	}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(ctx, time.Millisecond))
	require.Equal(t, 3, advances)
}

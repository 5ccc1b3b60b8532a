package projection

import (
	"fmt"
	"math"

	"github.com/philipparndt/goaxes/pkg/geometry"
)

// Orthographic drops the Z coordinate
type Orthographic struct{}

// Project implements Projector
func (Orthographic) Project(p geometry.Point3D) geometry.CenteredPoint {
	return geometry.CenteredPoint{X: p.X, Y: p.Y}
}

// Isometric is the classic 30° isometric projection with Z pointing up
type Isometric struct{}

// Project implements Projector
func (Isometric) Project(p geometry.Point3D) geometry.CenteredPoint {
	return geometry.CenteredPoint{
		X: (p.X - p.Y) * math.Cos(math.Pi/6),
		Y: (p.X+p.Y)*math.Sin(math.Pi/6) - p.Z,
	}
}

// OnePoint is a single-vanishing-point perspective with the eye at -Distance on Z
type OnePoint struct {
	Distance float64
}

// Project implements Projector. Points at or behind the eye collapse to the origin.
func (o OnePoint) Project(p geometry.Point3D) geometry.CenteredPoint {
	depth := o.Distance + p.Z
	if depth <= 0 {
		return geometry.CenteredPoint{}
	}
	factor := o.Distance / depth
	return geometry.CenteredPoint{X: p.X * factor, Y: p.Y * factor}
}

// BatchProjector projects several points against one consistent state
type BatchProjector interface {
	ProjectMultiple(points []geometry.Point3D) []geometry.CenteredPoint
}

// ProjectAll projects points in order. Projectors that implement BatchProjector,
// like the Engine, see a single camera for the whole set.
func ProjectAll(p Projector, points []geometry.Point3D) []geometry.CenteredPoint {
	if batch, ok := p.(BatchProjector); ok {
		return batch.ProjectMultiple(points)
	}
	result := make([]geometry.CenteredPoint, len(points))
	for i, point := range points {
		result[i] = p.Project(point)
	}
	return result
}

// Strategy names accepted by StrategyByName
const (
	StrategyPerspective  = "perspective"
	StrategyOnePoint     = "onepoint"
	StrategyIsometric    = "isometric"
	StrategyOrthographic = "orthographic"
)

// StrategyByName returns a fixed-formula projector. The camera engine itself is
// selected with StrategyPerspective and is returned unchanged.
func StrategyByName(name string, engine *Engine, distance float64) (Projector, error) {
	switch name {
	case "", StrategyPerspective:
		if engine == nil {
			return nil, fmt.Errorf("perspective strategy needs an engine")
		}
		return engine, nil
	case StrategyOnePoint:
		if math.IsNaN(distance) || math.IsInf(distance, 0) || distance <= 0 {
			return nil, fmt.Errorf("one-point distance must be positive, got %v", distance)
		}
		return OnePoint{Distance: distance}, nil
	case StrategyIsometric:
		return Isometric{}, nil
	case StrategyOrthographic:
		return Orthographic{}, nil
	default:
		return nil, fmt.Errorf("unknown projection strategy %q", name)
	}
}

// Package axes draws a 3D coordinate frame: the origin and the three
// positive axis directions as colored arrows with X, Y and Z labels.
package axes

import (
	"image/color"
	"math"

	"github.com/philipparndt/goaxes/pkg/geometry"
	"github.com/philipparndt/goaxes/pkg/projection"
	"github.com/philipparndt/goaxes/pkg/surface"
)

// Axis identifies one of the three world axes
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// All lists the axes in drawing order
var All = [3]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// Direction returns the world-space unit vector of the axis
func (a Axis) Direction() geometry.Point3D {
	switch a {
	case X:
		return geometry.NewPoint3D(1, 0, 0)
	case Y:
		return geometry.NewPoint3D(0, 1, 0)
	default:
		return geometry.NewPoint3D(0, 0, 1)
	}
}

// labelShift is the unit direction the label is moved away from the tip, in
// surface space
func (a Axis) labelShift() (dx, dy float64) {
	if a == Y {
		return 0, -1
	}
	return 1, 0
}

// arrowHalfAngle is the angle between the shaft and each side of the head
const arrowHalfAngle = math.Pi / 6

// Arrow is the laid out geometry of one axis
type Arrow struct {
	Axis  Axis
	From  geometry.SurfacePoint
	To    geometry.SurfacePoint
	Head  [3]geometry.SurfacePoint // tip first
	Label geometry.SurfacePoint
	Color color.Color
}

// Frame is the laid out geometry of all three axes
type Frame struct {
	Origin geometry.SurfacePoint
	Arrows [3]Arrow
}

// Layout projects the axes through p and converts them to surface
// coordinates for a surface of the given logical size
func Layout(p projection.Projector, width, height float64, cfg Config) Frame {
	points := []geometry.Point3D{geometry.NewPoint3D(0, 0, 0)}
	for _, axis := range All {
		points = append(points, axis.Direction().Mul(cfg.Length))
	}
	projected := projection.ProjectAll(p, points)
	origin := projected[0].ToSurface(width, height)

	frame := Frame{Origin: origin}
	for i, axis := range All {
		end := projected[i+1].ToSurface(width, height)
		dx, dy := axis.labelShift()

		frame.Arrows[axis] = Arrow{
			Axis:  axis,
			From:  origin,
			To:    end,
			Head:  ArrowHead(origin, end, cfg.ArrowSize),
			Label: end.Add(dx*cfg.LabelOffset, dy*cfg.LabelOffset),
			Color: cfg.Colors[axis],
		}
	}
	return frame
}

// ArrowHead returns the tip and the two back corners of an arrowhead of the
// given size pointing from -> to
func ArrowHead(from, to geometry.SurfacePoint, size float64) [3]geometry.SurfacePoint {
	dx, dy := to.Sub(from)
	angle := math.Atan2(dy, dx)

	return [3]geometry.SurfacePoint{
		to,
		to.Add(-size*math.Cos(angle-arrowHalfAngle), -size*math.Sin(angle-arrowHalfAngle)),
		to.Add(-size*math.Cos(angle+arrowHalfAngle), -size*math.Sin(angle+arrowHalfAngle)),
	}
}

// Draw draws the axes onto s using p for projection. Options are resolved
// before anything is drawn, so invalid options leave the surface untouched.
func Draw(s surface.Surface, p projection.Projector, opts *Options) error {
	cfg, err := opts.Resolve()
	if err != nil {
		return err
	}

	width, height := s.Size()
	Render(s, Layout(p, width, height, cfg), cfg)
	return nil
}

// Render issues the drawing commands for a laid out frame
func Render(s surface.Surface, frame Frame, cfg Config) {
	for _, arrow := range frame.Arrows {
		drawArrow(s, arrow, cfg.LineWidth)
		s.Text(arrow.Axis.String(), arrow.Label, surface.TextStyle{
			Color:    arrow.Color,
			Size:     cfg.FontSize,
			Bold:     true,
			Align:    surface.AlignCenter,
			Baseline: surface.BaselineMiddle,
		})
	}
}

func drawArrow(s surface.Surface, arrow Arrow, lineWidth float64) {
	s.BeginPath()
	s.MoveTo(arrow.From)
	s.LineTo(arrow.To)
	s.Stroke(arrow.Color, lineWidth)

	s.BeginPath()
	s.MoveTo(arrow.Head[0])
	s.LineTo(arrow.Head[1])
	s.LineTo(arrow.Head[2])
	s.ClosePath()
	s.Fill(arrow.Color)
}

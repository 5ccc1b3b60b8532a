// Package surface defines the small drawing capability the axis renderer needs
// and a few backends for it: an in-memory recorder, a PNG image with device
// pixel ratio support, an SVG writer and a terminal plotter.
//
// All coordinates are logical surface pixels with the origin at the top-left
// corner and Y pointing down.
package surface

import (
	"image/color"

	"github.com/philipparndt/goaxes/pkg/geometry"
)

// Surface is a path-based 2D drawing target
type Surface interface {
	// Size returns the logical size. Backends rendering at a device pixel
	// ratio report the unscaled size here.
	Size() (width, height float64)
	Clear()
	BeginPath()
	MoveTo(p geometry.SurfacePoint)
	LineTo(p geometry.SurfacePoint)
	ClosePath()
	Stroke(c color.Color, width float64)
	Fill(c color.Color)
	Text(text string, at geometry.SurfacePoint, style TextStyle)
}

// Align is the horizontal text anchor
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Baseline is the vertical text anchor
type Baseline uint8

const (
	BaselineAlphabetic Baseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

func (b Baseline) String() string {
	switch b {
	case BaselineTop:
		return "top"
	case BaselineMiddle:
		return "middle"
	case BaselineBottom:
		return "bottom"
	default:
		return "alphabetic"
	}
}

// TextStyle describes how a label is drawn
type TextStyle struct {
	Color    color.Color
	Size     float64 // logical pixels
	Bold     bool
	Align    Align
	Baseline Baseline
}

// Subpath is a connected polyline, optionally closed
type Subpath struct {
	Points []geometry.SurfacePoint
	Closed bool
}

// Segments calls fn for every line segment, including the closing one
func (s Subpath) Segments(fn func(from, to geometry.SurfacePoint)) {
	for i := 1; i < len(s.Points); i++ {
		fn(s.Points[i-1], s.Points[i])
	}
	if s.Closed && len(s.Points) > 2 {
		fn(s.Points[len(s.Points)-1], s.Points[0])
	}
}

// pathBuilder collects the current path between BeginPath and Stroke/Fill
type pathBuilder struct {
	subpaths []Subpath
}

func (b *pathBuilder) begin() {
	b.subpaths = b.subpaths[:0]
}

func (b *pathBuilder) moveTo(p geometry.SurfacePoint) {
	b.subpaths = append(b.subpaths, Subpath{Points: []geometry.SurfacePoint{p}})
}

func (b *pathBuilder) lineTo(p geometry.SurfacePoint) {
	if len(b.subpaths) == 0 {
		b.moveTo(p)
		return
	}
	last := &b.subpaths[len(b.subpaths)-1]
	last.Points = append(last.Points, p)
}

func (b *pathBuilder) closePath() {
	if len(b.subpaths) == 0 {
		return
	}
	last := &b.subpaths[len(b.subpaths)-1]
	last.Closed = true
	// a following LineTo starts from the first point of the closed subpath
	b.subpaths = append(b.subpaths, Subpath{Points: []geometry.SurfacePoint{last.Points[0]}})
}

// snapshot returns a copy of the non-degenerate subpaths
func (b *pathBuilder) snapshot() []Subpath {
	out := make([]Subpath, 0, len(b.subpaths))
	for _, s := range b.subpaths {
		if len(s.Points) < 2 {
			continue
		}
		pts := make([]geometry.SurfacePoint, len(s.Points))
		copy(pts, s.Points)
		out = append(out, Subpath{Points: pts, Closed: s.Closed})
	}
	return out
}

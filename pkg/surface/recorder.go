package surface

import (
	"image/color"

	"github.com/philipparndt/goaxes/pkg/geometry"
)

// OpKind identifies a recorded drawing command
type OpKind uint8

const (
	OpClear OpKind = iota
	OpStroke
	OpFill
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpStroke:
		return "stroke"
	case OpFill:
		return "fill"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Op is one recorded drawing command
type Op struct {
	Kind  OpKind
	Path  []Subpath // stroke and fill
	Color color.Color
	Width float64 // stroke
	Text  string
	At    geometry.SurfacePoint
	Style TextStyle
}

// Recorder is a Surface that keeps every command instead of drawing it
type Recorder struct {
	width, height float64
	path          pathBuilder
	Ops           []Op
}

// NewRecorder creates a recorder with the given logical size
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) BeginPath()                     { r.path.begin() }
func (r *Recorder) MoveTo(p geometry.SurfacePoint) { r.path.moveTo(p) }
func (r *Recorder) LineTo(p geometry.SurfacePoint) { r.path.lineTo(p) }
func (r *Recorder) ClosePath()                     { r.path.closePath() }

func (r *Recorder) Stroke(c color.Color, width float64) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Path: r.path.snapshot(), Color: c, Width: width})
}

func (r *Recorder) Fill(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Path: r.path.snapshot(), Color: c})
}

func (r *Recorder) Text(text string, at geometry.SurfacePoint, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Text: text, At: at, Style: style, Color: style.Color})
}

// Count returns how many commands of kind were recorded
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded commands of kind in order
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops all recorded commands
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.path.begin()
}

// Replay issues the recorded commands on dst
func (r *Recorder) Replay(dst Surface) {
	for _, op := range r.Ops {
		switch op.Kind {
		case OpClear:
			dst.Clear()
		case OpStroke, OpFill:
			dst.BeginPath()
			for _, sp := range op.Path {
				dst.MoveTo(sp.Points[0])
				for _, p := range sp.Points[1:] {
					dst.LineTo(p)
				}
				if sp.Closed {
					dst.ClosePath()
				}
			}
			if op.Kind == OpStroke {
				dst.Stroke(op.Color, op.Width)
			} else {
				dst.Fill(op.Color)
			}
		case OpText:
			dst.Text(op.Text, op.At, op.Style)
		}
	}
}

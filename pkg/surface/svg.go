package surface

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/philipparndt/goaxes/pkg/geometry"
)

// errWriter keeps the first write error, svgo does not report them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// SVG is a Surface writing an SVG document. Close must be called to finish
// the document.
type SVG struct {
	out        *errWriter
	canvas     *svg.SVG
	width      float64
	height     float64
	background color.Color
	path       pathBuilder
	closed     bool
}

// NewSVG starts an SVG document of width x height on w
func NewSVG(w io.Writer, width, height int) *SVG {
	out := &errWriter{w: w}
	canvas := svg.New(out)
	canvas.Start(width, height)

	return &SVG{
		out:        out,
		canvas:     canvas,
		width:      float64(width),
		height:     float64(height),
		background: color.Transparent,
	}
}

// SetBackground sets the color painted by Clear
func (s *SVG) SetBackground(c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	s.background = c
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

// Clear paints the background over everything drawn so far
func (s *SVG) Clear() {
	if Opacity(s.background) == 0 {
		return
	}
	s.canvas.Rect(0, 0, int(s.width), int(s.height), "fill:"+HexColor(s.background)+opacityStyle("fill-opacity", s.background))
}

func (s *SVG) BeginPath()                     { s.path.begin() }
func (s *SVG) MoveTo(p geometry.SurfacePoint) { s.path.moveTo(p) }
func (s *SVG) LineTo(p geometry.SurfacePoint) { s.path.lineTo(p) }
func (s *SVG) ClosePath()                     { s.path.closePath() }

func (s *SVG) Stroke(c color.Color, width float64) {
	d := pathData(s.path.snapshot())
	if d == "" {
		return
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s;stroke-linecap:round;stroke-linejoin:round%s",
		HexColor(c), formatFloat(width), opacityStyle("stroke-opacity", c))
	s.canvas.Path(d, style)
}

func (s *SVG) Fill(c color.Color) {
	d := pathData(s.path.snapshot())
	if d == "" {
		return
	}
	s.canvas.Path(d, "fill:"+HexColor(c)+";stroke:none"+opacityStyle("fill-opacity", c))
}

func (s *SVG) Text(text string, at geometry.SurfacePoint, style TextStyle) {
	if text == "" {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "fill:%s;font-family:Arial,Helvetica,sans-serif;font-size:%spx", HexColor(style.Color), formatFloat(style.Size))
	if style.Bold {
		b.WriteString(";font-weight:bold")
	}
	switch style.Align {
	case AlignCenter:
		b.WriteString(";text-anchor:middle")
	case AlignRight:
		b.WriteString(";text-anchor:end")
	}
	switch style.Baseline {
	case BaselineTop:
		b.WriteString(";dominant-baseline:hanging")
	case BaselineMiddle:
		b.WriteString(";dominant-baseline:central")
	case BaselineBottom:
		b.WriteString(";dominant-baseline:text-after-edge")
	}
	b.WriteString(opacityStyle("fill-opacity", style.Color))

	// svgo only takes integer text positions, labels keep the same precision as paths
	fmt.Fprintf(s.canvas.Writer, `<text x="%s" y="%s" style="%s">`, formatFloat(at.X), formatFloat(at.Y), b.String())
	_ = xml.EscapeText(s.canvas.Writer, []byte(text))
	fmt.Fprint(s.canvas.Writer, "</text>\n")
}

// Close ends the document and returns the first write error, if any
func (s *SVG) Close() error {
	if !s.closed {
		s.canvas.End()
		s.closed = true
	}
	if s.out.err != nil {
		return fmt.Errorf("failed to write svg: %w", s.out.err)
	}
	return nil
}

func pathData(subpaths []Subpath) string {
	var b strings.Builder
	for _, sp := range subpaths {
		for i, p := range sp.Points {
			if i == 0 {
				b.WriteString("M")
			} else {
				b.WriteString(" L")
			}
			b.WriteString(formatFloat(p.X))
			b.WriteString(" ")
			b.WriteString(formatFloat(p.Y))
		}
		if sp.Closed {
			b.WriteString(" Z")
		}
		b.WriteString(" ")
	}
	return strings.TrimSpace(b.String())
}

func opacityStyle(prop string, c color.Color) string {
	if c == nil {
		return ""
	}
	a := Opacity(c)
	if a >= 1 {
		return ""
	}
	return ";" + prop + ":" + formatFloat(a)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

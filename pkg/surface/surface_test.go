package surface

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goaxes/pkg/geometry"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func pt(x, y float64) geometry.SurfacePoint {
	return geometry.NewSurfacePoint(x, y)
}

func triangle(s Surface, a, b, c geometry.SurfacePoint) {
	s.BeginPath()
	s.MoveTo(a)
	s.LineTo(b)
	s.LineTo(c)
	s.ClosePath()
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRecorderRecordsOperations(t *testing.T) {
	r := NewRecorder(200, 100)
	w, h := r.Size()
	require.Equal(t, 200.0, w)
	require.Equal(t, 100.0, h)

	r.Clear()
	r.BeginPath()
	r.MoveTo(pt(0, 0))
	r.LineTo(pt(10, 10))
	r.Stroke(red, 2)
	triangle(r, pt(0, 0), pt(5, 0), pt(0, 5))
	r.Fill(red)
	r.Text("X", pt(3, 4), TextStyle{Color: red, Size: 16, Bold: true, Align: AlignCenter, Baseline: BaselineMiddle})

	require.Len(t, r.Ops, 4)
	require.Equal(t, 1, r.Count(OpClear))
	require.Equal(t, 1, r.Count(OpStroke))
	require.Equal(t, 1, r.Count(OpFill))
	require.Equal(t, 1, r.Count(OpText))

	stroke := r.Filter(OpStroke)[0]
	require.Equal(t, 2.0, stroke.Width)
	require.Equal(t, []Subpath{{Points: []geometry.SurfacePoint{pt(0, 0), pt(10, 10)}}}, stroke.Path)

	fill := r.Filter(OpFill)[0]
	require.Len(t, fill.Path, 1)
	require.True(t, fill.Path[0].Closed)
	require.Len(t, fill.Path[0].Points, 3)

	text := r.Filter(OpText)[0]
	require.Equal(t, "X", text.Text)
	require.Equal(t, pt(3, 4), text.At)
	require.Equal(t, AlignCenter, text.Style.Align)
}

func TestRecorderPathIsCopied(t *testing.T) {
	r := NewRecorder(10, 10)
	r.BeginPath()
	r.MoveTo(pt(1, 1))
	r.LineTo(pt(2, 2))
	r.Stroke(red, 1)
	r.LineTo(pt(3, 3))

	require.Len(t, r.Ops[0].Path[0].Points, 2)
}

func TestRecorderBeginPathResets(t *testing.T) {
	r := NewRecorder(10, 10)
	r.BeginPath()
	r.MoveTo(pt(1, 1))
	r.LineTo(pt(2, 2))
	r.BeginPath()
	r.MoveTo(pt(5, 5))
	r.LineTo(pt(6, 6))
	r.Stroke(red, 1)

	require.Len(t, r.Ops[0].Path, 1)
	require.Equal(t, pt(5, 5), r.Ops[0].Path[0].Points[0])
}

func TestRecorderReplay(t *testing.T) {
	src := NewRecorder(50, 50)
	src.Clear()
	triangle(src, pt(0, 0), pt(5, 0), pt(0, 5))
	src.Fill(red)
	src.BeginPath()
	src.MoveTo(pt(0, 0))
	src.LineTo(pt(10, 0))
	src.Stroke(red, 3)
	src.Text("Y", pt(1, 1), TextStyle{Size: 12})

	dst := NewRecorder(50, 50)
	src.Replay(dst)
	require.Equal(t, src.Ops, dst.Ops)
}

func TestSubpathSegments(t *testing.T) {
	open := Subpath{Points: []geometry.SurfacePoint{pt(0, 0), pt(1, 0), pt(1, 1)}}
	closed := open
	closed.Closed = true

	count := func(s Subpath) int {
		n := 0
		s.Segments(func(_, _ geometry.SurfacePoint) { n++ })
		return n
	}
	require.Equal(t, 2, count(open))
	require.Equal(t, 3, count(closed))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#ff0000", color.RGBA{R: 0xff, A: 0xff}},
		{"#00FF00", color.RGBA{G: 0xff, A: 0xff}},
		{"#00f", color.RGBA{B: 0xff, A: 0xff}},
		{"339af0", color.RGBA{R: 0x33, G: 0x9a, B: 0xf0, A: 0xff}},
		{"none", color.Transparent},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#zzzzzz", "#12345", "red"} {
		_, err := ParseColor(bad)
		require.Error(t, err, bad)
	}
}

func TestHexColor(t *testing.T) {
	require.Equal(t, "#339af0", HexColor(color.RGBA{R: 0x33, G: 0x9a, B: 0xf0, A: 0xff}))
	require.Equal(t, "#ff6b6b", HexColor(color.NRGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}))
	require.Equal(t, "none", HexColor(color.Transparent))
	require.Equal(t, "#000000", HexColor(nil))
}

func TestImageLogicalSizeAndRatio(t *testing.T) {
	img := NewImage(10, 5, 2)
	w, h := img.Size()
	require.Equal(t, 10.0, w)
	require.Equal(t, 5.0, h)
	require.Equal(t, image.Rect(0, 0, 20, 10), img.RGBA().Bounds())

	require.Equal(t, 1.0, NewImage(10, 5, 0).PixelRatio())
	require.Equal(t, image.Rect(0, 0, 15, 8), NewImage(10, 5, 1.5).RGBA().Bounds())
}

func TestImageClearUsesBackground(t *testing.T) {
	img := NewImage(4, 4, 1)
	img.SetBackground(color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff})
	img.Clear()
	require.Equal(t, color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}, img.RGBA().RGBAAt(3, 3))
}

func TestImageFillScalesByRatio(t *testing.T) {
	img := NewImage(10, 10, 2)
	img.BeginPath()
	img.MoveTo(pt(0, 0))
	img.LineTo(pt(5, 0))
	img.LineTo(pt(5, 5))
	img.LineTo(pt(0, 5))
	img.ClosePath()
	img.Fill(red)

	rgba := img.RGBA()
	require.Equal(t, red, rgba.RGBAAt(2, 2))
	require.Equal(t, red, rgba.RGBAAt(8, 8))
	require.Equal(t, uint8(0), rgba.RGBAAt(12, 12).A)
}

func TestImageStroke(t *testing.T) {
	img := NewImage(10, 5, 2)
	img.BeginPath()
	img.MoveTo(pt(2, 2.5))
	img.LineTo(pt(8, 2.5))
	img.Stroke(red, 2)

	rgba := img.RGBA()
	require.Equal(t, red, rgba.RGBAAt(10, 5))
	require.Equal(t, red, rgba.RGBAAt(10, 4))
	require.Equal(t, uint8(0), rgba.RGBAAt(10, 0).A)
	require.Equal(t, uint8(0), rgba.RGBAAt(10, 9).A)
}

func TestImageTextAndPNG(t *testing.T) {
	img := NewImage(40, 40, 1)
	img.Text("X", pt(20, 20), TextStyle{Color: red, Size: 20, Bold: true, Align: AlignCenter, Baseline: BaselineMiddle})
	require.NoError(t, img.Err())

	painted := 0
	rgba := img.RGBA()
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if rgba.RGBAAt(x, y).A > 0 {
				painted++
			}
		}
	}
	require.Positive(t, painted)
	// Centered on the anchor, so the corners stay empty
	require.Equal(t, uint8(0), rgba.RGBAAt(0, 0).A)
	require.Equal(t, uint8(0), rgba.RGBAAt(39, 39).A)

	var buf bytes.Buffer
	require.NoError(t, img.WritePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 40, 40), decoded.Bounds())
	require.NoError(t, img.Close())
}

func TestImageWritePNGReportsWriterError(t *testing.T) {
	img := NewImage(4, 4, 1)
	require.Error(t, img.WritePNG(failingWriter{}))
}

func TestSVGOutput(t *testing.T) {
	var buf bytes.Buffer
	s := NewSVG(&buf, 100, 80)
	s.SetBackground(color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff})
	s.Clear()

	s.BeginPath()
	s.MoveTo(pt(0, 0))
	s.LineTo(pt(10, 10.5))
	s.Stroke(red, 2)
	triangle(s, pt(0, 0), pt(5, 0), pt(0, 5))
	s.Fill(color.RGBA{B: 0xff, A: 0xff})
	s.Text("X<", pt(20.4, 30.6), TextStyle{Color: red, Size: 16, Bold: true, Align: AlignCenter, Baseline: BaselineMiddle})
	require.NoError(t, s.Close())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `width="100"`)
	require.Contains(t, out, "fill:#101218")
	require.Contains(t, out, `d="M0 0 L10 10.5"`)
	require.Contains(t, out, "stroke:#ff0000;stroke-width:2")
	require.Contains(t, out, `d="M0 0 L5 0 L0 5 Z"`)
	require.Contains(t, out, "fill:#0000ff;stroke:none")
	require.Contains(t, out, `x="20.4" y="30.6"`)
	require.Contains(t, out, "text-anchor:middle")
	require.Contains(t, out, "dominant-baseline:central")
	require.Contains(t, out, "font-weight:bold")
	require.Contains(t, out, "X&lt;</text>")
	require.Contains(t, out, "</svg>")
}

func TestSVGCloseReportsWriterError(t *testing.T) {
	s := NewSVG(failingWriter{}, 10, 10)
	require.Error(t, s.Close())
}

func newSimulation(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func TestTermSize(t *testing.T) {
	screen := newSimulation(t, 10, 5)
	term := NewTerm(screen, 0, 0)
	w, h := term.Size()
	require.Equal(t, 80.0, w)
	require.Equal(t, 80.0, h)
}

func TestTermStrokeFillText(t *testing.T) {
	screen := newSimulation(t, 10, 5)
	term := NewTerm(screen, DefaultCellWidth, DefaultCellHeight)
	term.Clear()

	term.BeginPath()
	term.MoveTo(pt(4, 72))
	term.LineTo(pt(76, 72))
	term.Stroke(red, 2)
	for x := 0; x < 10; x++ {
		r, _, _, _ := screen.GetContent(x, 4)
		require.Equal(t, '─', r, "cell %d", x)
	}

	triangle(term, pt(0, 0), pt(80, 0), pt(0, 80))
	term.Fill(red)
	r, _, _, _ := screen.GetContent(1, 1)
	require.Equal(t, fillRune, r)
	r, _, _, _ = screen.GetContent(9, 3)
	require.NotEqual(t, fillRune, r)

	term.Text("Z", pt(44, 40), TextStyle{Color: red, Align: AlignCenter})
	r, _, style, _ := screen.GetContent(5, 2)
	require.Equal(t, 'Z', r)
	fg, _, _ := style.Decompose()
	require.Equal(t, tcell.NewRGBColor(0xff, 0, 0), fg)
}

func TestLineRune(t *testing.T) {
	require.Equal(t, '─', lineRune(5, 0))
	require.Equal(t, '│', lineRune(0, -5))
	require.Equal(t, '╲', lineRune(3, 3))
	require.Equal(t, '╱', lineRune(3, -3))
	require.Equal(t, '•', lineRune(0, 0))
}

func TestDrawLine(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	var cells []image.Point
	drawLine(bounds, 0, 0, 4, 4, func(x, y int) { cells = append(cells, image.Pt(x, y)) })
	require.Equal(t, []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}, cells)

	cells = nil
	drawLine(bounds, -3, 2, 2, 2, func(x, y int) { cells = append(cells, image.Pt(x, y)) })
	require.Len(t, cells, 3)
}

func TestFillTriangleStaysInBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 5, 5)
	filled := map[image.Point]bool{}
	fillTriangle(bounds, -10, -10, 20, -10, -10, 20, func(x, y int) {
		p := image.Pt(x, y)
		require.True(t, p.In(bounds), "%v", p)
		filled[p] = true
	})
	require.True(t, filled[image.Pt(0, 0)])
	require.True(t, filled[image.Pt(4, 0)])
}

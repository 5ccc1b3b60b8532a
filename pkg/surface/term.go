package surface

import (
	"image"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/philipparndt/goaxes/pkg/geometry"
)

// Default logical pixels per terminal cell
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

const fillRune = '█'

// Term is a Surface plotting into a tcell screen. Every cell covers
// cellWidth x cellHeight logical pixels. The caller owns the screen and
// calls Show.
type Term struct {
	screen     tcell.Screen
	cellWidth  float64
	cellHeight float64
	background tcell.Color
	path       pathBuilder
}

// NewTerm wraps screen. Non-positive cell sizes fall back to the defaults.
func NewTerm(screen tcell.Screen, cellWidth, cellHeight float64) *Term {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}
	return &Term{
		screen:     screen,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		background: tcell.ColorDefault,
	}
}

// SetBackground sets the cell background used by Clear and all drawing
func (t *Term) SetBackground(c color.Color) {
	if c == nil || Opacity(c) == 0 {
		t.background = tcell.ColorDefault
		return
	}
	t.background = termColor(c)
}

// Size returns the logical size of the screen
func (t *Term) Size() (float64, float64) {
	cols, rows := t.screen.Size()
	return float64(cols) * t.cellWidth, float64(rows) * t.cellHeight
}

func (t *Term) Clear() {
	t.screen.Fill(' ', tcell.StyleDefault.Background(t.background))
}

func (t *Term) BeginPath()                     { t.path.begin() }
func (t *Term) MoveTo(p geometry.SurfacePoint) { t.path.moveTo(p) }
func (t *Term) LineTo(p geometry.SurfacePoint) { t.path.lineTo(p) }
func (t *Term) ClosePath()                     { t.path.closePath() }

// Stroke plots every segment with a rune matching its slope. Width is
// ignored, a cell is the thinnest line a terminal can show.
func (t *Term) Stroke(c color.Color, _ float64) {
	style := t.style(c)
	bounds := t.bounds()

	for _, sp := range t.path.snapshot() {
		sp.Segments(func(from, to geometry.SurfacePoint) {
			x1, y1 := t.cell(from)
			x2, y2 := t.cell(to)
			r := lineRune(x2-x1, y2-y1)
			drawLine(bounds, x1, y1, x2, y2, func(x, y int) {
				t.screen.SetContent(x, y, r, nil, style)
			})
		})
	}
}

// Fill fills every subpath of the current path as a convex polygon
func (t *Term) Fill(c color.Color) {
	style := t.style(c)
	bounds := t.bounds()

	for _, sp := range t.path.snapshot() {
		xs := make([]float64, len(sp.Points))
		ys := make([]float64, len(sp.Points))
		for i, p := range sp.Points {
			xs[i] = p.X / t.cellWidth
			ys[i] = p.Y / t.cellHeight
		}
		fillPolygon(bounds, xs, ys, func(x, y int) {
			t.screen.SetContent(x, y, fillRune, nil, style)
		})
	}
}

// Text writes the label into cells. Size and weight are ignored.
func (t *Term) Text(text string, at geometry.SurfacePoint, style TextStyle) {
	x, y := t.cell(at)
	n := utf8.RuneCountInString(text)
	switch style.Align {
	case AlignCenter:
		x -= n / 2
	case AlignRight:
		x -= n
	}

	st := t.style(style.Color).Bold(style.Bold)
	bounds := t.bounds()
	i := 0
	for _, r := range text {
		if image.Pt(x+i, y).In(bounds) {
			t.screen.SetContent(x+i, y, r, nil, st)
		}
		i++
	}
}

func (t *Term) bounds() image.Rectangle {
	cols, rows := t.screen.Size()
	return image.Rect(0, 0, cols, rows)
}

func (t *Term) cell(p geometry.SurfacePoint) (int, int) {
	return int(math.Floor(p.X / t.cellWidth)), int(math.Floor(p.Y / t.cellHeight))
}

func (t *Term) style(c color.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(termColor(c)).Background(t.background)
}

func termColor(c color.Color) tcell.Color {
	rgba := toRGBA(c)
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}

// lineRune picks a glyph for a segment of cell delta (dx, dy), y down
func lineRune(dx, dy int) rune {
	if dx == 0 && dy == 0 {
		return '•'
	}
	adx, ady := math.Abs(float64(dx)), math.Abs(float64(dy))
	switch {
	case ady <= adx*0.4:
		return '─'
	case adx <= ady*0.4:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

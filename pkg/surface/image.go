package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/philipparndt/goaxes/pkg/geometry"
)

var (
	fontsOnce   sync.Once
	boldFont    *opentype.Font
	regularFont *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse bold font: %w", fontsErr)
			return
		}
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse regular font: %w", fontsErr)
		}
	})
	return fontsErr
}

type faceKey struct {
	size float64
	bold bool
}

// Image is a raster Surface backed by an *image.RGBA.
//
// The surface has a logical size in which all drawing coordinates are given.
// The backing store is that size multiplied by the pixel ratio, so callers
// never deal with device pixels.
type Image struct {
	img        *image.RGBA
	width      float64
	height     float64
	ratio      float64
	background color.Color
	path       pathBuilder
	raster     *vector.Rasterizer
	faces      map[faceKey]font.Face
	err        error
}

// NewImage creates an image surface of width x height logical pixels rendered
// at the given device pixel ratio. A ratio <= 0 is treated as 1.
func NewImage(width, height int, ratio float64) *Image {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	bw := int(math.Ceil(float64(width) * ratio))
	bh := int(math.Ceil(float64(height) * ratio))

	return &Image{
		img:        image.NewRGBA(image.Rect(0, 0, bw, bh)),
		width:      float64(width),
		height:     float64(height),
		ratio:      ratio,
		background: color.Transparent,
		raster:     vector.NewRasterizer(bw, bh),
		faces:      make(map[faceKey]font.Face),
	}
}

// SetBackground sets the color used by Clear
func (m *Image) SetBackground(c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	m.background = c
}

// Size returns the logical size
func (m *Image) Size() (float64, float64) { return m.width, m.height }

// PixelRatio returns the device pixel ratio
func (m *Image) PixelRatio() float64 { return m.ratio }

// RGBA returns the backing image at device resolution
func (m *Image) RGBA() *image.RGBA { return m.img }

// Err returns the first error encountered while drawing, e.g. a font that
// could not be loaded
func (m *Image) Err() error { return m.err }

func (m *Image) Clear() {
	draw.Draw(m.img, m.img.Bounds(), image.NewUniform(m.background), image.Point{}, draw.Src)
}

func (m *Image) BeginPath()                     { m.path.begin() }
func (m *Image) MoveTo(p geometry.SurfacePoint) { m.path.moveTo(p) }
func (m *Image) LineTo(p geometry.SurfacePoint) { m.path.lineTo(p) }
func (m *Image) ClosePath()                     { m.path.closePath() }

// Fill fills every subpath of the current path. Open subpaths are closed
// implicitly.
func (m *Image) Fill(c color.Color) {
	subpaths := m.path.snapshot()
	if len(subpaths) == 0 {
		return
	}

	b := m.img.Bounds()
	m.raster.Reset(b.Dx(), b.Dy())
	for _, sp := range subpaths {
		m.raster.MoveTo(m.scale(sp.Points[0]))
		for _, p := range sp.Points[1:] {
			m.raster.LineTo(m.scale(p))
		}
		m.raster.ClosePath()
	}
	m.raster.Draw(m.img, b, uniform(c), image.Point{})
}

// Stroke draws every segment of the current path as a filled quad of the
// given logical width
func (m *Image) Stroke(c color.Color, width float64) {
	if width <= 0 {
		return
	}
	half := width * m.ratio / 2
	src := uniform(c)
	b := m.img.Bounds()

	for _, sp := range m.path.snapshot() {
		sp.Segments(func(from, to geometry.SurfacePoint) {
			x1, y1 := from.X*m.ratio, from.Y*m.ratio
			x2, y2 := to.X*m.ratio, to.Y*m.ratio
			dx, dy := x2-x1, y2-y1
			length := math.Hypot(dx, dy)
			if length == 0 {
				return
			}
			// Extend by half the width so joints overlap
			ex, ey := dx/length*half, dy/length*half
			nx, ny := -ey, ex
			x1, y1 = x1-ex, y1-ey
			x2, y2 = x2+ex, y2+ey

			m.raster.Reset(b.Dx(), b.Dy())
			m.raster.MoveTo(float32(x1+nx), float32(y1+ny))
			m.raster.LineTo(float32(x2+nx), float32(y2+ny))
			m.raster.LineTo(float32(x2-nx), float32(y2-ny))
			m.raster.LineTo(float32(x1-nx), float32(y1-ny))
			m.raster.ClosePath()
			m.raster.Draw(m.img, b, src, image.Point{})
		})
	}
}

// Text draws a label anchored at the given logical point
func (m *Image) Text(text string, at geometry.SurfacePoint, style TextStyle) {
	if text == "" || style.Size <= 0 {
		return
	}
	face, err := m.face(style.Size*m.ratio, style.Bold)
	if err != nil {
		if m.err == nil {
			m.err = err
		}
		return
	}

	x, y := at.X*m.ratio, at.Y*m.ratio
	advance := fixedToFloat(font.MeasureString(face, text))
	switch style.Align {
	case AlignCenter:
		x -= advance / 2
	case AlignRight:
		x -= advance
	}

	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	switch style.Baseline {
	case BaselineTop:
		y += ascent
	case BaselineMiddle:
		y += (ascent - descent) / 2
	case BaselineBottom:
		y -= descent
	}

	d := font.Drawer{
		Dst:  m.img,
		Src:  uniform(style.Color),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)},
	}
	d.DrawString(text)
}

// WritePNG encodes the backing image as PNG
func (m *Image) WritePNG(w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	if err := png.Encode(w, m.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Close releases cached font faces
func (m *Image) Close() error {
	for k, f := range m.faces {
		_ = f.Close()
		delete(m.faces, k)
	}
	return nil
}

func (m *Image) face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: size, bold: bold}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}

	src := regularFont
	if bold {
		src = boldFont
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	m.faces[key] = f
	return f, nil
}

func (m *Image) scale(p geometry.SurfacePoint) (float32, float32) {
	return float32(p.X * m.ratio), float32(p.Y * m.ratio)
}

// uniform returns a paint source, nil paints black
func uniform(c color.Color) *image.Uniform {
	if c == nil {
		c = color.Black
	}
	return image.NewUniform(c)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

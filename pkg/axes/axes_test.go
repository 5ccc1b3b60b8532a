package axes

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/philipparndt/goaxes/pkg/geometry"
	"github.com/philipparndt/goaxes/pkg/projection"
	"github.com/philipparndt/goaxes/pkg/surface"
)

const tolerance = 1e-9

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
)

func frontEngine(t *testing.T) *projection.Engine {
	t.Helper()
	e, err := projection.NewEngine(&projection.CameraPatch{
		Rotation:     &projection.RotationPatch{Pitch: projection.Float(0), Yaw: projection.Float(0), Roll: projection.Float(0)},
		FocalLength:  projection.Float(400),
		ViewDistance: projection.Float(500),
	})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func assertSurfacePoint(t *testing.T, expected, got geometry.SurfacePoint) {
	t.Helper()
	if math.Abs(expected.X-got.X) > tolerance || math.Abs(expected.Y-got.Y) > tolerance {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestDrawDefaultIssuesThreeOfEach(t *testing.T) {
	e, err := projection.NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	rec := surface.NewRecorder(800, 600)

	if err := Draw(rec, e, &Options{Length: Float(2)}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if n := rec.Count(surface.OpStroke); n != 3 {
		t.Errorf("expected 3 strokes, got %d", n)
	}
	if n := rec.Count(surface.OpFill); n != 3 {
		t.Errorf("expected 3 fills, got %d", n)
	}
	if n := rec.Count(surface.OpText); n != 3 {
		t.Errorf("expected 3 texts, got %d", n)
	}
	if n := rec.Count(surface.OpClear); n != 0 {
		t.Errorf("Draw should not clear the surface, got %d clears", n)
	}

	colors := []color.Color{red, green, blue}
	labels := []string{"X", "Y", "Z"}
	for i, op := range rec.Filter(surface.OpStroke) {
		if op.Color != colors[i] {
			t.Errorf("stroke %d: expected color %v, got %v", i, colors[i], op.Color)
		}
		if op.Width != DefaultLineWidth {
			t.Errorf("stroke %d: expected width %v, got %v", i, DefaultLineWidth, op.Width)
		}
	}
	for i, op := range rec.Filter(surface.OpFill) {
		if op.Color != colors[i] {
			t.Errorf("fill %d: expected color %v, got %v", i, colors[i], op.Color)
		}
		if len(op.Path) != 1 || len(op.Path[0].Points) != 3 || !op.Path[0].Closed {
			t.Errorf("fill %d: expected one closed triangle, got %+v", i, op.Path)
		}
	}
	for i, op := range rec.Filter(surface.OpText) {
		if op.Text != labels[i] {
			t.Errorf("text %d: expected %q, got %q", i, labels[i], op.Text)
		}
		if op.Style.Color != colors[i] {
			t.Errorf("text %d: expected color %v, got %v", i, colors[i], op.Style.Color)
		}
		want := surface.TextStyle{Color: colors[i], Size: DefaultFontSize, Bold: true, Align: surface.AlignCenter, Baseline: surface.BaselineMiddle}
		if op.Style != want {
			t.Errorf("text %d: expected style %+v, got %+v", i, want, op.Style)
		}
	}
}

func TestDrawNilOptionsUsesDefaults(t *testing.T) {
	rec := surface.NewRecorder(800, 600)
	if err := Draw(rec, frontEngine(t), nil); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// X axis end: 400*100/500 = 80 right of center
	stroke := rec.Filter(surface.OpStroke)[0]
	assertSurfacePoint(t, geometry.NewSurfacePoint(400, 300), stroke.Path[0].Points[0])
	assertSurfacePoint(t, geometry.NewSurfacePoint(480, 300), stroke.Path[0].Points[1])
}

func TestLayoutFrontCamera(t *testing.T) {
	frame := Layout(frontEngine(t), 800, 600, DefaultConfig())

	assertSurfacePoint(t, geometry.NewSurfacePoint(400, 300), frame.Origin)

	x := frame.Arrows[X]
	assertSurfacePoint(t, geometry.NewSurfacePoint(480, 300), x.To)
	assertSurfacePoint(t, geometry.NewSurfacePoint(495, 300), x.Label)

	// +Y points up on screen, so the surface y decreases
	y := frame.Arrows[Y]
	assertSurfacePoint(t, geometry.NewSurfacePoint(400, 220), y.To)
	assertSurfacePoint(t, geometry.NewSurfacePoint(400, 205), y.Label)

	// +Z points straight away from the camera
	z := frame.Arrows[Z]
	assertSurfacePoint(t, geometry.NewSurfacePoint(400, 300), z.To)
	assertSurfacePoint(t, geometry.NewSurfacePoint(415, 300), z.Label)

	for i, arrow := range frame.Arrows {
		if arrow.Axis != Axis(i) {
			t.Errorf("arrow %d has axis %v", i, arrow.Axis)
		}
	}
}

func TestLayoutUsesGivenSize(t *testing.T) {
	small := Layout(frontEngine(t), 200, 100, DefaultConfig())
	assertSurfacePoint(t, geometry.NewSurfacePoint(100, 50), small.Origin)
	assertSurfacePoint(t, geometry.NewSurfacePoint(180, 50), small.Arrows[X].To)
}

func TestDrawUsesLogicalSurfaceSize(t *testing.T) {
	img := surface.NewImage(200, 100, 2)
	rec := surface.NewRecorder(img.Size())

	if err := Draw(rec, frontEngine(t), nil); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	first := rec.Filter(surface.OpStroke)[0].Path[0].Points[0]
	assertSurfacePoint(t, geometry.NewSurfacePoint(100, 50), first)
}

func TestArrowHeadHorizontal(t *testing.T) {
	head := ArrowHead(geometry.NewSurfacePoint(0, 0), geometry.NewSurfacePoint(100, 0), 15)

	c := 15 * math.Cos(math.Pi/6)
	assertSurfacePoint(t, geometry.NewSurfacePoint(100, 0), head[0])
	assertSurfacePoint(t, geometry.NewSurfacePoint(100-c, 7.5), head[1])
	assertSurfacePoint(t, geometry.NewSurfacePoint(100-c, -7.5), head[2])
}

func TestArrowHeadVertical(t *testing.T) {
	// Pointing up on screen
	head := ArrowHead(geometry.NewSurfacePoint(0, 100), geometry.NewSurfacePoint(0, 0), 10)

	c := 10 * math.Cos(math.Pi/6)
	assertSurfacePoint(t, geometry.NewSurfacePoint(0, 0), head[0])
	assertSurfacePoint(t, geometry.NewSurfacePoint(5, c), head[1])
	assertSurfacePoint(t, geometry.NewSurfacePoint(-5, c), head[2])
}

func TestArrowHeadSidesHaveArrowSize(t *testing.T) {
	from := geometry.NewSurfacePoint(10, 20)
	to := geometry.NewSurfacePoint(73, -41)
	head := ArrowHead(from, to, 12)

	for i := 1; i < 3; i++ {
		if d := head[i].Distance(to); math.Abs(d-12) > tolerance {
			t.Errorf("corner %d: expected distance 12 from tip, got %v", i, d)
		}
	}
	// Both corners are 30 degrees off the shaft, so 60 degrees apart
	if d := head[1].Distance(head[2]); math.Abs(d-12) > tolerance {
		t.Errorf("expected equilateral head, corner distance %v", d)
	}
}

func TestDrawCustomColorsAndSizes(t *testing.T) {
	rec := surface.NewRecorder(800, 600)
	opts := &Options{
		ArrowSize:   Float(20),
		LineWidth:   Float(3),
		FontSize:    Float(20),
		LabelOffset: Float(20),
		Colors: &ColorOptions{
			X: String("#ff6b6b"),
			Y: String("#51cf66"),
			Z: String("#339af0"),
		},
	}
	if err := Draw(rec, frontEngine(t), opts); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	want := []string{"#ff6b6b", "#51cf66", "#339af0"}
	for i, op := range rec.Filter(surface.OpStroke) {
		if got := surface.HexColor(op.Color); got != want[i] {
			t.Errorf("stroke %d: expected %s, got %s", i, want[i], got)
		}
		if op.Width != 3 {
			t.Errorf("stroke %d: expected width 3, got %v", i, op.Width)
		}
	}
	label := rec.Filter(surface.OpText)[0]
	assertSurfacePoint(t, geometry.NewSurfacePoint(500, 300), label.At)
	if label.Style.Size != 20 {
		t.Errorf("expected font size 20, got %v", label.Style.Size)
	}
}

func TestDrawPartialColors(t *testing.T) {
	rec := surface.NewRecorder(800, 600)
	opts := &Options{Colors: &ColorOptions{Y: String("#123456")}}
	if err := Draw(rec, frontEngine(t), opts); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	fills := rec.Filter(surface.OpFill)
	if fills[0].Color != red || fills[2].Color != blue {
		t.Errorf("unset colors should keep defaults, got %v and %v", fills[0].Color, fills[2].Color)
	}
	if got := surface.HexColor(fills[1].Color); got != "#123456" {
		t.Errorf("expected #123456, got %s", got)
	}
}

func TestDrawInvalidOptionsDrawsNothing(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
	}{
		{"negative length", &Options{Length: Float(-1)}},
		{"negative arrow", &Options{ArrowSize: Float(-5)}},
		{"nan line width", &Options{LineWidth: Float(math.NaN())}},
		{"infinite font", &Options{FontSize: Float(math.Inf(1))}},
		{"nan offset", &Options{LabelOffset: Float(math.NaN())}},
		{"bad color", &Options{Colors: &ColorOptions{Z: String("#xyz")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := surface.NewRecorder(800, 600)
			err := Draw(rec, frontEngine(t), tt.opts)
			if !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", err)
			}
			if len(rec.Ops) != 0 {
				t.Errorf("expected no drawing commands, got %d", len(rec.Ops))
			}
		})
	}
}

func TestDrawDoesNotMutateInputs(t *testing.T) {
	e := frontEngine(t)
	before := e.Camera()
	opts := &Options{Length: Float(50)}

	if err := Draw(surface.NewRecorder(100, 100), e, opts); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if e.Camera() != before {
		t.Errorf("camera changed: %+v", e.Camera())
	}
	if *opts.Length != 50 || opts.ArrowSize != nil || opts.Colors != nil {
		t.Errorf("options changed: %+v", opts)
	}
}

func TestDrawWithFixedStrategy(t *testing.T) {
	rec := surface.NewRecorder(800, 600)
	if err := Draw(rec, projection.Orthographic{}, nil); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	stroke := rec.Filter(surface.OpStroke)[0]
	assertSurfacePoint(t, geometry.NewSurfacePoint(500, 300), stroke.Path[0].Points[1])
}

// batchCounter records how Layout asks for projections
type batchCounter struct {
	single, batches int
}

func (b *batchCounter) Project(p geometry.Point3D) geometry.CenteredPoint {
	b.single++
	return geometry.CenteredPoint{X: p.X, Y: p.Y}
}

func (b *batchCounter) ProjectMultiple(points []geometry.Point3D) []geometry.CenteredPoint {
	b.batches++
	result := make([]geometry.CenteredPoint, len(points))
	for i, p := range points {
		result[i] = geometry.CenteredPoint{X: p.X, Y: p.Y}
	}
	return result
}

func TestLayoutProjectsFrameInOneBatch(t *testing.T) {
	counter := &batchCounter{}
	frame := Layout(counter, 800, 600, DefaultConfig())

	if counter.batches != 1 || counter.single != 0 {
		t.Errorf("expected one batch and no single projections, got %d batches and %d singles", counter.batches, counter.single)
	}
	assertSurfacePoint(t, geometry.NewSurfacePoint(400, 300), frame.Origin)
	assertSurfacePoint(t, geometry.NewSurfacePoint(400+DefaultLength, 300), frame.Arrows[X].To)
	assertSurfacePoint(t, geometry.NewSurfacePoint(400, 300-DefaultLength), frame.Arrows[Y].To)
}

func TestOptionsMerge(t *testing.T) {
	base := Options{
		Length: Float(150),
		Colors: &ColorOptions{X: String("#ff0000")},
	}
	merged := base.Merge(Options{
		FontSize: Float(18),
		Colors:   &ColorOptions{Y: String("#00ffff")},
	})

	if *merged.Length != 150 || *merged.FontSize != 18 {
		t.Errorf("unexpected sizes: %+v", merged)
	}
	if *merged.Colors.X != "#ff0000" || *merged.Colors.Y != "#00ffff" || merged.Colors.Z != nil {
		t.Errorf("unexpected colors: %+v", merged.Colors)
	}
	if base.Colors.Y != nil || base.FontSize != nil {
		t.Errorf("merge changed the receiver: %+v", base)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Length != 100 || cfg.ArrowSize != 15 || cfg.LineWidth != 2 || cfg.FontSize != 16 || cfg.LabelOffset != 15 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Colors != [3]color.Color{red, green, blue} {
		t.Errorf("unexpected default colors: %v", cfg.Colors)
	}
}

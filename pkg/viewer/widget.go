// Package viewer provides a fyne widget that shows the projected axes and
// lets the user orbit the camera by dragging and zoom by scrolling.
package viewer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/goaxes/internal/log"
	"github.com/philipparndt/goaxes/internal/presets"
	"github.com/philipparndt/goaxes/pkg/axes"
	"github.com/philipparndt/goaxes/pkg/projection"
	"github.com/philipparndt/goaxes/pkg/surface"
)

// Interaction defaults
const (
	DefaultDragSensitivity = 0.01  // radians per logical pixel
	DefaultZoomSensitivity = 0.001 // focal length factor per scroll unit
	minZoomFactor          = 0.1
)

// AxesView renders the coordinate axes through a projection engine
type AxesView struct {
	widget.BaseWidget

	engine     *projection.Engine
	mu         sync.Mutex
	projector  projection.Projector
	options    axes.Options
	background color.Color

	raster      *canvas.Raster
	isDragging  bool
	sensitivity float64
	zoomSpeed   float64

	logger         log.Logger
	onCameraChange func(projection.Camera)
}

// NewAxesView creates a view drawing through engine
func NewAxesView(engine *projection.Engine, opts axes.Options, logger log.Logger) *AxesView {
	if logger == nil {
		logger = log.Nop()
	}
	v := &AxesView{
		engine:      engine,
		projector:   engine,
		options:     opts,
		background:  color.White,
		sensitivity: DefaultDragSensitivity,
		zoomSpeed:   DefaultZoomSensitivity,
		logger:      logger,
	}
	v.raster = canvas.NewRaster(v.render)
	v.ExtendBaseWidget(v)
	return v
}

// Engine returns the engine the view draws through
func (v *AxesView) Engine() *projection.Engine {
	return v.engine
}

// SetOnCameraChange registers a callback fired after every camera update
func (v *AxesView) SetOnCameraChange(callback func(projection.Camera)) {
	v.onCameraChange = callback
}

// SetProjector switches to another projector, e.g. a fixed strategy
func (v *AxesView) SetProjector(p projection.Projector) {
	v.mu.Lock()
	if p == nil {
		p = v.engine
	}
	v.projector = p
	v.mu.Unlock()
	v.Refresh()
}

// SetOptions replaces the axes options
func (v *AxesView) SetOptions(opts axes.Options) {
	v.mu.Lock()
	v.options = opts
	v.mu.Unlock()
	v.Refresh()
}

// SetBackground sets the clear color
func (v *AxesView) SetBackground(c color.Color) {
	v.mu.Lock()
	v.background = c
	v.mu.Unlock()
	v.Refresh()
}

// ApplyPreset moves the camera to the preset and uses its axes options
func (v *AxesView) ApplyPreset(p presets.Preset) error {
	if err := v.engine.UpdateCamera(p.Camera); err != nil {
		return err
	}
	v.mu.Lock()
	v.options = p.Axes
	v.mu.Unlock()

	v.logger.WithField("preset", p.Name).Debugf("preset applied")
	v.cameraChanged()
	return nil
}

// UpdateCamera applies a patch and redraws
func (v *AxesView) UpdateCamera(patch projection.CameraPatch) error {
	if err := v.engine.UpdateCamera(patch); err != nil {
		return err
	}
	v.cameraChanged()
	return nil
}

func (v *AxesView) CreateRenderer() fyne.WidgetRenderer {
	return &axesViewRenderer{
		view:    v,
		objects: []fyne.CanvasObject{v.raster},
	}
}

// Dragged orbits the camera: horizontal movement turns yaw, vertical pitch
func (v *AxesView) Dragged(event *fyne.DragEvent) {
	v.isDragging = true

	cam := v.engine.Camera()
	patch := cam.Orbit(float64(event.Dragged.DX), float64(event.Dragged.DY), v.sensitivity)
	if err := v.UpdateCamera(patch); err != nil {
		v.logger.Warnf("ignoring drag: %v", err)
	}
}

func (v *AxesView) DragEnd() {
	v.isDragging = false
}

// Scrolled zooms by scaling the focal length
func (v *AxesView) Scrolled(event *fyne.ScrollEvent) {
	factor := math.Max(minZoomFactor, 1+float64(event.Scrolled.DY)*v.zoomSpeed)

	cam := v.engine.Camera()
	if err := v.UpdateCamera(cam.Zoom(factor)); err != nil {
		v.logger.Warnf("ignoring zoom: %v", err)
	}
}

func (v *AxesView) cameraChanged() {
	if v.onCameraChange != nil {
		v.onCameraChange(v.engine.Camera())
	}
	v.Refresh()
}

// render draws a frame at device resolution. The widget size is the logical
// size, the ratio between the two is the device pixel ratio.
func (v *AxesView) render(w, h int) image.Image {
	v.mu.Lock()
	projector := v.projector
	opts := v.options
	background := v.background
	v.mu.Unlock()

	logicalW, logicalH, ratio := logicalSize(v.Size(), w, h)

	img := surface.NewImage(logicalW, logicalH, ratio)
	defer img.Close()

	img.SetBackground(background)
	img.Clear()
	if err := axes.Draw(img, projector, &opts); err != nil {
		v.logger.Errorf("failed to draw axes: %v", err)
	}
	if err := img.Err(); err != nil {
		v.logger.Errorf("failed to draw labels: %v", err)
	}
	return img.RGBA()
}

func logicalSize(size fyne.Size, w, h int) (int, int, float64) {
	if size.Width <= 0 || size.Height <= 0 {
		return w, h, 1
	}
	ratio := float64(w) / float64(size.Width)
	if ratio <= 0 {
		ratio = 1
	}
	return int(math.Round(float64(w) / ratio)), int(math.Round(float64(h) / ratio)), ratio
}

type axesViewRenderer struct {
	view    *AxesView
	objects []fyne.CanvasObject
}

func (r *axesViewRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
}

func (r *axesViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *axesViewRenderer) Refresh() {
	canvas.Refresh(r.view.raster)
}

func (r *axesViewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *axesViewRenderer) Destroy() {}

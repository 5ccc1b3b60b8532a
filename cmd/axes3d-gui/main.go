package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/goaxes/internal/animate"
	"github.com/philipparndt/goaxes/internal/config"
	"github.com/philipparndt/goaxes/internal/log"
	"github.com/philipparndt/goaxes/internal/presets"
	"github.com/philipparndt/goaxes/pkg/projection"
	"github.com/philipparndt/goaxes/pkg/viewer"
)

type App struct {
	window      fyne.Window
	cfg         *config.Config
	logger      log.Logger
	view        *viewer.AxesView
	home        projection.Camera
	cameraLabel *widget.Label
	stopOrbit   context.CancelFunc
}

func main() {
	cfg := config.Default()
	if len(os.Args) > 1 {
		loaded, err := config.LoadConfig(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := log.NewLogrusLogger(cfg.Logging.Level, cfg.Logging.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("axes3d")

	appInstance := &App{
		window: w,
		cfg:    cfg,
		logger: logger,
	}
	if err := appInstance.setupMainUI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w.Resize(fyne.NewSize(float32(cfg.Surface.Width), float32(cfg.Surface.Height)))
	w.SetOnClosed(appInstance.stopOrbiting)
	w.ShowAndRun()
}

func (a *App) setupMainUI() error {
	engine, projector, err := a.cfg.NewProjector()
	if err != nil {
		return err
	}
	a.home = engine.Camera()

	a.view = viewer.NewAxesView(engine, *a.cfg.ResolveAxes(), a.logger)
	a.view.SetProjector(projector)
	if bg, err := a.cfg.Background(); err == nil {
		a.view.SetBackground(bg)
	}

	a.cameraLabel = widget.NewLabel("")
	a.cameraLabel.TextStyle = fyne.TextStyle{Monospace: true}
	a.view.SetOnCameraChange(a.updateCameraLabel)
	a.updateCameraLabel(engine.Camera())

	presetSelect := widget.NewSelect(presets.Names(), func(name string) {
		p, err := presets.Get(name)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if err := a.view.ApplyPreset(p); err != nil {
			dialog.ShowError(fmt.Errorf("failed to apply preset: %w", err), a.window)
		}
	})
	presetSelect.PlaceHolder = "Preset"
	if a.cfg.Preset != "" {
		presetSelect.SetSelected(a.cfg.Preset)
	}

	resetButton := widget.NewButton("Reset", func() {
		if err := a.view.UpdateCamera(a.home.Patch()); err != nil {
			dialog.ShowError(err, a.window)
		}
	})

	orbitCheck := widget.NewCheck("Orbit", func(on bool) {
		if on {
			a.startOrbiting()
		} else {
			a.stopOrbiting()
		}
	})

	toolbar := container.NewHBox(presetSelect, resetButton, orbitCheck)
	content := container.NewBorder(toolbar, a.cameraLabel, nil, nil, a.view)
	a.window.SetContent(content)
	return nil
}

func (a *App) updateCameraLabel(cam projection.Camera) {
	a.cameraLabel.SetText(fmt.Sprintf("pitch %6.3f  yaw %6.3f  roll %6.3f  focal %6.1f  distance %6.1f",
		cam.Rotation.Pitch, cam.Rotation.Yaw, cam.Rotation.Roll, cam.FocalLength, cam.ViewDistance))
}

// startOrbiting turns the yaw every frame until stopped
func (a *App) startOrbiting() {
	a.stopOrbiting()
	ctx, cancel := context.WithCancel(context.Background())
	a.stopOrbit = cancel

	engine := a.view.Engine()
	step := func(current projection.Camera) projection.CameraPatch {
		return animate.Orbit(animate.DefaultOrbitStep, current.Rotation.Pitch)(current)
	}
	redraw := func() error {
		fyne.Do(func() {
			a.updateCameraLabel(engine.Camera())
			a.view.Refresh()
		})
		return nil
	}

	go func() {
		if err := animate.Loop(ctx, animate.FrameInterval(animate.DefaultFrameRate), engine, step, redraw); err != nil {
			a.logger.Errorf("orbit stopped: %v", err)
		}
	}()
}

func (a *App) stopOrbiting() {
	if a.stopOrbit != nil {
		a.stopOrbit()
		a.stopOrbit = nil
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/philipparndt/goaxes/internal/animate"
	"github.com/philipparndt/goaxes/internal/log"
	"github.com/philipparndt/goaxes/internal/presets"
	"github.com/philipparndt/goaxes/pkg/axes"
	"github.com/philipparndt/goaxes/pkg/projection"
	"github.com/philipparndt/goaxes/pkg/surface"
)

const (
	termRotateStep = 0.1
	termZoomFactor = 1.1
)

var (
	termCamera   cameraFlags
	termOrbit    bool
	termShowcase bool
	termFPS      int
	termCellW    float64
	termCellH    float64
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Interactive axes view in the terminal",
	Long: `Draw the axes in the terminal.

Keys: arrows rotate, +/- zoom, o toggles orbit, n shows the next preset,
r resets the camera, q or Esc quits.`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

func init() {
	rootCmd.AddCommand(termCmd)

	termCamera.register(termCmd)
	termCmd.Flags().BoolVar(&termOrbit, "orbit", false, "Start orbiting around the Y axis")
	termCmd.Flags().BoolVar(&termShowcase, "showcase", false, "Cycle through all presets")
	termCmd.Flags().IntVar(&termFPS, "fps", 25, "Frames per second while orbiting")
	termCmd.Flags().Float64Var(&termCellW, "cell-width", surface.DefaultCellWidth, "Logical pixels per terminal column")
	termCmd.Flags().Float64Var(&termCellH, "cell-height", surface.DefaultCellHeight, "Logical pixels per terminal row")
}

// termView is the state of the interactive terminal view
type termView struct {
	screen    tcell.Screen
	surface   *surface.Term
	engine    *projection.Engine
	projector projection.Projector
	options   axes.Options
	home      projection.Camera
	preset    string
	orbit     bool
}

func newTermView(screen tcell.Screen, engine *projection.Engine, projector projection.Projector, opts axes.Options) *termView {
	return &termView{
		screen:    screen,
		surface:   surface.NewTerm(screen, termCellW, termCellH),
		engine:    engine,
		projector: projector,
		options:   opts,
		home:      engine.Camera(),
	}
}

func (v *termView) draw() error {
	v.surface.Clear()
	if err := axes.Draw(v.surface, v.projector, &v.options); err != nil {
		return err
	}

	cam := v.engine.Camera()
	status := fmt.Sprintf("pitch %.2f  yaw %.2f  focal %.0f", cam.Rotation.Pitch, cam.Rotation.Yaw, cam.FocalLength)
	if v.preset != "" {
		status = v.preset + "  " + status
	}
	if v.orbit {
		status += "  [orbit]"
	}
	_, rows := v.screen.Size()
	drawText(v.screen, 1, rows-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), status)

	v.screen.Show()
	return nil
}

func (v *termView) applyPreset(p presets.Preset) error {
	if err := v.engine.UpdateCamera(p.Camera); err != nil {
		return err
	}
	v.options = p.Axes
	v.preset = p.Name
	return nil
}

// handleKey updates the view for a key press and reports whether to quit
func (v *termView) handleKey(ev *tcell.EventKey) (bool, error) {
	cam := v.engine.Camera()

	var patch *projection.CameraPatch
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyUp:
		patch = rotationPatch(cam, -termRotateStep, 0)
	case tcell.KeyDown:
		patch = rotationPatch(cam, termRotateStep, 0)
	case tcell.KeyLeft:
		patch = rotationPatch(cam, 0, -termRotateStep)
	case tcell.KeyRight:
		patch = rotationPatch(cam, 0, termRotateStep)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true, nil
		case '+', '=':
			p := cam.Zoom(termZoomFactor)
			patch = &p
		case '-', '_':
			p := cam.Zoom(1 / termZoomFactor)
			patch = &p
		case 'o', ' ':
			v.orbit = !v.orbit
		case 'n':
			p, err := presets.Get(presets.Next(v.preset))
			if err != nil {
				return false, err
			}
			if err := v.applyPreset(p); err != nil {
				return false, err
			}
		case 'r':
			p := v.home.Patch()
			patch = &p
		}
	}

	if patch != nil {
		if err := v.engine.UpdateCamera(*patch); err != nil {
			return false, err
		}
	}
	return false, v.draw()
}

func rotationPatch(cam projection.Camera, dPitch, dYaw float64) *projection.CameraPatch {
	return &projection.CameraPatch{
		Rotation: &projection.RotationPatch{
			Pitch: projection.Float(cam.Rotation.Pitch + dPitch),
			Yaw:   projection.Float(cam.Rotation.Yaw + dYaw),
		},
	}
}

// orbitStep turns the yaw while keeping whatever pitch the user has set
func orbitStep(current projection.Camera) projection.CameraPatch {
	return animate.Orbit(animate.DefaultOrbitStep*4, current.Rotation.Pitch)(current)
}

func runTerm(cmd *cobra.Command, args []string) error {
	scene := *cfg
	termCamera.apply(cmd, &scene)
	if err := scene.Validate(); err != nil {
		return err
	}
	engine, projector, err := scene.NewProjector()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer screen.Fini()

	view := newTermView(screen, engine, projector, *scene.ResolveAxes())
	view.preset = scene.Preset
	view.orbit = termOrbit
	if bg, err := scene.Background(); err == nil {
		view.surface.SetBackground(bg)
	}

	// stderr belongs to the screen now
	loopLogger := log.Nop()
	if scene.Logging.LogPath != "" {
		loopLogger = logger
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runTermLoop(ctx, view, loopLogger)
}

func runTermLoop(ctx context.Context, view *termView, logger log.Logger) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := view.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	var showcaseC <-chan time.Time
	var showcase *animate.Showcase
	if termShowcase {
		var err error
		showcase, err = animate.NewShowcase(nil, view.applyPreset, logger)
		if err != nil {
			return err
		}
		ticker := time.NewTicker(animate.DefaultShowcasePeriod)
		defer ticker.Stop()
		showcaseC = ticker.C
	}

	frames := time.NewTicker(animate.FrameInterval(termFPS))
	defer frames.Stop()

	if err := view.draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				quit, err := view.handleKey(ev)
				if err != nil {
					logger.Warnf("key ignored: %v", err)
				}
				if quit {
					return nil
				}
			case *tcell.EventResize:
				view.screen.Sync()
				if err := view.draw(); err != nil {
					return err
				}
			}

		case <-frames.C:
			if !view.orbit {
				continue
			}
			if err := animate.Step(view.engine, orbitStep, view.draw); err != nil {
				return err
			}

		case <-showcaseC:
			if err := showcase.Advance(); err != nil {
				return err
			}
			if err := view.draw(); err != nil {
				return err
			}
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goaxes/internal/config"
	"github.com/philipparndt/goaxes/pkg/axes"
	"github.com/philipparndt/goaxes/pkg/projection"
	"github.com/philipparndt/goaxes/pkg/surface"
)

// cameraFlags override the camera section of the configuration
type cameraFlags struct {
	preset   string
	pitch    float64
	yaw      float64
	roll     float64
	focal    float64
	distance float64
	strategy string
	near     float64
}

func (f *cameraFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "Start from a named preset")
	cmd.Flags().Float64Var(&f.pitch, "pitch", 0, "Camera pitch in radians")
	cmd.Flags().Float64Var(&f.yaw, "yaw", 0, "Camera yaw in radians")
	cmd.Flags().Float64Var(&f.roll, "roll", 0, "Camera roll in radians")
	cmd.Flags().Float64Var(&f.focal, "focal", 0, "Focal length")
	cmd.Flags().Float64Var(&f.distance, "distance", 0, "View distance")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "Projection: perspective, onepoint, isometric or orthographic")
	cmd.Flags().Float64Var(&f.near, "near", 0, "Depth at or below which points collapse to the origin")
}

// apply copies every explicitly set flag into c
func (f *cameraFlags) apply(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("preset") {
		c.Preset = f.preset
	}

	var patch projection.CameraPatch
	rotation := projection.RotationPatch{}
	if flags.Changed("pitch") {
		rotation.Pitch = projection.Float(f.pitch)
	}
	if flags.Changed("yaw") {
		rotation.Yaw = projection.Float(f.yaw)
	}
	if flags.Changed("roll") {
		rotation.Roll = projection.Float(f.roll)
	}
	if rotation != (projection.RotationPatch{}) {
		patch.Rotation = &rotation
	}
	if flags.Changed("focal") {
		patch.FocalLength = projection.Float(f.focal)
	}
	if flags.Changed("distance") {
		patch.ViewDistance = projection.Float(f.distance)
	}
	c.Camera = c.Camera.Then(patch)

	if flags.Changed("strategy") {
		c.Projection.Strategy = f.strategy
	}
	if flags.Changed("near") {
		c.Projection.NearThreshold = f.near
	}
}

// sceneFlags override the axes and surface sections
type sceneFlags struct {
	length      float64
	arrow       float64
	lineWidth   float64
	fontSize    float64
	labelOffset float64
	width       int
	height      int
	ratio       float64
	background  string
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.length, "length", 0, "Axis length in world units")
	cmd.Flags().Float64Var(&f.arrow, "arrow", 0, "Arrowhead size in pixels")
	cmd.Flags().Float64Var(&f.lineWidth, "line-width", 0, "Line width in pixels")
	cmd.Flags().Float64Var(&f.fontSize, "font-size", 0, "Label font size in pixels")
	cmd.Flags().Float64Var(&f.labelOffset, "label-offset", 0, "Label distance from the axis tip in pixels")
	cmd.Flags().IntVar(&f.width, "width", 0, "Surface width in logical pixels")
	cmd.Flags().IntVar(&f.height, "height", 0, "Surface height in logical pixels")
	cmd.Flags().Float64Var(&f.ratio, "ratio", 0, "Device pixel ratio")
	cmd.Flags().StringVar(&f.background, "background", "", "Background color (#rrggbb or none)")
}

func (f *sceneFlags) apply(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()

	var opts axes.Options
	if flags.Changed("length") {
		opts.Length = axes.Float(f.length)
	}
	if flags.Changed("arrow") {
		opts.ArrowSize = axes.Float(f.arrow)
	}
	if flags.Changed("line-width") {
		opts.LineWidth = axes.Float(f.lineWidth)
	}
	if flags.Changed("font-size") {
		opts.FontSize = axes.Float(f.fontSize)
	}
	if flags.Changed("label-offset") {
		opts.LabelOffset = axes.Float(f.labelOffset)
	}
	c.Axes = c.Axes.Merge(opts)

	if flags.Changed("width") {
		c.Surface.Width = f.width
	}
	if flags.Changed("height") {
		c.Surface.Height = f.height
	}
	if flags.Changed("ratio") {
		c.Surface.PixelRatio = f.ratio
	}
	if flags.Changed("background") {
		c.Surface.Background = f.background
	}
}

// renderFrame draws one frame of the scene to w in the given format
func renderFrame(c *config.Config, format string, w io.Writer) error {
	_, projector, err := c.NewProjector()
	if err != nil {
		return err
	}
	background, err := c.Background()
	if err != nil {
		return err
	}

	switch format {
	case config.FormatSVG:
		s := surface.NewSVG(w, c.Surface.Width, c.Surface.Height)
		s.SetBackground(background)
		s.Clear()
		if err := axes.Draw(s, projector, c.ResolveAxes()); err != nil {
			return err
		}
		return s.Close()

	default:
		img := surface.NewImage(c.Surface.Width, c.Surface.Height, c.Surface.PixelRatio)
		defer img.Close()
		img.SetBackground(background)
		img.Clear()
		if err := axes.Draw(img, projector, c.ResolveAxes()); err != nil {
			return err
		}
		return img.WritePNG(w)
	}
}

// renderFile validates the scene and writes one frame to path
func renderFile(c *config.Config, path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	format, err := c.OutputFormat()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := renderFrame(c, format, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

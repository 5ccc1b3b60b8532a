package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goaxes/internal/config"
	"github.com/philipparndt/goaxes/internal/presets"
	"github.com/philipparndt/goaxes/pkg/axes"
	"github.com/philipparndt/goaxes/pkg/projection"
)

var (
	demoDir    string
	demoFormat string
	demoScene  sceneFlags
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render every preset into a directory",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVarP(&demoDir, "dir", "d", "demo", "Output directory")
	demoCmd.Flags().StringVar(&demoFormat, "format", config.FormatPNG, "Output format: png or svg")
	demoScene.register(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	for _, name := range presets.Names() {
		scene := *cfg
		// the preset decides camera and axes, flags still apply on top
		scene.Preset = name
		scene.Camera = projection.CameraPatch{}
		scene.Axes = axes.Options{}
		demoScene.apply(cmd, &scene)
		scene.Output.Format = demoFormat
		scene.Output.Path = filepath.Join(demoDir, fmt.Sprintf("%s.%s", name, demoFormat))

		if err := renderFile(&scene, scene.Output.Path); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		logger.WithField("preset", name).Infof("rendered %s", scene.Output.Path)
	}
	return nil
}

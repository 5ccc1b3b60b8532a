package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goaxes/internal/config"
	"github.com/philipparndt/goaxes/pkg/watcher"
)

var (
	renderCamera cameraFlags
	renderScene  sceneFlags
	renderOutput string
	renderFormat string
	renderWatch  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the axes to a PNG or SVG file",
	Long: `Render one frame of the scene. The format is taken from --format, the
configuration, or the output file extension. With --watch the frame is
rendered again every time the configuration file changes.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCamera.register(renderCmd)
	renderScene.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (.png or .svg)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "Output format: png or svg")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Re-render when the configuration file changes")
}

// applyRenderFlags applies the command line on top of a loaded configuration
func applyRenderFlags(cmd *cobra.Command, base *config.Config) *config.Config {
	c := *base
	renderCamera.apply(cmd, &c)
	renderScene.apply(cmd, &c)
	if cmd.Flags().Changed("output") {
		c.Output.Path = renderOutput
	}
	if cmd.Flags().Changed("format") {
		c.Output.Format = renderFormat
	}
	return &c
}

func runRender(cmd *cobra.Command, args []string) error {
	scene := applyRenderFlags(cmd, cfg)
	if err := renderFile(scene, scene.Output.Path); err != nil {
		return err
	}
	logger.WithField("path", scene.Output.Path).Infof("rendered frame")

	if !renderWatch {
		return nil
	}
	if configPath == "" {
		return fmt.Errorf("--watch needs a configuration file (--config)")
	}
	return watchConfig(cmd)
}

func watchConfig(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	err = fw.Watch([]string{configPath}, func(path string) {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			logger.Errorf("keeping previous frame: %v", err)
			return
		}
		scene := applyRenderFlags(cmd, loaded)
		if err := renderFile(scene, scene.Output.Path); err != nil {
			logger.Errorf("failed to render: %v", err)
			return
		}
		logger.WithField("path", scene.Output.Path).Infof("rendered frame")
	})
	if err != nil {
		return err
	}

	fw.Start(ctx)
	logger.WithField("path", configPath).Infof("watching for changes, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goaxes/internal/config"
	"github.com/philipparndt/goaxes/internal/log"
	"github.com/philipparndt/goaxes/version"
)

var (
	configPath string
	logLevel   string
	logDir     string

	// set by the root pre-run for every subcommand
	cfg    *config.Config
	logger log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "axes3d",
	Short: "Project and draw 3D coordinate axes",
	Long: `axes3d projects the three world axes through a perspective camera and
draws them as colored arrows with X, Y and Z labels. Frames can be written as
PNG or SVG, inspected point by point, or viewed live in the terminal.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Scene configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Also write logs to this directory")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-dir") {
		cfg.Logging.LogPath = logDir
	}

	logger, err = log.NewLogrusLogger(cfg.Logging.Level, cfg.Logging.LogPath)
	if err != nil {
		return err
	}
	if configPath != "" {
		logger.WithField("path", configPath).Debugf("configuration loaded")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

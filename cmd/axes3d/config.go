package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configCamera cameraFlags
	configScene  sceneFlags
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective scene configuration as YAML",
	Long: `Print the configuration after defaults, the configuration file and the
command line flags have been combined. The output can be saved and passed back
with --config.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCamera.register(configCmd)
	configScene.register(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	scene := *cfg
	configCamera.apply(cmd, &scene)
	configScene.apply(cmd, &scene)
	if err := scene.Validate(); err != nil {
		return err
	}

	data, err := scene.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

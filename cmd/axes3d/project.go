package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goaxes/pkg/geometry"
	"github.com/philipparndt/goaxes/pkg/projection"
)

var (
	projectCamera cameraFlags
	projectScene  sceneFlags
)

var projectCmd = &cobra.Command{
	Use:   "project X Y Z",
	Short: "Project a single world point",
	Long: `Print where a world point lands on screen, in centered coordinates (origin
in the middle, +y up) and surface coordinates (origin top-left, +y down).`,
	Args: cobra.ExactArgs(3),
	RunE: runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCamera.register(projectCmd)
	projectScene.register(projectCmd)
}

func parsePoint(args []string) (geometry.Point3D, error) {
	var v [3]float64
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return geometry.Point3D{}, fmt.Errorf("invalid coordinate %q: %w", arg, err)
		}
		v[i] = f
	}
	return geometry.NewPoint3D(v[0], v[1], v[2]), nil
}

func runProject(cmd *cobra.Command, args []string) error {
	point, err := parsePoint(args)
	if err != nil {
		return err
	}

	scene := *cfg
	projectCamera.apply(cmd, &scene)
	projectScene.apply(cmd, &scene)
	if err := scene.Validate(); err != nil {
		return err
	}

	engine, projector, err := scene.NewProjector()
	if err != nil {
		return err
	}

	width, height := float64(scene.Surface.Width), float64(scene.Surface.Height)
	cam := engine.Camera()

	fmt.Printf("Point: (%.6f, %.6f, %.6f)\n", point.X, point.Y, point.Z)
	fmt.Printf("Camera: pitch %.4f, yaw %.4f, roll %.4f, focal %.2f, distance %.2f\n\n",
		cam.Rotation.Pitch, cam.Rotation.Yaw, cam.Rotation.Roll, cam.FocalLength, cam.ViewDistance)

	var centered geometry.CenteredPoint
	if projector == projection.Projector(engine) {
		var depth float64
		var visible bool
		centered, depth, visible = engine.ProjectDepth(point)
		cs := engine.ToCameraSpace(point)
		fmt.Printf("Camera space: (%.6f, %.6f, %.6f)\n", cs.X, cs.Y, cs.Z)
		fmt.Printf("Depth: %.6f\n", depth)
		if !visible {
			fmt.Printf("Clamped: depth is at or below the near threshold %.2f, point collapses to the origin\n", engine.NearThreshold())
		}
	} else {
		centered = projector.Project(point)
		fmt.Printf("Strategy: %s\n", scene.Projection.Strategy)
	}

	surfacePoint := centered.ToSurface(width, height)
	fmt.Printf("Centered: (%.6f, %.6f)\n", centered.X, centered.Y)
	fmt.Printf("Surface %dx%d: (%.6f, %.6f)\n", scene.Surface.Width, scene.Surface.Height, surfacePoint.X, surfacePoint.Y)
	return nil
}

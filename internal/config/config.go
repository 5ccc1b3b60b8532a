// Package config loads the YAML scene description used by the axes3d
// commands.
package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/goaxes/internal/presets"
	"github.com/philipparndt/goaxes/pkg/axes"
	"github.com/philipparndt/goaxes/pkg/projection"
	"github.com/philipparndt/goaxes/pkg/surface"
)

// Output formats
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Config is a complete scene description
type Config struct {
	Logging    LoggingConfig          `yaml:"logging"`
	Preset     string                 `yaml:"preset,omitempty"`
	Camera     projection.CameraPatch `yaml:"camera"`
	Axes       axes.Options           `yaml:"axes"`
	Surface    SurfaceConfig          `yaml:"surface"`
	Output     OutputConfig           `yaml:"output"`
	Projection ProjectionConfig       `yaml:"projection"`
}

// LoggingConfig controls the logger
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogPath string `yaml:"log_path"`
}

// SurfaceConfig describes the drawing surface in logical pixels
type SurfaceConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	PixelRatio float64 `yaml:"pixel_ratio"`
	Background string  `yaml:"background"`
}

// OutputConfig describes where a rendered frame is written
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// ProjectionConfig selects the projector
type ProjectionConfig struct {
	Strategy      string  `yaml:"strategy"`
	Distance      float64 `yaml:"distance"`       // one-point eye distance
	NearThreshold float64 `yaml:"near_threshold"` // perspective engine clamp
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Surface: SurfaceConfig{
			Width:      800,
			Height:     600,
			PixelRatio: 1,
			Background: "#ffffff",
		},
		Output: OutputConfig{
			Path: "axes.png",
		},
		Projection: ProjectionConfig{
			Strategy:      projection.StrategyPerspective,
			Distance:      100,
			NearThreshold: projection.DefaultNearThreshold,
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults and validates it
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the whole scene, including camera and axes
func (c *Config) Validate() error {
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("surface size must be positive, got %dx%d", c.Surface.Width, c.Surface.Height)
	}
	if !positive(c.Surface.PixelRatio) {
		return fmt.Errorf("surface pixel ratio must be positive, got %v", c.Surface.PixelRatio)
	}
	if _, err := surface.ParseColor(c.Surface.Background); err != nil {
		return fmt.Errorf("surface background: %w", err)
	}

	if _, err := c.OutputFormat(); err != nil {
		return err
	}

	switch c.Projection.Strategy {
	case "", projection.StrategyPerspective, projection.StrategyIsometric, projection.StrategyOrthographic:
	case projection.StrategyOnePoint:
		if !positive(c.Projection.Distance) {
			return fmt.Errorf("one-point distance must be positive, got %v", c.Projection.Distance)
		}
	default:
		return fmt.Errorf("unknown projection strategy %q", c.Projection.Strategy)
	}
	if !positive(c.Projection.NearThreshold) {
		return fmt.Errorf("near threshold must be positive, got %v", c.Projection.NearThreshold)
	}

	if _, err := c.ResolveCamera(); err != nil {
		return err
	}
	if _, err := c.ResolveAxes().Resolve(); err != nil {
		return err
	}
	return nil
}

// positive reports whether v is a finite number above zero
func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ResolveCamera returns the camera patch to create an engine with: the preset
// camera, if any, with the camera section applied on top
func (c *Config) ResolveCamera() (projection.CameraPatch, error) {
	patch := c.Camera
	if c.Preset != "" {
		p, err := presets.Get(c.Preset)
		if err != nil {
			return projection.CameraPatch{}, err
		}
		patch = p.Camera.Then(c.Camera)
	}
	if err := projection.DefaultCamera().Merge(patch).Validate(); err != nil {
		return projection.CameraPatch{}, err
	}
	return patch, nil
}

// ResolveAxes returns the preset axes options, if any, with the axes section
// applied on top
func (c *Config) ResolveAxes() *axes.Options {
	opts := c.Axes
	if c.Preset != "" {
		if p, err := presets.Get(c.Preset); err == nil {
			opts = p.Axes.Merge(c.Axes)
		}
	}
	return &opts
}

// Background returns the parsed surface background
func (c *Config) Background() (color.Color, error) {
	return surface.ParseColor(c.Surface.Background)
}

// OutputFormat returns the configured format, or the one implied by the output
// path extension
func (c *Config) OutputFormat() (string, error) {
	format := strings.ToLower(c.Output.Format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Output.Path)), ".")
	}
	switch format {
	case FormatPNG, FormatSVG:
		return format, nil
	case "":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

// NewProjector creates the engine and the projector selected by the
// projection section. The engine is returned even when a fixed strategy is
// selected, so callers can keep updating the camera.
func (c *Config) NewProjector() (*projection.Engine, projection.Projector, error) {
	patch, err := c.ResolveCamera()
	if err != nil {
		return nil, nil, err
	}
	engine, err := projection.NewEngine(&patch, projection.WithNearThreshold(c.Projection.NearThreshold))
	if err != nil {
		return nil, nil, err
	}
	p, err := projection.StrategyByName(c.Projection.Strategy, engine, c.Projection.Distance)
	if err != nil {
		return nil, nil, err
	}
	return engine, p, nil
}

// Marshal encodes the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("error encoding config: %w", err)
	}
	return data, nil
}

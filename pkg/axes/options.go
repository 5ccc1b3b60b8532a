package axes

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/philipparndt/goaxes/pkg/surface"
)

// ErrInvalidOptions is returned when axes options cannot be resolved
var ErrInvalidOptions = errors.New("invalid axes options")

// Default axes appearance
const (
	DefaultLength      = 100.0
	DefaultArrowSize   = 15.0
	DefaultLineWidth   = 2.0
	DefaultFontSize    = 16.0
	DefaultLabelOffset = 15.0

	DefaultColorX = "#ff0000"
	DefaultColorY = "#00ff00"
	DefaultColorZ = "#0000ff"
)

// Options is a partial axes configuration. Nil fields use the defaults.
type Options struct {
	Length      *float64      `yaml:"length,omitempty"`
	ArrowSize   *float64      `yaml:"arrow_size,omitempty"`
	LineWidth   *float64      `yaml:"line_width,omitempty"`
	FontSize    *float64      `yaml:"font_size,omitempty"`
	LabelOffset *float64      `yaml:"label_offset,omitempty"`
	Colors      *ColorOptions `yaml:"colors,omitempty"`
}

// ColorOptions holds per-axis hex colors
type ColorOptions struct {
	X *string `yaml:"x,omitempty"`
	Y *string `yaml:"y,omitempty"`
	Z *string `yaml:"z,omitempty"`
}

// Config is a fully resolved axes configuration
type Config struct {
	Length      float64
	ArrowSize   float64
	LineWidth   float64
	FontSize    float64
	LabelOffset float64
	Colors      [3]color.Color // indexed by Axis
}

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }

// Merge returns o with every non-nil field of next applied on top
func (o Options) Merge(next Options) Options {
	out := o
	out.Length = pickFloat(next.Length, o.Length)
	out.ArrowSize = pickFloat(next.ArrowSize, o.ArrowSize)
	out.LineWidth = pickFloat(next.LineWidth, o.LineWidth)
	out.FontSize = pickFloat(next.FontSize, o.FontSize)
	out.LabelOffset = pickFloat(next.LabelOffset, o.LabelOffset)
	if next.Colors != nil {
		colors := ColorOptions{}
		if o.Colors != nil {
			colors = *o.Colors
		}
		colors.X = pickString(next.Colors.X, colors.X)
		colors.Y = pickString(next.Colors.Y, colors.Y)
		colors.Z = pickString(next.Colors.Z, colors.Z)
		out.Colors = &colors
	}
	return out
}

// Resolve fills in defaults and validates the result. A nil receiver
// resolves to the defaults.
func (o *Options) Resolve() (Config, error) {
	if o == nil {
		o = &Options{}
	}

	cfg := Config{
		Length:      value(o.Length, DefaultLength),
		ArrowSize:   value(o.ArrowSize, DefaultArrowSize),
		LineWidth:   value(o.LineWidth, DefaultLineWidth),
		FontSize:    value(o.FontSize, DefaultFontSize),
		LabelOffset: value(o.LabelOffset, DefaultLabelOffset),
	}

	sizes := []struct {
		name string
		v    float64
	}{
		{"length", cfg.Length},
		{"arrow size", cfg.ArrowSize},
		{"line width", cfg.LineWidth},
		{"font size", cfg.FontSize},
	}
	for _, s := range sizes {
		if math.IsNaN(s.v) || math.IsInf(s.v, 0) || s.v < 0 {
			return Config{}, fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidOptions, s.name, s.v)
		}
	}
	// the label offset may point the other way
	if math.IsNaN(cfg.LabelOffset) || math.IsInf(cfg.LabelOffset, 0) {
		return Config{}, fmt.Errorf("%w: label offset %v is not finite", ErrInvalidOptions, cfg.LabelOffset)
	}

	hex := [3]string{DefaultColorX, DefaultColorY, DefaultColorZ}
	if o.Colors != nil {
		hex[X] = stringValue(o.Colors.X, hex[X])
		hex[Y] = stringValue(o.Colors.Y, hex[Y])
		hex[Z] = stringValue(o.Colors.Z, hex[Z])
	}
	for _, axis := range All {
		c, err := surface.ParseColor(hex[axis])
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s color: %v", ErrInvalidOptions, axis, err)
		}
		cfg.Colors[axis] = c
	}

	return cfg, nil
}

// DefaultConfig returns the resolved defaults
func DefaultConfig() Config {
	cfg, _ := (*Options)(nil).Resolve()
	return cfg
}

func value(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func stringValue(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func pickFloat(v, current *float64) *float64 {
	if v == nil {
		return current
	}
	return Float(*v)
}

func pickString(v, current *string) *string {
	if v == nil {
		return current
	}
	return String(*v)
}

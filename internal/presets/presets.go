// Package presets holds the named camera and axes setups used by the demo,
// the terminal view and the GUI.
package presets

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/goaxes/pkg/axes"
	"github.com/philipparndt/goaxes/pkg/projection"
)

// ErrUnknownPreset is returned by Get for names that do not exist
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a complete camera plus the axes appearance to draw with it
type Preset struct {
	Name        string
	Description string
	Camera      projection.CameraPatch
	Axes        axes.Options
}

// Preset names in showcase order
const (
	Standard     = "standard"
	Wide         = "wide"
	Telephoto    = "telephoto"
	Top          = "top"
	Front        = "front"
	Side         = "side"
	Isometric    = "isometric"
	CustomColors = "custom-colors"
)

// DemoAxes is the axes appearance shared by the presets
func DemoAxes() axes.Options {
	return axes.Options{
		Length:    axes.Float(150),
		ArrowSize: axes.Float(15),
		LineWidth: axes.Float(2),
		FontSize:  axes.Float(18),
	}
}

func camera(pitch, yaw, focal, distance float64) projection.CameraPatch {
	return projection.CameraPatch{
		Position: &projection.PositionPatch{
			X: projection.Float(0),
			Y: projection.Float(0),
			Z: projection.Float(0),
		},
		Rotation: &projection.RotationPatch{
			Pitch: projection.Float(pitch),
			Yaw:   projection.Float(yaw),
			Roll:  projection.Float(0),
		},
		FocalLength:  projection.Float(focal),
		ViewDistance: projection.Float(distance),
	}
}

// build constructs the presets. Patches hold pointers, so every caller gets
// its own copy.
func build() []Preset {
	custom := DemoAxes().Merge(axes.Options{
		ArrowSize:   axes.Float(20),
		LineWidth:   axes.Float(3),
		FontSize:    axes.Float(20),
		LabelOffset: axes.Float(20),
		Colors: &axes.ColorOptions{
			X: axes.String("#ff6b6b"),
			Y: axes.String("#51cf66"),
			Z: axes.String("#339af0"),
		},
	})

	return []Preset{
		{Standard, "standard perspective", camera(-0.5, 0.6, 400, 500), DemoAxes()},
		{Wide, "wide angle, strong perspective", camera(-0.5, 0.6, 250, 400), DemoAxes()},
		{Telephoto, "telephoto, flattened perspective", camera(-0.5, 0.6, 800, 800), DemoAxes()},
		{Top, "looking down from above", camera(-1.5, 0.3, 400, 500), DemoAxes()},
		{Front, "front view, Z points away", camera(0, 0, 400, 500), DemoAxes()},
		{Side, "side view", camera(0, math.Pi/2, 400, 500), DemoAxes()},
		{Isometric, "near-isometric perspective", camera(-math.Atan(math.Sin(math.Pi/4)), math.Pi/4, 600, 800), DemoAxes()},
		{CustomColors, "standard camera with custom colors", camera(-0.5, 0.6, 400, 500), custom},
	}
}

// All returns every preset in showcase order
func All() []Preset {
	return build()
}

// Names returns the preset names in showcase order
func Names() []string {
	all := build()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// Get returns the preset with the given name
func Get(name string) (Preset, error) {
	for _, p := range build() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w %q (available: %v)", ErrUnknownPreset, name, Names())
}

// Next returns the name following current in showcase order, wrapping around.
// Unknown names start over at the first preset.
func Next(current string) string {
	names := Names()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

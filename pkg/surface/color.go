package surface

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses "#rrggbb" or "#rgb". "none" and "transparent" yield a fully
// transparent color.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "none", "transparent":
		return color.Transparent, nil
	case "":
		return nil, fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return nil, fmt.Errorf("invalid color %q: expected #rgb or #rrggbb", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// HexColor formats a color as "#rrggbb", ignoring alpha. Fully transparent
// colors are returned as "none".
func HexColor(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cf.Clamped().Hex()
}

// Opacity returns the alpha channel of c in [0, 1]
func Opacity(c color.Color) float64 {
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

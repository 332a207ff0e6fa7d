package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB stroke or fill color.
type Color struct {
	R, G, B uint8
}

// RGB creates a Color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Common colors.
var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)
	ColorRed   = RGB(0xaa, 0, 0)
)

var namedColors = map[string]Color{
	"black": ColorBlack,
	"white": ColorWhite,
	"red":   RGB(255, 0, 0),
	"green": RGB(0, 128, 0),
	"blue":  RGB(0, 0, 255),
}

// ParseColor parses "#rgb", "#rrggbb" or one of a few CSS color names.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unsupported color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGB(c.RGB255()), nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	cf, _ := colorful.MakeColor(c.RGBA())
	return cf.Hex()
}

// RGBA converts to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

package model

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor reads a hex colour in #rgb, #rrggbb or #rrggbbaa form.
func ParseColor(s string) (colorful.Color, float64, error) {
	hex := strings.TrimSpace(s)
	alpha := 1.0
	if len(hex) == 9 && strings.HasPrefix(hex, "#") {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("bad alpha in %q", s)
		}
		alpha = float64(a) / 255
		hex = hex[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("not a hex colour: %q", s)
	}
	return c, alpha, nil
}

// NRGBA converts a hex colour to a non-premultiplied colour, scaling its alpha by opacity.
func NRGBA(s string, opacity float64) (color.NRGBA, error) {
	c, alpha, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha*opacity)*255 + 0.5)}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	barLow  = colorful.Color{R: 1, G: 0, B: 0}
	barMid  = colorful.Color{R: 1, G: 0.75, B: 0}
	barHigh = colorful.Color{R: 0, G: 1, B: 0}
	white   = colorful.Color{R: 1, G: 1, B: 1}
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return ToTCell(c), nil
}

// ToTCell converts a colorful.Color to a tcell RGB color.
func ToTCell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ValueColor maps a normalized value in [0, 1] onto the red → amber → green
// bar gradient.
func ValueColor(normalized float64) colorful.Color {
	switch {
	case normalized < 0:
		normalized = 0
	case normalized > 1:
		normalized = 1
	}
	if normalized < 0.5 {
		return barLow.BlendRgb(barMid, normalized*2)
	}
	return barMid.BlendRgb(barHigh, normalized*2-1)
}

// Tint blends white toward red (negative) or green (positive) by amount.
func Tint(positive bool, amount float64) colorful.Color {
	target := barLow
	if positive {
		target = barHigh
	}
	return white.BlendRgb(target, amount)
}

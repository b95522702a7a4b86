package glyph

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a hex color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color32 is an 8-bit RGBA color.
type Color32 struct {
	R, G, B, A uint8
}

// Predefined colors.
var (
	White       = Color32{255, 255, 255, 255}
	Black       = Color32{0, 0, 0, 255}
	Transparent = Color32{0, 0, 0, 0}
)

// RGBA creates a color from 8-bit channel values.
func RGBA(r, g, b, a uint8) Color32 {
	return Color32{r, g, b, a}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color32) WithAlpha(a uint8) Color32 {
	c.A = a
	return c
}

// Lerp interpolates each channel towards other. t is not clamped, so it
// may overshoot either end; each channel saturates at 0 and 255.
func (c Color32) Lerp(other Color32, t float32) Color32 {
	return Color32{
		R: lerpChannel(c.R, other.R, t),
		G: lerpChannel(c.G, other.G, t),
		B: lerpChannel(c.B, other.B, t),
		A: lerpChannel(c.A, other.A, t),
	}
}

func lerpChannel(a, b uint8, t float32) uint8 {
	v := float32(a) + t*(float32(b)-float32(a))
	return uint8(math.Round(float64(max(0, min(255, v)))))
}

// Hex formats the color as #RRGGBBAA.
func (c Color32) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func (c Color32) String() string {
	return c.Hex()
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA (leading # optional).
func ParseHex(s string) (Color32, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "FF"
	}
	if len(h) != 8 {
		return Color32{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color32{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color32{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

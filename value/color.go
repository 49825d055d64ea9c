// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package value

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Common colors
var (
	Black   = Color{0, 0, 0}
	White   = Color{255, 255, 255}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Yellow  = Color{255, 255, 0}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
)

// Max returns the largest of the three channels.
func (c Color) Max() uint8 {
	return max(c.R, c.G, c.B)
}

// Colorful converts c to a go-colorful color with components in [0,1].
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values.
func FromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// HSV returns hue in degrees [0,360), saturation and value in [0,1].
func (c Color) HSV() (h, s, v float64) {
	return c.Colorful().Hsv()
}

// FromHSV builds a color from hue in degrees and saturation/value in [0,1].
func FromHSV(h, s, v float64) Color {
	return FromColorful(colorful.Hsv(h, ClampIntensity(s), ClampIntensity(v)))
}

// WithValue keeps the hue and saturation of c and replaces its HSV value.
// Black has no hue; it scales toward gray.
func (c Color) WithValue(v float64) Color {
	h, s, _ := c.HSV()
	return FromHSV(h, s, v)
}

// NRGBA returns c with the given alpha as a standard library color.
func (c Color) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// FromNRGBA drops the alpha channel of an image/color value.
func FromNRGBA(n color.NRGBA) Color {
	return Color{R: n.R, G: n.G, B: n.B}
}

// AlphaOf maps an intensity to an 8-bit alpha, rounding to nearest.
func AlphaOf(intensity float64) uint8 {
	return uint8(math.Round(ClampIntensity(intensity) * 255))
}

// String returns the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses "#rgb", "#rrggbb" (leading # optional) or one of the
// common color names. It reports false on malformed input.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "white":
		return White, true
	case "black":
		return Black, true
	case "red":
		return Red, true
	case "green":
		return Green, true
	case "blue":
		return Blue, true
	case "yellow":
		return Yellow, true
	case "cyan":
		return Cyan, true
	case "magenta":
		return Magenta, true
	}
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	var v [6]uint8
	switch len(s) {
	case 3:
		for i := 0; i < 3; i++ {
			n, ok := hexDigit(s[i])
			if !ok {
				return Color{}, false
			}
			v[i] = n * 17
		}
		return Color{R: v[0], G: v[1], B: v[2]}, true
	case 6:
		for i := 0; i < 6; i++ {
			n, ok := hexDigit(s[i])
			if !ok {
				return Color{}, false
			}
			v[i] = n
		}
		return Color{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5]}, true
	default:
		return Color{}, false
	}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

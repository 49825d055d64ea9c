// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package value defines the closed set of lighting values an intent can carry.
//
// There are exactly four variants: [Intensity], [Discrete], [RGB] and
// [Lighting]. The [Variant] constraint is a type set over those four types,
// so generic code parameterized by it cannot be instantiated with anything
// else.
//
// Intensities are unit-interval floats. Constructors clamp; values outside
// [0,1] may exist transiently during arithmetic but are never stored through
// a constructor.
package value

import (
	"fmt"
	"math"
)

// Kind identifies a value variant.
type Kind uint8

const (
	// KindIntensity is an intensity-only value.
	KindIntensity Kind = iota
	// KindDiscrete is a named discrete color with an intensity.
	KindDiscrete
	// KindRGB is a full RGB color whose intensity is its HSV value.
	KindRGB
	// KindLighting is a color plus an independent intensity.
	KindLighting
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindIntensity:
		return "Intensity"
	case KindDiscrete:
		return "Discrete"
	case KindRGB:
		return "RGB"
	case KindLighting:
		return "Lighting"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Variant is satisfied by the four value variants and nothing else.
type Variant interface {
	Intensity | Discrete | RGB | Lighting
	Kind() Kind
}

// Intensity is a brightness without color.
type Intensity struct {
	Intensity float64
}

// NewIntensity returns an Intensity with i clamped to [0,1].
func NewIntensity(i float64) Intensity {
	return Intensity{Intensity: ClampIntensity(i)}
}

// Kind returns KindIntensity.
func (Intensity) Kind() Kind { return KindIntensity }

// Discrete is one of a channel's fixed colors at some intensity, as used by
// channels built from independent single-color emitters.
type Discrete struct {
	Color     Color
	Intensity float64
}

// NewDiscrete returns a Discrete value with i clamped to [0,1].
func NewDiscrete(c Color, i float64) Discrete {
	return Discrete{Color: c, Intensity: ClampIntensity(i)}
}

// Kind returns KindDiscrete.
func (Discrete) Kind() Kind { return KindDiscrete }

// RGB is a full color. Its intensity is derived, not stored.
type RGB struct {
	Color Color
}

// NewRGB returns an RGB value.
func NewRGB(c Color) RGB {
	return RGB{Color: c}
}

// Kind returns KindRGB.
func (RGB) Kind() Kind { return KindRGB }

// Intensity returns the largest channel normalized to [0,1], i.e. the HSV
// value of the color.
func (v RGB) Intensity() float64 {
	return float64(v.Color.Max()) / 255
}

// Lighting is the generic lighting value: a hue/saturation carried by Color
// and an independent intensity. Color is usually a full-brightness color or
// White.
type Lighting struct {
	Color     Color
	Intensity float64
}

// NewLighting returns a Lighting value with i clamped to [0,1].
func NewLighting(c Color, i float64) Lighting {
	return Lighting{Color: c, Intensity: ClampIntensity(i)}
}

// Kind returns KindLighting.
func (Lighting) Kind() Kind { return KindLighting }

// WithIntensity returns a copy of v with a new, clamped intensity.
func (v Lighting) WithIntensity(i float64) Lighting {
	return Lighting{Color: v.Color, Intensity: ClampIntensity(i)}
}

// FullColor returns the color as it would appear at the value's intensity:
// hue and saturation from Color, HSV value from Intensity.
func (v Lighting) FullColor() Color {
	return v.Color.WithValue(v.Intensity)
}

// ClampIntensity clamps x to [0,1]. NaN becomes 0.
func ClampIntensity(x float64) float64 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= 1:
		return 1
	default:
		return x
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"image/color"

	"github.com/gogpu/lightshow/intent"
	"github.com/gogpu/lightshow/value"
)

// displayColor shows c at full brightness with the intensity carried by
// alpha, which is how the preview conveys dimming.
func displayColor(c value.Color, intensity float64) color.NRGBA {
	return c.WithValue(1).NRGBA(value.AlphaOf(intensity))
}

// FullColorHandler resolves a single intent state to one display color.
// The zero value is ready to use. Not safe for concurrent use.
type FullColorHandler struct {
	c color.NRGBA
}

// FullColor returns the display color of s: its hue at full brightness
// with alpha proportional to its intensity.
func (h *FullColorHandler) FullColor(s intent.State) color.NRGBA {
	h.c = color.NRGBA{}
	s.Dispatch(h)
	return h.c
}

// HandleIntensity implements intent.Dispatcher. Intensity-only values show
// as white.
func (h *FullColorHandler) HandleIntensity(s intent.Typed[value.Intensity]) {
	h.c = value.White.NRGBA(value.AlphaOf(s.Value().Intensity))
}

// HandleDiscrete implements intent.Dispatcher.
func (h *FullColorHandler) HandleDiscrete(s intent.Typed[value.Discrete]) {
	v := s.Value()
	h.c = displayColor(v.Color, v.Intensity)
}

// HandleRGB implements intent.Dispatcher.
func (h *FullColorHandler) HandleRGB(s intent.Typed[value.RGB]) {
	v := s.Value()
	h.c = displayColor(v.Color, v.Intensity())
}

// HandleLighting implements intent.Dispatcher.
func (h *FullColorHandler) HandleLighting(s intent.Typed[value.Lighting]) {
	v := s.Value()
	h.c = displayColor(v.Color, v.Intensity)
}

// weighted is one distinct color and the highest intensity seen for it.
type weighted struct {
	color     value.Color
	intensity float64
}

// DiscreteHandler resolves the states of a discretely colored channel to one
// color per distinct sub-color. The zero value is ready to use. Not safe for
// concurrent use.
type DiscreteHandler struct {
	acc []weighted
}

// AlphaAffectedColors appends one color per distinct sub-color in states to
// dst, in order of first appearance. Each color's alpha is the highest
// intensity any state gives it. Colors at zero intensity are kept, fully
// transparent, so callers can tell "off" from "absent".
func (h *DiscreteHandler) AlphaAffectedColors(states []intent.State, dst []color.NRGBA) []color.NRGBA {
	h.acc = h.acc[:0]
	for _, s := range states {
		if s != nil {
			s.Dispatch(h)
		}
	}
	for _, w := range h.acc {
		dst = append(dst, w.color.NRGBA(value.AlphaOf(w.intensity)))
	}
	return dst
}

func (h *DiscreteHandler) add(c value.Color, intensity float64) {
	for i := range h.acc {
		if h.acc[i].color == c {
			h.acc[i].intensity = max(h.acc[i].intensity, intensity)
			return
		}
	}
	h.acc = append(h.acc, weighted{color: c, intensity: intensity})
}

// HandleIntensity implements intent.Dispatcher.
func (h *DiscreteHandler) HandleIntensity(s intent.Typed[value.Intensity]) {
	h.add(value.White, s.Value().Intensity)
}

// HandleDiscrete implements intent.Dispatcher.
func (h *DiscreteHandler) HandleDiscrete(s intent.Typed[value.Discrete]) {
	v := s.Value()
	h.add(v.Color, v.Intensity)
}

// HandleRGB implements intent.Dispatcher.
func (h *DiscreteHandler) HandleRGB(s intent.Typed[value.RGB]) {
	v := s.Value()
	h.add(v.Color.WithValue(1), v.Intensity())
}

// HandleLighting implements intent.Dispatcher.
func (h *DiscreteHandler) HandleLighting(s intent.Typed[value.Lighting]) {
	v := s.Value()
	h.add(v.Color.WithValue(1), v.Intensity)
}

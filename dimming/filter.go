// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dimming

import (
	"github.com/gogpu/lightshow/curve"
	"github.com/gogpu/lightshow/intent"
	"github.com/gogpu/lightshow/value"
)

// scratch is a per-variant arena of reusable states owned by one Filter.
// Slots are handed out in order and rewound at the start of every pass, so
// after the first frames the arena stops growing.
type scratch[V value.Variant] struct {
	slots []*intent.Static[V]
	next  int
}

func (s *scratch[V]) take() *intent.Static[V] {
	if s.next == len(s.slots) {
		var zero V
		s.slots = append(s.slots, intent.NewStatic(zero))
	}
	st := s.slots[s.next]
	s.next++
	return st
}

func (s *scratch[V]) rewind() { s.next = 0 }

// Filter remaps the intensity of intent states through a dimming curve.
//
// Reusable inputs (*intent.Static) are rewritten in place and returned.
// Ephemeral inputs are answered with one of the filter's own reusable
// states for that variant, valid until the filter's next pass.
//
// A Filter is not safe for concurrent use. Pipeline branches that run in
// parallel each need their own Filter.
type Filter struct {
	curve curve.Evaluator

	intensity scratch[value.Intensity]
	discrete  scratch[value.Discrete]
	rgb       scratch[value.RGB]
	lighting  scratch[value.Lighting]

	result intent.State
}

// NewFilter returns a filter applying c. A nil c is the linear curve.
func NewFilter(c curve.Evaluator) *Filter {
	f := &Filter{}
	f.SetCurve(c)
	return f
}

// SetCurve replaces the curve. It must not be called while a pass is running.
func (f *Filter) SetCurve(c curve.Evaluator) {
	if c == nil {
		c = curve.Linear()
	}
	f.curve = c
}

// Curve returns the curve in use.
func (f *Filter) Curve() curve.Evaluator {
	return f.curve
}

// Filter applies the curve to s and returns the transformed state, or nil
// when the state is fully dark and should be dropped.
//
// The returned state is either s itself (when reusable) or the filter's
// scratch state for s's variant; it stays valid until the next call.
func (f *Filter) Filter(s intent.State) intent.State {
	f.begin()
	return f.apply(s)
}

// begin rewinds the scratch arenas. Called once per pass.
func (f *Filter) begin() {
	f.intensity.rewind()
	f.discrete.rewind()
	f.rgb.rewind()
	f.lighting.rewind()
}

// apply filters one state within the current pass.
func (f *Filter) apply(s intent.State) intent.State {
	f.result = nil
	s.Dispatch(f)
	r := f.result
	f.result = nil
	return r
}

// remap runs a unit intensity through the curve's percentage domain.
func (f *Filter) remap(i float64) float64 {
	return value.ClampIntensity(f.curve.Evaluate(value.ClampIntensity(i)*100) / 100)
}

// HandleLighting implements intent.Dispatcher. Lighting values at or below
// zero intensity are suppressed. NaN counts as zero.
func (f *Filter) HandleLighting(s intent.Typed[value.Lighting]) {
	lv := s.Value()
	if value.ClampIntensity(lv.Intensity) <= 0 {
		f.result = nil
		return
	}
	out := lv.WithIntensity(f.remap(lv.Intensity))
	if st, ok := s.(*intent.Static[value.Lighting]); ok {
		st.SetValue(out)
		f.result = st
		return
	}
	st := f.lighting.take()
	st.SetValue(out)
	f.result = st
}

// HandleRGB implements intent.Dispatcher. The color is converted to HSV,
// its value replaced by the remapped intensity and converted back, keeping
// hue and saturation.
func (f *Filter) HandleRGB(s intent.Typed[value.RGB]) {
	rv := s.Value()
	h, sat, v := rv.Color.HSV()
	out := value.NewRGB(value.FromHSV(h, sat, f.remap(v)))
	if st, ok := s.(*intent.Static[value.RGB]); ok {
		st.SetValue(out)
		f.result = st
		return
	}
	st := f.rgb.take()
	st.SetValue(out)
	f.result = st
}

// HandleDiscrete implements intent.Dispatcher. The discrete color is kept.
func (f *Filter) HandleDiscrete(s intent.Typed[value.Discrete]) {
	dv := s.Value()
	out := value.NewDiscrete(dv.Color, f.remap(dv.Intensity))
	if st, ok := s.(*intent.Static[value.Discrete]); ok {
		st.SetValue(out)
		f.result = st
		return
	}
	st := f.discrete.take()
	st.SetValue(out)
	f.result = st
}

// HandleIntensity implements intent.Dispatcher.
func (f *Filter) HandleIntensity(s intent.Typed[value.Intensity]) {
	out := value.NewIntensity(f.remap(s.Value().Intensity))
	if st, ok := s.(*intent.Static[value.Intensity]); ok {
		st.SetValue(out)
		f.result = st
		return
	}
	st := f.intensity.take()
	st.SetValue(out)
	f.result = st
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dimming

import (
	"github.com/gogpu/lightshow/curve"
	"github.com/gogpu/lightshow/intent"
)

// OutputName is the display name of every dimming-curve output.
const OutputName = "Dimming Curve Output"

// Output is the dimming module's output stage. Each frame it pushes the
// incoming batch through its Filter and exposes the survivors through Data.
//
// ProcessBatch and ProcessState must be called from a single goroutine, once
// per frame.
type Output struct {
	filter *Filter
	ref    *curve.Ref
	active *curve.Curve
	data   intent.Batch
}

// NewOutput returns an output filtering through the curve held by ref.
// Curve swaps on ref take effect at the start of the next frame.
func NewOutput(ref *curve.Ref) *Output {
	if ref == nil {
		ref = curve.NewRef(nil)
	}
	o := &Output{ref: ref, filter: NewFilter(nil)}
	o.sync()
	return o
}

// Name returns OutputName.
func (o *Output) Name() string { return OutputName }

// Data returns the batch produced by the most recent frame. Only the
// output writes it.
func (o *Output) Data() intent.Batch { return o.data }

// Filter returns the output's filter.
func (o *Output) Filter() *Filter { return o.filter }

// sync picks up a curve swapped in since the previous frame.
func (o *Output) sync() {
	c := o.ref.Load()
	if c == o.active {
		return
	}
	o.active = c
	if c == nil {
		o.filter.SetCurve(nil)
		return
	}
	o.filter.SetCurve(c)
}

// ProcessBatch filters one frame of states.
//
// An Absent or zero-length input yields an Absent output. Otherwise the
// output holds the filtered states in input order, without the suppressed
// ones, and may therefore be Empty.
func (o *Output) ProcessBatch(in intent.Batch) {
	o.sync()
	n := in.Len()
	if n == 0 {
		o.data = intent.Absent()
		return
	}

	o.filter.begin()
	states := make([]intent.State, 0, n)
	src := in.States()
	for i := 0; i < n; i++ {
		if s := o.filter.apply(src[i]); s != nil {
			states = append(states, s)
		}
	}
	o.data = intent.NewBatch(states)
}

// ProcessState filters a single-channel frame. A nil state yields an
// Absent output; a suppressed one an Empty output.
func (o *Output) ProcessState(s intent.State) {
	o.sync()
	if s == nil {
		o.data = intent.Absent()
		return
	}

	states := make([]intent.State, 0, 1)
	if r := o.filter.Filter(s); r != nil {
		states = append(states, r)
	}
	o.data = intent.NewBatch(states)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/lightshow/intent"
	"github.com/gogpu/lightshow/value"
)

func TestFullColor(t *testing.T) {
	tests := []struct {
		name  string
		state intent.State
		want  color.NRGBA
	}{
		{"intensity is white", intent.New(value.NewIntensity(0.5)), color.NRGBA{R: 255, G: 255, B: 255, A: 128}},
		{"discrete", intent.New(value.NewDiscrete(value.Green, 1)), color.NRGBA{G: 255, A: 255}},
		{"dim rgb normalized", intent.New(value.NewRGB(value.Color{R: 128})), color.NRGBA{R: 255, A: 128}},
		{"black rgb transparent", intent.New(value.NewRGB(value.Black)), color.NRGBA{R: 255, G: 255, B: 255, A: 0}},
		{"lighting", intent.NewStatic(value.NewLighting(value.Red, 0.25)), color.NRGBA{R: 255, A: 64}},
	}
	var h FullColorHandler
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.FullColor(tt.state); got != tt.want {
				t.Errorf("FullColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlphaAffectedColors(t *testing.T) {
	var h DiscreteHandler
	states := []intent.State{
		intent.New(value.NewDiscrete(value.Red, 0.5)),
		nil,
		intent.New(value.NewDiscrete(value.Blue, 0)),
		intent.New(value.NewDiscrete(value.Red, 1)),
		intent.New(value.NewIntensity(0.2)),
	}
	got := h.AlphaAffectedColors(states, nil)
	want := []color.NRGBA{
		{R: 255, A: 255},
		{B: 255, A: 0},
		{R: 255, G: 255, B: 255, A: 51},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AlphaAffectedColors mismatch (-want +got):\n%s", diff)
	}

	// A second call starts over.
	got = h.AlphaAffectedColors(states[:1], got[:0])
	if diff := cmp.Diff([]color.NRGBA{{R: 255, A: 128}}, got); diff != "" {
		t.Errorf("second call mismatch (-want +got):\n%s", diff)
	}
}

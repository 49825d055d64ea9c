// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dimming

import (
	"math"
	"testing"

	"github.com/gogpu/lightshow/curve"
	"github.com/gogpu/lightshow/intent"
	"github.com/gogpu/lightshow/value"
)

// halfMid is the curve [(0,0),(50,25),(100,100)].
func halfMid() *curve.Curve {
	return curve.New(curve.Point{X: 0, Y: 0}, curve.Point{X: 50, Y: 25}, curve.Point{X: 100, Y: 100})
}

// offset adds a constant number of percent points.
type offset float64

func (o offset) Evaluate(x float64) float64 { return x + float64(o) }

func TestFilterIntensity(t *testing.T) {
	c := halfMid()
	f := NewFilter(c)
	for _, i := range []float64{0, 0.1, 0.25, 0.5, 0.8, 1} {
		got := f.Filter(intent.New(value.NewIntensity(i)))
		typed, ok := got.(intent.Typed[value.Intensity])
		if !ok {
			t.Fatalf("Filter(Intensity{%v}) returned %T", i, got)
		}
		want := value.ClampIntensity(c.Evaluate(i*100) / 100)
		if typed.Value().Intensity != want {
			t.Errorf("Filter(Intensity{%v}) = %v, want %v", i, typed.Value().Intensity, want)
		}
	}
}

func TestFilterClampsCurveOutput(t *testing.T) {
	f := NewFilter(offset(50))
	got := f.Filter(intent.New(value.NewIntensity(0.9))).(intent.Typed[value.Intensity])
	if got.Value().Intensity != 1 {
		t.Errorf("intensity = %v, want clamped to 1", got.Value().Intensity)
	}

	f.SetCurve(offset(-50))
	got = f.Filter(intent.New(value.NewIntensity(0.2))).(intent.Typed[value.Intensity])
	if got.Value().Intensity != 0 {
		t.Errorf("intensity = %v, want clamped to 0", got.Value().Intensity)
	}
}

func TestFilterClampsUnvalidatedInput(t *testing.T) {
	f := NewFilter(halfMid())
	tests := []struct {
		name  string
		state intent.State
		want  float64
	}{
		{"intensity NaN", intent.New(value.Intensity{Intensity: math.NaN()}), 0},
		{"intensity above one", intent.New(value.Intensity{Intensity: 1.5}), 1},
		{"intensity negative", intent.New(value.Intensity{Intensity: -0.3}), 0},
		{"discrete NaN", intent.New(value.Discrete{Color: value.Red, Intensity: math.NaN()}), 0},
		{"discrete above one", intent.NewStatic(value.Discrete{Color: value.Red, Intensity: 7}), 1},
		{"lighting above one", intent.New(value.Lighting{Color: value.Blue, Intensity: 2}), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got float64
			switch s := f.Filter(tt.state).(type) {
			case intent.Typed[value.Intensity]:
				got = s.Value().Intensity
			case intent.Typed[value.Discrete]:
				got = s.Value().Intensity
			case intent.Typed[value.Lighting]:
				got = s.Value().Intensity
			default:
				t.Fatalf("Filter() returned %T", s)
			}
			if got != tt.want {
				t.Errorf("intensity = %v, want %v", got, tt.want)
			}
		})
	}

	if got := f.Filter(intent.New(value.Lighting{Color: value.White, Intensity: math.NaN()})); got != nil {
		t.Errorf("Filter(Lighting{NaN}) = %v, want suppressed", got)
	}
}

func TestFilterHalvesMidRange(t *testing.T) {
	f := NewFilter(halfMid())
	got := f.Filter(intent.New(value.NewLighting(value.White, 0.5)))
	lv := got.(intent.Typed[value.Lighting]).Value()
	if lv.Intensity != 0.25 {
		t.Errorf("intensity = %v, want 0.25", lv.Intensity)
	}
	if lv.Color != value.White {
		t.Errorf("color = %v, want white preserved", lv.Color)
	}
}

func TestFilterSuppressesDarkLighting(t *testing.T) {
	f := NewFilter(offset(40))
	for _, c := range []value.Color{value.White, value.Red, value.Black, {R: 12, G: 200, B: 7}} {
		if got := f.Filter(intent.New(value.NewLighting(c, 0))); got != nil {
			t.Errorf("Filter(Lighting{0, %v}) = %v, want nil", c, got)
		}
		if got := f.Filter(intent.NewStatic(value.NewLighting(c, 0))); got != nil {
			t.Errorf("Filter(static Lighting{0, %v}) = %v, want nil", c, got)
		}
	}
}

func TestFilterRGBPreservesHueAndSaturation(t *testing.T) {
	f := NewFilter(halfMid())
	colors := []value.Color{
		{R: 200, G: 100, B: 50},
		{R: 30, G: 220, B: 180},
		{R: 255, G: 0, B: 128},
		{R: 90, G: 90, B: 240},
	}
	for _, c := range colors {
		h0, s0, v0 := c.HSV()
		got := f.Filter(intent.New(value.NewRGB(c))).(intent.Typed[value.RGB]).Value()
		h1, s1, v1 := got.Color.HSV()

		wantV := halfMid().Evaluate(v0*100) / 100
		if math.Abs(v1-wantV) > 1.0/255 {
			t.Errorf("%v: value = %v, want %v", c, v1, wantV)
		}
		if d := math.Abs(h1 - h0); d > 2 && d < 358 {
			t.Errorf("%v: hue %v -> %v", c, h0, h1)
		}
		if math.Abs(s1-s0) > 0.03 {
			t.Errorf("%v: saturation %v -> %v", c, s0, s1)
		}
	}
}

func TestFilterDiscreteKeepsColor(t *testing.T) {
	f := NewFilter(halfMid())
	got := f.Filter(intent.New(value.NewDiscrete(value.Green, 0.5))).(intent.Typed[value.Discrete]).Value()
	if got.Color != value.Green || got.Intensity != 0.25 {
		t.Errorf("Filter(Discrete{Green, 0.5}) = %+v, want Green at 0.25", got)
	}
}

func TestFilterRewritesReusableInPlace(t *testing.T) {
	f := NewFilter(halfMid())

	tests := []struct {
		name  string
		state intent.State
	}{
		{"intensity", intent.NewStatic(value.NewIntensity(0.5))},
		{"discrete", intent.NewStatic(value.NewDiscrete(value.Red, 0.5))},
		{"rgb", intent.NewStatic(value.NewRGB(value.Color{R: 128}))},
		{"lighting", intent.NewStatic(value.NewLighting(value.Blue, 0.5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Filter(tt.state)
			if got != tt.state {
				t.Fatalf("Filter() returned %p, want the input container %p", got, tt.state)
			}
		})
	}

	s := intent.NewStatic(value.NewIntensity(0.5))
	f.Filter(s)
	if s.Value().Intensity != 0.25 {
		t.Errorf("in-place value = %v, want 0.25", s.Value().Intensity)
	}
}

func TestFilterReusableSecondCurveHasNoResidue(t *testing.T) {
	f := NewFilter(halfMid())
	s := intent.NewStatic(value.NewLighting(value.Magenta, 0.5))
	f.Filter(s)

	s.SetValue(value.NewLighting(value.Magenta, 0.5))
	f.SetCurve(offset(10))
	got := f.Filter(s).(intent.Typed[value.Lighting]).Value()
	if math.Abs(got.Intensity-0.6) > 1e-12 {
		t.Errorf("intensity = %v, want 0.6 from the second curve only", got.Intensity)
	}
	if got.Color != value.Magenta {
		t.Errorf("color = %v, want magenta", got.Color)
	}
	if s.Kind() != value.KindLighting {
		t.Errorf("reusable container changed kind to %v", s.Kind())
	}
}

func TestFilterScratchSlotPerVariant(t *testing.T) {
	f := NewFilter(curve.Linear())

	li := f.Filter(intent.New(value.NewLighting(value.Red, 0.4)))
	in := f.Filter(intent.New(value.NewIntensity(0.7)))
	li2 := f.Filter(intent.New(value.NewLighting(value.Blue, 0.9)))

	if li == in {
		t.Fatal("different variants shared a scratch state")
	}
	if li != li2 {
		t.Error("single calls should reuse the one scratch state of a variant")
	}
	if got := in.(intent.Typed[value.Intensity]).Value().Intensity; got != 0.7 {
		t.Errorf("intensity scratch = %v, want 0.7 untouched by lighting calls", got)
	}
	if !intent.IsReusable(li) {
		t.Error("scratch result should be a reusable state")
	}
}

func TestFilterSteadyStateDoesNotAllocate(t *testing.T) {
	f := NewFilter(halfMid())
	states := []intent.State{
		intent.New(value.NewIntensity(0.3)),
		intent.New(value.NewDiscrete(value.Red, 0.6)),
		intent.New(value.NewRGB(value.Color{R: 100, G: 50, B: 10})),
		intent.New(value.NewLighting(value.White, 0.9)),
		intent.NewStatic(value.NewLighting(value.White, 0.9)),
	}
	for _, s := range states {
		f.Filter(s)
	}
	allocs := testing.AllocsPerRun(100, func() {
		for _, s := range states {
			f.Filter(s)
		}
	})
	if allocs != 0 {
		t.Errorf("Filter allocated %v times per run, want 0", allocs)
	}
}

func BenchmarkFilter(b *testing.B) {
	f := NewFilter(halfMid())
	states := []intent.State{
		intent.New(value.NewIntensity(0.3)),
		intent.New(value.NewRGB(value.Color{R: 100, G: 50, B: 10})),
		intent.New(value.NewLighting(value.White, 0.9)),
	}
	b.ReportAllocs()
	for b.Loop() {
		for _, s := range states {
			f.Filter(s)
		}
	}
}

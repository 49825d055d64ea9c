// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pattern

import (
	"errors"
	"testing"

	"github.com/gogpu/lightshow/channel"
	"github.com/gogpu/lightshow/intent"
	"github.com/gogpu/lightshow/value"
)

func nodes(n int) []*channel.Node {
	out := make([]*channel.Node, n)
	for i := range out {
		out[i] = &channel.Node{ID: channel.NewID()}
	}
	return out
}

func TestChase(t *testing.T) {
	ns := nodes(4)
	c := &Chase{Nodes: ns, Color: value.Red, Width: 2}

	tests := []struct {
		frame int
		lit   []int
	}{
		{0, []int{0, 3}},
		{1, []int{1, 0}},
		{5, []int{1, 0}},
		{-1, []int{3, 2}},
	}
	for _, tt := range tests {
		f := c.Frame(tt.frame)
		if len(f) != len(tt.lit) {
			t.Errorf("Frame(%d) lit %d channels, want %d", tt.frame, len(f), len(tt.lit))
			continue
		}
		for _, i := range tt.lit {
			b, ok := f[ns[i].ID]
			if !ok || b.Len() != 1 {
				t.Errorf("Frame(%d) channel %d = %v, want one state", tt.frame, i, b)
			}
		}
	}

	if f := (&Chase{}).Frame(3); len(f) != 0 {
		t.Errorf("Frame() without channels = %v, want empty", f)
	}
}

func TestRainbowIsDeterministicAndColorful(t *testing.T) {
	ns := nodes(3)
	r := &Rainbow{Nodes: ns, Period: 30}
	a, b := r.Frame(7), r.Frame(7)
	for _, n := range ns {
		la := a[n.ID].First().(intent.Typed[value.Lighting]).Value()
		lb := b[n.ID].First().(intent.Typed[value.Lighting]).Value()
		if la != lb {
			t.Errorf("Frame(7) not deterministic: %v vs %v", la, lb)
		}
		if la.Intensity != 1 || la.Color.Max() != 255 {
			t.Errorf("rainbow value = %+v, want a full-brightness color", la)
		}
	}

	first := r.Frame(0)[ns[0].ID].First().(intent.Typed[value.Lighting]).Value().Color
	if first != value.Red {
		t.Errorf("hue 0 = %v, want red", first)
	}
	if r.Frame(30)[ns[0].ID].First().(intent.Typed[value.Lighting]).Value().Color != first {
		t.Error("rainbow did not repeat after one period")
	}
}

func TestFadeLevel(t *testing.T) {
	f := &Fade{Period: 4}
	want := []float64{0, 0.5, 1, 0.5, 0}
	for n, w := range want {
		if got := f.Level(n); got != w {
			t.Errorf("Level(%d) = %v, want %v", n, got, w)
		}
	}
}

func TestStatesFollowChannelMode(t *testing.T) {
	single := &channel.Node{ID: channel.NewID(), Mode: channel.SingleColor, Colors: []value.Color{value.White}}
	disc := &channel.Node{ID: channel.NewID(), Mode: channel.MultipleDiscreteColors,
		Colors: []value.Color{value.Red, value.Green, value.Blue}}
	bare := &channel.Node{ID: channel.NewID(), Mode: channel.MultipleDiscreteColors}

	fr := (&Fade{Nodes: []*channel.Node{single, disc, bare}, Color: value.Color{R: 20, G: 220, B: 40}, Period: 4}).Frame(2)

	if k := fr[single.ID].First().Kind(); k != value.KindIntensity {
		t.Errorf("single-color kind = %v, want Intensity", k)
	}
	d, ok := fr[disc.ID].First().(intent.Typed[value.Discrete])
	if !ok {
		t.Fatalf("discrete channel got %v", fr[disc.ID].First())
	}
	if d.Value().Color != value.Green || d.Value().Intensity != 1 {
		t.Errorf("discrete value = %+v, want green at full", d.Value())
	}
	if b := fr[bare.ID]; !b.IsEmpty() {
		t.Errorf("discrete channel without colors = %v, want empty", b)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		p, err := New(name, nodes(2))
		if err != nil || p == nil {
			t.Errorf("New(%q) = %v, %v", name, p, err)
		}
	}
	if _, err := New("strobe", nil); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("New(strobe) error = %v, want ErrUnknownPattern", err)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pattern generates test frames for a set of channels.
//
// Producers are deterministic: the same frame number always yields the same
// intents, so recorded and live runs match.
package pattern

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/lightshow/channel"
	"github.com/gogpu/lightshow/intent"
	"github.com/gogpu/lightshow/pipeline"
	"github.com/gogpu/lightshow/value"
)

// ErrUnknownPattern is returned by New for a name it does not know.
var ErrUnknownPattern = errors.New("pattern: unknown pattern")

// Producer yields the frame for tick n.
type Producer interface {
	Frame(n int) pipeline.Frame
}

// Names lists the patterns New understands.
var Names = []string{"chase", "rainbow", "fade"}

// New returns the named pattern over nodes with its default settings.
func New(name string, nodes []*channel.Node) (Producer, error) {
	switch name {
	case "chase":
		return &Chase{Nodes: nodes, Color: value.White, Width: 1}, nil
	case "rainbow":
		return &Rainbow{Nodes: nodes, Period: 60}, nil
	case "fade":
		return &Fade{Nodes: nodes, Color: value.White, Period: 60}, nil
	default:
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownPattern, name, Names)
	}
}

// states renders color c at intensity i as the intents node n understands.
// Discretely colored channels light the sub-color nearest to c.
func states(n *channel.Node, c value.Color, i float64) []intent.State {
	switch n.Mode {
	case channel.SingleColor:
		return []intent.State{intent.New(value.NewIntensity(i))}
	case channel.MultipleDiscreteColors:
		if len(n.Colors) == 0 {
			return []intent.State{}
		}
		return []intent.State{intent.New(value.NewDiscrete(nearest(n.Colors, c), i))}
	default:
		return []intent.State{intent.New(value.NewLighting(c, i))}
	}
}

func nearest(palette []value.Color, c value.Color) value.Color {
	target := c.Colorful()
	return slices.MinFunc(palette, func(a, b value.Color) int {
		da := a.Colorful().DistanceLab(target)
		db := b.Colorful().DistanceLab(target)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
}

// Chase lights Width consecutive channels and moves them one channel per
// frame, wrapping around.
type Chase struct {
	Nodes []*channel.Node
	Color value.Color
	Width int
}

// Frame implements Producer. Channels outside the lit window are Absent.
func (c *Chase) Frame(n int) pipeline.Frame {
	f := make(pipeline.Frame, len(c.Nodes))
	count := len(c.Nodes)
	if count == 0 {
		return f
	}
	width := min(max(c.Width, 1), count)
	head := mod(n, count)
	for k := range width {
		node := c.Nodes[mod(head-k, count)]
		f[node.ID] = intent.NewBatch(states(node, c.Color, 1))
	}
	return f
}

// Rainbow spreads the hue wheel across the channels and rotates it once
// every Period frames.
type Rainbow struct {
	Nodes  []*channel.Node
	Period int
}

// Frame implements Producer.
func (r *Rainbow) Frame(n int) pipeline.Frame {
	f := make(pipeline.Frame, len(r.Nodes))
	period := max(r.Period, 1)
	for i, node := range r.Nodes {
		hue := 360 * (float64(mod(n, period))/float64(period) + float64(i)/float64(len(r.Nodes)))
		c := value.FromColorful(colorful.Hsv(math.Mod(hue, 360), 1, 1))
		f[node.ID] = intent.NewBatch(states(node, c, 1))
	}
	return f
}

// Fade ramps every channel from dark to full and back over Period frames.
type Fade struct {
	Nodes  []*channel.Node
	Color  value.Color
	Period int
}

// Level returns the intensity of frame n: a triangle wave between 0 and 1.
func (f *Fade) Level(n int) float64 {
	period := max(f.Period, 2)
	phase := float64(mod(n, period)) / float64(period)
	return 1 - math.Abs(2*phase-1)
}

// Frame implements Producer.
func (f *Fade) Frame(n int) pipeline.Frame {
	out := make(pipeline.Frame, len(f.Nodes))
	level := f.Level(n)
	for _, node := range f.Nodes {
		out[node.ID] = intent.NewBatch(states(node, f.Color, level))
	}
	return out
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

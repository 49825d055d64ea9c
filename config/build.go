// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"image"

	"github.com/gogpu/lightshow"
	"github.com/gogpu/lightshow/channel"
	"github.com/gogpu/lightshow/curve"
	"github.com/gogpu/lightshow/dimming"
	"github.com/gogpu/lightshow/pipeline"
	"github.com/gogpu/lightshow/preview"
	"github.com/gogpu/lightshow/value"
)

// labelHeight is the pixel height reserved under a channel for its label.
const labelHeight = 13

// Rig is a show wired up and ready to run: channels, one dimming module per
// channel, the pipeline driving them and the preview pixels.
type Rig struct {
	Show     *Show
	Registry *channel.Registry
	Modules  map[channel.ID]*dimming.Module
	Pipeline *pipeline.Pipeline
	Pixels   []*preview.Pixel
	Canvas   *preview.Canvas
}

// Build wires the show into a Rig. The show must be valid.
func (s *Show) Build() (*Rig, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	log := lightshow.Logger()

	reg := channel.NewRegistry()
	for i := range s.Channels {
		c := &s.Channels[i]
		id, _ := c.channelID()
		mode, _ := channel.ParseColorMode(c.Mode)
		colors, _ := c.colors()
		if err := reg.Add(&channel.Node{ID: id, Name: c.Name, Mode: mode, Colors: colors}); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateChannel, err)
		}
	}

	rig := &Rig{
		Show:     s,
		Registry: reg,
		Modules:  make(map[channel.ID]*dimming.Module, len(s.Channels)),
		Pipeline: pipeline.New(reg),
	}
	for i := range s.Channels {
		c := &s.Channels[i]
		id, _ := c.channelID()
		cv, err := s.Curve(c.Curve)
		if err != nil {
			return nil, err
		}
		m := dimming.NewModule(&dimming.Data{Curve: cv})
		rig.Modules[id] = m

		stages := make([]pipeline.Stage, 0, len(m.Outputs()))
		for _, o := range m.Outputs() {
			stages = append(stages, o)
		}
		if err := rig.Pipeline.SetChain(id, pipeline.NewChain(stages...)); err != nil {
			return nil, err
		}

		if len(c.Pixels) == 0 {
			log.Warn("config: channel has no preview pixels", "channel", c.Name)
		}
		for _, ps := range c.Pixels {
			px := newPixel(ps)
			px.SetNode(id, reg)
			if px.Node() == nil {
				log.Warn("config: pixel channel did not resolve", "channel", c.Name)
				continue
			}
			rig.Pixels = append(rig.Pixels, px)
		}
	}

	rig.Canvas = s.newCanvas(rig.Pixels)
	log.Info("config: rig built",
		"show", s.Name, "channels", reg.Len(), "pixels", len(rig.Pixels),
		"canvas", fmt.Sprintf("%dx%d", rig.Canvas.Width(), rig.Canvas.Height()))
	return rig, nil
}

func newPixel(ps PixelSpec) *preview.Pixel {
	size := ps.Size
	if size == 0 {
		size = preview.DefaultPixelSize
	}
	var px *preview.Pixel
	if len(ps.Location) == 2 {
		px = preview.NewPrecisePixel(preview.Point{X: ps.Location[0], Y: ps.Location[1]}, size)
		px.SetZ(ps.Z)
	} else {
		px = preview.NewPixel(ps.X, ps.Y, ps.Z, size)
	}
	if ps.MaxAlpha != 0 {
		px.SetMaxAlpha(ps.MaxAlpha)
	}
	return px
}

func (s *Show) newCanvas(pixels []*preview.Pixel) *preview.Canvas {
	w, h := s.Preview.Width, s.Preview.Height
	if w == 0 || h == 0 {
		var area image.Rectangle
		for _, px := range pixels {
			b := px.Bounds()
			// Discrete pixels may grow one column right and several rows down.
			b.Max.X += px.Size()
			b.Max.Y += px.Size() * 2
			area = area.Union(b)
		}
		if s.Preview.Labels {
			area.Max.Y += labelHeight
		}
		if w == 0 {
			w = max(area.Max.X+preview.DefaultPixelSize, 1)
		}
		if h == 0 {
			h = max(area.Max.Y+preview.DefaultPixelSize, 1)
		}
	}
	var opts []preview.CanvasOption
	if s.Preview.Background != "" {
		bg, _ := value.ParseColor(s.Preview.Background)
		opts = append(opts, preview.WithBackground(bg.NRGBA(255)))
	}
	return preview.NewCanvas(w, h, opts...)
}

// Module returns the dimming module of the named channel.
func (r *Rig) Module(name string) (*dimming.Module, bool) {
	n, ok := r.Registry.ByName(name)
	if !ok {
		return nil, false
	}
	m, ok := r.Modules[n.ID]
	return m, ok
}

// SetCurve swaps the curve of the named channel. The change is seen from
// the next frame on.
func (r *Rig) SetCurve(name string, c *curve.Curve) error {
	m, ok := r.Module(name)
	if !ok {
		return fmt.Errorf("%w: %q", pipeline.ErrUnknownChannel, name)
	}
	m.SetCurve(c)
	return nil
}

// Render runs one frame and draws the result onto the rig's canvas.
func (r *Rig) Render(f pipeline.Frame) *preview.Canvas {
	r.Pipeline.Tick(f)
	r.Canvas.Clear()
	r.Pipeline.Draw(r.Canvas, r.Pixels)
	if r.Show.Preview.Labels {
		r.drawLabels()
	}
	return r.Canvas
}

// drawLabels writes each channel's name under its first pixel.
func (r *Rig) drawLabels() {
	seen := make(map[channel.ID]bool, r.Registry.Len())
	for _, px := range r.Pixels {
		if seen[px.NodeID()] {
			continue
		}
		seen[px.NodeID()] = true
		b := px.Bounds()
		r.Canvas.Label(b.Min.X, b.Max.Y+labelHeight-2, px.Node().Name)
	}
}

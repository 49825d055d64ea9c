// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pipeline runs each channel's intents through its output stages
// once per frame.
//
// A [Pipeline] holds one [Chain] per channel. Tick feeds every channel's
// incoming batch through its chain in registry order and publishes the
// resolved color of each channel to a [preview.ColorTable], which renderers
// may read from other goroutines.
//
// Tick is the single writer: it must not be called concurrently with itself
// or with the pipeline's configuration methods.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/gogpu/lightshow"
	"github.com/gogpu/lightshow/channel"
	"github.com/gogpu/lightshow/intent"
	"github.com/gogpu/lightshow/preview"
)

// ErrUnknownChannel is returned when a chain is attached to a channel the
// pipeline's registry does not hold.
var ErrUnknownChannel = errors.New("pipeline: unknown channel")

// Frame is one tick's input: the incoming batch of every channel. Channels
// missing from the frame receive an Absent batch.
type Frame map[channel.ID]intent.Batch

// Stage is one step of a channel's chain. *dimming.Output satisfies it.
type Stage interface {
	ProcessBatch(in intent.Batch)
	Data() intent.Batch
}

// Chain is an ordered list of stages for one channel.
type Chain struct {
	stages []Stage
}

// NewChain returns a chain running stages in order.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// Append adds a stage to the end of the chain.
func (c *Chain) Append(s Stage) { c.stages = append(c.stages, s) }

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Stages returns the chain's stages.
func (c *Chain) Stages() []Stage { return c.stages }

// Process feeds in through every stage and returns the last stage's output.
// Once a stage yields Absent, every later stage is handed Absent so that its
// own Data reports no data too. An empty chain returns in unchanged.
func (c *Chain) Process(in intent.Batch) intent.Batch {
	out := in
	for _, s := range c.stages {
		s.ProcessBatch(out)
		out = s.Data()
	}
	return out
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithColorTable publishes resolved colors to t instead of a table the
// pipeline creates itself. t must know every channel of the registry.
func WithColorTable(t *preview.ColorTable) Option {
	return func(p *Pipeline) {
		p.table = t
	}
}

// Pipeline is the per-frame driver of all channel chains.
type Pipeline struct {
	reg     *channel.Registry
	order   []channel.ID
	chains  map[channel.ID]*Chain
	outputs map[channel.ID]intent.Batch
	table   *preview.ColorTable
	color   preview.FullColorHandler
	frames  uint64
}

// New returns a pipeline over the channels of reg. Channels start without
// stages, so their input passes through unchanged.
func New(reg *channel.Registry, opts ...Option) *Pipeline {
	nodes := reg.Nodes()
	p := &Pipeline{
		reg:     reg,
		order:   make([]channel.ID, len(nodes)),
		chains:  make(map[channel.ID]*Chain, len(nodes)),
		outputs: make(map[channel.ID]intent.Batch, len(nodes)),
	}
	for i, n := range nodes {
		p.order[i] = n.ID
		p.chains[n.ID] = NewChain()
		p.outputs[n.ID] = intent.Absent()
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.table == nil {
		p.table = preview.NewColorTable(p.order)
	}
	lightshow.Logger().Debug("pipeline: created", "channels", len(p.order))
	return p
}

// Registry returns the pipeline's channel registry.
func (p *Pipeline) Registry() *channel.Registry { return p.reg }

// Table returns the table resolved colors are published to.
func (p *Pipeline) Table() *preview.ColorTable { return p.table }

// Chain returns the chain of channel id, or nil for an unknown channel.
func (p *Pipeline) Chain(id channel.ID) *Chain { return p.chains[id] }

// SetChain replaces the chain of channel id.
func (p *Pipeline) SetChain(id channel.ID, c *Chain) error {
	if _, ok := p.chains[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, id)
	}
	if c == nil {
		c = NewChain()
	}
	p.chains[id] = c
	lightshow.Logger().Debug("pipeline: chain attached", "channel", id, "stages", c.Len())
	return nil
}

// Tick runs one frame. Every channel's output is stored for Output and its
// resolved color is written to the color table; channels whose output is
// Absent, Empty or fully transparent are removed from the table.
func (p *Pipeline) Tick(f Frame) {
	for _, id := range p.order {
		out := p.chains[id].Process(f[id])
		p.outputs[id] = out
		p.publish(id, out)
	}
	p.frames++
}

func (p *Pipeline) publish(id channel.ID, out intent.Batch) {
	s := out.First()
	if s == nil {
		p.table.Delete(id)
		return
	}
	c := p.color.FullColor(s)
	if c.A == 0 {
		p.table.Delete(id)
		return
	}
	p.table.Store(id, c)
}

// Output returns the batch channel id produced on the last tick. Unknown
// channels and channels not yet ticked report Absent.
func (p *Pipeline) Output(id channel.ID) intent.Batch { return p.outputs[id] }

// Frames returns the number of ticks run.
func (p *Pipeline) Frames() uint64 { return p.frames }

// Draw renders the last tick's output of every pixel's channel onto s.
func (p *Pipeline) Draw(s preview.Surface, pixels []*preview.Pixel) {
	for _, px := range pixels {
		px.RenderBatch(s, p.outputs[px.NodeID()])
	}
}

// Reset forgets all outputs and clears the color table.
func (p *Pipeline) Reset() {
	for _, id := range p.order {
		p.outputs[id] = intent.Absent()
	}
	p.table.Reset()
	p.frames = 0
}

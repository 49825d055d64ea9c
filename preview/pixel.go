// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/lightshow/channel"
	"github.com/gogpu/lightshow/intent"
)

// DefaultPixelSize is the diameter of a pixel created without a size.
const DefaultPixelSize = 3

// Pixel is one renderable channel position.
//
// Every change to position or size recomputes Bounds. In high-precision mode
// the float Location is kept as given and rounded to the nearest pixel only
// for Bounds.
//
// A Pixel refers to its channel by ID and resolves it lazily through a
// channel.Resolver; it never owns the channel.
type Pixel struct {
	x, y, z       int
	size          int
	location      Point
	highPrecision bool
	bounds        image.Rectangle

	color    color.NRGBA
	maxAlpha uint8

	nodeID   channel.ID
	node     *channel.Node
	resolver channel.Resolver
	discrete bool

	discreteHandler  DiscreteHandler
	fullColorHandler FullColorHandler
	colors           []color.NRGBA
}

// NewPixel creates a pixel at integer coordinates.
func NewPixel(x, y, z, size int) *Pixel {
	p := &Pixel{
		x:     x,
		y:     y,
		z:     z,
		size:  size,
		color: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
	p.resize()
	return p
}

// NewPrecisePixel creates a high-precision pixel at a sub-pixel location.
func NewPrecisePixel(loc Point, size int) *Pixel {
	p := NewPixel(0, 0, 0, size)
	p.highPrecision = true
	p.location = loc
	p.resize()
	return p
}

func (p *Pixel) resize() {
	if p.highPrecision {
		x := int(math.Round(p.location.X))
		y := int(math.Round(p.location.Y))
		p.bounds = image.Rect(x, y, x+p.size, y+p.size)
		return
	}
	p.bounds = image.Rect(p.x, p.y, p.x+p.size, p.y+p.size)
}

// Bounds returns the rectangle the pixel draws into.
func (p *Pixel) Bounds() image.Rectangle { return p.bounds }

// X returns the integer x coordinate.
func (p *Pixel) X() int { return p.x }

// SetX moves the pixel horizontally.
func (p *Pixel) SetX(x int) { p.x = x; p.resize() }

// Y returns the integer y coordinate.
func (p *Pixel) Y() int { return p.y }

// SetY moves the pixel vertically.
func (p *Pixel) SetY(y int) { p.y = y; p.resize() }

// Z returns the depth coordinate. It does not affect Bounds.
func (p *Pixel) Z() int { return p.z }

// SetZ sets the depth coordinate.
func (p *Pixel) SetZ(z int) { p.z = z; p.resize() }

// Size returns the pixel diameter.
func (p *Pixel) Size() int { return p.size }

// SetSize changes the pixel diameter.
func (p *Pixel) SetSize(size int) { p.size = size; p.resize() }

// Location returns the sub-pixel location used in high-precision mode.
func (p *Pixel) Location() Point { return p.location }

// SetLocation sets the sub-pixel location.
func (p *Pixel) SetLocation(loc Point) { p.location = loc; p.resize() }

// IsHighPrecision reports whether Bounds follows Location.
func (p *Pixel) IsHighPrecision() bool { return p.highPrecision }

// SetHighPrecision switches between Location and integer coordinates.
func (p *Pixel) SetHighPrecision(on bool) { p.highPrecision = on; p.resize() }

// Color returns the color used by forced redraws.
func (p *Pixel) Color() color.NRGBA { return p.color }

// SetColor sets the color used by forced redraws.
func (p *Pixel) SetColor(c color.NRGBA) { p.color = c }

// MaxAlpha returns the highest alpha the pixel draws with. Unset reads as 255.
func (p *Pixel) MaxAlpha() uint8 {
	if p.maxAlpha == 0 {
		p.maxAlpha = 255
	}
	return p.maxAlpha
}

// SetMaxAlpha caps the alpha of everything the pixel draws.
func (p *Pixel) SetMaxAlpha(a uint8) { p.maxAlpha = a }

// NodeID returns the channel the pixel shows.
func (p *Pixel) NodeID() channel.ID { return p.nodeID }

// SetNode points the pixel at a channel and resolves it through r.
func (p *Pixel) SetNode(id channel.ID, r channel.Resolver) {
	p.nodeID = id
	p.resolver = r
	p.node = nil
	p.discrete = false
	p.Node()
}

// Node returns the pixel's channel, resolving it on first use. It returns nil
// if the channel cannot be resolved.
func (p *Pixel) Node() *channel.Node {
	if p.node == nil && p.resolver != nil && p.nodeID != channel.Nil {
		if n, ok := p.resolver.Node(p.nodeID); ok {
			p.node = n
			p.discrete = n.IsDiscretelyColored()
		}
	}
	return p.node
}

// IsDiscretelyColored reports whether the pixel's channel is discretely
// colored. Unresolved channels are not.
func (p *Pixel) IsDiscretelyColored() bool {
	p.Node()
	return p.discrete
}

func (p *Pixel) capAlpha(c color.NRGBA) color.NRGBA {
	c.A = min(c.A, p.MaxAlpha())
	return c
}

// draw fills one circle, skipping invisible colors.
func (p *Pixel) draw(s Surface, r image.Rectangle, c color.NRGBA) {
	c = p.capAlpha(c)
	if c.A == 0 {
		return
	}
	s.FillCircle(r, c)
}

// Render draws the channel's current intent states.
//
// Discretely colored channels draw one circle per visible sub-color. The
// first goes at Bounds, the second one pixel-size to its right, the third
// starts the next row, and so on two per row. Invisible sub-colors are
// skipped and take no slot.
//
// Other channels draw the first state's color as one circle at Bounds.
// Nothing is drawn for an unresolved channel, an empty state list or a fully
// transparent color.
func (p *Pixel) Render(s Surface, states []intent.State) {
	if p.Node() == nil {
		return
	}
	if p.discrete {
		p.renderDiscrete(s, states)
		return
	}
	if len(states) == 0 || states[0] == nil {
		return
	}
	p.draw(s, p.bounds, p.fullColorHandler.FullColor(states[0]))
}

// RenderBatch is Render for a pipeline batch. Absent and Empty batches draw
// nothing.
func (p *Pixel) RenderBatch(s Surface, b intent.Batch) {
	p.Render(s, b.States())
}

func (p *Pixel) renderDiscrete(s Surface, states []intent.State) {
	p.colors = p.discreteHandler.AlphaAffectedColors(states, p.colors[:0])

	// col counts drawn circles from 1. After an odd one the next goes to the
	// right; after an even one the next starts a new row at the left edge.
	// So Red, Transparent, Blue puts Blue beside Red, not below it.
	col := 1
	x, y := p.bounds.Min.X, p.bounds.Min.Y
	w, h := p.bounds.Dx(), p.bounds.Dy()
	for _, c := range p.colors {
		c = p.capAlpha(c)
		if c.A == 0 {
			continue
		}
		s.FillCircle(image.Rect(x, y, x+w, y+h), c)
		if col%2 == 0 {
			y += p.size
			x = p.bounds.Min.X
		} else {
			x = p.bounds.Min.X + p.size
		}
		col++
	}
}

// Redraw draws the pixel without fresh intents. With force it draws the
// pixel's own color. Otherwise it draws the channel's last color from table,
// if any, and adopts it as the pixel's color.
func (p *Pixel) Redraw(s Surface, force bool, table *ColorTable) {
	if force {
		p.draw(s, p.bounds, p.color)
		return
	}
	n := p.Node()
	if n == nil || table == nil {
		return
	}
	if c, ok := table.Load(n.ID); ok {
		p.color = c
		p.draw(s, p.bounds, c)
	}
}

// Clone returns a copy of p sharing its channel reference but none of its
// render state.
func (p *Pixel) Clone() *Pixel {
	q := NewPixel(p.x, p.y, p.z, p.size)
	q.color = p.color
	q.maxAlpha = p.maxAlpha
	q.nodeID = p.nodeID
	q.node = p.node
	q.resolver = p.resolver
	q.discrete = p.discrete
	if p.highPrecision {
		q.highPrecision = true
		q.location = p.location
	}
	q.resize()
	return q
}

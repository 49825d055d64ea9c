// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"image/color"
	"sync/atomic"

	"github.com/gogpu/lightshow/channel"
)

// slotValid marks a slot holding a color; the low 32 bits pack R, G, B, A.
const slotValid = 1 << 32

// ColorTable maps channels to the last color resolved for them.
//
// The set of channels is fixed at construction, so lookups never lock and
// never allocate. Each entry is replaced atomically as a whole; a reader may
// see the previous frame's color but never a mix of two.
//
// One goroutine writes (the pipeline); any number may read.
type ColorTable struct {
	slots map[channel.ID]*atomic.Uint64
}

// NewColorTable returns a table for the given channels, all unset.
func NewColorTable(ids []channel.ID) *ColorTable {
	t := &ColorTable{slots: make(map[channel.ID]*atomic.Uint64, len(ids))}
	for _, id := range ids {
		t.slots[id] = new(atomic.Uint64)
	}
	return t
}

func pack(c color.NRGBA) uint64 {
	return slotValid | uint64(c.R)<<24 | uint64(c.G)<<16 | uint64(c.B)<<8 | uint64(c.A)
}

func unpack(v uint64) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// Store records c for id. It reports false if id is not in the table.
func (t *ColorTable) Store(id channel.ID, c color.NRGBA) bool {
	s, ok := t.slots[id]
	if !ok {
		return false
	}
	s.Store(pack(c))
	return true
}

// Load returns the last color stored for id.
func (t *ColorTable) Load(id channel.ID) (color.NRGBA, bool) {
	s, ok := t.slots[id]
	if !ok {
		return color.NRGBA{}, false
	}
	v := s.Load()
	if v&slotValid == 0 {
		return color.NRGBA{}, false
	}
	return unpack(v), true
}

// Delete forgets the color of id.
func (t *ColorTable) Delete(id channel.ID) {
	if s, ok := t.slots[id]; ok {
		s.Store(0)
	}
}

// Reset forgets every color, as at the start of a session.
func (t *ColorTable) Reset() {
	for _, s := range t.slots {
		s.Store(0)
	}
}

// Len returns the number of channels the table can hold.
func (t *ColorTable) Len() int { return len(t.slots) }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package terminal draws preview pixels into a terminal through tcell.
//
// Canvas coordinates are mapped to character cells by a fixed cell size.
// Each covered cell is filled with a full block glyph in the pixel's color,
// with alpha applied against a black background since a terminal cell has
// no blending of its own.
package terminal

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Block is the glyph used to fill a cell.
const Block = '█'

// Option configures a Surface.
type Option func(*Surface)

// WithCellSize sets how many canvas pixels one cell covers horizontally and
// vertically. Values below 1 are ignored.
//
// Terminal cells are about twice as tall as wide, so a cell size of (1, 2)
// keeps circles round on most fonts.
func WithCellSize(w, h int) Option {
	return func(s *Surface) {
		if w > 0 {
			s.cellW = w
		}
		if h > 0 {
			s.cellH = h
		}
	}
}

// WithOrigin shifts every drawing by (x, y) cells.
func WithOrigin(x, y int) Option {
	return func(s *Surface) {
		s.originX, s.originY = x, y
	}
}

// Surface is a preview.Surface backed by a tcell screen.
type Surface struct {
	screen           tcell.Screen
	cellW, cellH     int
	originX, originY int
}

// New creates a Surface drawing on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, opts ...Option) *Surface {
	s := &Surface{screen: screen, cellW: 1, cellH: 2}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Screen returns the underlying tcell screen.
func (s *Surface) Screen() tcell.Screen { return s.screen }

// CellSize returns the canvas size of one cell.
func (s *Surface) CellSize() (w, h int) { return s.cellW, s.cellH }

// Cell maps a canvas point to the cell containing it.
func (s *Surface) Cell(p image.Point) image.Point {
	return image.Pt(s.originX+floorDiv(p.X, s.cellW), s.originY+floorDiv(p.Y, s.cellH))
}

// Style returns the cell style for c.
func Style(c color.NRGBA) tcell.Style {
	a := int32(c.A)
	r := int32(c.R) * a / 255
	g := int32(c.G) * a / 255
	b := int32(c.B) * a / 255
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(r, g, b)).
		Background(tcell.ColorBlack)
}

// FillCircle fills the cells whose centers fall inside the ellipse inscribed
// in bounds. A circle smaller than one cell still fills the cell holding its
// center. Cells off screen are skipped.
func (s *Surface) FillCircle(bounds image.Rectangle, c color.NRGBA) {
	if bounds.Empty() || c.A == 0 {
		return
	}
	style := Style(c)
	width, height := s.screen.Size()

	minCell := s.Cell(bounds.Min)
	maxCell := s.Cell(bounds.Max.Sub(image.Pt(1, 1)))

	cx := float64(bounds.Min.X+bounds.Max.X) / 2
	cy := float64(bounds.Min.Y+bounds.Max.Y) / 2
	rx := float64(bounds.Dx()) / 2
	ry := float64(bounds.Dy()) / 2

	filled := false
	for y := minCell.Y; y <= maxCell.Y; y++ {
		for x := minCell.X; x <= maxCell.X; x++ {
			// Cell center in canvas coordinates.
			px := (float64(x-s.originX) + 0.5) * float64(s.cellW)
			py := (float64(y-s.originY) + 0.5) * float64(s.cellH)
			dx := (px - cx) / rx
			dy := (py - cy) / ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			filled = true
			if x >= 0 && y >= 0 && x < width && y < height {
				s.screen.SetContent(x, y, Block, nil, style)
			}
		}
	}
	if filled {
		return
	}
	center := s.Cell(image.Pt(int(cx), int(cy)))
	if center.X >= 0 && center.Y >= 0 && center.X < width && center.Y < height {
		s.screen.SetContent(center.X, center.Y, Block, nil, style)
	}
}

// Label writes text starting at the cell holding canvas point p.
func (s *Surface) Label(p image.Point, text string, style tcell.Style) {
	cell := s.Cell(p)
	width, height := s.screen.Size()
	if cell.Y < 0 || cell.Y >= height {
		return
	}
	x := cell.X
	for _, r := range text {
		if x >= width {
			return
		}
		if x >= 0 {
			s.screen.SetContent(x, cell.Y, r, nil, style)
		}
		x++
	}
}

// Clear blanks the screen.
func (s *Surface) Clear() { s.screen.Clear() }

// Show flushes pending cells to the terminal.
func (s *Surface) Show() { s.screen.Show() }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

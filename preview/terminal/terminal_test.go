// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package terminal

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/lightshow/preview"
)

var _ preview.Surface = (*Surface)(nil)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 10)
	return screen
}

func TestFillCircle(t *testing.T) {
	screen := newScreen(t)
	s := New(screen, WithCellSize(1, 1))
	s.FillCircle(image.Rect(0, 0, 4, 4), color.NRGBA{R: 255, A: 255})
	s.Show()

	mainc, _, style, _ := screen.GetContent(1, 1)
	if mainc != Block {
		t.Fatalf("GetContent(1, 1) = %q, want %q", mainc, Block)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("foreground = %v, want red", fg)
	}
	if bg != tcell.ColorBlack {
		t.Errorf("background = %v, want black", bg)
	}

	if mainc, _, _, _ := screen.GetContent(0, 0); mainc == Block {
		t.Error("corner cell outside the circle was filled")
	}
	if mainc, _, _, _ := screen.GetContent(5, 5); mainc == Block {
		t.Error("cell outside the bounds was filled")
	}
}

func TestFillCircleAlphaAgainstBlack(t *testing.T) {
	screen := newScreen(t)
	s := New(screen, WithCellSize(1, 1))
	s.FillCircle(image.Rect(2, 2, 3, 3), color.NRGBA{R: 255, G: 255, A: 128})
	s.Show()

	_, _, style, _ := screen.GetContent(2, 2)
	fg, _, _ := style.Decompose()
	if want := tcell.NewRGBColor(128, 128, 0); fg != want {
		t.Errorf("foreground = %v, want %v", fg, want)
	}
}

func TestFillCircleSmallerThanCell(t *testing.T) {
	screen := newScreen(t)
	s := New(screen, WithCellSize(4, 4))
	s.FillCircle(image.Rect(0, 0, 2, 2), color.NRGBA{B: 255, A: 255})
	s.Show()

	if mainc, _, _, _ := screen.GetContent(0, 0); mainc != Block {
		t.Errorf("GetContent(0, 0) = %q, want the center cell filled", mainc)
	}
}

func TestFillCircleSkipsInvisibleAndClips(t *testing.T) {
	screen := newScreen(t)
	s := New(screen, WithCellSize(1, 1))
	s.FillCircle(image.Rect(0, 0, 4, 4), color.NRGBA{R: 255})
	s.FillCircle(image.Rectangle{}, color.NRGBA{R: 255, A: 255})
	s.Show()
	if mainc, _, _, _ := screen.GetContent(1, 1); mainc == Block {
		t.Error("transparent or empty circle was drawn")
	}

	s.FillCircle(image.Rect(-4, -4, 2, 2), color.NRGBA{G: 255, A: 255})
	s.FillCircle(image.Rect(100, 100, 104, 104), color.NRGBA{G: 255, A: 255})
	s.Show()
	if mainc, _, _, _ := screen.GetContent(0, 0); mainc != Block {
		t.Error("partially visible circle was not drawn")
	}
}

func TestOriginAndCellMapping(t *testing.T) {
	screen := newScreen(t)
	s := New(screen, WithCellSize(2, 4), WithOrigin(5, 1))
	if w, h := s.CellSize(); w != 2 || h != 4 {
		t.Errorf("CellSize() = %d, %d; want 2, 4", w, h)
	}
	tests := []struct {
		in, want image.Point
	}{
		{image.Pt(0, 0), image.Pt(5, 1)},
		{image.Pt(3, 7), image.Pt(6, 2)},
		{image.Pt(-1, -1), image.Pt(4, 0)},
	}
	for _, tt := range tests {
		if got := s.Cell(tt.in); got != tt.want {
			t.Errorf("Cell(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	s.FillCircle(image.Rect(0, 0, 2, 4), color.NRGBA{R: 255, A: 255})
	s.Show()
	if mainc, _, _, _ := screen.GetContent(5, 1); mainc != Block {
		t.Errorf("GetContent(5, 1) = %q, want the shifted cell filled", mainc)
	}
}

func TestLabelAndClear(t *testing.T) {
	screen := newScreen(t)
	s := New(screen, WithCellSize(1, 1))
	s.Label(image.Pt(18, 3), "arch", tcell.StyleDefault)
	s.Show()

	for i, want := range "ar" {
		if mainc, _, _, _ := screen.GetContent(18+i, 3); mainc != want {
			t.Errorf("GetContent(%d, 3) = %q, want %q", 18+i, mainc, want)
		}
	}

	s.Clear()
	s.Show()
	if mainc, _, _, _ := screen.GetContent(18, 3); mainc == 'a' {
		t.Error("Clear() left the label on screen")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestCanvasClear(t *testing.T) {
	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	c := NewCanvas(4, 3, WithBackground(bg))
	if c.Width() != 4 || c.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", c.Width(), c.Height())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := c.At(x, y); got != bg {
				t.Fatalf("At(%d, %d) = %v, want %v", x, y, got, bg)
			}
		}
	}
	if got := c.At(-1, 0); got != (color.NRGBA{}) {
		t.Errorf("At(-1, 0) = %v, want transparent", got)
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 10)
	red := color.NRGBA{R: 255, A: 255}
	c.FillCircle(image.Rect(0, 0, 10, 10), red)

	if got := c.At(5, 5); got != red {
		t.Errorf("center = %v, want red", got)
	}
	if got := c.At(0, 0); got != (color.NRGBA{A: 255}) {
		t.Errorf("corner = %v, want untouched black", got)
	}
}

func TestCanvasFillCircleAntialiasesEdge(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillCircle(image.Rect(0, 0, 10, 10), color.NRGBA{R: 255, A: 255})
	got := c.At(1, 1)
	if got.A != 255 || got.R == 0 || got.R == 255 {
		t.Errorf("edge pixel = %v, want partial red over opaque black", got)
	}
}

func TestCanvasFillCircleBlendsAlpha(t *testing.T) {
	c := NewCanvas(3, 3)
	c.FillCircle(image.Rect(0, 0, 3, 3), color.NRGBA{R: 255, A: 128})
	got := c.At(1, 1)
	if got.A != 255 || got.R < 126 || got.R > 130 || got.G != 0 {
		t.Errorf("blended = %v, want half red over opaque black", got)
	}
}

func TestCanvasFillCircleClipsAndSkips(t *testing.T) {
	c := NewCanvas(4, 4)
	before := c.Image()

	c.FillCircle(image.Rect(10, 10, 14, 14), color.NRGBA{R: 255, A: 255})
	c.FillCircle(image.Rect(0, 0, 4, 4), color.NRGBA{R: 255})
	c.FillCircle(image.Rectangle{}, color.NRGBA{R: 255, A: 255})
	if !bytes.Equal(before.Pix, c.Image().Pix) {
		t.Error("off-canvas, transparent or empty fills modified the canvas")
	}

	c.FillCircle(image.Rect(-2, -2, 2, 2), color.NRGBA{G: 255, A: 255})
	if got := c.At(0, 0); got.G != 255 {
		t.Errorf("partially visible circle not drawn: %v", got)
	}
}

func TestCanvasLabel(t *testing.T) {
	c := NewCanvas(60, 20, WithLabelColor(color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	before := c.Image()
	c.Label(2, 14, "Arch")
	if bytes.Equal(before.Pix, c.Image().Pix) {
		t.Error("Label() drew nothing")
	}
}

func TestCanvasScaledAndPNG(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillCircle(image.Rect(0, 0, 1, 1), color.NRGBA{B: 255, A: 255})

	s := c.Scaled(3)
	if s.Rect.Dx() != 12 || s.Rect.Dy() != 6 {
		t.Fatalf("Scaled(3) size = %v, want 12x6", s.Rect)
	}
	if got := s.NRGBAAt(2, 2); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("scaled pixel = %v, want blue block", got)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf, 2); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded size = %v, want 8x4", img.Bounds())
	}

	path := filepath.Join(t.TempDir(), "preview.png")
	if err := c.SavePNG(path, 1); err != nil {
		t.Errorf("SavePNG() error = %v", err)
	}
}

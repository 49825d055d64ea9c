// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// CanvasOption configures a Canvas during creation.
type CanvasOption func(*canvasOptions)

type canvasOptions struct {
	background color.NRGBA
	labels     color.NRGBA
}

func defaultCanvasOptions() canvasOptions {
	return canvasOptions{
		background: color.NRGBA{A: 255},
		labels:     color.NRGBA{R: 160, G: 160, B: 160, A: 255},
	}
}

// WithBackground sets the color Clear fills with. The default is opaque
// black, the color of an unlit stage.
func WithBackground(c color.NRGBA) CanvasOption {
	return func(o *canvasOptions) {
		o.background = c
	}
}

// WithLabelColor sets the color used by Label.
func WithLabelColor(c color.NRGBA) CanvasOption {
	return func(o *canvasOptions) {
		o.labels = c
	}
}

// Canvas is a software preview surface backed by an NRGBA pixel buffer.
type Canvas struct {
	img    *image.NRGBA
	opts   canvasOptions
	raster vector.Rasterizer
}

// NewCanvas creates a canvas of the given size, cleared to its background.
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	o := defaultCanvasOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Canvas{
		img:  image.NewNRGBA(image.Rect(0, 0, width, height)),
		opts: o,
	}
	c.Clear()
	return c
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the height of the canvas.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Clear fills the canvas with its background color.
func (c *Canvas) Clear() {
	bg := c.opts.background
	pix := c.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = bg.R
		pix[i+1] = bg.G
		pix[i+2] = bg.B
		pix[i+3] = bg.A
	}
}

// At returns the color of a single pixel. Out-of-bounds reads are
// transparent.
func (c *Canvas) At(x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}.In(c.img.Rect)) {
		return color.NRGBA{}
	}
	return c.img.NRGBAAt(x, y)
}

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498

// FillCircle implements Surface. The ellipse inscribed in bounds is
// composited over the canvas with col, antialiased at its edge. Parts outside
// the canvas are clipped.
func (c *Canvas) FillCircle(bounds image.Rectangle, col color.NRGBA) {
	if col.A == 0 || bounds.Empty() {
		return
	}
	clip := bounds.Intersect(c.img.Rect)
	if clip.Empty() {
		return
	}

	// The mask covers clip only; the path is in clip-local coordinates.
	rx := float32(bounds.Dx()) / 2
	ry := float32(bounds.Dy()) / 2
	cx := float32(bounds.Min.X-clip.Min.X) + rx
	cy := float32(bounds.Min.Y-clip.Min.Y) + ry
	kx, ky := rx*kappa, ry*kappa

	z := &c.raster
	z.Reset(clip.Dx(), clip.Dy())
	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.ClosePath()
	z.Draw(c.img, clip, image.NewUniform(col), image.Point{})
}

// Label draws text with its baseline-left corner at (x, y) using the 7x13
// fixed font.
func (c *Canvas) Label(x, y int, text string) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.opts.labels),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Image returns a copy of the canvas contents.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(c.img.Rect)
	copy(img.Pix, c.img.Pix)
	return img
}

// Scaled returns the canvas contents enlarged by an integer factor with
// nearest-neighbor sampling, so each preview pixel stays a crisp block.
func (c *Canvas) Scaled(factor int) *image.NRGBA {
	if factor <= 1 {
		return c.Image()
	}
	dst := image.NewNRGBA(image.Rect(0, 0, c.Width()*factor, c.Height()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, c.img, c.img.Rect, xdraw.Src, nil)
	return dst
}

// EncodePNG writes the canvas, scaled by factor, as PNG.
func (c *Canvas) EncodePNG(w io.Writer, factor int) error {
	return png.Encode(w, c.Scaled(factor))
}

// SavePNG saves the canvas, scaled by factor, to a PNG file.
func (c *Canvas) SavePNG(path string, factor int) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := c.EncodePNG(f, factor); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

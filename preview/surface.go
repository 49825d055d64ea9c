// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package preview renders resolved intents as colored pixels.
//
// A [Pixel] is one renderable channel position. Each frame it receives the
// channel's resolved intent states and draws them onto a [Surface]:
// full-color channels as one filled circle, discretely colored channels as
// one small circle per visible sub-color, tiled two per row.
//
// The [ColorTable] remembers the last color of every channel. The pipeline
// writes it once per frame; idle redraws read it when no fresh intents are
// available.
package preview

import (
	"image"
	"image/color"
)

// Surface is a drawing target for preview pixels.
//
// Surfaces are not safe for concurrent use. A surface that fails to draw
// must handle the failure itself; nothing is reported back to the pipeline.
type Surface interface {
	// FillCircle fills the ellipse inscribed in bounds with c, blending by
	// c's alpha.
	FillCircle(bounds image.Rectangle, c color.NRGBA)
}

// Point is a sub-pixel location.
type Point struct {
	X, Y float64
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package curve maps an input brightness percentage to an output percentage.
//
// Both axes are percentages in [0,100]. Callers holding unit-interval
// intensities scale by 100 before Evaluate and divide the result by 100;
// stored curve data uses the same units.
package curve

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
)

// ErrInvalidPoint is returned when a control point is not a finite number.
var ErrInvalidPoint = errors.New("curve: invalid control point")

// Point is a control point, X = input percent, Y = output percent.
type Point struct {
	X float64 `json:"x" toml:"x" yaml:"x" cbor:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y" cbor:"y"`
}

// Evaluator is anything that can evaluate a curve.
type Evaluator interface {
	Evaluate(percent float64) float64
}

// Curve is a piecewise-linear function through ordered control points.
// The output is not required to be monotonic.
//
// A Curve is immutable once built; use Clone before handing a copy to a
// different owner, or swap whole curves through a [Ref].
type Curve struct {
	points []Point
}

// New builds a curve through pts. The points are copied and ordered by X;
// points sharing an X keep their given order.
func New(pts ...Point) *Curve {
	c := &Curve{points: slices.Clone(pts)}
	slices.SortStableFunc(c.points, func(a, b Point) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		default:
			return 0
		}
	})
	return c
}

// Linear returns the identity curve [(0,0),(100,100)].
func Linear() *Curve {
	return New(Point{0, 0}, Point{100, 100})
}

// Validate reports the first non-finite control point.
func (c *Curve) Validate() error {
	for i, p := range c.points {
		if !finite(p.X) || !finite(p.Y) {
			return fmt.Errorf("%w: point %d (%v, %v)", ErrInvalidPoint, i, p.X, p.Y)
		}
	}
	return nil
}

// Evaluate returns the curve's output for an input percentage.
//
// Between control points the result is interpolated linearly. Inputs before
// the first point or after the last take that point's Y. NaN reads as the
// first point. A curve without points is the identity.
func (c *Curve) Evaluate(x float64) float64 {
	pts := c.points
	n := len(pts)
	switch {
	case n == 0:
		return x
	case math.IsNaN(x), x <= pts[0].X:
		return pts[0].Y
	case x >= pts[n-1].X:
		return pts[n-1].Y
	}

	// First point strictly right of x.
	i, _ := slices.BinarySearchFunc(pts, x, func(p Point, x float64) int {
		if p.X <= x {
			return -1
		}
		return 1
	})
	p0, p1 := pts[i-1], pts[i]
	t := (x - p0.X) / (p1.X - p0.X)
	return p0.Y + t*(p1.Y-p0.Y)
}

// Points returns a copy of the control points.
func (c *Curve) Points() []Point {
	return slices.Clone(c.points)
}

// Len returns the number of control points.
func (c *Curve) Len() int {
	return len(c.points)
}

// Clone returns a deep copy of c that shares no storage with it.
func (c *Curve) Clone() *Curve {
	if c == nil {
		return nil
	}
	return &Curve{points: slices.Clone(c.points)}
}

// Equal reports whether c and o have the same control points.
func (c *Curve) Equal(o *Curve) bool {
	if c == nil || o == nil {
		return c == o
	}
	return slices.Equal(c.points, o.points)
}

// String formats the curve as "x:y,x:y,...".
func (c *Curve) String() string {
	var sb strings.Builder
	for i, p := range c.points {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
	}
	return sb.String()
}

// Parse reads the format produced by String.
func Parse(s string) (*Curve, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return New(), nil
	}
	fields := strings.Split(s, ",")
	pts := make([]Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(strings.TrimSpace(f), ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPoint, f)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPoint, f, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPoint, f, err)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	c := New(pts...)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Ref holds the curve currently in force for a module. Writers swap whole
// curves; readers load the pointer once at the start of a frame, so a swap is
// never observed mid-frame.
type Ref struct {
	p atomic.Pointer[Curve]
}

// NewRef returns a Ref holding a clone of c.
func NewRef(c *Curve) *Ref {
	r := &Ref{}
	r.Store(c)
	return r
}

// Load returns the current curve. The result must be treated as read-only.
func (r *Ref) Load() *Curve {
	return r.p.Load()
}

// Store replaces the current curve with a clone of c, so later edits to c do
// not leak into running filters. A nil c installs the linear curve.
func (r *Ref) Store(c *Curve) {
	if c == nil {
		c = Linear()
	} else {
		c = c.Clone()
	}
	r.p.Store(c)
}

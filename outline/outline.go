/*
Package outline approximates the Bézier outline of a ring by a polygon and
answers geometric questions about it: bounding box, enclosed area, and how
much of the blob fits into the viewport. Polygon clipping is done with
polyclip-go.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package outline

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/blobgen/shape"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'outline'
func tracer() tracing.Trace {
	return tracing.Select("outline")
}

// DefaultSteps is the number of line pieces per curve segment.
const DefaultSteps = 16

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max blobgen.Pair
}

// Width of r.
func (r Rect) Width() float64 {
	return r.Max.X() - r.Min.X()
}

// Height of r.
func (r Rect) Height() float64 {
	return r.Max.Y() - r.Min.Y()
}

// Flatten approximates the closed outline of a ring by a contour, splitting
// every curve segment into steps lines. The contour starts at anchor 0 and
// does not repeat it at the end.
func Flatten(r shape.Ring, steps int) polyclip.Contour {
	n := r.N()
	if n == 0 {
		return nil
	}
	if steps < 1 {
		steps = 1
	}
	c := make(polyclip.Contour, 0, n*steps)
	c.Add(pt(r[0].Position))
	for i := 1; i <= n; i++ {
		seg := r.Segment(i % n)
		last := steps
		if i == n {
			last = steps - 1
		}
		for k := 1; k <= last; k++ {
			c.Add(pt(seg.At(float64(k) / float64(steps))))
		}
	}
	return c
}

// Polygon returns the flattened outline as a single-contour polygon.
func Polygon(r shape.Ring) polyclip.Polygon {
	return polyclip.Polygon{Flatten(r, DefaultSteps)}
}

// Bounds returns the bounding box of the outline.
func Bounds(r shape.Ring) Rect {
	if r.N() == 0 {
		return Rect{}
	}
	bb := Flatten(r, DefaultSteps).BoundingBox()
	return Rect{Min: blobgen.P(bb.Min.X, bb.Min.Y), Max: blobgen.P(bb.Max.X, bb.Max.Y)}
}

// Area returns the area enclosed by the outline.
func Area(r shape.Ring) float64 {
	return math.Abs(contourArea(Flatten(r, DefaultSteps)))
}

// Viewport returns the size×size viewport square as a polygon.
func Viewport(size float64) polyclip.Polygon {
	return polyclip.Polygon{{
		{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size},
	}}
}

// ClipToViewport returns the part of the outline inside the viewport.
func ClipToViewport(r shape.Ring, size float64) polyclip.Polygon {
	return Polygon(r).Construct(polyclip.INTERSECTION, Viewport(size))
}

// Overflows reports whether any part of the outline lies outside the
// viewport.
func Overflows(r shape.Ring, size float64) bool {
	if r.N() == 0 {
		return false
	}
	bb := Bounds(r)
	if bb.Min.X() >= 0 && bb.Min.Y() >= 0 && bb.Max.X() <= size && bb.Max.Y() <= size {
		return false
	}
	outside := Polygon(r).Construct(polyclip.DIFFERENCE, Viewport(size))
	a := polygonArea(outside)
	tracer().Debugf("outline exceeds viewport by area %.4g", a)
	return a > blobgen.Epsilon
}

// VisibleFraction returns the share of the blob's area inside the viewport,
// between 0 and 1.
func VisibleFraction(r shape.Ring, size float64) float64 {
	total := Area(r)
	if blobgen.Is0(total) {
		return 0
	}
	inside := polygonArea(ClipToViewport(r, size))
	return math.Min(1, inside/total)
}

// Sum of contour areas. Clipping results of a simple outline against a
// convex window have no holes.
func polygonArea(p polyclip.Polygon) float64 {
	var a float64
	for _, c := range p {
		a += math.Abs(contourArea(c))
	}
	return a
}

// Shoelace formula; positive for counter-clockwise contours.
func contourArea(c polyclip.Contour) float64 {
	var a float64
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return a / 2
}

func pt(p blobgen.Pair) polyclip.Point {
	return polyclip.Point{X: p.X(), Y: p.Y()}
}

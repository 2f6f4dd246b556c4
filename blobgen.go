/*
Package blobgen generates smooth, organic closed outlines ("blobs") from a
noise field, lets clients reshape them by dragging anchors and handles, and
exports them as cubic Bézier path data.

This root package implements points and affine transformations. The
interesting parts live in sub-packages:

	noise    -- reseedable 2D simplex noise field
	shape    -- anchor ring model and the shape generator
	hobby    -- optional handle derivation by Hobby's spline algorithm
	svgpath  -- path serialization and embeddable markup
	editor   -- drag editing state machine and the editing session
	outline  -- flattened outline, bounds and viewport clipping
	raster   -- PNG preview rendering

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package blobgen

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'blobgen'
func tracer() tracing.Trace {
	return tracing.Select("blobgen")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Pair Data Type ========================================================

// Pair is a 2D point or vector in viewport space.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Polar returns the pair at distance r from the origin in direction theta (radians).
func Polar(r, theta float64) Pair {
	return Pair(cmplx.Rect(r, theta))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// IsValid is false if any coordinate is NaN or infinite.
func (p Pair) IsValid() bool {
	return !cmplx.IsNaN(p.C()) && !cmplx.IsInf(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs, tolerating differences below Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Length is the euclidian norm of p.
func (p Pair) Length() float64 {
	return cmplx.Abs(p.C())
}

// Dist returns the distance between p and q.
func Dist(p, q Pair) float64 {
	return (q - p).Length()
}

// Unit returns p normalized to length 1. The zero vector stays the zero
// vector.
func (p Pair) Unit() Pair {
	l := p.Length()
	if Is0(l) {
		return Origin
	}
	return P(p.X()/l, p.Y()/l)
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return p + v
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Pair) Lerp(q Pair, t float64) Pair {
	return p + (q - p).Scaled(t)
}

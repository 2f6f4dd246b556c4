/*
Package svgpath serializes anchor rings into SVG path data and embeddable
SVG markup, and reads such path data back.

A ring of n anchors becomes one move-to, n cubic curve-to commands and a
close-path:

	M x0 y0 C c1x c1y, c2x c2y, x1 y1 … C c1x c1y, c2x c2y, x0 y0 Z

The last curve is the one arriving at anchor 0 and closes the outline.
All functions are pure reads of the ring; they may be called at any time,
including during a drag for live preview.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package svgpath

import (
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/blobgen/shape"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'svgpath'
func tracer() tracing.Trace {
	return tracing.Select("svgpath")
}

// Command is a single element of a path.
type Command interface {
	isCommand()
}

// MoveTo starts the outline without drawing.
type MoveTo struct {
	Point blobgen.Pair
}

func (MoveTo) isCommand() {}

// CubicTo draws a cubic Bézier curve from the current point.
type CubicTo struct {
	Control1 blobgen.Pair
	Control2 blobgen.Pair
	Point    blobgen.Pair
}

func (CubicTo) isCommand() {}

// Close closes the outline.
type Close struct{}

func (Close) isCommand() {}

// Commands returns the path commands for a ring. An empty ring yields no
// commands.
func Commands(r shape.Ring) []Command {
	n := r.N()
	if n == 0 {
		return nil
	}
	cmds := make([]Command, 0, n+2)
	cmds = append(cmds, MoveTo{Point: r[0].Position})
	for i := 1; i <= n; i++ {
		seg := r.Segment(i % n)
		cmds = append(cmds, CubicTo{Control1: seg.C1, Control2: seg.C2, Point: seg.To})
	}
	return append(cmds, Close{})
}

// Formatter writes path data with a fixed number of decimals. A negative
// precision writes the shortest representation which reads back exactly.
type Formatter struct {
	Precision int
}

// DefaultFormatter loses no precision.
var DefaultFormatter = Formatter{Precision: -1}

// Serialize returns the path description of a ring using DefaultFormatter.
func Serialize(r shape.Ring) string {
	return DefaultFormatter.Serialize(r)
}

// Serialize returns the path description of a ring.
func (f Formatter) Serialize(r shape.Ring) string {
	return f.Format(Commands(r))
}

// Format writes a command list as path data.
func (f Formatter) Format(cmds []Command) string {
	b := make([]byte, 0, 32*len(cmds))
	for i, cmd := range cmds {
		if i > 0 {
			b = append(b, ' ')
		}
		switch c := cmd.(type) {
		case MoveTo:
			b = append(b, "M "...)
			b = f.appendPair(b, c.Point)
		case CubicTo:
			b = append(b, "C "...)
			b = f.appendPair(b, c.Control1)
			b = append(b, ", "...)
			b = f.appendPair(b, c.Control2)
			b = append(b, ", "...)
			b = f.appendPair(b, c.Point)
		case Close:
			b = append(b, 'Z')
		}
	}
	return string(b)
}

func (f Formatter) appendPair(b []byte, p blobgen.Pair) []byte {
	b = f.appendFloat(b, p.X())
	b = append(b, ' ')
	return f.appendFloat(b, p.Y())
}

// Precision counts decimals, not significant digits: 85.996 becomes 86.00 at
// precision 2 and 86 at precision 0.
func (f Formatter) appendFloat(b []byte, x float64) []byte {
	x = blobgen.Zap(x)
	if f.Precision < 0 {
		return strconv.AppendFloat(b, x, 'f', -1, 64)
	}
	if math.Abs(x) < 0.5*math.Pow10(-f.Precision) {
		x = 0 // no "-0.00"
	}
	return strconv.AppendFloat(b, x, 'f', f.Precision, 64)
}

// PathElement returns a bare <path> element for a ring.
func PathElement(r shape.Ring, fill string) string {
	return DefaultFormatter.PathElement(r, fill)
}

// PathElement returns a bare <path> element for a ring.
func (f Formatter) PathElement(r shape.Ring, fill string) string {
	var b strings.Builder
	b.WriteString(`<path d="`)
	b.WriteString(f.Serialize(r))
	b.WriteString(`" fill="`)
	b.WriteString(html.EscapeString(fill))
	b.WriteString(`"/>`)
	return b.String()
}

// Markup returns a self-contained SVG image of a ring in a size×size
// viewport.
func Markup(r shape.Ring, size float64, fill string) string {
	return DefaultFormatter.Markup(r, size, fill)
}

// Markup returns a self-contained SVG image of a ring in a size×size
// viewport.
func (f Formatter) Markup(r shape.Ring, size float64, fill string) string {
	s := string(f.appendFloat(nil, size))
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)
	b.WriteString(s + " " + s)
	b.WriteString(`" width="` + s + `" height="` + s + `">`)
	b.WriteString(f.PathElement(r, fill))
	b.WriteString(`</svg>`)
	return b.String()
}

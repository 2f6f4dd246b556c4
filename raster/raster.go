/*
Package raster renders a blob to a bitmap for previews, using the software
rasterizer of gogpu/gg.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package raster

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/npillmayer/blobgen/shape"
	"github.com/npillmayer/blobgen/svgpath"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'raster'
func tracer() tracing.Trace {
	return tracing.Select("raster")
}

// ErrEmptyImage is returned for non-positive image or viewport sizes.
var ErrEmptyImage = errors.New("image has no pixels")

// Options control a rendering.
type Options struct {
	Pixels      int    // edge length of the square image
	Background  string // hex color, empty for transparent
	Outline     string // hex color of the outline stroke, empty for none
	ShowHandles bool   // draw anchors, handles and handle bars
}

// DefaultOptions renders a 600×600 preview on white.
func DefaultOptions() Options {
	return Options{Pixels: 600, Background: "#ffffff", Outline: "#1e293b"}
}

// Render draws a ring living in a size×size viewport. Fill and the colors of
// opts are CSS color values, see ParseColor.
// The caller owns the returned context and should Close it.
func Render(r shape.Ring, size float64, fill string, opts Options) (*gg.Context, error) {
	if opts.Pixels <= 0 || !(size > 0) {
		return nil, fmt.Errorf("%w: %d px for viewport %g", ErrEmptyImage, opts.Pixels, size)
	}
	fillColor, err := ParseColor(fill)
	if err != nil {
		return nil, err
	}
	var background, stroke color.Color
	if opts.Background != "" {
		if background, err = ParseColor(opts.Background); err != nil {
			return nil, err
		}
	}
	if opts.Outline != "" {
		if stroke, err = ParseColor(opts.Outline); err != nil {
			return nil, err
		}
	}
	dc := gg.NewContext(opts.Pixels, opts.Pixels)
	if background != nil {
		dc.ClearWithColor(gg.FromColor(background))
	}
	scale := float64(opts.Pixels) / size
	dc.Scale(scale, scale)
	tracePath(dc, r)
	dc.SetColor(fillColor)
	if err := dc.FillPreserve(); err != nil {
		dc.Close()
		return nil, err
	}
	if stroke != nil {
		dc.SetColor(stroke)
		dc.SetLineWidth(0.5)
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, err
		}
	}
	dc.ClearPath()
	if opts.ShowHandles {
		if err := drawHandles(dc, r); err != nil {
			dc.Close()
			return nil, err
		}
	}
	tracer().Debugf("rendered %d anchors at %d px", r.N(), opts.Pixels)
	return dc, nil
}

// WritePNG renders a ring and encodes it as PNG.
func WritePNG(w io.Writer, r shape.Ring, size float64, fill string, opts Options) error {
	dc, err := Render(r, size, fill, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

func tracePath(dc *gg.Context, r shape.Ring) {
	for _, cmd := range svgpath.Commands(r) {
		switch c := cmd.(type) {
		case svgpath.MoveTo:
			dc.MoveTo(c.Point.X(), c.Point.Y())
		case svgpath.CubicTo:
			dc.CubicTo(c.Control1.X(), c.Control1.Y(), c.Control2.X(), c.Control2.Y(),
				c.Point.X(), c.Point.Y())
		case svgpath.Close:
			dc.ClosePath()
		}
	}
}

// Handle bars connect each anchor to its in-handle and to its out-handle,
// which is stored on the successor.
func drawHandles(dc *gg.Context, r shape.Ring) error {
	dc.SetHexColor("#94a3b8")
	dc.SetLineWidth(0.2)
	for i := range r {
		a := r[i].Position
		in, out := *r.InboundHandle(i), *r.OutboundHandle(i)
		dc.DrawLine(a.X(), a.Y(), in.X(), in.Y())
		dc.DrawLine(a.X(), a.Y(), out.X(), out.Y())
	}
	if err := dc.Stroke(); err != nil {
		return err
	}
	dc.SetHexColor("#ffffff")
	for i := range r {
		in, out := *r.InboundHandle(i), *r.OutboundHandle(i)
		dc.DrawCircle(in.X(), in.Y(), 1.5)
		dc.DrawCircle(out.X(), out.Y(), 1.5)
	}
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.SetHexColor("#3b82f6")
	for i := range r {
		dc.DrawCircle(r[i].Position.X(), r[i].Position.Y(), 2)
	}
	return dc.Fill()
}

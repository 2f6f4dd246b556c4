/*
Package editor implements interactive reshaping of a blob.

A Document holds the whole editable state: generation parameters, fill
color and the anchor ring. Pointer input is fed through Transition, a state
transition function over an explicitly passed Document:

	Idle --PointerDown--> Dragging(anchor id, kind)
	Dragging --PointerMove--> Dragging   (ring updated)
	Dragging --PointerUp--> Idle

Transition is not synchronized. Session wraps a Document and the current
drag state behind a mutex for clients with more than one goroutine.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package editor

import (
	"github.com/npillmayer/blobgen/noise"
	"github.com/npillmayer/blobgen/shape"
	"github.com/npillmayer/blobgen/svgpath"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'editor'
func tracer() tracing.Trace {
	return tracing.Select("editor")
}

// DefaultFillColor is the fill color of a new document.
const DefaultFillColor = "#3b82f6"

// Document is the editable state of a blob.
type Document struct {
	Size       float64
	FillColor  string
	Complexity int
	Smoothness float64
	Mode       shape.HandleMode
	Octaves    int
	Seed       *int64
	Points     shape.Ring
	Format     svgpath.Formatter
}

// NewDocument creates a document and generates its initial ring. Parameters
// are clamped to their domains first.
func NewDocument(p shape.Params) (*Document, error) {
	p = p.Clamp()
	doc := &Document{
		Size:       p.Size,
		FillColor:  DefaultFillColor,
		Complexity: p.Complexity,
		Smoothness: p.Smoothness,
		Mode:       p.Mode,
		Octaves:    p.Octaves,
		Seed:       p.Seed,
		Format:     svgpath.DefaultFormatter,
	}
	if err := doc.Regenerate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Params returns the generation parameters of the document.
func (doc *Document) Params() shape.Params {
	return shape.Params{
		Complexity: doc.Complexity,
		Smoothness: doc.Smoothness,
		Size:       doc.Size,
		Mode:       doc.Mode,
		Octaves:    doc.Octaves,
		Seed:       doc.Seed,
	}
}

// SetComplexity sets the anchor count for the next regeneration, clamped
// to [3,20]. The current ring is not touched.
func (doc *Document) SetComplexity(n int) {
	doc.Complexity = shape.ClampComplexity(n)
}

// SetSmoothness sets the handle length factor for the next regeneration,
// clamped to [0,1].
func (doc *Document) SetSmoothness(s float64) {
	doc.Smoothness = shape.ClampSmoothness(s)
}

// SetOctaves sets the number of noise octaves for the next regeneration,
// clamped to [1,8].
func (doc *Document) SetOctaves(n int) {
	doc.Octaves = shape.ClampOctaves(n)
}

// SetFillColor accepts any string; it is escaped on export.
func (doc *Document) SetFillColor(c string) {
	doc.FillColor = c
}

// Regenerate replaces the ring by a freshly generated one, discarding all
// manual edits and invalidating all anchor ids.
func (doc *Document) Regenerate() error {
	r, err := shape.Generate(doc.Params())
	if err != nil {
		return err
	}
	doc.Points = r
	tracer().Infof("regenerated ring with %d anchors", r.N())
	return nil
}

// RegenerateWith is like Regenerate, but samples the given field.
func (doc *Document) RegenerateWith(field noise.Field) error {
	r, err := shape.GenerateWith(doc.Params(), field)
	if err != nil {
		return err
	}
	doc.Points = r
	tracer().Infof("regenerated ring with %d anchors", r.N())
	return nil
}

// PathDescription returns the SVG path data of the current ring.
func (doc *Document) PathDescription() string {
	return doc.Format.Serialize(doc.Points)
}

// EmbeddableMarkup returns a self-contained SVG image of the current ring.
func (doc *Document) EmbeddableMarkup() string {
	return doc.Format.Markup(doc.Points, doc.Size, doc.FillColor)
}

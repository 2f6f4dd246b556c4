/*
Package shape holds the anchor ring model of a blob and the generator which
builds rings from a noise field.

A ring is an ordered, cyclic sequence of anchors. Every anchor owns the
curve segment arriving at it from its predecessor and stores both of that
segment's control points:

	ring[i-1].Position  ring[i].ControlOut  ring[i].ControlIn  ring[i].Position
	        start              c1                  c2               end

ControlIn therefore sits next to its own anchor, while ControlOut sits next
to the predecessor: it is the predecessor's outgoing handle. Code that
needs "the handle leaving anchor i" must use Ring.OutboundHandle, which
encapsulates this split ownership.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package shape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'shape'
func tracer() tracing.Trace {
	return tracing.Select("shape")
}

var (
	// ErrTooFewAnchors indicates a ring (or a request for one) below 3 anchors.
	ErrTooFewAnchors = errors.New("ring needs at least 3 anchors")
	// ErrInvalidParameter indicates a generation parameter outside its domain.
	ErrInvalidParameter = errors.New("invalid generation parameter")
	// ErrDuplicateID indicates two anchors sharing an id.
	ErrDuplicateID = errors.New("duplicate anchor id")
	// ErrInvalidCoordinate indicates a NaN or infinite coordinate.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// ID identifies an anchor. Ids are unique within a process and never reused.
type ID string

// AnchorPoint is a node of the ring.
type AnchorPoint struct {
	ID         ID
	Position   blobgen.Pair
	ControlIn  blobgen.Pair // control point entering this anchor
	ControlOut blobgen.Pair // control point leaving the predecessor, owned by this anchor
}

func (a AnchorPoint) String() string {
	return fmt.Sprintf("%s%s[in=%s out=%s]", a.ID, a.Position, a.ControlIn, a.ControlOut)
}

// Ring is the ordered, cyclic sequence of anchors of a blob.
type Ring []AnchorPoint

// N returns the anchor count.
func (r Ring) N() int {
	return len(r)
}

// Succ returns the index following i, wrapping around.
func (r Ring) Succ(i int) int {
	return (i + 1) % len(r)
}

// Pred returns the index preceding i, wrapping around.
func (r Ring) Pred(i int) int {
	return (i - 1 + len(r)) % len(r)
}

// IndexOf returns the index of the anchor with the given id, or -1.
func (r Ring) IndexOf(id ID) int {
	for i := range r {
		if r[i].ID == id {
			return i
		}
	}
	return -1
}

// InboundHandle returns the handle entering anchor i, which anchor i owns.
func (r Ring) InboundHandle(i int) *blobgen.Pair {
	return &r[i].ControlIn
}

// OutboundHandle returns the handle leaving anchor i. It is owned and stored
// by the successor of i.
func (r Ring) OutboundHandle(i int) *blobgen.Pair {
	return &r[r.Succ(i)].ControlOut
}

// Segment is a cubic Bézier curve between two consecutive anchors.
type Segment struct {
	From, C1, C2, To blobgen.Pair
}

// Segment returns the curve arriving at anchor i. Segment(0) is the one
// closing the ring.
func (r Ring) Segment(i int) Segment {
	return Segment{
		From: r[r.Pred(i)].Position,
		C1:   r[i].ControlOut,
		C2:   r[i].ControlIn,
		To:   r[i].Position,
	}
}

// At evaluates the segment at parameter t ∈ [0,1].
func (s Segment) At(t float64) blobgen.Pair {
	mt := 1 - t
	a := s.From.Scaled(mt * mt * mt)
	b := s.C1.Scaled(3 * mt * mt * t)
	c := s.C2.Scaled(3 * mt * t * t)
	d := s.To.Scaled(t * t * t)
	return a + b + c + d
}

// Positions returns the anchor positions in ring order.
func (r Ring) Positions() []blobgen.Pair {
	pts := make([]blobgen.Pair, len(r))
	for i := range r {
		pts[i] = r[i].Position
	}
	return pts
}

// Clone returns a deep copy of the ring.
func (r Ring) Clone() Ring {
	if r == nil {
		return nil
	}
	c := make(Ring, len(r))
	copy(c, r)
	return c
}

// Validate checks the structural invariants of a ring: at least 3 anchors,
// unique ids and finite coordinates.
func (r Ring) Validate() error {
	if len(r) < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewAnchors, len(r))
	}
	seen := make(map[ID]bool, len(r))
	for i, a := range r {
		if seen[a.ID] {
			return fmt.Errorf("%w: %q at index %d", ErrDuplicateID, a.ID, i)
		}
		seen[a.ID] = true
		if !a.Position.IsValid() || !a.ControlIn.IsValid() || !a.ControlOut.IsValid() {
			return fmt.Errorf("%w at anchor %d", ErrInvalidCoordinate, i)
		}
	}
	return nil
}

// String lists the anchors of a ring, one per line.
func (r Ring) String() string {
	var b strings.Builder
	for i, a := range r {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%2d: %s", i, a)
	}
	return b.String()
}

// Assemble builds a ring from externally supplied geometry, e.g. parsed path
// data. Anchors get fresh ids. in[i] and out[i] are the ControlIn and
// ControlOut of anchor i.
func Assemble(positions, in, out []blobgen.Pair) (Ring, error) {
	n := len(positions)
	if len(in) != n || len(out) != n {
		return nil, fmt.Errorf("%w: %d positions, %d in-handles, %d out-handles",
			ErrInvalidParameter, n, len(in), len(out))
	}
	ids := mintIDs(n)
	r := make(Ring, n)
	for i := range r {
		r[i] = AnchorPoint{ID: ids[i], Position: positions[i], ControlIn: in[i], ControlOut: out[i]}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

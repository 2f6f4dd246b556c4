package editor

import (
	"errors"
	"fmt"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/blobgen/noise"
	"github.com/npillmayer/blobgen/shape"
)

// ErrUnknownAnchor is returned when an event refers to an anchor id which is
// not part of the current ring, typically a stale id from before a
// regeneration. The ring is never touched in this case.
var ErrUnknownAnchor = errors.New("unknown anchor")

// ErrInvalidKind is returned when a pointer grabs something which is neither
// an anchor nor one of its handles.
var ErrInvalidKind = errors.New("invalid drag element")

// Kind tells which of the draggable elements of an anchor is grabbed.
type Kind int

const (
	Anchor         Kind = iota // the anchor itself
	InboundHandle              // the handle entering the anchor
	OutboundHandle             // the handle leaving the anchor, stored on its successor
)

func (k Kind) String() string {
	switch k {
	case Anchor:
		return "anchor"
	case InboundHandle:
		return "in-handle"
	case OutboundHandle:
		return "out-handle"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool {
	return k == Anchor || k == InboundHandle || k == OutboundHandle
}

// State is the drag state. The zero value is Idle.
type State struct {
	Dragging bool
	Target   shape.ID
	Kind     Kind
}

// Idle is the state without a drag session.
var Idle = State{}

func (st State) String() string {
	if !st.Dragging {
		return "Idle"
	}
	return fmt.Sprintf("Dragging(%s, %s)", st.Target, st.Kind)
}

// Event is an input to Transition.
type Event interface {
	isEvent()
}

// PointerDown grabs an element of an anchor. At is in viewport coordinates.
type PointerDown struct {
	Target shape.ID
	Kind   Kind
	At     blobgen.Pair
}

// PointerMove drags the grabbed element to At (viewport coordinates).
type PointerMove struct {
	At blobgen.Pair
}

// PointerUp ends a drag session, keeping the last applied position.
type PointerUp struct{}

// Regenerate replaces the ring. A nil Field lets the document pick one.
type Regenerate struct {
	Field noise.Field
}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Regenerate) isEvent()  {}

// Transition applies an event to a document and returns the follow-up state.
// Every event leaves the ring fully consistent before returning.
//
// Events referring to unknown anchors are no-ops: the state falls back to
// Idle and ErrUnknownAnchor is returned for information. A regeneration
// always ends a drag session.
func Transition(doc *Document, st State, ev Event) (State, error) {
	switch e := ev.(type) {
	case PointerDown:
		if !e.Kind.valid() {
			tracer().Debugf("pointer down on %s of %q", e.Kind, e.Target)
			return Idle, fmt.Errorf("%w: %s", ErrInvalidKind, e.Kind)
		}
		if doc.Points.IndexOf(e.Target) < 0 {
			tracer().Debugf("pointer down on unknown anchor %q", e.Target)
			return Idle, fmt.Errorf("%w: %q", ErrUnknownAnchor, e.Target)
		}
		next := State{Dragging: true, Target: e.Target, Kind: e.Kind}
		tracer().Debugf("%s -> %s", st, next)
		return next, nil
	case PointerMove:
		if !st.Dragging {
			return st, nil
		}
		i := doc.Points.IndexOf(st.Target)
		if i < 0 {
			tracer().Infof("abandoning drag of stale anchor %q", st.Target)
			return Idle, fmt.Errorf("%w: %q", ErrUnknownAnchor, st.Target)
		}
		Drag(doc.Points, i, st.Kind, e.At)
		return st, nil
	case PointerUp:
		if st.Dragging {
			tracer().Debugf("%s -> Idle", st)
		}
		return Idle, nil
	case Regenerate:
		var err error
		if e.Field != nil {
			err = doc.RegenerateWith(e.Field)
		} else {
			err = doc.Regenerate()
		}
		return Idle, err
	}
	return st, fmt.Errorf("unknown event type %T", ev)
}

// Drag moves an element of anchor i to position at.
//
// Dragging an anchor carries both handles touching it by the same delta; the
// handles at the far ends of its two segments stay where they are. Dragging
// a handle moves that handle alone, without mirroring it through the anchor.
func Drag(r shape.Ring, i int, kind Kind, at blobgen.Pair) {
	switch kind {
	case Anchor:
		delta := at - r[i].Position
		r[i].Position = at
		*r.InboundHandle(i) += delta
		*r.OutboundHandle(i) += delta
	case InboundHandle:
		*r.InboundHandle(i) = at
	case OutboundHandle:
		*r.OutboundHandle(i) = at
	}
}

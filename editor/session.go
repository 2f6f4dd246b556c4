package editor

import (
	"sync"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/blobgen/shape"
)

// Session serializes all access to a document and its drag state. It offers
// the parameter, pointer and export interfaces to UI bindings.
type Session struct {
	mu       sync.Mutex
	doc      *Document
	state    State
	view     View
	onChange func(path string)
}

// NewSession starts a session with a freshly generated document.
func NewSession(p shape.Params) (*Session, error) {
	doc, err := NewDocument(p)
	if err != nil {
		return nil, err
	}
	return &Session{doc: doc, view: IdentityView()}, nil
}

// OnChange registers a callback receiving the path description after every
// change to the ring. It is called with the session lock held and must not
// call back into the session.
func (s *Session) OnChange(f func(path string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = f
}

// SetView sets the screen transform used by the *Screen pointer methods.
func (s *Session) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

// State returns the current drag state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ring returns a copy of the current anchor ring.
func (s *Session) Ring() shape.Ring {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Points.Clone()
}

// Params returns the current generation parameters.
func (s *Session) Params() shape.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Params()
}

// FillColor returns the current fill color.
func (s *Session) FillColor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.FillColor
}

// --- Parameter interface ---------------------------------------------------

// SetComplexity sets the anchor count, clamped to [3,20].
func (s *Session) SetComplexity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SetComplexity(n)
}

// SetSmoothness sets the smoothness, clamped to [0,1].
func (s *Session) SetSmoothness(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SetSmoothness(v)
}

// SetOctaves sets the number of noise octaves, clamped to [1,8].
func (s *Session) SetOctaves(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SetOctaves(n)
}

// SetMode sets the handle derivation used by the next regeneration.
func (s *Session) SetMode(m shape.HandleMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Mode = m
}

// SetFillColor sets the fill color.
func (s *Session) SetFillColor(c string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SetFillColor(c)
}

// Regenerate rebuilds the ring from the current parameters. A running drag
// session is abandoned.
func (s *Session) Regenerate() error {
	return s.apply(Regenerate{})
}

// --- Pointer interface -----------------------------------------------------

// PointerDown grabs an element; at is in viewport coordinates.
func (s *Session) PointerDown(target shape.ID, kind Kind, at blobgen.Pair) error {
	return s.apply(PointerDown{Target: target, Kind: kind, At: at})
}

// PointerMove drags the grabbed element; at is in viewport coordinates.
func (s *Session) PointerMove(at blobgen.Pair) error {
	return s.apply(PointerMove{At: at})
}

// PointerUp ends a drag session.
func (s *Session) PointerUp() {
	_ = s.apply(PointerUp{})
}

// PointerMoveScreen is PointerMove for a position in screen coordinates.
func (s *Session) PointerMoveScreen(screen blobgen.Pair) error {
	s.mu.Lock()
	at := s.view.Project(screen)
	s.mu.Unlock()
	return s.PointerMove(at)
}

// PointerDownScreen is PointerDown for a position in screen coordinates.
func (s *Session) PointerDownScreen(target shape.ID, kind Kind, screen blobgen.Pair) error {
	s.mu.Lock()
	at := s.view.Project(screen)
	s.mu.Unlock()
	return s.PointerDown(target, kind, at)
}

// --- Export interface ------------------------------------------------------

// PathDescription returns the SVG path data of the current ring.
func (s *Session) PathDescription() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.PathDescription()
}

// EmbeddableMarkup returns a self-contained SVG image of the current ring.
func (s *Session) EmbeddableMarkup() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.EmbeddableMarkup()
}

func (s *Session) apply(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dragging := s.state.Dragging
	next, err := Transition(s.doc, s.state, ev)
	s.state = next
	if err != nil || s.onChange == nil {
		return err
	}
	switch ev.(type) {
	case PointerMove:
		if dragging {
			s.onChange(s.doc.PathDescription())
		}
	case Regenerate:
		s.onChange(s.doc.PathDescription())
	}
	return nil
}

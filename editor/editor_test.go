package editor

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/blobgen/noise"
	"github.com/npillmayer/blobgen/shape"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T, complexity int) *Document {
	t.Helper()
	doc, err := NewDocument(shape.Params{Complexity: complexity, Smoothness: 0.5, Size: 100}.WithSeed(4711))
	require.NoError(t, err)
	return doc
}

func drive(t *testing.T, doc *Document, events ...Event) State {
	t.Helper()
	st := Idle
	for _, ev := range events {
		var err error
		st, err = Transition(doc, st, ev)
		require.NoError(t, err)
	}
	return st
}

func TestDragAnchorScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newDoc(t, 8)
	doc.Points[2].Position = blobgen.P(70, 40)
	before := doc.Points.Clone()
	id := doc.Points[2].ID
	st := drive(t, doc,
		PointerDown{Target: id, Kind: Anchor, At: blobgen.P(70, 40)},
		PointerMove{At: blobgen.P(80, 50)},
		PointerUp{},
	)
	assert.Equal(t, Idle, st)
	after := doc.Points
	delta := blobgen.P(10, 10)
	assert.Equal(t, blobgen.P(80, 50), after[2].Position)
	assert.True(t, after[2].ControlIn.Equal(before[2].ControlIn+delta))
	assert.True(t, after[3].ControlOut.Equal(before[3].ControlOut+delta))
	// the far handles of both adjacent segments stay put
	assert.Equal(t, before[2].ControlOut, after[2].ControlOut)
	assert.Equal(t, before[3].ControlIn, after[3].ControlIn)
	assert.Equal(t, before[3].Position, after[3].Position)
	for _, i := range []int{0, 1, 4, 5, 6, 7} {
		assert.Equal(t, before[i], after[i], "anchor %d changed", i)
	}
}

func TestDragAnchorIsRigidForAllAnchors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newDoc(t, 5)
	for i := 0; i < 5; i++ {
		before := doc.Points.Clone()
		at := before[i].Position + blobgen.P(-3, 2.5)
		st := drive(t, doc, PointerDown{Target: before[i].ID, Kind: Anchor}, PointerMove{At: at})
		assert.True(t, st.Dragging)
		succ := doc.Points.Succ(i)
		for j := range before {
			switch j {
			case i:
				assert.True(t, doc.Points[j].ControlIn.Equal(before[j].ControlIn+blobgen.P(-3, 2.5)))
				assert.Equal(t, before[j].ControlOut, doc.Points[j].ControlOut)
			case succ:
				assert.True(t, doc.Points[j].ControlOut.Equal(before[j].ControlOut+blobgen.P(-3, 2.5)))
				assert.Equal(t, before[j].ControlIn, doc.Points[j].ControlIn)
				assert.Equal(t, before[j].Position, doc.Points[j].Position)
			default:
				assert.Equal(t, before[j], doc.Points[j])
			}
		}
	}
}

func TestDragHandlesAreIndependent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newDoc(t, 6)
	target := blobgen.P(1, 99)
	for _, kind := range []Kind{InboundHandle, OutboundHandle} {
		before := doc.Points.Clone()
		drive(t, doc, PointerDown{Target: before[5].ID, Kind: kind}, PointerMove{At: target}, PointerUp{})
		changed := 0
		for j := range before {
			if before[j] != doc.Points[j] {
				changed++
			}
			assert.Equal(t, before[j].Position, doc.Points[j].Position)
		}
		assert.Equal(t, 1, changed)
		if kind == InboundHandle {
			assert.Equal(t, target, doc.Points[5].ControlIn)
			assert.Equal(t, before[5].ControlOut, doc.Points[5].ControlOut)
		} else {
			// the handle leaving anchor 5 lives on anchor 0
			assert.Equal(t, target, doc.Points[0].ControlOut)
			assert.Equal(t, before[0].ControlIn, doc.Points[0].ControlIn)
		}
	}
}

func TestMoveWhileIdleIsNoop(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newDoc(t, 4)
	before := doc.Points.Clone()
	st := drive(t, doc, PointerMove{At: blobgen.P(0, 0)}, PointerUp{}, PointerUp{})
	assert.Equal(t, Idle, st)
	assert.Equal(t, before, doc.Points)
}

func TestStaleTargetAfterRegeneration(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newDoc(t, 8)
	stale := doc.Points[1].ID
	st := drive(t, doc, PointerDown{Target: stale, Kind: Anchor})
	require.True(t, st.Dragging)
	// regenerate behind the state machine's back
	require.NoError(t, doc.RegenerateWith(noise.Constant(0)))
	before := doc.Points.Clone()
	st, err := Transition(doc, st, PointerMove{At: blobgen.P(3, 3)})
	assert.True(t, errors.Is(err, ErrUnknownAnchor))
	assert.Equal(t, Idle, st)
	assert.Equal(t, before, doc.Points)
	st, err = Transition(doc, Idle, PointerDown{Target: stale})
	assert.True(t, errors.Is(err, ErrUnknownAnchor))
	assert.Equal(t, Idle, st)
}

func TestRegenerateEndsDrag(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newDoc(t, 8)
	old := doc.Points.Clone()
	st := drive(t, doc,
		PointerDown{Target: doc.Points[0].ID, Kind: Anchor},
		PointerMove{At: blobgen.P(1, 1)},
		Regenerate{Field: noise.New(1)},
	)
	assert.Equal(t, Idle, st)
	assert.Equal(t, 8, doc.Points.N())
	for _, a := range old {
		assert.Equal(t, -1, doc.Points.IndexOf(a.ID))
	}
}

func TestParameterClamping(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newDoc(t, 8)
	doc.SetComplexity(2)
	assert.Equal(t, 3, doc.Complexity)
	assert.Equal(t, 8, doc.Points.N(), "setting parameters must not touch the ring")
	require.NoError(t, doc.Regenerate())
	assert.Equal(t, 3, doc.Points.N())
	doc.SetComplexity(21)
	assert.Equal(t, 20, doc.Complexity)
	doc.SetSmoothness(-1)
	assert.Equal(t, 0.0, doc.Smoothness)
	doc.SetSmoothness(2)
	assert.Equal(t, 1.0, doc.Smoothness)
	doc.SetFillColor("not a color")
	assert.Contains(t, doc.EmbeddableMarkup(), `fill="not a color"`)
}

func TestNewDocumentClamps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc, err := NewDocument(shape.Params{Complexity: 2, Smoothness: 3, Size: 100})
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Points.N())
	assert.Equal(t, 1.0, doc.Smoothness)
	_, err = NewDocument(shape.Params{Complexity: 5, Size: -1})
	assert.True(t, errors.Is(err, shape.ErrInvalidParameter))
}

func TestView(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v, err := NewView(6, blobgen.P(20, 10))
	require.NoError(t, err)
	assert.True(t, v.Project(blobgen.P(80, 70)).Equal(blobgen.P(10, 10)))
	assert.True(t, v.Screen(blobgen.P(10, 10)).Equal(blobgen.P(80, 70)))
	_, err = NewView(0, blobgen.Origin)
	assert.True(t, errors.Is(err, blobgen.ErrSingular))
	var zero View
	assert.Equal(t, blobgen.P(1, 2), zero.Project(blobgen.P(1, 2)))
}

func TestRotatedView(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v, err := NewRotatedView(2, 90*blobgen.Deg2Rad, blobgen.P(100, 0))
	require.NoError(t, err)
	assert.True(t, v.Screen(blobgen.P(10, 0)).Equal(blobgen.P(100, 20)), "got %v", v.Screen(blobgen.P(10, 0)))
	assert.True(t, v.Project(blobgen.P(100, 20)).Equal(blobgen.P(10, 0)), "got %v", v.Project(blobgen.P(100, 20)))
	assert.True(t, v.Project(blobgen.P(80, 0)).Equal(blobgen.P(0, 10)), "got %v", v.Project(blobgen.P(80, 0)))
}

func TestPointerDownRejectsInvalidKind(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newDoc(t, 5)
	before := doc.Points.Clone()
	for _, kind := range []Kind{-1, 3, 42} {
		st, err := Transition(doc, Idle, PointerDown{Target: doc.Points[1].ID, Kind: kind})
		assert.True(t, errors.Is(err, ErrInvalidKind), "kind %d: got %v", int(kind), err)
		assert.Equal(t, Idle, st)
		st, err = Transition(doc, st, PointerMove{At: blobgen.P(1, 1)})
		require.NoError(t, err)
		assert.Equal(t, Idle, st)
	}
	assert.Equal(t, before, doc.Points)
	s, err := NewSession(shape.DefaultParams())
	require.NoError(t, err)
	err = s.PointerDown(s.Ring()[0].ID, Kind(7), blobgen.Origin)
	assert.True(t, errors.Is(err, ErrInvalidKind))
	assert.False(t, s.State().Dragging)
}

func TestDocumentOctaves(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newDoc(t, 6)
	assert.Equal(t, 1, doc.Octaves)
	doc.SetOctaves(99)
	assert.Equal(t, shape.MaxOctaves, doc.Params().Octaves)
	doc.SetOctaves(0)
	assert.Equal(t, 1, doc.Params().Octaves)
	doc.SetOctaves(4)
	require.NoError(t, doc.Regenerate())
	assert.Equal(t, 4, doc.Params().Octaves)
	assert.NoError(t, doc.Points.Validate())
}

func TestSessionScreenDrag(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSession(shape.DefaultParams())
	require.NoError(t, err)
	v, err := NewView(6, blobgen.Origin)
	require.NoError(t, err)
	s.SetView(v)
	var paths []string
	s.OnChange(func(path string) { paths = append(paths, path) })
	r := s.Ring()
	require.NoError(t, s.PointerDownScreen(r[3].ID, Anchor, v.Screen(r[3].Position)))
	require.NoError(t, s.PointerMoveScreen(blobgen.P(300, 120)))
	assert.Equal(t, State{Dragging: true, Target: r[3].ID, Kind: Anchor}, s.State())
	s.PointerUp()
	assert.Equal(t, Idle, s.State())
	assert.True(t, s.Ring()[3].Position.Equal(blobgen.P(50, 20)))
	require.Len(t, paths, 1)
	assert.Equal(t, s.PathDescription(), paths[0])
	require.NoError(t, s.PointerMove(blobgen.P(1, 1)))
	assert.Len(t, paths, 1, "moves while idle do not notify")
	require.NoError(t, s.Regenerate())
	assert.Len(t, paths, 2)
	assert.Contains(t, s.EmbeddableMarkup(), paths[1])
}

func TestSessionConcurrentAccess(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSession(shape.DefaultParams())
	require.NoError(t, err)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				r := s.Ring()
				_ = s.PointerDown(r[g].ID, Kind(k%3), r[g].Position)
				_ = s.PointerMove(blobgen.P(float64(k), float64(g)))
				s.PointerUp()
				_ = s.PathDescription()
				if k%17 == 0 {
					_ = s.Regenerate()
				}
			}
		}(g)
	}
	wg.Wait()
	assert.NoError(t, s.Ring().Validate())
	assert.Equal(t, 8, s.Ring().N())
}

package hobby

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circle() []blobgen.Pair {
	return []blobgen.Pair{blobgen.P(1, 1), blobgen.P(2, 2), blobgen.P(3, 1), blobgen.P(2, 0)}
}

func TestPsiCycle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := ring{z: []blobgen.Pair{blobgen.P(1, 1), blobgen.P(2, 2), blobgen.P(3, 1)}, tension: 1}
	assert.InDelta(t, -90.0, r.psi(1)*180/math.Pi, 0.01)
	assert.InDelta(t, -135.0, r.psi(2)*180/math.Pi, 0.01)
	assert.InDelta(t, math.Abs(r.psi(1)), math.Abs(r.psi(r.N()+1)), 0.0001)
}

func TestControlsCircleSnapshot(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	controls, err := FindControls(circle(), 1.0)
	require.NoError(t, err)
	p0post := controls.Post(0)
	assert.InDelta(t, 1.0000, p0post.X(), 0.0002)
	assert.InDelta(t, 1.5523, p0post.Y(), 0.0002)
	p1pre := controls.Pre(1)
	assert.InDelta(t, 1.4477, p1pre.X(), 0.0002)
	assert.InDelta(t, 2.0000, p1pre.Y(), 0.0002)
	p2post := controls.Post(2)
	assert.InDelta(t, 3.0000, p2post.X(), 0.0002)
	assert.InDelta(t, 0.4477, p2post.Y(), 0.0002)
}

func TestTensionShortensControls(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loose := MustFindControls(circle(), 1.0)
	tight := MustFindControls(circle(), 2.0)
	z0 := circle()[0]
	assert.Less(t, blobgen.Dist(z0, tight.Post(0)), blobgen.Dist(z0, loose.Post(0)))
}

func TestOutOfRangeIndexIsUnknown(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	controls := MustFindControls(circle(), 1.0)
	assert.False(t, controls.Pre(17).IsValid())
	assert.False(t, controls.Post(-1).IsValid())
}

func TestFindControlsRejectsInvalidRings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := FindControls([]blobgen.Pair{blobgen.P(0, 0), blobgen.P(1, 0)}, 1)
	assert.True(t, errors.Is(err, ErrTooFewKnots), "got %v", err)
	_, err = FindControls([]blobgen.Pair{blobgen.P(0, 0), blobgen.P(1, 0), blobgen.P(1, 0)}, 1)
	assert.True(t, errors.Is(err, ErrDegenerateSegment), "got %v", err)
	_, err = FindControls([]blobgen.Pair{blobgen.P(0, 0), blobgen.P(1, 0), blobgen.P(math.NaN(), 0)}, 1)
	assert.True(t, errors.Is(err, ErrInvalidKnot), "got %v", err)
	// first and last knot coincide: the closing segment is degenerate
	_, err = FindControls([]blobgen.Pair{blobgen.P(0, 0), blobgen.P(1, 0), blobgen.P(1, 1), blobgen.P(0, 0)}, 1)
	assert.True(t, errors.Is(err, ErrDegenerateSegment), "got %v", err)
}

func TestMustFindControlsPanics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Panics(t, func() { MustFindControls(nil, 1) })
}

func TestAsStringSkeleton(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "(1,1) .. (2,2) .. (3,1) .. (2,0) .. cycle", AsString(circle(), nil))
}

// Draw a circle with diameter 2 around (2,1).
func ExampleFindControls() {
	knots := circle()
	controls := MustFindControls(knots, 1.0)
	fmt.Println(AsString(knots, controls))

	// (1,1) .. controls (1.0000,1.5523) and (1.4477,2.0000)
	//   .. (2,2) .. controls (2.5523,2.0000) and (3.0000,1.5523)
	//   .. (3,1) .. controls (3.0000,0.4477) and (2.5523,0.0000)
	//   .. (2,0) .. controls (1.4477,0.0000) and (1.0000,0.4477)
	//   .. cycle
}

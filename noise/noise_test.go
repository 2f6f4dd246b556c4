package noise

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestSimplexRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := New(42)
	for i := 0; i < 200; i++ {
		x := float64(i)*0.173 - 10
		v := f.Sample(x, -x*0.7)
		assert.True(t, v >= -1 && v <= 1, "sample %g out of range", v)
	}
}

func TestSimplexDeterministic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, g := New(7), New(7)
	assert.Equal(t, f.Sample(1.25, -0.5), g.Sample(1.25, -0.5))
	assert.Equal(t, f.Sample(1.25, -0.5), f.Sample(1.25, -0.5))
	assert.Equal(t, int64(7), f.Seed())
}

func TestSimplexContinuous(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := New(3)
	a := f.Sample(0.5, 0.5)
	b := f.Sample(0.5+1e-6, 0.5)
	assert.InDelta(t, a, b, 1e-3)
}

func TestReseededFieldsDiffer(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, g := New(1), New(2)
	differ := false
	for i := 0; i < 16 && !differ; i++ {
		angle := float64(i) * math.Pi / 8
		x, y := math.Cos(angle)*1.5, math.Sin(angle)*1.5
		differ = f.Sample(x, y) != g.Sample(x, y)
	}
	assert.True(t, differ, "fields with different seeds should differ")
}

func TestOctavesNormalized(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	o := Octaves{Base: Constant(1), Count: 4, Persistence: 0.5}
	assert.InDelta(t, 1.0, o.Sample(3, 4), 1e-12)
	single := Octaves{Base: Constant(-0.25), Count: 1}
	assert.InDelta(t, -0.25, single.Sample(0, 0), 1e-12)
}

func TestConstantClamped(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, 1.0, Constant(5).Sample(0, 0))
	assert.Equal(t, -1.0, Constant(-5).Sample(0, 0))
}

package shape

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/blobgen/hobby"
	"github.com/npillmayer/blobgen/noise"
)

const (
	baseRadiusFactor = 0.35 // base radius relative to viewport size
	noiseScale       = 1.5  // radius of the circle the noise is sampled on
	radiusVariation  = 0.5  // max deviation from the base radius, relative
	handleBase       = 0.15 // handle length factor at smoothness 0
	handleRange      = 0.25 // added to handleBase at smoothness 1
	persistence      = 0.5  // amplitude ratio of successive noise octaves
)

// generation counts generator runs; it keeps anchor ids unique across
// regenerations.
var generation atomic.Uint64

func mintIDs(n int) []ID {
	g := generation.Add(1)
	ids := make([]ID, n)
	for i := range ids {
		ids[i] = ID(fmt.Sprintf("p-%d-%d", g, i))
	}
	return ids
}

// Generate builds a new ring. If p carries a seed, the noise field is derived
// from it, otherwise a freshly seeded field is used and two calls with equal
// parameters yield different shapes.
func Generate(p Params) (Ring, error) {
	var field noise.Field
	if p.Seed != nil {
		field = noise.New(*p.Seed)
	} else {
		field = noise.NewRandom()
	}
	return GenerateWith(p, field)
}

// MustGenerate is like Generate, but panics on invalid parameters.
func MustGenerate(p Params) Ring {
	r, err := Generate(p)
	if err != nil {
		panic(err)
	}
	return r
}

// GenerateWith builds a new ring, sampling anchor radii from field.
//
// Anchors are spread at equal angles around the viewport center. Each
// anchor's distance from the center is the base radius (0.35·size),
// perturbed by up to ±50% by the noise value sampled on a circle of
// radius 1.5 in noise space. With p.Octaves > 1 the field is layered onto
// itself at doubling frequencies, which roughens the outline. Handles are
// then derived according to p.Mode.
func GenerateWith(p Params, field noise.Field) (Ring, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Octaves > 1 {
		field = noise.Octaves{Base: field, Count: p.Octaves, Persistence: persistence}
	}
	n := p.Complexity
	center := blobgen.P(p.Size/2, p.Size/2)
	base := p.Size * baseRadiusFactor
	step := 360.0 / float64(n)
	ids := mintIDs(n)
	r := make(Ring, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * step * blobgen.Deg2Rad
		cos, sin := math.Cos(angle), math.Sin(angle)
		perturbation := field.Sample(cos*noiseScale, sin*noiseScale)
		radius := base + perturbation*radiusVariation*base
		pos := center + blobgen.P(radius*cos, radius*sin)
		r[i] = AnchorPoint{ID: ids[i], Position: pos}
	}
	var err error
	switch p.Mode {
	case ModeHobby:
		err = hobbyHandles(r, p.Smoothness)
	default:
		tangentHandles(r, p.Smoothness)
	}
	if err != nil {
		return nil, err
	}
	tracer().Debugf("generated ring (%s, s=%.2f):\n%s", p.Mode, p.Smoothness, r)
	return r, nil
}

// HandleFactor is the handle length relative to the distance between an
// anchor and its predecessor.
func HandleFactor(smoothness float64) float64 {
	return handleBase + handleRange*smoothness
}

// tangentHandles derives every handle exactly once. The tangent at an anchor
// is parallel to the chord from its predecessor to its successor; both
// controls of a segment lie on the tangents of the segment's end points, at
// a length proportional to the segment's chord.
func tangentHandles(r Ring, smoothness float64) {
	n := r.N()
	dirs := make([]blobgen.Pair, n)
	for i := range r {
		dirs[i] = (r[r.Succ(i)].Position - r[r.Pred(i)].Position).Unit()
	}
	f := HandleFactor(smoothness)
	for i := range r {
		prev := r.Pred(i)
		length := blobgen.Dist(r[prev].Position, r[i].Position) * f
		r[i].ControlOut = r[prev].Position + dirs[prev].Scaled(length)
		r[i].ControlIn = r[i].Position - dirs[i].Scaled(length)
	}
}

// hobbyHandles maps smoothness 0 … 1 to tension 2 … 1: smoother blobs get
// MetaFont's default tension, rougher ones shorter handles.
func hobbyHandles(r Ring, smoothness float64) error {
	controls, err := hobby.FindControls(r.Positions(), 2-smoothness)
	if err != nil {
		return err
	}
	for i := range r {
		r[i].ControlIn = controls.Pre(i)
		r[i].ControlOut = controls.Post(r.Pred(i))
	}
	return nil
}

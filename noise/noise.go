/*
Package noise provides the scalar noise fields the shape generator samples
anchor radii from.

A Field is a deterministic, continuous function over the plane with values
in [-1,1]. Fields are cheap to create; the generator asks for a fresh one on
every call, so two generations with identical parameters differ unless an
explicit seed is given.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package noise

import (
	"math"
	"math/rand/v2"

	"github.com/npillmayer/schuko/tracing"
	"github.com/ojrac/opensimplex-go"
)

// tracer writes to trace with key 'noise'
func tracer() tracing.Trace {
	return tracing.Select("noise")
}

// Field is a 2D pseudo-random scalar field.
type Field interface {
	// Sample returns the field value at (x,y), within [-1,1].
	Sample(x, y float64) float64
}

// Simplex is a Field backed by OpenSimplex noise.
type Simplex struct {
	seed  int64
	noise opensimplex.Noise
}

var _ Field = (*Simplex)(nil)

// New creates a simplex field for a given seed. Equal seeds yield equal fields.
func New(seed int64) *Simplex {
	tracer().Debugf("new simplex field, seed = %d", seed)
	return &Simplex{
		seed:  seed,
		noise: opensimplex.New(seed),
	}
}

// NewRandom creates a simplex field from a freshly drawn seed.
func NewRandom() *Simplex {
	return New(rand.Int64())
}

// Seed returns the seed the field was created from.
func (s *Simplex) Seed() int64 {
	return s.seed
}

// Sample implements Field.
func (s *Simplex) Sample(x, y float64) float64 {
	return clamp(s.noise.Eval2(x, y))
}

// Octaves layers a field onto itself at doubling frequencies (fractal
// Brownian motion). Persistence scales the amplitude of each successive
// octave. Results are normalized back into [-1,1].
type Octaves struct {
	Base        Field
	Count       int
	Persistence float64
}

var _ Field = Octaves{}

// Sample implements Field.
func (o Octaves) Sample(x, y float64) float64 {
	if o.Count <= 1 {
		return o.Base.Sample(x, y)
	}
	var total, maxValue float64
	frequency, amplitude := 1.0, 1.0
	for i := 0; i < o.Count; i++ {
		total += o.Base.Sample(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= o.Persistence
		frequency *= 2
	}
	if maxValue == 0 {
		return 0
	}
	return clamp(total / maxValue)
}

// Constant is a flat field, mostly useful for tests: every sample is V.
type Constant float64

// Sample implements Field.
func (c Constant) Sample(x, y float64) float64 {
	return clamp(float64(c))
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

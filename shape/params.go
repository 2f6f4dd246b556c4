package shape

import (
	"fmt"
	"math"
)

// Domain of the generation parameters.
const (
	MinComplexity = 3
	MaxComplexity = 20
	MaxOctaves    = 8
	DefaultSize   = 100.0
)

// HandleMode selects how control handles are derived from anchor positions.
type HandleMode int

const (
	// ModeTangent places handles along the chord through both neighbours.
	ModeTangent HandleMode = iota
	// ModeHobby uses Hobby's spline algorithm on the whole ring.
	ModeHobby
)

func (m HandleMode) String() string {
	switch m {
	case ModeTangent:
		return "tangent"
	case ModeHobby:
		return "hobby"
	}
	return fmt.Sprintf("HandleMode(%d)", int(m))
}

// Params configures a generation run.
type Params struct {
	Complexity int        // anchor count, 3 … 20
	Smoothness float64    // handle length factor, 0 … 1
	Size       float64    // edge length of the square viewport
	Mode       HandleMode // handle derivation
	Octaves    int        // noise octaves, 0 and 1 both mean a single one
	Seed       *int64     // if set, generation is reproducible
}

// DefaultParams returns the parameters of a fresh session.
func DefaultParams() Params {
	return Params{
		Complexity: 8,
		Smoothness: 0.5,
		Size:       DefaultSize,
		Mode:       ModeTangent,
	}
}

// WithSeed returns a copy of p with a fixed noise seed.
func (p Params) WithSeed(seed int64) Params {
	p.Seed = &seed
	return p
}

// Clamp returns p with Complexity, Smoothness and Octaves forced into their
// domains. NaN smoothness becomes 0. Size is left alone.
func (p Params) Clamp() Params {
	p.Complexity = ClampComplexity(p.Complexity)
	p.Smoothness = ClampSmoothness(p.Smoothness)
	p.Octaves = ClampOctaves(p.Octaves)
	return p
}

// ClampOctaves forces n into [1, MaxOctaves].
func ClampOctaves(n int) int {
	if n < 1 {
		return 1
	} else if n > MaxOctaves {
		return MaxOctaves
	}
	return n
}

// ClampComplexity forces n into [MinComplexity, MaxComplexity].
func ClampComplexity(n int) int {
	if n < MinComplexity {
		return MinComplexity
	} else if n > MaxComplexity {
		return MaxComplexity
	}
	return n
}

// ClampSmoothness forces s into [0, 1].
func ClampSmoothness(s float64) float64 {
	if math.IsNaN(s) {
		return 0
	}
	return math.Max(0, math.Min(1, s))
}

// Validate rejects parameters the generator cannot work with.
func (p Params) Validate() error {
	if p.Complexity < MinComplexity {
		return fmt.Errorf("%w: complexity %d", ErrTooFewAnchors, p.Complexity)
	}
	if p.Complexity > MaxComplexity {
		return fmt.Errorf("%w: complexity %d exceeds %d", ErrInvalidParameter, p.Complexity, MaxComplexity)
	}
	if math.IsNaN(p.Smoothness) || p.Smoothness < 0 || p.Smoothness > 1 {
		return fmt.Errorf("%w: smoothness %g", ErrInvalidParameter, p.Smoothness)
	}
	if !(p.Size > 0) || math.IsInf(p.Size, 0) {
		return fmt.Errorf("%w: size %g", ErrInvalidParameter, p.Size)
	}
	if p.Octaves < 0 || p.Octaves > MaxOctaves {
		return fmt.Errorf("%w: %d octaves", ErrInvalidParameter, p.Octaves)
	}
	if p.Mode != ModeTangent && p.Mode != ModeHobby {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, p.Mode)
	}
	return nil
}

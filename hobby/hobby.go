package hobby

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/blobgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hobby'
func tracer() tracing.Trace {
	return tracing.Select("hobby")
}

const _epsilon = 0.0000001

var (
	// ErrTooFewKnots indicates a ring with less than 3 knots.
	ErrTooFewKnots = errors.New("ring has too few knots")
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("ring has invalid knot coordinate")
	// ErrDegenerateSegment indicates two consecutive knots collapse to one point.
	ErrDegenerateSegment = errors.New("ring has degenerate segment")
)

// Controls collects calculated spline control points, indexed by knot.
type Controls struct {
	prec  []blobgen.Pair // control point z.i-
	postc []blobgen.Pair // control point z.i+
}

// Pre returns the control point z.i- (the one approaching knot i).
func (ctrls *Controls) Pre(i int) blobgen.Pair {
	if i < 0 || i >= len(ctrls.prec) {
		return blobgen.Pair(cmplx.NaN())
	}
	return ctrls.prec[i]
}

// Post returns the control point z.i+ (the one leaving knot i).
func (ctrls *Controls) Post(i int) blobgen.Pair {
	if i < 0 || i >= len(ctrls.postc) {
		return blobgen.Pair(cmplx.NaN())
	}
	return ctrls.postc[i]
}

// ring is a cyclic view onto a slice of knots.
type ring struct {
	z       []blobgen.Pair
	tension float64
}

func (r ring) N() int {
	return len(r.z)
}

// Z returns the knot at position (i mod N).
func (r ring) Z(i int) blobgen.Pair {
	n := r.N()
	return r.z[((i%n)+n)%n]
}

func (r ring) delta(i int) blobgen.Pair {
	return r.Z(i+1) - r.Z(i)
}

func (r ring) d(i int) float64 {
	return r.delta(i).Length()
}

// Turning angle at z.i.
func (r ring) psi(i int) float64 {
	return reduceAngle(cmplx.Phase(r.delta(i).C()) - cmplx.Phase(r.delta(i-1).C()))
}

// Validate checks if a ring of knots is solvable by Hobby interpolation.
func Validate(knots []blobgen.Pair) error {
	n := len(knots)
	if n < 3 {
		return fmt.Errorf("%w: cycle needs at least 3 knots, got %d", ErrTooFewKnots, n)
	}
	for i, z := range knots {
		if !z.IsValid() {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if blobgen.Dist(knots[i], knots[j]) <= _epsilon {
			return fmt.Errorf("%w between knots %d and %d", ErrDegenerateSegment, i, j)
		}
	}
	return nil
}

// FindControls finds Hobby-spline control points for a closed ring of knots.
// Tension is applied uniformly to every join and is clipped to 3/4 … 4;
// 1 is MetaFont's default, larger values pull the controls towards the knots.
func FindControls(knots []blobgen.Pair, tension float64) (*Controls, error) {
	if err := Validate(knots); err != nil {
		return nil, err
	}
	r := ring{z: knots, tension: clipTension(tension)}
	n := r.N()
	u := make([]float64, n+2)
	v := make([]float64, n+2)
	w := make([]float64, n+2)
	theta := make([]float64, n+2)
	u[0], v[0], w[0] = 0, 0, 1
	buildEqs(r, u, v, w)
	solveCycle(r, theta, u, v, w)
	controls := &Controls{
		prec:  make([]blobgen.Pair, n),
		postc: make([]blobgen.Pair, n),
	}
	setControls(r, theta, controls)
	tracer().Debugf("hobby ring = %s", AsString(knots, controls))
	return controls, nil
}

// MustFindControls is like FindControls, but panics on validation errors.
func MustFindControls(knots []blobgen.Pair, tension float64) *Controls {
	c, err := FindControls(knots, tension)
	if err != nil {
		panic(err)
	}
	return c
}

func buildEqs(r ring, u, v, w []float64) {
	n := r.N()
	a := recip(r.tension)
	b := a
	for i := 1; i <= n; i++ {
		A := a / (square(b) * r.d(i-1))
		B := (3 - a) / (square(b) * r.d(i-1))
		C := (3 - b) / (square(a) * r.d(i))
		D := b / (square(a) * r.d(i))
		t := B - u[i-1]*A + C
		u[i] = D / t
		v[i] = (-B*r.psi(i) - D*r.psi(i+1) - A*v[i-1]) / t
		w[i] = -A * w[i-1] / t
		tracer().Debugf("u.%d = %.4g, v.%d = %.4g, w.%d = %.4g", i, u[i], i, v[i], i, w[i])
	}
}

func solveCycle(r ring, theta, u, v, w []float64) {
	n := r.N()
	var a, b float64 = 0, 1
	for i := n; i > 0; i-- {
		a = v[i] - a*u[i]
		b = w[i] - b*u[i]
	}
	t0 := (v[n] - a*u[n]) / (1 - (w[n] - b*u[n]))
	v[0] = t0
	for i := 1; i <= n; i++ {
		v[i] += w[i] * t0
	}
	theta[0], theta[n] = t0, t0
	for i := n - 1; i > 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

func setControls(r ring, theta []float64, controls *Controls) {
	n := r.N()
	a := recip(r.tension)
	for i := 0; i < n; i++ {
		phi := -r.psi(i+1) - theta[i+1]
		p2, p3 := controlPoints(phi, theta[i], a, a, r.delta(i))
		controls.postc[i] = r.Z(i) + p2
		controls.prec[(i+1)%n] = r.Z(i+1) - p3
	}
}

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	constA := 1.41421356     // sqrt(2) -- empiric constants, as explained by J.Hobby
	constB := 0.0625         // 1/16
	constC := 0.38196601125  // (3 - sqrt(5)) / 2
	constCC := 0.61803398875 // 1 - c
	st, ct := math.Sin(theta), math.Cos(theta)
	sf, cf := math.Sin(phi), math.Cos(phi)
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

// Calculate control point offsets between z.i and z.i+1.
func controlPoints(phi, theta, a, b float64, dvec blobgen.Pair) (blobgen.Pair, blobgen.Pair) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	uv1 := dvec * blobgen.Polar(1, theta)
	uv2 := dvec * blobgen.Polar(1, -phi)
	p2 := blobgen.P(a/3*rho, 0) * uv1
	p3 := blobgen.P(b/3*sigma, 0) * uv2
	return p2, p3
}

func clipTension(t float64) float64 {
	t = math.Abs(t)
	if t < 0.75 {
		return 0.75
	} else if t > 4.0 {
		return 4.0
	}
	return t
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

// Return 1/a for a.
func recip(a float64) float64 {
	if math.IsNaN(a) || a == 0 {
		return 1.0
	}
	return 1.0 / a
}

func square(a float64) float64 {
	return a * a
}

func ptstring(p blobgen.Pair, iscontrol bool) string {
	if cmplx.IsNaN(p.C()) {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p.X()), round(p.Y()))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p.X()), round(p.Y()))
}

func round(x float64) float64 {
	return math.Round(x*10000.0) / 10000.0
}

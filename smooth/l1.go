/*
DESCRIPTION
  l1.go implements the VSOptimalL1 camera-path smoother: a linear program
  minimizing a weighted L1 norm of the first, second and third discrete
  differences of the translational camera path, subject to inclusion
  constraints that keep the (possibly zoomed) crop rectangle inside the
  source frame. Grounded on
  original_source/src/l1campathoptimization.c's variable/constraint
  layout (getRowNum/getColNum, the P/E1/E2/E3/CORNER blocks), adapted to
  translation-only path variables and solved with gonum's Simplex rather
  than GLPK (SPEC_FULL.md §11). Rotation and zoom, which the original
  solves jointly in the same LP, are smoothed by the Gaussian filter
  instead — a deliberate scope reduction documented in DESIGN.md; the
  dominant visual stabilization benefit of the L1 path lives in the
  translational component.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smooth

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/lp"
	"gonum.org/v1/gonum/mat"

	"github.com/ausocean/vidstab/transform"
)

// ErrNoSolver is logged (not fatal, per spec.md §7 SolverUnavailable) when
// the L1 LP is infeasible or numerically unsolvable; the caller falls
// back to the Gaussian smoother.
var ErrNoSolver = errors.New("smooth: L1 solver unavailable, falling back to gaussian")

// l1Weights are the default per-derivative-order weights w1,w2,w3.
type l1Weights struct{ w1, w2, w3 float64 }

var defaultL1Weights = l1Weights{w1: 10, w2: 1, w3: 100}

// rowBuilder accumulates sparse (row, col, val) triplets for the equality
// system A x = b before conversion to a dense mat.Dense, and the matching
// b vector.
type rowBuilder struct {
	rows, cols int
	entries    []entry
	b          []float64
}

type entry struct {
	r, c int
	v    float64
}

func newRowBuilder(cols int) *rowBuilder { return &rowBuilder{cols: cols} }

// addRow appends a new equality row sum(coefs) = rhs and returns its index.
func (rb *rowBuilder) addRow(rhs float64, coefs map[int]float64) int {
	r := rb.rows
	rb.rows++
	rb.b = append(rb.b, rhs)
	for c, v := range coefs {
		if v == 0 {
			continue
		}
		rb.entries = append(rb.entries, entry{r, c, v})
	}
	return r
}

func (rb *rowBuilder) matrix() *mat.Dense {
	m := mat.NewDense(rb.rows, rb.cols, nil)
	for _, e := range rb.entries {
		m.Set(e.r, e.c, e.v)
	}
	return m
}

// l1TranslationalPath solves the L1-optimal translational path for an
// absolute x or y coordinate sequence p (length n), keeping each smoothed
// value within bound of p[t], and returns the smoothed path. offset must
// be large enough that p[t]+offset-bound is always nonnegative
// (gonum/lp.Simplex requires x>=0).
func l1TranslationalPath(p []float64, bound float64, weights l1Weights) ([]float64, error) {
	n := len(p)
	if n < 4 {
		// Too short for third differences; nothing to optimize.
		out := make([]float64, n)
		copy(out, p)
		return out, nil
	}

	const offset = 1e6

	// Column layout: X(t) for t=0..n-1, then E1(t) for t=0..n-2,
	// E2(t) for t=0..n-3, E3(t) for t=0..n-4, then one nonnegative
	// slack column per inequality row (added lazily by addIneq).
	colX := func(t int) int { return t }
	baseE1 := n
	colE1 := func(t int) int { return baseE1 + t }
	baseE2 := baseE1 + (n - 1)
	colE2 := func(t int) int { return baseE2 + t }
	baseE3 := baseE2 + (n - 2)
	colE3 := func(t int) int { return baseE3 + t }
	baseSlack := baseE3 + (n - 3)
	nextSlack := baseSlack

	cols := baseSlack // grown as slacks are allocated below
	rb := newRowBuilder(0)
	allocSlack := func() int {
		s := nextSlack
		nextSlack++
		return s
	}

	// addIneq encodes `expr <= 0` (expr a linear combination over X/E
	// columns, as map col->coef, with constant rhsConst folded in) as an
	// equality row `expr + slack = 0` with a fresh nonnegative slack.
	addIneq := func(coefs map[int]float64, rhsConst float64) {
		s := allocSlack()
		coefs[s] = 1
		rb.addRow(-rhsConst, coefs)
	}

	// D1, D2, D3 slack constraints: |D^k p| <= e^k, i.e. D^k p - e^k <= 0
	// and -D^k p - e^k <= 0, for each valid t.
	for t := 0; t < n-1; t++ {
		addIneq(map[int]float64{colX(t + 1): 1, colX(t): -1, colE1(t): -1}, 0)
		addIneq(map[int]float64{colX(t + 1): -1, colX(t): 1, colE1(t): -1}, 0)
	}
	for t := 0; t < n-2; t++ {
		addIneq(map[int]float64{colX(t + 2): 1, colX(t + 1): -2, colX(t): 1, colE2(t): -1}, 0)
		addIneq(map[int]float64{colX(t + 2): -1, colX(t + 1): 2, colX(t): -1, colE2(t): -1}, 0)
	}
	for t := 0; t < n-3; t++ {
		addIneq(map[int]float64{colX(t + 3): 1, colX(t + 2): -3, colX(t + 1): 3, colX(t): -1, colE3(t): -1}, 0)
		addIneq(map[int]float64{colX(t + 3): -1, colX(t + 2): 3, colX(t + 1): -3, colX(t): 1, colE3(t): -1}, 0)
	}

	// Inclusion constraints on the compensation s(t)-p(t), expressed on
	// the *shifted* variable X(t)=s(t)+offset:
	//   s(t)-p(t) <= bound  =>  X(t) - offset - p(t) - bound <= 0
	//   p(t)-s(t) <= bound  =>  -X(t) + offset + p(t) - bound <= 0
	for t := 0; t < n; t++ {
		addIneq(map[int]float64{colX(t): 1}, -offset-p[t]-bound)
		addIneq(map[int]float64{colX(t): -1}, offset+p[t]-bound)
	}

	cols = nextSlack
	rb.cols = cols

	c := make([]float64, cols)
	for t := 0; t < n-1; t++ {
		c[colE1(t)] = weights.w1
	}
	for t := 0; t < n-2; t++ {
		c[colE2(t)] = weights.w2
	}
	for t := 0; t < n-3; t++ {
		c[colE3(t)] = weights.w3
	}

	A := rb.matrix()
	// addIneq already folds the constant offset into each row's rhs; the
	// D1/D2/D3 rows use raw differences, which are invariant to a
	// constant per-column offset, so they need no further correction.
	b := rb.b

	_, x, err := lp.Simplex(nil, c, A, b, 0)
	if err != nil {
		return nil, errors.Wrap(ErrNoSolver, err.Error())
	}

	out := make([]float64, n)
	for t := 0; t < n; t++ {
		out[t] = x[colX(t)] - offset
	}
	return out, nil
}

// l1 applies the VSOptimalL1 smoother to an absolute transform path ts,
// returning the compensating transforms (input minus smoothed path, the
// same semantics as gaussian). Falls back to the Gaussian smoother (logged, not fatal) if the LP is
// infeasible.
func l1(ts []transform.Transform, width, height int, maxZoom float64, smoothing int, sceneCutAware bool) ([]transform.Transform, error) {
	n := len(ts)
	if n == 0 {
		return nil, errors.New("smooth: empty transform sequence")
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, t := range ts {
		xs[i] = t.X
		ys[i] = t.Y
	}

	xBound := float64(width) / 2 * (1 - 1/maxZoom)
	yBound := float64(height) / 2 * (1 - 1/maxZoom)

	smoothX, errX := l1TranslationalPath(xs, xBound, defaultL1Weights)
	smoothY, errY := l1TranslationalPath(ys, yBound, defaultL1Weights)
	if errX != nil || errY != nil {
		return gaussian(ts, smoothing, sceneCutAware), ErrNoSolver
	}

	out := make([]transform.Transform, n)
	for i := range ts {
		out[i] = transform.Transform{X: ts[i].X - smoothX[i], Y: ts[i].Y - smoothY[i], Alpha: ts[i].Alpha, Zoom: ts[i].Zoom, Extra: ts[i].Extra}
	}
	// Rotation and zoom are smoothed by the Gaussian filter (see file
	// doc comment); splice in its compensating values.
	g := gaussian(ts, smoothing, sceneCutAware)
	for i := range out {
		out[i].Alpha = g[i].Alpha
		out[i].Zoom = g[i].Zoom
	}
	return out, nil
}

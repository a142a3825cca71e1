/*
DESCRIPTION
  sequence.go implements the ordered Transform sequence consumed by the
  transformer pass, and an incremental sliding-average smoothing state
  modelled on transform.c's single-step low-pass helper. The Avg path
  smoother in package smooth keeps its own state and does not use it.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package transform

import "sort"

// Transformations is an ordered, per-frame sequence of Transforms with a
// running cursor and a one-shot "warned" flag, matching
// original_source/src/transform.c's VSTransformations and its
// vsGetNextTransform underrun policy.
type Transformations struct {
	list       []Transform
	current    int
	warnedEnd  bool
}

// NewTransformations wraps ts as a Transformations sequence positioned
// before the first element.
func NewTransformations(ts []Transform) *Transformations {
	return &Transformations{list: ts, current: -1}
}

// Len returns the number of transforms in the sequence.
func (ts *Transformations) Len() int { return len(ts.list) }

// At returns the i'th transform.
func (ts *Transformations) At(i int) Transform { return ts.list[i] }

// Next advances the cursor and returns the next transform. Once the
// sequence is exhausted it repeats the last available transform and
// returns underrun=true; the caller should log a warning only the first
// time underrun fires for this sequence (WarnedEnd tracks that).
func (ts *Transformations) Next() (t Transform, underrun bool) {
	if len(ts.list) == 0 {
		return Identity, true
	}
	ts.current++
	if ts.current >= len(ts.list) {
		ts.current = len(ts.list) - 1
		return ts.list[ts.current], true
	}
	return ts.list[ts.current], false
}

// WarnedEnd reports whether the underrun warning has already fired, and
// marks it as fired. Callers use `if !ts.WarnedEnd() { log.Warn(...) }`.
func (ts *Transformations) WarnedEnd() bool {
	fired := ts.warnedEnd
	ts.warnedEnd = true
	return fired
}

// SlidingAvgTrans is an incremental smoothing state modelled on
// vsLowPassTransforms in original_source/src/transform.c. Avg is a running
// average of the input with weight s=1/(smoothing+1); Accum is a running
// average, with weight tau=1/(3*(smoothing+1)), of the high-pass term
// input-minus-Avg, not a relative->absolute integrator. Zoom is neither
// read nor written.
type SlidingAvgTrans struct {
	Avg         Transform
	Accum       Transform
	Zoom        float64
	Initialized bool
}

// Update feeds the next transform t through the filter with the given
// smoothing half-window and returns the high-pass term t-Avg minus Accum,
// carrying t.Extra. The result is per-frame: it is not summed with the
// outputs of earlier calls.
func (s *SlidingAvgTrans) Update(t Transform, smoothing int) Transform {
	n := float64(smoothing + 1)
	sAlpha := 1.0 / n
	tau := 1.0 / (3.0 * n)

	if !s.Initialized {
		s.Avg = t
		s.Accum = Identity
		s.Initialized = true
	} else {
		s.Avg = Add(Scale(s.Avg, 1-sAlpha), Scale(t, sAlpha))
	}

	hp := Sub(t, s.Avg)
	s.Accum = Add(Scale(s.Accum, 1-tau), Scale(hp, tau))
	out := Sub(hp, s.Accum)
	out.Extra = t.Extra
	return out
}

// CleanMean returns the component-wise mean of ts after discarding, for
// each axis independently, the top and bottom `trim` fraction of samples
// (e.g. trim=0.2 drops the lowest and highest fifth), mirroring
// original_source/src/transformtype_operations.h's cleanmean_xy_transform.
func CleanMean(ts []Transform, trim float64) Transform {
	if len(ts) == 0 {
		return Identity
	}
	xs := make([]float64, len(ts))
	ys := make([]float64, len(ts))
	for i, t := range ts {
		xs[i], ys[i] = t.X, t.Y
	}
	return Transform{X: trimmedMean(xs, trim), Y: trimmedMean(ys, trim)}
}

// trimmedMean sorts a copy of vs and averages the inner (1-2*trim)
// fraction.
func trimmedMean(vs []float64, trim float64) float64 {
	cp := append([]float64(nil), vs...)
	sort.Float64s(cp)
	n := len(cp)
	k := int(float64(n) * trim)
	lo, hi := k, n-k
	if lo >= hi {
		lo, hi = 0, n
	}
	sum := 0.0
	for _, v := range cp[lo:hi] {
		sum += v
	}
	return sum / float64(hi-lo)
}

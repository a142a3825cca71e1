/*
DESCRIPTION
  simple.go implements the non-default "simple path" fit: a trimmed-mean
  translation estimate followed by a trimmed-mean rotation fit about the
  motion centroid, with off-center rotation compensation. Grounded on
  original_source/src/localmotion2transform.c's
  vsSimpleMotionsToTransform.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fit

import (
	"math"
	"sort"

	"github.com/ausocean/vidstab/detect"
	"github.com/ausocean/vidstab/transform"
)

// trimFraction is the inner fraction of samples kept by the trimmed mean
// (60% => drop the outer 20% on each side).
const trimFraction = 0.6

// Simple computes the simple-path fit for one frame's local motions:
// trimmed-mean translation, then (if at least 6 motions are available) a
// trimmed-mean rotation about the motion centroid, rejected if the angle
// range exceeds 1.0 rad.
func Simple(lms detect.LocalMotions) transform.Transform {
	if len(lms) == 0 {
		return transform.Identity
	}

	xs := make([]float64, len(lms))
	ys := make([]float64, len(lms))
	for i, lm := range lms {
		xs[i] = lm.V.X
		ys[i] = lm.V.Y
	}
	tx := trimmedMeanTrim(xs, trimFraction)
	ty := trimmedMeanTrim(ys, trimFraction)

	if len(lms) < 6 {
		return transform.New(tx, ty, 0, 0)
	}

	var cx, cy float64
	for _, lm := range lms {
		cx += float64(lm.F.X)
		cy += float64(lm.F.Y)
	}
	cx /= float64(len(lms))
	cy /= float64(len(lms))

	angles := make([]float64, 0, len(lms))
	for _, lm := range lms {
		px := float64(lm.F.X) - cx
		py := float64(lm.F.Y) - cy
		if math.Hypot(px, py) < 1e-6 {
			continue
		}
		qx := px + lm.V.X
		qy := py + lm.V.Y
		a1 := math.Atan2(py, px)
		a2 := math.Atan2(qy, qx)
		angles = append(angles, normalizeAngle(a2-a1))
	}
	if len(angles) == 0 {
		return transform.New(tx, ty, 0, 0)
	}

	sorted := append([]float64(nil), angles...)
	sort.Float64s(sorted)
	if sorted[len(sorted)-1]-sorted[0] > 1.0 {
		// Rotation fit unreliable: fall back to pure translation.
		return transform.New(tx, ty, 0, 0)
	}
	alpha := trimmedMeanTrim(angles, trimFraction)

	// Off-center rotation compensation: rotating about the motion
	// centroid rather than the image center introduces a translation
	// equal to the centroid's displacement under the fitted rotation.
	rx := cx*math.Cos(alpha) - cy*math.Sin(alpha) - cx
	ry := cx*math.Sin(alpha) + cy*math.Cos(alpha) - cy

	return transform.New(tx-rx, ty-ry, alpha, 0)
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// trimmedMeanTrim averages the inner `frac` fraction of a sorted copy of
// vs.
func trimmedMeanTrim(vs []float64, frac float64) float64 {
	cp := append([]float64(nil), vs...)
	sort.Float64s(cp)
	n := len(cp)
	drop := int(float64(n) * (1 - frac) / 2)
	lo, hi := drop, n-drop
	if lo >= hi {
		lo, hi = 0, n
	}
	var sum float64
	for _, v := range cp[lo:hi] {
		sum += v
	}
	return sum / float64(hi-lo)
}

/*
DESCRIPTION
  zoom.go computes the optimal static/per-frame zoom that keeps a smoothed
  camera path's crop rectangle inside the source frame, per spec.md §4.3.
  Mode 1 trims outliers and takes a single coarse static zoom; mode 2
  computes a per-frame requirement and forward/backward-propagates it with
  decay. Grounded on original_source/src/campathoptimization.c's zoom
  helpers, adapted to operate on transform.Transform slices.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smooth

import (
	"math"
	"sort"

	"github.com/ausocean/vidstab/transform"
)

// ZoomMode selects the optimal-zoom algorithm.
type ZoomMode int

const (
	ZoomNone     ZoomMode = 0
	ZoomCoarse   ZoomMode = 1
	ZoomAdaptive ZoomMode = 2
)

// clampZoom bounds a percentage zoom value to the inclusive range the
// original library allows for the coarse mode.
func clampZoom(z, lo, hi float64) float64 {
	if z < lo {
		return lo
	}
	if z > hi {
		return hi
	}
	return z
}

// coarseZoom trims the top/bottom 1% of x and y outliers from ts, then
// returns the static zoom percentage required to keep the widest
// remaining excursion inside the frame, clamped to [-60,60].
func coarseZoom(ts []transform.Transform, width, height int) float64 {
	n := len(ts)
	if n == 0 {
		return 0
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, t := range ts {
		xs[i] = t.X
		ys[i] = t.Y
	}
	sort.Float64s(xs)
	sort.Float64s(ys)

	trim := n / 100 // 1%
	lo, hi := trim, n-trim
	if lo >= hi {
		lo, hi = 0, n
	}
	xmin, xmax := xs[lo], xs[hi-1]
	ymin, ymax := ys[lo], ys[hi-1]

	xExcursion := math.Max(math.Abs(xmin), math.Abs(xmax))
	yExcursion := math.Max(math.Abs(ymin), math.Abs(ymax))

	z := 100 * math.Max(2*xExcursion/float64(width), 2*yExcursion/float64(height))
	return clampZoom(z, -60, 60)
}

// perFrameZoomRequirement returns z_t = 100*(2*max(|x|/w,|y|/h) + |sin
// alpha|) for a single transform.
func perFrameZoomRequirement(t transform.Transform, width, height int) float64 {
	return 100 * (2*math.Max(math.Abs(t.X)/float64(width), math.Abs(t.Y)/float64(height)) + math.Abs(math.Sin(t.Alpha)))
}

// adaptiveZoom computes the mode-2 per-frame zoom schedule: a baseline of
// mean(z)+staticZoom, raised per frame to the max of the mean and a
// forward/backward propagated value that decays by zoomSpeed per step.
func adaptiveZoom(ts []transform.Transform, width, height int, zoomSpeed, staticZoom float64) []float64 {
	n := len(ts)
	z := make([]float64, n)
	if n == 0 {
		return z
	}

	var mean float64
	for i, t := range ts {
		z[i] = perFrameZoomRequirement(t, width, height)
		mean += z[i]
	}
	mean /= float64(n)
	baseline := mean + staticZoom

	fwd := make([]float64, n)
	fwd[0] = z[0]
	for i := 1; i < n; i++ {
		fwd[i] = math.Max(z[i], fwd[i-1]-zoomSpeed)
	}
	bwd := make([]float64, n)
	bwd[n-1] = z[n-1]
	for i := n - 2; i >= 0; i-- {
		bwd[i] = math.Max(z[i], bwd[i+1]-zoomSpeed)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		propagated := math.Max(fwd[i], bwd[i])
		out[i] = math.Max(baseline, propagated)
	}
	return out
}

// applyZoom adds a static or per-frame zoom schedule to ts in place.
func applyZoom(ts []transform.Transform, mode ZoomMode, width, height int, zoomSpeed, staticZoom float64) {
	switch mode {
	case ZoomNone:
		for i := range ts {
			ts[i].Zoom += staticZoom
		}
	case ZoomCoarse:
		z := coarseZoom(ts, width, height) + staticZoom
		for i := range ts {
			ts[i].Zoom += z
		}
	case ZoomAdaptive:
		z := adaptiveZoom(ts, width, height, zoomSpeed, staticZoom)
		for i := range ts {
			ts[i].Zoom += z[i]
		}
	}
}

/*
DESCRIPTION
  avg.go implements the VSAvg sliding-average camera-path smoother: an
  incrementally-updated window sum, a high-pass subtraction, and a second
  sliding average that kills accumulating DC offset. Grounded on
  original_source/src/campathoptimization.c's cameraPathAvg.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smooth

import "github.com/ausocean/vidstab/transform"

// avg applies the VSAvg smoother in place on a copy of ts and returns the
// high-passed, offset-corrected result still in relative form; the
// caller is responsible for the relative->absolute integration step,
// which for VSAvg happens after this smoothing pass (unlike Gaussian).
func avg(ts []transform.Transform, smoothing int) []transform.Transform {
	n := len(ts)
	out := make([]transform.Transform, n)
	if smoothing <= 0 {
		copy(out, ts)
		return out
	}

	s := smoothing*2 + 1
	tau := 1.0 / (2.0 * float64(s))

	sSum := transform.Identity
	for i := 0; i < smoothing; i++ {
		if i < n {
			sSum = transform.Add(sSum, ts[i])
		}
	}
	sSum = transform.Scale(sSum, 2)

	avg2 := transform.Identity
	for i := 0; i < n; i++ {
		var old, neu transform.Transform
		if i-smoothing-1 >= 0 {
			old = ts[i-smoothing-1]
		}
		if i+smoothing < n {
			neu = ts[i+smoothing]
		}
		sSum = transform.Sub(sSum, old)
		sSum = transform.Add(sSum, neu)

		a := transform.Scale(sSum, 1.0/float64(s))

		hp := transform.Sub(ts[i], a)
		avg2 = transform.Add(transform.Scale(avg2, 1-tau), transform.Scale(hp, tau))
		out[i] = transform.Sub(hp, avg2)
		out[i].Extra = ts[i].Extra
	}
	return out
}

// integrate converts a relative transform sequence to an absolute one by
// running composition: ts[i] = ts[i] + ts[i-1].
func integrate(ts []transform.Transform) {
	for i := 1; i < len(ts); i++ {
		ts[i] = transform.Add(ts[i], ts[i-1])
	}
}

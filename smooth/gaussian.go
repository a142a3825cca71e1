/*
DESCRIPTION
  gaussian.go implements the VSGaussian camera-path smoother: integrate
  relative transforms to absolute, convolve against a symmetric Gaussian
  kernel (weights normalized because window edges truncate), and subtract
  the convolution from the absolute path. Grounded on
  original_source/src/campathoptimization.c's cameraPathGaussian.

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

	"github.com/ausocean/vidstab/transform"
)

// gaussianKernel builds the symmetric kernel of length 2*smoothing+1 with
// kernel[i] = exp(-(i-mu)^2/(mu/2)^2), mu=smoothing.
func gaussianKernel(smoothing int) []float64 {
	s := smoothing*2 + 1
	mu := float64(smoothing)
	sigma2 := (mu / 2) * (mu / 2)
	k := make([]float64, s)
	for i := 0; i <= smoothing; i++ {
		v := math.Exp(-((float64(i) - mu) * (float64(i) - mu)) / sigma2)
		k[i] = v
		k[s-i-1] = v
	}
	return k
}

// gaussian applies the VSGaussian smoother to ts, which must already be in
// absolute form (the caller integrates relative input before calling
// this). sceneCutAware enables the original's (normally disabled)
// scene-cut handling: a past sample flagged Extra==1 resets the running
// window, and a current/future flagged sample truncates it.
func gaussian(ts []transform.Transform, smoothing int, sceneCutAware bool) []transform.Transform {
	n := len(ts)
	out := make([]transform.Transform, n)
	copy(out, ts)
	if smoothing <= 0 {
		return out
	}

	s := smoothing*2 + 1
	mu := smoothing
	kernel := gaussianKernel(smoothing)

	for i := 0; i < n; i++ {
		var weightsum float64
		avg := transform.Identity
		for k := 0; k < s; k++ {
			idx := i + k - mu
			if idx < 0 || idx >= n {
				continue
			}
			if sceneCutAware && ts[idx].Extra == 1 {
				if k < mu {
					avg = transform.Identity
					weightsum = 0
					continue
				}
				if k == mu {
					weightsum = 0
				}
				break
			}
			weightsum += kernel[k]
			avg = transform.Add(avg, transform.Scale(ts[idx], kernel[k]))
		}
		if weightsum > 0 {
			avg = transform.Scale(avg, 1.0/weightsum)
			out[i] = transform.Sub(ts[i], avg)
			out[i].Extra = ts[i].Extra
		}
	}
	return out
}

/*
DESCRIPTION
  contrast.go computes a field's contrast as the mean-absolute-deviation
  from its mean luminance, normalized to [0,1], matching
  original_source/src/motiondetect.c's contrastSubImg.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// contrast computes the mean-absolute-deviation contrast of field f in
// plane data (linesize ls) at full luma resolution, normalized to [0,1].
func contrast(data []byte, ls int, f Field) float64 {
	s2 := f.Size / 2
	n := f.Size * f.Size
	samples := make([]float64, 0, n)
	for row := 0; row < f.Size; row++ {
		off := (f.Y - s2 + row) * ls
		for col := 0; col < f.Size; col++ {
			samples = append(samples, float64(data[off+f.X-s2+col]))
		}
	}
	mean := stat.Mean(samples, nil)
	var sumAbsDev float64
	for _, v := range samples {
		sumAbsDev += math.Abs(v - mean)
	}
	return sumAbsDev / float64(n) / 255.0
}

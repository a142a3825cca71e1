package smooth

import (
	"math"
	"testing"

	"github.com/mjibson/go-dsp/fft"

	"github.com/ausocean/vidstab/transform"
)

// firstDiff and secondDiff compute the discrete first and second
// differences of a Y-coordinate path.
func firstDiff(y []float64) []float64 {
	d := make([]float64, len(y)-1)
	for i := range d {
		d[i] = y[i+1] - y[i]
	}
	return d
}

func secondDiff(y []float64) []float64 {
	d1 := firstDiff(y)
	return firstDiff(d1)
}

func l1Norm(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += math.Abs(x)
	}
	return s
}

// spectralEnergy sums |FFT(v)|^2 via go-dsp, an independent cross-check of
// the L1-domain reduction asserted by spec scenario 3 (low-frequency
// energy should fall after Gaussian smoothing removes the slow sinusoidal
// component).
func spectralEnergy(v []float64) float64 {
	complexIn := make([]complex128, len(v))
	for i, x := range v {
		complexIn[i] = complex(x, 0)
	}
	out := fft.FFT(complexIn)
	var e float64
	for _, c := range out {
		e += real(c)*real(c) + imag(c)*imag(c)
	}
	return e
}

// TestGaussianReducesSinusoidalPathEnergy reproduces spec scenario 3: a
// 200-frame synthetic path y_t = 2*sin(t/10), alpha_t =
// (pi/180)*sin(0.1+t/20); the Gaussian smoother with smoothing=15 should
// reduce sum|Dy| by >=40% and sum|D^2y| by >=60%, and (as an independent
// cross-check via FFT) reduce the path's total spectral energy.
func TestGaussianReducesSinusoidalPathEnergy(t *testing.T) {
	n := 200
	abs := make([]transform.Transform, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = 2 * math.Sin(float64(i)/10)
		alpha := (math.Pi / 180) * math.Sin(0.1+float64(i)/20)
		abs[i] = transform.New(0, y[i], alpha, 0)
	}

	// gaussian returns the compensation (path minus its smoothed version).
	smoothed := gaussian(abs, 15, false)
	residual := make([]float64, n)
	for i := range residual {
		residual[i] = smoothed[i].Y
	}

	d1Before := l1Norm(firstDiff(y))
	d1After := l1Norm(firstDiff(residual))
	if d1After > 0.6*d1Before {
		t.Fatalf("expected sum|Dy| reduced by >=40%%: before=%v after=%v", d1Before, d1After)
	}

	d2Before := l1Norm(secondDiff(y))
	d2After := l1Norm(secondDiff(residual))
	if d2After > 0.4*d2Before {
		t.Fatalf("expected sum|D^2y| reduced by >=60%%: before=%v after=%v", d2Before, d2After)
	}

	eBefore := spectralEnergy(y)
	eAfter := spectralEnergy(residual)
	if eAfter >= eBefore {
		t.Fatalf("expected FFT spectral energy to fall after smoothing: before=%v after=%v", eBefore, eAfter)
	}
}

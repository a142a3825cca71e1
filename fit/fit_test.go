package fit

import (
	"math"
	"testing"

	"github.com/ausocean/vidstab/detect"
)

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func uniformShift(dx, dy float64, n int) detect.LocalMotions {
	lms := make(detect.LocalMotions, 0, n)
	for i := 0; i < n; i++ {
		x := 50 + (i%10)*60
		y := 50 + (i/10)*60
		lms = append(lms, detect.LocalMotion{
			F:        detect.Field{X: x, Y: y, Size: 17},
			V:        detect.Vec{X: dx, Y: dy},
			Contrast: 0.5,
			Match:    1.0,
		})
	}
	return lms
}

func TestOptimizeEmptyReturnsIdentity(t *testing.T) {
	got := Optimize(nil, 640, 480, Config{})
	if !got.IsIdentity() {
		t.Fatalf("expected identity for empty input, got %+v", got)
	}
}

func TestOptimizeRecoversUniformTranslation(t *testing.T) {
	lms := uniformShift(-10, 0, 20)
	got := Optimize(lms, 640, 480, Config{})
	if !almostEqual(got.X, 10, 2.0) {
		t.Fatalf("expected x≈+10 (inverse of -10 shift), got %v", got.X)
	}
	if !almostEqual(got.Y, 0, 2.0) {
		t.Fatalf("expected y≈0, got %v", got.Y)
	}
	if !almostEqual(got.Alpha, 0, 0.05) {
		t.Fatalf("expected alpha≈0, got %v", got.Alpha)
	}
}

func TestOptimizeZeroResetWithoutSmoothZoom(t *testing.T) {
	lms := uniformShift(2, 2, 20)
	got := Optimize(lms, 640, 480, Config{SmoothZoom: false})
	if got.Zoom != 0 {
		t.Fatalf("expected zoom reset to 0 when SmoothZoom is false, got %v", got.Zoom)
	}
}

func TestSimpleEmptyReturnsIdentity(t *testing.T) {
	got := Simple(nil)
	if !got.IsIdentity() {
		t.Fatalf("expected identity for empty input, got %+v", got)
	}
}

func TestSimpleFewMotionsSkipsRotation(t *testing.T) {
	lms := uniformShift(5, -5, 3)
	got := Simple(lms)
	if got.Alpha != 0 {
		t.Fatalf("expected alpha=0 with <6 motions, got %v", got.Alpha)
	}
	if !almostEqual(got.X, 5, 1e-6) || !almostEqual(got.Y, -5, 1e-6) {
		t.Fatalf("expected pure translation (5,-5), got (%v,%v)", got.X, got.Y)
	}
}

func TestDisableByThresholdMarksOutliers(t *testing.T) {
	values := []float64{1, 1, 1, 1, 1, 100}
	mask := make([]float64, len(values))
	n := disableByThreshold(values, mask, 1.5)
	if n != 1 {
		t.Fatalf("expected exactly one outlier disabled, got %d", n)
	}
	if mask[5] >= 0 {
		t.Fatal("expected the outlier to be masked negative")
	}
}

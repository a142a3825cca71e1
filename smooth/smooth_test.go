package smooth

import (
	"math"
	"testing"

	"github.com/ausocean/vidstab/transform"
)

func constSeq(n int, t transform.Transform) []transform.Transform {
	out := make([]transform.Transform, n)
	for i := range out {
		out[i] = t
	}
	return out
}

func TestAvgZeroInputStaysZero(t *testing.T) {
	ts := constSeq(50, transform.Identity)
	out := avg(ts, 15)
	for i, o := range out {
		if math.Abs(o.X) > 1e-9 || math.Abs(o.Y) > 1e-9 {
			t.Fatalf("frame %d: expected zero output for zero input, got %+v", i, o)
		}
	}
}

func TestIntegrateAccumulates(t *testing.T) {
	ts := constSeq(5, transform.New(1, 0, 0, 0))
	integrate(ts)
	for i, tr := range ts {
		want := float64(i + 1)
		if math.Abs(tr.X-want) > 1e-9 {
			t.Fatalf("frame %d: expected absolute X=%v, got %v", i, want, tr.X)
		}
	}
}

func TestGaussianSmoothsSinusoid(t *testing.T) {
	n := 200
	ts := make([]transform.Transform, n)
	for i := range ts {
		ts[i] = transform.New(0, 2*math.Sin(float64(i)/10), 0, 0)
	}

	smoothed := gaussian(ts, 15, false)

	sumD := func(vs []transform.Transform) float64 {
		var s float64
		for i := 1; i < len(vs); i++ {
			s += math.Abs(vs[i].Y - vs[i-1].Y)
		}
		return s
	}
	// gaussian returns the compensation (raw minus smoothed path), so
	// ts minus that output is the smoothed path itself; its derivative
	// sum must be smaller than the raw path's.
	before := sumD(ts)
	afterPath := make([]transform.Transform, n)
	for i := range afterPath {
		afterPath[i] = transform.Sub(ts[i], smoothed[i])
	}
	after := sumD(afterPath)
	if after >= before {
		t.Fatalf("expected smoothed path derivative sum < raw (%v), got %v", before, after)
	}
}

func TestCropTransformsClampsShiftAndAngle(t *testing.T) {
	ts := []transform.Transform{transform.New(100, -100, 2, 0)}
	cropTransforms(ts, 10, 0.5)
	if ts[0].X != 10 || ts[0].Y != -10 {
		t.Fatalf("expected shift clamped to ±10, got (%v,%v)", ts[0].X, ts[0].Y)
	}
	if ts[0].Alpha != 0.5 {
		t.Fatalf("expected alpha clamped to 0.5, got %v", ts[0].Alpha)
	}
}

func TestCropTransformsDisabledWithNegativeOne(t *testing.T) {
	ts := []transform.Transform{transform.New(1000, -1000, 5, 0)}
	cropTransforms(ts, -1, -1)
	if ts[0].X != 1000 || ts[0].Alpha != 5 {
		t.Fatalf("expected no clamping when limits are -1, got %+v", ts[0])
	}
}

func TestSmoothEmptyReturnsNil(t *testing.T) {
	if out := Smooth(nil, 640, 480, DefaultConfig()); out != nil {
		t.Fatalf("expected nil for empty input, got %v", out)
	}
}

func TestSmoothAvgDispatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CamPathAlgo = Avg
	cfg.OptZoom = ZoomNone
	ts := constSeq(40, transform.New(1, 0, 0, 0))
	out := Smooth(ts, 640, 480, cfg)
	if len(out) != 40 {
		t.Fatalf("expected 40 output frames, got %d", len(out))
	}
}

func TestCoarseZoomIsWithinBounds(t *testing.T) {
	ts := constSeq(100, transform.New(50, 30, 0, 0))
	z := coarseZoom(ts, 640, 480)
	if z < -60 || z > 60 {
		t.Fatalf("expected zoom within [-60,60], got %v", z)
	}
}

func TestAdaptiveZoomAtSpikeNotBelowFirstFrame(t *testing.T) {
	n := 20
	ts := constSeq(n, transform.Identity)
	ts[10] = transform.New(300, 0, 0, 0)
	z := adaptiveZoom(ts, 640, 480, 0.25, 0)
	if z[10] < z[0] {
		t.Fatalf("expected zoom at the spike to be at least the first frame's zoom, got z[10]=%v z[0]=%v", z[10], z[0])
	}
}

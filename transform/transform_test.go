package transform

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestIdentityFixedPointOfComposition(t *testing.T) {
	tr := New(3, -2, 0.1, 5)
	a := Compose(tr, Identity)
	b := Compose(Identity, tr)
	for _, got := range []Transform{a, b} {
		if !almostEqual(got.X, tr.X, 1e-9) || !almostEqual(got.Y, tr.Y, 1e-9) ||
			!almostEqual(got.Alpha, tr.Alpha, 1e-9) || !almostEqual(got.Zoom, tr.Zoom, 1e-9) {
			t.Fatalf("composition with identity changed transform: got %+v, want %+v", got, tr)
		}
	}
}

func TestInversionRoundTrip(t *testing.T) {
	tr := New(10, -4, 0.2, -5)
	inv := Invert(tr)
	got := Compose(tr, inv)
	if !almostEqual(got.X, 0, 1e-9) || !almostEqual(got.Y, 0, 1e-9) ||
		!almostEqual(got.Alpha, 0, 1e-9) || !almostEqual(got.Zoom, 0, 1e-9) {
		t.Fatalf("T∘T^-1 != identity: %+v", got)
	}
}

func TestDoubleInversion(t *testing.T) {
	tr := New(1, 2, 0.1, 5)
	got := Invert(Invert(tr))
	if !almostEqual(got.X, tr.X, 1e-9) || !almostEqual(got.Y, tr.Y, 1e-9) ||
		!almostEqual(got.Alpha, tr.Alpha, 1e-9) || !almostEqual(got.Zoom, tr.Zoom, 1e-9) {
		t.Fatalf("(T^-1)^-1 != T: got %+v, want %+v", got, tr)
	}
}

func TestAZLSRoundTrip(t *testing.T) {
	tr := New(1, 2, 0.1, 5)
	ls := tr.ToLS()
	if ls.C != 1 {
		t.Fatalf("expected c=1, got %v", ls.C)
	}
	got := FromLS(ls)
	if !almostEqual(got.X, tr.X, 1e-12) || !almostEqual(got.Y, tr.Y, 1e-12) ||
		!almostEqual(got.Alpha, tr.Alpha, 1e-12) || !almostEqual(got.Zoom, tr.Zoom, 1e-12) {
		t.Fatalf("AZ(LS(t)) != t: got %+v, want %+v", got, tr)
	}
}

func TestTransformationsUnderrunRepeatsLast(t *testing.T) {
	ts := NewTransformations([]Transform{New(1, 0, 0, 0), New(2, 0, 0, 0)})
	ts.Next()
	last, underrun := ts.Next()
	if underrun {
		t.Fatal("should not underrun on the last real element")
	}
	again, underrun := ts.Next()
	if !underrun {
		t.Fatal("expected underrun past the end")
	}
	if again != last {
		t.Fatalf("expected repeat of last transform, got %+v want %+v", again, last)
	}
}

func TestWarnedEndFiresOnce(t *testing.T) {
	ts := NewTransformations(nil)
	if ts.WarnedEnd() {
		t.Fatal("first call must report not-yet-warned")
	}
	if !ts.WarnedEnd() {
		t.Fatal("second call must report already-warned")
	}
}

func TestCleanMeanTrimsOutliers(t *testing.T) {
	ts := []Transform{New(0, 0, 0, 0), New(1, 1, 0, 0), New(2, 2, 0, 0), New(100, 100, 0, 0)}
	got := CleanMean(ts, 0.25)
	if got.X > 3 || got.Y > 3 {
		t.Fatalf("expected outlier trimmed, got %+v", got)
	}
}

func TestSlidingAvgTransIdentityInput(t *testing.T) {
	var s SlidingAvgTrans
	for i := 0; i < 20; i++ {
		out := s.Update(Identity, 5)
		if !almostEqual(out.X, 0, 1e-9) || !almostEqual(out.Y, 0, 1e-9) {
			t.Fatalf("step %d: expected near-zero output for identity input, got %+v", i, out)
		}
	}
}

package smooth

import (
	"math"
	"testing"

	"github.com/ausocean/vidstab/transform"
)

func TestL1TranslationalPathShortSequenceIsPassthrough(t *testing.T) {
	p := []float64{1, 2, 3}
	out, err := l1TranslationalPath(p, 1000, defaultL1Weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range p {
		if out[i] != p[i] {
			t.Fatalf("expected passthrough for n<4, got %v want %v", out, p)
		}
	}
}

func TestL1TranslationalPathSmoothsSpike(t *testing.T) {
	n := 12
	p := make([]float64, n)
	p[6] = 40 // single-frame spike in an otherwise flat path
	out, err := l1TranslationalPath(p, 1000, defaultL1Weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(out[6]) >= math.Abs(p[6]) {
		t.Fatalf("expected the spike to be attenuated, got %v from input %v", out[6], p[6])
	}
}

func TestL1HonorsInclusionBound(t *testing.T) {
	n := 10
	p := make([]float64, n)
	for i := range p {
		p[i] = 1000 // far from zero: the bound is relative to p
	}
	out, err := l1TranslationalPath(p, 50, defaultL1Weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if d := v - p[i]; d > 50+1e-6 || d < -50-1e-6 {
			t.Fatalf("frame %d: expected |%v-%v| <= 50 (inclusion bound)", i, v, p[i])
		}
	}
}

func TestL1FallsBackOnEmptyInput(t *testing.T) {
	_, err := l1(nil, 640, 480, 10, 15, false)
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestL1PreservesAlphaZoomFromGaussian(t *testing.T) {
	ts := make([]transform.Transform, 20)
	for i := range ts {
		ts[i] = transform.New(float64(i), 0, 0.01*float64(i), 0)
	}
	out, err := l1(ts, 640, 480, 10, 5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(ts) {
		t.Fatalf("expected %d frames, got %d", len(ts), len(out))
	}
}

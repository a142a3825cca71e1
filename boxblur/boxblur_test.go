package boxblur

import (
	"testing"

	"github.com/ausocean/vidstab/frame"
)

func TestBlurFlatImageUnchanged(t *testing.T) {
	fi, _ := frame.NewFrameInfo(32, 16, frame.GRAY8)
	src := frame.Allocate(fi)
	for i := range src.Data[0] {
		src.Data[0][i] = 128
	}
	dst := frame.Allocate(fi)
	Blur(dst, src, fi, 5, AllPlanes)
	for i, v := range dst.Data[0] {
		if v != 128 {
			t.Fatalf("byte %d: got %d, want 128 on flat image", i, v)
		}
	}
}

func TestNormalizeSizeClampsToOdd(t *testing.T) {
	if got := normalizeSize(4, 100, 100); got%2 == 0 {
		t.Fatalf("normalizeSize(4) = %d, want odd", got)
	}
	if got := normalizeSize(1000, 10, 10); got > 5 {
		t.Fatalf("normalizeSize should clamp to min(w,h)/2, got %d", got)
	}
}

package warp

import (
	"testing"

	"github.com/ausocean/vidstab/frame"
	"github.com/ausocean/vidstab/transform"
)

func checkerboard(fi frame.FrameInfo) *frame.Frame {
	f := frame.Allocate(fi)
	for y := 0; y < fi.Height; y++ {
		for x := 0; x < fi.Width; x++ {
			v := byte(0)
			if (x/8+y/8)%2 == 0 {
				v = 255
			}
			f.Data[0][y*f.Linesize[0]+x] = v
		}
	}
	return f
}

func TestWarpIdentityCopiesWhenDistinctBuffers(t *testing.T) {
	fi, _ := frame.NewFrameInfo(64, 64, frame.GRAY8)
	src := checkerboard(fi)
	dst := frame.Allocate(fi)

	w := New(fi, Config{Interpolation: BiLinear, Crop: CropBorder})
	w.Warp(dst, src, transform.Identity)

	for i := range src.Data[0] {
		if dst.Data[0][i] != src.Data[0][i] {
			t.Fatalf("byte %d: identity warp should copy src verbatim, got %d want %d", i, dst.Data[0][i], src.Data[0][i])
		}
	}
}

func TestWarpTranslationShiftsContent(t *testing.T) {
	fi, _ := frame.NewFrameInfo(64, 64, frame.GRAY8)
	src := frame.Allocate(fi)
	src.Data[0][32*src.Linesize[0]+32] = 200

	dst := frame.Allocate(fi)
	w := New(fi, Config{Interpolation: Zero, Crop: CropBorder})
	w.Warp(dst, src, transform.New(5, 0, 0, 0))

	if dst.Data[0][32*dst.Linesize[0]+37] != 200 {
		t.Fatalf("expected the bright pixel to shift by +5 in x, got value %d", dst.Data[0][32*dst.Linesize[0]+37])
	}
}

func TestWarpKeepBorderPreservesPriorContent(t *testing.T) {
	fi, _ := frame.NewFrameInfo(32, 32, frame.GRAY8)
	src := frame.Allocate(fi)
	dst := frame.Allocate(fi)
	for i := range dst.Data[0] {
		dst.Data[0][i] = 77
	}

	w := New(fi, Config{Interpolation: Zero, Crop: KeepBorder})
	w.Warp(dst, src, transform.New(100, 0, 0, 0)) // shift far out of frame

	for i, v := range dst.Data[0] {
		if v != 77 {
			t.Fatalf("byte %d: expected keep-border to preserve prior content (77), got %d", i, v)
		}
	}
}

func TestInterpolateBiLinFixedAgreesWithFloat(t *testing.T) {
	fi, _ := frame.NewFrameInfo(32, 32, frame.GRAY8)
	src := checkerboard(fi)

	for _, c := range []struct{ x, y float64 }{{10.3, 10.7}, {5.5, 5.5}, {20.1, 3.9}} {
		want := interpolateBiLinBorder(c.x, c.y, src.Data[0], src.Linesize[0], fi.Width, fi.Height, 0)
		got := interpolateBiLinFixed(toFixed(c.x), toFixed(c.y), src.Data[0], src.Linesize[0], fi.Width, fi.Height, 0)
		diff := int(want) - int(got)
		if diff < -2 || diff > 2 {
			t.Fatalf("at (%v,%v): float=%d fixed=%d differ by more than 2 LSB", c.x, c.y, want, got)
		}
	}
}

func TestWarpPackedIdentityCopies(t *testing.T) {
	fi, _ := frame.NewFrameInfo(16, 16, frame.RGB24)
	src := frame.Allocate(fi)
	for i := range src.Data[0] {
		src.Data[0][i] = byte(i % 256)
	}
	dst := frame.Allocate(fi)

	w := New(fi, Config{Interpolation: BiLinear, Crop: CropBorder})
	w.Warp(dst, src, transform.Identity)

	for i := range src.Data[0] {
		if dst.Data[0][i] != src.Data[0][i] {
			t.Fatalf("byte %d: identity warp should copy src verbatim", i)
		}
	}
}

package stab

import (
	"testing"

	"github.com/ausocean/vidstab/detect"
	"github.com/ausocean/vidstab/fit"
	"github.com/ausocean/vidstab/frame"
	"github.com/ausocean/vidstab/smooth"
	"github.com/ausocean/vidstab/warp"
)

func testFrameInfo(t *testing.T) frame.FrameInfo {
	t.Helper()
	fi, err := frame.NewFrameInfo(160, 120, frame.GRAY8)
	if err != nil {
		t.Fatalf("NewFrameInfo: %v", err)
	}
	return fi
}

func TestDetectPassProcessesFrames(t *testing.T) {
	fi := testFrameInfo(t)
	p, err := NewDetectPass(DetectConfig{Info: fi, Detect: detect.Config{}})
	if err != nil {
		t.Fatalf("NewDetectPass: %v", err)
	}
	f := frame.Allocate(fi)
	for i := 0; i < 3; i++ {
		if _, err := p.Process(f); err != nil {
			t.Fatalf("Process frame %d: %v", i, err)
		}
	}
	if p.FrameNum() != 3 {
		t.Fatalf("expected FrameNum()==3, got %d", p.FrameNum())
	}
}

func TestTransformPassFinalizeAndWarp(t *testing.T) {
	fi := testFrameInfo(t)
	tp, err := NewTransformPass(TransformConfig{
		Width: fi.Width, Height: fi.Height,
		Fit:    fit.Config{},
		Smooth: smooth.DefaultConfig(),
		Warp:   warp.Config{Interpolation: warp.BiLinear, Crop: warp.CropBorder},
	})
	if err != nil {
		t.Fatalf("NewTransformPass: %v", err)
	}
	for i := 0; i < 20; i++ {
		tp.AddFrame(nil)
	}
	out := tp.Finalize()
	if len(out) != 20 {
		t.Fatalf("expected 20 compensating transforms, got %d", len(out))
	}

	src := frame.Allocate(fi)
	dst := frame.Allocate(fi)
	if err := tp.Warp(0, dst, src); err != nil {
		t.Fatalf("Warp: %v", err)
	}
}

func TestTransformPassWarpBeforeFinalizeErrors(t *testing.T) {
	fi := testFrameInfo(t)
	tp, _ := NewTransformPass(TransformConfig{Width: fi.Width, Height: fi.Height})
	src := frame.Allocate(fi)
	dst := frame.Allocate(fi)
	if err := tp.Warp(0, dst, src); err == nil {
		t.Fatal("expected an error calling Warp before Finalize")
	}
}

func TestNewTransformPassRejectsBadDimensions(t *testing.T) {
	if _, err := NewTransformPass(TransformConfig{Width: 0, Height: 100}); err == nil {
		t.Fatal("expected an error for zero width")
	}
}

package frame

import "testing"

func TestNewFrameInfoRejectsOddDimensions(t *testing.T) {
	if _, err := NewFrameInfo(641, 480, YUV420P); err == nil {
		t.Fatal("expected error for odd width")
	}
}

func TestNewFrameInfoRejectsUnknownFormat(t *testing.T) {
	if _, err := NewFrameInfo(640, 480, Format(999)); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestPlaneDimensionsYUV420P(t *testing.T) {
	fi, err := NewFrameInfo(640, 480, YUV420P)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.PlaneWidth(0); got != 640 {
		t.Errorf("luma width = %d, want 640", got)
	}
	if got := fi.PlaneWidth(1); got != 320 {
		t.Errorf("chroma width = %d, want 320", got)
	}
	if got := fi.PlaneHeight(1); got != 240 {
		t.Errorf("chroma height = %d, want 240", got)
	}
	if got := fi.Planes(); got != 3 {
		t.Errorf("planes = %d, want 3", got)
	}
}

func TestPlaneDimensionsPacked(t *testing.T) {
	fi, err := NewFrameInfo(640, 480, RGB24)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.PlaneWidth(0); got != 640 {
		t.Errorf("packed plane width = %d, want 640", got)
	}
	if got := fi.BytesPerPixel(); got != 3 {
		t.Errorf("bytesPerPixel = %d, want 3", got)
	}
}

func TestAllocateAndCopy(t *testing.T) {
	fi, _ := NewFrameInfo(16, 8, YUV420P)
	a := Allocate(fi)
	for i := range a.Data[0] {
		a.Data[0][i] = byte(i)
	}
	b := Allocate(fi)
	if err := b.CopyFrom(a); err != nil {
		t.Fatal(err)
	}
	for i := range a.Data[0] {
		if b.Data[0][i] != a.Data[0][i] {
			t.Fatalf("byte %d: got %d, want %d", i, b.Data[0][i], a.Data[0][i])
		}
	}
}

func TestAtBoundsChecking(t *testing.T) {
	fi, _ := NewFrameInfo(16, 8, YUV420P)
	f := Allocate(fi)
	if off := f.At(0, 15, 7); off < 0 {
		t.Error("expected valid offset for corner pixel")
	}
	if off := f.At(0, 16, 0); off != -1 {
		t.Error("expected -1 for out-of-bounds x")
	}
	if off := f.At(0, 0, 8); off != -1 {
		t.Error("expected -1 for out-of-bounds y")
	}
}

func TestWrapDoesNotFree(t *testing.T) {
	fi, _ := NewFrameInfo(4, 4, GRAY8)
	data := [4][]byte{make([]byte, 16)}
	linesize := [4]int{4}
	f := Wrap(fi, data, linesize)
	f.Free()
	if f.Data[0] == nil {
		t.Error("Free must not clear a wrapped frame's data")
	}
}

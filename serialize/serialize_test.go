package serialize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ausocean/vidstab/detect"
)

func sampleLMs() detect.LocalMotions {
	return detect.LocalMotions{
		{F: detect.Field{X: 10, Y: 20, Size: 17}, V: detect.Vec{X: -3, Y: 4}, Contrast: 0.25, Match: 1.5},
		{F: detect.Field{X: 50, Y: 60, Size: 17}, V: detect.Vec{X: 0, Y: 0}, Contrast: 0.1, Match: 0.0},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, DetectorConfig{Accuracy: 15, Shakiness: 5, StepSize: 6, ContrastThreshold: 0.25}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := WriteFrame(&buf, 1, sampleLMs()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := WriteFrame(&buf, 2, nil); err != nil {
		t.Fatalf("WriteFrame (empty): %v", err)
	}

	frames, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Num != 1 || len(frames[0].LocalMotion) != 2 {
		t.Fatalf("frame 0: expected Num=1 with 2 motions, got %+v", frames[0])
	}
	if frames[1].Num != 2 || len(frames[1].LocalMotion) != 0 {
		t.Fatalf("frame 1: expected Num=2 with 0 motions, got %+v", frames[1])
	}
	got := frames[0].LocalMotion[0]
	want := sampleLMs()[0]
	if got.F != want.F || got.V.X != want.V.X || got.V.Y != want.V.Y {
		t.Fatalf("round-tripped local motion mismatch: got %+v want %+v", got, want)
	}
}

func TestReadAllRejectsMissingHeader(t *testing.T) {
	_, err := ReadAll(strings.NewReader("Frame 1 (List 0 [])\n"))
	if err == nil {
		t.Fatal("expected an error for a missing VID.STAB header")
	}
}

func TestReadAllRejectsFutureVersion(t *testing.T) {
	_, err := ReadAll(strings.NewReader("VID.STAB 99\n"))
	if err == nil {
		t.Fatal("expected an error for a version newer than supported")
	}
}

func TestReadLegacyTransformsSixField(t *testing.T) {
	in := "# comment\n1 1.0 2.0 0.1 5 0\n2 -1.0 -2.0 -0.1 0 1\n\n"
	ts, err := ReadLegacyTransforms(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLegacyTransforms: %v", err)
	}
	if len(ts) != 2 {
		t.Fatalf("expected 2 transforms, got %d", len(ts))
	}
	if ts[0].X != 1.0 || ts[0].Zoom != 5 || ts[0].Extra != 0 {
		t.Fatalf("unexpected first transform: %+v", ts[0])
	}
	if ts[1].Extra != 1 {
		t.Fatalf("expected second transform Extra=1, got %+v", ts[1])
	}
}

func TestReadLegacyTransformsFiveField(t *testing.T) {
	in := "1 1.0 2.0 0.1 0\n"
	ts, err := ReadLegacyTransforms(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLegacyTransforms: %v", err)
	}
	if len(ts) != 1 || ts[0].Zoom != 0 {
		t.Fatalf("expected single transform with zoom defaulted to 0, got %+v", ts)
	}
}

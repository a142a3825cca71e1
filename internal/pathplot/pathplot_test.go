package pathplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/vidstab/transform"
)

func TestWriteProducesNonEmptyFile(t *testing.T) {
	ts := make([]transform.Transform, 30)
	for i := range ts {
		ts[i] = transform.New(float64(i), -float64(i), 0, 0)
	}

	path := filepath.Join(t.TempDir(), "path.png")
	if err := Write(path, ts); err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected a non-empty PNG file")
	}
}

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.obj")
	if err := os.WriteFile(path, []byte("o cube\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(zap.NewNop(), path, filepath.Join(dir, "cube.mtl"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("o cube\nv 0 0 0\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case name := <-w.Changes():
		if filepath.Base(name) != "cube.obj" {
			t.Errorf("unexpected changed file %q", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := New(zap.NewNop(), filepath.Join(t.TempDir(), "missing", "cube.obj"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New(zap.NewNop(), filepath.Join(t.TempDir(), "cube.obj"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

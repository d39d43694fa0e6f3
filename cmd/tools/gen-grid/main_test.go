package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/depth.steer/internal/depth/gridio"
	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
)

func TestParseObstacles(t *testing.T) {
	got, err := parseObstacles("1:3:2.5, 10:12:4", 6)
	if err != nil {
		t.Fatalf("parseObstacles: %v", err)
	}
	want := []l2grid.Box{
		{Row0: 0, Row1: 5, Col0: 1, Col1: 3, Depth: 2.5},
		{Row0: 0, Row1: 5, Col0: 10, Col1: 12, Depth: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("boxes mismatch (-want +got):\n%s", diff)
	}

	if got, err := parseObstacles("", 6); err != nil || got != nil {
		t.Errorf("empty list = %v, %v; want nil, nil", got, err)
	}

	for _, bad := range []string{"1:2", "a:2:3", "1:b:3", "1:2:c"} {
		if _, err := parseObstacles(bad, 6); err == nil {
			t.Errorf("parseObstacles(%q) expected error", bad)
		}
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	scene := l2grid.Scene{
		Rows:    4,
		Cols:    20,
		Boxes:   []l2grid.Box{{Row0: 0, Row1: 3, Col0: 2, Col1: 6, Depth: 2}},
		Dropout: 0.1,
		Jitter:  0.01,
	}

	for _, format := range []string{"csv", "json"} {
		paths, err := generate(scene, 3, 7, filepath.Join(dir, format), format)
		if err != nil {
			t.Fatalf("generate %s: %v", format, err)
		}
		if len(paths) != 3 {
			t.Fatalf("%s: wrote %d frames, want 3", format, len(paths))
		}
		for _, p := range paths {
			g, err := gridio.ReadFile(p)
			if err != nil {
				t.Fatalf("read back %s: %v", p, err)
			}
			if g.Rows() != 4 || g.Cols() != 20 {
				t.Errorf("%s shape = %dx%d, want 4x20", p, g.Rows(), g.Cols())
			}
		}
	}
}

func TestGenerate_SameSeedSameFrames(t *testing.T) {
	dir := t.TempDir()
	scene := l2grid.Scene{Rows: 3, Cols: 8, Boxes: []l2grid.Box{{Row1: 2, Col1: 7, Depth: 1}}, Jitter: 0.2}

	a, err := generate(scene, 1, 42, filepath.Join(dir, "a"), "csv")
	if err != nil {
		t.Fatal(err)
	}
	b, err := generate(scene, 1, 42, filepath.Join(dir, "b"), "csv")
	if err != nil {
		t.Fatal(err)
	}
	da, _ := os.ReadFile(a[0])
	db, _ := os.ReadFile(b[0])
	if string(da) != string(db) {
		t.Error("same seed produced different frames")
	}
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := generate(l2grid.Scene{Rows: 2, Cols: 2}, 1, 1, dir, "png"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := generate(l2grid.Scene{}, 1, 1, dir, "csv"); err == nil {
		t.Error("expected error for empty scene")
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	content := `{"rows": 2, "cols": 5, "boxes": [{"row0": 0, "row1": 1, "col0": 1, "col1": 2, "depth": 3}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := loadScene(path)
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if s.Rows != 2 || s.Cols != 5 || len(s.Boxes) != 1 || s.Boxes[0].Depth != 3 {
		t.Errorf("scene = %+v", s)
	}
}

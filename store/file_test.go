package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "scene.yaml"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	exerciseStore(t, f)
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Insert(rectRecord("Shape 0")); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Insert(polyRecord("Poly 0")); err != nil {
		t.Fatal(err)
	}

	g, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	list, _ := g.List()
	if len(list) != 2 {
		t.Fatalf("Expected 2 shapes loaded, got %d", len(list))
	}
	if list[0].Name != "Shape 0" || list[1].Kind != KindPoly {
		t.Errorf("loaded = %+v", list)
	}
}

func TestFileLoadRepairsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	doc := `shapes:
  - kind: rect
    name: no id
    rect: {x: 1, y: 2, w: 3, h: 4}
  - id: poly_dup
    kind: poly
    name: first
    points: [{x: 0, y: 0}]
  - id: poly_dup
    kind: poly
    name: second
    points: [{x: 1, y: 1}]
  - kind: poly
    name: empty
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	list, _ := f.List()
	if len(list) != 3 {
		t.Fatalf("Expected 3 valid shapes, got %d: %+v", len(list), list)
	}
	if list[0].ID == "" {
		t.Error("missing id was not generated")
	}
	if list[1].ID == list[2].ID {
		t.Error("duplicate id was not replaced")
	}
}

func TestOpenFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("shapes: [[["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

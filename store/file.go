package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"shape-canvas/geom"
	"shape-canvas/typeid"
)

// SceneState is the YAML document a File store reads and writes.
type SceneState struct {
	Shapes []Record `yaml:"shapes"`
}

// File is a Memory store mirrored to a YAML document. Every successful
// write is saved back to disk.
type File struct {
	mem  *Memory
	path string
}

// OpenFile loads path if it exists. A missing file starts an empty scene.
func OpenFile(path string) (*File, error) {
	f := &File{mem: NewMemory(), path: path}
	if err := f.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return f, nil
}

func (f *File) Path() string {
	return f.path
}

// Load replaces the in-memory records with the document on disk. Records
// without an ID get a new one; records with broken geometry are dropped.
func (f *File) Load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	var state SceneState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parse %s: %w", f.path, err)
	}

	records := make([]Record, 0, len(state.Shapes))
	seen := make(map[string]bool)
	for _, r := range state.Shapes {
		if r.Validate() != nil {
			continue
		}
		if r.ID == "" || seen[r.ID] {
			r.ID = typeid.New(string(r.Kind))
		}
		seen[r.ID] = true
		records = append(records, r)
	}
	f.mem.replace(records)
	return nil
}

// Save writes every record to the YAML document.
func (f *File) Save() error {
	records, err := f.mem.List()
	if err != nil {
		return err
	}
	state := SceneState{Shapes: records}

	out, err := os.Create(f.path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(&state); err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	return enc.Close()
}

func (f *File) Insert(r Record) (string, error) {
	id, err := f.mem.Insert(r)
	if err != nil {
		return "", err
	}
	return id, f.Save()
}

func (f *File) Update(r Record) error {
	if err := f.mem.Update(r); err != nil {
		return err
	}
	return f.Save()
}

func (f *File) AppendPoint(id string, p geom.Point) error {
	if err := f.mem.AppendPoint(id, p); err != nil {
		return err
	}
	return f.Save()
}

func (f *File) Remove(id string) error {
	if err := f.mem.Remove(id); err != nil {
		return err
	}
	return f.Save()
}

func (f *File) Count(kind Kind) (int, error) { return f.mem.Count(kind) }

func (f *File) List() ([]Record, error) { return f.mem.List() }

func (f *File) Subscribe(l Listener) func() { return f.mem.Subscribe(l) }

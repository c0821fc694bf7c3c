// Package export implements the destinations of a finished artwork:
// a directory backed gallery and a plain file download.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/colorin/colorin"
	"github.com/google/uuid"
)

const indexFile = "index.json"

var (
	// ErrNotFound is returned when no drawing with the requested id exists.
	ErrNotFound = errors.New("drawing not found")
	// ErrGalleryFull is returned when the gallery reached its capacity.
	ErrGalleryFull = errors.New("gallery is full, delete some drawings first")
)

// Drawing is a gallery entry.
type Drawing struct {
	ID     string    `json:"id"`
	File   string    `json:"file"`
	Date   time.Time `json:"date"`
	Prompt string    `json:"prompt,omitempty"`
}

// Gallery stores the saved drawings in a directory, together with
// an index listing them from the newest to the oldest.
type Gallery struct {
	// Limit caps the number of stored drawings. Zero means no limit.
	Limit int

	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewGallery opens the gallery rooted at dir, creating the directory if needed.
func NewGallery(dir string) (*Gallery, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create the gallery directory: %w", err)
	}
	return &Gallery{dir: dir, now: time.Now}, nil
}

// Dir returns the gallery directory.
func (g *Gallery) Dir() string {
	return g.dir
}

// List returns the stored drawings, newest first.
func (g *Gallery) List() ([]Drawing, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.read()
}

// Save stores the artwork as a new drawing.
func (g *Gallery) Save(r *colorin.Raster) error {
	_, err := g.Add(r, "")
	return err
}

// Add stores the artwork as a new drawing with an optional prompt
// describing the line art and returns the new entry.
func (g *Gallery) Add(r *colorin.Raster, prompt string) (Drawing, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	drawings, err := g.read()
	if err != nil {
		return Drawing{}, err
	}
	if g.Limit > 0 && len(drawings) >= g.Limit {
		return Drawing{}, ErrGalleryFull
	}

	id := uuid.NewString()
	d := Drawing{
		ID:     id,
		File:   id + "." + extension(r.Format),
		Date:   g.now().UTC(),
		Prompt: prompt,
	}
	if err := writeFile(filepath.Join(g.dir, d.File), r.Data); err != nil {
		return Drawing{}, err
	}
	if err := g.write(append([]Drawing{d}, drawings...)); err != nil {
		os.Remove(filepath.Join(g.dir, d.File))
		return Drawing{}, err
	}
	return d, nil
}

// Open returns the encoded image of a stored drawing.
func (g *Gallery) Open(id string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	d, _, err := g.find(id)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(g.dir, d.File))
}

// Delete removes a drawing from the gallery.
func (g *Gallery) Delete(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	d, drawings, err := g.find(id)
	if err != nil {
		return err
	}
	kept := make([]Drawing, 0, len(drawings)-1)
	for _, e := range drawings {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if err := g.write(kept); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(g.dir, d.File)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (g *Gallery) find(id string) (Drawing, []Drawing, error) {
	drawings, err := g.read()
	if err != nil {
		return Drawing{}, nil, err
	}
	for _, d := range drawings {
		if d.ID == id {
			return d, drawings, nil
		}
	}
	return Drawing{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// read loads the index. A missing index is an empty gallery.
func (g *Gallery) read() ([]Drawing, error) {
	data, err := os.ReadFile(filepath.Join(g.dir, indexFile))
	if errors.Is(err, os.ErrNotExist) {
		return []Drawing{}, nil
	}
	if err != nil {
		return nil, err
	}
	var drawings []Drawing
	if err := json.Unmarshal(data, &drawings); err != nil {
		return nil, fmt.Errorf("corrupted gallery index: %w", err)
	}
	return drawings, nil
}

func (g *Gallery) write(drawings []Drawing) error {
	data, err := json.MarshalIndent(drawings, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(g.dir, indexFile), data)
}

// writeFile replaces the file content atomically.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func extension(format string) string {
	if format == "" {
		return colorin.FormatPNG
	}
	return format
}

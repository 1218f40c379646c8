// Package thumbs manages thumbnail files under the configured data
// directory. Image resizing itself happens in the presentation layer; this
// package only owns the paths that artefact rows point at.
package thumbs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmaren/bookannex/internal/entities"
)

// Store maps (kind, id) pairs to thumbnail files inside one directory.
type Store struct {
	dir string
}

// New creates the thumbnail directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create thumbs dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the thumbnail directory.
func (s *Store) Dir() string {
	return s.dir
}

// RelPath returns the artefact URL stored in the annex: a path relative to
// the data directory.
func (s *Store) RelPath(kind entities.Kind, id int64) string {
	return fmt.Sprintf("thumb_%s_%d.png", kind, id)
}

// AbsPath resolves an artefact URL to a filesystem path.
func (s *Store) AbsPath(rel string) string {
	return filepath.Join(s.dir, rel)
}

// Write stores thumbnail bytes under an artefact URL, replacing any
// previous file.
func (s *Store) Write(rel string, data []byte) error {
	if err := os.WriteFile(s.AbsPath(rel), data, 0644); err != nil {
		return fmt.Errorf("write thumbnail: %w", err)
	}
	return nil
}

// Exists reports whether the thumbnail file for an artefact URL is present.
func (s *Store) Exists(rel string) bool {
	_, err := os.Stat(s.AbsPath(rel))
	return err == nil
}

// Delete removes the thumbnail file behind an artefact URL. A missing file
// is not an error; the artefact row may outlive a manually cleaned cache.
func (s *Store) Delete(rel string) error {
	err := os.Remove(s.AbsPath(rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

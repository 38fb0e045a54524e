// Package storage persists the task collection as a YAML document on disk.
//
// The file is the single durable copy of the store. Saves are atomic:
// the document is written to a temp file next to the target and renamed
// over it, so a crash mid-write never leaves a truncated canonical file.
// A missing file is not an error and loads as an empty document; an
// unparseable file loads as ErrCorruptStore so the caller can decide
// whether to abort or reinitialize.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrCorruptStore is returned by Load when the store file exists but
// cannot be parsed.
var ErrCorruptStore = errors.New("store file is corrupt")

const documentVersion = 1

// FileStore reads and writes the task document at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore binds a store to the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the task document from disk.
// A missing file yields an empty document, not an error.
func (f *FileStore) Load() (*Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if doc.Version == 0 {
		doc.Version = documentVersion
	}

	return &doc, nil
}

// Save writes the task document to disk atomically via temp file + rename.
func (f *FileStore) Save(doc *Document) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	doc.Version = documentVersion
	doc.SavedAt = time.Now()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}

// ABOUTME: JSON document file backend, the canonical persistence shape.
// ABOUTME: Writes go to a temp file and are renamed over the old one.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harperreed/diary/internal/models"
)

// FileStore keeps the journal as a single JSON file.
type FileStore struct {
	path string
}

// Compile-time check that FileStore implements Repository.
var _ Repository = (*FileStore)(nil)

// OpenFile prepares a JSON file store at path. The file itself is created
// on first save.
func OpenFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "diary")
}

// DefaultFilePath returns the default JSON document path.
func DefaultFilePath() string {
	return filepath.Join(DataDir(), "diary.json")
}

// Location returns the file path.
func (s *FileStore) Location() string {
	return s.path
}

// Load reads and migrates the document. A missing file is an empty journal.
func (s *FileStore) Load() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.NewDocument(), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return doc, nil
}

// Save overwrites the file with doc.
func (s *FileStore) Save(doc *models.Document) error {
	doc.Version = models.DocumentVersion
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".diary-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("set file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Close releases resources. For FileStore this is a no-op.
func (s *FileStore) Close() error {
	return nil
}

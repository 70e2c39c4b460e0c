// ABOUTME: Repository interface for journal persistence backends.
// ABOUTME: Backends load and save the whole document; there are no partial writes.
package storage

import "github.com/harperreed/diary/internal/models"

// Repository defines the storage interface for the journal document.
// Save overwrites everything previously stored.
type Repository interface {
	// Load returns the stored document. A backend with nothing stored yet
	// returns an empty document and no error.
	Load() (*models.Document, error)

	// Save replaces the stored document with doc.
	Save(doc *models.Document) error

	// Location describes where data lives, for display.
	Location() string

	Close() error
}

// ABOUTME: Data migration between diary storage backends.
// ABOUTME: Copies the whole document from source to destination.

package storage

import (
	"fmt"

	"github.com/harperreed/diary/internal/models"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Logs         int
	Vaccinations int
	Profile      bool
}

// MigrateData copies the document from src to dst. Whatever dst held
// before is replaced.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	doc, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("load source: %w", err)
	}

	if err := dst.Save(doc); err != nil {
		return nil, fmt.Errorf("save destination: %w", err)
	}

	return Summarize(doc), nil
}

// Summarize counts what a document holds.
func Summarize(doc *models.Document) *MigrateSummary {
	p := doc.Profile
	return &MigrateSummary{
		Logs:         len(doc.Logs),
		Vaccinations: len(p.Vaccinations),
		Profile:      p.Name != "" || p.HeightCM != nil || p.WeightKG != nil,
	}
}

// IsNonEmpty reports whether the backend already holds any data.
func IsNonEmpty(repo Repository) (bool, error) {
	doc, err := repo.Load()
	if err != nil {
		return false, err
	}
	s := Summarize(doc)
	return s.Logs > 0 || s.Vaccinations > 0 || s.Profile, nil
}

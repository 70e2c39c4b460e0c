// ABOUTME: Document is the whole persisted journal: profile plus daily logs.
// ABOUTME: Keeps the one-log-per-date and ascending-order invariants.
package models

import "sort"

// DocumentVersion is the current on-disk schema version.
const DocumentVersion = 2

// Document is the unit of persistence. Backends always read and write it whole.
type Document struct {
	Version int        `json:"version" yaml:"version"`
	Profile Profile    `json:"profile" yaml:"profile"`
	Logs    []DailyLog `json:"logs" yaml:"logs"`
}

// NewDocument returns an empty document at the current version.
func NewDocument() *Document {
	return &Document{
		Version: DocumentVersion,
		Profile: Profile{Vaccinations: []Vaccination{}},
		Logs:    []DailyLog{},
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{
		Version: d.Version,
		Profile: d.Profile.Clone(),
		Logs:    make([]DailyLog, len(d.Logs)),
	}
	for i, l := range d.Logs {
		c.Logs[i] = l.Clone()
	}
	return c
}

// Find returns the index of the log for date, or -1.
func (d *Document) Find(date string) int {
	for i := range d.Logs {
		if d.Logs[i].Date == date {
			return i
		}
	}
	return -1
}

// Upsert replaces the log with the same date in place, or appends it,
// then restores ascending date order.
func (d *Document) Upsert(l DailyLog) {
	if i := d.Find(l.Date); i >= 0 {
		d.Logs[i] = l
	} else {
		d.Logs = append(d.Logs, l)
	}
	d.SortLogs()
}

// Remove drops every log for date and reports how many were removed.
func (d *Document) Remove(date string) int {
	kept := d.Logs[:0]
	removed := 0
	for _, l := range d.Logs {
		if l.Date == date {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	d.Logs = kept
	return removed
}

// SortLogs orders logs ascending by date.
func (d *Document) SortLogs() {
	sort.SliceStable(d.Logs, func(i, j int) bool {
		return d.Logs[i].Date < d.Logs[j].Date
	})
}

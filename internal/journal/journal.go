// ABOUTME: Journal is the in-memory store the CLI and MCP server share.
// ABOUTME: Every mutation is applied to a copy, persisted, then committed.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/diary/internal/models"
	"github.com/harperreed/diary/internal/stats"
	"github.com/harperreed/diary/internal/storage"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a vaccination ID or prefix matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when an ID prefix matches more than one record.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// Journal holds the loaded document. Calls are serialized by a mutex, since
// MCP handlers may run concurrently. Other processes writing the same
// backend are not detected.
type Journal struct {
	mu      sync.Mutex
	repo    storage.Repository
	doc     *models.Document
	logger  *zap.Logger
	now     func() time.Time
	loadErr error
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(j *Journal) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// WithClock overrides the time source used for "today" and timestamps.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		if now != nil {
			j.now = now
		}
	}
}

// Open loads the document from repo. A document that cannot be read is
// replaced with an empty one; the error is logged and kept in LoadError.
func Open(repo storage.Repository, opts ...Option) *Journal {
	j := &Journal{
		repo:   repo,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}

	doc, err := repo.Load()
	if err != nil {
		j.logger.Warn("could not load journal, starting empty",
			zap.String("location", repo.Location()), zap.Error(err))
		j.loadErr = err
		doc = models.NewDocument()
	}
	j.doc = doc
	j.logger.Debug("journal loaded",
		zap.String("location", repo.Location()),
		zap.Int("logs", len(doc.Logs)),
		zap.Int("vaccinations", len(doc.Profile.Vaccinations)))
	return j
}

// LoadError returns the error that forced an empty start, if any.
func (j *Journal) LoadError() error {
	return j.loadErr
}

// Location describes where the journal is persisted.
func (j *Journal) Location() string {
	return j.repo.Location()
}

// Close closes the underlying backend.
func (j *Journal) Close() error {
	return j.repo.Close()
}

// Now returns the journal's current time.
func (j *Journal) Now() time.Time {
	return j.now()
}

// mutate applies fn to a copy of the document and commits it only once
// the copy has been saved.
func (j *Journal) mutate(op string, fn func(doc *models.Document) error) error {
	next := j.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := j.repo.Save(next); err != nil {
		j.logger.Error("save failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("save journal: %w", err)
	}
	j.doc = next
	j.logger.Debug("journal saved", zap.String("op", op), zap.Int("logs", len(next.Logs)))
	return nil
}

// Upsert validates l and stores it, replacing any log with the same date.
// It reports whether an existing log was replaced.
func (j *Journal) Upsert(l models.DailyLog) (bool, error) {
	l = l.Clone()
	if err := l.Normalize(); err != nil {
		return false, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	replaced := j.doc.Find(l.Date) >= 0
	err := j.mutate("upsert", func(doc *models.Document) error {
		doc.Upsert(l)
		return nil
	})
	if err != nil {
		return false, err
	}
	return replaced, nil
}

// UpsertAll stores every log with a single save. If any log is invalid
// nothing is stored.
func (j *Journal) UpsertAll(logs []models.DailyLog) (int, error) {
	normalized := make([]models.DailyLog, 0, len(logs))
	for _, l := range logs {
		l = l.Clone()
		if err := l.Normalize(); err != nil {
			return 0, fmt.Errorf("log %s: %w", l.Date, err)
		}
		normalized = append(normalized, l)
	}
	if len(normalized) == 0 {
		return 0, nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.mutate("upsert_all", func(doc *models.Document) error {
		for _, l := range normalized {
			doc.Upsert(l)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(normalized), nil
}

// Delete removes the log for date. A date with no log is a no-op that
// returns false without writing.
func (j *Journal) Delete(date string) (bool, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return false, &models.ValidationError{Field: "date", Reason: fmt.Sprintf("invalid date %q (use YYYY-MM-DD)", date)}
	}
	date = models.FormatDate(day)

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.doc.Find(date) < 0 {
		return false, nil
	}
	err = j.mutate("delete", func(doc *models.Document) error {
		doc.Remove(date)
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the log for date.
func (j *Journal) Get(date string) (models.DailyLog, bool) {
	day, err := models.ParseDate(date)
	if err != nil {
		return models.DailyLog{}, false
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if i := j.doc.Find(models.FormatDate(day)); i >= 0 {
		return j.doc.Logs[i].Clone(), true
	}
	return models.DailyLog{}, false
}

// Today returns the log for the current day.
func (j *Journal) Today() (models.DailyLog, bool) {
	return j.Get(models.FormatDate(j.now()))
}

// Logs returns a copy of all logs in ascending date order.
func (j *Journal) Logs() []models.DailyLog {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.snapshot()
}

// Recent returns up to n logs, newest first. n <= 0 returns all.
func (j *Journal) Recent(n int) []models.DailyLog {
	logs := j.Logs()
	out := make([]models.DailyLog, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		out = append(out, logs[i])
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// Since returns logs dated on or after start, oldest first.
func (j *Journal) Since(start time.Time) []models.DailyLog {
	return stats.Since(j.Logs(), models.FormatDate(start))
}

// Summary computes the aggregates for a window ending today.
func (j *Journal) Summary(w stats.Window) stats.Summary {
	return stats.Summarize(j.Logs(), w, j.now())
}

// Feedback returns the threshold messages for the current month.
func (j *Journal) Feedback() []stats.Feedback {
	return stats.FeedbackFor(j.Logs(), j.now())
}

// Document returns a deep copy of the whole document.
func (j *Journal) Document() *models.Document {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.doc.Clone()
}

func (j *Journal) snapshot() []models.DailyLog {
	out := make([]models.DailyLog, len(j.doc.Logs))
	for i, l := range j.doc.Logs {
		out[i] = l.Clone()
	}
	return out
}

// Profile returns a copy of the profile.
func (j *Journal) Profile() models.Profile {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.doc.Profile.Clone()
}

// ProfileUpdate lists the profile fields to change. Nil fields keep their
// current value; a zero measurement clears it.
type ProfileUpdate struct {
	Name     *string
	HeightCM *float64
	WeightKG *float64
}

// UpdateProfile applies u and recomputes BMI when a measurement changed.
func (j *Journal) UpdateProfile(u ProfileUpdate) (models.Profile, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.mutate("update_profile", func(doc *models.Document) error {
		p := &doc.Profile
		if u.Name != nil {
			p.Name = strings.TrimSpace(*u.Name)
		}
		if u.HeightCM == nil && u.WeightKG == nil {
			return nil
		}

		height, weight := valueOr(p.HeightCM), valueOr(p.WeightKG)
		if u.HeightCM != nil {
			height = *u.HeightCM
		}
		if u.WeightKG != nil {
			weight = *u.WeightKG
		}
		return p.SetMeasurements(height, weight, j.now())
	})
	if err != nil {
		return models.Profile{}, err
	}
	return j.doc.Profile.Clone(), nil
}

// AddVaccination records a vaccination.
func (j *Journal) AddVaccination(name, date string) (models.Vaccination, error) {
	v, err := models.NewVaccination(name, date)
	if err != nil {
		return models.Vaccination{}, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	err = j.mutate("add_vaccination", func(doc *models.Document) error {
		doc.Profile.Vaccinations = append(doc.Profile.Vaccinations, *v)
		return nil
	})
	if err != nil {
		return models.Vaccination{}, err
	}
	return *v, nil
}

// DeleteVaccination removes the vaccination whose ID is idOrPrefix or
// starts with it.
func (j *Journal) DeleteVaccination(idOrPrefix string) (models.Vaccination, error) {
	prefix := strings.ToLower(strings.TrimSpace(idOrPrefix))
	if prefix == "" {
		return models.Vaccination{}, &models.ValidationError{Field: "id", Reason: "vaccination id is required"}
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	match := -1
	for i, v := range j.doc.Profile.Vaccinations {
		if !strings.HasPrefix(v.ID.String(), prefix) {
			continue
		}
		if match >= 0 {
			return models.Vaccination{}, fmt.Errorf("vaccination %s: %w", idOrPrefix, ErrAmbiguous)
		}
		match = i
	}
	if match < 0 {
		return models.Vaccination{}, fmt.Errorf("vaccination %s: %w", idOrPrefix, ErrNotFound)
	}

	removed := j.doc.Profile.Vaccinations[match]
	err := j.mutate("delete_vaccination", func(doc *models.Document) error {
		vs := doc.Profile.Vaccinations
		doc.Profile.Vaccinations = append(vs[:match:match], vs[match+1:]...)
		return nil
	})
	if err != nil {
		return models.Vaccination{}, err
	}
	return removed, nil
}

func valueOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// ABOUTME: Document load and save for the SQLite backend.
// ABOUTME: Save replaces every row inside one transaction.
package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/diary/internal/models"
)

// Load reads the profile, vaccinations and logs into a document.
func (d *DB) Load() (*models.Document, error) {
	doc := models.NewDocument()

	if err := d.loadProfile(&doc.Profile); err != nil {
		return nil, err
	}

	vaccinations, err := d.loadVaccinations()
	if err != nil {
		return nil, err
	}
	doc.Profile.Vaccinations = vaccinations

	logs, err := d.loadLogs()
	if err != nil {
		return nil, err
	}
	doc.Logs = logs

	return doc, nil
}

// Save overwrites every table with the contents of doc.
func (d *DB) Save(doc *models.Document) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"daily_logs", "vaccinations", "profile"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	p := doc.Profile
	var updatedAt *string
	if p.BMIUpdatedAt != nil {
		s := p.BMIUpdatedAt.Format(time.RFC3339)
		updatedAt = &s
	}
	_, err = tx.Exec(`
		INSERT INTO profile (id, name, height_cm, weight_kg, bmi, bmi_updated_at)
		VALUES (1, ?, ?, ?, ?, ?)`,
		p.Name, p.HeightCM, p.WeightKG, p.BMI, updatedAt)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	for i, v := range p.Vaccinations {
		_, err := tx.Exec(`INSERT INTO vaccinations (id, name, date, position) VALUES (?, ?, ?, ?)`,
			v.ID.String(), v.Name, v.Date, i)
		if err != nil {
			return fmt.Errorf("save vaccination %s: %w", v.Name, err)
		}
	}

	for _, l := range doc.Logs {
		_, err := tx.Exec(`
			INSERT INTO daily_logs (date, sleep_hours, stress_label, stress_score, symptoms, water_glasses, memo)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.Date, l.SleepHours, string(l.StressLabel), l.StressScore,
			strings.Join(l.Symptoms, ","), l.WaterGlasses, l.Memo)
		if err != nil {
			return fmt.Errorf("save log %s: %w", l.Date, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		strconv.Itoa(models.DocumentVersion)); err != nil {
		return fmt.Errorf("save version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (d *DB) loadProfile(p *models.Profile) error {
	var height, weight, bmi sql.NullFloat64
	var updatedAt sql.NullString

	err := d.db.QueryRow(`
		SELECT name, height_cm, weight_kg, bmi, bmi_updated_at
		FROM profile WHERE id = 1`).Scan(&p.Name, &height, &weight, &bmi, &updatedAt)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	p.HeightCM = nullFloat(height)
	p.WeightKG = nullFloat(weight)
	p.BMI = nullFloat(bmi)
	if updatedAt.Valid {
		if t, err := time.Parse(time.RFC3339, updatedAt.String); err == nil {
			p.BMIUpdatedAt = &t
		}
	}
	return nil
}

func (d *DB) loadVaccinations() ([]models.Vaccination, error) {
	rows, err := d.db.Query(`SELECT id, name, date FROM vaccinations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load vaccinations: %w", err)
	}
	defer rows.Close()

	vaccinations := []models.Vaccination{}
	for rows.Next() {
		var v models.Vaccination
		var idStr string
		if err := rows.Scan(&idStr, &v.Name, &v.Date); err != nil {
			return nil, fmt.Errorf("scan vaccination: %w", err)
		}
		v.ID, _ = uuid.Parse(idStr)
		vaccinations = append(vaccinations, v)
	}
	return vaccinations, rows.Err()
}

func (d *DB) loadLogs() ([]models.DailyLog, error) {
	rows, err := d.db.Query(`
		SELECT date, sleep_hours, stress_label, stress_score, symptoms, water_glasses, memo
		FROM daily_logs
		ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	defer rows.Close()

	logs := []models.DailyLog{}
	for rows.Next() {
		var l models.DailyLog
		var sleep sql.NullFloat64
		var score, water sql.NullInt64
		var label, symptoms string

		if err := rows.Scan(&l.Date, &sleep, &label, &score, &symptoms, &water, &l.Memo); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}

		l.SleepHours = nullFloat(sleep)
		l.StressLabel = models.Mood(label)
		l.StressScore = nullInt(score)
		l.WaterGlasses = nullInt(water)
		l.Symptoms = splitSymptoms(symptoms)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func splitSymptoms(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

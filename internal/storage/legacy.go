// ABOUTME: Decodes stored documents and migrates loosely-typed legacy records.
// ABOUTME: Runs once at load time so the rest of the code sees only typed fields.
package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/diary/internal/models"
)

// legacyMoods maps every label older files may contain to an option key.
var legacyMoods = map[string]models.Mood{
	"low":    models.MoodLow,
	"normal": models.MoodNormal,
	"sad":    models.MoodSad,
	"high":   models.MoodHigh,

	"🙂 low":      models.MoodLow,
	"😐 normal":   models.MoodNormal,
	"😢 sad/down": models.MoodSad,
	"😡 high":     models.MoodHigh,

	"🙂 낮음":    models.MoodLow,
	"😐 보통":    models.MoodNormal,
	"😢 슬픔/우울": models.MoodSad,
	"😡 높음":    models.MoodHigh,

	"낮음":    models.MoodLow,
	"보통":    models.MoodNormal,
	"슬픔/우울": models.MoodSad,
	"높음":    models.MoodHigh,
}

// legacySymptoms maps localized symptom names to vocabulary keys.
var legacySymptoms = map[string]string{
	"두통":  models.SymptomHeadache,
	"복통":  models.SymptomStomachache,
	"피로":  models.SymptomFatigue,
	"기침":  models.SymptomCough,
	"콧물":  models.SymptomRunnyNose,
	"근육통": models.SymptomMusclePain,
	"없음":  models.SymptomNone,

	"runny nose":  models.SymptomRunnyNose,
	"muscle pain": models.SymptomMusclePain,
}

type rawDocument struct {
	Version json.RawMessage  `json:"version"`
	Profile rawProfile       `json:"profile"`
	Logs    []map[string]any `json:"logs"`
}

type rawProfile struct {
	Name         string           `json:"name"`
	HeightCM     any              `json:"height_cm"`
	WeightKG     any              `json:"weight_kg"`
	BMI          any              `json:"bmi"`
	BMIUpdatedAt string           `json:"bmi_updated_at"`
	Vaccinations []map[string]any `json:"vaccines"`
}

// DecodeDocument parses a stored or exported JSON document of any version
// and migrates it to the current model.
func DecodeDocument(data []byte) (*models.Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	doc := models.NewDocument()
	doc.Profile = migrateProfile(raw.Profile)
	for _, rl := range raw.Logs {
		if l, ok := MigrateLog(rl); ok {
			doc.Upsert(l)
		}
	}
	return doc, nil
}

// MigrateLog converts one loosely-typed record into a DailyLog.
// Records without a usable date are dropped. Numeric fields that are
// missing or not numeric become absent rather than zero.
func MigrateLog(raw map[string]any) (models.DailyLog, bool) {
	date, ok := migrateDate(raw["date"])
	if !ok {
		return models.DailyLog{}, false
	}
	l := models.DailyLog{Date: date, Symptoms: []string{}}

	if v, ok := toFloat(raw["sleep_hours"]); ok && v >= 0 && v <= models.MaxSleepHours {
		l.SleepHours = &v
	}

	label, _ := raw["stress_label"].(string)
	if label == "" {
		// older files stored the label under "stress"
		label, _ = raw["stress"].(string)
	}
	if m, ok := legacyMoods[strings.TrimSpace(label)]; ok {
		l = *l.WithMood(m)
	} else if v, ok := toFloat(raw["stress_score"]); ok {
		if m, ok := models.MoodForScore(int(v)); ok && v == math.Trunc(v) {
			l = *l.WithMood(m)
		}
	}

	if v, ok := toFloat(raw["water_glasses"]); ok && v >= 0 && v <= models.MaxWaterGlasses {
		w := int(math.Round(v))
		l.WaterGlasses = &w
	}

	l.Symptoms = migrateSymptoms(raw["symptoms"])
	if memo, ok := raw["memo"].(string); ok {
		l.Memo = strings.TrimSpace(memo)
	}
	return l, true
}

func migrateDate(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		// timestamps such as 2025-03-01T00:00:00
		s = s[:10]
	}
	t, err := models.ParseDate(s)
	if err != nil {
		return "", false
	}
	return models.FormatDate(t), true
}

func migrateSymptoms(v any) []string {
	var items []string
	switch s := v.(type) {
	case []any:
		for _, item := range s {
			if str, ok := item.(string); ok {
				items = append(items, str)
			}
		}
	case []string:
		items = s
	case string:
		items = strings.Split(s, ",")
	}

	out := []string{}
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if mapped, ok := legacySymptoms[key]; ok {
			key = mapped
		}
		if !models.IsValidSymptom(key) {
			continue
		}
		if key == models.SymptomNone {
			return []string{models.SymptomNone}
		}
		if !contains(out, key) {
			out = append(out, key)
		}
	}
	return out
}

func migrateProfile(raw rawProfile) models.Profile {
	p := models.Profile{Name: strings.TrimSpace(raw.Name), Vaccinations: []models.Vaccination{}}
	if v, ok := toFloat(raw.HeightCM); ok && v > 0 {
		p.HeightCM = &v
	}
	if v, ok := toFloat(raw.WeightKG); ok && v > 0 {
		p.WeightKG = &v
	}
	if v, ok := toFloat(raw.BMI); ok && v > 0 {
		p.BMI = &v
	} else if p.HeightCM != nil && p.WeightKG != nil {
		if bmi, ok := models.ComputeBMI(*p.HeightCM, *p.WeightKG); ok {
			p.BMI = &bmi
		}
	}
	if t, ok := parseTimestamp(raw.BMIUpdatedAt); ok {
		p.BMIUpdatedAt = &t
	}

	for _, rv := range raw.Vaccinations {
		name, _ := rv["name"].(string)
		date, ok := migrateDate(rv["date"])
		if strings.TrimSpace(name) == "" || !ok {
			continue
		}
		id := uuid.New()
		if s, ok := rv["id"].(string); ok {
			if parsed, err := uuid.Parse(s); err == nil {
				id = parsed
			}
		}
		p.Vaccinations = append(p.Vaccinations, models.Vaccination{ID: id, Name: strings.TrimSpace(name), Date: date})
	}
	return p
}

func parseTimestamp(s string) (time.Time, bool) {
	formats := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toFloat accepts JSON numbers and numeric strings. NaN is not a value.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

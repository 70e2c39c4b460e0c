// ABOUTME: Tests for document decoding and legacy record migration.
// ABOUTME: Covers localized labels, missing fields, and malformed values.
package storage

import (
	"testing"

	"github.com/harperreed/diary/internal/models"
)

func TestDecodeDocumentLegacy(t *testing.T) {
	data := []byte(`{
		"profile": {"name": "Kim", "height_cm": 170, "weight_kg": 65, "vaccines": [{"name": "flu", "date": "2024-11-01"}]},
		"logs": [
			{"date": "2025-03-02", "sleep_hours": 6.5, "stress": "😢 슬픔/우울", "symptoms": ["두통", "피로"], "memo": " tired "},
			{"date": "2025-03-01T00:00:00", "sleep_hours": "", "stress_label": "🙂 low", "symptoms": "기침, 콧물"},
			{"date": "not a date", "sleep_hours": 8},
			{"date": "2025-03-02", "water_glasses": 4}
		]
	}`)

	doc, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("DecodeDocument failed: %v", err)
	}

	if doc.Version != models.DocumentVersion {
		t.Errorf("Expected version %d, got %d", models.DocumentVersion, doc.Version)
	}
	if doc.Profile.BMI == nil || *doc.Profile.BMI != 22.49 {
		t.Errorf("Expected derived BMI 22.49, got %v", doc.Profile.BMI)
	}
	if len(doc.Profile.Vaccinations) != 1 || doc.Profile.Vaccinations[0].ID.String() == "" {
		t.Errorf("Expected one vaccination with an assigned ID, got %+v", doc.Profile.Vaccinations)
	}

	// the later duplicate date replaces the earlier record
	if len(doc.Logs) != 2 {
		t.Fatalf("Expected 2 logs, got %d", len(doc.Logs))
	}
	first, second := doc.Logs[0], doc.Logs[1]
	if first.Date != "2025-03-01" {
		t.Errorf("Expected first log 2025-03-01, got %s", first.Date)
	}
	if first.SleepHours != nil {
		t.Errorf("Expected empty sleep to be absent, got %v", *first.SleepHours)
	}
	if first.StressLabel != models.MoodLow || first.StressScore == nil || *first.StressScore != 1 {
		t.Errorf("Expected low mood with score 1, got %s/%v", first.StressLabel, first.StressScore)
	}
	if len(first.Symptoms) != 2 || first.Symptoms[0] != models.SymptomCough || first.Symptoms[1] != models.SymptomRunnyNose {
		t.Errorf("Expected cough and runny_nose, got %v", first.Symptoms)
	}
	if second.WaterGlasses == nil || *second.WaterGlasses != 4 {
		t.Errorf("Expected water 4 on replaced log, got %v", second.WaterGlasses)
	}
	if second.StressLabel != "" {
		t.Errorf("Expected replaced log to drop mood, got %s", second.StressLabel)
	}
}

func TestMigrateLog(t *testing.T) {
	tests := []struct {
		name      string
		raw       map[string]any
		wantOK    bool
		wantMood  models.Mood
		wantSleep *float64
	}{
		{
			name:   "missing date",
			raw:    map[string]any{"sleep_hours": 7.0},
			wantOK: false,
		},
		{
			name:     "korean plain label",
			raw:      map[string]any{"date": "2025-01-01", "stress_label": "높음"},
			wantOK:   true,
			wantMood: models.MoodHigh,
		},
		{
			name:     "score only",
			raw:      map[string]any{"date": "2025-01-01", "stress_score": 2.0},
			wantOK:   true,
			wantMood: models.MoodNormal,
		},
		{
			name:   "fractional score ignored",
			raw:    map[string]any{"date": "2025-01-01", "stress_score": 2.5},
			wantOK: true,
		},
		{
			name:   "unknown label and no score",
			raw:    map[string]any{"date": "2025-01-01", "stress_label": "ecstatic"},
			wantOK: true,
		},
		{
			name:      "numeric string sleep",
			raw:       map[string]any{"date": "2025-01-01", "sleep_hours": "7.25"},
			wantOK:    true,
			wantSleep: ptrFloat(7.25),
		},
		{
			name:   "out of range sleep",
			raw:    map[string]any{"date": "2025-01-01", "sleep_hours": 30.0},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MigrateLog(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.StressLabel != tt.wantMood {
				t.Errorf("mood = %q, want %q", got.StressLabel, tt.wantMood)
			}
			if tt.wantMood == "" && got.StressScore != nil {
				t.Errorf("expected absent score, got %d", *got.StressScore)
			}
			switch {
			case tt.wantSleep == nil && got.SleepHours != nil:
				t.Errorf("expected absent sleep, got %v", *got.SleepHours)
			case tt.wantSleep != nil && (got.SleepHours == nil || *got.SleepHours != *tt.wantSleep):
				t.Errorf("sleep = %v, want %v", got.SleepHours, *tt.wantSleep)
			}
		})
	}
}

func TestMigrateSymptomsNoneIsExclusive(t *testing.T) {
	got := migrateSymptoms([]any{"headache", "없음", "cough"})
	if len(got) != 1 || got[0] != models.SymptomNone {
		t.Errorf("Expected [none], got %v", got)
	}

	got = migrateSymptoms([]any{"Headache", "headache", "sneezing", "muscle pain"})
	if len(got) != 2 || got[0] != models.SymptomHeadache || got[1] != models.SymptomMusclePain {
		t.Errorf("Expected [headache muscle_pain], got %v", got)
	}
}

func ptrFloat(v float64) *float64 {
	return &v
}

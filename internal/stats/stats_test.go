// ABOUTME: Tests for windowing, means, symptom frequency and summaries.
// ABOUTME: Uses testify for assertions.
package stats

import (
	"testing"
	"time"

	"github.com/harperreed/diary/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

var today = time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

func TestWindowStart(t *testing.T) {
	assert.Equal(t, "2025-03-04", WindowWeek.Start(today))
	assert.Equal(t, "2025-03-01", WindowMonth.Start(today))

	jan2 := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-12-27", WindowWeek.Start(jan2))
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("Month")
	require.NoError(t, err)
	assert.Equal(t, WindowMonth, w)

	w, err = ParseWindow("week")
	require.NoError(t, err)
	assert.Equal(t, WindowWeek, w)

	_, err = ParseWindow("year")
	assert.Error(t, err)
}

func TestInWindow(t *testing.T) {
	logs := []models.DailyLog{
		{Date: "2025-02-28"},
		{Date: "2025-03-03"},
		{Date: "2025-03-04"},
		{Date: "2025-03-10"},
	}

	week := InWindow(logs, WindowWeek, today)
	require.Len(t, week, 2)
	assert.Equal(t, "2025-03-04", week[0].Date)

	month := InWindow(logs, WindowMonth, today)
	assert.Len(t, month, 3)
}

func TestMeanSleepIgnoresMissing(t *testing.T) {
	logs := []models.DailyLog{
		{Date: "2025-03-01", SleepHours: f(8)},
		{Date: "2025-03-02"},
		{Date: "2025-03-03", SleepHours: f(6)},
	}

	got, ok := MeanSleep(logs)
	require.True(t, ok)
	assert.InDelta(t, 7.0, got, 1e-9)
}

func TestMeanStressIgnoresMissing(t *testing.T) {
	logs := []models.DailyLog{
		{StressScore: i(4)},
		{},
		{StressScore: i(1)},
	}

	got, ok := MeanStress(logs)
	require.True(t, ok)
	assert.InDelta(t, 2.5, got, 1e-9)
}

func TestMeansAbsentWhenNoValues(t *testing.T) {
	_, ok := MeanSleep(nil)
	assert.False(t, ok)

	_, ok = MeanStress([]models.DailyLog{{Date: "2025-03-01"}})
	assert.False(t, ok)

	_, ok = MeanWater([]models.DailyLog{{Date: "2025-03-01"}})
	assert.False(t, ok)
}

func TestSymptomFrequencyExcludesNone(t *testing.T) {
	logs := []models.DailyLog{
		{Symptoms: []string{"headache"}},
		{Symptoms: []string{"none"}},
		{Symptoms: []string{"headache", "fatigue"}},
	}

	got := TopSymptoms(logs, 3)
	assert.Equal(t, []SymptomCount{
		{Symptom: "headache", Count: 2},
		{Symptom: "fatigue", Count: 1},
	}, got)
}

func TestTopSymptomsLimitAndTies(t *testing.T) {
	logs := []models.DailyLog{
		{Symptoms: []string{"cough", "fatigue", "headache", "stomachache"}},
		{Symptoms: []string{"cough"}},
	}

	got := TopSymptoms(logs, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "cough", got[0].Symptom)
	assert.Equal(t, "fatigue", got[1].Symptom)
	assert.Equal(t, "headache", got[2].Symptom)
}

func TestSymptomsCountedWithoutNumericFields(t *testing.T) {
	logs := []models.DailyLog{
		{Date: "2025-03-09", Symptoms: []string{"cough"}},
		{Date: "2025-03-10", SleepHours: f(5), Symptoms: []string{"cough"}},
	}

	s := Summarize(logs, WindowWeek, today)
	require.NotNil(t, s.MeanSleep)
	assert.InDelta(t, 5.0, *s.MeanSleep, 1e-9)
	assert.Equal(t, []SymptomCount{{Symptom: "cough", Count: 2}}, s.TopSymptoms)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, WindowMonth, today)

	assert.Equal(t, 0, s.Days)
	assert.Nil(t, s.MeanSleep)
	assert.Nil(t, s.MeanStress)
	assert.Nil(t, s.MeanWater)
	assert.Empty(t, s.TopSymptoms)
	assert.Empty(t, s.Feedback)
	assert.Equal(t, "2025-03-01", s.Start)
	assert.Equal(t, "2025-03-10", s.End)
}

func TestSummarizeWeek(t *testing.T) {
	logs := []models.DailyLog{
		{Date: "2025-03-01", SleepHours: f(4), StressScore: i(4)},
		{Date: "2025-03-08", SleepHours: f(8), StressScore: i(2), WaterGlasses: i(5)},
		{Date: "2025-03-10", SleepHours: f(7), StressScore: i(1), WaterGlasses: i(7)},
	}

	s := Summarize(logs, WindowWeek, today)
	assert.Equal(t, "week", s.Window)
	assert.Equal(t, 2, s.Days)
	assert.InDelta(t, 7.5, *s.MeanSleep, 1e-9)
	assert.InDelta(t, 1.5, *s.MeanStress, 1e-9)
	assert.InDelta(t, 6.0, *s.MeanWater, 1e-9)
}

func TestToday(t *testing.T) {
	logs := []models.DailyLog{{Date: "2025-03-09"}, {Date: "2025-03-10", Memo: "today"}}

	l, ok := Today(logs, today)
	require.True(t, ok)
	assert.Equal(t, "today", l.Memo)

	_, ok = Today(logs[:1], today)
	assert.False(t, ok)
}

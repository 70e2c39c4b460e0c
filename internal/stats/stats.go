// ABOUTME: Windowed aggregates over daily logs: means, symptom counts, summaries.
// ABOUTME: Pure functions recomputed from the full snapshot on every call.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/diary/internal/models"
)

// Window selects the date range aggregates are computed over.
type Window int

const (
	// WindowWeek covers the trailing 7 days including today.
	WindowWeek Window = iota
	// WindowMonth covers the current calendar month up to today.
	WindowMonth
)

func (w Window) String() string {
	switch w {
	case WindowWeek:
		return "week"
	case WindowMonth:
		return "month"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// ParseWindow parses "week" or "month".
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "weekly", "w":
		return WindowWeek, nil
	case "month", "monthly", "m":
		return WindowMonth, nil
	default:
		return 0, fmt.Errorf("unknown window: %s (use week or month)", s)
	}
}

// Start returns the first date (inclusive) of the window relative to today.
func (w Window) Start(today time.Time) string {
	switch w {
	case WindowMonth:
		return models.FormatDate(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()))
	default:
		return models.FormatDate(today.AddDate(0, 0, -6))
	}
}

// Since returns logs dated on or after start. Input order is preserved.
func Since(logs []models.DailyLog, start string) []models.DailyLog {
	var out []models.DailyLog
	for _, l := range logs {
		if l.Date >= start {
			out = append(out, l)
		}
	}
	return out
}

// InWindow returns the logs that fall in the window ending today.
func InWindow(logs []models.DailyLog, w Window, today time.Time) []models.DailyLog {
	return Since(logs, w.Start(today))
}

// MeanSleep averages sleep hours over logs that recorded them.
func MeanSleep(logs []models.DailyLog) (float64, bool) {
	return mean(logs, func(l models.DailyLog) (float64, bool) {
		if l.SleepHours == nil {
			return 0, false
		}
		return *l.SleepHours, true
	})
}

// MeanStress averages the stress score over logs that recorded one.
func MeanStress(logs []models.DailyLog) (float64, bool) {
	return mean(logs, func(l models.DailyLog) (float64, bool) {
		if l.StressScore == nil {
			return 0, false
		}
		return float64(*l.StressScore), true
	})
}

// MeanWater averages glasses of water over logs that recorded them.
func MeanWater(logs []models.DailyLog) (float64, bool) {
	return mean(logs, func(l models.DailyLog) (float64, bool) {
		if l.WaterGlasses == nil {
			return 0, false
		}
		return float64(*l.WaterGlasses), true
	})
}

// mean excludes missing values rather than counting them as zero.
func mean(logs []models.DailyLog, value func(models.DailyLog) (float64, bool)) (float64, bool) {
	var sum float64
	var n int
	for _, l := range logs {
		if v, ok := value(l); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// SymptomCount is how many logs recorded a symptom.
type SymptomCount struct {
	Symptom string `json:"symptom" yaml:"symptom"`
	Count   int    `json:"count" yaml:"count"`
}

// SymptomFrequency counts every symptom occurrence except "none",
// sorted by count descending then name ascending.
func SymptomFrequency(logs []models.DailyLog) []SymptomCount {
	counts := make(map[string]int)
	for _, l := range logs {
		for _, s := range l.Symptoms {
			if s == "" || s == models.SymptomNone {
				continue
			}
			counts[s]++
		}
	}

	out := make([]SymptomCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, SymptomCount{Symptom: s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Symptom < out[j].Symptom
	})
	return out
}

// TopSymptoms returns at most n entries of SymptomFrequency.
func TopSymptoms(logs []models.DailyLog, n int) []SymptomCount {
	all := SymptomFrequency(logs)
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Summary is the aggregate view of one window. Nil means absent.
type Summary struct {
	Window      string         `json:"window" yaml:"window"`
	Start       string         `json:"start" yaml:"start"`
	End         string         `json:"end" yaml:"end"`
	Days        int            `json:"days" yaml:"days"`
	MeanSleep   *float64       `json:"mean_sleep_hours" yaml:"mean_sleep_hours,omitempty"`
	MeanStress  *float64       `json:"mean_stress_score" yaml:"mean_stress_score,omitempty"`
	MeanWater   *float64       `json:"mean_water_glasses" yaml:"mean_water_glasses,omitempty"`
	TopSymptoms []SymptomCount `json:"top_symptoms" yaml:"top_symptoms"`
	Feedback    []Feedback     `json:"feedback" yaml:"feedback"`
}

// TopSymptomLimit is how many symptoms a summary reports.
const TopSymptomLimit = 3

// Summarize computes every aggregate for the window. Feedback always uses
// the month window over the whole collection.
func Summarize(logs []models.DailyLog, w Window, today time.Time) Summary {
	windowed := InWindow(logs, w, today)
	s := Summary{
		Window:      w.String(),
		Start:       w.Start(today),
		End:         models.FormatDate(today),
		Days:        len(windowed),
		TopSymptoms: TopSymptoms(windowed, TopSymptomLimit),
		Feedback:    FeedbackFor(logs, today),
	}
	if v, ok := MeanSleep(windowed); ok {
		s.MeanSleep = &v
	}
	if v, ok := MeanStress(windowed); ok {
		s.MeanStress = &v
	}
	if v, ok := MeanWater(windowed); ok {
		s.MeanWater = &v
	}
	return s
}

// Today returns the log dated today, if any.
func Today(logs []models.DailyLog, today time.Time) (models.DailyLog, bool) {
	date := models.FormatDate(today)
	for _, l := range logs {
		if l.Date == date {
			return l, true
		}
	}
	return models.DailyLog{}, false
}

// ABOUTME: Fixed-threshold feedback messages for sleep and stress averages.
// ABOUTME: At most one message per metric, computed over the current month.
package stats

import (
	"fmt"
	"time"

	"github.com/harperreed/diary/internal/models"
)

// Level classifies how an aggregate compares to its thresholds.
type Level string

const (
	LevelDeficient   Level = "deficient"
	LevelBorderline  Level = "borderline"
	LevelWellManaged Level = "well_managed"
	LevelElevated    Level = "elevated"
)

// Metric names used in feedback.
const (
	MetricSleep  = "sleep"
	MetricStress = "stress"
)

// Thresholds. Sleep is in hours, stress is the 1..4 mood score.
const (
	SleepDeficientBelow     = 6.0
	SleepBorderlineBelow    = 7.0
	StressElevatedAtOrAbove = 3.2
	StressCalmAtOrBelow     = 1.6
)

// Feedback is one message triggered by a threshold.
type Feedback struct {
	Metric  string  `json:"metric" yaml:"metric"`
	Level   Level   `json:"level" yaml:"level"`
	Value   float64 `json:"value" yaml:"value"`
	Message string  `json:"message" yaml:"message"`
}

// FeedbackFor evaluates the thresholds against the current month window.
// An empty collection, or a month with no logs, yields no feedback.
func FeedbackFor(logs []models.DailyLog, today time.Time) []Feedback {
	msgs := []Feedback{}
	if len(logs) == 0 {
		return msgs
	}
	month := InWindow(logs, WindowMonth, today)
	if len(month) == 0 {
		return msgs
	}

	if avg, ok := MeanSleep(month); ok {
		msgs = append(msgs, SleepFeedback(avg))
	}
	if avg, ok := MeanStress(month); ok {
		if fb, ok := StressFeedback(avg); ok {
			msgs = append(msgs, fb)
		}
	}
	return msgs
}

// SleepFeedback always yields exactly one message.
func SleepFeedback(avg float64) Feedback {
	fb := Feedback{Metric: MetricSleep, Value: avg}
	switch {
	case avg < SleepDeficientBelow:
		fb.Level = LevelDeficient
		fb.Message = fmt.Sprintf("Average sleep this month is %.1f hours: you're short on sleep 😴", avg)
	case avg < SleepBorderlineBelow:
		fb.Level = LevelBorderline
		fb.Message = fmt.Sprintf("Average sleep this month is %.1f hours: try to get a little more 💤", avg)
	default:
		fb.Level = LevelWellManaged
		fb.Message = fmt.Sprintf("Average sleep this month is %.1f hours: nicely managed 👏", avg)
	}
	return fb
}

// StressFeedback returns false for the middle band.
func StressFeedback(avg float64) (Feedback, bool) {
	fb := Feedback{Metric: MetricStress, Value: avg}
	switch {
	case avg >= StressElevatedAtOrAbove:
		fb.Level = LevelElevated
		fb.Message = "Stress is trending up: try light exercise, a walk, or breathing exercises 🏃"
	case avg <= StressCalmAtOrBelow:
		fb.Level = LevelWellManaged
		fb.Message = "Stress is well managed: keep your current routine 💚"
	default:
		return Feedback{}, false
	}
	return fb, true
}

// ABOUTME: DailyLog model plus the mood and symptom vocabularies.
// ABOUTME: Handles validation and normalization of a single day's entry.
package models

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// DateLayout is the canonical on-disk format for log dates.
const DateLayout = "2006-01-02"

// Mood is the option key for the mood/stress ordinal scale.
type Mood string

const (
	MoodLow    Mood = "low"
	MoodNormal Mood = "normal"
	MoodSad    Mood = "sad"
	MoodHigh   Mood = "high"
)

// AllMoods lists mood options in ascending score order.
var AllMoods = []Mood{MoodLow, MoodNormal, MoodSad, MoodHigh}

// MoodScores maps each option to its ordinal stress score.
var MoodScores = map[Mood]int{
	MoodLow:    1,
	MoodNormal: 2,
	MoodSad:    3,
	MoodHigh:   4,
}

var moodEmoji = map[int]string{1: "🙂", 2: "😐", 3: "😢", 4: "😡"}

var moodLabels = map[Mood]string{
	MoodLow:    "low",
	MoodNormal: "normal",
	MoodSad:    "sad/down",
	MoodHigh:   "high",
}

// IsValidMood checks if a string is a known mood option.
func IsValidMood(s string) bool {
	_, ok := MoodScores[Mood(s)]
	return ok
}

// Score returns the ordinal score for the mood, or 0 for unknown options.
func (m Mood) Score() int {
	return MoodScores[m]
}

// Label returns a display label such as "😢 sad/down".
func (m Mood) Label() string {
	score, ok := MoodScores[m]
	if !ok {
		return string(m)
	}
	return moodEmoji[score] + " " + moodLabels[m]
}

// MoodEmoji returns the emoji for a stress score, falling back to neutral.
func MoodEmoji(score int) string {
	if e, ok := moodEmoji[score]; ok {
		return e
	}
	return moodEmoji[2]
}

// MoodForScore returns the option key for a score.
func MoodForScore(score int) (Mood, bool) {
	for m, s := range MoodScores {
		if s == score {
			return m, true
		}
	}
	return "", false
}

// Symptom vocabulary. SymptomNone is exclusive with every other entry.
const (
	SymptomHeadache    = "headache"
	SymptomStomachache = "stomachache"
	SymptomFatigue     = "fatigue"
	SymptomCough       = "cough"
	SymptomRunnyNose   = "runny_nose"
	SymptomMusclePain  = "muscle_pain"
	SymptomNone        = "none"
)

// AllSymptoms lists the symptom vocabulary in display order.
var AllSymptoms = []string{
	SymptomHeadache, SymptomStomachache, SymptomFatigue,
	SymptomCough, SymptomRunnyNose, SymptomMusclePain, SymptomNone,
}

// IsValidSymptom checks if a string belongs to the symptom vocabulary.
func IsValidSymptom(s string) bool {
	return slices.Contains(AllSymptoms, s)
}

// Bounds accepted by the log form.
const (
	MaxSleepHours   = 24.0
	MaxWaterGlasses = 30
)

// DailyLog is one day's health entry. Date is the unique key.
type DailyLog struct {
	Date         string   `json:"date" yaml:"date"`
	SleepHours   *float64 `json:"sleep_hours" yaml:"sleep_hours,omitempty"`
	StressLabel  Mood     `json:"stress_label,omitempty" yaml:"stress_label,omitempty"`
	StressScore  *int     `json:"stress_score" yaml:"stress_score,omitempty"`
	Symptoms     []string `json:"symptoms" yaml:"symptoms,omitempty"`
	WaterGlasses *int     `json:"water_glasses" yaml:"water_glasses,omitempty"`
	Memo         string   `json:"memo" yaml:"memo,omitempty"`
}

// NewDailyLog creates an empty log for the given day.
func NewDailyLog(day time.Time) *DailyLog {
	return &DailyLog{Date: FormatDate(day), Symptoms: []string{}}
}

// WithSleep sets the hours slept.
func (l *DailyLog) WithSleep(hours float64) *DailyLog {
	l.SleepHours = &hours
	return l
}

// WithMood sets the mood label and its derived score.
func (l *DailyLog) WithMood(m Mood) *DailyLog {
	l.StressLabel = m
	if score, ok := MoodScores[m]; ok {
		l.StressScore = &score
	}
	return l
}

// WithSymptoms sets the symptom set.
func (l *DailyLog) WithSymptoms(symptoms ...string) *DailyLog {
	l.Symptoms = append([]string(nil), symptoms...)
	return l
}

// WithWater sets the number of glasses of water.
func (l *DailyLog) WithWater(glasses int) *DailyLog {
	l.WaterGlasses = &glasses
	return l
}

// WithMemo sets the free-text memo.
func (l *DailyLog) WithMemo(memo string) *DailyLog {
	l.Memo = memo
	return l
}

// HasSymptoms reports whether any real symptom (not "none") was recorded.
func (l *DailyLog) HasSymptoms() bool {
	for _, s := range l.Symptoms {
		if s != SymptomNone {
			return true
		}
	}
	return false
}

// SymptomsDisplay joins the symptoms for output, or "none".
func (l *DailyLog) SymptomsDisplay() string {
	if !l.HasSymptoms() {
		return SymptomNone
	}
	return strings.Join(l.Symptoms, " / ")
}

// Clone returns a deep copy of the log.
func (l DailyLog) Clone() DailyLog {
	c := l
	if l.SleepHours != nil {
		v := *l.SleepHours
		c.SleepHours = &v
	}
	if l.StressScore != nil {
		v := *l.StressScore
		c.StressScore = &v
	}
	if l.WaterGlasses != nil {
		v := *l.WaterGlasses
		c.WaterGlasses = &v
	}
	c.Symptoms = append([]string{}, l.Symptoms...)
	return c
}

// Normalize validates the log and rewrites it into canonical form:
// trimmed memo, deduplicated symptoms with "none" made exclusive, and a
// stress score consistent with the label.
func (l *DailyLog) Normalize() error {
	day, err := ParseDate(l.Date)
	if err != nil {
		return &ValidationError{Field: "date", Reason: fmt.Sprintf("invalid date %q (use YYYY-MM-DD)", l.Date)}
	}
	l.Date = FormatDate(day)

	if l.SleepHours != nil {
		v := *l.SleepHours
		if math.IsNaN(v) || v < 0 || v > MaxSleepHours {
			return &ValidationError{Field: "sleep_hours", Reason: fmt.Sprintf("must be between 0 and %.0f", MaxSleepHours)}
		}
	}

	if l.StressLabel != "" {
		score, ok := MoodScores[l.StressLabel]
		if !ok {
			return &ValidationError{Field: "stress_label", Reason: fmt.Sprintf("unknown mood %q", l.StressLabel)}
		}
		l.StressScore = &score
	} else if l.StressScore != nil {
		m, ok := MoodForScore(*l.StressScore)
		if !ok {
			return &ValidationError{Field: "stress_score", Reason: "must be between 1 and 4"}
		}
		l.StressLabel = m
	}

	if l.WaterGlasses != nil && (*l.WaterGlasses < 0 || *l.WaterGlasses > MaxWaterGlasses) {
		return &ValidationError{Field: "water_glasses", Reason: fmt.Sprintf("must be between 0 and %d", MaxWaterGlasses)}
	}

	symptoms := make([]string, 0, len(l.Symptoms))
	for _, s := range l.Symptoms {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !IsValidSymptom(s) {
			return &ValidationError{Field: "symptoms", Reason: fmt.Sprintf("unknown symptom %q", s)}
		}
		if s == SymptomNone {
			symptoms = []string{SymptomNone}
			break
		}
		if !slices.Contains(symptoms, s) {
			symptoms = append(symptoms, s)
		}
	}
	l.Symptoms = symptoms
	l.Memo = strings.TrimSpace(l.Memo)
	return nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate formats a time as a YYYY-MM-DD date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

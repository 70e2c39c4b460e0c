// ABOUTME: Profile and Vaccination models for the health history page.
// ABOUTME: Derives BMI from height and weight.
package models

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile bounds accepted by the profile form.
const (
	MaxHeightCM = 250.0
	MaxWeightKG = 300.0
)

// Profile holds personal details and vaccination history.
type Profile struct {
	Name         string        `json:"name" yaml:"name"`
	HeightCM     *float64      `json:"height_cm" yaml:"height_cm,omitempty"`
	WeightKG     *float64      `json:"weight_kg" yaml:"weight_kg,omitempty"`
	BMI          *float64      `json:"bmi" yaml:"bmi,omitempty"`
	BMIUpdatedAt *time.Time    `json:"bmi_updated_at,omitempty" yaml:"bmi_updated_at,omitempty"`
	Vaccinations []Vaccination `json:"vaccines" yaml:"vaccines"`
}

// Vaccination is one vaccination record.
type Vaccination struct {
	ID   uuid.UUID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
	Date string    `json:"date" yaml:"date"`
}

// NewVaccination creates a validated vaccination record with a fresh ID.
func NewVaccination(name, date string) (*Vaccination, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "vaccine name is required"}
	}
	day, err := ParseDate(date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: fmt.Sprintf("invalid date %q (use YYYY-MM-DD)", date)}
	}
	return &Vaccination{ID: uuid.New(), Name: name, Date: FormatDate(day)}, nil
}

// ComputeBMI returns weight/(height/100)^2 rounded to two decimals.
// ok is false unless both measurements are positive.
func ComputeBMI(heightCM, weightKG float64) (float64, bool) {
	if heightCM <= 0 || weightKG <= 0 {
		return 0, false
	}
	m := heightCM / 100
	return round(weightKG/(m*m), 2), true
}

// SetMeasurements validates and stores height and weight, recomputing BMI.
// Zero clears a measurement.
func (p *Profile) SetMeasurements(heightCM, weightKG float64, now time.Time) error {
	if math.IsNaN(heightCM) || heightCM < 0 || heightCM > MaxHeightCM {
		return &ValidationError{Field: "height_cm", Reason: fmt.Sprintf("must be between 0 and %.0f", MaxHeightCM)}
	}
	if math.IsNaN(weightKG) || weightKG < 0 || weightKG > MaxWeightKG {
		return &ValidationError{Field: "weight_kg", Reason: fmt.Sprintf("must be between 0 and %.0f", MaxWeightKG)}
	}

	p.HeightCM = optionalRounded(heightCM)
	p.WeightKG = optionalRounded(weightKG)
	p.BMI = nil
	if bmi, ok := ComputeBMI(heightCM, weightKG); ok {
		p.BMI = &bmi
	}
	p.BMIUpdatedAt = &now
	return nil
}

// SortedVaccinations returns the vaccinations ordered by date.
func (p Profile) SortedVaccinations() []Vaccination {
	out := append([]Vaccination(nil), p.Vaccinations...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	c := p
	if p.HeightCM != nil {
		v := *p.HeightCM
		c.HeightCM = &v
	}
	if p.WeightKG != nil {
		v := *p.WeightKG
		c.WeightKG = &v
	}
	if p.BMI != nil {
		v := *p.BMI
		c.BMI = &v
	}
	if p.BMIUpdatedAt != nil {
		v := *p.BMIUpdatedAt
		c.BMIUpdatedAt = &v
	}
	c.Vaccinations = append([]Vaccination{}, p.Vaccinations...)
	return c
}

func optionalRounded(v float64) *float64 {
	if v == 0 {
		return nil
	}
	r := round(v, 1)
	return &r
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ABOUTME: CLI command for writing a day's health log.
// ABOUTME: Replaces any existing entry for the same date.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/diary/internal/models"
	"github.com/spf13/cobra"
)

var (
	logSleep    float64
	logMood     string
	logSymptoms []string
	logWater    int
	logMemo     string
)

var logCmd = &cobra.Command{
	Use:     "log [date]",
	Aliases: []string{"add", "a"},
	Short:   "Record a day's health log",
	Long: `Record sleep, mood, symptoms, water, and a memo for one day.

The date defaults to today. It may also be "yesterday" or YYYY-MM-DD.
There is one log per date: logging a date again replaces the earlier entry.
Only the flags you pass are recorded.

MOODS:

  low 🙂, normal 😐, sad 😢, high 😡

SYMPTOMS:

  headache, stomachache, fatigue, cough, runny_nose, muscle_pain, none
  "none" cannot be combined with other symptoms; it wins if both are given.

EXAMPLES:

  diary log --sleep 7.5 --mood normal --water 6
  diary log yesterday --symptoms headache,cough --memo "long day"
  diary log 2025-03-02 --mood sad --symptoms none`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dayArg := "today"
		if len(args) == 1 {
			dayArg = args[0]
		}
		day, err := parseDay(dayArg, nowFunc())
		if err != nil {
			return err
		}

		l := models.NewDailyLog(day)
		flags := cmd.Flags()
		if flags.Changed("sleep") {
			l.WithSleep(logSleep)
		}
		if flags.Changed("mood") {
			mood := models.Mood(strings.ToLower(strings.TrimSpace(logMood)))
			if !models.IsValidMood(string(mood)) {
				return fmt.Errorf("unknown mood: %s\nValid moods: low, normal, sad, high", logMood)
			}
			l.WithMood(mood)
		}
		if flags.Changed("symptoms") {
			l.WithSymptoms(logSymptoms...)
		}
		if flags.Changed("water") {
			l.WithWater(logWater)
		}
		if flags.Changed("memo") {
			l.WithMemo(logMemo)
		}

		replaced, err := diary.Upsert(*l)
		if err != nil {
			return fmt.Errorf("failed to save log: %w", err)
		}

		saved, _ := diary.Get(l.Date)
		if replaced {
			color.Green("✓ Updated %s", saved.Date)
		} else {
			color.Green("✓ Logged %s", saved.Date)
		}
		printLog(saved)
		return nil
	},
}

// parseDay accepts "today", "yesterday", or a date in a few common layouts.
func parseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today", "":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}

	formats := []string{
		models.DateLayout,
		"2006/01/02",
		"20060102",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, strings.TrimSpace(s), now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD, today, or yesterday)", s)
}

func init() {
	logCmd.Flags().Float64Var(&logSleep, "sleep", 0, "hours slept (0-24)")
	logCmd.Flags().StringVar(&logMood, "mood", "", "mood: low, normal, sad, high")
	logCmd.Flags().StringSliceVar(&logSymptoms, "symptoms", nil, "comma-separated symptoms")
	logCmd.Flags().IntVar(&logWater, "water", 0, "glasses of water (0-30)")
	logCmd.Flags().StringVar(&logMemo, "memo", "", "free-text memo")
	rootCmd.AddCommand(logCmd)
}

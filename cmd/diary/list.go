// ABOUTME: CLI command for listing daily logs.
// ABOUTME: Supports a since-date filter and limiting results.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/diary/internal/models"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listSince string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List daily logs",
	Long: `List recent daily logs, newest first.

OUTPUT FORMAT:

  Each line shows: DATE  SLEEP  WATER  MOOD  SYMPTOMS  (MEMO)

  Missing values are shown as "-".

EXAMPLES:

  diary list                     # Show the last 20 days logged
  diary list -n 0                # Show every log
  diary list --since 2025-03-01  # Show logs from March 2025 onward`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var logs []models.DailyLog
		if listSince != "" {
			since, err := models.ParseDate(listSince)
			if err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", listSince)
			}
			logs = newestFirst(diary.Since(since))
			if listLimit > 0 && len(logs) > listLimit {
				logs = logs[:listLimit]
			}
		} else {
			logs = diary.Recent(listLimit)
		}

		if len(logs) == 0 {
			fmt.Println("No logs found.")
			return nil
		}

		for _, l := range logs {
			printLogLine(l)
		}
		return nil
	},
}

func printLogLine(l models.DailyLog) {
	faint := color.New(color.Faint)
	memo := ""
	if l.Memo != "" {
		memo = faint.Sprintf(" (%s)", truncate(l.Memo, 30))
	}
	fmt.Printf("%s %s %s %s %s%s\n",
		faint.Sprint(l.Date),
		padRight(formatSleep(l.SleepHours), 6),
		padRight(formatWater(l.WaterGlasses), 10),
		formatMood(l),
		l.SymptomsDisplay(),
		memo)
}

// printLog prints every field of a log, one per line.
func printLog(l models.DailyLog) {
	faint := color.New(color.Faint)
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("date", 9)), l.Date)
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("sleep", 9)), formatSleep(l.SleepHours))
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("mood", 9)), formatMood(l))
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("symptoms", 9)), l.SymptomsDisplay())
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("water", 9)), formatWater(l.WaterGlasses))
	if l.Memo != "" {
		fmt.Printf("  %s %s\n", faint.Sprint(padRight("memo", 9)), l.Memo)
	}
}

func formatSleep(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1fh", *v)
}

func formatWater(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d glasses", *v)
}

func formatMood(l models.DailyLog) string {
	if l.StressLabel == "" {
		return "-"
	}
	return l.StressLabel.Label()
}

// newestFirst returns a reversed copy of an ascending slice.
func newestFirst(logs []models.DailyLog) []models.DailyLog {
	out := make([]models.DailyLog, len(logs))
	for i, l := range logs {
		out[len(logs)-1-i] = l
	}
	return out
}

// truncate and padRight measure terminal cells, so wide runes
// (Hangul, emoji) are never split and columns stay aligned.
func truncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}

func padRight(s string, length int) string {
	return runewidth.FillRight(s, length)
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results (0 for all)")
	listCmd.Flags().StringVar(&listSince, "since", "", "only include logs since date (YYYY-MM-DD)")
	rootCmd.AddCommand(listCmd)
}

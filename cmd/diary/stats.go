// ABOUTME: CLI commands for windowed statistics and symptom history.
// ABOUTME: Renders aggregates and feedback in lipgloss panels.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/diary/internal/stats"
	"github.com/spf13/cobra"
)

var statsWindow string

// historyLimit is how many symptoms the history view ranks.
const historyLimit = 10

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show averages, top symptoms, and feedback",
	Long: `Show aggregates for the trailing week or the current month.

WINDOWS:

  week    the last 7 days including today (default)
  month   from the 1st of this month through today

Feedback is always based on the current month: sleep below 6h is deficient,
below 7h is borderline; an average mood score of 3.2 or more is elevated
stress, 1.6 or less is well managed.

EXAMPLES:

  diary stats
  diary stats --window month`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := stats.ParseWindow(statsWindow)
		if err != nil {
			return err
		}

		s := diary.Summary(w)
		if s.Days == 0 && len(diary.Logs()) == 0 {
			fmt.Println("No logs yet. Add one with 'diary log' first.")
			return nil
		}

		fmt.Println(renderSummary(s))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show how often each symptom was recorded",
	Long: `Rank symptoms by how many days recorded them, across every log.
"none" is not counted.

EXAMPLES:

  diary history`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts := stats.TopSymptoms(diary.Logs(), historyLimit)
		if len(counts) == 0 {
			fmt.Println("No symptoms recorded yet.")
			return nil
		}
		fmt.Println(renderSymptoms("Symptom history", counts))
		return nil
	},
}

func renderSummary(s stats.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("📊 %s  %s → %s", strings.ToUpper(s.Window[:1])+s.Window[1:], s.Start, s.End)))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(padRight(label, 14)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("days logged", fmt.Sprintf("%d", s.Days))
	row("avg sleep", formatMean(s.MeanSleep, "%.1f hours"))
	row("avg stress", formatMean(s.MeanStress, "%.2f / 4"))
	row("avg water", formatMean(s.MeanWater, "%.1f glasses"))

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("top symptoms"))
	b.WriteString("\n")
	if len(s.TopSymptoms) == 0 {
		b.WriteString("  none recorded\n")
	}
	for i, c := range s.TopSymptoms {
		b.WriteString(fmt.Sprintf("  %d. %s (%d)\n", i+1, c.Symptom, c.Count))
	}

	if len(s.Feedback) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("feedback"))
		b.WriteString("\n")
		for _, fb := range s.Feedback {
			b.WriteString("  • " + renderFeedback(fb) + "\n")
		}
	}

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderSymptoms(title string, counts []stats.SymptomCount) string {
	maxCount := counts[0].Count
	lines := make([]string, 0, len(counts)+2)
	lines = append(lines, titleStyle.Render("🤒 "+title), "")
	for _, c := range counts {
		bar := strings.Repeat("█", barWidth(c.Count, maxCount))
		lines = append(lines, fmt.Sprintf("%s %s %d",
			labelStyle.Render(padRight(c.Symptom, 12)),
			lipgloss.NewStyle().Foreground(accent).Render(bar),
			c.Count))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderFeedback(fb stats.Feedback) string {
	switch fb.Level {
	case stats.LevelDeficient, stats.LevelBorderline, stats.LevelElevated:
		return warnStyle.Render(fb.Message)
	default:
		return fb.Message
	}
}

func formatMean(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

// barWidth scales count to at most 20 cells, never below one.
func barWidth(count, maxCount int) int {
	if maxCount <= 0 {
		return 0
	}
	w := count * 20 / maxCount
	if w < 1 {
		w = 1
	}
	return w
}

func init() {
	statsCmd.Flags().StringVarP(&statsWindow, "window", "w", "week", "aggregation window: week or month")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
}

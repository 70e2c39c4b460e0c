// ABOUTME: CLI command for MBTI career recommendations.
// ABOUTME: Renders each recommended job as a lipgloss card.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/diary/internal/mbti"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:     "jobs [type]",
	Aliases: []string{"mbti"},
	Short:   "Recommend careers for an MBTI type",
	Long: `Show recommended careers for one of the 16 MBTI personality types.

Without an argument, lists every type. The type is case-insensitive.

EXAMPLES:

  diary jobs            # List the 16 types
  diary jobs INFJ       # Careers for INFJ
  diary jobs entp       # Case doesn't matter`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(renderTypeGrid(mbti.Types()))
			return nil
		}

		key := strings.ToUpper(strings.TrimSpace(args[0]))
		jobs, ok := mbti.Lookup(key)
		if !ok {
			return fmt.Errorf("unknown MBTI type: %s\nValid types: %s", args[0], strings.Join(mbti.Types(), ", "))
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("💼 Recommended careers for %s", key)))
		fmt.Println(renderJobCards(jobs))
		return nil
	},
}

func renderJobCards(jobs []mbti.Job) string {
	cards := make([]string, 0, len(jobs))
	for _, j := range jobs {
		body := titleStyle.Render(j.Emoji+" "+j.Title) + "\n" + labelStyle.Render(j.Description)
		cards = append(cards, cardStyle.Render(body))
	}

	// Two cards per row.
	rows := make([]string, 0, (len(cards)+1)/2)
	for i := 0; i < len(cards); i += 2 {
		end := min(i+2, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderTypeGrid(types []string) string {
	rows := make([]string, 0, 4)
	for i := 0; i < len(types); i += 4 {
		end := min(i+4, len(types))
		rows = append(rows, strings.Join(types[i:end], "  "))
	}
	return panelStyle.Render(titleStyle.Render("MBTI types") + "\n\n" + strings.Join(rows, "\n"))
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}

// ABOUTME: CLI commands for viewing a single day's log.
// ABOUTME: Provides show <date> and today.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/diary/internal/models"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <date>",
	Aliases: []string{"get"},
	Short:   "Show the log for a date",
	Long: `Show every field recorded for one day.

The date may be YYYY-MM-DD, "today", or "yesterday".

EXAMPLES:

  diary show 2025-03-02
  diary show yesterday`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(args[0], nowFunc())
		if err != nil {
			return err
		}
		date := models.FormatDate(day)

		l, ok := diary.Get(date)
		if !ok {
			return fmt.Errorf("no log for %s", date)
		}
		printLog(l)
		return nil
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's log",
	Long: `Show today's log, or a reminder if nothing has been logged yet.

EXAMPLES:

  diary today`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, ok := diary.Today()
		if !ok {
			fmt.Printf("Nothing logged for %s yet.\n", models.FormatDate(diary.Now()))
			fmt.Println(color.New(color.Faint).Sprint("  Try: diary log --sleep 7 --mood normal"))
			return nil
		}
		printLog(l)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(todayCmd)
}

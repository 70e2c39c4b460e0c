// ABOUTME: CLI command for deleting a day's log.
// ABOUTME: Deleting a date with no log is a no-op.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/diary/internal/models"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <date>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete the log for a date",
	Long: `Delete the log recorded for one day.

The date may be YYYY-MM-DD, "today", or "yesterday".

EXAMPLES:

  diary delete 2025-03-02    # Delete a specific day
  diary rm yesterday         # Delete yesterday's log

CAUTION:

  This permanently deletes the log. There is no undo.
  If the date has no log, nothing is changed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(args[0], nowFunc())
		if err != nil {
			return err
		}
		date := models.FormatDate(day)

		removed, err := diary.Delete(date)
		if err != nil {
			return fmt.Errorf("failed to delete log: %w", err)
		}
		if !removed {
			fmt.Printf("No log for %s.\n", date)
			return nil
		}

		color.Yellow("✗ Deleted %s", date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

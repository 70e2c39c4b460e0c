// ABOUTME: CLI commands for exporting and importing diary data.
// ABOUTME: Supports JSON, YAML, Markdown, and CSV export; JSON and CSV import.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/diary/internal/models"
	"github.com/harperreed/diary/internal/stats"
	"github.com/harperreed/diary/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export diary data",
	Long: `Export diary data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, with this month's summary)
  markdown   Markdown tables (for documentation/sharing)
  csv        One row per day: date, sleep, mood, symptoms, memo

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include logs since this date (markdown and csv)

EXAMPLES:

  diary export json                          # Export all data as JSON
  diary export json -o backup.json           # Save to file
  diary export yaml                          # Export as YAML
  diary export markdown --since 2025-03-01   # Logs from March 2025 onward
  diary export csv -o diary.csv              # Spreadsheet-friendly export`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "csv"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(args[0])

		var since *time.Time
		if exportSince != "" {
			t, err := models.ParseDate(exportSince)
			if err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
			}
			since = &t
		}

		doc := diary.Document()
		now := diary.Now()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(doc, now)
		case "yaml":
			data, err = storage.ExportYAML(doc, now)
		case "markdown", "md":
			data = []byte(storage.ExportMarkdown(doc, since, now))
		case "csv":
			logs := doc.Logs
			if since != nil {
				logs = stats.Since(logs, models.FormatDate(*since))
			}
			var buf bytes.Buffer
			err = storage.ExportCSV(&buf, logs)
			data = buf.Bytes()
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or csv)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Print(string(data))
			if len(data) > 0 && data[len(data)-1] != '\n' {
				fmt.Println()
			}
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import daily logs from JSON or CSV",
	Long: `Import daily logs from a JSON backup or a CSV file.

The format is chosen by file extension: .csv is read as CSV, anything else as
a JSON document. Older diary files with emoji or Korean labels are migrated
on the way in.

Imported logs are merged by date: a log for a date that already exists
replaces it. The profile in a JSON backup is not imported.

EXAMPLES:

  diary import backup.json
  diary import diary.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var logs []models.DailyLog
		if strings.EqualFold(filepath.Ext(filename), ".csv") {
			logs, err = storage.ImportCSV(bytes.NewReader(data))
		} else {
			var doc *models.Document
			doc, err = storage.ImportJSON(data)
			if doc != nil {
				logs = doc.Logs
			}
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		n, err := diary.UpsertAll(logs)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d logs from %s", n, filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include logs since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

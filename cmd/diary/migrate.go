// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies the whole diary from one backend to another.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/diary/internal/config"
	"github.com/harperreed/diary/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Copy the diary from one storage backend to another.

BACKENDS:

  json     ~/.local/share/diary/diary.json (default)
  sqlite   ~/.local/share/diary/diary.db

IMPORTANT:

  - The destination is replaced with the source's contents
  - A destination that already holds data is refused unless --force is given
  - Run with --dry-run first to see what would be migrated
  - Older JSON files are migrated to the current format as they are read

USAGE:

  diary migrate --dry-run                  # Preview json -> sqlite
  diary migrate                            # Copy json -> sqlite
  diary migrate --from sqlite --to json    # Copy back

AFTER MIGRATION:

  Point the CLI at the new backend in ~/.config/diary/config.json:
    { "backend": "sqlite" }
  or set DIARY_BACKEND=sqlite.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}
		for _, b := range []string{migrateFrom, migrateTo} {
			if b != config.BackendJSON && b != config.BackendSQLite {
				return fmt.Errorf("unknown backend: %s (use json or sqlite)", b)
			}
		}

		src, err := cfg.OpenBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateFrom, err)
		}
		defer func() { _ = src.Close() }()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()

			doc, err := src.Load()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", src.Location(), err)
			}
			printMigrateSummary("Would migrate", src.Location(), storage.Summarize(doc))
			return nil
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		if !migrateForce {
			nonEmpty, err := storage.IsNonEmpty(dst)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", dst.Location(), err)
			}
			if nonEmpty {
				return fmt.Errorf("%s already has data (use --force to replace it)", dst.Location())
			}
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("migrated diary",
			zap.String("from", src.Location()),
			zap.String("to", dst.Location()),
			zap.Int("logs", summary.Logs))

		color.Green("✓ Migrated %s -> %s", migrateFrom, migrateTo)
		printMigrateSummary("Migrated", dst.Location(), summary)
		return nil
	},
}

func printMigrateSummary(verb, location string, s *storage.MigrateSummary) {
	fmt.Printf("%s:\n", verb)
	fmt.Printf("  %d daily logs\n", s.Logs)
	fmt.Printf("  %d vaccinations\n", s.Vaccinations)
	if s.Profile {
		fmt.Println("  profile")
	}
	fmt.Println(color.New(color.Faint).Sprint("  " + location))
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendJSON, "source backend: json or sqlite")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendSQLite, "destination backend: json or sqlite")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "replace a destination that already has data")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}

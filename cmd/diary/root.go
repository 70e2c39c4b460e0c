// ABOUTME: Root Cobra command for diary CLI.
// ABOUTME: Loads config, builds the zap logger, and opens the journal via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"time"

	"github.com/harperreed/diary/internal/config"
	"github.com/harperreed/diary/internal/journal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfg     *config.Config
	logger  *zap.Logger
	diary   *journal.Journal
	verbose bool

	// nowFunc is the clock handed to the journal. Tests pin it.
	nowFunc = time.Now
)

// Commands that never touch the journal.
var journalFree = map[string]bool{
	"help":          true,
	"install-skill": true,
	"jobs":          true,
	"migrate":       true,
	"completion":    true,
	"version":       true,
}

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "Personal daily health journal",
	Long: `Diary is a CLI tool for keeping a one-entry-per-day health journal.

WHAT IT TRACKS:

  Daily log     sleep hours, mood/stress, symptoms, water glasses, memo
  Profile       name, height, weight, BMI, vaccination history

MOODS:

  low 🙂 (1)   normal 😐 (2)   sad 😢 (3)   high 😡 (4)

SYMPTOMS:

  headache, stomachache, fatigue, cough, runny_nose, muscle_pain, none

QUICK START:

  $ diary log --sleep 7.5 --mood normal          # Log today
  $ diary log 2025-03-02 --symptoms headache     # Log another day
  $ diary list                                   # See recent days
  $ diary stats --window month                   # Averages and feedback
  $ diary profile set --height 180 --weight 81   # Update profile and BMI
  $ diary jobs INFJ                              # Careers for a personality type

MCP INTEGRATION:

  Run 'diary mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "diary": { "command": "diary", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Entries are stored in ~/.local/share/diary/diary.json by default.
  Set "backend": "sqlite" in ~/.config/diary/config.json (or DIARY_BACKEND=sqlite)
  to use ~/.local/share/diary/diary.db instead. Every change is saved immediately.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = newLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if !needsJournal(cmd) {
			return nil
		}

		repo, err := cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		diary = journal.Open(repo, journal.WithLogger(logger), journal.WithClock(nowFunc))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeJournal()
	},
}

// Execute runs the root command. Cobra skips PersistentPostRunE when a
// command fails, so the journal is closed here as well.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeJournal(); err == nil {
		err = cerr
	}
	return err
}

// closeJournal releases the storage handle and flushes the logger.
// Safe to call more than once.
func closeJournal() error {
	var err error
	if diary != nil {
		err = diary.Close()
		diary = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

func newLogger(c *config.Config) (*zap.Logger, error) {
	level, err := c.GetLogLevel()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func needsJournal(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if journalFree[c.Name()] {
			return false
		}
	}
	return true
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
}

// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against a temp data directory and checks what was persisted.
package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/harperreed/diary/internal/models"
	"github.com/harperreed/diary/internal/storage"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "today", input: "today", want: "2025-03-10"},
		{name: "empty means today", input: "", want: "2025-03-10"},
		{name: "yesterday", input: "yesterday", want: "2025-03-09"},
		{name: "case insensitive", input: "Yesterday", want: "2025-03-09"},
		{name: "iso date", input: "2025-01-31", want: "2025-01-31"},
		{name: "slashes", input: "2025/01/31", want: "2025-01-31"},
		{name: "compact", input: "20250131", want: "2025-01-31"},
		{name: "surrounding space", input: " 2025-01-31 ", want: "2025-01-31"},
		{name: "day first", input: "31-01-2025", wantErr: true},
		{name: "impossible date", input: "2025-02-30", wantErr: true},
		{name: "random string", input: "not a date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDay(tt.input, testNow)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDay(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDay(%q) unexpected error: %v", tt.input, err)
			}
			if models.FormatDate(got) != tt.want {
				t.Errorf("parseDay(%q) = %s, want %s", tt.input, models.FormatDate(got), tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string no truncation", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact length", input: "hello", maxLen: 5, want: "hello"},
		{name: "needs truncation", input: "hello world this is a long string", maxLen: 15, want: "hello world ..."},
		{name: "empty string", input: "", maxLen: 10, want: ""},
		{name: "hangul cut on rune boundary", input: "a피곤피곤피곤피곤피곤피곤피곤피곤", maxLen: 30, want: "a피곤피곤피곤피곤피곤피곤피..."},
		{name: "hangul counts two cells", input: "피곤피곤피곤", maxLen: 8, want: "피곤..."},
		{name: "hangul fits", input: "두통", maxLen: 4, want: "두통"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.input, tt.maxLen)
			}
			if w := runewidth.StringWidth(got); w > tt.maxLen {
				t.Errorf("truncate(%q, %d) is %d cells wide", tt.input, tt.maxLen, w)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{name: "needs padding", input: "abc", length: 6, want: "abc   "},
		{name: "exact length", input: "abcdef", length: 6, want: "abcdef"},
		{name: "longer than length", input: "abcdefgh", length: 6, want: "abcdefgh"},
		{name: "empty string", input: "", length: 3, want: "   "},
		{name: "hangul pads by cells", input: "두통", length: 6, want: "두통  "},
		{name: "hangul wider than length", input: "피곤피곤", length: 6, want: "피곤피곤"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.input, tt.length); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	sleep := 7.5
	water := 6
	l := models.NewDailyLog(testNow).WithSleep(sleep).WithWater(water).WithMood(models.MoodSad)

	if got := formatSleep(l.SleepHours); got != "7.5h" {
		t.Errorf("formatSleep = %q, want 7.5h", got)
	}
	if got := formatWater(l.WaterGlasses); got != "6 glasses" {
		t.Errorf("formatWater = %q, want 6 glasses", got)
	}
	if got := formatMood(*l); got != "😢 sad/down" {
		t.Errorf("formatMood = %q, want 😢 sad/down", got)
	}

	empty := models.NewDailyLog(testNow)
	if formatSleep(empty.SleepHours) != "-" || formatWater(empty.WaterGlasses) != "-" || formatMood(*empty) != "-" {
		t.Error("Expected missing values to render as -")
	}
}

func TestBarWidth(t *testing.T) {
	if got := barWidth(5, 5); got != 20 {
		t.Errorf("barWidth(5, 5) = %d, want 20", got)
	}
	if got := barWidth(1, 100); got != 1 {
		t.Errorf("barWidth(1, 100) = %d, want 1", got)
	}
	if got := barWidth(3, 0); got != 0 {
		t.Errorf("barWidth(3, 0) = %d, want 0", got)
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "diary" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "diary")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("Expected persistent --verbose flag")
	}
}

func TestLogCmdFlags(t *testing.T) {
	for _, name := range []string{"sleep", "mood", "symptoms", "water", "memo"} {
		if logCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected --%s flag on log command", name)
		}
	}
}

func TestListCmdFlags(t *testing.T) {
	if listCmd.Flags().Lookup("since") == nil {
		t.Error("Expected --since flag on list command")
	}

	limitFlag := listCmd.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatal("Expected --limit flag on list command")
	}
	if limitFlag.DefValue != "20" {
		t.Errorf("Expected default limit 20, got %s", limitFlag.DefValue)
	}
}

func TestStatsCmdFlags(t *testing.T) {
	windowFlag := statsCmd.Flags().Lookup("window")
	if windowFlag == nil {
		t.Fatal("Expected --window flag on stats command")
	}
	if windowFlag.DefValue != "week" {
		t.Errorf("Expected default window week, got %s", windowFlag.DefValue)
	}
}

func TestCmdAliases(t *testing.T) {
	tests := []struct {
		cmd     *cobra.Command
		aliases []string
	}{
		{logCmd, []string{"add", "a"}},
		{listCmd, []string{"ls", "l"}},
		{deleteCmd, []string{"del", "rm"}},
		{showCmd, []string{"get"}},
		{jobsCmd, []string{"mbti"}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			for _, alias := range tt.aliases {
				found := false
				for _, a := range tt.cmd.Aliases {
					if a == alias {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected %s alias %q", tt.cmd.Name(), alias)
				}
			}
		})
	}
}

func TestProfileCmdSubcommands(t *testing.T) {
	assertSubcommands(t, profileCmd, "set", "show", "vaccine")
	assertSubcommands(t, vaccineCmd, "add", "rm")
}

func TestRegisteredCommands(t *testing.T) {
	assertSubcommands(t, rootCmd,
		"delete", "export", "history", "import", "install-skill", "jobs", "list",
		"log", "mcp", "migrate", "profile", "show", "stats", "tips", "today")
}

func TestExportCmdValidArgs(t *testing.T) {
	for _, format := range []string{"json", "yaml", "markdown", "csv"} {
		found := false
		for _, arg := range exportCmd.ValidArgs {
			if arg == format {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %q in export ValidArgs", format)
		}
	}
}

func TestNeedsJournal(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		want bool
	}{
		{logCmd, true},
		{vaccineAddCmd, true},
		{tipsCmd, true},
		{jobsCmd, false},
		{migrateCmd, false},
		{installSkillCmd, false},
	}

	for _, tt := range tests {
		if got := needsJournal(tt.cmd); got != tt.want {
			t.Errorf("needsJournal(%s) = %v, want %v", tt.cmd.Name(), got, tt.want)
		}
	}
}

func TestLongDescriptions(t *testing.T) {
	cmds := []*cobra.Command{
		rootCmd, logCmd, listCmd, showCmd, todayCmd, deleteCmd, statsCmd, historyCmd,
		profileCmd, profileSetCmd, vaccineAddCmd, vaccineRmCmd, jobsCmd, tipsCmd,
		exportCmd, importCmd, migrateCmd, mcpCmd, installSkillCmd,
	}
	for _, c := range cmds {
		if c.Long == "" {
			t.Errorf("Expected %s.Long to be non-empty", c.Name())
		}
	}
}

func TestAllMoodsAndSymptomsInHelp(t *testing.T) {
	for _, m := range models.AllMoods {
		if !strings.Contains(logCmd.Long, string(m)) {
			t.Errorf("Expected mood %q in log help", m)
		}
	}
	for _, s := range models.AllSymptoms {
		if !strings.Contains(logCmd.Long, s) {
			t.Errorf("Expected symptom %q in log help", s)
		}
	}
}

func TestMcpHelpListsTools(t *testing.T) {
	tools := []string{
		"log_day", "get_day", "list_logs", "delete_day", "get_stats", "get_feedback",
		"update_profile", "add_vaccination", "delete_vaccination", "lookup_jobs",
	}
	for _, tool := range tools {
		if !strings.Contains(mcpCmd.Long, tool) {
			t.Errorf("Expected tool %q in mcp help", tool)
		}
	}
}

// setupTestCLI points XDG data and config dirs at temp directories and pins
// the clock. It returns the data home.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DIARY_BACKEND", "")
	t.Setenv("DIARY_DATA_DIR", "")
	t.Setenv("DIARY_LOG_LEVEL", "")

	nowFunc = func() time.Time { return testNow }

	t.Cleanup(func() {
		// run bypasses Execute, so failed commands leave the journal open.
		_ = closeJournal()
		nowFunc = time.Now
	})

	return dataHome
}

// run resets every flag to its default and executes the root command.
func run(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := run(t, args...); err != nil {
		t.Fatalf("%s failed: %v", strings.Join(args, " "), err)
	}
}

// loadDoc reads the JSON document the CLI wrote.
func loadDoc(t *testing.T, dataHome string) *models.Document {
	t.Helper()
	fs, err := storage.OpenFile(filepath.Join(dataHome, "diary", "diary.json"))
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	doc, err := fs.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return doc
}

func findLog(t *testing.T, doc *models.Document, date string) models.DailyLog {
	t.Helper()
	i := doc.Find(date)
	if i < 0 {
		t.Fatalf("Expected a log for %s", date)
	}
	return doc.Logs[i]
}

func assertSubcommands(t *testing.T, parent *cobra.Command, names ...string) {
	t.Helper()
	have := make(map[string]bool)
	for _, c := range parent.Commands() {
		have[c.Name()] = true
	}
	for _, name := range names {
		if !have[name] {
			t.Errorf("Expected %s to have subcommand %q", parent.Name(), name)
		}
	}
}

func TestLogCmdToday(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "log", "--sleep", "7.5", "--mood", "normal", "--water", "6", "--memo", "  good day  ")

	doc := loadDoc(t, dataHome)
	if len(doc.Logs) != 1 {
		t.Fatalf("Expected 1 log, got %d", len(doc.Logs))
	}
	l := findLog(t, doc, "2025-03-10")
	if l.SleepHours == nil || *l.SleepHours != 7.5 {
		t.Errorf("Expected sleep 7.5, got %v", l.SleepHours)
	}
	if l.StressLabel != models.MoodNormal || l.StressScore == nil || *l.StressScore != 2 {
		t.Errorf("Expected mood normal/2, got %s/%v", l.StressLabel, l.StressScore)
	}
	if l.WaterGlasses == nil || *l.WaterGlasses != 6 {
		t.Errorf("Expected 6 glasses, got %v", l.WaterGlasses)
	}
	if l.Memo != "good day" {
		t.Errorf("Expected trimmed memo, got %q", l.Memo)
	}
}

func TestLogCmdOnlyChangedFields(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "log", "2025-03-02", "--memo", "rest day")

	l := findLog(t, loadDoc(t, dataHome), "2025-03-02")
	if l.SleepHours != nil {
		t.Errorf("Expected no sleep value, got %v", *l.SleepHours)
	}
	if l.WaterGlasses != nil {
		t.Errorf("Expected no water value, got %v", *l.WaterGlasses)
	}
	if l.StressScore != nil {
		t.Errorf("Expected no stress score, got %v", *l.StressScore)
	}
}

func TestLogCmdReplacesSameDate(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "log", "2025-03-02", "--sleep", "5", "--symptoms", "headache")
	mustRun(t, "log", "2025-03-02", "--sleep", "8")

	doc := loadDoc(t, dataHome)
	if len(doc.Logs) != 1 {
		t.Fatalf("Expected 1 log after replacing, got %d", len(doc.Logs))
	}
	l := doc.Logs[0]
	if *l.SleepHours != 8 {
		t.Errorf("Expected sleep 8, got %v", *l.SleepHours)
	}
	if len(l.Symptoms) != 0 {
		t.Errorf("Expected symptoms cleared by replacement, got %v", l.Symptoms)
	}
}

func TestLogCmdSymptoms(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "log", "yesterday", "--symptoms", "headache,cough,headache")
	mustRun(t, "log", "--symptoms", "fatigue,none")

	doc := loadDoc(t, dataHome)
	got := findLog(t, doc, "2025-03-09").Symptoms
	if strings.Join(got, ",") != "headache,cough" {
		t.Errorf("Expected deduplicated symptoms, got %v", got)
	}
	got = findLog(t, doc, "2025-03-10").Symptoms
	if strings.Join(got, ",") != "none" {
		t.Errorf("Expected none to be exclusive, got %v", got)
	}
}

func TestLogCmdInvalidMood(t *testing.T) {
	dataHome := setupTestCLI(t)

	err := run(t, "log", "--mood", "grumpy")
	if err == nil {
		t.Fatal("Expected error for unknown mood")
	}
	if !strings.Contains(err.Error(), "unknown mood") {
		t.Errorf("Expected 'unknown mood' error, got: %v", err)
	}
	if len(loadDoc(t, dataHome).Logs) != 0 {
		t.Error("Expected nothing saved")
	}
}

func TestLogCmdValidationError(t *testing.T) {
	dataHome := setupTestCLI(t)

	tests := [][]string{
		{"log", "--sleep", "25"},
		{"log", "--water", "-1"},
		{"log", "--symptoms", "sneezing"},
	}
	for _, args := range tests {
		err := run(t, args...)
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("%v: expected validation error, got %v", args, err)
		}
	}
	if len(loadDoc(t, dataHome).Logs) != 0 {
		t.Error("Expected nothing saved after validation failures")
	}
}

func TestLogCmdInvalidDate(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "log", "31-12-2025", "--sleep", "7"); err == nil {
		t.Error("Expected error for invalid date")
	}
}

func TestListCmdWithLogs(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "log", "2025-03-01", "--sleep", "7", "--memo", "a very long memo that will certainly be truncated")
	mustRun(t, "log", "2025-03-02", "--mood", "high")

	for _, args := range [][]string{
		{"list"},
		{"list", "-n", "1"},
		{"list", "-n", "0"},
		{"list", "--since", "2025-03-02"},
	} {
		if err := run(t, args...); err != nil {
			t.Errorf("%v failed: %v", args, err)
		}
	}
}

func TestListCmdEmpty(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "list"); err != nil {
		t.Errorf("list on empty diary failed: %v", err)
	}
}

func TestListCmdInvalidSince(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "list", "--since", "March")
	if err == nil || !strings.Contains(err.Error(), "invalid date format") {
		t.Errorf("Expected invalid date format error, got %v", err)
	}
}

func TestNewestFirst(t *testing.T) {
	logs := []models.DailyLog{{Date: "2025-03-01"}, {Date: "2025-03-02"}, {Date: "2025-03-03"}}
	got := newestFirst(logs)
	if got[0].Date != "2025-03-03" || got[2].Date != "2025-03-01" {
		t.Errorf("Expected reversed order, got %v", got)
	}
	if logs[0].Date != "2025-03-01" {
		t.Error("Expected input to be left unchanged")
	}
}

func TestShowCmd(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "log", "2025-03-02", "--sleep", "6")

	if err := run(t, "show", "2025-03-02"); err != nil {
		t.Errorf("show failed: %v", err)
	}

	err := run(t, "show", "2025-03-03")
	if err == nil || !strings.Contains(err.Error(), "no log for 2025-03-03") {
		t.Errorf("Expected 'no log' error, got %v", err)
	}
}

func TestTodayCmd(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "today"); err != nil {
		t.Errorf("today with no log failed: %v", err)
	}

	mustRun(t, "log", "--sleep", "8")
	if err := run(t, "today"); err != nil {
		t.Errorf("today failed: %v", err)
	}
}

func TestDeleteCmd(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "log", "2025-03-01", "--sleep", "7")
	mustRun(t, "log", "2025-03-02", "--sleep", "8")

	mustRun(t, "delete", "2025-03-01")

	doc := loadDoc(t, dataHome)
	if len(doc.Logs) != 1 || doc.Logs[0].Date != "2025-03-02" {
		t.Errorf("Expected only 2025-03-02 to remain, got %v", doc.Logs)
	}
}

func TestDeleteCmdMissingDateIsNoop(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "log", "2025-03-02", "--sleep", "8")

	if err := run(t, "rm", "2025-01-01"); err != nil {
		t.Errorf("Expected no error deleting a missing date, got %v", err)
	}
	if len(loadDoc(t, dataHome).Logs) != 1 {
		t.Error("Expected existing log to be untouched")
	}
}

func TestStatsCmd(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "stats"); err != nil {
		t.Errorf("stats on empty diary failed: %v", err)
	}

	mustRun(t, "log", "2025-03-08", "--sleep", "5", "--mood", "high", "--symptoms", "headache")
	mustRun(t, "log", "2025-03-09", "--sleep", "6", "--mood", "sad", "--symptoms", "headache,cough")

	for _, window := range []string{"week", "month", "w", "monthly"} {
		if err := run(t, "stats", "--window", window); err != nil {
			t.Errorf("stats --window %s failed: %v", window, err)
		}
	}
}

func TestStatsCmdInvalidWindow(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "stats", "--window", "year")
	if err == nil || !strings.Contains(err.Error(), "unknown window") {
		t.Errorf("Expected unknown window error, got %v", err)
	}
}

func TestHistoryCmd(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "history"); err != nil {
		t.Errorf("history on empty diary failed: %v", err)
	}

	mustRun(t, "log", "2025-01-08", "--symptoms", "fatigue")
	mustRun(t, "log", "2025-03-09", "--symptoms", "fatigue,cough")
	if err := run(t, "history"); err != nil {
		t.Errorf("history failed: %v", err)
	}
}

func TestProfileSetCmd(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "profile", "set", "--name", "Harper", "--height", "180", "--weight", "81")

	p := loadDoc(t, dataHome).Profile
	if p.Name != "Harper" {
		t.Errorf("Expected name Harper, got %q", p.Name)
	}
	if p.BMI == nil || *p.BMI != 25 {
		t.Errorf("Expected BMI 25, got %v", p.BMI)
	}

	// Clearing weight drops BMI but keeps the height.
	mustRun(t, "profile", "set", "--weight", "0")

	p = loadDoc(t, dataHome).Profile
	if p.BMI != nil {
		t.Errorf("Expected BMI cleared, got %v", *p.BMI)
	}
	if p.HeightCM == nil || *p.HeightCM != 180 {
		t.Errorf("Expected height kept at 180, got %v", p.HeightCM)
	}
	if p.Name != "Harper" {
		t.Errorf("Expected name kept, got %q", p.Name)
	}
}

func TestExecuteClosesJournalOnError(t *testing.T) {
	setupTestCLI(t)
	t.Setenv("DIARY_BACKEND", "sqlite")

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"show", "2025-01-01"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := Execute()
	if err == nil || !strings.Contains(err.Error(), "no log for 2025-01-01") {
		t.Fatalf("Expected 'no log' error, got %v", err)
	}
	if diary != nil {
		t.Error("Expected journal closed after a failed command")
	}
}

func TestCloseJournalIdempotent(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "list")

	if err := closeJournal(); err != nil {
		t.Errorf("closeJournal after PostRun failed: %v", err)
	}
	if err := closeJournal(); err != nil {
		t.Errorf("second closeJournal failed: %v", err)
	}
}

func TestProfileSetCmdRequiresFlags(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "profile", "set")
	if err == nil || !strings.Contains(err.Error(), "nothing to update") {
		t.Errorf("Expected 'nothing to update' error, got %v", err)
	}
}

func TestProfileSetCmdOutOfRange(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "profile", "set", "--height", "300")
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestProfileSetCmdRejectsNaN(t *testing.T) {
	dataHome := setupTestCLI(t)

	err := run(t, "profile", "set", "--height", "NaN")
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataHome, "diary", "diary.json")); !os.IsNotExist(err) {
		t.Errorf("Expected nothing written, stat err = %v", err)
	}
}

func TestProfileShowCmd(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "profile"); err != nil {
		t.Errorf("profile failed: %v", err)
	}
	if err := run(t, "profile", "show"); err != nil {
		t.Errorf("profile show failed: %v", err)
	}
}

func TestVaccineCmds(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "profile", "vaccine", "add", "Flu", "2024-10-15")
	mustRun(t, "profile", "vaccine", "add", "Hepatitis B", "2024-03-01")

	vs := loadDoc(t, dataHome).Profile.Vaccinations
	if len(vs) != 2 {
		t.Fatalf("Expected 2 vaccinations, got %d", len(vs))
	}

	prefix := vs[0].ID.String()[:8]
	mustRun(t, "profile", "vaccine", "rm", prefix)

	vs = loadDoc(t, dataHome).Profile.Vaccinations
	if len(vs) != 1 || vs[0].Name != "Hepatitis B" {
		t.Errorf("Expected only Hepatitis B to remain, got %v", vs)
	}
}

func TestVaccineAddInvalid(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "profile", "vaccine", "add", "Flu", "last year"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for bad date, got %v", err)
	}
	if err := run(t, "profile", "vaccine", "add", "  ", "2024-10-15"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for empty name, got %v", err)
	}
}

func TestVaccineRmNotFound(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "profile", "vaccine", "rm", "deadbeef")
	if err == nil || !strings.Contains(err.Error(), "vaccination not found") {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestJobsCmd(t *testing.T) {
	setupTestCLI(t)

	for _, args := range [][]string{{"jobs"}, {"jobs", "INFJ"}, {"jobs", "entp"}, {"mbti", "ISTJ"}} {
		if err := run(t, args...); err != nil {
			t.Errorf("%v failed: %v", args, err)
		}
	}
}

func TestJobsCmdUnknownType(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "jobs", "ABCD")
	if err == nil || !strings.Contains(err.Error(), "unknown MBTI type") {
		t.Errorf("Expected unknown type error, got %v", err)
	}
}

func TestTipsCmd(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "log", "2025-03-09", "--sleep", "5", "--mood", "high")

	if err := run(t, "tips"); err != nil {
		t.Errorf("tips failed: %v", err)
	}
	if err := run(t, "tips", "Sleep"); err != nil {
		t.Errorf("tips sleep failed: %v", err)
	}
	if err := run(t, "tips", "diet"); err == nil {
		t.Error("Expected error for unknown topic")
	}
}

func TestTipTopicsComplete(t *testing.T) {
	if len(tipOrder) != len(tipTopics) {
		t.Fatalf("tipOrder has %d topics, tipTopics has %d", len(tipOrder), len(tipTopics))
	}
	for _, key := range tipOrder {
		topic, ok := tipTopics[key]
		if !ok {
			t.Errorf("Expected topic %q", key)
			continue
		}
		if topic.Title == "" || len(topic.Tips) == 0 {
			t.Errorf("Expected topic %q to have a title and tips", key)
		}
		if !strings.Contains(tipsCmd.Long, key) {
			t.Errorf("Expected topic %q in tips help", key)
		}
	}
}

func TestExportCmdFormats(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "log", "2025-03-02", "--sleep", "7.5", "--mood", "sad", "--symptoms", "headache,cough", "--memo", "long day")
	mustRun(t, "profile", "set", "--name", "Harper", "--height", "180", "--weight", "81")

	outDir := t.TempDir()
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"tool": "diary"`},
		{"yaml", "this_month:"},
		{"markdown", "## Daily Logs"},
		{"csv", `2025-03-02,7.5,sad,"headache,cough",long day`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := filepath.Join(outDir, "export."+tt.format)
			mustRun(t, "export", tt.format, "-o", out)

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("Failed to read export: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("Expected %s export to contain %q, got:\n%s", tt.format, tt.want, data)
			}
		})
	}
}

func TestExportCmdSince(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "log", "2025-02-01", "--memo", "old")
	mustRun(t, "log", "2025-03-02", "--memo", "new")

	out := filepath.Join(t.TempDir(), "since.csv")
	mustRun(t, "export", "csv", "--since", "2025-03-01", "-o", out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if strings.Contains(string(data), "2025-02-01") {
		t.Error("Expected logs before --since to be excluded")
	}
	if !strings.Contains(string(data), "2025-03-02") {
		t.Error("Expected logs after --since to be included")
	}
}

func TestExportCmdToStdout(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "export", "markdown"); err != nil {
		t.Errorf("export to stdout failed: %v", err)
	}
}

func TestExportCmdErrors(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "export", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}

	err = run(t, "export", "markdown", "--since", "yesterday-ish")
	if err == nil || !strings.Contains(err.Error(), "invalid date format") {
		t.Errorf("Expected invalid date format error, got %v", err)
	}
}

func TestImportCmdCSV(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "log", "2025-03-02", "--memo", "before import")

	csvPath := filepath.Join(t.TempDir(), "logs.csv")
	content := "date,sleep,mood,symptoms,memo\n" +
		"2025-03-01,6.5,😡 높음,두통,from csv\n" +
		"2025-03-02,8,low,none,replaced\n"
	if err := os.WriteFile(csvPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write csv: %v", err)
	}

	mustRun(t, "import", csvPath)

	doc := loadDoc(t, dataHome)
	if len(doc.Logs) != 2 {
		t.Fatalf("Expected 2 logs after import, got %d", len(doc.Logs))
	}
	first := findLog(t, doc, "2025-03-01")
	if first.StressLabel != models.MoodHigh {
		t.Errorf("Expected legacy mood migrated to high, got %q", first.StressLabel)
	}
	if strings.Join(first.Symptoms, ",") != models.SymptomHeadache {
		t.Errorf("Expected legacy symptom migrated to headache, got %v", first.Symptoms)
	}
	if findLog(t, doc, "2025-03-02").Memo != "replaced" {
		t.Error("Expected imported row to replace the existing date")
	}
}

func TestImportCmdJSONRoundTrip(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "log", "2025-03-01", "--sleep", "7")
	mustRun(t, "log", "2025-03-02", "--sleep", "8")

	backup := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "export", "json", "-o", backup)

	// Import into a fresh data directory.
	dataHome := setupTestCLI(t)
	mustRun(t, "import", backup)

	doc := loadDoc(t, dataHome)
	if len(doc.Logs) != 2 {
		t.Errorf("Expected 2 logs after import, got %d", len(doc.Logs))
	}
}

func TestImportCmdErrors(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "import", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	err := run(t, "import", bad)
	if err == nil || !strings.Contains(err.Error(), "import failed") {
		t.Errorf("Expected import failure, got %v", err)
	}
}

func TestMigrateCmdDryRun(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "log", "2025-03-02", "--sleep", "7")
	mustRun(t, "migrate", "--dry-run")

	db, err := storage.Open(filepath.Join(dataHome, "diary", "diary.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	nonEmpty, err := storage.IsNonEmpty(db)
	if err != nil {
		t.Fatalf("IsNonEmpty failed: %v", err)
	}
	if nonEmpty {
		t.Error("Expected dry run to leave sqlite empty")
	}
}

func TestMigrateCmdToSQLite(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "log", "2025-03-01", "--sleep", "7", "--symptoms", "cough")
	mustRun(t, "log", "2025-03-02", "--sleep", "8")
	mustRun(t, "profile", "vaccine", "add", "Flu", "2024-10-15")
	mustRun(t, "migrate")

	db, err := storage.Open(filepath.Join(dataHome, "diary", "diary.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	doc, err := db.Load()
	db.Close()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Logs) != 2 {
		t.Errorf("Expected 2 migrated logs, got %d", len(doc.Logs))
	}
	if len(doc.Profile.Vaccinations) != 1 {
		t.Errorf("Expected 1 migrated vaccination, got %d", len(doc.Profile.Vaccinations))
	}

	// A second migration refuses to replace data without --force.
	mustRun(t, "log", "2025-03-03", "--sleep", "6")
	err = run(t, "migrate")
	if err == nil || !strings.Contains(err.Error(), "already has data") {
		t.Errorf("Expected refusal for non-empty destination, got %v", err)
	}

	mustRun(t, "migrate", "--force")

	db, err = storage.Open(filepath.Join(dataHome, "diary", "diary.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()
	doc, err = db.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Logs) != 3 {
		t.Errorf("Expected 3 logs after forced migration, got %d", len(doc.Logs))
	}
}

func TestMigrateCmdInvalidBackends(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "migrate", "--from", "json", "--to", "json")
	if err == nil || !strings.Contains(err.Error(), "both json") {
		t.Errorf("Expected same-backend error, got %v", err)
	}

	err = run(t, "migrate", "--to", "postgres")
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}
}

func TestSQLiteBackendFromEnv(t *testing.T) {
	dataHome := setupTestCLI(t)
	t.Setenv("DIARY_BACKEND", "sqlite")

	mustRun(t, "log", "2025-03-02", "--sleep", "7", "--mood", "low")

	db, err := storage.Open(filepath.Join(dataHome, "diary", "diary.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()
	doc, err := db.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Logs) != 1 || doc.Logs[0].StressLabel != models.MoodLow {
		t.Errorf("Expected the log in sqlite, got %v", doc.Logs)
	}

	if _, err := os.Stat(filepath.Join(dataHome, "diary", "diary.json")); !os.IsNotExist(err) {
		t.Error("Expected no json file when the sqlite backend is selected")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	setupTestCLI(t)
	t.Setenv("DIARY_LOG_LEVEL", "chatty")

	err := run(t, "list")
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("Expected invalid log level error, got %v", err)
	}
}

func TestVerboseFlag(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "list", "--verbose"); err != nil {
		t.Errorf("list --verbose failed: %v", err)
	}
}

func TestInstallSkillFunction(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	skillSkipConfirm = true
	defer func() { skillSkipConfirm = false }()

	if err := installSkill(); err != nil {
		t.Errorf("installSkill failed: %v", err)
	}

	skillPath := filepath.Join(tmpDir, ".claude", "skills", "diary", "SKILL.md")
	if _, err := os.Stat(skillPath); os.IsNotExist(err) {
		t.Error("Expected skill file to be created")
	}
}

func TestInstallSkillOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	skillDir := filepath.Join(tmpDir, ".claude", "skills", "diary")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	skillPath := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(skillPath, []byte("old content"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	skillSkipConfirm = true
	defer func() { skillSkipConfirm = false }()

	if err := installSkill(); err != nil {
		t.Errorf("installSkill overwrite failed: %v", err)
	}

	content, _ := os.ReadFile(skillPath)
	if string(content) == "old content" {
		t.Error("Expected skill file to be overwritten")
	}
}

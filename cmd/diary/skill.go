// ABOUTME: install-skill command for the diary assistant skill.
// ABOUTME: Writes the embedded SKILL.md under ~/.claude/skills/diary.

package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var (
	skillSkipConfirm bool

	// skillInput answers the confirmation prompt.
	skillInput io.Reader = os.Stdin
)

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install the diary skill for Claude Code",
	Long: `Copy the bundled skill definition to ~/.claude/skills/diary/SKILL.md.

The skill tells the assistant which diary MCP tools exist and which
moods and symptoms a log accepts. An existing file is replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return installSkill()
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "skills", "diary", "SKILL.md"), nil
}

func installSkill() error {
	path, err := skillPath()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("diary skill") + "\n")
	b.WriteString(labelStyle.Render("target ") + path)
	if _, err := os.Stat(path); err == nil {
		b.WriteString("\n" + warnStyle.Render("replaces the installed copy"))
	}
	fmt.Println(panelStyle.Render(b.String()))

	if !skillSkipConfirm && !confirm("Install? [y/N] ") {
		fmt.Println("Skipped.")
		return nil
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	color.Green("✓ Installed %s", path)
	return nil
}

// confirm reads one line from skillInput; anything but y/yes is a no.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(skillInput).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/diary/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and update your diary through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "diary": {
        "command": "diary",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  log_day             Record or replace a day's log
  get_day             Get the log for a date
  list_logs           List recent logs
  delete_day          Delete the log for a date
  get_stats           Weekly or monthly averages and top symptoms
  get_feedback        Sleep and stress feedback for this month
  update_profile      Set name, height, or weight
  add_vaccination     Record a vaccination
  delete_vaccination  Remove a vaccination by ID prefix
  lookup_jobs         Recommended careers for an MBTI type

AVAILABLE RESOURCES:

  diary://today     Today's log
  diary://recent    The 10 most recent logs
  diary://summary   Weekly and monthly summaries
  diary://profile   Profile with BMI and vaccinations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(diary, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

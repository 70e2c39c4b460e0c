// ABOUTME: MCP resource implementations for the health diary.
// ABOUTME: Provides diary://today, diary://recent, diary://summary and diary://profile.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/diary/internal/models"
	"github.com/harperreed/diary/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// recentLimit is how many logs diary://recent returns.
const recentLimit = 10

func (s *Server) registerResources() {
	// diary://today - today's log, if any
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "diary://today",
		Name:        "Today's Log",
		Description: "The health log recorded for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// diary://recent - last 10 logs
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "diary://recent",
		Name:        "Recent Logs",
		Description: "The 10 most recent daily logs, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// diary://summary - weekly and monthly aggregates with feedback
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "diary://summary",
		Name:        "Diary Summary",
		Description: "Weekly and monthly averages, top symptoms, and feedback",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// diary://profile - profile with BMI and vaccinations
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "diary://profile",
		Name:        "Health Profile",
		Description: "Height, weight, BMI and vaccination history",
		MIMEType:    "application/json",
	}, s.handleProfileResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.FormatDate(s.journal.Now())

	result := map[string]interface{}{
		"date":   today,
		"logged": false,
	}
	if l, ok := s.journal.Today(); ok {
		result["logged"] = true
		result["log"] = newLogView(l)
	}

	return jsonResource("diary://today", result)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	logs := s.journal.Recent(recentLimit)

	views := make([]logView, 0, len(logs))
	for _, l := range logs {
		views = append(views, newLogView(l))
	}

	return jsonResource("diary://recent", map[string]interface{}{
		"logs":  views,
		"count": len(views),
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]interface{}{
		"generated_at": s.journal.Now().Format(time.RFC3339),
		"week":         s.journal.Summary(stats.WindowWeek),
		"month":        s.journal.Summary(stats.WindowMonth),
		"total_logs":   len(s.journal.Logs()),
	}

	return jsonResource("diary://summary", result)
}

func (s *Server) handleProfileResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource("diary://profile", newProfileOutput(s.journal.Profile()))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

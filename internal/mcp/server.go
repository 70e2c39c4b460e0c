// ABOUTME: MCP server setup for the health diary.
// ABOUTME: Wraps the MCP server around the shared Journal store.
package mcp

import (
	"context"

	"github.com/harperreed/diary/internal/journal"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with journal access.
type Server struct {
	mcpServer *mcp.Server
	journal   *journal.Journal
	logger    *zap.Logger
}

// NewServer creates a new MCP server over the given journal.
func NewServer(j *journal.Journal, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "diary",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		journal:   j,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.String("location", s.journal.Location()))
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
)

// Handlers for the sync binary family. Same pipeline as the CLI family;
// only the execution target differs, resolved by Command.Family.

func (s *Server) handleVaultSync(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.runBareCommand(ctx, domain.CmdSync, req)
}

func (s *Server) handleSyncStatus(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.runBareCommand(ctx, domain.CmdSyncStatus, req)
}

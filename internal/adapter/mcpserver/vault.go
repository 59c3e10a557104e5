package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/security"
)

// Handlers for vault-level listings and metadata.

func (s *Server) handleListTags(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	r := domain.Request{Command: domain.CmdTags, Vault: vault}
	if req.GetBool("counts", false) {
		r.Flags = append(r.Flags, domain.Flag{Name: "counts", Value: true})
	}
	return s.run(ctx, r)
}

func (s *Server) handleListFiles(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	r := domain.Request{Command: domain.CmdListFiles, Vault: vault}

	if f := req.GetString("folder", ""); f != "" {
		folder, err := security.ValidatePathToken("folder", f)
		if err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "folder", Value: string(folder)})
	}
	if e := req.GetString("ext", ""); e != "" {
		ext, err := security.ValidateExtension("ext", e)
		if err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "ext", Value: string(ext)})
	}
	if req.GetBool("recursive", false) {
		r.Flags = append(r.Flags, domain.Flag{Name: "recursive", Value: true})
	}
	return s.run(ctx, r)
}

func (s *Server) handleListFolders(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	r := domain.Request{Command: domain.CmdListFolders, Vault: vault}
	if f := req.GetString("folder", ""); f != "" {
		folder, err := security.ValidatePathToken("folder", f)
		if err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "folder", Value: string(folder)})
	}
	return s.run(ctx, r)
}

func (s *Server) handleListTemplates(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.runBareCommand(ctx, domain.CmdListTemplates, req)
}

func (s *Server) handleVaultInfo(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.runBareCommand(ctx, domain.CmdVaultInfo, req)
}

// runBareCommand serves the operations that take no input beyond the
// optional vault override.
func (s *Server) runBareCommand(ctx context.Context, cmd domain.Command, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	return s.run(ctx, domain.Request{Command: cmd, Vault: vault})
}

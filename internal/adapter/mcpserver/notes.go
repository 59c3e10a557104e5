package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/security"
)

// Handlers for the note-centric operations. Each one validates every
// caller-supplied value through a terminal contract, assembles the Request,
// and hands it to the shared run pipeline. Command names are fixed here,
// never derived from input.

func (s *Server) handleReadNote(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	file, err := security.ValidatePathToken("file", req.GetString("file", ""))
	if err != nil {
		return "", err
	}
	return s.run(ctx, domain.Request{
		Command:    domain.CmdRead,
		Positional: []string{"file=" + string(file)},
		Vault:      vault,
	})
}

func (s *Server) handleSearchNotes(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	query, err := security.ValidateContent("query", req.GetString("query", ""))
	if err != nil {
		return "", err
	}

	r := domain.Request{
		Command:    domain.CmdSearch,
		Positional: []string{"query=" + string(query)},
		Vault:      vault,
	}
	if p := req.GetString("path", ""); p != "" {
		tok, err := security.ValidatePathToken("path", p)
		if err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "path", Value: string(tok)})
	}
	if n := req.GetInt("context", 0); n != 0 {
		if err := security.ValidatePositive("context", n); err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "context", Value: n})
	}
	if n := req.GetInt("limit", 0); n != 0 {
		if err := security.ValidatePositive("limit", n); err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "limit", Value: n})
	}
	return s.run(ctx, r)
}

func (s *Server) handleNoteOutline(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.runFileCommand(ctx, domain.CmdOutline, req)
}

func (s *Server) handleBacklinks(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.runFileCommand(ctx, domain.CmdBacklinks, req)
}

func (s *Server) handleOutgoingLinks(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.runFileCommand(ctx, domain.CmdLinks, req)
}

// runFileCommand serves the operations whose only input is a note path.
func (s *Server) runFileCommand(ctx context.Context, cmd domain.Command, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	file, err := security.ValidatePathToken("file", req.GetString("file", ""))
	if err != nil {
		return "", err
	}
	return s.run(ctx, domain.Request{
		Command:    cmd,
		Positional: []string{"file=" + string(file)},
		Vault:      vault,
	})
}

func (s *Server) handleCreateNote(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	file, err := security.ValidatePathToken("file", req.GetString("file", ""))
	if err != nil {
		return "", err
	}

	r := domain.Request{
		Command:    domain.CmdCreate,
		Positional: []string{"file=" + string(file)},
		Vault:      vault,
	}
	if c := req.GetString("content", ""); c != "" {
		content, err := security.ValidateContent("content", c)
		if err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "content", Value: string(content)})
	}
	if t := req.GetString("template", ""); t != "" {
		tmpl, err := security.ValidatePathToken("template", t)
		if err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "template", Value: string(tmpl)})
	}
	if req.GetBool("overwrite", false) {
		r.Flags = append(r.Flags, domain.Flag{Name: "overwrite", Value: true})
	}
	return s.run(ctx, r)
}

func (s *Server) handleAppendToNote(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.runContentEdit(ctx, domain.CmdAppend, req)
}

func (s *Server) handlePrependToNote(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.runContentEdit(ctx, domain.CmdPrepend, req)
}

// runContentEdit serves append and prepend, which share a shape: a note
// path, required content, and an optional create-if-missing flag.
func (s *Server) runContentEdit(ctx context.Context, cmd domain.Command, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	file, err := security.ValidatePathToken("file", req.GetString("file", ""))
	if err != nil {
		return "", err
	}
	content, err := security.ValidateContent("content", req.GetString("content", ""))
	if err != nil {
		return "", err
	}

	r := domain.Request{
		Command:    cmd,
		Positional: []string{"file=" + string(file), "content=" + string(content)},
		Vault:      vault,
	}
	if req.GetBool("create_if_missing", false) {
		r.Flags = append(r.Flags, domain.Flag{Name: "create-if-missing", Value: true})
	}
	return s.run(ctx, r)
}

func (s *Server) handleSetProperty(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	file, err := security.ValidatePathToken("file", req.GetString("file", ""))
	if err != nil {
		return "", err
	}
	name, err := security.ValidatePropertyName("name", req.GetString("name", ""))
	if err != nil {
		return "", err
	}
	value, err := security.ValidateContent("value", req.GetString("value", ""))
	if err != nil {
		return "", err
	}
	return s.run(ctx, domain.Request{
		Command: domain.CmdPropertySet,
		Positional: []string{
			"file=" + string(file),
			"name=" + string(name),
			"value=" + string(value),
		},
		Vault: vault,
	})
}

func (s *Server) handleUpdateTask(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	file, err := security.ValidatePathToken("file", req.GetString("file", ""))
	if err != nil {
		return "", err
	}
	line := req.GetInt("line", 0)
	if err := security.ValidatePositive("line", line); err != nil {
		return "", err
	}
	status := req.GetString("status", "")
	if status == "" {
		return "", domain.NewDomainError("mcpserver.handleUpdateTask",
			domain.ErrInvalidInput, "status is required")
	}
	if err := security.ValidateEnum("status", status, "todo", "done", "cancelled"); err != nil {
		return "", err
	}
	return s.run(ctx, domain.Request{
		Command:    domain.CmdTaskUpdate,
		Positional: []string{"file=" + string(file)},
		Flags: []domain.Flag{
			{Name: "line", Value: line},
			{Name: "status", Value: status},
		},
		Vault: vault,
	})
}

func (s *Server) handleListTasks(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	vault, err := vaultOverride(req)
	if err != nil {
		return "", err
	}
	r := domain.Request{Command: domain.CmdTasks, Vault: vault}

	if status := req.GetString("status", ""); status != "" {
		if err := security.ValidateEnum("status", status, "todo", "done", "all"); err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "status", Value: status})
	}
	if p := req.GetString("path", ""); p != "" {
		tok, err := security.ValidatePathToken("path", p)
		if err != nil {
			return "", err
		}
		r.Flags = append(r.Flags, domain.Flag{Name: "path", Value: string(tok)})
	}
	return s.run(ctx, r)
}

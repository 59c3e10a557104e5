// Package mcpserver registers the operation catalogue as MCP tools and runs
// every call through the same pipeline: schema gate, validation contracts,
// argument building, delegated execution, output normalization, audit.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kaptinlin/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/infra/config"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/infra/tracer"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/security"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/usecase/delegate"
)

const (
	serverName    = "obsidian-cli-mcp"
	serverVersion = "1.0.0"
)

// Server owns the MCP tool surface.
type Server struct {
	cfg    *config.Config
	runner *delegate.Runner
	audit  *security.FileAuditLogger // nil disables auditing
	logger *slog.Logger
	mcp    *server.MCPServer
}

// toolHandler produces the textual result of one tool call, or a classified
// error. The surrounding pipeline turns either into an MCP result.
type toolHandler func(ctx context.Context, req mcp.CallToolRequest) (string, error)

// New assembles the MCP server and registers the tool catalogue.
func New(cfg *config.Config, runner *delegate.Runner, audit *security.FileAuditLogger, logger *slog.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		runner: runner,
		audit:  audit,
		logger: logger,
		mcp: server.NewMCPServer(serverName, serverVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// addTool compiles the tool's input schema and wraps the handler with the
// shared call pipeline.
func (s *Server) addTool(tool mcp.Tool, command domain.Command, h toolHandler) error {
	raw, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return fmt.Errorf("marshal schema for %q: %w", tool.Name, err)
	}
	compiled, err := jsonschema.NewCompiler().Compile(raw)
	if err != nil {
		return fmt.Errorf("compile schema for %q: %w", tool.Name, err)
	}

	s.mcp.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := newCallID()
		start := time.Now()

		ctx, span := tracer.StartSpan(ctx, "tool."+tool.Name,
			trace.WithAttributes(
				tracer.StringAttr("tool.name", tool.Name),
				tracer.StringAttr("tool.command", string(command)),
				tracer.StringAttr("call.id", callID),
			))
		defer span.End()

		if err := validateArgs(compiled, req); err != nil {
			tracer.RecordError(span, err)
			s.finish(ctx, callID, tool.Name, command, start, err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := h(ctx, req)
		if err != nil {
			tracer.RecordError(span, err)
			s.logger.Warn("tool call failed",
				"tool", tool.Name, "call_id", callID,
				"code", domain.ErrorCodeOf(err), "error", err)
			s.finish(ctx, callID, tool.Name, command, start, err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		tracer.SetOK(span)
		s.logger.Debug("tool call completed",
			"tool", tool.Name, "call_id", callID, "duration", time.Since(start))
		s.finish(ctx, callID, tool.Name, command, start, nil)
		return mcp.NewToolResultText(text), nil
	})
	return nil
}

// run builds the argument vector for req and delegates it to the right
// binary family, returning the normalized textual result.
func (s *Server) run(ctx context.Context, req domain.Request) (string, error) {
	argv := delegate.BuildArgv(req, s.cfg.Vault.Name)
	target := s.cfg.Target(req.Command.Family())

	s.logger.Debug("delegating command",
		"bin", target.Bin, "command", req.Command, "args", len(argv))

	res, err := s.runner.Run(ctx, target, argv)
	if err != nil {
		return "", err
	}
	return renderResult(res), nil
}

// renderResult turns a raw ExecutionResult into the text surfaced to the
// caller: parsed JSON re-rendered indented, prose passed through trimmed,
// filtered stderr appended as advisory diagnostics.
func renderResult(res *domain.ExecutionResult) string {
	var text string
	switch v := delegate.ParsePayload(res.Stdout).(type) {
	case nil:
		text = "(no output)"
	case string:
		text = v
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			text = strings.TrimSpace(res.Stdout)
		} else {
			text = string(data)
		}
	}
	if filtered := delegate.FilterStderr(res.Stderr); filtered != "" {
		text += "\n\nSTDERR:\n" + filtered
	}
	if res.Truncated {
		text += "\n\n(output truncated at configured limit)"
	}
	return text
}

// finish writes the audit record for a completed call.
func (s *Server) finish(ctx context.Context, callID, toolName string, command domain.Command, start time.Time, callErr error) {
	rec := security.CallRecord{
		CallID:     callID,
		Tool:       toolName,
		Command:    string(command),
		Outcome:    "success",
		DurationMS: time.Since(start).Milliseconds(),
	}
	if callErr != nil {
		rec.Outcome = "error"
		rec.Code = domain.ErrorCodeOf(callErr)
		rec.Detail = callErr.Error()
	}
	if err := s.audit.Log(ctx, rec); err != nil {
		s.logger.Warn("audit write failed", "call_id", callID, "error", err)
	}
}

// validateArgs checks the raw arguments against the tool's compiled schema
// before any handler code touches them.
func validateArgs(schema *jsonschema.Schema, req mcp.CallToolRequest) error {
	args := req.GetArguments()
	if args == nil {
		args = map[string]any{}
	}
	result := schema.Validate(args)
	if !result.IsValid() {
		return domain.NewDomainError("mcpserver.validateArgs", domain.ErrInvalidInput,
			fmt.Sprintf("arguments do not match schema: %s", result.Error()))
	}
	return nil
}

// vaultOverride validates the optional per-call vault name.
func vaultOverride(req mcp.CallToolRequest) (string, error) {
	raw := req.GetString("vault", "")
	if raw == "" {
		return "", nil
	}
	v, err := security.ValidateVaultName(raw)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func newCallID() string {
	return ulid.Make().String()
}

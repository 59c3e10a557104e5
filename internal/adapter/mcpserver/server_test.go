package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"testing"

	"github.com/kaptinlin/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/infra/config"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/usecase/delegate"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer wires a Server whose both binary families point at bin.
func newTestServer(t *testing.T, bin string) *Server {
	t.Helper()
	cfg := &config.Config{
		Vault:  config.VaultConfig{Name: "TestVault"},
		CLI:    config.BinaryConfig{Bin: bin, TimeoutMS: 5000},
		Sync:   config.BinaryConfig{Bin: bin, TimeoutMS: 5000},
		Output: config.OutputConfig{MaxBytes: 1024 * 1024},
	}
	s, err := New(cfg, delegate.NewRunner(newTestLogger()), nil, newTestLogger())
	require.NoError(t, err)
	return s
}

func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on the unix echo binary")
	}
}

// --- validation happens before any process is spawned ---

func TestHandleReadNoteRejectsTraversal(t *testing.T) {
	// The binary does not exist: if validation let the call through, the
	// error would classify as a spawn failure instead of invalid input.
	s := newTestServer(t, "definitely-not-a-real-binary-xyz")

	_, err := s.handleReadNote(context.Background(), callReq(map[string]any{
		"file": "../../../etc/passwd",
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, domain.CodeInvalidInput, domain.ErrorCodeOf(err))
}

func TestHandleReadNoteRejectsMissingFile(t *testing.T) {
	s := newTestServer(t, "definitely-not-a-real-binary-xyz")

	_, err := s.handleReadNote(context.Background(), callReq(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestVaultOverrideRejected(t *testing.T) {
	s := newTestServer(t, "definitely-not-a-real-binary-xyz")

	_, err := s.handleVaultInfo(context.Background(), callReq(map[string]any{
		"vault": "vault; rm -rf /",
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestHandleUpdateTaskValidation(t *testing.T) {
	s := newTestServer(t, "definitely-not-a-real-binary-xyz")
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing status", map[string]any{"file": "todo.md", "line": 3}},
		{"bad status", map[string]any{"file": "todo.md", "line": 3, "status": "maybe"}},
		{"zero line", map[string]any{"file": "todo.md", "line": 0, "status": "done"}},
		{"traversal file", map[string]any{"file": "../todo.md", "line": 1, "status": "done"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleUpdateTask(ctx, callReq(tt.args))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestHandleListTasksStatusEnum(t *testing.T) {
	s := newTestServer(t, "definitely-not-a-real-binary-xyz")

	_, err := s.handleListTasks(context.Background(), callReq(map[string]any{
		"status": "cancelled",
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// --- argv shape, observed through echo ---

func TestHandleReadNoteArgv(t *testing.T) {
	skipOnWindows(t)
	s := newTestServer(t, "echo")

	text, err := s.handleReadNote(context.Background(), callReq(map[string]any{
		"file": "test.md",
	}))
	require.NoError(t, err)
	assert.Equal(t, "read --vault=TestVault file=test.md", text)
}

func TestHandleReadNoteVaultOverrideArgv(t *testing.T) {
	skipOnWindows(t)
	s := newTestServer(t, "echo")

	text, err := s.handleReadNote(context.Background(), callReq(map[string]any{
		"file":  "test.md",
		"vault": "Work",
	}))
	require.NoError(t, err)
	assert.Equal(t, "read --vault=Work file=test.md", text)
}

func TestHandleSearchNotesArgv(t *testing.T) {
	skipOnWindows(t)
	s := newTestServer(t, "echo")

	text, err := s.handleSearchNotes(context.Background(), callReq(map[string]any{
		"query":   "project notes",
		"path":    "daily",
		"context": 3,
		"limit":   10,
	}))
	require.NoError(t, err)
	assert.Equal(t,
		"search-with-context --vault=TestVault query=project notes --path=daily --context=3 --limit=10",
		text)
}

func TestHandleAppendToNoteArgv(t *testing.T) {
	skipOnWindows(t)
	s := newTestServer(t, "echo")

	text, err := s.handleAppendToNote(context.Background(), callReq(map[string]any{
		"file":              "log.md",
		"content":           "new entry",
		"create_if_missing": true,
	}))
	require.NoError(t, err)
	assert.Equal(t,
		"append --vault=TestVault file=log.md content=new entry --create-if-missing",
		text)
}

func TestHandleSetPropertyArgv(t *testing.T) {
	skipOnWindows(t)
	s := newTestServer(t, "echo")

	text, err := s.handleSetProperty(context.Background(), callReq(map[string]any{
		"file":  "note.md",
		"name":  "status",
		"value": "reviewed",
	}))
	require.NoError(t, err)
	assert.Equal(t,
		"property-set --vault=TestVault file=note.md name=status value=reviewed",
		text)
}

func TestHandleVaultSyncArgv(t *testing.T) {
	skipOnWindows(t)
	s := newTestServer(t, "echo")

	text, err := s.handleVaultSync(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.Equal(t, "sync --vault=TestVault", text)
}

// --- renderResult ---

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name string
		res  domain.ExecutionResult
		want string
	}{
		{"empty", domain.ExecutionResult{}, "(no output)"},
		{"prose", domain.ExecutionResult{Stdout: "  hello  \n"}, "hello"},
		{
			"json re-rendered indented",
			domain.ExecutionResult{Stdout: `{"files":3}`},
			"{\n  \"files\": 3\n}",
		},
		{
			"stderr appended",
			domain.ExecutionResult{Stdout: "ok", Stderr: "warning: slow vault"},
			"ok\n\nSTDERR:\nwarning: slow vault",
		},
		{
			"noise-only stderr dropped",
			domain.ExecutionResult{Stdout: "ok", Stderr: "(node:1) ExperimentalWarning: x"},
			"ok",
		},
		{
			"truncation noted",
			domain.ExecutionResult{Stdout: "partial", Truncated: true},
			"partial\n\n(output truncated at configured limit)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderResult(&tt.res))
		})
	}
}

// --- schema gate ---

func compileToolSchema(t *testing.T, tool mcp.Tool) *jsonschema.Schema {
	t.Helper()
	raw, err := json.Marshal(tool.InputSchema)
	require.NoError(t, err)
	schema, err := jsonschema.NewCompiler().Compile(raw)
	require.NoError(t, err)
	return schema
}

func TestValidateArgsMissingRequired(t *testing.T) {
	tool := mcp.NewTool("read_note",
		mcp.WithString("file", mcp.Required()),
	)
	schema := compileToolSchema(t, tool)

	err := validateArgs(schema, callReq(map[string]any{}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.NoError(t, validateArgs(schema, callReq(map[string]any{"file": "a.md"})))
}

func TestValidateArgsWrongType(t *testing.T) {
	tool := mcp.NewTool("update_task",
		mcp.WithString("file", mcp.Required()),
		mcp.WithNumber("line", mcp.Required()),
	)
	schema := compileToolSchema(t, tool)

	err := validateArgs(schema, callReq(map[string]any{"file": "a.md", "line": "seven"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// --- wiring ---

func TestNewRegistersCatalogue(t *testing.T) {
	s := newTestServer(t, "echo")
	assert.NotNil(t, s.mcp)
}

func TestNewCallIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := newCallID()
		assert.Len(t, id, 26)
		assert.False(t, seen[id], "duplicate call id %s", id)
		seen[id] = true
	}
}

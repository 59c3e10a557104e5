package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/infra/config"
)

func TestNewDefaultsToStderr(t *testing.T) {
	log, closer, err := New(config.LoggerConfig{})
	require.NoError(t, err)
	defer closer()
	assert.NotNil(t, log)
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	log, closer, err := New(config.LoggerConfig{
		Level:  "debug",
		Format: "json",
		Output: path,
	})
	require.NoError(t, err)

	log.Debug("hello", "key", "value")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestNewLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	log, closer, err := New(config.LoggerConfig{
		Level:  "warn",
		Format: "text",
		Output: path,
	})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNewBadFilePath(t *testing.T) {
	_, _, err := New(config.LoggerConfig{
		Output: filepath.Join(t.TempDir(), "missing-dir", "server.log"),
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "open log output"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

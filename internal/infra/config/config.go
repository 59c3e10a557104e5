// Package config resolves the server configuration once at startup: an
// optional YAML file, overridden by OBSIDIAN_MCP_* environment variables,
// validated into an immutable value that is shared read-only across
// concurrent calls.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "OBSIDIAN_MCP_"

// Defaults.
const (
	DefaultCLIBin         = "obsidian-cli"
	DefaultSyncBin        = "obsidian-sync"
	DefaultCLITimeoutMS   = 30_000
	DefaultSyncTimeoutMS  = 120_000
	DefaultMaxOutputBytes = 10 * 1024 * 1024 // 10 MiB
)

// Config is the top-level server configuration.
type Config struct {
	Vault    VaultConfig    `yaml:"vault"`
	CLI      BinaryConfig   `yaml:"cli"`
	Sync     BinaryConfig   `yaml:"sync"`
	Output   OutputConfig   `yaml:"output"`
	Logger   LoggerConfig   `yaml:"logger"`
	Tracer   TracerConfig   `yaml:"tracer"`
	Audit    AuditConfig    `yaml:"audit"`
	AutoSync AutoSyncConfig `yaml:"auto_sync"`
}

// VaultConfig identifies the default vault.
type VaultConfig struct {
	Name string `yaml:"name"` // default vault identity; overridable per call
	Path string `yaml:"path"` // optional filesystem path, informational
}

// BinaryConfig describes one external binary family.
type BinaryConfig struct {
	Bin       string `yaml:"bin"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// Timeout returns the per-call timeout as a duration.
func (b BinaryConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutMS) * time.Millisecond
}

// OutputConfig bounds captured process output.
type OutputConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// LoggerConfig configures slog.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	Output string `yaml:"output"` // stderr, or a file path; stdout is the protocol channel
}

// TracerConfig configures OpenTelemetry.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"` // "stdout" or "noop"
}

// AuditConfig configures the JSONL audit trail. Empty path disables it.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// AutoSyncConfig configures the optional scheduled vault sync. Empty
// schedule disables it.
type AutoSyncConfig struct {
	Schedule string `yaml:"schedule"` // cron expression
}

func defaults() *Config {
	return &Config{
		CLI:    BinaryConfig{Bin: DefaultCLIBin, TimeoutMS: DefaultCLITimeoutMS},
		Sync:   BinaryConfig{Bin: DefaultSyncBin, TimeoutMS: DefaultSyncTimeoutMS},
		Output: OutputConfig{MaxBytes: DefaultMaxOutputBytes},
		Logger: LoggerConfig{Level: "info", Format: "text", Output: "stderr"},
	}
}

// Load resolves configuration: defaults, then the YAML file at path (or
// $OBSIDIAN_MCP_CONFIG) if set, then environment overrides, then
// validation. The returned value is never mutated afterwards.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.NewDomainError("config.Load", domain.ErrConfigLoad, err.Error())
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, domain.NewDomainError("config.Load", domain.ErrConfigLoad,
				fmt.Sprintf("parse %s: %v", path, err))
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Vault.Name, "VAULT")
	setString(&cfg.Vault.Path, "VAULT_PATH")
	setString(&cfg.CLI.Bin, "CLI_BIN")
	setString(&cfg.Sync.Bin, "SYNC_BIN")
	setString(&cfg.Logger.Level, "LOG_LEVEL")
	setString(&cfg.Logger.Format, "LOG_FORMAT")
	setString(&cfg.Logger.Output, "LOG_OUTPUT")
	setString(&cfg.Tracer.Exporter, "TRACE_EXPORTER")
	setString(&cfg.Audit.Path, "AUDIT_LOG")
	setString(&cfg.AutoSync.Schedule, "AUTO_SYNC")
	if cfg.Tracer.Exporter == "stdout" {
		cfg.Tracer.Enabled = true
	}

	if err := setInt(&cfg.CLI.TimeoutMS, "CLI_TIMEOUT_MS"); err != nil {
		return err
	}
	if err := setInt(&cfg.Sync.TimeoutMS, "SYNC_TIMEOUT_MS"); err != nil {
		return err
	}
	return setInt64(&cfg.Output.MaxBytes, "MAX_OUTPUT_BYTES")
}

func setString(dst *string, key string) {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return domain.NewDomainError("config.applyEnv", domain.ErrConfigLoad,
			fmt.Sprintf("%s%s must be numeric, got %q", EnvPrefix, key, v))
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key string) error {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return domain.NewDomainError("config.applyEnv", domain.ErrConfigLoad,
			fmt.Sprintf("%s%s must be numeric, got %q", EnvPrefix, key, v))
	}
	*dst = n
	return nil
}

// CLITarget returns the execution target for the note CLI family.
func (c *Config) CLITarget() domain.ExecutionTarget {
	return domain.ExecutionTarget{
		Bin:       c.CLI.Bin,
		Timeout:   c.CLI.Timeout(),
		MaxOutput: c.Output.MaxBytes,
	}
}

// SyncTarget returns the execution target for the sync family.
func (c *Config) SyncTarget() domain.ExecutionTarget {
	return domain.ExecutionTarget{
		Bin:       c.Sync.Bin,
		Timeout:   c.Sync.Timeout(),
		MaxOutput: c.Output.MaxBytes,
	}
}

// Target returns the execution target for the given binary family.
func (c *Config) Target(family domain.BinaryFamily) domain.ExecutionTarget {
	if family == domain.FamilySync {
		return c.SyncTarget()
	}
	return c.CLITarget()
}

package config

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/security"
)

// ValidationError accumulates config validation errors so a caller sees
// every problem at once.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

func (v *ValidationError) Unwrap() error { return domain.ErrConfigLoad }

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. A non-positive timeout or
// output ceiling is fatal; so is a default vault name that would fail the
// vault-name contract at call time.
func Validate(cfg *Config) error {
	ve := &ValidationError{}

	if cfg.CLI.Bin == "" {
		ve.Add("cli.bin must not be empty")
	}
	if cfg.Sync.Bin == "" {
		ve.Add("sync.bin must not be empty")
	}
	if cfg.CLI.TimeoutMS <= 0 {
		ve.Add("cli.timeout_ms must be > 0, got %d", cfg.CLI.TimeoutMS)
	}
	if cfg.Sync.TimeoutMS <= 0 {
		ve.Add("sync.timeout_ms must be > 0, got %d", cfg.Sync.TimeoutMS)
	}
	if cfg.Output.MaxBytes <= 0 {
		ve.Add("output.max_bytes must be > 0, got %d", cfg.Output.MaxBytes)
	}
	if cfg.Vault.Name != "" {
		if _, err := security.ValidateVaultName(cfg.Vault.Name); err != nil {
			ve.Add("vault.name: %v", err)
		}
	}
	switch cfg.Logger.Format {
	case "", "text", "json":
	default:
		ve.Add("logger.format must be text or json, got %q", cfg.Logger.Format)
	}
	if cfg.Tracer.Enabled {
		switch cfg.Tracer.Exporter {
		case "", "noop", "stdout":
		default:
			ve.Add("tracer.exporter must be noop or stdout, got %q", cfg.Tracer.Exporter)
		}
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// CheckBinaries verifies at startup that both external binaries are
// reachable, so spawn failures at call time indicate the environment
// changed underneath us.
func (c *Config) CheckBinaries() error {
	if _, err := exec.LookPath(c.CLI.Bin); err != nil {
		return domain.NewDomainError("config.CheckBinaries", domain.ErrConfigLoad,
			fmt.Sprintf("cli binary %q: %v", c.CLI.Bin, err))
	}
	if _, err := exec.LookPath(c.Sync.Bin); err != nil {
		return domain.NewDomainError("config.CheckBinaries", domain.ErrConfigLoad,
			fmt.Sprintf("sync binary %q: %v", c.Sync.Bin, err))
	}
	return nil
}

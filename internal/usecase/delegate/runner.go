package delegate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
)

// Runner invokes external binaries with an exact argument vector, no shell,
// a per-call timeout, and bounded output capture. It holds no per-call
// state; a single Runner is safely shared across concurrent calls, each of
// which exclusively owns its one child process.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run spawns target.Bin with argv, writes nothing to its stdin, and waits
// for completion or timeout. Every call resolves to exactly one terminal
// state: a populated ExecutionResult on success, or a classified
// DomainError — Timeout (deadline fired, child killed), NonZeroExit
// (completed with failure status), or SpawnFailure (could not start).
// There are no retries here; retry policy, if any, belongs to the caller.
func (r *Runner) Run(ctx context.Context, target domain.ExecutionTarget, argv []string) (*domain.ExecutionResult, error) {
	const op = "delegate.Run"

	runCtx, cancel := context.WithTimeout(ctx, target.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, target.Bin, argv...)
	cmd.Stdin = nil

	stdout := newCapBuffer(target.MaxOutput)
	stderr := newCapBuffer(target.MaxOutput)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, domain.NewDomainError(op, domain.ErrSpawnFailure,
			fmt.Sprintf("%s: %v", target.Bin, err))
	}

	// Wait reaps the child on every path, including after a kill.
	waitErr := cmd.Wait()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		r.logger.Warn("command timed out",
			"bin", target.Bin, "timeout", target.Timeout)
		return nil, domain.NewDomainError(op, domain.ErrTimeout,
			fmt.Sprintf("%s %s after %s", target.Bin, strings.Join(argv, " "), target.Timeout))
	}
	if runCtx.Err() != nil {
		return nil, domain.WrapOp(op, runCtx.Err())
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			detail := FilterStderr(stderr.String())
			if detail == "" {
				detail = exitErr.Error()
			}
			return nil, domain.NewDomainError(op, domain.ErrNonZeroExit,
				fmt.Sprintf("%s: %s", target.Bin, detail))
		}
		return nil, domain.NewDomainError(op, domain.ErrSpawnFailure,
			fmt.Sprintf("%s: %v", target.Bin, waitErr))
	}

	truncated := stdout.Truncated() || stderr.Truncated()
	if truncated {
		r.logger.Warn("command output truncated at limit",
			"bin", target.Bin, "limit_bytes", target.MaxOutput)
	}

	return &domain.ExecutionResult{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Truncated: truncated,
	}, nil
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. Every failure surfaced to a caller
// wraps exactly one of these.
var (
	// ErrInvalidInput marks a validation rejection. No process is ever
	// spawned for a request that fails validation.
	ErrInvalidInput = fmt.Errorf("invalid input")

	// ErrTimeout marks an external process that exceeded its allotted
	// duration and was forcibly terminated.
	ErrTimeout = fmt.Errorf("command timed out")

	// ErrNonZeroExit marks an external process that ran to completion but
	// signaled failure.
	ErrNonZeroExit = fmt.Errorf("command exited with failure")

	// ErrSpawnFailure marks a binary that could not be started at all.
	ErrSpawnFailure = fmt.Errorf("could not start command")

	ErrConfigLoad     = fmt.Errorf("failed to load configuration")
	ErrUnknownCommand = fmt.Errorf("unknown command")
	ErrAuditWrite     = fmt.Errorf("audit log write failed")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "delegate.Run")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ErrorCode is a machine-parseable error category for monitoring and audit.
type ErrorCode string

const (
	CodeUnknown        ErrorCode = "UNKNOWN"
	CodeInvalidInput   ErrorCode = "INVALID_INPUT"
	CodeTimeout        ErrorCode = "TIMEOUT"
	CodeNonZeroExit    ErrorCode = "NON_ZERO_EXIT"
	CodeSpawnFailure   ErrorCode = "SPAWN_FAILURE"
	CodeConfigLoad     ErrorCode = "CONFIG_LOAD"
	CodeUnknownCommand ErrorCode = "UNKNOWN_COMMAND"
	CodeAuditWrite     ErrorCode = "AUDIT_WRITE"
)

var errorCodeMap = map[error]ErrorCode{
	ErrInvalidInput:   CodeInvalidInput,
	ErrTimeout:        CodeTimeout,
	ErrNonZeroExit:    CodeNonZeroExit,
	ErrSpawnFailure:   CodeSpawnFailure,
	ErrConfigLoad:     CodeConfigLoad,
	ErrUnknownCommand: CodeUnknownCommand,
	ErrAuditWrite:     CodeAuditWrite,
}

// ErrorCodeOf returns the machine-parseable error code for the given error.
// It unwraps DomainError and uses errors.Is to match sentinel errors.
// Returns CodeUnknown if no matching sentinel is found.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}
	if code, ok := errorCodeMap[err]; ok {
		return code
	}
	var de *DomainError
	if errors.As(err, &de) {
		if code, ok := errorCodeMap[de.Err]; ok {
			return code
		}
	}
	for sentinel, code := range errorCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return CodeUnknown
}

// Code returns the ErrorCode for this DomainError's underlying sentinel.
func (e *DomainError) Code() ErrorCode {
	if code, ok := errorCodeMap[e.Err]; ok {
		return code
	}
	return CodeUnknown
}

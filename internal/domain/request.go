// Package domain holds the core types of the delegation layer: the closed
// command catalogue, the per-call Request, and the execution records that
// flow between the argument builder, the process runner, and the callers.
package domain

import "time"

// Command is one entry of the closed catalogue of operations the external
// binaries understand. Command values are chosen by handlers, never parsed
// from caller input.
type Command string

const (
	CmdRead          Command = "read"
	CmdSearch        Command = "search-with-context"
	CmdOutline       Command = "outline"
	CmdBacklinks     Command = "backlinks"
	CmdLinks         Command = "links"
	CmdTags          Command = "tags"
	CmdTasks         Command = "tasks"
	CmdCreate        Command = "create"
	CmdAppend        Command = "append"
	CmdPrepend       Command = "prepend"
	CmdPropertySet   Command = "property-set"
	CmdTaskUpdate    Command = "task-update"
	CmdListFiles     Command = "list-files"
	CmdListFolders   Command = "list-folders"
	CmdListTemplates Command = "list-templates"
	CmdVaultInfo     Command = "vault-info"
	CmdSync          Command = "sync"
	CmdSyncStatus    Command = "sync-status"
)

// BinaryFamily identifies which of the two external binaries serves a command.
type BinaryFamily string

const (
	FamilyCLI  BinaryFamily = "cli"
	FamilySync BinaryFamily = "sync"
)

// Family returns the binary family that serves c.
func (c Command) Family() BinaryFamily {
	switch c {
	case CmdSync, CmdSyncStatus:
		return FamilySync
	default:
		return FamilyCLI
	}
}

// Known reports whether c is part of the catalogue.
func (c Command) Known() bool {
	switch c {
	case CmdRead, CmdSearch, CmdOutline, CmdBacklinks, CmdLinks, CmdTags,
		CmdTasks, CmdCreate, CmdAppend, CmdPrepend, CmdPropertySet,
		CmdTaskUpdate, CmdListFiles, CmdListFolders, CmdListTemplates,
		CmdVaultInfo, CmdSync, CmdSyncStatus:
		return true
	}
	return false
}

// Flag is a single named flag of a Request. Flags keep insertion order so
// that argument vectors are deterministic. A nil Value means "absent";
// bool false is skipped; bool true becomes a bare --name token; any other
// value becomes --name=<textual form>.
type Flag struct {
	Name  string
	Value any
}

// Request describes one delegated operation. It is built fresh per call by
// the owning handler and never mutated after construction. All Positional
// tokens and flag values must have passed a validation contract before they
// are placed here.
type Request struct {
	Command    Command
	Positional []string // ordered key=value tokens, verbatim
	Flags      []Flag   // insertion order preserved
	Vault      string   // optional override; wins over the configured default
}

// ExecutionTarget identifies the binary to invoke, the per-call timeout,
// and the output capture ceiling. Derived from configuration; read-only
// for the duration of a call.
type ExecutionTarget struct {
	Bin       string
	Timeout   time.Duration
	MaxOutput int64
}

// ExecutionResult carries the captured output of a completed process.
// Stderr is raw; diagnostic-noise filtering is the normalizer's job and
// never changes whether the call counts as a success.
type ExecutionResult struct {
	Stdout    string
	Stderr    string
	Truncated bool
}

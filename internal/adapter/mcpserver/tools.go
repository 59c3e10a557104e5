package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
)

// vaultParam is the optional per-call vault override carried by every tool.
func vaultParam() mcp.ToolOption {
	return mcp.WithString("vault",
		mcp.Description("Vault name to target instead of the configured default"))
}

// registerTools wires the closed operation catalogue. Each tool maps to
// exactly one command token; nothing here is derived from caller input.
func (s *Server) registerTools() error {
	regs := []struct {
		tool    mcp.Tool
		command domain.Command
		handler toolHandler
	}{
		{
			mcp.NewTool("read_note",
				mcp.WithDescription("Read the content of a note in the vault"),
				mcp.WithString("file", mcp.Required(),
					mcp.Description("Note path relative to the vault root (e.g. daily/2026-08-25.md)")),
				vaultParam(),
			),
			domain.CmdRead, s.handleReadNote,
		},
		{
			mcp.NewTool("search_notes",
				mcp.WithDescription("Full-text search across the vault with surrounding context lines"),
				mcp.WithString("query", mcp.Required(),
					mcp.Description("Search query text")),
				mcp.WithString("path",
					mcp.Description("Restrict the search to a folder relative to the vault root")),
				mcp.WithNumber("context",
					mcp.Description("Number of context lines around each match")),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of matches to return")),
				vaultParam(),
			),
			domain.CmdSearch, s.handleSearchNotes,
		},
		{
			mcp.NewTool("note_outline",
				mcp.WithDescription("Show the heading outline of a note"),
				mcp.WithString("file", mcp.Required(),
					mcp.Description("Note path relative to the vault root")),
				vaultParam(),
			),
			domain.CmdOutline, s.handleNoteOutline,
		},
		{
			mcp.NewTool("backlinks",
				mcp.WithDescription("List notes that link to the given note"),
				mcp.WithString("file", mcp.Required(),
					mcp.Description("Note path relative to the vault root")),
				vaultParam(),
			),
			domain.CmdBacklinks, s.handleBacklinks,
		},
		{
			mcp.NewTool("outgoing_links",
				mcp.WithDescription("List notes the given note links to"),
				mcp.WithString("file", mcp.Required(),
					mcp.Description("Note path relative to the vault root")),
				vaultParam(),
			),
			domain.CmdLinks, s.handleOutgoingLinks,
		},
		{
			mcp.NewTool("list_tags",
				mcp.WithDescription("List all tags used in the vault"),
				mcp.WithBoolean("counts",
					mcp.Description("Include usage counts per tag")),
				vaultParam(),
			),
			domain.CmdTags, s.handleListTags,
		},
		{
			mcp.NewTool("list_tasks",
				mcp.WithDescription("List tasks across the vault"),
				mcp.WithString("status",
					mcp.Description("Filter by task status: todo, done, or all"),
					mcp.Enum("todo", "done", "all")),
				mcp.WithString("path",
					mcp.Description("Restrict to a folder relative to the vault root")),
				vaultParam(),
			),
			domain.CmdTasks, s.handleListTasks,
		},
		{
			mcp.NewTool("create_note",
				mcp.WithDescription("Create a new note"),
				mcp.WithString("file", mcp.Required(),
					mcp.Description("Path for the new note relative to the vault root")),
				mcp.WithString("content",
					mcp.Description("Initial note content")),
				mcp.WithString("template",
					mcp.Description("Template note path to instantiate from")),
				mcp.WithBoolean("overwrite",
					mcp.Description("Replace the note if it already exists")),
				vaultParam(),
			),
			domain.CmdCreate, s.handleCreateNote,
		},
		{
			mcp.NewTool("append_to_note",
				mcp.WithDescription("Append content to an existing note"),
				mcp.WithString("file", mcp.Required(),
					mcp.Description("Note path relative to the vault root")),
				mcp.WithString("content", mcp.Required(),
					mcp.Description("Content to append")),
				mcp.WithBoolean("create_if_missing",
					mcp.Description("Create the note if it does not exist")),
				vaultParam(),
			),
			domain.CmdAppend, s.handleAppendToNote,
		},
		{
			mcp.NewTool("prepend_to_note",
				mcp.WithDescription("Prepend content to an existing note (below frontmatter)"),
				mcp.WithString("file", mcp.Required(),
					mcp.Description("Note path relative to the vault root")),
				mcp.WithString("content", mcp.Required(),
					mcp.Description("Content to prepend")),
				mcp.WithBoolean("create_if_missing",
					mcp.Description("Create the note if it does not exist")),
				vaultParam(),
			),
			domain.CmdPrepend, s.handlePrependToNote,
		},
		{
			mcp.NewTool("set_property",
				mcp.WithDescription("Set a frontmatter property on a note"),
				mcp.WithString("file", mcp.Required(),
					mcp.Description("Note path relative to the vault root")),
				mcp.WithString("name", mcp.Required(),
					mcp.Description("Property name")),
				mcp.WithString("value", mcp.Required(),
					mcp.Description("Property value")),
				vaultParam(),
			),
			domain.CmdPropertySet, s.handleSetProperty,
		},
		{
			mcp.NewTool("update_task",
				mcp.WithDescription("Update the status of a task in a note"),
				mcp.WithString("file", mcp.Required(),
					mcp.Description("Note path relative to the vault root")),
				mcp.WithNumber("line", mcp.Required(),
					mcp.Description("1-based line number of the task")),
				mcp.WithString("status", mcp.Required(),
					mcp.Description("New task status"),
					mcp.Enum("todo", "done", "cancelled")),
				vaultParam(),
			),
			domain.CmdTaskUpdate, s.handleUpdateTask,
		},
		{
			mcp.NewTool("list_files",
				mcp.WithDescription("List note files in the vault"),
				mcp.WithString("folder",
					mcp.Description("Folder relative to the vault root")),
				mcp.WithString("ext",
					mcp.Description("Filter by file extension (e.g. md)")),
				mcp.WithBoolean("recursive",
					mcp.Description("Recurse into subfolders")),
				vaultParam(),
			),
			domain.CmdListFiles, s.handleListFiles,
		},
		{
			mcp.NewTool("list_folders",
				mcp.WithDescription("List folders in the vault"),
				mcp.WithString("folder",
					mcp.Description("Folder relative to the vault root")),
				vaultParam(),
			),
			domain.CmdListFolders, s.handleListFolders,
		},
		{
			mcp.NewTool("list_templates",
				mcp.WithDescription("List available note templates"),
				vaultParam(),
			),
			domain.CmdListTemplates, s.handleListTemplates,
		},
		{
			mcp.NewTool("vault_info",
				mcp.WithDescription("Show vault metadata and statistics"),
				vaultParam(),
			),
			domain.CmdVaultInfo, s.handleVaultInfo,
		},
		{
			mcp.NewTool("vault_sync",
				mcp.WithDescription("Synchronize the vault with its remote"),
				vaultParam(),
			),
			domain.CmdSync, s.handleVaultSync,
		},
		{
			mcp.NewTool("sync_status",
				mcp.WithDescription("Show the vault's sync status"),
				vaultParam(),
			),
			domain.CmdSyncStatus, s.handleSyncStatus,
		},
	}

	for _, r := range regs {
		if err := s.addTool(r.tool, r.command, r.handler); err != nil {
			return err
		}
	}
	return nil
}

package delegate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
)

func TestBuildArgvReadNote(t *testing.T) {
	argv := BuildArgv(domain.Request{
		Command:    domain.CmdRead,
		Positional: []string{"file=test.md"},
	}, "TestVault")

	assert.Equal(t, []string{"read", "--vault=TestVault", "file=test.md"}, argv)
}

func TestBuildArgvVaultResolution(t *testing.T) {
	tests := []struct {
		name         string
		override     string
		defaultVault string
		want         []string
	}{
		{"override wins", "Work", "TestVault", []string{"tags", "--vault=Work"}},
		{"default applies", "", "TestVault", []string{"tags", "--vault=TestVault"}},
		{"no vault at all", "", "", []string{"tags"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv := BuildArgv(domain.Request{Command: domain.CmdTags, Vault: tt.override}, tt.defaultVault)
			assert.Equal(t, tt.want, argv)
		})
	}
}

func TestBuildArgvFlagRules(t *testing.T) {
	argv := BuildArgv(domain.Request{
		Command:    domain.CmdSearch,
		Positional: []string{"query=project notes"},
		Flags: []domain.Flag{
			{Name: "path", Value: "daily"},
			{Name: "context", Value: 3},
			{Name: "recursive", Value: true},
			{Name: "counts", Value: false},
			{Name: "absent", Value: nil},
		},
	}, "V")

	assert.Equal(t, []string{
		"search-with-context",
		"--vault=V",
		"query=project notes",
		"--path=daily",
		"--context=3",
		"--recursive",
	}, argv)
}

func TestBuildArgvPreservesFlagOrder(t *testing.T) {
	req := domain.Request{
		Command:    domain.CmdTaskUpdate,
		Positional: []string{"file=todo.md"},
		Flags: []domain.Flag{
			{Name: "line", Value: 7},
			{Name: "status", Value: "done"},
		},
	}

	want := []string{"task-update", "--vault=V", "file=todo.md", "--line=7", "--status=done"}
	assert.Equal(t, want, BuildArgv(req, "V"))
}

func TestBuildArgvDeterministic(t *testing.T) {
	req := domain.Request{
		Command:    domain.CmdCreate,
		Positional: []string{"file=a.md"},
		Flags: []domain.Flag{
			{Name: "content", Value: "x"},
			{Name: "overwrite", Value: true},
		},
	}
	first := BuildArgv(req, "V")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildArgv(req, "V"))
	}
}

func TestBuildArgvTokensStayVerbatim(t *testing.T) {
	// A positional value containing spaces or metacharacters stays one token.
	argv := BuildArgv(domain.Request{
		Command:    domain.CmdAppend,
		Positional: []string{"file=note (copy).md", "content=line one; line two && more"},
	}, "")

	assert.Equal(t, []string{
		"append",
		"file=note (copy).md",
		"content=line one; line two && more",
	}, argv)
}

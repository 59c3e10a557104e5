// Package delegate is the secure CLI delegation core: it turns a validated
// Request into an exact argument vector, runs the external binary with no
// shell involved, and normalizes what comes back.
package delegate

import (
	"fmt"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
)

// BuildArgv deterministically maps a Request into the flat token list handed
// to process creation. The output is the literal argv; no token is split,
// re-joined, or parsed again downstream.
//
// Order: command name, then --vault=<name> if an override or default
// resolves, then positional key=value tokens verbatim, then flags in
// insertion order. Absent (nil) and false-valued flags are skipped; a true
// boolean becomes a bare --name token; any other value is coerced to its
// textual form as --name=<value>.
func BuildArgv(req domain.Request, defaultVault string) []string {
	argv := make([]string, 0, 2+len(req.Positional)+len(req.Flags))
	argv = append(argv, string(req.Command))

	vault := req.Vault
	if vault == "" {
		vault = defaultVault
	}
	if vault != "" {
		argv = append(argv, "--vault="+vault)
	}

	argv = append(argv, req.Positional...)

	for _, f := range req.Flags {
		switch v := f.Value.(type) {
		case nil:
			continue
		case bool:
			if v {
				argv = append(argv, "--"+f.Name)
			}
		default:
			argv = append(argv, fmt.Sprintf("--%s=%v", f.Name, v))
		}
	}

	return argv
}

package delegate

import (
	"encoding/json"
	"strings"
)

// Runtime-diagnostic noise emitted by the host runtime of the external
// binaries, unrelated to any operation's outcome. Matched per line.
var (
	noisePrefixes = []string{
		"(node:",
		"Debugger attached",
		"Waiting for the debugger",
	}
	noiseSubstrings = []string{
		"ExperimentalWarning",
		"DeprecationWarning",
	}
)

// FilterStderr drops blank lines and runtime-diagnostic noise from captured
// error text. The filtering is advisory only — it never changes whether a
// call counts as success or failure — and is idempotent.
func FilterStderr(raw string) string {
	if raw == "" {
		return ""
	}
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isNoise(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isNoise(line string) bool {
	for _, p := range noisePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	for _, s := range noiseSubstrings {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// ParsePayload makes trimmed standard output useful for callers: nil for an
// empty or whitespace-only string, the parsed structure for valid JSON, and
// otherwise the trimmed raw text unchanged. Downstream consumers handle
// list/object-shaped tool output and plain prose through the same path.
func ParsePayload(stdout string) any {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v
	}
	return trimmed
}

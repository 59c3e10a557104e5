// Package security holds the input-validation contracts applied to every
// caller-supplied value before it can influence a process argument, plus the
// audit trail of delegated calls.
package security

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
)

// Length ceilings per contract. Exactly-max accepts, max+1 rejects.
const (
	MaxPathTokenLen    = 10000
	MaxVaultNameLen    = 200
	MaxPropertyNameLen = 200
	MaxExtensionLen    = 20
	MaxContentLen      = 100000
)

// traversalRe matches a ".." path segment bounded by a separator (forward or
// backslash) or the string boundary. A bare ".." matches via the anchors;
// "..foo" does not match and is a legitimate file name.
var traversalRe = regexp.MustCompile(`(^|[/\\])\.\.($|[/\\])`)

// vaultNameRe is the allow-list for vault names. Vault names are echoed into
// a flag value rather than a path, so they get a strict character class
// instead of the traversal predicate.
var vaultNameRe = regexp.MustCompile(`^[A-Za-z0-9_\s\-().]+$`)

var propertyNameRe = regexp.MustCompile(`^[A-Za-z0-9_\-. ]+$`)

var extensionRe = regexp.MustCompile(`^[A-Za-z0-9_.]*$`)

// Narrowed string types. Holding one of these is the guarantee that the
// value passed its contract; only the constructors below produce them.
type (
	PathToken    string
	VaultName    string
	PropertyName string
	Extension    string
	Content      string
)

func reject(op, field, reason string) error {
	return domain.NewDomainError(op, domain.ErrInvalidInput, fmt.Sprintf("%s %s", field, reason))
}

// ValidatePathToken accepts a vault-relative file or folder path. Spaces,
// parentheses, and even shell metacharacters are fine — the value is only
// ever placed as a literal argv entry — but anything that could escape the
// vault root is not: a leading path-root marker, a ".." segment, or a NUL.
func ValidatePathToken(field, value string) (PathToken, error) {
	const op = "security.ValidatePathToken"
	switch {
	case value == "":
		return "", reject(op, field, "is required")
	case len(value) > MaxPathTokenLen:
		return "", reject(op, field, fmt.Sprintf("exceeds maximum length of %d", MaxPathTokenLen))
	case strings.ContainsRune(value, 0):
		return "", reject(op, field, "contains a null byte")
	case strings.HasPrefix(value, "/"):
		return "", reject(op, field, "must be relative to the vault root")
	case traversalRe.MatchString(value):
		return "", reject(op, field, "contains a parent-directory segment")
	}
	return PathToken(value), nil
}

// ValidateVaultName accepts a vault identity: letters, digits, underscore,
// whitespace, hyphen, parenthesis, and period. A leading hyphen is rejected
// so the value cannot be misread as a flag by the invoked binary.
func ValidateVaultName(value string) (VaultName, error) {
	const op = "security.ValidateVaultName"
	switch {
	case value == "":
		return "", reject(op, "vault", "is required")
	case len(value) > MaxVaultNameLen:
		return "", reject(op, "vault", fmt.Sprintf("exceeds maximum length of %d", MaxVaultNameLen))
	case strings.HasPrefix(value, "-"):
		return "", reject(op, "vault", "must not start with a hyphen")
	case !vaultNameRe.MatchString(value):
		return "", reject(op, "vault", "contains characters outside the allowed set")
	}
	return VaultName(value), nil
}

// ValidatePropertyName accepts a frontmatter property name.
func ValidatePropertyName(field, value string) (PropertyName, error) {
	const op = "security.ValidatePropertyName"
	switch {
	case value == "":
		return "", reject(op, field, "is required")
	case len(value) > MaxPropertyNameLen:
		return "", reject(op, field, fmt.Sprintf("exceeds maximum length of %d", MaxPropertyNameLen))
	case !propertyNameRe.MatchString(value):
		return "", reject(op, field, "contains characters outside the allowed set")
	}
	return PropertyName(value), nil
}

// ValidateExtension accepts a file-extension filter. Empty means no filter.
func ValidateExtension(field, value string) (Extension, error) {
	const op = "security.ValidateExtension"
	switch {
	case len(value) > MaxExtensionLen:
		return "", reject(op, field, fmt.Sprintf("exceeds maximum length of %d", MaxExtensionLen))
	case !extensionRe.MatchString(value):
		return "", reject(op, field, "contains characters outside the allowed set")
	}
	return Extension(value), nil
}

// ValidateContent accepts free text destined for a literal argv entry: note
// content, search queries, property values. The traversal rule does not
// apply — prose may legitimately contain "../" — only a NUL or an absurd
// length rejects.
func ValidateContent(field, value string) (Content, error) {
	const op = "security.ValidateContent"
	switch {
	case value == "":
		return "", reject(op, field, "is required")
	case len(value) > MaxContentLen:
		return "", reject(op, field, fmt.Sprintf("exceeds maximum length of %d", MaxContentLen))
	case strings.ContainsRune(value, 0):
		return "", reject(op, field, "contains a null byte")
	}
	return Content(value), nil
}

// ValidateEnum checks that value is one of the allowed values. An empty
// value is allowed (treated as "not set").
func ValidateEnum(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return reject("security.ValidateEnum", field,
		fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

// ValidatePositive checks that a numeric parameter is > 0.
func ValidatePositive(field string, value int) error {
	if value <= 0 {
		return reject("security.ValidatePositive", field, "must be > 0")
	}
	return nil
}

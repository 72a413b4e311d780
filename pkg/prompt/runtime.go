package prompt

import (
	"strconv"
	"strings"
)

// Reserved template placeholders.
const (
	PlaceholderIsGitRepo = "{RUNTIME_VARS_IS_GIT_REPO}"
	PlaceholderSandbox   = "{RUNTIME_VARS_SANDBOX}"
)

// RuntimeIdentity is the live state a template is selected by and filled with.
// It is captured once per resolution.
type RuntimeIdentity struct {
	CurrentModel    string
	CurrentEndpoint string
	IsGitRepository bool
	SandboxLabel    string
}

// Substitute fills the runtime placeholders in template. Replacement happens
// in a single pass, so substituted values are never scanned again.
func Substitute(template string, id RuntimeIdentity) string {
	return strings.NewReplacer(
		PlaceholderIsGitRepo, strconv.FormatBool(id.IsGitRepository),
		PlaceholderSandbox, id.SandboxLabel,
	).Replace(template)
}

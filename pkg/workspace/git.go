// Package workspace answers questions about the directory a session runs in.
package workspace

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FindGitRoot walks up from dir looking for a .git entry. A .git file counts
// too, which covers worktrees and submodules. It returns the directory that
// holds .git and true, or "" and false when none is found before the root.
func FindGitRoot(dir string) (string, bool) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// IsGitRepository reports whether dir is inside a git working tree. It asks
// git first and falls back to looking for a .git entry when git is not
// installed or does not recognize the tree. Any error while probing counts as
// "not a repository".
func IsGitRepository(dir string) bool {
	if insideWorkTree(dir) {
		return true
	}
	_, ok := FindGitRoot(dir)
	return ok
}

func insideWorkTree(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return false
	}
	return strings.TrimSpace(stdout.String()) == "true"
}

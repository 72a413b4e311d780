package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const homeShorthand = "~"

// ResolvePath expands "~" and "~/..." against the user's home directory and
// makes every other value absolute relative to the working directory.
func ResolvePath(p string) (string, error) {
	if p == homeShorthand {
		return userHome()
	}

	if rest, ok := trimHomePrefix(p); ok {
		home, err := userHome()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, rest), nil
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", p, err)
	}
	return abs, nil
}

// trimHomePrefix strips "~/" (or "~\" where that is the separator).
func trimHomePrefix(p string) (string, bool) {
	if rest, ok := strings.CutPrefix(p, homeShorthand+"/"); ok {
		return rest, true
	}
	if filepath.Separator != '/' {
		if rest, ok := strings.CutPrefix(p, homeShorthand+string(filepath.Separator)); ok {
			return rest, true
		}
	}
	return "", false
}

func userHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return home, nil
}

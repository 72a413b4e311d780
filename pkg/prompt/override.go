package prompt

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/entrhq/astrocode/pkg/config"
)

// OverrideMode says whether, and from where, the prompt body comes from a file.
type OverrideMode int

const (
	// OverrideDisabled means the body is a matched template or the built-in default.
	OverrideDisabled OverrideMode = iota
	// OverrideDefaultPath reads <config-dir>/system.md.
	OverrideDefaultPath
	// OverrideCustomPath reads the path carried in the signal.
	OverrideCustomPath
)

func (m OverrideMode) String() string {
	switch m {
	case OverrideDisabled:
		return "disabled"
	case OverrideDefaultPath:
		return "default-path"
	case OverrideCustomPath:
		return "custom-path"
	default:
		return fmt.Sprintf("OverrideMode(%d)", int(m))
	}
}

// Override is the parsed form of an ASTROCODE_SYSTEM_MD style signal.
// Path is absolute and only meaningful when Mode is not OverrideDisabled.
type Override struct {
	Mode OverrideMode
	Path string
}

// Enabled reports whether the override supplies the prompt body.
func (o Override) Enabled() bool {
	return o.Mode != OverrideDisabled
}

// DefaultPathFunc yields the default override file. It is only consulted for
// the "1" / "true" forms of a signal.
type DefaultPathFunc func() (string, error)

// ParseOverride turns a signal into an Override:
//
//	absent            -> disabled
//	"0" / "false"     -> disabled
//	"1" / "true"      -> defaultPath
//	anything else     -> that value, resolved with ResolvePath
//
// The boolean forms are matched case-insensitively. ParseOverride does not
// touch the file; see Load.
func ParseOverride(signal config.Signal, defaultPath string) (Override, error) {
	return parseOverride(signal, func() (string, error) { return defaultPath, nil })
}

func parseOverride(signal config.Signal, defaultPath DefaultPathFunc) (Override, error) {
	if !signal.Set {
		return Override{Mode: OverrideDisabled}, nil
	}

	switch strings.ToLower(signal.Value) {
	case "0", "false":
		return Override{Mode: OverrideDisabled}, nil
	case "1", "true":
		path, err := defaultPath()
		if err != nil {
			return Override{}, fmt.Errorf("failed to locate default system prompt file: %w", err)
		}
		return Override{Mode: OverrideDefaultPath, Path: path}, nil
	}

	path, err := ResolvePath(signal.Value)
	if err != nil {
		return Override{}, err
	}
	return Override{Mode: OverrideCustomPath, Path: path}, nil
}

// Load reads the override file. A missing file is a *ConfigError; any other
// failure is returned wrapped.
func (o Override) Load() (string, error) {
	if !o.Enabled() {
		return "", fmt.Errorf("override is disabled")
	}

	if _, err := os.Stat(o.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &ConfigError{Path: o.Path, Err: err}
		}
		return "", fmt.Errorf("failed to stat system prompt file: %w", err)
	}

	f, err := os.Open(o.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open system prompt file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt file: %w", err)
	}
	return string(content), nil
}

package prompt

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/entrhq/astrocode/pkg/config"
)

// WriteTarget decides where, if anywhere, the default body is persisted. It
// parses the write signal exactly like the override signal.
func WriteTarget(signal config.Signal, defaultPath string) (string, bool, error) {
	return writeTarget(signal, func() (string, error) { return defaultPath, nil })
}

func writeTarget(signal config.Signal, defaultPath DefaultPathFunc) (string, bool, error) {
	o, err := parseOverride(signal, defaultPath)
	if err != nil {
		return "", false, err
	}
	if !o.Enabled() {
		return "", false, nil
	}
	return o.Path, true, nil
}

// WriteDefault writes body to target, creating parent directories and
// replacing any existing file.
func WriteDefault(target, body string) (err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return &PersistError{Path: target, Err: fmt.Errorf("create directory: %w", err)}
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return &PersistError{Path: target, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &PersistError{Path: target, Err: cerr}
		}
	}()

	if _, err := f.WriteString(body); err != nil {
		return &PersistError{Path: target, Err: err}
	}
	return nil
}

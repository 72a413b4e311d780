package prompt

import "fmt"

// ConfigError reports a configuration the resolver cannot honor. It is the
// only fatal resolution error: an enabled override pointing at a missing file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing system prompt file '%s'", e.Path)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PersistError wraps a failure to write the default prompt to disk. The
// prompt itself was resolved successfully and is returned alongside it.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to write system prompt to %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

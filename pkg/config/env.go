package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variable names read by LoadEnv.
const (
	EnvSystemMD      = "ASTROCODE_SYSTEM_MD"
	EnvWriteSystemMD = "ASTROCODE_WRITE_SYSTEM_MD"
	EnvModel         = "OPENAI_MODEL"
	EnvBaseURL       = "OPENAI_BASE_URL"
	EnvSandbox       = "SANDBOX"
	EnvConfigDir     = "ASTROCODE_CONFIG_DIR"
)

// Signal is one optional environment value. Set is false when the variable
// was absent or empty.
type Signal struct {
	Value string
	Set   bool
}

// Env is a snapshot of every environment signal prompt resolution depends on.
// It is captured once at startup and passed down explicitly so that a single
// resolution never observes two different environments.
type Env struct {
	SystemMD      Signal
	WriteSystemMD Signal
	Model         string
	BaseURL       string
	Sandbox       string
	ConfigDir     string
}

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnv captures the process environment.
func LoadEnv() Env {
	return LoadEnvFrom(os.LookupEnv)
}

// LoadEnvFrom captures the environment through lookup, which makes it easy to
// feed a fixed map in tests.
func LoadEnvFrom(lookup LookupFunc) Env {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	signal := func(key string) Signal {
		v, ok := lookup(key)
		return Signal{Value: v, Set: ok && v != ""}
	}

	return Env{
		SystemMD:      signal(EnvSystemMD),
		WriteSystemMD: signal(EnvWriteSystemMD),
		Model:         get(EnvModel),
		BaseURL:       get(EnvBaseURL),
		Sandbox:       get(EnvSandbox),
		ConfigDir:     get(EnvConfigDir),
	}
}

// MapLookup adapts a map to a LookupFunc.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Dir returns the AstroCode configuration directory: ConfigDir when set,
// otherwise ~/.astrocode.
func (e Env) Dir() (string, error) {
	if e.ConfigDir != "" {
		return filepath.Abs(e.ConfigDir)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".astrocode"), nil
}

// SystemPromptPath is the default override file, <config-dir>/system.md.
func (e Env) SystemPromptPath() (string, error) {
	dir, err := e.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "system.md"), nil
}

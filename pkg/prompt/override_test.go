package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/entrhq/astrocode/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "home shorthand", in: "~", want: home},
		{name: "home relative", in: "~/prompts/system.md", want: filepath.Join(home, "prompts", "system.md")},
		{name: "tilde without separator is relative", in: "~prompts", want: filepath.Join(wd, "~prompts")},
		{name: "relative", in: "custom/system.md", want: filepath.Join(wd, "custom", "system.md")},
		{name: "absolute", in: "/custom/path", want: filepath.Clean("/custom/path")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOverride(t *testing.T) {
	const defaultPath = "/home/user/.astrocode/system.md"

	tests := []struct {
		name   string
		signal config.Signal
		want   Override
	}{
		{name: "absent", signal: config.Signal{}, want: Override{Mode: OverrideDisabled}},
		{name: "zero", signal: config.Signal{Value: "0", Set: true}, want: Override{Mode: OverrideDisabled}},
		{name: "false", signal: config.Signal{Value: "false", Set: true}, want: Override{Mode: OverrideDisabled}},
		{name: "FALSE", signal: config.Signal{Value: "FALSE", Set: true}, want: Override{Mode: OverrideDisabled}},
		{name: "one", signal: config.Signal{Value: "1", Set: true}, want: Override{Mode: OverrideDefaultPath, Path: defaultPath}},
		{name: "true", signal: config.Signal{Value: "true", Set: true}, want: Override{Mode: OverrideDefaultPath, Path: defaultPath}},
		{name: "True", signal: config.Signal{Value: "True", Set: true}, want: Override{Mode: OverrideDefaultPath, Path: defaultPath}},
		{name: "custom path", signal: config.Signal{Value: "/custom/path", Set: true}, want: Override{Mode: OverrideCustomPath, Path: filepath.Clean("/custom/path")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverride(tt.signal, defaultPath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Mode != OverrideDisabled, got.Enabled())
		})
	}
}

func TestOverrideLoad(t *testing.T) {
	t.Run("missing file is a config error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.md")
		_, err := Override{Mode: OverrideCustomPath, Path: path}.Load()

		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, path, cfgErr.Path)
		assert.Contains(t, err.Error(), "missing system prompt file")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("reads contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "system.md")
		require.NoError(t, os.WriteFile(path, []byte("custom body {RUNTIME_VARS_SANDBOX}"), 0644))

		body, err := Override{Mode: OverrideDefaultPath, Path: path}.Load()
		require.NoError(t, err)
		assert.Equal(t, "custom body {RUNTIME_VARS_SANDBOX}", body)
	})

	t.Run("disabled override cannot load", func(t *testing.T) {
		_, err := Override{}.Load()
		assert.Error(t, err)
	})
}

func TestOverrideModeString(t *testing.T) {
	assert.Equal(t, "disabled", OverrideDisabled.String())
	assert.Equal(t, "default-path", OverrideDefaultPath.String())
	assert.Equal(t, "custom-path", OverrideCustomPath.String())
	assert.Equal(t, "OverrideMode(9)", OverrideMode(9).String())
}

func TestParseOverride_DefaultPathIsLazy(t *testing.T) {
	calls := 0
	failing := func() (string, error) {
		calls++
		return "", errors.New("no home directory")
	}

	for _, v := range []string{"0", "false", "/abs/custom.md"} {
		_, err := parseOverride(config.Signal{Value: v, Set: true}, failing)
		require.NoError(t, err, "signal %q", v)
	}
	_, err := parseOverride(config.Signal{}, failing)
	require.NoError(t, err)
	assert.Zero(t, calls)

	_, err = parseOverride(config.Signal{Value: "1", Set: true}, failing)
	assert.ErrorContains(t, err, "no home directory")
	assert.Equal(t, 1, calls)
}

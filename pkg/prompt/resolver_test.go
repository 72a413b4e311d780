package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/entrhq/astrocode/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gitDetector(isRepo bool) ResolverOption {
	return WithGitDetector(func(string) bool { return isRepo })
}

func set(v string) config.Signal {
	return config.Signal{Value: v, Set: true}
}

func expectedDefault(isGit bool, sandbox string) string {
	return Substitute(DefaultBody(), RuntimeIdentity{IsGitRepository: isGit, SandboxLabel: sandbox})
}

func TestResolve_Default(t *testing.T) {
	env := config.Env{ConfigDir: t.TempDir()}

	t.Run("git repository", func(t *testing.T) {
		got, err := NewResolver(env, gitDetector(true)).Resolve("", nil, "")
		require.NoError(t, err)
		assert.Equal(t, expectedDefault(true, ""), got)
		assert.Contains(t, got, "Git repository: true")
		assert.NotContains(t, got, PlaceholderIsGitRepo)
		assert.NotContains(t, got, PlaceholderSandbox)
	})

	t.Run("not a repository", func(t *testing.T) {
		got, err := NewResolver(env, gitDetector(false)).Resolve("", &Config{}, "")
		require.NoError(t, err)
		assert.Contains(t, got, "Git repository: false")
	})

	t.Run("sandbox label", func(t *testing.T) {
		env := env
		env.Sandbox = "sandbox-exec"
		got, err := NewResolver(env, gitDetector(false)).Resolve("", nil, "")
		require.NoError(t, err)
		assert.Contains(t, got, "Sandbox: sandbox-exec")
	})

	t.Run("real git probe on work dir", func(t *testing.T) {
		repo := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(repo, ".git"), 0750))

		res, err := NewResolver(env, WithWorkDir(repo)).ResolveDetailed("", nil, "")
		require.NoError(t, err)
		assert.True(t, res.Identity.IsGitRepository)
		assert.Equal(t, SourceDefault, res.Source)
	})
}

func TestResolve_Memory(t *testing.T) {
	env := config.Env{ConfigDir: t.TempDir()}
	r := NewResolver(env, gitDetector(false))
	body := expectedDefault(false, "")

	tests := []struct {
		memory string
		want   string
	}{
		{memory: "", want: body},
		{memory: "  ", want: body},
		{memory: "x", want: body + "\n\n---\n\nx"},
		{memory: "\n prefers SI units \n", want: body + "\n\n---\n\nprefers SI units"},
	}

	for _, tt := range tests {
		got, err := r.Resolve(tt.memory, nil, "")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolve_Template(t *testing.T) {
	env := config.Env{
		ConfigDir: t.TempDir(),
		Model:     "m1",
		BaseURL:   "https://a/",
		Sandbox:   "docker",
	}
	cfg := &Config{Mappings: []TemplateMapping{
		{EndpointPatterns: []string{"https://a"}, ModelPatterns: []string{"m1"}, Template: "T1 git={RUNTIME_VARS_IS_GIT_REPO} sb={RUNTIME_VARS_SANDBOX}"},
		{EndpointPatterns: []string{"https://a"}, Template: "T2"},
	}}

	t.Run("first rule wins", func(t *testing.T) {
		res, err := NewResolver(env, gitDetector(true)).ResolveDetailed("", cfg, "")
		require.NoError(t, err)
		assert.Equal(t, SourceTemplate, res.Source)
		assert.Equal(t, 0, res.MappingIndex)
		assert.Equal(t, "T1 git=true sb=docker", res.Prompt)
	})

	t.Run("memory is appended to templates", func(t *testing.T) {
		got, err := NewResolver(env, gitDetector(false)).Resolve("mem", cfg, "")
		require.NoError(t, err)
		assert.Equal(t, "T1 git=false sb=docker\n\n---\n\nmem", got)
	})

	t.Run("model argument is the fallback identity", func(t *testing.T) {
		env := env
		env.Model = ""
		res, err := NewResolver(env, gitDetector(false)).ResolveDetailed("", cfg, "m1")
		require.NoError(t, err)
		assert.Equal(t, 0, res.MappingIndex)
		assert.Equal(t, "m1", res.Identity.CurrentModel)
	})

	t.Run("environment model wins over argument", func(t *testing.T) {
		res, err := NewResolver(env, gitDetector(false)).ResolveDetailed("", cfg, "other")
		require.NoError(t, err)
		assert.Equal(t, "m1", res.Identity.CurrentModel)
	})

	t.Run("no match falls through to default", func(t *testing.T) {
		env := env
		env.BaseURL = "https://b"
		res, err := NewResolver(env, gitDetector(false)).ResolveDetailed("", cfg, "")
		require.NoError(t, err)
		assert.Equal(t, SourceDefault, res.Source)
		assert.Equal(t, -1, res.MappingIndex)
		assert.Equal(t, expectedDefault(false, "docker"), res.Prompt)
	})

	t.Run("matched rule without template uses default", func(t *testing.T) {
		cfg := &Config{Mappings: []TemplateMapping{{ModelPatterns: []string{"m1"}}, {ModelPatterns: []string{"m1"}, Template: "later"}}}
		res, err := NewResolver(env, gitDetector(false)).ResolveDetailed("", cfg, "")
		require.NoError(t, err)
		assert.Equal(t, SourceDefault, res.Source)
		assert.Equal(t, 0, res.MappingIndex)
	})
}

func TestResolve_Override(t *testing.T) {
	matchAll := &Config{Mappings: []TemplateMapping{{ModelPatterns: []string{"m1"}, Template: "TEMPLATE"}}}

	t.Run("default path", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "system.md"), []byte("FROM FILE {RUNTIME_VARS_SANDBOX}"), 0644))

		env := config.Env{ConfigDir: dir, SystemMD: set("TRUE"), Model: "m1", Sandbox: "x"}
		res, err := NewResolver(env, gitDetector(true)).ResolveDetailed("mem", matchAll, "")
		require.NoError(t, err)
		assert.Equal(t, SourceOverride, res.Source)
		assert.Equal(t, -1, res.MappingIndex, "template matching is bypassed")
		assert.Equal(t, "FROM FILE {RUNTIME_VARS_SANDBOX}\n\n---\n\nmem", res.Prompt)
		assert.Equal(t, filepath.Join(dir, "system.md"), res.OverridePath)
	})

	t.Run("custom path", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "mine.md")
		require.NoError(t, os.WriteFile(custom, []byte("MINE"), 0644))

		env := config.Env{ConfigDir: t.TempDir(), SystemMD: set(custom), Model: "m1"}
		got, err := NewResolver(env, gitDetector(false)).Resolve("", matchAll, "")
		require.NoError(t, err)
		assert.Equal(t, "MINE", got)
	})

	t.Run("missing file fails", func(t *testing.T) {
		for _, signal := range []string{"1", "true", filepath.Join(t.TempDir(), "absent.md")} {
			env := config.Env{ConfigDir: t.TempDir(), SystemMD: set(signal)}
			got, err := NewResolver(env, gitDetector(false)).Resolve("", matchAll, "")

			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr), "signal %q", signal)
			assert.Empty(t, got)
		}
	})

	t.Run("disabled values ignore the file", func(t *testing.T) {
		for _, signal := range []string{"0", "false", "False"} {
			env := config.Env{ConfigDir: t.TempDir(), SystemMD: set(signal)}
			res, err := NewResolver(env, gitDetector(false)).ResolveDetailed("", nil, "")
			require.NoError(t, err)
			assert.Equal(t, SourceDefault, res.Source, "signal %q", signal)
		}
	})
}

func TestResolve_Persist(t *testing.T) {
	t.Run("writes pre-memory body to default path", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "not", "yet", "created")
		env := config.Env{ConfigDir: dir, WriteSystemMD: set("1")}
		r := NewResolver(env, gitDetector(true))

		res, err := r.ResolveDetailed("memory stays out", nil, "")
		require.NoError(t, err)
		target := filepath.Join(dir, "system.md")
		assert.Equal(t, target, res.PersistedTo)

		written, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, res.Body, string(written))
		assert.False(t, strings.Contains(string(written), "memory stays out"))

		// A second run overwrites without error.
		require.NoError(t, os.WriteFile(target, []byte("stale"), 0644))
		_, err = r.Resolve("", nil, "")
		require.NoError(t, err)
		written, err = os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, res.Body, string(written))
	})

	t.Run("custom write path", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "a", "b", "exported.md")
		env := config.Env{ConfigDir: t.TempDir(), WriteSystemMD: set(target)}

		res, err := NewResolver(env, gitDetector(false)).ResolveDetailed("", nil, "")
		require.NoError(t, err)
		assert.Equal(t, target, res.PersistedTo)

		written, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, expectedDefault(false, ""), string(written))
	})

	t.Run("disabled write signal", func(t *testing.T) {
		dir := t.TempDir()
		env := config.Env{ConfigDir: dir, WriteSystemMD: set("false")}

		res, err := NewResolver(env, gitDetector(false)).ResolveDetailed("", nil, "")
		require.NoError(t, err)
		assert.Empty(t, res.PersistedTo)
		_, statErr := os.Stat(filepath.Join(dir, "system.md"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("matched templates are not persisted", func(t *testing.T) {
		dir := t.TempDir()
		env := config.Env{ConfigDir: dir, WriteSystemMD: set("1"), Model: "m"}
		cfg := &Config{Mappings: []TemplateMapping{{ModelPatterns: []string{"m"}, Template: "T"}}}

		res, err := NewResolver(env, gitDetector(false)).ResolveDetailed("", cfg, "")
		require.NoError(t, err)
		assert.Empty(t, res.PersistedTo)
		_, statErr := os.Stat(filepath.Join(dir, "system.md"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("override skips the write", func(t *testing.T) {
		dir := t.TempDir()
		override := filepath.Join(dir, "system.md")
		require.NoError(t, os.WriteFile(override, []byte("OVERRIDE"), 0644))
		env := config.Env{ConfigDir: dir, SystemMD: set("1"), WriteSystemMD: set("1")}

		got, err := NewResolver(env, gitDetector(false)).Resolve("", nil, "")
		require.NoError(t, err)
		assert.Equal(t, "OVERRIDE", got)

		content, err := os.ReadFile(override)
		require.NoError(t, err)
		assert.Equal(t, "OVERRIDE", string(content))
	})

	t.Run("write failure is returned with the prompt", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		env := config.Env{ConfigDir: t.TempDir(), WriteSystemMD: set(filepath.Join(blocker, "system.md"))}

		got, err := NewResolver(env, gitDetector(false)).Resolve("mem", nil, "")
		var persistErr *PersistError
		require.True(t, errors.As(err, &persistErr))
		assert.Equal(t, expectedDefault(false, "")+"\n\n---\n\nmem", got)
	})
}

func unsetHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", "")
	require.NoError(t, os.Unsetenv("HOME"))
	if _, err := os.UserHomeDir(); err == nil {
		t.Skip("home directory is still resolvable on this platform")
	}
}

func TestResolve_WithoutHomeDirectory(t *testing.T) {
	unsetHome(t)

	t.Run("absent signals resolve the default", func(t *testing.T) {
		got, err := NewResolver(config.Env{}, gitDetector(false)).Resolve("mem", nil, "")
		require.NoError(t, err)
		assert.Equal(t, expectedDefault(false, "")+"\n\n---\n\nmem", got)
	})

	t.Run("disabled and custom signals need no home", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "system.md")
		env := config.Env{SystemMD: set("false"), WriteSystemMD: set(target)}

		res, err := NewResolver(env, gitDetector(false)).ResolveDetailed("", nil, "")
		require.NoError(t, err)
		assert.Equal(t, target, res.PersistedTo)
	})

	t.Run("default write path fails softly", func(t *testing.T) {
		env := config.Env{WriteSystemMD: set("1")}

		got, err := NewResolver(env, gitDetector(false)).Resolve("", nil, "")
		var persistErr *PersistError
		require.True(t, errors.As(err, &persistErr))
		assert.Equal(t, expectedDefault(false, ""), got)
	})

	t.Run("default override path is an error", func(t *testing.T) {
		env := config.Env{SystemMD: set("true")}

		got, err := NewResolver(env, gitDetector(false)).Resolve("", nil, "")
		assert.Error(t, err)
		assert.Empty(t, got)
	})
}

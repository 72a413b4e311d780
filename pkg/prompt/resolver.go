// Package prompt decides the system prompt sent to the model at session start.
//
// Exactly one source supplies the prompt body:
//
//  1. an override file, when ASTROCODE_SYSTEM_MD enables one;
//  2. otherwise the template of the first matching TemplateMapping;
//  3. otherwise the built-in default.
//
// Templates and the default have their runtime placeholders filled, the
// default may be written to disk for editing, and user memory is appended last.
package prompt

import (
	"errors"
	"os"

	"github.com/entrhq/astrocode/pkg/config"
	"github.com/entrhq/astrocode/pkg/logging"
	"github.com/entrhq/astrocode/pkg/workspace"
)

// Source names where the prompt body came from.
type Source string

const (
	SourceOverride Source = "override"
	SourceTemplate Source = "template"
	SourceDefault  Source = "default"
)

// Resolution is the full outcome of one resolution.
type Resolution struct {
	Source Source
	// Body is the prompt before memory is appended.
	Body string
	// Prompt is the final string sent to the model.
	Prompt string
	// MappingIndex is the matched rule, or -1.
	MappingIndex int
	// OverridePath is set when Source is SourceOverride.
	OverridePath string
	// PersistedTo is the file the default body was written to, if any.
	PersistedTo string
	Identity    RuntimeIdentity
}

// Resolver resolves system prompts against one captured environment.
type Resolver struct {
	env       config.Env
	workDir   string
	isGitRepo func(dir string) bool
	logger    *logging.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithWorkDir sets the directory probed for a git repository. Defaults to the
// process working directory.
func WithWorkDir(dir string) ResolverOption {
	return func(r *Resolver) {
		r.workDir = dir
	}
}

// WithGitDetector replaces the git repository probe.
func WithGitDetector(fn func(dir string) bool) ResolverOption {
	return func(r *Resolver) {
		r.isGitRepo = fn
	}
}

// WithLogger sets the logger. Without it the resolver logs nothing.
func WithLogger(logger *logging.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver over env. env is used as-is for every call.
func NewResolver(env config.Env, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		env:       env,
		isGitRepo: workspace.IsGitRepository,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewDiscardLogger("prompt")
	}
	return r
}

// Resolve returns the system prompt for this session. model is the identity
// used when OPENAI_MODEL is not set.
//
// A missing override file yields a *ConfigError and no prompt. When writing
// the default body fails, the prompt is returned together with a
// *PersistError.
func (r *Resolver) Resolve(memory string, cfg *Config, model string) (string, error) {
	res, err := r.ResolveDetailed(memory, cfg, model)
	if res == nil {
		return "", err
	}
	return res.Prompt, err
}

// ResolveDetailed is Resolve with the intermediate decisions exposed.
func (r *Resolver) ResolveDetailed(memory string, cfg *Config, model string) (*Resolution, error) {
	// The default path needs a home directory, so it is only computed when a
	// signal asks for it.
	defaultPath := r.env.SystemPromptPath

	override, err := parseOverride(r.env.SystemMD, defaultPath)
	if err != nil {
		return nil, err
	}

	if override.Enabled() {
		body, err := override.Load()
		if err != nil {
			var cfgErr *ConfigError
			if errors.As(err, &cfgErr) {
				r.logger.Errorf("System prompt override enabled (%s) but file is missing: %s", override.Mode, cfgErr.Path)
			}
			return nil, err
		}
		r.logger.Infof("Using system prompt override from %s (%s)", override.Path, override.Mode)
		return &Resolution{
			Source:       SourceOverride,
			Body:         body,
			Prompt:       Compose(body, memory),
			MappingIndex: -1,
			OverridePath: override.Path,
		}, nil
	}

	id := r.identity(model)
	res := &Resolution{MappingIndex: -1, Identity: id}

	if cfg != nil {
		if i := FindMapping(cfg.Mappings, id.CurrentEndpoint, id.CurrentModel); i >= 0 {
			res.MappingIndex = i
			if tmpl := cfg.Mappings[i].Template; tmpl != "" {
				r.logger.Infof("Matched system prompt mapping #%d for model=%q endpoint=%q", i, id.CurrentModel, id.CurrentEndpoint)
				res.Source = SourceTemplate
				res.Body = Substitute(tmpl, id)
				res.Prompt = Compose(res.Body, memory)
				return res, nil
			}
			r.logger.Warnf("System prompt mapping #%d matched but has no template; using default", i)
		}
	}

	res.Source = SourceDefault
	res.Body = Substitute(DefaultBody(), id)
	res.Prompt = Compose(res.Body, memory)

	target, write, err := writeTarget(r.env.WriteSystemMD, defaultPath)
	if err != nil {
		return res, &PersistError{Path: r.env.WriteSystemMD.Value, Err: err}
	}
	if write {
		if err := WriteDefault(target, res.Body); err != nil {
			r.logger.Errorf("Failed to persist default system prompt: %v", err)
			return res, err
		}
		r.logger.Infof("Wrote default system prompt to %s", target)
		res.PersistedTo = target
	}

	return res, nil
}

// identity captures the runtime facts for one resolution.
func (r *Resolver) identity(model string) RuntimeIdentity {
	current := r.env.Model
	if current == "" {
		current = model
	}

	dir := r.workDir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}

	return RuntimeIdentity{
		CurrentModel:    current,
		CurrentEndpoint: r.env.BaseURL,
		IsGitRepository: dir != "" && r.isGitRepo(dir),
		SandboxLabel:    r.env.Sandbox,
	}
}

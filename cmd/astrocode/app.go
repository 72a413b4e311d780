package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/entrhq/astrocode/pkg/config"
	"github.com/entrhq/astrocode/pkg/logging"
	"github.com/entrhq/astrocode/pkg/memory"
	"github.com/entrhq/astrocode/pkg/prompt"
)

// app runs one invocation of the command.
type app struct {
	cfg    *Config
	env    config.Env
	logger *logging.Logger
	stdout io.Writer
	stderr io.Writer

	// isGitRepo replaces the resolver's git probe when set.
	isGitRepo func(dir string) bool
}

// run builds the requested prompt and prints it. A *prompt.PersistError is
// returned after the prompt has been printed.
func (a *app) run(ctx context.Context) error {
	text, buildErr := a.buildPrompt(ctx)
	if text == "" && buildErr != nil {
		return buildErr
	}
	if err := a.emit(text); err != nil {
		return err
	}
	return buildErr
}

func (a *app) buildPrompt(ctx context.Context) (string, error) {
	switch a.cfg.Kind {
	case kindCompress:
		return prompt.CompressionPrompt(), nil
	case kindSummary:
		return prompt.ProjectSummaryPrompt(), nil
	case kindPlanMode:
		return prompt.PlanModeReminder(), nil
	case kindSubagent:
		return prompt.SubagentReminder(splitList(a.cfg.Agents)), nil
	default:
		return a.systemPrompt(ctx)
	}
}

func (a *app) systemPrompt(ctx context.Context) (string, error) {
	env := a.env
	if a.cfg.Model != "" {
		env.Model = a.cfg.Model
	}

	configPath := a.cfg.ConfigPath
	if configPath == "" {
		p, err := config.DefaultPath(env)
		if err != nil {
			return "", err
		}
		configPath = p
	}
	if err := config.Initialize(configPath); err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if llm := config.GetLLM(); llm != nil {
		env = llm.ApplyDefaults(env)
	}

	mappings, err := a.mappings()
	if err != nil {
		return "", err
	}

	workDir, err := filepath.Abs(a.cfg.WorkspaceDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace: %w", err)
	}

	mem, pending, err := a.memoryText(ctx, env, workDir)
	if err != nil {
		return "", err
	}

	if a.cfg.InstructionPath != "" {
		raw, err := os.ReadFile(a.cfg.InstructionPath)
		if err != nil {
			return "", fmt.Errorf("failed to read instruction: %w", err)
		}
		a.logger.Infof("Using custom instruction from %s", a.cfg.InstructionPath)
		if err := pending.commit(ctx); err != nil {
			return "", err
		}
		return prompt.CustomSystemPrompt(prompt.DecodeInstruction(raw), mem), nil
	}

	opts := []prompt.ResolverOption{
		prompt.WithWorkDir(workDir),
		prompt.WithLogger(a.logger),
	}
	if a.isGitRepo != nil {
		opts = append(opts, prompt.WithGitDetector(a.isGitRepo))
	}

	res, err := prompt.NewResolver(env, opts...).ResolveDetailed(mem, &prompt.Config{Mappings: mappings}, a.cfg.Model)
	if res == nil {
		return "", err
	}
	a.logger.Infof("Resolved system prompt from %s source", res.Source)
	if res.PersistedTo != "" {
		fmt.Fprintf(a.stderr, "Wrote default system prompt to %s\n", res.PersistedTo)
	}

	// A prompt was produced, so -remember is kept even if persisting the
	// default failed.
	if commitErr := pending.commit(ctx); commitErr != nil {
		return "", commitErr
	}
	return res.Prompt, err
}

// mappings prefers -mappings over the config file's system_prompt section.
func (a *app) mappings() ([]prompt.TemplateMapping, error) {
	if a.cfg.MappingsPath != "" {
		return prompt.LoadMappingsFile(a.cfg.MappingsPath)
	}
	if sp := config.GetSystemPrompt(); sp != nil {
		return sp.GetMappings(), nil
	}
	return nil, nil
}

// pendingMemory is a -remember entry held back until a prompt resolves.
type pendingMemory struct {
	store  memory.Store
	file   *memory.File
	stderr io.Writer
}

// commit writes the pending memory. A nil receiver does nothing.
func (p *pendingMemory) commit(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.store.Write(ctx, p.file); err != nil {
		return fmt.Errorf("failed to store memory: %w", err)
	}
	fmt.Fprintf(p.stderr, "Stored %s memory %s\n", p.file.Meta.Scope, p.file.Meta.ID)
	return nil
}

// memoryText loads stored memories, merges a -remember entry that is not
// written yet, and appends -memory.
func (a *app) memoryText(ctx context.Context, env config.Env, workDir string) (string, *pendingMemory, error) {
	dir, err := env.Dir()
	if err != nil {
		return "", nil, err
	}
	store := memory.NewFileStore(memory.RepoDir(workDir), memory.UserDir(dir), a.logger)

	var pending *pendingMemory
	if a.cfg.Remember != "" {
		scope, err := memory.ParseScope(a.cfg.RememberScope)
		if err != nil {
			return "", nil, err
		}
		m := memory.New(scope, memory.Category(a.cfg.RememberCat), a.cfg.Remember, a.logger.SessionID())
		if err := m.Meta.Validate(); err != nil {
			return "", nil, err
		}
		pending = &pendingMemory{store: store, file: m, stderr: a.stderr}
	}

	var parts []string
	if !a.cfg.NoMemory {
		loader, err := memory.NewLoader(store, splitList(a.cfg.MemoryInclude), splitList(a.cfg.MemoryExclude))
		if err != nil {
			return "", nil, err
		}
		files, err := loader.Load(ctx)
		if err != nil {
			return "", nil, fmt.Errorf("failed to load memories: %w", err)
		}
		if pending != nil {
			files = loader.Select(append(files, pending.file))
		}
		if text := memory.Render(files); text != "" {
			parts = append(parts, text)
		}
	}
	if extra := strings.TrimSpace(a.cfg.Memory); extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, "\n\n"), pending, nil
}

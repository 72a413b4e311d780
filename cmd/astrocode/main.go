// Package main provides the astrocode command, which prints the prompts an
// AstroCode session would send: the resolved system prompt and the auxiliary
// compression, summary and reminder prompts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/entrhq/astrocode/pkg/config"
	"github.com/entrhq/astrocode/pkg/logging"
	"github.com/entrhq/astrocode/pkg/prompt"
)

const version = "0.1.0"

// Kinds of prompt the command can print.
const (
	kindSystem   = "system"
	kindCompress = "compression"
	kindSummary  = "summary"
	kindPlanMode = "plan-mode"
	kindSubagent = "subagent"
)

const (
	defaultKind     = kindSystem
	defaultAgents   = "python,analysis"
	defaultScope    = "repo"
	defaultCategory = "user-facts"
)

// Config holds the command line configuration.
type Config struct {
	ConfigPath      string
	WorkspaceDir    string
	Model           string
	Kind            string
	Agents          string
	Memory          string
	NoMemory        bool
	MemoryInclude   string
	MemoryExclude   string
	MappingsPath    string
	InstructionPath string
	Remember        string
	RememberScope   string
	RememberCat     string
	Color           bool
	Copy            bool
	Stats           bool
	ShowVersion     bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("AstroCode v%s\n", version)
		return
	}

	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	env := config.LoadEnv()
	if dir, err := env.Dir(); err == nil {
		logging.SetBaseDir(dir)
	}

	// NewLogger falls back to stderr when the log file cannot be opened.
	logger, _ := logging.NewLogger("astrocode")
	defer logger.Close()

	app := &app{
		cfg:    cfg,
		env:    env,
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	if runErr := app.run(ctx); runErr != nil {
		var persistErr *prompt.PersistError
		if errors.As(runErr, &persistErr) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", runErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		}
		logger.Close()
		os.Exit(1)
	}
}

// parseFlags parses command line flags.
func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to config.json (default: <config-dir>/config.json)")
	flag.StringVar(&cfg.WorkspaceDir, "workspace", ".", "Workspace directory probed for git and repository memories")
	flag.StringVar(&cfg.Model, "model", "", "Model identity (overrides OPENAI_MODEL and the config file)")
	flag.StringVar(&cfg.Kind, "kind", defaultKind, "Prompt to print: system, compression, summary, plan-mode, subagent")
	flag.StringVar(&cfg.Agents, "agents", defaultAgents, "Comma-separated agent types for -kind subagent")
	flag.StringVar(&cfg.Memory, "memory", "", "Extra memory text appended after stored memories")
	flag.BoolVar(&cfg.NoMemory, "no-memory", false, "Do not load stored memories")
	flag.StringVar(&cfg.MemoryInclude, "memory-include", "", "Comma-separated globs selecting memories by <scope>/<category>/<id>")
	flag.StringVar(&cfg.MemoryExclude, "memory-exclude", "", "Comma-separated globs excluding memories")
	flag.StringVar(&cfg.MappingsPath, "mappings", "", "YAML or JSON file of template mappings (replaces the config file's)")
	flag.StringVar(&cfg.InstructionPath, "instruction", "", "JSON instruction file used as a custom system prompt")
	flag.StringVar(&cfg.Remember, "remember", "", "Store this text as a new memory before resolving")
	flag.StringVar(&cfg.RememberScope, "remember-scope", defaultScope, "Scope for -remember: repo or user")
	flag.StringVar(&cfg.RememberCat, "remember-category", defaultCategory, "Category for -remember")
	flag.BoolVar(&cfg.Color, "color", false, "Highlight the printed prompt as Markdown")
	flag.BoolVar(&cfg.Copy, "copy", false, "Copy the printed prompt to the clipboard")
	flag.BoolVar(&cfg.Stats, "stats", false, "Print character and token counts to stderr")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "AstroCode - system prompt resolution\n\n")
		fmt.Fprintf(os.Stderr, "Usage: astrocode [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %-26s Override file: 0/false off, 1/true <config-dir>/system.md, else a path\n", config.EnvSystemMD)
		fmt.Fprintf(os.Stderr, "  %-26s Write the default prompt: same values as above\n", config.EnvWriteSystemMD)
		fmt.Fprintf(os.Stderr, "  %-26s Model identity used for template matching\n", config.EnvModel)
		fmt.Fprintf(os.Stderr, "  %-26s Endpoint used for template matching\n", config.EnvBaseURL)
		fmt.Fprintf(os.Stderr, "  %-26s Sandbox label substituted into the prompt\n", config.EnvSandbox)
		fmt.Fprintf(os.Stderr, "  %-26s Config directory (default ~/.astrocode)\n", config.EnvConfigDir)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  astrocode                                  # Print the system prompt\n")
		fmt.Fprintf(os.Stderr, "  astrocode -color -stats\n")
		fmt.Fprintf(os.Stderr, "  astrocode -kind compression\n")
		fmt.Fprintf(os.Stderr, "  ASTROCODE_WRITE_SYSTEM_MD=1 astrocode        # Export the default for editing\n")
	}

	flag.Parse()
	return cfg
}

// validate checks that the configuration is valid.
func (c *Config) validate() error {
	switch c.Kind {
	case kindSystem, kindCompress, kindSummary, kindPlanMode, kindSubagent:
	default:
		return fmt.Errorf("unknown prompt kind %q", c.Kind)
	}

	info, err := os.Stat(c.WorkspaceDir)
	if err != nil {
		return fmt.Errorf("workspace directory error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workspace path is not a directory: %s", c.WorkspaceDir)
	}
	return nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

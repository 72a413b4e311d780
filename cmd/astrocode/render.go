package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/atotto/clipboard"

	"github.com/entrhq/astrocode/pkg/tokenizer"
)

// emit prints text and applies -color, -copy and -stats.
func (a *app) emit(text string) error {
	if a.cfg.Color {
		if err := quick.Highlight(a.stdout, text, "markdown", "terminal256", "monokai"); err != nil {
			return fmt.Errorf("failed to highlight prompt: %w", err)
		}
		fmt.Fprintln(a.stdout)
	} else {
		fmt.Fprintln(a.stdout, text)
	}

	if a.cfg.Copy {
		if err := clipboard.WriteAll(text); err != nil {
			a.logger.Warnf("Clipboard copy failed: %v", err)
			fmt.Fprintf(a.stderr, "Warning: could not copy to clipboard: %v\n", err)
		}
	}

	if a.cfg.Stats {
		tok, err := tokenizer.New()
		if err != nil {
			a.logger.Warnf("Tokenizer unavailable, estimating: %v", err)
			tok = nil
		}
		fmt.Fprintln(a.stderr, formatStats(text, tok))
	}
	return nil
}

// formatStats summarizes text size. Without a tokenizer the token count is
// an estimate and is marked with "~".
func formatStats(text string, tok *tokenizer.Tokenizer) string {
	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}
	marker := ""
	if tok == nil {
		marker = "~"
	}
	return fmt.Sprintf("chars=%d lines=%d tokens=%s%d", len(text), lines, marker, tokenizer.Count(tok, text))
}

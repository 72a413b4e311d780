package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// PatternMatcher filters memories by their Key.
type PatternMatcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewPatternMatcher compiles include and exclude globs. "*" stops at "/" and
// "**" crosses it, so "repo/**" selects every repository memory.
func NewPatternMatcher(include, exclude []string) (*PatternMatcher, error) {
	pm := &PatternMatcher{}

	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern '%s': %w", pattern, err)
		}
		pm.include = append(pm.include, g)
	}

	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
		pm.exclude = append(pm.exclude, g)
	}

	return pm, nil
}

// Allows reports whether key passes the filter. Exclusions take precedence,
// and an empty include list admits everything.
func (pm *PatternMatcher) Allows(key string) bool {
	for _, pattern := range pm.exclude {
		if pattern.Match(key) {
			return false
		}
	}

	if len(pm.include) == 0 {
		return true
	}

	for _, pattern := range pm.include {
		if pattern.Match(key) {
			return true
		}
	}
	return false
}

// Loader turns stored memories into the text appended to the system prompt.
type Loader struct {
	store   Store
	matcher *PatternMatcher
}

// NewLoader creates a loader over store with optional include and exclude
// patterns.
func NewLoader(store Store, include, exclude []string) (*Loader, error) {
	matcher, err := NewPatternMatcher(include, exclude)
	if err != nil {
		return nil, err
	}
	return &Loader{store: store, matcher: matcher}, nil
}

// Load returns the selected memories, repository scope before user scope and
// oldest first within a scope.
func (l *Loader) Load(ctx context.Context) ([]*File, error) {
	all, err := l.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return l.Select(all), nil
}

// Select filters files by the loader's patterns and orders them like Load.
// It lets callers merge memories that are not stored yet.
func (l *Loader) Select(files []*File) []*File {
	var selected []*File
	for _, f := range files {
		if l.matcher.Allows(f.Key()) {
			selected = append(selected, f)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i].Meta, selected[j].Meta
		if a.Scope != b.Scope {
			return scopeRank(a.Scope) < scopeRank(b.Scope)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return selected
}

// LoadText is Load followed by Render.
func (l *Loader) LoadText(ctx context.Context) (string, error) {
	files, err := l.Load(ctx)
	if err != nil {
		return "", err
	}
	return Render(files), nil
}

// Render joins the trimmed bodies with blank lines, skipping empty ones.
func Render(files []*File) string {
	parts := make([]string, 0, len(files))
	for _, f := range files {
		if body := strings.TrimSpace(f.Content); body != "" {
			parts = append(parts, body)
		}
	}
	return strings.Join(parts, "\n\n")
}

func scopeRank(s Scope) int {
	switch s {
	case ScopeRepo:
		return 0
	case ScopeUser:
		return 1
	default:
		return 2
	}
}

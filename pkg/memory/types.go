// Package memory stores the user's long-term memories and renders them into
// the text appended to the system prompt.
//
// Each memory is a Markdown file with YAML front-matter. Repository memories
// live under <workspace>/.astrocode/memory and user memories under
// <config-dir>/memory.
package memory

import (
	"fmt"
	"time"
)

// Scope determines where a memory file is stored.
type Scope string

const (
	ScopeRepo Scope = "repo"
	ScopeUser Scope = "user"
)

// Category classifies the kind of information a memory encodes.
type Category string

const (
	CategoryCodingPreferences  Category = "coding-preferences"
	CategoryProjectConventions Category = "project-conventions"
	CategoryResearchContext    Category = "research-context"
	CategoryUserFacts          Category = "user-facts"
	CategoryCorrections        Category = "corrections"
)

// ParseScope converts s into a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeRepo, ScopeUser:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("memory: unknown scope %q", s)
	}
}

// Meta holds the YAML front-matter fields.
type Meta struct {
	ID        string    `yaml:"id"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Version   int       `yaml:"version"`
	Scope     Scope     `yaml:"scope"`
	Category  Category  `yaml:"category"`
	Tags      []string  `yaml:"tags,omitempty"`
	SessionID string    `yaml:"session_id,omitempty"`
}

// Validate ensures all required metadata fields are populated.
func (m *Meta) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("memory: missing ID")
	}
	if m.Scope == "" {
		return fmt.Errorf("memory: missing Scope")
	}
	if m.Category == "" {
		return fmt.Errorf("memory: missing Category")
	}
	if m.Version <= 0 {
		return fmt.Errorf("memory: invalid Version")
	}
	return nil
}

// File is the parsed representation of a memory file.
type File struct {
	Meta    Meta
	Content string
}

// Key is the slash-separated name include and exclude patterns match
// against: "<scope>/<category>/<id>".
func (f *File) Key() string {
	return string(f.Meta.Scope) + "/" + string(f.Meta.Category) + "/" + f.Meta.ID
}

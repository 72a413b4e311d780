package config

import (
	"encoding/json"
	"fmt"
	"sync"
)

const (
	// SectionIDSystemPrompt is the identifier for the system prompt section
	SectionIDSystemPrompt = "system_prompt"
)

// TemplateMapping routes a model/endpoint identity to a prompt template.
// A nil pattern list places no constraint on that dimension; an empty,
// non-nil list matches nothing.
type TemplateMapping struct {
	EndpointPatterns []string `json:"base_urls" yaml:"base_urls,omitempty"`
	ModelPatterns    []string `json:"model_names" yaml:"model_names,omitempty"`
	Template         string   `json:"template,omitempty" yaml:"template,omitempty"`
}

// SystemPromptSection stores the ordered template mappings.
type SystemPromptSection struct {
	Mappings []TemplateMapping
	mu       sync.RWMutex
}

// NewSystemPromptSection creates an empty section.
func NewSystemPromptSection() *SystemPromptSection {
	return &SystemPromptSection{}
}

// ID returns the section identifier.
func (s *SystemPromptSection) ID() string {
	return SectionIDSystemPrompt
}

// Title returns the section title.
func (s *SystemPromptSection) Title() string {
	return "System Prompt Mappings"
}

// Description returns the section description.
func (s *SystemPromptSection) Description() string {
	return "Ordered base_urls/model_names to template rules. The first matching rule supplies the system prompt."
}

// Data returns the current configuration data.
func (s *SystemPromptSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mappings := make([]TemplateMapping, len(s.Mappings))
	copy(mappings, s.Mappings)
	return map[string]any{
		"mappings": mappings,
	}
}

// SetData accepts either decoded JSON ([]any of objects) or a []TemplateMapping.
func (s *SystemPromptSection) SetData(data map[string]any) error {
	raw, ok := data["mappings"]
	if !ok || raw == nil {
		return nil
	}

	var mappings []TemplateMapping
	switch v := raw.(type) {
	case []TemplateMapping:
		mappings = append(mappings, v...)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode mappings: %w", err)
		}
		if err := json.Unmarshal(b, &mappings); err != nil {
			return fmt.Errorf("invalid mappings: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Mappings = mappings
	return nil
}

// Validate always passes. Rules without patterns are legal and simply never match.
func (s *SystemPromptSection) Validate() error {
	return nil
}

// Reset clears all mappings.
func (s *SystemPromptSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Mappings = nil
}

// GetMappings returns a copy of the configured mappings.
func (s *SystemPromptSection) GetMappings() []TemplateMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Mappings == nil {
		return nil
	}
	out := make([]TemplateMapping, len(s.Mappings))
	copy(out, s.Mappings)
	return out
}

// SetMappings replaces the configured mappings.
func (s *SystemPromptSection) SetMappings(mappings []TemplateMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Mappings = mappings
}

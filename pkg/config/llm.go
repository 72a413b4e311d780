package config

import (
	"sync"
)

const (
	// SectionIDLLM is the identifier for the LLM settings section
	SectionIDLLM = "llm"
)

// LLMSection holds the model identity used when OPENAI_MODEL or
// OPENAI_BASE_URL are not set in the environment.
type LLMSection struct {
	Model   string
	BaseURL string
	mu      sync.RWMutex
}

// NewLLMSection creates a new LLM section with default settings.
func NewLLMSection() *LLMSection {
	return &LLMSection{}
}

// ID returns the section identifier.
func (s *LLMSection) ID() string {
	return SectionIDLLM
}

// Title returns the section title.
func (s *LLMSection) Title() string {
	return "LLM Settings"
}

// Description returns the section description.
func (s *LLMSection) Description() string {
	return "Default LLM model and base URL. OPENAI_MODEL and OPENAI_BASE_URL take precedence when set."
}

// Data returns the current configuration data.
func (s *LLMSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"model":    s.Model,
		"base_url": s.BaseURL,
	}
}

// SetData updates the configuration from the provided data.
func (s *LLMSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if model, ok := data["model"].(string); ok {
		s.Model = model
	}
	if baseURL, ok := data["base_url"].(string); ok {
		s.BaseURL = baseURL
	}
	return nil
}

// Validate always passes; reachability is never checked here.
func (s *LLMSection) Validate() error {
	return nil
}

// Reset resets the section to default configuration.
func (s *LLMSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Model = ""
	s.BaseURL = ""
}

// GetModel returns the configured model name.
func (s *LLMSection) GetModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Model
}

// GetBaseURL returns the configured base URL.
func (s *LLMSection) GetBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BaseURL
}

// ApplyDefaults fills Model and BaseURL in env from this section when the
// environment left them empty. The environment always wins.
func (s *LLMSection) ApplyDefaults(env Env) Env {
	if env.Model == "" {
		env.Model = s.GetModel()
	}
	if env.BaseURL == "" {
		env.BaseURL = s.GetBaseURL()
	}
	return env
}

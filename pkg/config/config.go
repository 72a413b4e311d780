package config

import (
	"path/filepath"
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// DefaultPath returns <config-dir>/config.json for env.
func DefaultPath(env Env) (string, error) {
	dir, err := env.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// NewDefaultManager builds a manager over the JSON file at configPath with the
// LLM and system prompt sections registered and loaded.
func NewDefaultManager(configPath string) (*Manager, error) {
	store, err := NewFileStore(configPath)
	if err != nil {
		return nil, err
	}

	manager := NewManager(store)
	if err := manager.RegisterSection(NewLLMSection()); err != nil {
		return nil, err
	}
	if err := manager.RegisterSection(NewSystemPromptSection()); err != nil {
		return nil, err
	}
	if err := manager.LoadAll(); err != nil {
		return nil, err
	}
	return manager, nil
}

// Initialize creates and initializes the global configuration manager.
// This should be called once at application startup.
func Initialize(configPath string) error {
	manager, err := NewDefaultManager(configPath)
	if err != nil {
		return err
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}
	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetLLM returns the LLM settings section from global config.
// Returns nil if config is not initialized.
func GetLLM() *LLMSection {
	if !IsInitialized() {
		return nil
	}
	section, ok := Global().GetSection(SectionIDLLM)
	if !ok {
		return nil
	}
	llm, _ := section.(*LLMSection)
	return llm
}

// GetSystemPrompt returns the system prompt section from global config.
// Returns nil if config is not initialized.
func GetSystemPrompt() *SystemPromptSection {
	if !IsInitialized() {
		return nil
	}
	section, ok := Global().GetSection(SectionIDSystemPrompt)
	if !ok {
		return nil
	}
	sp, _ := section.(*SystemPromptSection)
	return sp
}

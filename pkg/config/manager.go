package config

import (
	"fmt"
	"sync"
)

// Section is one named block of configuration that knows how to move its
// values to and from the generic map form kept by a Store.
type Section interface {
	ID() string
	Title() string
	Description() string
	Data() map[string]any
	SetData(data map[string]any) error
	Validate() error
	Reset()
}

// Manager owns the registered sections and the store that backs them.
type Manager struct {
	store    Store
	sections map[string]Section
	order    []string
	mu       sync.RWMutex
}

// NewManager creates a manager backed by store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// RegisterSection adds a section. IDs must be unique.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q already registered", id)
	}
	m.sections[id] = section
	m.order = append(m.order, id)
	return nil
}

// GetSection returns the section registered under id.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns all sections in registration order.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.order))
	for _, id := range m.order {
		sections = append(sections, m.sections[id])
	}
	return sections
}

// LoadAll reloads the store and pushes each section's stored data into it.
func (m *Manager) LoadAll() error {
	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	for _, section := range m.GetSections() {
		data, err := m.store.GetSection(section.ID())
		if err != nil {
			return fmt.Errorf("failed to read section %s: %w", section.ID(), err)
		}
		if len(data) == 0 {
			continue
		}
		if err := section.SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %s: %w", section.ID(), err)
		}
		if err := section.Validate(); err != nil {
			return fmt.Errorf("invalid section %s: %w", section.ID(), err)
		}
	}
	return nil
}

// SaveAll validates every section, copies it into the store and saves.
func (m *Manager) SaveAll() error {
	for _, section := range m.GetSections() {
		if err := section.Validate(); err != nil {
			return fmt.Errorf("invalid section %s: %w", section.ID(), err)
		}
		if err := m.store.SetSection(section.ID(), section.Data()); err != nil {
			return fmt.Errorf("failed to store section %s: %w", section.ID(), err)
		}
	}
	return m.store.Save()
}

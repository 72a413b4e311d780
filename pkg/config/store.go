package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const storeVersion = "1.0"

// Store provides persistence for configuration data.
type Store interface {
	// Load loads the configuration from disk
	Load() error

	// Save saves the configuration to disk
	Save() error

	// GetSection retrieves configuration data for a specific section
	GetSection(sectionID string) (map[string]any, error)

	// SetSection stores configuration data for a specific section
	SetSection(sectionID string, data map[string]any) error
}

// fileFormat is the on-disk layout of config.json.
type fileFormat struct {
	Version  string                    `json:"version"`
	Sections map[string]map[string]any `json:"sections"`
}

// FileStore implements Store using a JSON file.
type FileStore struct {
	path     string
	data     map[string]map[string]any
	mu       sync.RWMutex
	version  string
	modified bool
}

// NewFileStore creates a file-based configuration store at path and loads it
// if the file exists. A missing file yields an empty store.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("config store path is required")
	}

	store := &FileStore{
		path:    path,
		data:    make(map[string]map[string]any),
		version: storeVersion,
	}
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return store, nil
}

// Load loads the configuration from disk.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]map[string]any)
			return nil
		}
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg fileFormat
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	if cfg.Version != "" {
		s.version = cfg.Version
	}
	s.data = cfg.Sections
	if s.data == nil {
		s.data = make(map[string]map[string]any)
	}
	s.modified = false
	return nil
}

// Save writes the configuration through a temp file and an atomic rename.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fileFormat{Version: s.version, Sections: s.data}); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.modified = false
	return nil
}

// GetSection returns a copy of the section data, or an empty map.
func (s *FileStore) GetSection(sectionID string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySection(s.data[sectionID]), nil
}

// SetSection stores a copy of data under sectionID.
func (s *FileStore) SetSection(sectionID string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sectionID] = copySection(data)
	s.modified = true
	return nil
}

// IsModified returns true if the store has unsaved changes.
func (s *FileStore) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}

func copySection(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

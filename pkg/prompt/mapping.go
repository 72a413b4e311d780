package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/entrhq/astrocode/pkg/config"
	"gopkg.in/yaml.v3"
)

// TemplateMapping routes a model/endpoint identity to a template.
type TemplateMapping = config.TemplateMapping

// Config is the caller-supplied input to resolution. It is never mutated.
type Config struct {
	Mappings []TemplateMapping
}

// normalizeEndpoint drops exactly one trailing slash.
func normalizeEndpoint(endpoint string) string {
	return strings.TrimSuffix(endpoint, "/")
}

func endpointMatches(patterns []string, endpoint string) bool {
	target := normalizeEndpoint(endpoint)
	for _, p := range patterns {
		if normalizeEndpoint(p) == target {
			return true
		}
	}
	return false
}

func modelMatches(patterns []string, model string) bool {
	for _, p := range patterns {
		if p == model {
			return true
		}
	}
	return false
}

// matches applies one rule. A rule with both pattern sets needs both to hit;
// a rule with one set needs that one; a rule with neither never matches.
// A set is present when it is non-nil, so an explicit empty list constrains
// its dimension to nothing.
func matches(m TemplateMapping, endpoint, model string) bool {
	hasEndpoints := m.EndpointPatterns != nil
	hasModels := m.ModelPatterns != nil

	switch {
	case hasEndpoints && hasModels:
		return endpointMatches(m.EndpointPatterns, endpoint) && modelMatches(m.ModelPatterns, model)
	case hasEndpoints:
		return endpointMatches(m.EndpointPatterns, endpoint)
	case hasModels:
		return modelMatches(m.ModelPatterns, model)
	default:
		return false
	}
}

// FindMapping returns the index of the first rule that matches the identity,
// or -1.
func FindMapping(mappings []TemplateMapping, endpoint, model string) int {
	for i, m := range mappings {
		if matches(m, endpoint, model) {
			return i
		}
	}
	return -1
}

// MatchTemplate returns the template of the first matching rule. The scan
// stops at that rule, so a first match with an empty template reports no match.
func MatchTemplate(mappings []TemplateMapping, endpoint, model string) (string, bool) {
	i := FindMapping(mappings, endpoint, model)
	if i < 0 || mappings[i].Template == "" {
		return "", false
	}
	return mappings[i].Template, true
}

type mappingsFile struct {
	Mappings []TemplateMapping `json:"mappings" yaml:"mappings"`
}

// LoadMappingsFile reads template mappings from a YAML (.yaml, .yml) or JSON
// file. The document may be a bare list of rules or an object with a
// "mappings" list.
func LoadMappingsFile(path string) ([]TemplateMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings file: %w", err)
	}

	unmarshal := json.Unmarshal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	}

	var list []TemplateMapping
	if err := unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped mappingsFile
	if err := unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse mappings file %s: %w", path, err)
	}
	return wrapped.Mappings, nil
}

package memory

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// Parse deserializes a raw memory file.
func Parse(raw []byte) (*File, error) {
	s := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(s, frontMatterDelimiter) {
		return nil, fmt.Errorf("memory: missing front-matter delimiter")
	}
	rest := s[len(frontMatterDelimiter):]
	idx := strings.Index(rest, "\n"+frontMatterDelimiter)
	if idx == -1 {
		return nil, fmt.Errorf("memory: unclosed front-matter block")
	}
	yamlBlock := rest[:idx]
	body := rest[idx+len("\n"+frontMatterDelimiter):]
	// The closing delimiter may be followed by one blank line.
	if strings.HasPrefix(body, "\n\n") {
		body = body[2:]
	} else if strings.HasPrefix(body, "\n") {
		body = body[1:]
	}

	var meta Meta
	if err := yaml.Unmarshal([]byte(yamlBlock), &meta); err != nil {
		return nil, fmt.Errorf("memory: front-matter parse error: %w", err)
	}
	return &File{Meta: meta, Content: body}, nil
}

// Serialize renders a File back to its on-disk form.
func Serialize(f *File) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(&f.Meta)
	if err != nil {
		return nil, fmt.Errorf("memory: serialize error: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(frontMatterDelimiter + "\n")
	sb.Write(yamlBytes)
	sb.WriteString(frontMatterDelimiter + "\n\n")
	sb.WriteString(f.Content)
	return []byte(sb.String()), nil
}

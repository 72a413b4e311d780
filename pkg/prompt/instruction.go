package prompt

import (
	"encoding/json"
	"strings"
)

// Instruction is a caller-supplied system instruction. The set of shapes is
// closed: TextInstruction, PartsInstruction, ContentInstruction,
// PartInstruction and UnknownInstruction.
type Instruction interface {
	text() string
}

// Part is one piece of a multi-part instruction.
type Part struct {
	Text string
}

// TextInstruction is a plain string.
type TextInstruction string

// PartsInstruction is a bare list of parts.
type PartsInstruction []Part

// ContentInstruction is an object carrying a list of parts.
type ContentInstruction struct {
	Parts []Part
}

// PartInstruction is a single object carrying text.
type PartInstruction struct {
	Text string
}

// UnknownInstruction is anything else. It contributes no text.
type UnknownInstruction struct{}

func (t TextInstruction) text() string    { return string(t) }
func (p PartsInstruction) text() string   { return joinParts(p) }
func (c ContentInstruction) text() string { return joinParts(c.Parts) }
func (p PartInstruction) text() string    { return p.Text }
func (UnknownInstruction) text() string   { return "" }

func joinParts(parts []Part) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// InstructionText returns the text of i; nil yields "".
func InstructionText(i Instruction) string {
	if i == nil {
		return ""
	}
	return i.text()
}

// DecodeInstruction classifies a JSON document into one Instruction shape:
//
//	"text"                      -> TextInstruction
//	["a", {"text": "b"}]        -> PartsInstruction
//	{"parts": [...]}            -> ContentInstruction
//	{"text": "..."}             -> PartInstruction
//
// Malformed or unrecognized input becomes UnknownInstruction. Parts that are
// neither strings nor objects with string text contribute empty text.
func DecodeInstruction(data []byte) Instruction {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return UnknownInstruction{}
	}

	switch v := raw.(type) {
	case string:
		return TextInstruction(v)
	case []any:
		return PartsInstruction(decodeParts(v))
	case map[string]any:
		if parts, ok := v["parts"]; ok {
			list, _ := parts.([]any)
			return ContentInstruction{Parts: decodeParts(list)}
		}
		if t, ok := v["text"]; ok {
			s, _ := t.(string)
			return PartInstruction{Text: s}
		}
	}
	return UnknownInstruction{}
}

func decodeParts(list []any) []Part {
	parts := make([]Part, 0, len(list))
	for _, item := range list {
		switch p := item.(type) {
		case string:
			parts = append(parts, Part{Text: p})
		case map[string]any:
			s, _ := p["text"].(string)
			parts = append(parts, Part{Text: s})
		default:
			parts = append(parts, Part{})
		}
	}
	return parts
}

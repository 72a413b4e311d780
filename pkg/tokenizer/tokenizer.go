// Package tokenizer counts prompt tokens on the client side.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE used for counting. It is close enough for the
// OpenAI-compatible endpoints AstroCode talks to.
const DefaultEncoding = "cl100k_base"

// Tokenizer wraps a tiktoken encoding.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New loads the default encoding. Loading may need network access the first
// time, so callers should be ready to fall back to Estimate.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(DefaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", DefaultEncoding, err)
	}
	return &Tokenizer{encoding: enc}, nil
}

// CountTokens returns the number of tokens in text.
func (t *Tokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// Count uses t when it is non-nil and falls back to Estimate otherwise.
func Count(t *Tokenizer, text string) int {
	if t == nil {
		return Estimate(text)
	}
	return t.CountTokens(text)
}

// Estimate approximates the token count at roughly four bytes per token.
func Estimate(text string) int {
	return (len(text) + 3) / 4
}

package memory

import (
	"time"

	"github.com/google/uuid"
)

var timeNow = time.Now

// NewID generates a new unique memory identifier.
func NewID() string {
	return "mem_" + uuid.NewString()
}

// New builds a first-version memory stamped with the current time.
func New(scope Scope, category Category, content, sessionID string) *File {
	now := timeNow().UTC()
	return &File{
		Meta: Meta{
			ID:        NewID(),
			CreatedAt: now,
			UpdatedAt: now,
			Version:   1,
			Scope:     scope,
			Category:  category,
			SessionID: sessionID,
		},
		Content: content,
	}
}

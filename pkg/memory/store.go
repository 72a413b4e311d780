package memory

import "context"

// Store is the read/write interface for persisted memory files.
type Store interface {
	Write(ctx context.Context, f *File) error
	Read(ctx context.Context, id string) (*File, error)
	List(ctx context.Context) ([]*File, error)
	ListByScope(ctx context.Context, scope Scope) ([]*File, error)
}

package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/entrhq/astrocode/pkg/logging"
)

var ErrNotFound = errors.New("memory: not found")
var ErrAlreadyExists = errors.New("memory: already exists")

// RepoDir is the repository-scope memory directory for workspace.
func RepoDir(workspace string) string {
	return filepath.Join(workspace, ".astrocode", "memory")
}

// UserDir is the user-scope memory directory under the AstroCode config dir.
func UserDir(configDir string) string {
	return filepath.Join(configDir, "memory")
}

// FileStore keeps memory files on the local file system, split across
// repository and user scopes. Directories are created on first write.
type FileStore struct {
	repoDir string
	userDir string
	logger  *logging.Logger
}

// NewFileStore creates a store over the two scope directories. A nil logger
// discards diagnostics.
func NewFileStore(repoDir, userDir string, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewDiscardLogger("memory")
	}
	return &FileStore{repoDir: repoDir, userDir: userDir, logger: logger}
}

func (fs *FileStore) dirForScope(scope Scope) (string, error) {
	switch scope {
	case ScopeRepo:
		return fs.repoDir, nil
	case ScopeUser:
		return fs.userDir, nil
	default:
		return "", fmt.Errorf("memory: unknown scope %q", scope)
	}
}

func (fs *FileStore) pathForID(id string, scope Scope) (string, error) {
	if id == "" {
		return "", fmt.Errorf("memory: invalid id (empty)")
	}
	scopeDir, err := fs.dirForScope(scope)
	if err != nil {
		return "", err
	}
	dir, err := filepath.Abs(scopeDir)
	if err != nil {
		return "", fmt.Errorf("memory: abs dir: %w", err)
	}
	if strings.ContainsAny(id, "/\\") || id == "." || id == ".." {
		return "", fmt.Errorf("memory: invalid id %q (contains path separator)", id)
	}
	return filepath.Join(dir, id+".md"), nil
}

// Write persists a new memory file atomically through a temporary file. It
// returns ErrAlreadyExists if the ID is already present.
func (fs *FileStore) Write(_ context.Context, f *File) error {
	if err := f.Meta.Validate(); err != nil {
		return err
	}
	b, err := Serialize(f)
	if err != nil {
		return err
	}
	path, err := fs.pathForID(f.Meta.ID, f.Meta.Scope)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("memory: init directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return ErrAlreadyExists
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("memory: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("memory: atomic rename %s: %w", path, err)
	}
	fs.logger.Debugf("Wrote %s memory %s", f.Meta.Scope, f.Meta.ID)
	return nil
}

// Read looks a memory up by ID, repository scope first.
func (fs *FileStore) Read(_ context.Context, id string) (*File, error) {
	for _, scope := range []Scope{ScopeRepo, ScopeUser} {
		path, err := fs.pathForID(id, scope)
		if err != nil {
			return nil, err
		}
		b, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("memory: read %s: %w", path, err)
		}
		return Parse(b)
	}
	return nil, ErrNotFound
}

// List returns the valid memory files of both scopes, repository first.
func (fs *FileStore) List(ctx context.Context) ([]*File, error) {
	repo, err := fs.ListByScope(ctx, ScopeRepo)
	if err != nil {
		return nil, err
	}
	user, err := fs.ListByScope(ctx, ScopeUser)
	if err != nil {
		return nil, err
	}
	return append(repo, user...), nil
}

// ListByScope returns the valid memory files in one scope. A missing
// directory holds no memories. Corrupt or unreadable files are skipped.
func (fs *FileStore) ListByScope(ctx context.Context, scope Scope) ([]*File, error) {
	dir, err := fs.dirForScope(scope)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("memory: list %s: %w", dir, err)
	}

	var out []*File
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		filePath := filepath.Join(dir, e.Name())
		b, err := os.ReadFile(filePath)
		if err != nil {
			fs.logger.Warnf("Skipping unreadable memory file %s: %v", filePath, err)
			continue
		}
		f, err := Parse(b)
		if err != nil {
			fs.logger.Warnf("Skipping corrupt memory file %s: %v", filePath, err)
			continue
		}
		// The directory decides the scope, whatever the front-matter says.
		f.Meta.Scope = scope
		out = append(out, f)
	}
	return out, nil
}

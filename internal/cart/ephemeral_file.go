package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/farmgate/storefront/internal/domain"
)

const ephemeralFilePermissions = 0o600

// FileStore is a device-local EphemeralStore persisted as a JSON file.
// Unknown fields in the file are ignored on load, so the format stays
// forward-compatible as fields are added.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed ephemeral store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored records. A missing file is an empty cart.
func (s *FileStore) Load(_ context.Context) ([]EphemeralLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read ephemeral cart: %v", domain.ErrPersistence, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var lines []EphemeralLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: decode ephemeral cart: %v", domain.ErrPersistence, err)
	}

	return lines, nil
}

// Save writes the records atomically via a temp-file rename.
func (s *FileStore) Save(_ context.Context, lines []EphemeralLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("%w: encode ephemeral cart: %v", domain.ErrPersistence, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, ephemeralFilePermissions); err != nil {
		return fmt.Errorf("%w: write ephemeral cart: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replace ephemeral cart: %v", domain.ErrPersistence, err)
	}

	return nil
}

// Clear removes the backing file. Clearing an absent file is a no-op.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: clear ephemeral cart: %v", domain.ErrPersistence, err)
	}
	return nil
}

// FileProvider stores each session's ephemeral cart as a JSON file in dir.
type FileProvider struct {
	dir string
}

// NewFileProvider creates a provider of file-backed session stores.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// ForSession returns the file store for the session.
func (p *FileProvider) ForSession(sessionID string) EphemeralStore {
	return NewFileStore(filepath.Join(p.dir, sessionID+".cart.json"))
}

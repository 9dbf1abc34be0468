// Package blob persists raw file content on local disk, decoupled from the
// catalog metadata. Handles are absolute paths under a configured root
// directory. Originals are written once; rendition handles may be rewritten
// on job redelivery, always with identical content.
package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a handle does not resolve to content on disk,
// whether it was never written or externally removed.
var ErrNotFound = errors.New("blob not found")

type Store struct {
	root string
}

// NewStore creates a Store rooted at dir. The directory is created lazily on
// the first write.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Store writes data under a freshly generated unique name and returns the
// handle the catalog should persist.
func (s *Store) Store(data []byte) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create blob root: %w", err)
	}
	handle := filepath.Join(s.root, uuid.NewString())
	if err := os.WriteFile(handle, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return handle, nil
}

// StoreAt writes data at an exact handle, overwriting any previous content.
// Thumbnail renditions use this so a redelivered job can safely re-attempt
// widths that were already written.
func (s *Store) StoreAt(handle string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(handle), 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}
	if err := os.WriteFile(handle, data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// Retrieve reads back the content for a handle.
func (s *Store) Retrieve(handle string) ([]byte, error) {
	data, err := os.ReadFile(handle)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

// Package catalog creates, lists, inspects, and updates visibility of
// file/folder records, enforcing the folder hierarchy invariants.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"filesmanager/backend/internal/auth"
	"filesmanager/backend/internal/models"
	"filesmanager/backend/internal/store"
)

// PageSize is the fixed page size for listings.
const PageSize = 20

var (
	ErrMissingName     = errors.New("missing name")
	ErrMissingData     = errors.New("missing data")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")
	ErrNotFound        = errors.New("file not found")
)

// BlobStore is the producer side of the blob layer.
type BlobStore interface {
	Store(data []byte) (string, error)
}

// Enqueuer schedules thumbnail jobs for accepted image uploads.
type Enqueuer interface {
	EnqueueGenerate(ctx context.Context, fileID, userID string) error
}

// Manager is the file catalog manager.
type Manager struct {
	files store.FileStore
	blobs BlobStore
	queue Enqueuer
	guard *auth.Guard
	log   *slog.Logger
}

func NewManager(files store.FileStore, blobs BlobStore, queue Enqueuer, guard *auth.Guard, log *slog.Logger) *Manager {
	return &Manager{files: files, blobs: blobs, queue: queue, guard: guard, log: log}
}

// checkParent validates the parent reference. The parent may belong to any
// user; ownership is enforced only on the child.
func (m *Manager) checkParent(ctx context.Context, parentID string) error {
	if parentID == models.RootParent {
		return nil
	}
	parent, err := m.files.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrParentNotFound
		}
		return err
	}
	if parent.Kind != models.KindFolder {
		return ErrParentNotFolder
	}
	return nil
}

// CreateFolder inserts a folder record. Folders have no blob side effect.
func (m *Manager) CreateFolder(ctx context.Context, ownerID, name, parentID string, isPublic bool) (*models.File, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if err := m.checkParent(ctx, parentID); err != nil {
		return nil, err
	}
	folder := &models.File{
		OwnerID:  ownerID,
		Name:     name,
		Kind:     models.KindFolder,
		IsPublic: isPublic,
		ParentID: parentID,
	}
	if err := m.files.Insert(ctx, folder); err != nil {
		return nil, fmt.Errorf("insert folder: %w", err)
	}
	return folder, nil
}

// CreateContent stores the payload in the blob layer, inserts the record,
// and for images enqueues a thumbnail job after the record commits.
// Thumbnailing is best-effort: an enqueue failure is logged and never rolls
// back the upload.
func (m *Manager) CreateContent(ctx context.Context, ownerID, name string, kind models.FileKind, parentID string, data []byte, isPublic bool) (*models.File, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if len(data) == 0 {
		return nil, ErrMissingData
	}
	if err := m.checkParent(ctx, parentID); err != nil {
		return nil, err
	}

	handle, err := m.blobs.Store(data)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	file := &models.File{
		OwnerID:   ownerID,
		Name:      name,
		Kind:      kind,
		IsPublic:  isPublic,
		ParentID:  parentID,
		LocalPath: handle,
	}
	if err := m.files.Insert(ctx, file); err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}

	if kind == models.KindImage {
		if err := m.queue.EnqueueGenerate(ctx, file.ID.Hex(), ownerID); err != nil {
			m.log.Warn("thumbnail enqueue failed", "file", file.ID.Hex(), "error", err)
		}
	}
	return file, nil
}

// Get returns an owned record. Absent and not-owned are indistinguishable
// to the caller.
func (m *Manager) Get(ctx context.Context, userID, fileID string) (*models.File, error) {
	file, err := m.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := m.guard.AuthorizeOwner(userID, file); err != nil {
		return nil, ErrNotFound
	}
	return file, nil
}

// List returns one page of the owner's records under parentID. Pagination
// is offset-based; results can shift under concurrent inserts.
func (m *Manager) List(ctx context.Context, userID, parentID string, page int64) ([]models.File, error) {
	if page < 0 {
		page = 0
	}
	return m.files.List(ctx, userID, parentID, page*PageSize, PageSize)
}

// SetVisibility flips isPublic on an owned record. Setting the current
// value again is a no-op success.
func (m *Manager) SetVisibility(ctx context.Context, userID, fileID string, isPublic bool) (*models.File, error) {
	if _, err := m.Get(ctx, userID, fileID); err != nil {
		return nil, err
	}
	file, err := m.files.SetVisibility(ctx, userID, fileID, isPublic)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

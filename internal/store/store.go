// Package store defines the persistence interfaces for user and file catalog
// records, plus their MongoDB implementations. Services depend on the
// interfaces so tests can substitute in-memory fakes.
package store

import (
	"context"
	"errors"

	"filesmanager/backend/internal/models"
)

// Standard errors returned by the store layer. Callers match with errors.Is
// instead of depending on driver error types.
var (
	ErrNotFound = errors.New("requested item not found")
	ErrConflict = errors.New("item already exists")
)

// UserStore is the interface for user record operations.
type UserStore interface {
	// Insert adds a new user and fills in its ID.
	Insert(ctx context.Context, user *models.User) error

	// FindByEmail returns ErrNotFound if no user has the given email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns ErrNotFound if no user has the given hex ID.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}

// FileStore is the interface for file catalog record operations.
type FileStore interface {
	// Insert adds a new file record and fills in its ID.
	Insert(ctx context.Context, file *models.File) error

	// FindByID looks a record up by ID alone, regardless of owner.
	FindByID(ctx context.Context, id string) (*models.File, error)

	// FindOwned looks a record up by ID and owner. A record that exists but
	// belongs to someone else is reported as ErrNotFound.
	FindOwned(ctx context.Context, ownerID, id string) (*models.File, error)

	// List returns the owner's records under the given parent, in insertion
	// order, skipping skip records and returning at most limit.
	List(ctx context.Context, ownerID, parentID string, skip, limit int64) ([]models.File, error)

	// SetVisibility updates isPublic on an owned record and returns the
	// updated record. ErrNotFound follows the FindOwned rules.
	SetVisibility(ctx context.Context, ownerID, id string, isPublic bool) (*models.File, error)

	// Count returns the total number of file records.
	Count(ctx context.Context) (int64, error)
}

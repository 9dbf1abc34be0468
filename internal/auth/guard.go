// Package auth resolves request tokens to users and checks ownership and
// visibility before any file operation.
package auth

import (
	"context"
	"errors"

	"filesmanager/backend/internal/models"
	"filesmanager/backend/internal/session"
	"filesmanager/backend/internal/store"
)

var (
	// ErrUnauthenticated means the token is absent, unknown, or expired.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the caller is not the owner of the file.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is what read-authorization failures surface as, so a
	// private file is indistinguishable from a missing one.
	ErrNotFound = errors.New("not found")
)

// SessionResolver maps an opaque token to a user ID.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// UserFinder checks that a user record still exists.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Guard performs authentication and authorization. It only looks things up
// and compares; it never mutates state.
type Guard struct {
	sessions SessionResolver
	users    UserFinder
}

func NewGuard(sessions SessionResolver, users UserFinder) *Guard {
	return &Guard{sessions: sessions, users: users}
}

// Authenticate resolves a token to the ID of an existing user.
func (g *Guard) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	userID, err := g.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	if _, err := g.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	return userID, nil
}

// AuthorizeOwner succeeds only for the file's owner.
func (g *Guard) AuthorizeOwner(userID string, file *models.File) error {
	if file.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}

// AuthorizeRead succeeds for public files, and for private files only when
// the requester is the owner. Every other caller, authenticated or not,
// gets ErrNotFound.
func (g *Guard) AuthorizeRead(requesterID string, file *models.File) error {
	if file.IsPublic {
		return nil
	}
	if requesterID != "" && requesterID == file.OwnerID {
		return nil
	}
	return ErrNotFound
}

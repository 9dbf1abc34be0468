package auth

import (
	"context"
	"errors"
	"testing"

	"filesmanager/backend/internal/models"
	"filesmanager/backend/internal/session"
	"filesmanager/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeResolver struct {
	userID string
	err    error
}

func (f *fakeResolver) Resolve(ctx context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

type fakeUsers struct {
	err error
}

func (f *fakeUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{Email: "a@x.com"}, nil
}

func TestAuthenticateSuccess(t *testing.T) {
	g := NewGuard(&fakeResolver{userID: "u1"}, &fakeUsers{})

	userID, err := g.Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestAuthenticateFailures(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		sessions *fakeResolver
		users    *fakeUsers
	}{
		{"empty token", "", &fakeResolver{userID: "u1"}, &fakeUsers{}},
		{"unknown token", "tok", &fakeResolver{err: session.ErrNotFound}, &fakeUsers{}},
		{"user gone", "tok", &fakeResolver{userID: "u1"}, &fakeUsers{err: store.ErrNotFound}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(tt.sessions, tt.users)
			_, err := g.Authenticate(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestAuthenticatePropagatesStoreFailure(t *testing.T) {
	boom := errors.New("redis down")
	g := NewGuard(&fakeResolver{err: boom}, &fakeUsers{})

	_, err := g.Authenticate(context.Background(), "tok")
	assert.ErrorIs(t, err, boom)
}

func TestAuthorizeOwner(t *testing.T) {
	g := NewGuard(&fakeResolver{}, &fakeUsers{})
	file := &models.File{OwnerID: "u1"}

	assert.NoError(t, g.AuthorizeOwner("u1", file))
	assert.ErrorIs(t, g.AuthorizeOwner("u2", file), ErrForbidden)
}

func TestAuthorizeRead(t *testing.T) {
	g := NewGuard(&fakeResolver{}, &fakeUsers{})

	private := &models.File{OwnerID: "u1", IsPublic: false}
	public := &models.File{OwnerID: "u1", IsPublic: true}

	tests := []struct {
		name      string
		requester string
		file      *models.File
		wantErr   error
	}{
		{"owner reads private", "u1", private, nil},
		{"stranger reads private", "u2", private, ErrNotFound},
		{"anonymous reads private", "", private, ErrNotFound},
		{"anonymous reads public", "", public, nil},
		{"stranger reads public", "u2", public, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AuthorizeRead(tt.requester, tt.file)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				// Refusal must be NotFound, never Forbidden, so private
				// files cannot be probed for existence.
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// Package session implements the opaque-token session store on Redis.
// Tokens are unguessable UUIDs kept under `auth_<token>` keys with a fixed
// 24-hour time to live; expiry is handled entirely by Redis.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auth_"

// TTL is the fixed session lifetime.
const TTL = 24 * time.Hour

// ErrNotFound is returned for absent, unknown, or expired tokens.
var ErrNotFound = errors.New("session not found")

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Create mints a fresh token for the user and stores it with the fixed TTL.
func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+token, userID, TTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps a token back to its user ID.
func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return userID, nil
}

// Destroy deletes the token. Destroying an unknown token reports ErrNotFound.
func (s *Store) Destroy(ctx context.Context, token string) error {
	n, err := s.rdb.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"filesmanager/backend/internal/session"
	"filesmanager/backend/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// SessionManager creates and deletes sessions. *session.Store satisfies it.
type SessionManager interface {
	Create(ctx context.Context, userID string) (string, error)
	Destroy(ctx context.Context, token string) error
}

// AuthHandler serves login and logout.
type AuthHandler struct {
	users    store.UserStore
	sessions SessionManager
	log      *slog.Logger
}

func NewAuthHandler(users store.UserStore, sessions SessionManager, log *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, log: log}
}

// GetConnect exchanges Basic credentials for a session token.
func (h *AuthHandler) GetConnect(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no authorization header"})
		return
	}

	email, password, ok := c.Request.BasicAuth()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token, err := h.sessions.Create(ctx, user.ID.Hex())
	if err != nil {
		h.log.Error("session create failed", "user", user.ID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetDisconnect deletes the caller's session.
func (h *AuthHandler) GetDisconnect(c *gin.Context) {
	token := c.GetHeader("x-token")

	if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.Status(http.StatusNoContent)
}

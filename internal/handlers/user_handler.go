package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"filesmanager/backend/internal/middleware"
	"filesmanager/backend/internal/models"
	"filesmanager/backend/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// WelcomeEnqueuer schedules the post-registration welcome job.
type WelcomeEnqueuer interface {
	EnqueueWelcome(ctx context.Context, userID string) error
}

// UserHandler serves registration and the current-user endpoint.
type UserHandler struct {
	users store.UserStore
	queue WelcomeEnqueuer
	log   *slog.Logger
}

func NewUserHandler(users store.UserStore, queue WelcomeEnqueuer, log *slog.Logger) *UserHandler {
	return &UserHandler{users: users, queue: queue, log: log}
}

// RegisterPayload defines the expected JSON for creating a user.
type RegisterPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostUsers registers a new user. Email uniqueness here is a read-then-write
// check; the collection's unique index is the real guard under concurrent
// registrations.
func (h *UserHandler) PostUsers(c *gin.Context) {
	var payload RegisterPayload
	_ = c.ShouldBindJSON(&payload)

	if payload.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email"})
		return
	}
	if payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing password"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.users.FindByEmail(ctx, payload.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already exist"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	user := &models.User{Email: payload.Email, PasswordHash: string(hash)}
	if err := h.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if err := h.queue.EnqueueWelcome(ctx, user.ID.Hex()); err != nil {
		h.log.Warn("welcome enqueue failed", "user", user.ID.Hex(), "error", err)
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID.Hex(), "email": user.Email})
}

// GetMe returns the authenticated user's identity.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := middleware.ForContext(c.Request.Context())

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID.Hex(), "email": user.Email})
}

package handlers

import (
	"net/http"

	"filesmanager/backend/internal/database"
	"filesmanager/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// AppHandler serves the liveness and stats endpoints.
type AppHandler struct {
	clients *database.Clients
	users   store.UserStore
	files   store.FileStore
}

func NewAppHandler(clients *database.Clients, users store.UserStore, files store.FileStore) *AppHandler {
	return &AppHandler{clients: clients, users: users, files: files}
}

// GetStatus reports whether the session store and the document store answer.
func (h *AppHandler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"redis": h.clients.RedisAlive(ctx),
		"db":    h.clients.MongoAlive(ctx),
	})
}

// GetStats reports the user and file counts.
func (h *AppHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.users.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	files, err := h.files.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "files": files})
}

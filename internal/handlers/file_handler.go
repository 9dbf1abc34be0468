package handlers

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"filesmanager/backend/internal/auth"
	"filesmanager/backend/internal/blob"
	"filesmanager/backend/internal/catalog"
	"filesmanager/backend/internal/middleware"
	"filesmanager/backend/internal/models"
	"filesmanager/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// FileHandler serves the file catalog endpoints.
type FileHandler struct {
	catalog *catalog.Manager
	guard   *auth.Guard
	files   store.FileStore
	blobs   *blob.Store
	log     *slog.Logger
}

func NewFileHandler(cat *catalog.Manager, guard *auth.Guard, files store.FileStore, blobs *blob.Store, log *slog.Logger) *FileHandler {
	return &FileHandler{catalog: cat, guard: guard, files: files, blobs: blobs, log: log}
}

// UploadPayload defines the expected JSON for creating a file or folder.
// parentId defaults to the root sentinel and isPublic to false.
type UploadPayload struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"` // base64 payload, absent for folders
}

// PostUpload creates a folder or uploads file/image content.
func (h *FileHandler) PostUpload(c *gin.Context) {
	userID := middleware.ForContext(c.Request.Context())

	var payload UploadPayload
	_ = c.ShouldBindJSON(&payload)

	if payload.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
		return
	}
	kind := models.FileKind(payload.Type)
	if !models.ValidKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing type"})
		return
	}
	parentID := payload.ParentID
	if parentID == "" {
		parentID = models.RootParent
	}

	ctx := c.Request.Context()
	if kind == models.KindFolder {
		folder, err := h.catalog.CreateFolder(ctx, userID, payload.Name, parentID, payload.IsPublic)
		if err != nil {
			h.catalogError(c, err)
			return
		}
		c.JSON(http.StatusCreated, folder)
		return
	}

	if payload.Data == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		return
	}
	data, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		return
	}

	file, err := h.catalog.CreateContent(ctx, userID, payload.Name, kind, parentID, data, payload.IsPublic)
	if err != nil {
		h.catalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

// catalogError maps catalog errors onto the HTTP error contract.
func (h *FileHandler) catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrMissingName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
	case errors.Is(err, catalog.ErrMissingData):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
	case errors.Is(err, catalog.ErrParentNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent not found"})
	case errors.Is(err, catalog.ErrParentNotFolder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent is not a folder"})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		h.log.Error("catalog operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

// GetShow returns one owned file record.
func (h *FileHandler) GetShow(c *gin.Context) {
	userID := middleware.ForContext(c.Request.Context())

	file, err := h.catalog.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

// GetIndex lists one page of the caller's files under a parent.
func (h *FileHandler) GetIndex(c *gin.Context) {
	userID := middleware.ForContext(c.Request.Context())

	parentID := c.DefaultQuery("parentId", models.RootParent)
	page, err := strconv.ParseInt(c.DefaultQuery("page", "0"), 10, 64)
	if err != nil || page < 0 {
		page = 0
	}

	files, err := h.catalog.List(c.Request.Context(), userID, parentID, page)
	if err != nil {
		h.log.Error("list files failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, files)
}

// PutPublish makes an owned file public.
func (h *FileHandler) PutPublish(c *gin.Context) {
	h.setVisibility(c, true)
}

// PutUnpublish makes an owned file private.
func (h *FileHandler) PutUnpublish(c *gin.Context) {
	h.setVisibility(c, false)
}

func (h *FileHandler) setVisibility(c *gin.Context, isPublic bool) {
	userID := middleware.ForContext(c.Request.Context())

	file, err := h.catalog.SetVisibility(c.Request.Context(), userID, c.Param("id"), isPublic)
	if err != nil {
		h.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

// GetFileData serves raw content. Authentication is optional: public files
// are readable by anyone, private files only by their owner, and every
// refusal looks like a missing file.
func (h *FileHandler) GetFileData(c *gin.Context) {
	ctx := c.Request.Context()

	requesterID := ""
	if token := c.GetHeader("x-token"); token != "" {
		if id, err := h.guard.Authenticate(ctx, token); err == nil {
			requesterID = id
		}
	}

	file, err := h.files.FindByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err := h.guard.AuthorizeRead(requesterID, file); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if file.Kind == models.KindFolder {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A folder doesn't have content"})
		return
	}

	handle := file.LocalPath
	switch c.Query("size") {
	case "500", "250", "100":
		handle = handle + "_" + c.Query("size")
	}

	data, err := h.blobs.Retrieve(handle)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		h.log.Error("blob read failed", "file", file.ID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(file.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/storage"
)

// FileHandler serves download links issued by the in-memory file store.
// It is only mounted when STORAGE_DRIVER=memory.
type FileHandler struct {
	store *storage.MemoryStore
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(store *storage.MemoryStore) *FileHandler {
	return &FileHandler{store: store}
}

// Download serves the object named by the key path if the link has not
// expired.
func (h *FileHandler) Download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	obj, err := h.store.Open(key, c.Query("expires"))
	switch {
	case errors.Is(err, storage.ErrLinkExpired):
		respondWithError(c, apperrors.ErrLinkExpired)
		return
	case err != nil:
		respondWithError(c, apperrors.ErrFileNotFound)
		return
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, obj.Data)
}

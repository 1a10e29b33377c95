package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/lifecycle"
	"backoffice/internal/repository"
	"backoffice/internal/storage"
	"backoffice/internal/uuid"
)

// MaxFileSize is the largest accepted upload.
const MaxFileSize int64 = 10 << 20

// Files configures where document attachments are stored.
type Files struct {
	Store  storage.FileStore
	URLTTL time.Duration
}

func (f Files) ttl() time.Duration {
	if f.URLTTL <= 0 {
		return storage.DefaultURLTTL
	}
	return f.URLTTL
}

// attachments stores one file per document of type T under resource/.
type attachments[T any] struct {
	files    Files
	repo     *repository.Repository[T]
	machine  *lifecycle.Machine
	resource string
	filePath func(*T) *string
}

func (a attachments[T]) attach(ctx context.Context, id string, file FileUpload) (*T, error) {
	if file.Size > MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	live := a.machine.Live()
	// Reject canceled or missing documents before anything reaches storage.
	if err := a.repo.UpdateWhereStatus(ctx, id, live, map[string]any{"updated_at": now()}); err != nil {
		return nil, err
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("%s/%s/%s-%s", a.resource, id, uuid.New(), cleanFilename(file.Filename))
	if err := a.files.Store.Put(ctx, key, contentType, file.Body, file.Size); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if err := a.repo.UpdateWhereStatus(ctx, id, live, map[string]any{"file_path": key}); err != nil {
		return nil, err
	}
	return a.repo.FindByID(ctx, id)
}

func (a attachments[T]) link(ctx context.Context, id string) (*FileLink, error) {
	record, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := a.filePath(record)
	if key == nil || *key == "" {
		return nil, apperrors.WithMessage(apperrors.ErrFileNotFound,
			fmt.Sprintf("%s %s has no file attached", a.machine.Entity(), id))
	}

	ttl := a.files.ttl()
	url, err := a.files.Store.PresignGet(ctx, *key, ttl)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &FileLink{URL: url, ExpiresIn: int(ttl.Seconds())}, nil
}

// cleanFilename keeps the base name of an uploaded file, without directories.
func cleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}

package services

import (
	"context"
	"errors"
	"time"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/lifecycle"
	"backoffice/internal/repository"
)

var now = func() time.Time { return time.Now().UTC() }

// transition fires the named lifecycle transition on the document with id in
// one conditional update, persisting fields alongside the new status and its
// timestamp, and returns the re-read document.
func transition[T any](ctx context.Context, repo *repository.Repository[T], m *lifecycle.Machine, id, name string, fields map[string]any) (*T, error) {
	t := m.Transition(name)
	updates := map[string]any{"status": t.To, t.Stamp: now()}
	for k, v := range fields {
		updates[k] = v
	}
	if err := repo.UpdateWhereStatus(ctx, id, t.From, updates); err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

// edit applies updates only while the document is editable and returns the
// re-read document.
func edit[T any](ctx context.Context, repo *repository.Repository[T], m *lifecycle.Machine, id string, updates map[string]any) (*T, error) {
	if err := repo.UpdateWhereStatus(ctx, id, m.Editable(), updates); err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

// internal passes AppErrors through and wraps anything else as a 500.
func internal(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

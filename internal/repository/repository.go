// Package repository provides generic GORM persistence for every entity:
// lookups by id, filtered pagination, inserts, and the status-conditional
// updates that make lifecycle guards atomic.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
)

// Scope is a GORM query modifier.
type Scope = func(*gorm.DB) *gorm.DB

// Meta describes how an entity is stored and reported.
type Meta struct {
	// Entity is the label used in error messages, e.g. "Invoice".
	Entity string
	// Table is the unqualified table name.
	Table string
	// NotFound is the sentinel returned when a lookup misses.
	NotFound *apperrors.AppError
	// Read optionally decorates reads, typically joining a parent label.
	Read Scope
}

// Repository persists values of T.
type Repository[T any] struct {
	db   *gorm.DB
	meta Meta
}

// New creates a repository for T.
func New[T any](db *gorm.DB, meta Meta) *Repository[T] {
	return &Repository[T]{db: db, meta: meta}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx, meta: r.meta}
}

// DB returns the bound connection.
func (r *Repository[T]) DB() *gorm.DB { return r.db }

// Meta returns the entity metadata.
func (r *Repository[T]) Meta() Meta { return r.meta }

// Column qualifies a column with the entity table.
func (r *Repository[T]) Column(name string) string { return r.meta.Table + "." + name }

func (r *Repository[T]) read(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	if r.meta.Read != nil {
		q = q.Scopes(r.meta.Read)
	}
	return q
}

func (r *Repository[T]) notFound(id string) *apperrors.AppError {
	return apperrors.NotFound(r.meta.NotFound, r.meta.Entity, id)
}

// FindByID returns the record with id, including any joined labels.
func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var record T
	if err := r.read(ctx).Where(r.Column("id")+" = ?", id).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound(id)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &record, nil
}

// FindWhere returns the first record matching the scopes, or the entity's
// not-found error naming id.
func (r *Repository[T]) FindWhere(ctx context.Context, id string, scopes ...Scope) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound(id)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &record, nil
}

// Exists returns the entity's not-found error unless a row with id exists.
func (r *Repository[T]) Exists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return r.notFound(id)
	}
	return nil
}

// List returns one page of records matching filters, newest first.
func (r *Repository[T]) List(ctx context.Context, page pagination.PageRequest, filters ...Scope) (*pagination.PageResponse[T], error) {
	page.Defaults()

	var totalCount int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(filters...).Count(&totalCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []T
	if err := r.read(ctx).Scopes(filters...).
		Order(r.Column("created_at") + " DESC").
		Scopes(pagination.Paginate(page)).
		Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(records, page.PageNumber, page.PageSize, totalCount)
	return &result, nil
}

// All returns up to limit records matching filters, newest first.
func (r *Repository[T]) All(ctx context.Context, limit int, filters ...Scope) ([]T, error) {
	var records []T
	if err := r.read(ctx).Scopes(filters...).
		Order(r.Column("created_at") + " DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return records, nil
}

// Insert creates record. Unique violations surface as gorm.ErrDuplicatedKey
// so callers can map or retry them.
func (r *Repository[T]) Insert(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Update applies updates to the row with id regardless of status.
func (r *Repository[T]) Update(ctx context.Context, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return res.Error
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound(id)
	}
	return nil
}

// UpdateWhereStatus applies updates in a single statement only when the row's
// status is one of allowed. When nothing is updated the row is inspected to
// report either not-found or the status conflict.
func (r *Repository[T]) UpdateWhereStatus(ctx context.Context, id string, allowed []models.Status, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND status IN ?", id, allowed).
		Updates(updates)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return r.statusConflict(ctx, id, allowed)
}

// DeleteWhere hard-deletes the row matching scopes. It returns the entity's
// not-found error naming id when no row matched.
func (r *Repository[T]) DeleteWhere(ctx context.Context, id string, scopes ...Scope) error {
	res := r.db.WithContext(ctx).Scopes(scopes...).Delete(new(T))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound(id)
	}
	return nil
}

func (r *Repository[T]) statusConflict(ctx context.Context, id string, allowed []models.Status) error {
	var row struct{ Status models.Status }
	res := r.db.WithContext(ctx).Model(new(T)).Select("status").Where("id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound(id)
	}
	required := make([]string, len(allowed))
	for i, s := range allowed {
		required[i] = string(s)
	}
	return apperrors.InvalidStatus(r.meta.Entity, id, string(row.Status), required...)
}

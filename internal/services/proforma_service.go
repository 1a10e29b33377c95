package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/export"
	"backoffice/internal/lifecycle"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
)

const proformaItemsSum = "(SELECT COALESCE(SUM(amount), 0) FROM proforma_items WHERE proforma_id = ?)"

// proformaService handles proformas and their line items.
type proformaService struct {
	db        *gorm.DB
	proformas *repository.Repository[models.Proforma]
	items     *repository.Repository[models.ProformaItem]
	clients   *repository.Repository[models.Client]
}

// NewProformaService creates a new ProformaServicer.
func NewProformaService(db *gorm.DB) ProformaServicer {
	return &proformaService{
		db:        db,
		proformas: newProformaRepo(db),
		items:     newProformaItemRepo(db),
		clients:   newClientRepo(db),
	}
}

func proformaTotal(subtotal, expenses, discount, taxes decimal.Decimal) decimal.Decimal {
	return subtotal.Add(expenses).Sub(discount).Add(taxes)
}

// CreateProforma creates an empty pending proforma numbered after its end date.
func (s *proformaService) CreateProforma(ctx context.Context, in ProformaInput) (*models.Proforma, error) {
	if time.Time(in.EndDate).Before(time.Time(in.StartDate)) {
		return nil, apperrors.InvalidField("endDate", "must not be before startDate")
	}
	if err := s.clients.Exists(ctx, in.ClientID); err != nil {
		return nil, err
	}

	expenses := models.RoundMoney(in.Expenses)
	discount := models.RoundMoney(in.Discount)
	taxes := models.RoundMoney(in.Taxes)
	proforma := &models.Proforma{
		Document:    models.Document{Status: lifecycle.Proforma.Initial()},
		ClientID:    in.ClientID,
		Currency:    in.Currency,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Subtotal:    decimal.Zero,
		Expenses:    expenses,
		Discount:    discount,
		Taxes:       taxes,
		Total:       proformaTotal(decimal.Zero, expenses, discount, taxes),
	}

	err := insertNumbered(ctx, s.db, proformaPrefix(in.EndDate), proforma, func(n string) { proforma.Number = n })
	if err != nil {
		return nil, err
	}
	return s.proformas.FindByID(ctx, proforma.ID)
}

func (f ProformaFilter) scopes() []repository.Scope {
	return []repository.Scope{
		eq("proformas.status", f.Status),
		eq("proformas.client_id", f.ClientID),
	}
}

// ListProformas returns a page of proformas with their client names.
func (s *proformaService) ListProformas(ctx context.Context, page pagination.PageRequest, filter ProformaFilter) (*pagination.PageResponse[models.Proforma], error) {
	return s.proformas.List(ctx, page, filter.scopes()...)
}

// ExportProformas returns every proforma matching filter, up to the export cap.
func (s *proformaService) ExportProformas(ctx context.Context, filter ProformaFilter) ([]models.Proforma, error) {
	return s.proformas.All(ctx, export.MaxRows, filter.scopes()...)
}

// GetProforma returns a proforma by ID.
func (s *proformaService) GetProforma(ctx context.Context, id string) (*models.Proforma, error) {
	return s.proformas.FindByID(ctx, id)
}

// UpdateProforma edits a pending proforma's amounts. The total is computed
// by the database from the persisted subtotal so a concurrent item change
// cannot be overwritten.
func (s *proformaService) UpdateProforma(ctx context.Context, id string, in ProformaUpdate) (*models.Proforma, error) {
	expenses := models.RoundMoney(in.Expenses)
	discount := models.RoundMoney(in.Discount)
	taxes := models.RoundMoney(in.Taxes)

	updates := map[string]any{
		"expenses": expenses,
		"discount": discount,
		"taxes":    taxes,
		"total":    gorm.Expr("subtotal + ? - ? + ?", expenses, discount, taxes),
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	return edit(ctx, s.proformas, lifecycle.Proforma, id, updates)
}

// IssueProforma moves a pending proforma to Issued.
func (s *proformaService) IssueProforma(ctx context.Context, id string) (*models.Proforma, error) {
	return transition(ctx, s.proformas, lifecycle.Proforma, id, lifecycle.Issue, nil)
}

// CancelProforma cancels a pending or issued proforma.
func (s *proformaService) CancelProforma(ctx context.Context, id string) (*models.Proforma, error) {
	return transition(ctx, s.proformas, lifecycle.Proforma, id, lifecycle.Cancel, nil)
}

// ListItems returns a page of the proforma's items.
func (s *proformaService) ListItems(ctx context.Context, proformaID string, page pagination.PageRequest) (*pagination.PageResponse[models.ProformaItem], error) {
	if err := s.proformas.Exists(ctx, proformaID); err != nil {
		return nil, err
	}
	return s.items.List(ctx, page, func(q *gorm.DB) *gorm.DB {
		return q.Where("proforma_items.proforma_id = ?", proformaID)
	})
}

// AddItem adds a line to a pending proforma and recomputes its totals.
func (s *proformaService) AddItem(ctx context.Context, proformaID string, in ItemInput) (*models.ProformaItem, error) {
	item := &models.ProformaItem{
		ProformaID:  proformaID,
		Description: in.Description,
		Amount:      models.RoundMoney(in.Amount),
	}
	err := s.withPendingProforma(ctx, proformaID, func(tx *gorm.DB) error {
		return s.items.WithTx(tx).Insert(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a line from a pending proforma and recomputes its totals.
func (s *proformaService) DeleteItem(ctx context.Context, proformaID, itemID string) error {
	return s.withPendingProforma(ctx, proformaID, func(tx *gorm.DB) error {
		return s.items.WithTx(tx).DeleteWhere(ctx, itemID, func(q *gorm.DB) *gorm.DB {
			return q.Where("id = ? AND proforma_id = ?", itemID, proformaID)
		})
	})
}

// withPendingProforma runs change in a transaction that first claims the
// proforma while it is Pending and finally re-derives subtotal and total
// from the items.
func (s *proformaService) withPendingProforma(ctx context.Context, id string, change func(tx *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		proformas := s.proformas.WithTx(tx)
		if err := proformas.UpdateWhereStatus(ctx, id, lifecycle.Proforma.Editable(), map[string]any{"updated_at": now()}); err != nil {
			return err
		}
		if err := change(tx); err != nil {
			return err
		}
		return tx.Model(&models.Proforma{}).Where("id = ?", id).Updates(map[string]any{
			"subtotal": gorm.Expr(proformaItemsSum, id),
			"total":    gorm.Expr(proformaItemsSum+" + expenses - discount + taxes", id),
		}).Error
	})
	if err != nil {
		return internal(err)
	}
	return nil
}

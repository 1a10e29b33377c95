package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice/internal/lifecycle"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
)

const taxItemsSum = "(SELECT COALESCE(SUM(amount), 0) FROM tax_payment_items WHERE tax_payment_id = ?)"

// taxPaymentService handles periodic tax payments and their items.
type taxPaymentService struct {
	db       *gorm.DB
	payments *repository.Repository[models.TaxPayment]
	items    *repository.Repository[models.TaxPaymentItem]
}

// NewTaxPaymentService creates a new TaxPaymentServicer.
func NewTaxPaymentService(db *gorm.DB) TaxPaymentServicer {
	return &taxPaymentService{
		db:       db,
		payments: newTaxPaymentRepo(db),
		items:    newTaxPaymentItemRepo(db),
	}
}

// CreateTaxPayment creates an empty pending tax payment numbered after its period.
func (s *taxPaymentService) CreateTaxPayment(ctx context.Context, in TaxPaymentInput) (*models.TaxPayment, error) {
	interest := models.RoundMoney(in.Interest)
	payment := &models.TaxPayment{
		Document:    models.Document{Status: lifecycle.TaxPayment.Initial()},
		Year:        in.Year,
		Month:       in.Month,
		Currency:    in.Currency,
		Description: in.Description,
		Taxes:       decimal.Zero,
		Interest:    interest,
		Total:       interest,
	}

	err := insertNumbered(ctx, s.db, taxPaymentPrefix(in.Year, in.Month), payment, func(n string) { payment.Number = n })
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ListTaxPayments returns a page of tax payments.
func (s *taxPaymentService) ListTaxPayments(ctx context.Context, page pagination.PageRequest, filter TaxPaymentFilter) (*pagination.PageResponse[models.TaxPayment], error) {
	return s.payments.List(ctx, page,
		eq("tax_payments.status", filter.Status),
		eq("tax_payments.year", filter.Year),
	)
}

// GetTaxPayment returns a tax payment by ID.
func (s *taxPaymentService) GetTaxPayment(ctx context.Context, id string) (*models.TaxPayment, error) {
	return s.payments.FindByID(ctx, id)
}

// UpdateTaxPayment edits a pending tax payment's interest.
func (s *taxPaymentService) UpdateTaxPayment(ctx context.Context, id string, in TaxPaymentUpdate) (*models.TaxPayment, error) {
	interest := models.RoundMoney(in.Interest)
	updates := map[string]any{
		"interest": interest,
		"total":    gorm.Expr("taxes + ?", interest),
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	return edit(ctx, s.payments, lifecycle.TaxPayment, id, updates)
}

// PayTaxPayment records that a pending tax payment was settled.
func (s *taxPaymentService) PayTaxPayment(ctx context.Context, id string, in PayTaxPaymentInput) (*models.TaxPayment, error) {
	return transition(ctx, s.payments, lifecycle.TaxPayment, id, lifecycle.Pay, map[string]any{
		"payment_date": in.PaymentDate,
	})
}

// CancelTaxPayment cancels a pending or paid tax payment.
func (s *taxPaymentService) CancelTaxPayment(ctx context.Context, id string) (*models.TaxPayment, error) {
	return transition(ctx, s.payments, lifecycle.TaxPayment, id, lifecycle.Cancel, nil)
}

// ListItems returns a page of the tax payment's items.
func (s *taxPaymentService) ListItems(ctx context.Context, taxPaymentID string, page pagination.PageRequest) (*pagination.PageResponse[models.TaxPaymentItem], error) {
	if err := s.payments.Exists(ctx, taxPaymentID); err != nil {
		return nil, err
	}
	return s.items.List(ctx, page, func(q *gorm.DB) *gorm.DB {
		return q.Where("tax_payment_items.tax_payment_id = ?", taxPaymentID)
	})
}

// AddItem adds a tax line to a pending tax payment and recomputes its totals.
func (s *taxPaymentService) AddItem(ctx context.Context, taxPaymentID string, in ItemInput) (*models.TaxPaymentItem, error) {
	item := &models.TaxPaymentItem{
		TaxPaymentID: taxPaymentID,
		Description:  in.Description,
		Amount:       models.RoundMoney(in.Amount),
	}
	err := s.withPendingPayment(ctx, taxPaymentID, func(tx *gorm.DB) error {
		return s.items.WithTx(tx).Insert(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a tax line from a pending tax payment and recomputes its totals.
func (s *taxPaymentService) DeleteItem(ctx context.Context, taxPaymentID, itemID string) error {
	return s.withPendingPayment(ctx, taxPaymentID, func(tx *gorm.DB) error {
		return s.items.WithTx(tx).DeleteWhere(ctx, itemID, func(q *gorm.DB) *gorm.DB {
			return q.Where("id = ? AND tax_payment_id = ?", itemID, taxPaymentID)
		})
	})
}

func (s *taxPaymentService) withPendingPayment(ctx context.Context, id string, change func(tx *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := s.payments.WithTx(tx)
		if err := payments.UpdateWhereStatus(ctx, id, lifecycle.TaxPayment.Editable(), map[string]any{"updated_at": now()}); err != nil {
			return err
		}
		if err := change(tx); err != nil {
			return err
		}
		return tx.Model(&models.TaxPayment{}).Where("id = ?", id).Updates(map[string]any{
			"taxes": gorm.Expr(taxItemsSum, id),
			"total": gorm.Expr(taxItemsSum+" + interest", id),
		}).Error
	})
	if err != nil {
		return internal(err)
	}
	return nil
}

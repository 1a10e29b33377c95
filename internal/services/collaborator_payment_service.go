package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice/internal/export"
	"backoffice/internal/lifecycle"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
)

// paymentService handles collaborator payroll entries.
type paymentService struct {
	payments      *repository.Repository[models.CollaboratorPayment]
	collaborators *repository.Repository[models.Collaborator]
	files         attachments[models.CollaboratorPayment]
}

// NewCollaboratorPaymentService creates a new CollaboratorPaymentServicer.
func NewCollaboratorPaymentService(db *gorm.DB, files Files) CollaboratorPaymentServicer {
	repo := newPaymentRepo(db)
	return &paymentService{
		payments:      repo,
		collaborators: newCollaboratorRepo(db),
		files: attachments[models.CollaboratorPayment]{
			files:    files,
			repo:     repo,
			machine:  lifecycle.CollaboratorPayment,
			resource: "collaborator-payments",
			filePath: func(p *models.CollaboratorPayment) *string { return p.FilePath },
		},
	}
}

// salary splits gross into the withholding retained at pct percent and the
// net paid out.
func salary(gross, pct decimal.Decimal) (withholding, net decimal.Decimal) {
	gross = models.RoundMoney(gross)
	withholding = models.Percent(gross, pct)
	return withholding, gross.Sub(withholding)
}

// CreatePayment creates a pending payment, withholding at the collaborator's
// current percentage.
func (s *paymentService) CreatePayment(ctx context.Context, in PaymentInput) (*models.CollaboratorPayment, error) {
	collaborator, err := s.collaborators.FindByID(ctx, in.CollaboratorID)
	if err != nil {
		return nil, err
	}

	withholding, net := salary(in.GrossSalary, collaborator.WithholdingPercentage)
	payment := &models.CollaboratorPayment{
		Document:       models.Document{Status: lifecycle.CollaboratorPayment.Initial()},
		CollaboratorID: collaborator.ID,
		Currency:       in.Currency,
		Description:    in.Description,
		GrossSalary:    models.RoundMoney(in.GrossSalary),
		Withholding:    withholding,
		NetSalary:      net,
	}
	if err := s.payments.Insert(ctx, payment); err != nil {
		return nil, internal(err)
	}
	return s.payments.FindByID(ctx, payment.ID)
}

func (f PaymentFilter) scopes() []repository.Scope {
	return []repository.Scope{
		eq("collaborator_payments.status", f.Status),
		eq("collaborator_payments.collaborator_id", f.CollaboratorID),
	}
}

// ListPayments returns a page of payments with collaborator names.
func (s *paymentService) ListPayments(ctx context.Context, page pagination.PageRequest, filter PaymentFilter) (*pagination.PageResponse[models.CollaboratorPayment], error) {
	return s.payments.List(ctx, page, filter.scopes()...)
}

// ExportPayments returns every payment matching filter, up to the export cap.
func (s *paymentService) ExportPayments(ctx context.Context, filter PaymentFilter) ([]models.CollaboratorPayment, error) {
	return s.payments.All(ctx, export.MaxRows, filter.scopes()...)
}

// GetPayment returns a payment by ID.
func (s *paymentService) GetPayment(ctx context.Context, id string) (*models.CollaboratorPayment, error) {
	return s.payments.FindByID(ctx, id)
}

// UpdatePayment edits a pending payment, recomputing withholding from the
// collaborator's current percentage.
func (s *paymentService) UpdatePayment(ctx context.Context, id string, in PaymentInput) (*models.CollaboratorPayment, error) {
	collaborator, err := s.collaborators.FindByID(ctx, in.CollaboratorID)
	if err != nil {
		return nil, err
	}

	withholding, net := salary(in.GrossSalary, collaborator.WithholdingPercentage)
	return edit(ctx, s.payments, lifecycle.CollaboratorPayment, id, map[string]any{
		"collaborator_id": collaborator.ID,
		"currency":        in.Currency,
		"description":     in.Description,
		"gross_salary":    models.RoundMoney(in.GrossSalary),
		"withholding":     withholding,
		"net_salary":      net,
	})
}

// PayPayment records that a pending payment was paid out.
func (s *paymentService) PayPayment(ctx context.Context, id string, in PayPaymentInput) (*models.CollaboratorPayment, error) {
	return transition(ctx, s.payments, lifecycle.CollaboratorPayment, id, lifecycle.Pay, map[string]any{
		"number":       in.Number,
		"payment_date": in.PaymentDate,
	})
}

// ConfirmPayment confirms a paid payment.
func (s *paymentService) ConfirmPayment(ctx context.Context, id string) (*models.CollaboratorPayment, error) {
	return transition(ctx, s.payments, lifecycle.CollaboratorPayment, id, lifecycle.Confirm, nil)
}

// CancelPayment cancels a pending or paid payment.
func (s *paymentService) CancelPayment(ctx context.Context, id string) (*models.CollaboratorPayment, error) {
	return transition(ctx, s.payments, lifecycle.CollaboratorPayment, id, lifecycle.Cancel, nil)
}

// AttachFile stores the payment's receipt.
func (s *paymentService) AttachFile(ctx context.Context, id string, file FileUpload) (*models.CollaboratorPayment, error) {
	return s.files.attach(ctx, id, file)
}

// FileURL returns a short-lived link to the payment's receipt.
func (s *paymentService) FileURL(ctx context.Context, id string) (*FileLink, error) {
	return s.files.link(ctx, id)
}

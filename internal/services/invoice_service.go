package services

import (
	"context"

	"gorm.io/gorm"

	"backoffice/internal/export"
	"backoffice/internal/lifecycle"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
)

// invoiceService handles invoice business logic.
type invoiceService struct {
	invoices *repository.Repository[models.Invoice]
	clients  *repository.Repository[models.Client]
}

// NewInvoiceService creates a new InvoiceServicer.
func NewInvoiceService(db *gorm.DB) InvoiceServicer {
	return &invoiceService{invoices: newInvoiceRepo(db), clients: newClientRepo(db)}
}

// CreateInvoice creates a pending invoice for an existing client.
func (s *invoiceService) CreateInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	if err := s.clients.Exists(ctx, in.ClientID); err != nil {
		return nil, err
	}

	subtotal, taxes := models.RoundMoney(in.Subtotal), models.RoundMoney(in.Taxes)
	invoice := &models.Invoice{
		Document:    models.Document{Status: lifecycle.Invoice.Initial()},
		ClientID:    in.ClientID,
		Currency:    in.Currency,
		Description: in.Description,
		Subtotal:    subtotal,
		Taxes:       taxes,
		Total:       subtotal.Add(taxes),
	}
	if err := s.invoices.Insert(ctx, invoice); err != nil {
		return nil, internal(err)
	}
	return s.invoices.FindByID(ctx, invoice.ID)
}

func (f InvoiceFilter) scopes() []repository.Scope {
	return []repository.Scope{
		eq("invoices.status", f.Status),
		eq("invoices.client_id", f.ClientID),
	}
}

// ListInvoices returns a page of invoices with their client names.
func (s *invoiceService) ListInvoices(ctx context.Context, page pagination.PageRequest, filter InvoiceFilter) (*pagination.PageResponse[models.Invoice], error) {
	return s.invoices.List(ctx, page, filter.scopes()...)
}

// ExportInvoices returns every invoice matching filter, up to the export cap.
func (s *invoiceService) ExportInvoices(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, error) {
	return s.invoices.All(ctx, export.MaxRows, filter.scopes()...)
}

// GetInvoice returns an invoice by ID.
func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

// UpdateInvoice edits a pending invoice and recomputes its total.
func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, in InvoiceInput) (*models.Invoice, error) {
	if err := s.clients.Exists(ctx, in.ClientID); err != nil {
		return nil, err
	}

	subtotal, taxes := models.RoundMoney(in.Subtotal), models.RoundMoney(in.Taxes)
	return edit(ctx, s.invoices, lifecycle.Invoice, id, map[string]any{
		"client_id":   in.ClientID,
		"currency":    in.Currency,
		"description": in.Description,
		"subtotal":    subtotal,
		"taxes":       taxes,
		"total":       subtotal.Add(taxes),
	})
}

// IssueInvoice moves a pending invoice to Issued, recording its fiscal number.
func (s *invoiceService) IssueInvoice(ctx context.Context, id string, in IssueInvoiceInput) (*models.Invoice, error) {
	return transition(ctx, s.invoices, lifecycle.Invoice, id, lifecycle.Issue, map[string]any{
		"number":        in.Number,
		"issue_date":    in.IssueDate,
		"exchange_rate": in.ExchangeRate,
	})
}

// CancelInvoice cancels a pending or issued invoice.
func (s *invoiceService) CancelInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	return transition(ctx, s.invoices, lifecycle.Invoice, id, lifecycle.Cancel, nil)
}

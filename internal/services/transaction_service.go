package services

import (
	"context"

	"gorm.io/gorm"

	"backoffice/internal/lifecycle"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
)

// transactionService handles standalone income and expense documents.
type transactionService struct {
	transactions *repository.Repository[models.Transaction]
	files        attachments[models.Transaction]
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, files Files) TransactionServicer {
	repo := newTransactionRepo(db)
	return &transactionService{
		transactions: repo,
		files: attachments[models.Transaction]{
			files:    files,
			repo:     repo,
			machine:  lifecycle.Transaction,
			resource: "transactions",
			filePath: func(t *models.Transaction) *string { return t.FilePath },
		},
	}
}

// CreateTransaction creates a pending transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	subtotal, taxes := models.RoundMoney(in.Subtotal), models.RoundMoney(in.Taxes)
	tx := &models.Transaction{
		Document:    models.Document{Status: lifecycle.Transaction.Initial()},
		Description: in.Description,
		Type:        in.Type,
		Currency:    in.Currency,
		Subtotal:    subtotal,
		Taxes:       taxes,
		Total:       subtotal.Add(taxes),
	}
	if err := s.transactions.Insert(ctx, tx); err != nil {
		return nil, internal(err)
	}
	return tx, nil
}

// ListTransactions returns a page of transactions.
func (s *transactionService) ListTransactions(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	return s.transactions.List(ctx, page,
		eq("transactions.status", filter.Status),
		eq("transactions.type", filter.Type),
	)
}

// GetTransaction returns a transaction by ID.
func (s *transactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return s.transactions.FindByID(ctx, id)
}

// UpdateTransaction edits a pending transaction and recomputes its total.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*models.Transaction, error) {
	subtotal, taxes := models.RoundMoney(in.Subtotal), models.RoundMoney(in.Taxes)
	return edit(ctx, s.transactions, lifecycle.Transaction, id, map[string]any{
		"description": in.Description,
		"type":        in.Type,
		"currency":    in.Currency,
		"subtotal":    subtotal,
		"taxes":       taxes,
		"total":       subtotal.Add(taxes),
	})
}

// IssueTransaction moves a pending transaction to Issued.
func (s *transactionService) IssueTransaction(ctx context.Context, id string, in IssueTransactionInput) (*models.Transaction, error) {
	return transition(ctx, s.transactions, lifecycle.Transaction, id, lifecycle.Issue, map[string]any{
		"number":     in.Number,
		"issue_date": in.IssueDate,
	})
}

// CancelTransaction cancels a pending or issued transaction.
func (s *transactionService) CancelTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return transition(ctx, s.transactions, lifecycle.Transaction, id, lifecycle.Cancel, nil)
}

// AttachFile stores the transaction's supporting document.
func (s *transactionService) AttachFile(ctx context.Context, id string, file FileUpload) (*models.Transaction, error) {
	return s.files.attach(ctx, id, file)
}

// FileURL returns a short-lived link to the transaction's file.
func (s *transactionService) FileURL(ctx context.Context, id string) (*FileLink, error) {
	return s.files.link(ctx, id)
}

package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"backoffice/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// CreateTestClient creates a client with a unique document number.
func CreateTestClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()

	n := nextID()
	client := &models.Client{
		Name:           fmt.Sprintf("Test Client %d", n),
		DocumentNumber: fmt.Sprintf("DOC-%06d", n),
		Email:          fmt.Sprintf("client%d@test.com", n),
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

// CreateTestRole creates a collaborator role billed in USD.
func CreateTestRole(t *testing.T, db *gorm.DB) *models.CollaboratorRole {
	t.Helper()

	role := &models.CollaboratorRole{
		Name:     fmt.Sprintf("Test Role %d", nextID()),
		Currency: "USD",
		FeeRate:  Dec("50"),
		CostRate: Dec("30"),
	}
	if err := db.Create(role).Error; err != nil {
		t.Fatalf("failed to create test role: %v", err)
	}
	return role
}

// CreateTestCollaborator creates a collaborator with the given withholding percentage.
func CreateTestCollaborator(t *testing.T, db *gorm.DB, withholding string) *models.Collaborator {
	t.Helper()

	n := nextID()
	c := &models.Collaborator{
		Name:                  fmt.Sprintf("Test Collaborator %d", n),
		DocumentNumber:        fmt.Sprintf("COL-%06d", n),
		WithholdingPercentage: Dec(withholding),
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("failed to create test collaborator: %v", err)
	}
	return c
}

// CreateTestInvoice creates a pending invoice for the client.
func CreateTestInvoice(t *testing.T, db *gorm.DB, clientID string, subtotal, taxes string) *models.Invoice {
	t.Helper()

	inv := &models.Invoice{
		Document: models.Document{Status: models.StatusPending},
		ClientID: clientID,
		Currency: "USD",
		Subtotal: Dec(subtotal),
		Taxes:    Dec(taxes),
		Total:    Dec(subtotal).Add(Dec(taxes)),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test invoice: %v", err)
	}
	return inv
}

// CreateTestTransaction creates a pending expense transaction.
func CreateTestTransaction(t *testing.T, db *gorm.DB) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Document:    models.Document{Status: models.StatusPending},
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Type:        models.TransactionTypeExpense,
		Currency:    "USD",
		Subtotal:    Dec("100"),
		Taxes:       Dec("18"),
		Total:       Dec("118"),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// SetStatus forces a document row into status, bypassing the lifecycle.
func SetStatus(t *testing.T, db *gorm.DB, model interface{}, id string, status models.Status) {
	t.Helper()

	if err := db.Model(model).Where("id = ?", id).Update("status", status).Error; err != nil {
		t.Fatalf("failed to set status: %v", err)
	}
}

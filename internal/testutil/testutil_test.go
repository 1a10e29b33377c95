package testutil_test

import (
	"testing"

	"backoffice/internal/errors"
	"backoffice/internal/models"
	"backoffice/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{
		"clients", "projects", "contacts", "collaborator_roles", "collaborators",
		"invoices", "transactions", "money_exchanges", "collections",
		"collaborator_payments", "proformas", "proforma_items",
		"tax_payments", "tax_payment_items", "audit_logs",
	} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	client := testutil.CreateTestClient(t, db)
	if client.ID == "" {
		t.Fatal("client should have an application-assigned ID")
	}

	inv := testutil.CreateTestInvoice(t, db, client.ID, "100", "18")
	testutil.AssertDecimal(t, "total", inv.Total, "118")
	if inv.Status != models.StatusPending {
		t.Errorf("expected Pending, got %s", inv.Status)
	}

	testutil.SetStatus(t, db, &models.Invoice{}, inv.ID, models.StatusIssued)
	var reloaded models.Invoice
	if err := db.First(&reloaded, "id = ?", inv.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != models.StatusIssued {
		t.Errorf("expected Issued, got %s", reloaded.Status)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.NotFound(errors.ErrClientNotFound, "Client", "x")
	testutil.AssertAppError(t, err, "CLIENT_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

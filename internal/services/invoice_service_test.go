package services

import (
	"context"
	"testing"

	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/testutil"
)

func TestCreateInvoice(t *testing.T) {
	t.Run("derives_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvoiceService(db)
		client := testutil.CreateTestClient(t, db)

		inv, err := svc.CreateInvoice(context.Background(), InvoiceInput{
			ClientID: client.ID, Currency: "USD", Subtotal: testutil.Dec("100.10"), Taxes: testutil.Dec("18.02"),
		})
		testutil.AssertNoError(t, err)

		if inv.Status != models.StatusPending {
			t.Errorf("expected Pending, got %s", inv.Status)
		}
		testutil.AssertDecimal(t, "total", inv.Total, "118.12")
		if inv.ClientName != client.Name {
			t.Errorf("expected client name %q, got %q", client.Name, inv.ClientName)
		}
	})

	t.Run("missing_client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvoiceService(db)

		_, err := svc.CreateInvoice(context.Background(), InvoiceInput{
			ClientID: "0190a1b2-0000-7000-8000-0000000000aa", Currency: "USD",
		})
		appErr := testutil.AssertAppError(t, err, "CLIENT_NOT_FOUND")
		if appErr.Message != "Client 0190a1b2-0000-7000-8000-0000000000aa not found" {
			t.Errorf("unexpected message %q", appErr.Message)
		}
	})
}

func TestUpdateInvoice(t *testing.T) {
	t.Run("recomputes_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvoiceService(db)
		client := testutil.CreateTestClient(t, db)
		inv := testutil.CreateTestInvoice(t, db, client.ID, "10", "1")

		updated, err := svc.UpdateInvoice(context.Background(), inv.ID, InvoiceInput{
			ClientID: client.ID, Currency: "PEN", Description: "June", Subtotal: testutil.Dec("200"), Taxes: testutil.Dec("36"),
		})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "total", updated.Total, "236")
		if updated.Currency != "PEN" || updated.Description != "June" {
			t.Errorf("fields not updated: %+v", updated)
		}
	})

	t.Run("rejected_once_issued", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvoiceService(db)
		client := testutil.CreateTestClient(t, db)
		inv := testutil.CreateTestInvoice(t, db, client.ID, "10", "1")
		testutil.SetStatus(t, db, &models.Invoice{}, inv.ID, models.StatusIssued)

		_, err := svc.UpdateInvoice(context.Background(), inv.ID, InvoiceInput{
			ClientID: client.ID, Currency: "USD", Subtotal: testutil.Dec("1"), Taxes: testutil.Dec("1"),
		})
		testutil.AssertAppError(t, err, "INVALID_STATUS")

		got, _ := svc.GetInvoice(context.Background(), inv.ID)
		testutil.AssertDecimal(t, "total", got.Total, "11")
	})
}

func TestInvoiceLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	svc := NewInvoiceService(db)
	client := testutil.CreateTestClient(t, db)
	inv := testutil.CreateTestInvoice(t, db, client.ID, "100", "18")

	rate := testutil.Dec("3.745")
	issued, err := svc.IssueInvoice(ctx, inv.ID, IssueInvoiceInput{
		Number: "F001-00012", IssueDate: testutil.Date(2024, 6, 30), ExchangeRate: &rate,
	})
	testutil.AssertNoError(t, err)
	if issued.Status != models.StatusIssued || issued.IssuedAt == nil {
		t.Fatalf("expected issued invoice with timestamp, got %+v", issued)
	}
	if issued.Number == nil || *issued.Number != "F001-00012" {
		t.Errorf("expected number F001-00012, got %v", issued.Number)
	}
	if issued.ExchangeRate == nil || !issued.ExchangeRate.Equal(rate) {
		t.Errorf("expected exchange rate %s, got %v", rate, issued.ExchangeRate)
	}

	_, err = svc.IssueInvoice(ctx, inv.ID, IssueInvoiceInput{Number: "again"})
	testutil.AssertAppError(t, err, "INVALID_STATUS")

	canceled, err := svc.CancelInvoice(ctx, inv.ID)
	testutil.AssertNoError(t, err)
	if canceled.CanceledAt == nil {
		t.Fatal("expected canceledAt to be set")
	}
	stamp := *canceled.CanceledAt

	_, err = svc.CancelInvoice(ctx, inv.ID)
	testutil.AssertAppError(t, err, "INVALID_STATUS")
	again, _ := svc.GetInvoice(ctx, inv.ID)
	if !again.CanceledAt.Equal(stamp) {
		t.Error("canceledAt must be set only once")
	}
}

func TestListInvoices_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	svc := NewInvoiceService(db)
	a := testutil.CreateTestClient(t, db)
	b := testutil.CreateTestClient(t, db)
	testutil.CreateTestInvoice(t, db, a.ID, "1", "0")
	issued := testutil.CreateTestInvoice(t, db, a.ID, "2", "0")
	testutil.CreateTestInvoice(t, db, b.ID, "3", "0")
	testutil.SetStatus(t, db, &models.Invoice{}, issued.ID, models.StatusIssued)

	byClient, err := svc.ListInvoices(ctx, pagination.PageRequest{}, InvoiceFilter{ClientID: &a.ID})
	testutil.AssertNoError(t, err)
	if byClient.TotalCount != 2 {
		t.Errorf("expected 2 invoices for client, got %d", byClient.TotalCount)
	}

	status := models.StatusIssued
	byStatus, err := svc.ListInvoices(ctx, pagination.PageRequest{}, InvoiceFilter{Status: &status})
	testutil.AssertNoError(t, err)
	if byStatus.TotalCount != 1 || byStatus.Items[0].ID != issued.ID {
		t.Errorf("expected only the issued invoice, got %+v", byStatus.Items)
	}

	all, err := svc.ExportInvoices(ctx, InvoiceFilter{})
	testutil.AssertNoError(t, err)
	if len(all) != 3 {
		t.Errorf("expected 3 exported invoices, got %d", len(all))
	}
}

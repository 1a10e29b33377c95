package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/export"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/services"
)

const (
	invoiceID = "0190a4d2-7c4e-7a1b-9c3d-2f5e6a7b8c9d"
	clientID  = "0190a4d2-7c4e-7a1b-9c3d-000000000001"
)

// --- mock invoice service ---

type mockInvoiceService struct {
	createInvoiceFn func(in services.InvoiceInput) (*models.Invoice, error)
	listInvoicesFn  func(page pagination.PageRequest, filter services.InvoiceFilter) (*pagination.PageResponse[models.Invoice], error)
	exportFn        func(filter services.InvoiceFilter) ([]models.Invoice, error)
	getInvoiceFn    func(id string) (*models.Invoice, error)
	updateInvoiceFn func(id string, in services.InvoiceInput) (*models.Invoice, error)
	issueInvoiceFn  func(id string, in services.IssueInvoiceInput) (*models.Invoice, error)
	cancelInvoiceFn func(id string) (*models.Invoice, error)
}

func (m *mockInvoiceService) CreateInvoice(_ context.Context, in services.InvoiceInput) (*models.Invoice, error) {
	if m.createInvoiceFn != nil {
		return m.createInvoiceFn(in)
	}
	return &models.Invoice{}, nil
}

func (m *mockInvoiceService) ListInvoices(_ context.Context, page pagination.PageRequest, filter services.InvoiceFilter) (*pagination.PageResponse[models.Invoice], error) {
	if m.listInvoicesFn != nil {
		return m.listInvoicesFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Invoice{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockInvoiceService) ExportInvoices(_ context.Context, filter services.InvoiceFilter) ([]models.Invoice, error) {
	if m.exportFn != nil {
		return m.exportFn(filter)
	}
	return nil, nil
}

func (m *mockInvoiceService) GetInvoice(_ context.Context, id string) (*models.Invoice, error) {
	if m.getInvoiceFn != nil {
		return m.getInvoiceFn(id)
	}
	return &models.Invoice{}, nil
}

func (m *mockInvoiceService) UpdateInvoice(_ context.Context, id string, in services.InvoiceInput) (*models.Invoice, error) {
	if m.updateInvoiceFn != nil {
		return m.updateInvoiceFn(id, in)
	}
	return &models.Invoice{}, nil
}

func (m *mockInvoiceService) IssueInvoice(_ context.Context, id string, in services.IssueInvoiceInput) (*models.Invoice, error) {
	if m.issueInvoiceFn != nil {
		return m.issueInvoiceFn(id, in)
	}
	return &models.Invoice{}, nil
}

func (m *mockInvoiceService) CancelInvoice(_ context.Context, id string) (*models.Invoice, error) {
	if m.cancelInvoiceFn != nil {
		return m.cancelInvoiceFn(id)
	}
	return &models.Invoice{}, nil
}

var _ services.InvoiceServicer = (*mockInvoiceService)(nil)

func setupInvoiceRouter(handler *InvoiceHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectActor(testActor))
	auth.POST("/invoices", handler.CreateInvoice)
	auth.GET("/invoices", handler.ListInvoices)
	auth.GET("/invoices/export", handler.ExportInvoices)
	auth.GET("/invoices/:id", handler.GetInvoice)
	auth.PUT("/invoices/:id", handler.UpdateInvoice)
	auth.POST("/invoices/:id/issue", handler.IssueInvoice)
	auth.POST("/invoices/:id/cancel", handler.CancelInvoice)
	return r
}

func TestInvoiceHandler_CreateInvoice(t *testing.T) {
	t.Run("returns 201 with derived total", func(t *testing.T) {
		svc := &mockInvoiceService{
			createInvoiceFn: func(in services.InvoiceInput) (*models.Invoice, error) {
				if in.ClientID != clientID || in.Currency != "USD" {
					t.Errorf("unexpected input %+v", in)
				}
				return &models.Invoice{
					Document: models.Document{Base: models.Base{ID: invoiceID}, Status: models.StatusPending},
					ClientID: in.ClientID,
					Currency: in.Currency,
					Subtotal: in.Subtotal,
					Taxes:    in.Taxes,
					Total:    in.Subtotal.Add(in.Taxes),
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupInvoiceRouter(NewInvoiceHandler(svc, audit))

		rec := doRequest(r, "POST", "/invoices",
			`{"clientId":"`+clientID+`","currency":"USD","subtotal":"100.00","taxes":18}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total"] != "118" {
			t.Errorf("expected total 118, got %v", result["total"])
		}
		if result["status"] != "Pending" {
			t.Errorf("expected Pending, got %v", result["status"])
		}
		entry := audit.last()
		if entry.Action != "CREATE_INVOICE" || entry.Actor != testActor || entry.ResourceID != invoiceID {
			t.Errorf("unexpected audit entry %+v", entry)
		}
	})

	t.Run("returns 422 with field details", func(t *testing.T) {
		r := setupInvoiceRouter(NewInvoiceHandler(&mockInvoiceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/invoices",
			`{"clientId":"nope","currency":"usd","subtotal":-1,"taxes":0}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "VALIDATION_FAILED")
		fields := detailFields(t, result)
		for _, f := range []string{"clientId", "currency", "subtotal"} {
			if !hasField(fields, f) {
				t.Errorf("expected detail for %s, got %v", f, fields)
			}
		}
	})

	t.Run("returns 422 on malformed JSON", func(t *testing.T) {
		r := setupInvoiceRouter(NewInvoiceHandler(&mockInvoiceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/invoices", `{"clientId":`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when client does not exist", func(t *testing.T) {
		svc := &mockInvoiceService{
			createInvoiceFn: func(in services.InvoiceInput) (*models.Invoice, error) {
				return nil, apperrors.NotFound(apperrors.ErrClientNotFound, "Client", in.ClientID)
			},
		}
		r := setupInvoiceRouter(NewInvoiceHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/invoices",
			`{"clientId":"`+clientID+`","currency":"EUR","subtotal":1,"taxes":0}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CLIENT_NOT_FOUND")
	})
}

func TestInvoiceHandler_ListInvoices(t *testing.T) {
	t.Run("passes filters and pagination", func(t *testing.T) {
		svc := &mockInvoiceService{
			listInvoicesFn: func(page pagination.PageRequest, filter services.InvoiceFilter) (*pagination.PageResponse[models.Invoice], error) {
				if page.PageNumber != 2 || page.PageSize != 5 {
					t.Errorf("unexpected page %+v", page)
				}
				if filter.Status == nil || *filter.Status != models.StatusIssued {
					t.Errorf("expected Issued filter, got %v", filter.Status)
				}
				if filter.ClientID == nil || *filter.ClientID != clientID {
					t.Errorf("expected client filter, got %v", filter.ClientID)
				}
				resp := pagination.NewPageResponse([]models.Invoice{{}}, 2, 5, 6)
				return &resp, nil
			},
		}
		r := setupInvoiceRouter(NewInvoiceHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/invoices?status=Issued&clientId="+clientID+"&pageNumber=2&pageSize=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["totalCount"].(float64) != 6 {
			t.Errorf("expected totalCount 6, got %v", result["totalCount"])
		}
		if len(result["items"].([]interface{})) != 1 {
			t.Errorf("expected 1 item, got %v", result["items"])
		}
	})

	t.Run("returns 422 on unknown status", func(t *testing.T) {
		r := setupInvoiceRouter(NewInvoiceHandler(&mockInvoiceService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/invoices?status=Draft", "")

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("returns 422 on page size above limit", func(t *testing.T) {
		r := setupInvoiceRouter(NewInvoiceHandler(&mockInvoiceService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/invoices?pageSize=101", "")

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if !hasField(detailFields(t, parseJSON(t, rec)), "pageSize") {
			t.Error("expected pageSize detail")
		}
	})

	t.Run("returns 422 on page number above limit", func(t *testing.T) {
		r := setupInvoiceRouter(NewInvoiceHandler(&mockInvoiceService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/invoices?pageNumber=9223372036854775807", "")

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if !hasField(detailFields(t, parseJSON(t, rec)), "pageNumber") {
			t.Error("expected pageNumber detail")
		}
	})
}

func TestInvoiceHandler_GetInvoice(t *testing.T) {
	t.Run("returns 422 on malformed id", func(t *testing.T) {
		r := setupInvoiceRouter(NewInvoiceHandler(&mockInvoiceService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/invoices/123", "")

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if !hasField(detailFields(t, result), "id") {
			t.Errorf("expected id detail, got %v", result)
		}
	})

	t.Run("returns 404 naming the invoice", func(t *testing.T) {
		svc := &mockInvoiceService{
			getInvoiceFn: func(id string) (*models.Invoice, error) {
				return nil, apperrors.NotFound(apperrors.ErrInvoiceNotFound, "Invoice", id)
			},
		}
		r := setupInvoiceRouter(NewInvoiceHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/invoices/"+invoiceID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INVOICE_NOT_FOUND")
		msg := result["error"].(map[string]interface{})["message"].(string)
		if msg != "Invoice "+invoiceID+" not found" {
			t.Errorf("unexpected message %q", msg)
		}
	})
}

func TestInvoiceHandler_IssueInvoice(t *testing.T) {
	t.Run("parses date and exchange rate", func(t *testing.T) {
		svc := &mockInvoiceService{
			issueInvoiceFn: func(id string, in services.IssueInvoiceInput) (*models.Invoice, error) {
				if in.Number != "F001-123" {
					t.Errorf("unexpected number %q", in.Number)
				}
				if got := time.Time(in.IssueDate).Format("2006-01-02"); got != "2024-07-01" {
					t.Errorf("unexpected issue date %s", got)
				}
				if in.ExchangeRate == nil || !in.ExchangeRate.Equal(decimal.RequireFromString("3.75")) {
					t.Errorf("unexpected exchange rate %v", in.ExchangeRate)
				}
				number := in.Number
				return &models.Invoice{
					Document: models.Document{Base: models.Base{ID: id}, Status: models.StatusIssued},
					Number:   &number,
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupInvoiceRouter(NewInvoiceHandler(svc, audit))

		rec := doRequest(r, "POST", "/invoices/"+invoiceID+"/issue",
			`{"number":"F001-123","issueDate":"2024-07-01","exchangeRate":3.75}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["status"] != "Issued" {
			t.Error("expected Issued status")
		}
		if audit.last().Action != "ISSUE_INVOICE" {
			t.Errorf("unexpected audit action %q", audit.last().Action)
		}
	})

	t.Run("returns 422 on bad date", func(t *testing.T) {
		r := setupInvoiceRouter(NewInvoiceHandler(&mockInvoiceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/invoices/"+invoiceID+"/issue", `{"number":"F1","issueDate":"01/07/2024"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if !hasField(detailFields(t, parseJSON(t, rec)), "issueDate") {
			t.Error("expected issueDate detail")
		}
	})

	t.Run("returns 409 when not pending", func(t *testing.T) {
		svc := &mockInvoiceService{
			issueInvoiceFn: func(id string, _ services.IssueInvoiceInput) (*models.Invoice, error) {
				return nil, apperrors.InvalidStatus("Invoice", id, "Canceled", "Pending")
			},
		}
		audit := &mockAuditService{}
		r := setupInvoiceRouter(NewInvoiceHandler(svc, audit))

		rec := doRequest(r, "POST", "/invoices/"+invoiceID+"/issue", `{"number":"F1","issueDate":"2024-07-01"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_STATUS")
		if len(audit.entries) != 0 {
			t.Error("failed transitions must not be audited")
		}
	})
}

func TestInvoiceHandler_CancelInvoice(t *testing.T) {
	svc := &mockInvoiceService{
		cancelInvoiceFn: func(id string) (*models.Invoice, error) {
			now := time.Now()
			return &models.Invoice{Document: models.Document{Base: models.Base{ID: id}, Status: models.StatusCanceled, CanceledAt: &now}}, nil
		},
	}
	r := setupInvoiceRouter(NewInvoiceHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "POST", "/invoices/"+invoiceID+"/cancel", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["status"] != "Canceled" || result["canceledAt"] == nil {
		t.Errorf("unexpected body %v", result)
	}
}

func TestInvoiceHandler_ExportInvoices(t *testing.T) {
	svc := &mockInvoiceService{
		exportFn: func(filter services.InvoiceFilter) ([]models.Invoice, error) {
			return []models.Invoice{{ClientName: "Acme", Currency: "USD", Total: decimal.NewFromInt(10)}}, nil
		},
	}
	r := setupInvoiceRouter(NewInvoiceHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/invoices/export", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if rec.Header().Get("Content-Disposition") != `attachment; filename="invoices.xlsx"` {
		t.Errorf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}
	if rec.Body.Len() == 0 {
		t.Error("expected workbook body")
	}
}

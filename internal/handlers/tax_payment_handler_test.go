package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/services"
)

// --- mock tax payment service ---

type mockTaxPaymentService struct {
	createFn func(in services.TaxPaymentInput) (*models.TaxPayment, error)
	listFn   func(page pagination.PageRequest, filter services.TaxPaymentFilter) (*pagination.PageResponse[models.TaxPayment], error)
}

func (m *mockTaxPaymentService) CreateTaxPayment(_ context.Context, in services.TaxPaymentInput) (*models.TaxPayment, error) {
	if m.createFn != nil {
		return m.createFn(in)
	}
	return &models.TaxPayment{}, nil
}

func (m *mockTaxPaymentService) ListTaxPayments(_ context.Context, page pagination.PageRequest, filter services.TaxPaymentFilter) (*pagination.PageResponse[models.TaxPayment], error) {
	if m.listFn != nil {
		return m.listFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.TaxPayment{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTaxPaymentService) GetTaxPayment(_ context.Context, _ string) (*models.TaxPayment, error) {
	return &models.TaxPayment{}, nil
}

func (m *mockTaxPaymentService) UpdateTaxPayment(_ context.Context, _ string, _ services.TaxPaymentUpdate) (*models.TaxPayment, error) {
	return &models.TaxPayment{}, nil
}

func (m *mockTaxPaymentService) PayTaxPayment(_ context.Context, _ string, _ services.PayTaxPaymentInput) (*models.TaxPayment, error) {
	return &models.TaxPayment{}, nil
}

func (m *mockTaxPaymentService) CancelTaxPayment(_ context.Context, _ string) (*models.TaxPayment, error) {
	return &models.TaxPayment{}, nil
}

func (m *mockTaxPaymentService) ListItems(_ context.Context, _ string, _ pagination.PageRequest) (*pagination.PageResponse[models.TaxPaymentItem], error) {
	resp := pagination.NewPageResponse([]models.TaxPaymentItem{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTaxPaymentService) AddItem(_ context.Context, _ string, _ services.ItemInput) (*models.TaxPaymentItem, error) {
	return &models.TaxPaymentItem{}, nil
}

func (m *mockTaxPaymentService) DeleteItem(_ context.Context, _, _ string) error {
	return nil
}

var _ services.TaxPaymentServicer = (*mockTaxPaymentService)(nil)

func setupTaxPaymentRouter(handler *TaxPaymentHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectActor(testActor))
	auth.POST("/tax-payments", handler.CreateTaxPayment)
	auth.GET("/tax-payments", handler.ListTaxPayments)
	return r
}

func TestTaxPaymentHandler_CreateTaxPayment(t *testing.T) {
	t.Run("returns 201 with derived number", func(t *testing.T) {
		svc := &mockTaxPaymentService{
			createFn: func(in services.TaxPaymentInput) (*models.TaxPayment, error) {
				if in.Year != 2024 || in.Month != 5 {
					t.Errorf("unexpected period %d-%d", in.Year, in.Month)
				}
				return &models.TaxPayment{Number: "202405-1", Year: in.Year, Month: in.Month}, nil
			},
		}
		r := setupTaxPaymentRouter(NewTaxPaymentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/tax-payments", `{"year":2024,"month":5,"currency":"PEN","interest":"12.50"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["number"] != "202405-1" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("returns 422 on month out of range", func(t *testing.T) {
		r := setupTaxPaymentRouter(NewTaxPaymentHandler(&mockTaxPaymentService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/tax-payments", `{"year":2024,"month":13,"currency":"PEN"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if !hasField(detailFields(t, parseJSON(t, rec)), "month") {
			t.Error("expected month detail")
		}
	})
}

func TestTaxPaymentHandler_ListTaxPayments_YearFilter(t *testing.T) {
	svc := &mockTaxPaymentService{
		listFn: func(_ pagination.PageRequest, filter services.TaxPaymentFilter) (*pagination.PageResponse[models.TaxPayment], error) {
			if filter.Year == nil || *filter.Year != 2024 {
				t.Errorf("expected year 2024, got %v", filter.Year)
			}
			resp := pagination.NewPageResponse([]models.TaxPayment{}, 1, 20, 0)
			return &resp, nil
		},
	}
	r := setupTaxPaymentRouter(NewTaxPaymentHandler(svc, &mockAuditService{}))

	if rec := doRequest(r, "GET", "/tax-payments?year=2024", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := doRequest(r, "GET", "/tax-payments?year=last", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

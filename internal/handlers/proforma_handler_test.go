package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/services"
)

const (
	proformaID = "0190a4d2-7c4e-7a1b-9c3d-0000000000b1"
	itemID     = "0190a4d2-7c4e-7a1b-9c3d-0000000000b2"
)

// --- mock proforma service ---

type mockProformaService struct {
	createFn     func(in services.ProformaInput) (*models.Proforma, error)
	updateFn     func(id string, in services.ProformaUpdate) (*models.Proforma, error)
	addItemFn    func(id string, in services.ItemInput) (*models.ProformaItem, error)
	deleteItemFn func(id, itemID string) error
}

func (m *mockProformaService) CreateProforma(_ context.Context, in services.ProformaInput) (*models.Proforma, error) {
	if m.createFn != nil {
		return m.createFn(in)
	}
	return &models.Proforma{}, nil
}

func (m *mockProformaService) ListProformas(_ context.Context, _ pagination.PageRequest, _ services.ProformaFilter) (*pagination.PageResponse[models.Proforma], error) {
	resp := pagination.NewPageResponse([]models.Proforma{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockProformaService) ExportProformas(_ context.Context, _ services.ProformaFilter) ([]models.Proforma, error) {
	return nil, nil
}

func (m *mockProformaService) GetProforma(_ context.Context, _ string) (*models.Proforma, error) {
	return &models.Proforma{}, nil
}

func (m *mockProformaService) UpdateProforma(_ context.Context, id string, in services.ProformaUpdate) (*models.Proforma, error) {
	if m.updateFn != nil {
		return m.updateFn(id, in)
	}
	return &models.Proforma{}, nil
}

func (m *mockProformaService) IssueProforma(_ context.Context, _ string) (*models.Proforma, error) {
	return &models.Proforma{}, nil
}

func (m *mockProformaService) CancelProforma(_ context.Context, _ string) (*models.Proforma, error) {
	return &models.Proforma{}, nil
}

func (m *mockProformaService) ListItems(_ context.Context, _ string, _ pagination.PageRequest) (*pagination.PageResponse[models.ProformaItem], error) {
	resp := pagination.NewPageResponse([]models.ProformaItem{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockProformaService) AddItem(_ context.Context, id string, in services.ItemInput) (*models.ProformaItem, error) {
	if m.addItemFn != nil {
		return m.addItemFn(id, in)
	}
	return &models.ProformaItem{}, nil
}

func (m *mockProformaService) DeleteItem(_ context.Context, id, itemID string) error {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(id, itemID)
	}
	return nil
}

var _ services.ProformaServicer = (*mockProformaService)(nil)

func setupProformaRouter(handler *ProformaHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectActor(testActor))
	auth.POST("/proformas", handler.CreateProforma)
	auth.PUT("/proformas/:id", handler.UpdateProforma)
	auth.POST("/proformas/:id/items", handler.AddItem)
	auth.DELETE("/proformas/:id/items/:itemId", handler.DeleteItem)
	return r
}

func TestProformaHandler_CreateProforma(t *testing.T) {
	t.Run("parses dates and returns derived number", func(t *testing.T) {
		svc := &mockProformaService{
			createFn: func(in services.ProformaInput) (*models.Proforma, error) {
				if got := time.Time(in.EndDate).Format("2006-01-02"); got != "2024-06-30" {
					t.Errorf("unexpected end date %s", got)
				}
				return &models.Proforma{Number: "20240630-1", Total: decimal.Zero}, nil
			},
		}
		r := setupProformaRouter(NewProformaHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/proformas",
			`{"clientId":"`+clientID+`","currency":"USD","startDate":"2024-06-01","endDate":"2024-06-30"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["number"] != "20240630-1" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("total in the request is ignored", func(t *testing.T) {
		r := setupProformaRouter(NewProformaHandler(&mockProformaService{
			createFn: func(in services.ProformaInput) (*models.Proforma, error) {
				return &models.Proforma{Total: in.Expenses}, nil
			},
		}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/proformas",
			`{"clientId":"`+clientID+`","currency":"USD","startDate":"2024-06-01","endDate":"2024-06-30","expenses":5,"total":999}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if parseJSON(t, rec)["total"] != "5" {
			t.Errorf("unexpected total in %s", rec.Body.String())
		}
	})

	t.Run("returns 422 on missing dates", func(t *testing.T) {
		r := setupProformaRouter(NewProformaHandler(&mockProformaService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/proformas", `{"clientId":"`+clientID+`","currency":"USD"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		fields := detailFields(t, parseJSON(t, rec))
		if !hasField(fields, "startDate") || !hasField(fields, "endDate") {
			t.Errorf("expected date details, got %v", fields)
		}
	})
}

func TestProformaHandler_UpdateProforma(t *testing.T) {
	svc := &mockProformaService{
		updateFn: func(id string, in services.ProformaUpdate) (*models.Proforma, error) {
			if !in.Expenses.Equal(decimal.NewFromInt(50)) || !in.Discount.Equal(decimal.NewFromInt(10)) {
				t.Errorf("unexpected update %+v", in)
			}
			return nil, apperrors.InvalidStatus("Proforma", id, "Canceled", "Pending")
		},
	}
	r := setupProformaRouter(NewProformaHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "PUT", "/proformas/"+proformaID, `{"expenses":50,"discount":10,"taxes":5}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	msg := parseJSON(t, rec)["error"].(map[string]interface{})["message"]
	if msg != "Proforma "+proformaID+" is Canceled; expected Pending" {
		t.Errorf("unexpected message %v", msg)
	}
}

func TestProformaHandler_Items(t *testing.T) {
	t.Run("add returns 201", func(t *testing.T) {
		svc := &mockProformaService{
			addItemFn: func(id string, in services.ItemInput) (*models.ProformaItem, error) {
				return &models.ProformaItem{Base: models.Base{ID: itemID}, ProformaID: id, Description: in.Description, Amount: in.Amount}, nil
			},
		}
		r := setupProformaRouter(NewProformaHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/proformas/"+proformaID+"/items", `{"description":"Design","amount":"100"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("add rejects non-positive amounts", func(t *testing.T) {
		r := setupProformaRouter(NewProformaHandler(&mockProformaService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/proformas/"+proformaID+"/items", `{"description":"Design","amount":0}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("delete returns 204", func(t *testing.T) {
		var gotItem string
		svc := &mockProformaService{
			deleteItemFn: func(_, item string) error {
				gotItem = item
				return nil
			},
		}
		r := setupProformaRouter(NewProformaHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/proformas/"+proformaID+"/items/"+itemID, "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if gotItem != itemID {
			t.Errorf("unexpected item id %q", gotItem)
		}
	})

	t.Run("delete validates item id", func(t *testing.T) {
		r := setupProformaRouter(NewProformaHandler(&mockProformaService{}, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/proformas/"+proformaID+"/items/abc", "")

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if !hasField(detailFields(t, parseJSON(t, rec)), "itemId") {
			t.Error("expected itemId detail")
		}
	})
}

package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/services"
)

const transactionID = "0190a4d2-7c4e-7a1b-9c3d-00000000000a"

// --- mock transaction service ---

type mockTransactionService struct {
	createFn     func(in services.TransactionInput) (*models.Transaction, error)
	listFn       func(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	attachFileFn func(id string, file services.FileUpload) (*models.Transaction, error)
	fileURLFn    func(id string) (*services.FileLink, error)
}

func (m *mockTransactionService) CreateTransaction(_ context.Context, in services.TransactionInput) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) ListTransactions(_ context.Context, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.listFn != nil {
		return m.listFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransaction(_ context.Context, _ string) (*models.Transaction, error) {
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(_ context.Context, _ string, _ services.TransactionInput) (*models.Transaction, error) {
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) IssueTransaction(_ context.Context, _ string, _ services.IssueTransactionInput) (*models.Transaction, error) {
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) CancelTransaction(_ context.Context, _ string) (*models.Transaction, error) {
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) AttachFile(_ context.Context, id string, file services.FileUpload) (*models.Transaction, error) {
	if m.attachFileFn != nil {
		return m.attachFileFn(id, file)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) FileURL(_ context.Context, id string) (*services.FileLink, error) {
	if m.fileURLFn != nil {
		return m.fileURLFn(id)
	}
	return &services.FileLink{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectActor(testActor))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.ListTransactions)
	auth.POST("/transactions/:id/file", handler.UploadFile)
	auth.GET("/transactions/:id/file", handler.GetFileURL)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createFn: func(in services.TransactionInput) (*models.Transaction, error) {
				if in.Type != models.TransactionTypeExpense {
					t.Errorf("unexpected type %q", in.Type)
				}
				return &models.Transaction{Description: in.Description, Type: in.Type}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"description":"Office rent","type":"Expense","currency":"PEN","subtotal":1000,"taxes":180}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 422 on unknown type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"description":"x","type":"Refund","currency":"PEN","subtotal":1,"taxes":0}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if !hasField(detailFields(t, parseJSON(t, rec)), "type") {
			t.Error("expected type detail")
		}
	})
}

func TestTransactionHandler_ListTransactions_TypeFilter(t *testing.T) {
	svc := &mockTransactionService{
		listFn: func(_ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
			if filter.Type == nil || *filter.Type != models.TransactionTypeIncome {
				t.Errorf("expected Income filter, got %v", filter.Type)
			}
			resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
			return &resp, nil
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

	if rec := doRequest(r, "GET", "/transactions?type=Income", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := doRequest(r, "GET", "/transactions?type=Other", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestTransactionHandler_UploadFile(t *testing.T) {
	t.Run("streams the upload to the service", func(t *testing.T) {
		svc := &mockTransactionService{
			attachFileFn: func(id string, file services.FileUpload) (*models.Transaction, error) {
				body, _ := io.ReadAll(file.Body)
				if file.Filename != "receipt.pdf" || string(body) != "%PDF-1.4" {
					t.Errorf("unexpected upload %q %q", file.Filename, body)
				}
				if file.Size != int64(len("%PDF-1.4")) {
					t.Errorf("unexpected size %d", file.Size)
				}
				path := "transactions/" + id + "/x-receipt.pdf"
				return &models.Transaction{FilePath: &path}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(svc, audit))

		rec := doUpload(r, "/transactions/"+transactionID+"/file", "receipt.pdf", []byte("%PDF-1.4"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.HasPrefix(parseJSON(t, rec)["filePath"].(string), "transactions/"+transactionID) {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
		if audit.last().Action != "UPLOAD_TRANSACTION_FILE" {
			t.Errorf("unexpected audit action %q", audit.last().Action)
		}
	})

	t.Run("returns 422 without a file field", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions/"+transactionID+"/file", `{}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("returns 413 above the size limit", func(t *testing.T) {
		called := false
		svc := &mockTransactionService{
			attachFileFn: func(string, services.FileUpload) (*models.Transaction, error) {
				called = true
				return nil, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doUpload(r, "/transactions/"+transactionID+"/file", "big.bin", make([]byte, services.MaxFileSize+1))

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FILE_TOO_LARGE")
		if called {
			t.Error("service must not be called for oversized uploads")
		}
	})
}

func TestTransactionHandler_GetFileURL(t *testing.T) {
	t.Run("returns link", func(t *testing.T) {
		svc := &mockTransactionService{
			fileURLFn: func(string) (*services.FileLink, error) {
				return &services.FileLink{URL: "https://files.example.com/x", ExpiresIn: 900}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/"+transactionID+"/file", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["url"] != "https://files.example.com/x" || result["expires_in"].(float64) != 900 {
			t.Errorf("unexpected body %v", result)
		}
	})

	t.Run("returns 404 when no file is attached", func(t *testing.T) {
		svc := &mockTransactionService{
			fileURLFn: func(id string) (*services.FileLink, error) {
				return nil, apperrors.WithMessage(apperrors.ErrFileNotFound, "Transaction "+id+" has no file attached")
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/"+transactionID+"/file", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FILE_NOT_FOUND")
	})
}

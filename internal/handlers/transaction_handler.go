package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
	"backoffice/internal/services"
)

// TransactionHandler handles income and expense documents.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// TransactionRequest represents the payload for creating or editing a transaction.
type TransactionRequest struct {
	Description string                 `json:"description" binding:"required,min=1"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Currency    string                 `json:"currency" binding:"required,iso4217"`
	Subtotal    decimal.Decimal        `json:"subtotal" binding:"gte=0"`
	Taxes       decimal.Decimal        `json:"taxes" binding:"gte=0"`
}

func (r TransactionRequest) input() services.TransactionInput {
	return services.TransactionInput{
		Description: r.Description,
		Type:        r.Type,
		Currency:    r.Currency,
		Subtotal:    r.Subtotal,
		Taxes:       r.Taxes,
	}
}

// IssueTransactionRequest represents the payload for issuing a transaction.
type IssueTransactionRequest struct {
	Number    string `json:"number" binding:"required,min=1,max=50"`
	IssueDate string `json:"issueDate" binding:"required,datetime=2006-01-02"`
}

// CreateTransaction handles the creation of a new transaction.
// @Summary     Create a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "subtotal": req.Subtotal, "taxes": req.Taxes})

	c.JSON(http.StatusCreated, transaction)
}

// ListTransactions handles listing transactions.
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       status     query string false "Filter by status"
// @Param       type       query string false "Filter by type (Income/Expense)"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	status, err := parseStatus(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.TransactionFilter{Status: status}
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense {
			respondWithError(c, apperrors.InvalidField("type", "must be Income or Expense"))
			return
		}
		filter.Type = &t
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTransaction handles fetching a single transaction.
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     422 {object} ErrorResponse "Invalid ID"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction handles editing a Pending transaction.
// @Summary     Update a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transaction is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_TRANSACTION", "transaction", id, c.ClientIP(),
		map[string]interface{}{"subtotal": req.Subtotal, "taxes": req.Taxes})

	c.JSON(http.StatusOK, transaction)
}

// IssueTransaction handles issuing a Pending transaction.
// @Summary     Issue a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Transaction ID"
// @Param       request body IssueTransactionRequest true "Issue details"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transaction is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /transactions/{id}/issue [post]
func (h *TransactionHandler) IssueTransaction(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IssueTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	issueDate, err := parseDate("issueDate", req.IssueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.IssueTransaction(c.Request.Context(), id,
		services.IssueTransactionInput{Number: req.Number, IssueDate: issueDate})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "ISSUE_TRANSACTION", "transaction", id, c.ClientIP(),
		map[string]interface{}{"number": req.Number, "issueDate": req.IssueDate})

	c.JSON(http.StatusOK, transaction)
}

// CancelTransaction handles canceling a transaction.
// @Summary     Cancel a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transaction already canceled"
// @Router      /transactions/{id}/cancel [post]
func (h *TransactionHandler) CancelTransaction(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CancelTransaction(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CANCEL_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, transaction)
}

// UploadFile handles attaching a file to a transaction.
// @Summary     Upload a transaction file
// @Tags        transactions
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     string true "Transaction ID"
// @Param       file formData file   true "Document file (max 10 MiB)"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transaction is canceled"
// @Failure     413 {object} ErrorResponse "File too large"
// @Failure     502 {object} ErrorResponse "Storage unavailable"
// @Router      /transactions/{id}/file [post]
func (h *TransactionHandler) UploadFile(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	upload, done, err := readUpload(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer done()

	transaction, err := h.transactionService.AttachFile(c.Request.Context(), id, upload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPLOAD_TRANSACTION_FILE", "transaction", id, c.ClientIP(),
		map[string]interface{}{"filename": upload.Filename, "size": upload.Size})

	c.JSON(http.StatusOK, transaction)
}

// GetFileURL handles issuing a download link for a transaction's file.
// @Summary     Get a transaction file link
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} services.FileLink
// @Failure     404 {object} ErrorResponse "Transaction or file not found"
// @Router      /transactions/{id}/file [get]
func (h *TransactionHandler) GetFileURL(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	link, err := h.transactionService.FileURL(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

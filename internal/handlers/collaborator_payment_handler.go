package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"backoffice/internal/export"
	"backoffice/internal/services"
)

// CollaboratorPaymentHandler handles payroll entries.
type CollaboratorPaymentHandler struct {
	paymentService services.CollaboratorPaymentServicer
	auditService   services.AuditServicer
}

// NewCollaboratorPaymentHandler creates a new CollaboratorPaymentHandler.
func NewCollaboratorPaymentHandler(paymentService services.CollaboratorPaymentServicer, auditService services.AuditServicer) *CollaboratorPaymentHandler {
	return &CollaboratorPaymentHandler{paymentService: paymentService, auditService: auditService}
}

// PaymentRequest represents the payload for creating or editing a payment.
// Withholding and net salary are derived from the collaborator.
type PaymentRequest struct {
	CollaboratorID string          `json:"collaboratorId" binding:"required,uuid"`
	Currency       string          `json:"currency" binding:"required,iso4217"`
	Description    string          `json:"description"`
	GrossSalary    decimal.Decimal `json:"grossSalary" binding:"gt=0"`
}

func (r PaymentRequest) input() services.PaymentInput {
	return services.PaymentInput{
		CollaboratorID: r.CollaboratorID,
		Currency:       r.Currency,
		Description:    r.Description,
		GrossSalary:    r.GrossSalary,
	}
}

// PayPaymentRequest represents the payload for marking a payment paid.
type PayPaymentRequest struct {
	Number      string `json:"number" binding:"required,min=1,max=50"`
	PaymentDate string `json:"paymentDate" binding:"required,datetime=2006-01-02"`
}

func paymentFilter(c *gin.Context) (services.PaymentFilter, error) {
	status, err := parseStatus(c)
	if err != nil {
		return services.PaymentFilter{}, err
	}
	collaboratorID, err := parseQueryID(c, "collaboratorId")
	if err != nil {
		return services.PaymentFilter{}, err
	}
	return services.PaymentFilter{Status: status, CollaboratorID: collaboratorID}, nil
}

// CreatePayment handles the creation of a collaborator payment.
// @Summary     Create a collaborator payment
// @Tags        collaborator-payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PaymentRequest true "Payment details"
// @Success     201 {object} models.CollaboratorPayment
// @Failure     404 {object} ErrorResponse "Collaborator not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collaborator-payments [post]
func (h *CollaboratorPaymentHandler) CreatePayment(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaymentRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_COLLABORATOR_PAYMENT", "collaborator_payment", payment.ID, c.ClientIP(),
		map[string]interface{}{"collaboratorId": req.CollaboratorID, "grossSalary": req.GrossSalary})

	c.JSON(http.StatusCreated, payment)
}

// ListPayments handles listing collaborator payments.
// @Summary     List collaborator payments
// @Tags        collaborator-payments
// @Produce     json
// @Security    BearerAuth
// @Param       status         query string false "Filter by status"
// @Param       collaboratorId query string false "Filter by collaborator"
// @Param       pageNumber     query int    false "Page number (default 1)"
// @Param       pageSize       query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.CollaboratorPayment]
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collaborator-payments [get]
func (h *CollaboratorPaymentHandler) ListPayments(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := paymentFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportPayments handles exporting collaborator payments as a spreadsheet.
// @Summary     Export collaborator payments
// @Tags        collaborator-payments
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       status         query string false "Filter by status"
// @Param       collaboratorId query string false "Filter by collaborator"
// @Success     200 {file} file "XLSX workbook"
// @Router      /collaborator-payments/export [get]
func (h *CollaboratorPaymentHandler) ExportPayments(c *gin.Context) {
	filter, err := paymentFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payments, err := h.paymentService.ExportPayments(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	writeWorkbook(c, "collaborator-payments.xlsx", export.CollaboratorPayments, payments)
}

// GetPayment handles fetching a collaborator payment.
// @Summary     Get a collaborator payment
// @Tags        collaborator-payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} models.CollaboratorPayment
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Router      /collaborator-payments/{id} [get]
func (h *CollaboratorPaymentHandler) GetPayment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// UpdatePayment handles editing a Pending collaborator payment.
// @Summary     Update a collaborator payment
// @Tags        collaborator-payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Payment ID"
// @Param       request body PaymentRequest true "Payment details"
// @Success     200 {object} models.CollaboratorPayment
// @Failure     404 {object} ErrorResponse "Payment or collaborator not found"
// @Failure     409 {object} ErrorResponse "Payment is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collaborator-payments/{id} [put]
func (h *CollaboratorPaymentHandler) UpdatePayment(c *gin.Context) {
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

	var req PaymentRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_COLLABORATOR_PAYMENT", "collaborator_payment", id, c.ClientIP(),
		map[string]interface{}{"grossSalary": req.GrossSalary})

	c.JSON(http.StatusOK, payment)
}

// PayPayment handles marking a Pending payment as paid.
// @Summary     Pay a collaborator payment
// @Tags        collaborator-payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Payment ID"
// @Param       request body PayPaymentRequest true "Payment details"
// @Success     200 {object} models.CollaboratorPayment
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     409 {object} ErrorResponse "Payment is not Pending"
// @Router      /collaborator-payments/{id}/pay [post]
func (h *CollaboratorPaymentHandler) PayPayment(c *gin.Context) {
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

	var req PayPaymentRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	paymentDate, err := parseDate("paymentDate", req.PaymentDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.PayPayment(c.Request.Context(), id,
		services.PayPaymentInput{Number: req.Number, PaymentDate: paymentDate})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "PAY_COLLABORATOR_PAYMENT", "collaborator_payment", id, c.ClientIP(),
		map[string]interface{}{"number": req.Number, "paymentDate": req.PaymentDate})

	c.JSON(http.StatusOK, payment)
}

// ConfirmPayment handles confirming a Paid payment.
// @Summary     Confirm a collaborator payment
// @Tags        collaborator-payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} models.CollaboratorPayment
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     409 {object} ErrorResponse "Payment is not Paid"
// @Router      /collaborator-payments/{id}/confirm [post]
func (h *CollaboratorPaymentHandler) ConfirmPayment(c *gin.Context) {
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

	payment, err := h.paymentService.ConfirmPayment(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CONFIRM_COLLABORATOR_PAYMENT", "collaborator_payment", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, payment)
}

// CancelPayment handles canceling a Pending or Paid payment.
// @Summary     Cancel a collaborator payment
// @Tags        collaborator-payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} models.CollaboratorPayment
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     409 {object} ErrorResponse "Payment cannot be canceled"
// @Router      /collaborator-payments/{id}/cancel [post]
func (h *CollaboratorPaymentHandler) CancelPayment(c *gin.Context) {
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

	payment, err := h.paymentService.CancelPayment(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CANCEL_COLLABORATOR_PAYMENT", "collaborator_payment", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, payment)
}

// UploadFile handles attaching a file to a collaborator payment.
// @Summary     Upload a collaborator payment file
// @Tags        collaborator-payments
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     string true "Payment ID"
// @Param       file formData file   true "Document file (max 10 MiB)"
// @Success     200 {object} models.CollaboratorPayment
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     409 {object} ErrorResponse "Payment is canceled"
// @Failure     413 {object} ErrorResponse "File too large"
// @Router      /collaborator-payments/{id}/file [post]
func (h *CollaboratorPaymentHandler) UploadFile(c *gin.Context) {
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

	payment, err := h.paymentService.AttachFile(c.Request.Context(), id, upload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPLOAD_COLLABORATOR_PAYMENT_FILE", "collaborator_payment", id, c.ClientIP(),
		map[string]interface{}{"filename": upload.Filename, "size": upload.Size})

	c.JSON(http.StatusOK, payment)
}

// GetFileURL handles issuing a download link for a payment's file.
// @Summary     Get a collaborator payment file link
// @Tags        collaborator-payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} services.FileLink
// @Failure     404 {object} ErrorResponse "Payment or file not found"
// @Router      /collaborator-payments/{id}/file [get]
func (h *CollaboratorPaymentHandler) GetFileURL(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	link, err := h.paymentService.FileURL(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

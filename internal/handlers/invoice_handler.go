package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"backoffice/internal/export"
	"backoffice/internal/services"
)

// InvoiceHandler handles invoice-related requests.
type InvoiceHandler struct {
	invoiceService services.InvoiceServicer
	auditService   services.AuditServicer
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService services.InvoiceServicer, auditService services.AuditServicer) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, auditService: auditService}
}

// InvoiceRequest represents the payload for creating or editing an invoice.
// The total is always computed by the server.
type InvoiceRequest struct {
	ClientID    string          `json:"clientId" binding:"required,uuid"`
	Currency    string          `json:"currency" binding:"required,iso4217"`
	Description string          `json:"description"`
	Subtotal    decimal.Decimal `json:"subtotal" binding:"gte=0"`
	Taxes       decimal.Decimal `json:"taxes" binding:"gte=0"`
}

func (r InvoiceRequest) input() services.InvoiceInput {
	return services.InvoiceInput{
		ClientID:    r.ClientID,
		Currency:    r.Currency,
		Description: r.Description,
		Subtotal:    r.Subtotal,
		Taxes:       r.Taxes,
	}
}

// IssueInvoiceRequest represents the payload for issuing an invoice.
type IssueInvoiceRequest struct {
	Number       string           `json:"number" binding:"required,min=1,max=50"`
	IssueDate    string           `json:"issueDate" binding:"required,datetime=2006-01-02"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate" binding:"omitempty,gt=0"`
}

func invoiceFilter(c *gin.Context) (services.InvoiceFilter, error) {
	status, err := parseStatus(c)
	if err != nil {
		return services.InvoiceFilter{}, err
	}
	clientID, err := parseQueryID(c, "clientId")
	if err != nil {
		return services.InvoiceFilter{}, err
	}
	return services.InvoiceFilter{Status: status, ClientID: clientID}, nil
}

// CreateInvoice handles the creation of a new invoice.
// @Summary     Create an invoice
// @Description Create a Pending invoice; total is computed as subtotal + taxes
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InvoiceRequest true "Invoice details"
// @Success     201 {object} models.Invoice "Invoice created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_INVOICE", "invoice", invoice.ID, c.ClientIP(),
		map[string]interface{}{"clientId": req.ClientID, "subtotal": req.Subtotal, "taxes": req.Taxes})

	c.JSON(http.StatusCreated, invoice)
}

// ListInvoices handles listing invoices.
// @Summary     List invoices
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       status     query string false "Filter by status"
// @Param       clientId   query string false "Filter by client"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Invoice] "Paginated invoices"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := invoiceFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportInvoices handles exporting invoices as a spreadsheet.
// @Summary     Export invoices
// @Tags        invoices
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       status   query string false "Filter by status"
// @Param       clientId query string false "Filter by client"
// @Success     200 {file} file "XLSX workbook"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /invoices/export [get]
func (h *InvoiceHandler) ExportInvoices(c *gin.Context) {
	filter, err := invoiceFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	invoices, err := h.invoiceService.ExportInvoices(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	writeWorkbook(c, "invoices.xlsx", export.Invoices, invoices)
}

// GetInvoice handles fetching a single invoice.
// @Summary     Get an invoice
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Invoice ID"
// @Success     200 {object} models.Invoice
// @Failure     404 {object} ErrorResponse "Invoice not found"
// @Failure     422 {object} ErrorResponse "Invalid ID"
// @Router      /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice handles editing a Pending invoice.
// @Summary     Update an invoice
// @Description Edit a Pending invoice; total is recomputed as subtotal + taxes
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Invoice ID"
// @Param       request body InvoiceRequest true "Invoice details"
// @Success     200 {object} models.Invoice
// @Failure     404 {object} ErrorResponse "Invoice not found"
// @Failure     409 {object} ErrorResponse "Invoice is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
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

	var req InvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_INVOICE", "invoice", id, c.ClientIP(),
		map[string]interface{}{"subtotal": req.Subtotal, "taxes": req.Taxes})

	c.JSON(http.StatusOK, invoice)
}

// IssueInvoice handles issuing a Pending invoice.
// @Summary     Issue an invoice
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Invoice ID"
// @Param       request body IssueInvoiceRequest true "Issue details"
// @Success     200 {object} models.Invoice
// @Failure     404 {object} ErrorResponse "Invoice not found"
// @Failure     409 {object} ErrorResponse "Invoice is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /invoices/{id}/issue [post]
func (h *InvoiceHandler) IssueInvoice(c *gin.Context) {
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

	var req IssueInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	issueDate, err := parseDate("issueDate", req.IssueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoiceService.IssueInvoice(c.Request.Context(), id, services.IssueInvoiceInput{
		Number:       req.Number,
		IssueDate:    issueDate,
		ExchangeRate: req.ExchangeRate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "ISSUE_INVOICE", "invoice", id, c.ClientIP(),
		map[string]interface{}{"number": req.Number, "issueDate": req.IssueDate})

	c.JSON(http.StatusOK, invoice)
}

// CancelInvoice handles canceling an invoice.
// @Summary     Cancel an invoice
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Invoice ID"
// @Success     200 {object} models.Invoice
// @Failure     404 {object} ErrorResponse "Invoice not found"
// @Failure     409 {object} ErrorResponse "Invoice already canceled"
// @Router      /invoices/{id}/cancel [post]
func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
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

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CANCEL_INVOICE", "invoice", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, invoice)
}

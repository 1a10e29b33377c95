package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/services"
)

// TaxPaymentHandler handles monthly tax payments and their items.
type TaxPaymentHandler struct {
	taxPaymentService services.TaxPaymentServicer
	auditService      services.AuditServicer
}

// NewTaxPaymentHandler creates a new TaxPaymentHandler.
func NewTaxPaymentHandler(taxPaymentService services.TaxPaymentServicer, auditService services.AuditServicer) *TaxPaymentHandler {
	return &TaxPaymentHandler{taxPaymentService: taxPaymentService, auditService: auditService}
}

// CreateTaxPaymentRequest represents the payload for creating a tax payment.
// Number, taxes and total are derived by the server.
type CreateTaxPaymentRequest struct {
	Year        int             `json:"year" binding:"required,min=2000,max=2100"`
	Month       int             `json:"month" binding:"required,month"`
	Currency    string          `json:"currency" binding:"required,iso4217"`
	Description string          `json:"description"`
	Interest    decimal.Decimal `json:"interest" binding:"gte=0"`
}

// UpdateTaxPaymentRequest represents the payload for editing a tax payment.
type UpdateTaxPaymentRequest struct {
	Description *string         `json:"description"`
	Interest    decimal.Decimal `json:"interest" binding:"gte=0"`
}

// PayTaxPaymentRequest represents the payload for marking a tax payment paid.
type PayTaxPaymentRequest struct {
	PaymentDate string `json:"paymentDate" binding:"required,datetime=2006-01-02"`
}

// CreateTaxPayment handles the creation of a tax payment.
// @Summary     Create a tax payment
// @Description Create a Pending tax payment numbered {YYYY}{MM}-{n}
// @Tags        tax-payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTaxPaymentRequest true "Tax payment details"
// @Success     201 {object} models.TaxPayment
// @Failure     409 {object} ErrorResponse "Number conflict"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /tax-payments [post]
func (h *TaxPaymentHandler) CreateTaxPayment(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTaxPaymentRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.taxPaymentService.CreateTaxPayment(c.Request.Context(), services.TaxPaymentInput{
		Year:        req.Year,
		Month:       req.Month,
		Currency:    req.Currency,
		Description: req.Description,
		Interest:    req.Interest,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_TAX_PAYMENT", "tax_payment", payment.ID, c.ClientIP(),
		map[string]interface{}{"number": payment.Number, "year": req.Year, "month": req.Month})

	c.JSON(http.StatusCreated, payment)
}

// ListTaxPayments handles listing tax payments.
// @Summary     List tax payments
// @Tags        tax-payments
// @Produce     json
// @Security    BearerAuth
// @Param       status     query string false "Filter by status"
// @Param       year       query int    false "Filter by year"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.TaxPayment]
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /tax-payments [get]
func (h *TaxPaymentHandler) ListTaxPayments(c *gin.Context) {
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

	filter := services.TaxPaymentFilter{Status: status}
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.InvalidField("year", "must be a number"))
			return
		}
		filter.Year = &year
	}

	result, err := h.taxPaymentService.ListTaxPayments(c.Request.Context(), page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTaxPayment handles fetching a tax payment.
// @Summary     Get a tax payment
// @Tags        tax-payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tax payment ID"
// @Success     200 {object} models.TaxPayment
// @Failure     404 {object} ErrorResponse "Tax payment not found"
// @Router      /tax-payments/{id} [get]
func (h *TaxPaymentHandler) GetTaxPayment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.taxPaymentService.GetTaxPayment(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// UpdateTaxPayment handles editing a Pending tax payment.
// @Summary     Update a tax payment
// @Description Edit a Pending tax payment; total is taxes + interest
// @Tags        tax-payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Tax payment ID"
// @Param       request body UpdateTaxPaymentRequest true "Tax payment details"
// @Success     200 {object} models.TaxPayment
// @Failure     404 {object} ErrorResponse "Tax payment not found"
// @Failure     409 {object} ErrorResponse "Tax payment is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /tax-payments/{id} [put]
func (h *TaxPaymentHandler) UpdateTaxPayment(c *gin.Context) {
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

	var req UpdateTaxPaymentRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.taxPaymentService.UpdateTaxPayment(c.Request.Context(), id,
		services.TaxPaymentUpdate{Description: req.Description, Interest: req.Interest})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_TAX_PAYMENT", "tax_payment", id, c.ClientIP(),
		map[string]interface{}{"interest": req.Interest})

	c.JSON(http.StatusOK, payment)
}

// PayTaxPayment handles marking a Pending tax payment as paid.
// @Summary     Pay a tax payment
// @Tags        tax-payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Tax payment ID"
// @Param       request body PayTaxPaymentRequest true "Payment details"
// @Success     200 {object} models.TaxPayment
// @Failure     404 {object} ErrorResponse "Tax payment not found"
// @Failure     409 {object} ErrorResponse "Tax payment is not Pending"
// @Router      /tax-payments/{id}/pay [post]
func (h *TaxPaymentHandler) PayTaxPayment(c *gin.Context) {
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

	var req PayTaxPaymentRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	paymentDate, err := parseDate("paymentDate", req.PaymentDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.taxPaymentService.PayTaxPayment(c.Request.Context(), id,
		services.PayTaxPaymentInput{PaymentDate: paymentDate})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "PAY_TAX_PAYMENT", "tax_payment", id, c.ClientIP(),
		map[string]interface{}{"paymentDate": req.PaymentDate})

	c.JSON(http.StatusOK, payment)
}

// CancelTaxPayment handles canceling a Pending tax payment.
// @Summary     Cancel a tax payment
// @Tags        tax-payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tax payment ID"
// @Success     200 {object} models.TaxPayment
// @Failure     404 {object} ErrorResponse "Tax payment not found"
// @Failure     409 {object} ErrorResponse "Tax payment already canceled"
// @Router      /tax-payments/{id}/cancel [post]
func (h *TaxPaymentHandler) CancelTaxPayment(c *gin.Context) {
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

	payment, err := h.taxPaymentService.CancelTaxPayment(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CANCEL_TAX_PAYMENT", "tax_payment", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, payment)
}

// ListItems handles listing a tax payment's items.
// @Summary     List tax payment items
// @Tags        tax-payments
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Tax payment ID"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.TaxPaymentItem]
// @Failure     404 {object} ErrorResponse "Tax payment not found"
// @Router      /tax-payments/{id}/items [get]
func (h *TaxPaymentHandler) ListItems(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.taxPaymentService.ListItems(c.Request.Context(), id, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddItem handles adding a line to a Pending tax payment.
// @Summary     Add a tax payment item
// @Tags        tax-payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Tax payment ID"
// @Param       request body ItemRequest true "Item details"
// @Success     201 {object} models.TaxPaymentItem
// @Failure     404 {object} ErrorResponse "Tax payment not found"
// @Failure     409 {object} ErrorResponse "Tax payment is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /tax-payments/{id}/items [post]
func (h *TaxPaymentHandler) AddItem(c *gin.Context) {
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

	var req ItemRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.taxPaymentService.AddItem(c.Request.Context(), id,
		services.ItemInput{Description: req.Description, Amount: req.Amount})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "ADD_TAX_PAYMENT_ITEM", "tax_payment", id, c.ClientIP(),
		map[string]interface{}{"itemId": item.ID, "amount": req.Amount})

	c.JSON(http.StatusCreated, item)
}

// DeleteItem handles removing a line from a Pending tax payment.
// @Summary     Delete a tax payment item
// @Tags        tax-payments
// @Security    BearerAuth
// @Param       id     path string true "Tax payment ID"
// @Param       itemId path string true "Item ID"
// @Success     204 "Item deleted"
// @Failure     404 {object} ErrorResponse "Tax payment or item not found"
// @Failure     409 {object} ErrorResponse "Tax payment is not Pending"
// @Router      /tax-payments/{id}/items/{itemId} [delete]
func (h *TaxPaymentHandler) DeleteItem(c *gin.Context) {
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
	itemID, err := parsePathID(c, "itemId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.taxPaymentService.DeleteItem(c.Request.Context(), id, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "DELETE_TAX_PAYMENT_ITEM", "tax_payment", id, c.ClientIP(),
		map[string]interface{}{"itemId": itemID})

	c.Status(http.StatusNoContent)
}

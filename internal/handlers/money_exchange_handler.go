package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"backoffice/internal/services"
)

// MoneyExchangeHandler handles currency conversions.
type MoneyExchangeHandler struct {
	exchangeService services.MoneyExchangeServicer
	auditService    services.AuditServicer
}

// NewMoneyExchangeHandler creates a new MoneyExchangeHandler.
func NewMoneyExchangeHandler(exchangeService services.MoneyExchangeServicer, auditService services.AuditServicer) *MoneyExchangeHandler {
	return &MoneyExchangeHandler{exchangeService: exchangeService, auditService: auditService}
}

// MoneyExchangeRequest represents the payload for creating or editing an
// exchange. The converted amount is computed by the server.
type MoneyExchangeRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required,iso4217"`
	ToCurrency   string          `json:"toCurrency" binding:"required,iso4217,nefield=FromCurrency"`
	Rate         decimal.Decimal `json:"rate" binding:"gt=0"`
	FromAmount   decimal.Decimal `json:"fromAmount" binding:"gt=0"`
	Taxes        decimal.Decimal `json:"taxes" binding:"gte=0"`
	Description  string          `json:"description"`
}

func (r MoneyExchangeRequest) input() services.MoneyExchangeInput {
	return services.MoneyExchangeInput{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         r.Rate,
		FromAmount:   r.FromAmount,
		Taxes:        r.Taxes,
		Description:  r.Description,
	}
}

// IssueMoneyExchangeRequest represents the payload for issuing an exchange.
type IssueMoneyExchangeRequest struct {
	ExchangeDate string `json:"exchangeDate" binding:"required,datetime=2006-01-02"`
}

// CreateMoneyExchange handles the creation of a money exchange.
// @Summary     Create a money exchange
// @Description Create a Pending exchange; toAmount is fromAmount × rate rounded to 2 places
// @Tags        money-exchanges
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body MoneyExchangeRequest true "Exchange details"
// @Success     201 {object} models.MoneyExchange
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /money-exchanges [post]
func (h *MoneyExchangeHandler) CreateMoneyExchange(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MoneyExchangeRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	exchange, err := h.exchangeService.CreateMoneyExchange(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_MONEY_EXCHANGE", "money_exchange", exchange.ID, c.ClientIP(),
		map[string]interface{}{"from": req.FromCurrency, "to": req.ToCurrency, "rate": req.Rate, "fromAmount": req.FromAmount})

	c.JSON(http.StatusCreated, exchange)
}

// ListMoneyExchanges handles listing money exchanges.
// @Summary     List money exchanges
// @Tags        money-exchanges
// @Produce     json
// @Security    BearerAuth
// @Param       status     query string false "Filter by status"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.MoneyExchange]
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /money-exchanges [get]
func (h *MoneyExchangeHandler) ListMoneyExchanges(c *gin.Context) {
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

	result, err := h.exchangeService.ListMoneyExchanges(c.Request.Context(), page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetMoneyExchange handles fetching a money exchange.
// @Summary     Get a money exchange
// @Tags        money-exchanges
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Money exchange ID"
// @Success     200 {object} models.MoneyExchange
// @Failure     404 {object} ErrorResponse "Money exchange not found"
// @Router      /money-exchanges/{id} [get]
func (h *MoneyExchangeHandler) GetMoneyExchange(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	exchange, err := h.exchangeService.GetMoneyExchange(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, exchange)
}

// UpdateMoneyExchange handles editing a Pending money exchange.
// @Summary     Update a money exchange
// @Tags        money-exchanges
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Money exchange ID"
// @Param       request body MoneyExchangeRequest true "Exchange details"
// @Success     200 {object} models.MoneyExchange
// @Failure     404 {object} ErrorResponse "Money exchange not found"
// @Failure     409 {object} ErrorResponse "Money exchange is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /money-exchanges/{id} [put]
func (h *MoneyExchangeHandler) UpdateMoneyExchange(c *gin.Context) {
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

	var req MoneyExchangeRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	exchange, err := h.exchangeService.UpdateMoneyExchange(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_MONEY_EXCHANGE", "money_exchange", id, c.ClientIP(),
		map[string]interface{}{"rate": req.Rate, "fromAmount": req.FromAmount})

	c.JSON(http.StatusOK, exchange)
}

// IssueMoneyExchange handles issuing a Pending money exchange.
// @Summary     Issue a money exchange
// @Tags        money-exchanges
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                    true "Money exchange ID"
// @Param       request body IssueMoneyExchangeRequest true "Issue details"
// @Success     200 {object} models.MoneyExchange
// @Failure     404 {object} ErrorResponse "Money exchange not found"
// @Failure     409 {object} ErrorResponse "Money exchange is not Pending"
// @Router      /money-exchanges/{id}/issue [post]
func (h *MoneyExchangeHandler) IssueMoneyExchange(c *gin.Context) {
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

	var req IssueMoneyExchangeRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	exchangeDate, err := parseDate("exchangeDate", req.ExchangeDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	exchange, err := h.exchangeService.IssueMoneyExchange(c.Request.Context(), id,
		services.IssueMoneyExchangeInput{ExchangeDate: exchangeDate})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "ISSUE_MONEY_EXCHANGE", "money_exchange", id, c.ClientIP(),
		map[string]interface{}{"exchangeDate": req.ExchangeDate})

	c.JSON(http.StatusOK, exchange)
}

// CancelMoneyExchange handles canceling a money exchange.
// @Summary     Cancel a money exchange
// @Tags        money-exchanges
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Money exchange ID"
// @Success     200 {object} models.MoneyExchange
// @Failure     404 {object} ErrorResponse "Money exchange not found"
// @Failure     409 {object} ErrorResponse "Money exchange already canceled"
// @Router      /money-exchanges/{id}/cancel [post]
func (h *MoneyExchangeHandler) CancelMoneyExchange(c *gin.Context) {
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

	exchange, err := h.exchangeService.CancelMoneyExchange(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CANCEL_MONEY_EXCHANGE", "money_exchange", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, exchange)
}

// UploadFile handles attaching a file to a money exchange.
// @Summary     Upload a money exchange file
// @Tags        money-exchanges
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     string true "Money exchange ID"
// @Param       file formData file   true "Document file (max 10 MiB)"
// @Success     200 {object} models.MoneyExchange
// @Failure     404 {object} ErrorResponse "Money exchange not found"
// @Failure     409 {object} ErrorResponse "Money exchange is canceled"
// @Failure     413 {object} ErrorResponse "File too large"
// @Router      /money-exchanges/{id}/file [post]
func (h *MoneyExchangeHandler) UploadFile(c *gin.Context) {
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

	exchange, err := h.exchangeService.AttachFile(c.Request.Context(), id, upload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPLOAD_MONEY_EXCHANGE_FILE", "money_exchange", id, c.ClientIP(),
		map[string]interface{}{"filename": upload.Filename, "size": upload.Size})

	c.JSON(http.StatusOK, exchange)
}

// GetFileURL handles issuing a download link for a money exchange's file.
// @Summary     Get a money exchange file link
// @Tags        money-exchanges
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Money exchange ID"
// @Success     200 {object} services.FileLink
// @Failure     404 {object} ErrorResponse "Money exchange or file not found"
// @Router      /money-exchanges/{id}/file [get]
func (h *MoneyExchangeHandler) GetFileURL(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	link, err := h.exchangeService.FileURL(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

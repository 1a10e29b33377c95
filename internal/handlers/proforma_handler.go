package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"backoffice/internal/export"
	"backoffice/internal/services"
)

// ProformaHandler handles proformas and their items.
type ProformaHandler struct {
	proformaService services.ProformaServicer
	auditService    services.AuditServicer
}

// NewProformaHandler creates a new ProformaHandler.
func NewProformaHandler(proformaService services.ProformaServicer, auditService services.AuditServicer) *ProformaHandler {
	return &ProformaHandler{proformaService: proformaService, auditService: auditService}
}

// CreateProformaRequest represents the payload for creating a proforma.
// Number, subtotal and total are derived by the server.
type CreateProformaRequest struct {
	ClientID    string          `json:"clientId" binding:"required,uuid"`
	Currency    string          `json:"currency" binding:"required,iso4217"`
	Description string          `json:"description"`
	StartDate   string          `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string          `json:"endDate" binding:"required,datetime=2006-01-02"`
	Expenses    decimal.Decimal `json:"expenses" binding:"gte=0"`
	Discount    decimal.Decimal `json:"discount" binding:"gte=0"`
	Taxes       decimal.Decimal `json:"taxes" binding:"gte=0"`
}

// UpdateProformaRequest represents the payload for editing a proforma.
type UpdateProformaRequest struct {
	Description *string         `json:"description"`
	Expenses    decimal.Decimal `json:"expenses" binding:"gte=0"`
	Discount    decimal.Decimal `json:"discount" binding:"gte=0"`
	Taxes       decimal.Decimal `json:"taxes" binding:"gte=0"`
}

// ItemRequest represents a proforma or tax payment line.
type ItemRequest struct {
	Description string          `json:"description" binding:"required,min=1"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
}

func proformaFilter(c *gin.Context) (services.ProformaFilter, error) {
	status, err := parseStatus(c)
	if err != nil {
		return services.ProformaFilter{}, err
	}
	clientID, err := parseQueryID(c, "clientId")
	if err != nil {
		return services.ProformaFilter{}, err
	}
	return services.ProformaFilter{Status: status, ClientID: clientID}, nil
}

// CreateProforma handles the creation of a proforma.
// @Summary     Create a proforma
// @Description Create a Pending proforma numbered {endDate}-{n}
// @Tags        proformas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProformaRequest true "Proforma details"
// @Success     201 {object} models.Proforma
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     409 {object} ErrorResponse "Number conflict"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /proformas [post]
func (h *ProformaHandler) CreateProforma(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProformaRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	startDate, err := parseDate("startDate", req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseDate("endDate", req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	proforma, err := h.proformaService.CreateProforma(c.Request.Context(), services.ProformaInput{
		ClientID:    req.ClientID,
		Currency:    req.Currency,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Expenses:    req.Expenses,
		Discount:    req.Discount,
		Taxes:       req.Taxes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_PROFORMA", "proforma", proforma.ID, c.ClientIP(),
		map[string]interface{}{"number": proforma.Number, "clientId": req.ClientID, "endDate": req.EndDate})

	c.JSON(http.StatusCreated, proforma)
}

// ListProformas handles listing proformas.
// @Summary     List proformas
// @Tags        proformas
// @Produce     json
// @Security    BearerAuth
// @Param       status     query string false "Filter by status"
// @Param       clientId   query string false "Filter by client"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Proforma]
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /proformas [get]
func (h *ProformaHandler) ListProformas(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := proformaFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.proformaService.ListProformas(c.Request.Context(), page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportProformas handles exporting proformas as a spreadsheet.
// @Summary     Export proformas
// @Tags        proformas
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       status   query string false "Filter by status"
// @Param       clientId query string false "Filter by client"
// @Success     200 {file} file "XLSX workbook"
// @Router      /proformas/export [get]
func (h *ProformaHandler) ExportProformas(c *gin.Context) {
	filter, err := proformaFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	proformas, err := h.proformaService.ExportProformas(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	writeWorkbook(c, "proformas.xlsx", export.Proformas, proformas)
}

// GetProforma handles fetching a proforma.
// @Summary     Get a proforma
// @Tags        proformas
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Proforma ID"
// @Success     200 {object} models.Proforma
// @Failure     404 {object} ErrorResponse "Proforma not found"
// @Router      /proformas/{id} [get]
func (h *ProformaHandler) GetProforma(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	proforma, err := h.proformaService.GetProforma(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, proforma)
}

// UpdateProforma handles editing a Pending proforma.
// @Summary     Update a proforma
// @Description Edit amounts of a Pending proforma; total is subtotal + expenses − discount + taxes
// @Tags        proformas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Proforma ID"
// @Param       request body UpdateProformaRequest true "Proforma amounts"
// @Success     200 {object} models.Proforma
// @Failure     404 {object} ErrorResponse "Proforma not found"
// @Failure     409 {object} ErrorResponse "Proforma is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /proformas/{id} [put]
func (h *ProformaHandler) UpdateProforma(c *gin.Context) {
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

	var req UpdateProformaRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	proforma, err := h.proformaService.UpdateProforma(c.Request.Context(), id, services.ProformaUpdate{
		Description: req.Description,
		Expenses:    req.Expenses,
		Discount:    req.Discount,
		Taxes:       req.Taxes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_PROFORMA", "proforma", id, c.ClientIP(),
		map[string]interface{}{"expenses": req.Expenses, "discount": req.Discount, "taxes": req.Taxes})

	c.JSON(http.StatusOK, proforma)
}

// IssueProforma handles issuing a Pending proforma.
// @Summary     Issue a proforma
// @Tags        proformas
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Proforma ID"
// @Success     200 {object} models.Proforma
// @Failure     404 {object} ErrorResponse "Proforma not found"
// @Failure     409 {object} ErrorResponse "Proforma is not Pending"
// @Router      /proformas/{id}/issue [post]
func (h *ProformaHandler) IssueProforma(c *gin.Context) {
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

	proforma, err := h.proformaService.IssueProforma(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "ISSUE_PROFORMA", "proforma", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, proforma)
}

// CancelProforma handles canceling a proforma.
// @Summary     Cancel a proforma
// @Tags        proformas
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Proforma ID"
// @Success     200 {object} models.Proforma
// @Failure     404 {object} ErrorResponse "Proforma not found"
// @Failure     409 {object} ErrorResponse "Proforma already canceled"
// @Router      /proformas/{id}/cancel [post]
func (h *ProformaHandler) CancelProforma(c *gin.Context) {
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

	proforma, err := h.proformaService.CancelProforma(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CANCEL_PROFORMA", "proforma", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, proforma)
}

// ListItems handles listing a proforma's items.
// @Summary     List proforma items
// @Tags        proformas
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Proforma ID"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.ProformaItem]
// @Failure     404 {object} ErrorResponse "Proforma not found"
// @Router      /proformas/{id}/items [get]
func (h *ProformaHandler) ListItems(c *gin.Context) {
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

	result, err := h.proformaService.ListItems(c.Request.Context(), id, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddItem handles adding a line to a Pending proforma.
// @Summary     Add a proforma item
// @Tags        proformas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Proforma ID"
// @Param       request body ItemRequest true "Item details"
// @Success     201 {object} models.ProformaItem
// @Failure     404 {object} ErrorResponse "Proforma not found"
// @Failure     409 {object} ErrorResponse "Proforma is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /proformas/{id}/items [post]
func (h *ProformaHandler) AddItem(c *gin.Context) {
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

	item, err := h.proformaService.AddItem(c.Request.Context(), id,
		services.ItemInput{Description: req.Description, Amount: req.Amount})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "ADD_PROFORMA_ITEM", "proforma", id, c.ClientIP(),
		map[string]interface{}{"itemId": item.ID, "amount": req.Amount})

	c.JSON(http.StatusCreated, item)
}

// DeleteItem handles removing a line from a Pending proforma.
// @Summary     Delete a proforma item
// @Tags        proformas
// @Security    BearerAuth
// @Param       id     path string true "Proforma ID"
// @Param       itemId path string true "Item ID"
// @Success     204 "Item deleted"
// @Failure     404 {object} ErrorResponse "Proforma or item not found"
// @Failure     409 {object} ErrorResponse "Proforma is not Pending"
// @Router      /proformas/{id}/items/{itemId} [delete]
func (h *ProformaHandler) DeleteItem(c *gin.Context) {
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

	if err := h.proformaService.DeleteItem(c.Request.Context(), id, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "DELETE_PROFORMA_ITEM", "proforma", id, c.ClientIP(),
		map[string]interface{}{"itemId": itemID})

	c.Status(http.StatusNoContent)
}

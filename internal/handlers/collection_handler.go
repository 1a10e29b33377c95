package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"backoffice/internal/services"
)

// CollectionHandler handles money collected from clients.
type CollectionHandler struct {
	collectionService services.CollectionServicer
	auditService      services.AuditServicer
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collectionService services.CollectionServicer, auditService services.AuditServicer) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService, auditService: auditService}
}

// CollectionRequest represents the payload for creating or editing a
// collection. The net amount is computed by the server.
type CollectionRequest struct {
	ClientID    string          `json:"clientId" binding:"required,uuid"`
	Currency    string          `json:"currency" binding:"required,iso4217"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total" binding:"gt=0"`
	Commission  decimal.Decimal `json:"commission" binding:"gte=0"`
	Taxes       decimal.Decimal `json:"taxes" binding:"gte=0"`
}

func (r CollectionRequest) input() services.CollectionInput {
	return services.CollectionInput{
		ClientID:    r.ClientID,
		Currency:    r.Currency,
		Description: r.Description,
		Total:       r.Total,
		Commission:  r.Commission,
		Taxes:       r.Taxes,
	}
}

// ConfirmCollectionRequest represents the payload for confirming a collection.
type ConfirmCollectionRequest struct {
	CollectionDate string `json:"collectionDate" binding:"required,datetime=2006-01-02"`
}

// CreateCollection handles the creation of a collection.
// @Summary     Create a collection
// @Description Create a Pending collection; net is total − commission − taxes
// @Tags        collections
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CollectionRequest true "Collection details"
// @Success     201 {object} models.Collection
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collections [post]
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CollectionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	collection, err := h.collectionService.CreateCollection(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_COLLECTION", "collection", collection.ID, c.ClientIP(),
		map[string]interface{}{"clientId": req.ClientID, "total": req.Total})

	c.JSON(http.StatusCreated, collection)
}

// ListCollections handles listing collections.
// @Summary     List collections
// @Tags        collections
// @Produce     json
// @Security    BearerAuth
// @Param       status     query string false "Filter by status"
// @Param       clientId   query string false "Filter by client"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Collection]
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collections [get]
func (h *CollectionHandler) ListCollections(c *gin.Context) {
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
	clientID, err := parseQueryID(c, "clientId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.collectionService.ListCollections(c.Request.Context(), page,
		services.CollectionFilter{Status: status, ClientID: clientID})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCollection handles fetching a collection.
// @Summary     Get a collection
// @Tags        collections
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Collection ID"
// @Success     200 {object} models.Collection
// @Failure     404 {object} ErrorResponse "Collection not found"
// @Router      /collections/{id} [get]
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	collection, err := h.collectionService.GetCollection(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, collection)
}

// UpdateCollection handles editing a Pending collection.
// @Summary     Update a collection
// @Tags        collections
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Collection ID"
// @Param       request body CollectionRequest true "Collection details"
// @Success     200 {object} models.Collection
// @Failure     404 {object} ErrorResponse "Collection not found"
// @Failure     409 {object} ErrorResponse "Collection is not Pending"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collections/{id} [put]
func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
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

	var req CollectionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	collection, err := h.collectionService.UpdateCollection(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_COLLECTION", "collection", id, c.ClientIP(),
		map[string]interface{}{"total": req.Total, "commission": req.Commission, "taxes": req.Taxes})

	c.JSON(http.StatusOK, collection)
}

// ConfirmCollection handles confirming a Pending collection.
// @Summary     Confirm a collection
// @Tags        collections
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Collection ID"
// @Param       request body ConfirmCollectionRequest true "Confirmation details"
// @Success     200 {object} models.Collection
// @Failure     404 {object} ErrorResponse "Collection not found"
// @Failure     409 {object} ErrorResponse "Collection is not Pending"
// @Router      /collections/{id}/confirm [post]
func (h *CollectionHandler) ConfirmCollection(c *gin.Context) {
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

	var req ConfirmCollectionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	collectionDate, err := parseDate("collectionDate", req.CollectionDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	collection, err := h.collectionService.ConfirmCollection(c.Request.Context(), id,
		services.ConfirmCollectionInput{CollectionDate: collectionDate})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CONFIRM_COLLECTION", "collection", id, c.ClientIP(),
		map[string]interface{}{"collectionDate": req.CollectionDate})

	c.JSON(http.StatusOK, collection)
}

// CancelCollection handles canceling a Pending collection.
// @Summary     Cancel a collection
// @Tags        collections
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Collection ID"
// @Success     200 {object} models.Collection
// @Failure     404 {object} ErrorResponse "Collection not found"
// @Failure     409 {object} ErrorResponse "Collection is not Pending"
// @Router      /collections/{id}/cancel [post]
func (h *CollectionHandler) CancelCollection(c *gin.Context) {
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

	collection, err := h.collectionService.CancelCollection(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CANCEL_COLLECTION", "collection", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, collection)
}

// UploadFile handles attaching a file to a collection.
// @Summary     Upload a collection file
// @Tags        collections
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     string true "Collection ID"
// @Param       file formData file   true "Document file (max 10 MiB)"
// @Success     200 {object} models.Collection
// @Failure     404 {object} ErrorResponse "Collection not found"
// @Failure     409 {object} ErrorResponse "Collection is canceled"
// @Failure     413 {object} ErrorResponse "File too large"
// @Router      /collections/{id}/file [post]
func (h *CollectionHandler) UploadFile(c *gin.Context) {
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

	collection, err := h.collectionService.AttachFile(c.Request.Context(), id, upload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPLOAD_COLLECTION_FILE", "collection", id, c.ClientIP(),
		map[string]interface{}{"filename": upload.Filename, "size": upload.Size})

	c.JSON(http.StatusOK, collection)
}

// GetFileURL handles issuing a download link for a collection's file.
// @Summary     Get a collection file link
// @Tags        collections
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Collection ID"
// @Success     200 {object} services.FileLink
// @Failure     404 {object} ErrorResponse "Collection or file not found"
// @Router      /collections/{id}/file [get]
func (h *CollectionHandler) GetFileURL(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	link, err := h.collectionService.FileURL(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

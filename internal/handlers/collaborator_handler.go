package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"backoffice/internal/services"
)

// CollaboratorHandler handles collaborators and collaborator roles.
type CollaboratorHandler struct {
	collaboratorService services.CollaboratorServicer
	auditService        services.AuditServicer
}

// NewCollaboratorHandler creates a new CollaboratorHandler.
func NewCollaboratorHandler(collaboratorService services.CollaboratorServicer, auditService services.AuditServicer) *CollaboratorHandler {
	return &CollaboratorHandler{collaboratorService: collaboratorService, auditService: auditService}
}

// RoleRequest represents the payload for creating or updating a role.
type RoleRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Currency string          `json:"currency" binding:"required,iso4217"`
	FeeRate  decimal.Decimal `json:"feeRate" binding:"gte=0"`
	CostRate decimal.Decimal `json:"costRate" binding:"gte=0"`
}

func (r RoleRequest) input() services.RoleInput {
	return services.RoleInput{Name: r.Name, Currency: r.Currency, FeeRate: r.FeeRate, CostRate: r.CostRate}
}

// CollaboratorRequest represents the payload for creating or updating a collaborator.
type CollaboratorRequest struct {
	Name                  string          `json:"name" binding:"required,min=1,max=200"`
	DocumentNumber        string          `json:"documentNumber" binding:"omitempty,max=50"`
	Email                 string          `json:"email" binding:"omitempty,email,max=200"`
	RoleID                *string         `json:"roleId" binding:"omitempty,uuid"`
	WithholdingPercentage decimal.Decimal `json:"withholdingPercentage" binding:"gte=0,lte=100"`
}

func (r CollaboratorRequest) input() services.CollaboratorInput {
	return services.CollaboratorInput{
		Name:                  r.Name,
		DocumentNumber:        r.DocumentNumber,
		Email:                 r.Email,
		RoleID:                r.RoleID,
		WithholdingPercentage: r.WithholdingPercentage,
	}
}

// CreateRole handles the creation of a collaborator role.
// @Summary     Create a collaborator role
// @Tags        collaborators
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RoleRequest true "Role details"
// @Success     201 {object} models.CollaboratorRole
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collaborator-roles [post]
func (h *CollaboratorHandler) CreateRole(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RoleRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	role, err := h.collaboratorService.CreateRole(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_COLLABORATOR_ROLE", "collaborator_role", role.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "currency": req.Currency})

	c.JSON(http.StatusCreated, role)
}

// ListRoles handles listing collaborator roles.
// @Summary     List collaborator roles
// @Tags        collaborators
// @Produce     json
// @Security    BearerAuth
// @Param       pageNumber query int false "Page number (default 1)"
// @Param       pageSize   query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.CollaboratorRole]
// @Router      /collaborator-roles [get]
func (h *CollaboratorHandler) ListRoles(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.collaboratorService.ListRoles(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetRole handles fetching a collaborator role.
// @Summary     Get a collaborator role
// @Tags        collaborators
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Role ID"
// @Success     200 {object} models.CollaboratorRole
// @Failure     404 {object} ErrorResponse "Role not found"
// @Router      /collaborator-roles/{id} [get]
func (h *CollaboratorHandler) GetRole(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	role, err := h.collaboratorService.GetRole(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

// UpdateRole handles updating a collaborator role.
// @Summary     Update a collaborator role
// @Tags        collaborators
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Role ID"
// @Param       request body RoleRequest true "Role details"
// @Success     200 {object} models.CollaboratorRole
// @Failure     404 {object} ErrorResponse "Role not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collaborator-roles/{id} [put]
func (h *CollaboratorHandler) UpdateRole(c *gin.Context) {
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

	var req RoleRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	role, err := h.collaboratorService.UpdateRole(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_COLLABORATOR_ROLE", "collaborator_role", id, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "feeRate": req.FeeRate, "costRate": req.CostRate})

	c.JSON(http.StatusOK, role)
}

// CreateCollaborator handles the creation of a collaborator.
// @Summary     Create a collaborator
// @Tags        collaborators
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CollaboratorRequest true "Collaborator details"
// @Success     201 {object} models.Collaborator
// @Failure     404 {object} ErrorResponse "Role not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collaborators [post]
func (h *CollaboratorHandler) CreateCollaborator(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CollaboratorRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	collaborator, err := h.collaboratorService.CreateCollaborator(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_COLLABORATOR", "collaborator", collaborator.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "withholdingPercentage": req.WithholdingPercentage})

	c.JSON(http.StatusCreated, collaborator)
}

// ListCollaborators handles listing collaborators.
// @Summary     List collaborators
// @Tags        collaborators
// @Produce     json
// @Security    BearerAuth
// @Param       pageNumber query int false "Page number (default 1)"
// @Param       pageSize   query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Collaborator]
// @Router      /collaborators [get]
func (h *CollaboratorHandler) ListCollaborators(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.collaboratorService.ListCollaborators(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCollaborator handles fetching a collaborator.
// @Summary     Get a collaborator
// @Tags        collaborators
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Collaborator ID"
// @Success     200 {object} models.Collaborator
// @Failure     404 {object} ErrorResponse "Collaborator not found"
// @Router      /collaborators/{id} [get]
func (h *CollaboratorHandler) GetCollaborator(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	collaborator, err := h.collaboratorService.GetCollaborator(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, collaborator)
}

// UpdateCollaborator handles updating a collaborator.
// @Summary     Update a collaborator
// @Tags        collaborators
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Collaborator ID"
// @Param       request body CollaboratorRequest true "Collaborator details"
// @Success     200 {object} models.Collaborator
// @Failure     404 {object} ErrorResponse "Collaborator or role not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /collaborators/{id} [put]
func (h *CollaboratorHandler) UpdateCollaborator(c *gin.Context) {
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

	var req CollaboratorRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	collaborator, err := h.collaboratorService.UpdateCollaborator(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_COLLABORATOR", "collaborator", id, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "withholdingPercentage": req.WithholdingPercentage})

	c.JSON(http.StatusOK, collaborator)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/services"
)

// ClientHandler handles clients and their projects and contacts.
type ClientHandler struct {
	clientService services.ClientServicer
	auditService  services.AuditServicer
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService services.ClientServicer, auditService services.AuditServicer) *ClientHandler {
	return &ClientHandler{clientService: clientService, auditService: auditService}
}

// ClientRequest represents the payload for creating or updating a client.
type ClientRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=200"`
	DocumentNumber string `json:"documentNumber" binding:"required,min=1,max=50"`
	Email          string `json:"email" binding:"omitempty,email,max=200"`
	Phone          string `json:"phone" binding:"omitempty,max=50"`
	Address        string `json:"address"`
}

func (r ClientRequest) input() services.ClientInput {
	return services.ClientInput{
		Name:           r.Name,
		DocumentNumber: r.DocumentNumber,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
	}
}

// ProjectRequest represents the payload for creating or updating a project.
type ProjectRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
}

// ContactRequest represents the payload for creating or updating a contact.
type ContactRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Phone    string `json:"phone" binding:"omitempty,max=50"`
	Position string `json:"position" binding:"omitempty,max=100"`
}

func (r ContactRequest) input() services.ContactInput {
	return services.ContactInput{Name: r.Name, Email: r.Email, Phone: r.Phone, Position: r.Position}
}

// CreateClient handles the creation of a new client.
// @Summary     Create a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ClientRequest true "Client details"
// @Success     201 {object} models.Client "Client created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate document number"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ClientRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_CLIENT", "client", client.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "documentNumber": req.DocumentNumber})

	c.JSON(http.StatusCreated, client)
}

// ListClients handles listing clients.
// @Summary     List clients
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       name       query string false "Filter by name (case-insensitive substring)"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Client] "Paginated clients"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.clientService.ListClients(c.Request.Context(), page, c.Query("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetClient handles fetching a single client.
// @Summary     Get a client
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Client ID"
// @Success     200 {object} models.Client
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     422 {object} ErrorResponse "Invalid ID"
// @Router      /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient handles updating a client.
// @Summary     Update a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Client ID"
// @Param       request body ClientRequest true "Client details"
// @Success     200 {object} models.Client
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     409 {object} ErrorResponse "Duplicate document number"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
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

	var req ClientRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_CLIENT", "client", id, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "documentNumber": req.DocumentNumber})

	c.JSON(http.StatusOK, client)
}

// ListProjects handles listing a client's projects.
// @Summary     List projects
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Client ID"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Project]
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id}/projects [get]
func (h *ClientHandler) ListProjects(c *gin.Context) {
	clientID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.clientService.ListProjects(c.Request.Context(), clientID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateProject handles adding a project to a client.
// @Summary     Create a project
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Client ID"
// @Param       request body ProjectRequest true "Project details"
// @Success     201 {object} models.Project
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /clients/{id}/projects [post]
func (h *ClientHandler) CreateProject(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	clientID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProjectRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	project, err := h.clientService.CreateProject(c.Request.Context(), clientID,
		services.ProjectInput{Name: req.Name, Description: req.Description})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_PROJECT", "project", project.ID, c.ClientIP(),
		map[string]interface{}{"clientId": clientID, "name": req.Name})

	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles updating a client's project.
// @Summary     Update a project
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path string         true "Client ID"
// @Param       projectId path string         true "Project ID"
// @Param       request   body ProjectRequest true "Project details"
// @Success     200 {object} models.Project
// @Failure     404 {object} ErrorResponse "Client or project not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /clients/{id}/projects/{projectId} [put]
func (h *ClientHandler) UpdateProject(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	clientID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	projectID, err := parsePathID(c, "projectId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProjectRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	project, err := h.clientService.UpdateProject(c.Request.Context(), clientID, projectID,
		services.ProjectInput{Name: req.Name, Description: req.Description})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_PROJECT", "project", projectID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles removing a client's project.
// @Summary     Delete a project
// @Tags        clients
// @Security    BearerAuth
// @Param       id        path string true "Client ID"
// @Param       projectId path string true "Project ID"
// @Success     204 "Project deleted"
// @Failure     404 {object} ErrorResponse "Client or project not found"
// @Router      /clients/{id}/projects/{projectId} [delete]
func (h *ClientHandler) DeleteProject(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	clientID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	projectID, err := parsePathID(c, "projectId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.clientService.DeleteProject(c.Request.Context(), clientID, projectID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "DELETE_PROJECT", "project", projectID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// ListContacts handles listing a client's contacts.
// @Summary     List contacts
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Client ID"
// @Param       pageNumber query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Contact]
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id}/contacts [get]
func (h *ClientHandler) ListContacts(c *gin.Context) {
	clientID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.clientService.ListContacts(c.Request.Context(), clientID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateContact handles adding a contact to a client.
// @Summary     Create a contact
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Client ID"
// @Param       request body ContactRequest true "Contact details"
// @Success     201 {object} models.Contact
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /clients/{id}/contacts [post]
func (h *ClientHandler) CreateContact(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	clientID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContactRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	contact, err := h.clientService.CreateContact(c.Request.Context(), clientID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "CREATE_CONTACT", "contact", contact.ID, c.ClientIP(),
		map[string]interface{}{"clientId": clientID, "name": req.Name})

	c.JSON(http.StatusCreated, contact)
}

// UpdateContact handles updating a client's contact.
// @Summary     Update a contact
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path string         true "Client ID"
// @Param       contactId path string         true "Contact ID"
// @Param       request   body ContactRequest true "Contact details"
// @Success     200 {object} models.Contact
// @Failure     404 {object} ErrorResponse "Client or contact not found"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /clients/{id}/contacts/{contactId} [put]
func (h *ClientHandler) UpdateContact(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	clientID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	contactID, err := parsePathID(c, "contactId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContactRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	contact, err := h.clientService.UpdateContact(c.Request.Context(), clientID, contactID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "UPDATE_CONTACT", "contact", contactID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, contact)
}

// DeleteContact handles removing a client's contact.
// @Summary     Delete a contact
// @Tags        clients
// @Security    BearerAuth
// @Param       id        path string true "Client ID"
// @Param       contactId path string true "Contact ID"
// @Success     204 "Contact deleted"
// @Failure     404 {object} ErrorResponse "Client or contact not found"
// @Router      /clients/{id}/contacts/{contactId} [delete]
func (h *ClientHandler) DeleteContact(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	clientID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	contactID, err := parsePathID(c, "contactId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.clientService.DeleteContact(c.Request.Context(), clientID, contactID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "DELETE_CONTACT", "contact", contactID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
)

// clientService handles clients and their dependent projects and contacts.
type clientService struct {
	clients  *repository.Repository[models.Client]
	projects *repository.Repository[models.Project]
	contacts *repository.Repository[models.Contact]
}

// NewClientService creates a new ClientServicer.
func NewClientService(db *gorm.DB) ClientServicer {
	return &clientService{
		clients:  newClientRepo(db),
		projects: newProjectRepo(db),
		contacts: newContactRepo(db),
	}
}

func duplicateDocument(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrDuplicateDocumentNumber
	}
	return internal(err)
}

// CreateClient creates a client. Document numbers are unique.
func (s *clientService) CreateClient(ctx context.Context, in ClientInput) (*models.Client, error) {
	client := &models.Client{
		Name:           in.Name,
		DocumentNumber: in.DocumentNumber,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
	}
	if err := s.clients.Insert(ctx, client); err != nil {
		return nil, duplicateDocument(err)
	}
	return client, nil
}

// ListClients returns a page of clients, optionally filtered by a name fragment.
func (s *clientService) ListClients(ctx context.Context, page pagination.PageRequest, name string) (*pagination.PageResponse[models.Client], error) {
	var filters []repository.Scope
	if name != "" {
		filters = append(filters, func(q *gorm.DB) *gorm.DB {
			return q.Where("LOWER(clients.name) LIKE LOWER(?)", "%"+name+"%")
		})
	}
	return s.clients.List(ctx, page, filters...)
}

// GetClient returns a client by ID.
func (s *clientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return s.clients.FindByID(ctx, id)
}

// UpdateClient replaces a client's editable fields.
func (s *clientService) UpdateClient(ctx context.Context, id string, in ClientInput) (*models.Client, error) {
	err := s.clients.Update(ctx, id, map[string]any{
		"name":            in.Name,
		"document_number": in.DocumentNumber,
		"email":           in.Email,
		"phone":           in.Phone,
		"address":         in.Address,
	})
	if err != nil {
		return nil, duplicateDocument(err)
	}
	return s.clients.FindByID(ctx, id)
}

func ownedBy(table, clientID, id string) repository.Scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(table+".id = ? AND "+table+".client_id = ?", id, clientID)
	}
}

func ofClient(table, clientID string) repository.Scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(table+".client_id = ?", clientID)
	}
}

// ListProjects returns a page of the client's projects.
func (s *clientService) ListProjects(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error) {
	if err := s.clients.Exists(ctx, clientID); err != nil {
		return nil, err
	}
	return s.projects.List(ctx, page, ofClient("projects", clientID))
}

// CreateProject creates a project under an existing client.
func (s *clientService) CreateProject(ctx context.Context, clientID string, in ProjectInput) (*models.Project, error) {
	if err := s.clients.Exists(ctx, clientID); err != nil {
		return nil, err
	}
	project := &models.Project{ClientID: clientID, Name: in.Name, Description: in.Description}
	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, internal(err)
	}
	return project, nil
}

// UpdateProject updates a project belonging to the client.
func (s *clientService) UpdateProject(ctx context.Context, clientID, projectID string, in ProjectInput) (*models.Project, error) {
	project, err := s.projects.FindWhere(ctx, projectID, ownedBy("projects", clientID, projectID))
	if err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project.ID, map[string]any{"name": in.Name, "description": in.Description}); err != nil {
		return nil, internal(err)
	}
	return s.projects.FindByID(ctx, project.ID)
}

// DeleteProject hard-deletes a project belonging to the client.
func (s *clientService) DeleteProject(ctx context.Context, clientID, projectID string) error {
	return s.projects.DeleteWhere(ctx, projectID, ownedBy("projects", clientID, projectID))
}

// ListContacts returns a page of the client's contacts.
func (s *clientService) ListContacts(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.Contact], error) {
	if err := s.clients.Exists(ctx, clientID); err != nil {
		return nil, err
	}
	return s.contacts.List(ctx, page, ofClient("contacts", clientID))
}

// CreateContact creates a contact under an existing client.
func (s *clientService) CreateContact(ctx context.Context, clientID string, in ContactInput) (*models.Contact, error) {
	if err := s.clients.Exists(ctx, clientID); err != nil {
		return nil, err
	}
	contact := &models.Contact{
		ClientID: clientID,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Position: in.Position,
	}
	if err := s.contacts.Insert(ctx, contact); err != nil {
		return nil, internal(err)
	}
	return contact, nil
}

// UpdateContact updates a contact belonging to the client.
func (s *clientService) UpdateContact(ctx context.Context, clientID, contactID string, in ContactInput) (*models.Contact, error) {
	contact, err := s.contacts.FindWhere(ctx, contactID, ownedBy("contacts", clientID, contactID))
	if err != nil {
		return nil, err
	}
	err = s.contacts.Update(ctx, contact.ID, map[string]any{
		"name":     in.Name,
		"email":    in.Email,
		"phone":    in.Phone,
		"position": in.Position,
	})
	if err != nil {
		return nil, internal(err)
	}
	return s.contacts.FindByID(ctx, contact.ID)
}

// DeleteContact hard-deletes a contact belonging to the client.
func (s *clientService) DeleteContact(ctx context.Context, clientID, contactID string) error {
	return s.contacts.DeleteWhere(ctx, contactID, ownedBy("contacts", clientID, contactID))
}

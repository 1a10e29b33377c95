package services

import (
	"context"

	"gorm.io/gorm"

	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
)

// collaboratorService handles collaborators and collaborator roles.
type collaboratorService struct {
	roles         *repository.Repository[models.CollaboratorRole]
	collaborators *repository.Repository[models.Collaborator]
}

// NewCollaboratorService creates a new CollaboratorServicer.
func NewCollaboratorService(db *gorm.DB) CollaboratorServicer {
	return &collaboratorService{
		roles:         newRoleRepo(db),
		collaborators: newCollaboratorRepo(db),
	}
}

// CreateRole creates a collaborator role.
func (s *collaboratorService) CreateRole(ctx context.Context, in RoleInput) (*models.CollaboratorRole, error) {
	role := &models.CollaboratorRole{
		Name:     in.Name,
		Currency: in.Currency,
		FeeRate:  models.RoundMoney(in.FeeRate),
		CostRate: models.RoundMoney(in.CostRate),
	}
	if err := s.roles.Insert(ctx, role); err != nil {
		return nil, internal(err)
	}
	return role, nil
}

// ListRoles returns a page of roles.
func (s *collaboratorService) ListRoles(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.CollaboratorRole], error) {
	return s.roles.List(ctx, page)
}

// GetRole returns a role by ID.
func (s *collaboratorService) GetRole(ctx context.Context, id string) (*models.CollaboratorRole, error) {
	return s.roles.FindByID(ctx, id)
}

// UpdateRole replaces a role's fields.
func (s *collaboratorService) UpdateRole(ctx context.Context, id string, in RoleInput) (*models.CollaboratorRole, error) {
	err := s.roles.Update(ctx, id, map[string]any{
		"name":      in.Name,
		"currency":  in.Currency,
		"fee_rate":  models.RoundMoney(in.FeeRate),
		"cost_rate": models.RoundMoney(in.CostRate),
	})
	if err != nil {
		return nil, internal(err)
	}
	return s.roles.FindByID(ctx, id)
}

func (s *collaboratorService) checkRole(ctx context.Context, roleID *string) error {
	if roleID == nil {
		return nil
	}
	return s.roles.Exists(ctx, *roleID)
}

// CreateCollaborator creates a collaborator, optionally assigned to a role.
func (s *collaboratorService) CreateCollaborator(ctx context.Context, in CollaboratorInput) (*models.Collaborator, error) {
	if err := s.checkRole(ctx, in.RoleID); err != nil {
		return nil, err
	}

	collaborator := &models.Collaborator{
		Name:                  in.Name,
		DocumentNumber:        in.DocumentNumber,
		Email:                 in.Email,
		RoleID:                in.RoleID,
		WithholdingPercentage: in.WithholdingPercentage.Round(2),
	}
	if err := s.collaborators.Insert(ctx, collaborator); err != nil {
		return nil, internal(err)
	}
	return s.collaborators.FindByID(ctx, collaborator.ID)
}

// ListCollaborators returns a page of collaborators with their role names.
func (s *collaboratorService) ListCollaborators(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Collaborator], error) {
	return s.collaborators.List(ctx, page)
}

// GetCollaborator returns a collaborator by ID.
func (s *collaboratorService) GetCollaborator(ctx context.Context, id string) (*models.Collaborator, error) {
	return s.collaborators.FindByID(ctx, id)
}

// UpdateCollaborator replaces a collaborator's fields. Existing payments keep
// the withholding computed when they were last edited.
func (s *collaboratorService) UpdateCollaborator(ctx context.Context, id string, in CollaboratorInput) (*models.Collaborator, error) {
	if err := s.checkRole(ctx, in.RoleID); err != nil {
		return nil, err
	}

	err := s.collaborators.Update(ctx, id, map[string]any{
		"name":                   in.Name,
		"document_number":        in.DocumentNumber,
		"email":                  in.Email,
		"role_id":                in.RoleID,
		"withholding_percentage": in.WithholdingPercentage.Round(2),
	})
	if err != nil {
		return nil, internal(err)
	}
	return s.collaborators.FindByID(ctx, id)
}

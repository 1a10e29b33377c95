package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice/internal/lifecycle"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
)

// collectionService handles money collected from clients.
type collectionService struct {
	collections *repository.Repository[models.Collection]
	clients     *repository.Repository[models.Client]
	files       attachments[models.Collection]
}

// NewCollectionService creates a new CollectionServicer.
func NewCollectionService(db *gorm.DB, files Files) CollectionServicer {
	repo := newCollectionRepo(db)
	return &collectionService{
		collections: repo,
		clients:     newClientRepo(db),
		files: attachments[models.Collection]{
			files:    files,
			repo:     repo,
			machine:  lifecycle.Collection,
			resource: "collections",
			filePath: func(c *models.Collection) *string { return c.FilePath },
		},
	}
}

type collectionAmounts struct {
	total, commission, taxes, net decimal.Decimal
}

func amountsOf(in CollectionInput) collectionAmounts {
	a := collectionAmounts{
		total:      models.RoundMoney(in.Total),
		commission: models.RoundMoney(in.Commission),
		taxes:      models.RoundMoney(in.Taxes),
	}
	a.net = a.total.Sub(a.commission).Sub(a.taxes)
	return a
}

// CreateCollection creates a pending collection for an existing client.
func (s *collectionService) CreateCollection(ctx context.Context, in CollectionInput) (*models.Collection, error) {
	if err := s.clients.Exists(ctx, in.ClientID); err != nil {
		return nil, err
	}

	a := amountsOf(in)
	collection := &models.Collection{
		Document:    models.Document{Status: lifecycle.Collection.Initial()},
		ClientID:    in.ClientID,
		Currency:    in.Currency,
		Description: in.Description,
		Total:       a.total,
		Commission:  a.commission,
		Taxes:       a.taxes,
		Net:         a.net,
	}
	if err := s.collections.Insert(ctx, collection); err != nil {
		return nil, internal(err)
	}
	return s.collections.FindByID(ctx, collection.ID)
}

// ListCollections returns a page of collections with their client names.
func (s *collectionService) ListCollections(ctx context.Context, page pagination.PageRequest, filter CollectionFilter) (*pagination.PageResponse[models.Collection], error) {
	return s.collections.List(ctx, page,
		eq("collections.status", filter.Status),
		eq("collections.client_id", filter.ClientID),
	)
}

// GetCollection returns a collection by ID.
func (s *collectionService) GetCollection(ctx context.Context, id string) (*models.Collection, error) {
	return s.collections.FindByID(ctx, id)
}

// UpdateCollection edits a pending collection and recomputes its net amount.
func (s *collectionService) UpdateCollection(ctx context.Context, id string, in CollectionInput) (*models.Collection, error) {
	if err := s.clients.Exists(ctx, in.ClientID); err != nil {
		return nil, err
	}

	a := amountsOf(in)
	return edit(ctx, s.collections, lifecycle.Collection, id, map[string]any{
		"client_id":   in.ClientID,
		"currency":    in.Currency,
		"description": in.Description,
		"total":       a.total,
		"commission":  a.commission,
		"taxes":       a.taxes,
		"net":         a.net,
	})
}

// ConfirmCollection marks a pending collection as received.
func (s *collectionService) ConfirmCollection(ctx context.Context, id string, in ConfirmCollectionInput) (*models.Collection, error) {
	return transition(ctx, s.collections, lifecycle.Collection, id, lifecycle.Confirm, map[string]any{
		"collection_date": in.CollectionDate,
	})
}

// CancelCollection cancels a pending collection.
func (s *collectionService) CancelCollection(ctx context.Context, id string) (*models.Collection, error) {
	return transition(ctx, s.collections, lifecycle.Collection, id, lifecycle.Cancel, nil)
}

// AttachFile stores the collection's receipt.
func (s *collectionService) AttachFile(ctx context.Context, id string, file FileUpload) (*models.Collection, error) {
	return s.files.attach(ctx, id, file)
}

// FileURL returns a short-lived link to the collection's receipt.
func (s *collectionService) FileURL(ctx context.Context, id string) (*FileLink, error) {
	return s.files.link(ctx, id)
}

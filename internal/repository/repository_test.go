package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
	"backoffice/internal/testutil"
	"backoffice/internal/uuid"
)

func invoiceRepo(db *gorm.DB) *repository.Repository[models.Invoice] {
	return repository.New[models.Invoice](db, repository.Meta{
		Entity:   "Invoice",
		Table:    "invoices",
		NotFound: apperrors.ErrInvoiceNotFound,
		Read: func(q *gorm.DB) *gorm.DB {
			return q.Select("invoices.*, clients.name AS client_name").
				Joins("JOIN clients ON clients.id = invoices.client_id")
		},
	})
}

func TestFindByID_JoinsLabel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	client := testutil.CreateTestClient(t, db)
	inv := testutil.CreateTestInvoice(t, db, client.ID, "10", "1")

	got, err := invoiceRepo(db).FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, client.Name, got.ClientName)
	testutil.AssertDecimal(t, "total", got.Total, "11")
}

func TestFindByID_NotFoundNamesEntityAndID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	id := uuid.New()
	_, err := invoiceRepo(db).FindByID(context.Background(), id)
	appErr := testutil.AssertAppError(t, err, "INVOICE_NOT_FOUND")
	assert.Contains(t, appErr.Message, "Invoice")
	assert.Contains(t, appErr.Message, id)
}

func TestUpdateWhereStatus(t *testing.T) {
	ctx := context.Background()
	pending := []models.Status{models.StatusPending}

	t.Run("updates matching status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		client := testutil.CreateTestClient(t, db)
		inv := testutil.CreateTestInvoice(t, db, client.ID, "10", "1")
		repo := invoiceRepo(db)

		err := repo.UpdateWhereStatus(ctx, inv.ID, pending, map[string]any{"status": models.StatusIssued})
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusIssued, got.Status)
	})

	t.Run("conflict leaves row unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		client := testutil.CreateTestClient(t, db)
		inv := testutil.CreateTestInvoice(t, db, client.ID, "10", "1")
		testutil.SetStatus(t, db, &models.Invoice{}, inv.ID, models.StatusCanceled)
		repo := invoiceRepo(db)

		err := repo.UpdateWhereStatus(ctx, inv.ID, pending, map[string]any{"description": "changed"})
		appErr := testutil.AssertAppError(t, err, "INVALID_STATUS")
		assert.Contains(t, appErr.Message, "Canceled")
		assert.Contains(t, appErr.Message, "Pending")

		got, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "", got.Description)
		assert.Equal(t, models.StatusCanceled, got.Status)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		err := invoiceRepo(db).UpdateWhereStatus(ctx, uuid.New(), pending, map[string]any{"description": "x"})
		testutil.AssertAppError(t, err, "INVOICE_NOT_FOUND")
	})
}

func TestList_PaginatesNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	client := testutil.CreateTestClient(t, db)
	for i := 0; i < 5; i++ {
		testutil.CreateTestInvoice(t, db, client.ID, "10", "0")
	}
	repo := invoiceRepo(db)

	page, err := repo.List(context.Background(), pagination.PageRequest{PageNumber: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.TotalCount)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.PageNumber)

	statusFilter := func(q *gorm.DB) *gorm.DB {
		return q.Where("invoices.status = ?", models.StatusIssued)
	}
	empty, err := repo.List(context.Background(), pagination.PageRequest{}, statusFilter)
	require.NoError(t, err)
	assert.EqualValues(t, 0, empty.TotalCount)
	assert.NotNil(t, empty.Items)
}

func TestDeleteWhere(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	client := testutil.CreateTestClient(t, db)
	project := &models.Project{ClientID: client.ID, Name: "Website"}
	require.NoError(t, db.Create(project).Error)

	repo := repository.New[models.Project](db, repository.Meta{
		Entity: "Project", Table: "projects", NotFound: apperrors.ErrProjectNotFound,
	})
	byID := func(q *gorm.DB) *gorm.DB { return q.Where("id = ? AND client_id = ?", project.ID, client.ID) }

	require.NoError(t, repo.DeleteWhere(context.Background(), project.ID, byID))
	err := repo.DeleteWhere(context.Background(), project.ID, byID)
	testutil.AssertAppError(t, err, "PROJECT_NOT_FOUND")
}

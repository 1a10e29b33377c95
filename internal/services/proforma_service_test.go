package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/testutil"
)

func newProforma(t *testing.T, svc ProformaServicer, clientID string, day int) *models.Proforma {
	t.Helper()
	p, err := svc.CreateProforma(context.Background(), ProformaInput{
		ClientID:  clientID,
		Currency:  "USD",
		StartDate: testutil.Date(2024, 6, 1),
		EndDate:   testutil.Date(2024, 6, day),
	})
	require.NoError(t, err)
	return p
}

func TestProforma_ExampleFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	clients := NewClientService(db)
	svc := NewProformaService(db)

	acme, err := clients.CreateClient(ctx, ClientInput{Name: "Acme", DocumentNumber: "20100000001"})
	require.NoError(t, err)

	p := newProforma(t, svc, acme.ID, 30)
	assert.Equal(t, "20240630-1", p.Number)
	assert.Equal(t, models.StatusPending, p.Status)
	assert.Equal(t, "Acme", p.ClientName)

	_, err = svc.AddItem(ctx, p.ID, ItemInput{Description: "Consulting", Amount: testutil.Dec("100")})
	require.NoError(t, err)

	p, err = svc.GetProforma(ctx, p.ID)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "subtotal", p.Subtotal, "100")
	testutil.AssertDecimal(t, "total", p.Total, "100")

	p, err = svc.UpdateProforma(ctx, p.ID, ProformaUpdate{
		Expenses: testutil.Dec("50"), Discount: testutil.Dec("10"), Taxes: testutil.Dec("5"),
	})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "total", p.Total, "145")

	p, err = svc.CancelProforma(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, p.Status)
	assert.NotNil(t, p.CanceledAt)

	_, err = svc.UpdateProforma(ctx, p.ID, ProformaUpdate{Expenses: testutil.Dec("1")})
	appErr := testutil.AssertAppError(t, err, "INVALID_STATUS")
	assert.Equal(t, 409, appErr.StatusCode)

	_, err = svc.AddItem(ctx, p.ID, ItemInput{Description: "Late", Amount: testutil.Dec("1")})
	testutil.AssertAppError(t, err, "INVALID_STATUS")
}

func TestProforma_NumbersPerEndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProformaService(db)
	client := testutil.CreateTestClient(t, db)

	var numbers []string
	for i := 0; i < 3; i++ {
		numbers = append(numbers, newProforma(t, svc, client.ID, 30).Number)
	}
	assert.Equal(t, []string{"20240630-1", "20240630-2", "20240630-3"}, numbers)
	assert.Equal(t, "20240615-1", newProforma(t, svc, client.ID, 15).Number)
}

func TestProforma_NumberConflictAfterRetries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProformaService(db)
	client := testutil.CreateTestClient(t, db)

	// One row under the prefix already holds "-2", the number every attempt derives.
	stray := &models.Proforma{
		ClientID: client.ID, Currency: "USD", Number: "20240630-2",
		StartDate: testutil.Date(2024, 6, 1), EndDate: testutil.Date(2024, 7, 31),
	}
	require.NoError(t, db.Create(stray).Error)

	_, err := svc.CreateProforma(context.Background(), ProformaInput{
		ClientID: client.ID, Currency: "USD",
		StartDate: testutil.Date(2024, 6, 1), EndDate: testutil.Date(2024, 6, 30),
	})
	testutil.AssertAppError(t, err, "NUMBER_CONFLICT")
}

func TestProforma_ItemsRestoreTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	svc := NewProformaService(db)
	client := testutil.CreateTestClient(t, db)

	p := newProforma(t, svc, client.ID, 30)
	p, err := svc.UpdateProforma(ctx, p.ID, ProformaUpdate{
		Expenses: testutil.Dec("20"), Discount: testutil.Dec("5"), Taxes: testutil.Dec("3"),
	})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, p.ID, ItemInput{Description: "Base", Amount: testutil.Dec("40")})
	require.NoError(t, err)
	before, err := svc.GetProforma(ctx, p.ID)
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, p.ID, ItemInput{Description: "Extra", Amount: testutil.Dec("12.50")})
	require.NoError(t, err)
	after, err := svc.GetProforma(ctx, p.ID)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "subtotal", after.Subtotal, before.Subtotal.Add(testutil.Dec("12.50")).String())
	testutil.AssertDecimal(t, "total", after.Total, before.Total.Add(testutil.Dec("12.50")).String())

	require.NoError(t, svc.DeleteItem(ctx, p.ID, item.ID))
	restored, err := svc.GetProforma(ctx, p.ID)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "subtotal", restored.Subtotal, before.Subtotal.String())
	testutil.AssertDecimal(t, "total", restored.Total, before.Total.String())

	items, err := svc.ListItems(ctx, p.ID, pagination.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, items.TotalCount)
}

func TestProforma_DeleteItemOfAnotherProforma(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	svc := NewProformaService(db)
	client := testutil.CreateTestClient(t, db)

	a := newProforma(t, svc, client.ID, 30)
	b := newProforma(t, svc, client.ID, 30)
	item, err := svc.AddItem(ctx, a.ID, ItemInput{Description: "Line", Amount: testutil.Dec("10")})
	require.NoError(t, err)

	err = svc.DeleteItem(ctx, b.ID, item.ID)
	appErr := testutil.AssertAppError(t, err, "PROFORMA_ITEM_NOT_FOUND")
	assert.Contains(t, appErr.Message, item.ID)

	reloaded, err := svc.GetProforma(ctx, a.ID)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "subtotal", reloaded.Subtotal, "10")
}

func TestProforma_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	svc := NewProformaService(db)

	t.Run("end_before_start", func(t *testing.T) {
		_, err := svc.CreateProforma(ctx, ProformaInput{
			ClientID: "x", StartDate: testutil.Date(2024, 6, 30), EndDate: testutil.Date(2024, 6, 1),
		})
		appErr := testutil.AssertAppError(t, err, "VALIDATION_FAILED")
		assert.Equal(t, "endDate", appErr.Details[0].Field)
	})

	t.Run("missing_client", func(t *testing.T) {
		_, err := svc.CreateProforma(ctx, ProformaInput{
			ClientID: "0190a1b2-0000-7000-8000-000000000001",
			StartDate: testutil.Date(2024, 6, 1), EndDate: testutil.Date(2024, 6, 30),
		})
		testutil.AssertAppError(t, err, "CLIENT_NOT_FOUND")
	})

	t.Run("items_of_missing_proforma", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "0190a1b2-0000-7000-8000-000000000002", ItemInput{Description: "x", Amount: testutil.Dec("1")})
		testutil.AssertAppError(t, err, "PROFORMA_NOT_FOUND")
	})
}

func TestProforma_IssueThenCancel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	svc := NewProformaService(db)
	client := testutil.CreateTestClient(t, db)
	p := newProforma(t, svc, client.ID, 30)

	issued, err := svc.IssueProforma(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusIssued, issued.Status)
	assert.NotNil(t, issued.IssuedAt)

	_, err = svc.IssueProforma(ctx, p.ID)
	testutil.AssertAppError(t, err, "INVALID_STATUS")

	canceled, err := svc.CancelProforma(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, canceled.Status)

	_, err = svc.CancelProforma(ctx, p.ID)
	appErr := testutil.AssertAppError(t, err, "INVALID_STATUS")
	assert.Contains(t, appErr.Message, "is Canceled; expected Pending or Issued")
}

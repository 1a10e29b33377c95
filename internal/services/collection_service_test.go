package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/testutil"
)

func TestCollectionService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	files, _ := memoryFiles()
	svc := NewCollectionService(db, files)
	client := testutil.CreateTestClient(t, db)

	c, err := svc.CreateCollection(ctx, CollectionInput{
		ClientID: client.ID, Currency: "USD",
		Total: testutil.Dec("1180"), Commission: testutil.Dec("35.40"), Taxes: testutil.Dec("94.40"),
	})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "net", c.Net, "1050.20")
	assert.Equal(t, client.Name, c.ClientName)

	c, err = svc.UpdateCollection(ctx, c.ID, CollectionInput{
		ClientID: client.ID, Currency: "USD",
		Total: testutil.Dec("1000"), Commission: testutil.Dec("0"), Taxes: testutil.Dec("80"),
	})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "net", c.Net, "920")

	c, err = svc.ConfirmCollection(ctx, c.ID, ConfirmCollectionInput{CollectionDate: testutil.Date(2024, 7, 1)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, c.Status)
	assert.NotNil(t, c.ConfirmedAt)

	_, err = svc.CancelCollection(ctx, c.ID)
	appErr := testutil.AssertAppError(t, err, "INVALID_STATUS")
	assert.Contains(t, appErr.Message, "is Confirmed; expected Pending")

	// Confirmed collections still accept their receipt.
	c, err = svc.AttachFile(ctx, c.ID, FileUpload{Filename: "deposit.jpg", ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("jpg")})
	require.NoError(t, err)
	assert.NotNil(t, c.FilePath)

	confirmed := models.StatusConfirmed
	page, err := svc.ListCollections(ctx, pagination.PageRequest{}, CollectionFilter{Status: &confirmed, ClientID: &client.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalCount)
}

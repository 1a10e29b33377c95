package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/storage"
	"backoffice/internal/testutil"
)

func memoryFiles() (Files, *storage.MemoryStore) {
	store := storage.NewMemoryStore("http://files.test")
	return Files{Store: store, URLTTL: storage.DefaultURLTTL}, store
}

func TestTransactionService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	files, _ := memoryFiles()
	svc := NewTransactionService(db, files)

	tx, err := svc.CreateTransaction(ctx, TransactionInput{
		Description: "Office rent", Type: models.TransactionTypeExpense, Currency: "PEN",
		Subtotal: testutil.Dec("1000"), Taxes: testutil.Dec("180"),
	})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "total", tx.Total, "1180")

	tx, err = svc.UpdateTransaction(ctx, tx.ID, TransactionInput{
		Description: "Office rent", Type: models.TransactionTypeExpense, Currency: "PEN",
		Subtotal: testutil.Dec("900"), Taxes: testutil.Dec("162"),
	})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "total", tx.Total, "1062")

	tx, err = svc.IssueTransaction(ctx, tx.ID, IssueTransactionInput{Number: "E001-4", IssueDate: testutil.Date(2024, 5, 2)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusIssued, tx.Status)

	income := models.TransactionTypeIncome
	page, err := svc.ListTransactions(ctx, pagination.PageRequest{}, TransactionFilter{Type: &income})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.TotalCount)

	tx, err = svc.CancelTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, tx.Status)
}

func TestTransactionFiles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	files, store := memoryFiles()
	svc := NewTransactionService(db, files)
	tx := testutil.CreateTestTransaction(t, db)

	t.Run("no_file_yet", func(t *testing.T) {
		_, err := svc.FileURL(ctx, tx.ID)
		testutil.AssertAppError(t, err, "FILE_NOT_FOUND")
	})

	t.Run("upload_and_link", func(t *testing.T) {
		got, err := svc.AttachFile(ctx, tx.ID, FileUpload{
			Filename: "../receipts/may rent.pdf", ContentType: "application/pdf", Size: 4, Body: strings.NewReader("%PDF"),
		})
		require.NoError(t, err)
		require.NotNil(t, got.FilePath)
		assert.True(t, strings.HasPrefix(*got.FilePath, "transactions/"+tx.ID+"/"))
		assert.True(t, strings.HasSuffix(*got.FilePath, "-may_rent.pdf"))

		obj, ok := store.Get(*got.FilePath)
		require.True(t, ok)
		assert.Equal(t, "application/pdf", obj.ContentType)

		link, err := svc.FileURL(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, 900, link.ExpiresIn)
		assert.Contains(t, link.URL, "http://files.test/")
	})

	t.Run("too_large", func(t *testing.T) {
		_, err := svc.AttachFile(ctx, tx.ID, FileUpload{Filename: "big.bin", Size: MaxFileSize + 1, Body: strings.NewReader("")})
		testutil.AssertAppError(t, err, "FILE_TOO_LARGE")
	})

	t.Run("rejected_when_canceled", func(t *testing.T) {
		testutil.SetStatus(t, db, &models.Transaction{}, tx.ID, models.StatusCanceled)
		_, err := svc.AttachFile(ctx, tx.ID, FileUpload{Filename: "late.pdf", Size: 1, Body: strings.NewReader("x")})
		testutil.AssertAppError(t, err, "INVALID_STATUS")
	})

	t.Run("missing_document", func(t *testing.T) {
		_, err := svc.AttachFile(ctx, "0190a1b2-0000-7000-8000-0000000000ff", FileUpload{Filename: "x", Size: 1, Body: strings.NewReader("x")})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestCleanFilename(t *testing.T) {
	tests := map[string]string{
		"invoice.pdf":          "invoice.pdf",
		`C:\scans\receipt.png`: "receipt.png",
		"a/b/c d.txt":          "c_d.txt",
		"":                     "file",
		"/":                    "file",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanFilename(in), in)
	}
}

package lifecycle

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
)

var allStatuses = []models.Status{
	models.StatusPending, models.StatusIssued, models.StatusPaid,
	models.StatusConfirmed, models.StatusCanceled,
}

func TestIssuableMachines(t *testing.T) {
	for _, m := range []*Machine{Invoice, Transaction, MoneyExchange, Proforma} {
		t.Run(m.Entity(), func(t *testing.T) {
			assert.True(t, m.Can(models.StatusPending, Issue))
			assert.False(t, m.Can(models.StatusIssued, Issue))
			assert.False(t, m.Can(models.StatusCanceled, Issue))

			assert.True(t, m.Can(models.StatusPending, Cancel))
			assert.True(t, m.Can(models.StatusIssued, Cancel))
			assert.False(t, m.Can(models.StatusCanceled, Cancel))

			assert.False(t, m.Can(models.StatusPending, Pay))
		})
	}
}

func TestCollectionMachine(t *testing.T) {
	assert.True(t, Collection.Can(models.StatusPending, Confirm))
	assert.True(t, Collection.Can(models.StatusPending, Cancel))
	assert.False(t, Collection.Can(models.StatusConfirmed, Cancel))
	assert.False(t, Collection.Can(models.StatusCanceled, Confirm))
}

func TestCollaboratorPaymentMachine(t *testing.T) {
	m := CollaboratorPayment

	next, err := m.Next("p1", models.StatusPending, Pay)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, next)

	next, err = m.Next("p1", next, Confirm)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, next)

	_, err = m.Next("p1", models.StatusPending, Confirm)
	require.Error(t, err)

	assert.True(t, m.Can(models.StatusPaid, Cancel))
	assert.False(t, m.Can(models.StatusConfirmed, Cancel))
}

func TestTaxPaymentMachine(t *testing.T) {
	assert.True(t, TaxPayment.Can(models.StatusPending, Pay))
	assert.True(t, TaxPayment.Can(models.StatusPaid, Cancel))
	assert.False(t, TaxPayment.Can(models.StatusCanceled, Cancel))
	assert.False(t, TaxPayment.Can(models.StatusPaid, Pay))
}

// Every machine only ever moves away from Pending and never back into it.
func TestNoTransitionTargetsPending(t *testing.T) {
	machines := []*Machine{Invoice, Transaction, MoneyExchange, Proforma, Collection, CollaboratorPayment, TaxPayment}
	for _, m := range machines {
		for _, tr := range m.transitions {
			assert.NotEqual(t, models.StatusPending, tr.To, "%s.%s", m.Entity(), tr.Name)
			assert.NotContains(t, tr.From, tr.To, "%s.%s", m.Entity(), tr.Name)
			assert.NotContains(t, tr.From, models.StatusCanceled, "%s.%s", m.Entity(), tr.Name)
		}
		assert.Equal(t, models.StatusPending, m.Initial())
	}
}

func TestNext_ConflictNamesStatuses(t *testing.T) {
	for _, s := range allStatuses {
		if Invoice.Can(s, Issue) {
			continue
		}
		status, err := Invoice.Next("inv-1", s, Issue)
		require.Error(t, err)
		assert.Equal(t, s, status, "status must be unchanged on conflict")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusConflict, appErr.StatusCode)
		assert.Equal(t, "Invoice inv-1 is "+string(s)+"; expected Pending", appErr.Message)
	}
}

func TestTransition_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() { Invoice.Transition(Pay) })
}

func TestLive(t *testing.T) {
	assert.Equal(t, []models.Status{models.StatusPending, models.StatusIssued}, Invoice.Live())
	assert.Equal(t, []models.Status{models.StatusPending, models.StatusPaid, models.StatusConfirmed}, CollaboratorPayment.Live())
	assert.Equal(t, []models.Status{models.StatusPending, models.StatusConfirmed}, Collection.Live())
}

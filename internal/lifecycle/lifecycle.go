// Package lifecycle holds the status tables of every financial document and
// the guards built from them. A transition names its allowed source statuses,
// its target status and the timestamp column stamped when it fires.
package lifecycle

import (
	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
)

// Transition is a named status change.
type Transition struct {
	Name  string
	From  []models.Status
	To    models.Status
	Stamp string
}

// Allows reports whether the transition may fire from status.
func (t Transition) Allows(status models.Status) bool {
	for _, s := range t.From {
		if s == status {
			return true
		}
	}
	return false
}

// Machine is the state table of one entity.
type Machine struct {
	entity      string
	order       []string
	transitions map[string]Transition
}

// NewMachine builds a state table for entity.
func NewMachine(entity string, transitions ...Transition) *Machine {
	m := &Machine{entity: entity, transitions: make(map[string]Transition, len(transitions))}
	for _, t := range transitions {
		m.order = append(m.order, t.Name)
		m.transitions[t.Name] = t
	}
	return m
}

// Entity returns the human-readable entity label.
func (m *Machine) Entity() string { return m.entity }

// Initial returns the status every new document starts in.
func (m *Machine) Initial() models.Status { return models.StatusPending }

// Editable returns the statuses in which a document's fields may change.
func (m *Machine) Editable() []models.Status { return []models.Status{models.StatusPending} }

// Live returns every status the document can be in except Canceled, in
// the order the transitions reach them.
func (m *Machine) Live() []models.Status {
	live := []models.Status{m.Initial()}
	seen := map[models.Status]bool{m.Initial(): true}
	for _, name := range m.order {
		to := m.transitions[name].To
		if to == models.StatusCanceled || seen[to] {
			continue
		}
		seen[to] = true
		live = append(live, to)
	}
	return live
}

// Transition returns the named transition. It panics on unknown names since
// those are programming errors.
func (m *Machine) Transition(name string) Transition {
	t, ok := m.transitions[name]
	if !ok {
		panic("lifecycle: unknown transition " + name + " for " + m.entity)
	}
	return t
}

// Can reports whether the named transition may fire from status.
func (m *Machine) Can(status models.Status, name string) bool {
	t, ok := m.transitions[name]
	return ok && t.Allows(status)
}

// Next returns the status reached by firing name from status, or a conflict
// error naming the current and required statuses.
func (m *Machine) Next(id string, status models.Status, name string) (models.Status, error) {
	t := m.Transition(name)
	if !t.Allows(status) {
		return status, m.Conflict(id, status, t.From...)
	}
	return t.To, nil
}

// Conflict builds the 409 error for a document found in the wrong status.
func (m *Machine) Conflict(id string, current models.Status, required ...models.Status) *apperrors.AppError {
	names := make([]string, len(required))
	for i, s := range required {
		names[i] = string(s)
	}
	return apperrors.InvalidStatus(m.entity, id, string(current), names...)
}

var (
	pending       = []models.Status{models.StatusPending}
	pendingIssued = []models.Status{models.StatusPending, models.StatusIssued}
	pendingPaid   = []models.Status{models.StatusPending, models.StatusPaid}
)

// Transition names.
const (
	Issue   = "issue"
	Pay     = "pay"
	Confirm = "confirm"
	Cancel  = "cancel"
)

// issuable builds the Pending → Issued → Canceled table shared by invoices,
// transactions, money exchanges and proformas.
func issuable(entity string) *Machine {
	return NewMachine(entity,
		Transition{Name: Issue, From: pending, To: models.StatusIssued, Stamp: "issued_at"},
		Transition{Name: Cancel, From: pendingIssued, To: models.StatusCanceled, Stamp: "canceled_at"},
	)
}

// State tables.
var (
	Invoice       = issuable("Invoice")
	Transaction   = issuable("Transaction")
	MoneyExchange = issuable("MoneyExchange")
	Proforma      = issuable("Proforma")

	Collection = NewMachine("Collection",
		Transition{Name: Confirm, From: pending, To: models.StatusConfirmed, Stamp: "confirmed_at"},
		Transition{Name: Cancel, From: pending, To: models.StatusCanceled, Stamp: "canceled_at"},
	)

	CollaboratorPayment = NewMachine("CollaboratorPayment",
		Transition{Name: Pay, From: pending, To: models.StatusPaid, Stamp: "paid_at"},
		Transition{Name: Confirm, From: []models.Status{models.StatusPaid}, To: models.StatusConfirmed, Stamp: "confirmed_at"},
		Transition{Name: Cancel, From: pendingPaid, To: models.StatusCanceled, Stamp: "canceled_at"},
	)

	TaxPayment = NewMachine("TaxPayment",
		Transition{Name: Pay, From: pending, To: models.StatusPaid, Stamp: "paid_at"},
		Transition{Name: Cancel, From: pendingPaid, To: models.StatusCanceled, Stamp: "canceled_at"},
	)
)

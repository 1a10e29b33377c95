package services

import (
	"gorm.io/gorm"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
	"backoffice/internal/repository"
)

func joinClientName(table string) repository.Scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Select(table + ".*, clients.name AS client_name").
			Joins("JOIN clients ON clients.id = " + table + ".client_id")
	}
}

func newClientRepo(db *gorm.DB) *repository.Repository[models.Client] {
	return repository.New[models.Client](db, repository.Meta{
		Entity: "Client", Table: "clients", NotFound: apperrors.ErrClientNotFound,
	})
}

func newProjectRepo(db *gorm.DB) *repository.Repository[models.Project] {
	return repository.New[models.Project](db, repository.Meta{
		Entity: "Project", Table: "projects", NotFound: apperrors.ErrProjectNotFound,
	})
}

func newContactRepo(db *gorm.DB) *repository.Repository[models.Contact] {
	return repository.New[models.Contact](db, repository.Meta{
		Entity: "Contact", Table: "contacts", NotFound: apperrors.ErrContactNotFound,
	})
}

func newRoleRepo(db *gorm.DB) *repository.Repository[models.CollaboratorRole] {
	return repository.New[models.CollaboratorRole](db, repository.Meta{
		Entity: "CollaboratorRole", Table: "collaborator_roles", NotFound: apperrors.ErrCollaboratorRoleNotFound,
	})
}

func newCollaboratorRepo(db *gorm.DB) *repository.Repository[models.Collaborator] {
	return repository.New[models.Collaborator](db, repository.Meta{
		Entity: "Collaborator", Table: "collaborators", NotFound: apperrors.ErrCollaboratorNotFound,
		// Roles are optional, so this is the one left join.
		Read: func(q *gorm.DB) *gorm.DB {
			return q.Select("collaborators.*, collaborator_roles.name AS role_name").
				Joins("LEFT JOIN collaborator_roles ON collaborator_roles.id = collaborators.role_id")
		},
	})
}

func newInvoiceRepo(db *gorm.DB) *repository.Repository[models.Invoice] {
	return repository.New[models.Invoice](db, repository.Meta{
		Entity: "Invoice", Table: "invoices", NotFound: apperrors.ErrInvoiceNotFound,
		Read: joinClientName("invoices"),
	})
}

func newTransactionRepo(db *gorm.DB) *repository.Repository[models.Transaction] {
	return repository.New[models.Transaction](db, repository.Meta{
		Entity: "Transaction", Table: "transactions", NotFound: apperrors.ErrTransactionNotFound,
	})
}

func newMoneyExchangeRepo(db *gorm.DB) *repository.Repository[models.MoneyExchange] {
	return repository.New[models.MoneyExchange](db, repository.Meta{
		Entity: "MoneyExchange", Table: "money_exchanges", NotFound: apperrors.ErrMoneyExchangeNotFound,
	})
}

func newCollectionRepo(db *gorm.DB) *repository.Repository[models.Collection] {
	return repository.New[models.Collection](db, repository.Meta{
		Entity: "Collection", Table: "collections", NotFound: apperrors.ErrCollectionNotFound,
		Read: joinClientName("collections"),
	})
}

func newPaymentRepo(db *gorm.DB) *repository.Repository[models.CollaboratorPayment] {
	return repository.New[models.CollaboratorPayment](db, repository.Meta{
		Entity: "CollaboratorPayment", Table: "collaborator_payments", NotFound: apperrors.ErrPaymentNotFound,
		Read: func(q *gorm.DB) *gorm.DB {
			return q.Select("collaborator_payments.*, collaborators.name AS collaborator_name").
				Joins("JOIN collaborators ON collaborators.id = collaborator_payments.collaborator_id")
		},
	})
}

func newProformaRepo(db *gorm.DB) *repository.Repository[models.Proforma] {
	return repository.New[models.Proforma](db, repository.Meta{
		Entity: "Proforma", Table: "proformas", NotFound: apperrors.ErrProformaNotFound,
		Read: joinClientName("proformas"),
	})
}

func newProformaItemRepo(db *gorm.DB) *repository.Repository[models.ProformaItem] {
	return repository.New[models.ProformaItem](db, repository.Meta{
		Entity: "ProformaItem", Table: "proforma_items", NotFound: apperrors.ErrProformaItemNotFound,
	})
}

func newTaxPaymentRepo(db *gorm.DB) *repository.Repository[models.TaxPayment] {
	return repository.New[models.TaxPayment](db, repository.Meta{
		Entity: "TaxPayment", Table: "tax_payments", NotFound: apperrors.ErrTaxPaymentNotFound,
	})
}

func newTaxPaymentItemRepo(db *gorm.DB) *repository.Repository[models.TaxPaymentItem] {
	return repository.New[models.TaxPaymentItem](db, repository.Meta{
		Entity: "TaxPaymentItem", Table: "tax_payment_items", NotFound: apperrors.ErrTaxPaymentItemNotFound,
	})
}

// eq filters column by v when v is set.
func eq[V any](column string, v *V) repository.Scope {
	return func(q *gorm.DB) *gorm.DB {
		if v == nil {
			return q
		}
		return q.Where(column+" = ?", *v)
	}
}

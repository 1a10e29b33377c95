package services

import (
	"context"

	"backoffice/internal/models"
	"backoffice/internal/pagination"
)

// ClientServicer defines the contract for clients and their projects and contacts.
type ClientServicer interface {
	CreateClient(ctx context.Context, in ClientInput) (*models.Client, error)
	ListClients(ctx context.Context, page pagination.PageRequest, name string) (*pagination.PageResponse[models.Client], error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	UpdateClient(ctx context.Context, id string, in ClientInput) (*models.Client, error)

	ListProjects(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error)
	CreateProject(ctx context.Context, clientID string, in ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, clientID, projectID string, in ProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, clientID, projectID string) error

	ListContacts(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.Contact], error)
	CreateContact(ctx context.Context, clientID string, in ContactInput) (*models.Contact, error)
	UpdateContact(ctx context.Context, clientID, contactID string, in ContactInput) (*models.Contact, error)
	DeleteContact(ctx context.Context, clientID, contactID string) error
}

// CollaboratorServicer defines the contract for collaborators and their roles.
type CollaboratorServicer interface {
	CreateRole(ctx context.Context, in RoleInput) (*models.CollaboratorRole, error)
	ListRoles(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.CollaboratorRole], error)
	GetRole(ctx context.Context, id string) (*models.CollaboratorRole, error)
	UpdateRole(ctx context.Context, id string, in RoleInput) (*models.CollaboratorRole, error)

	CreateCollaborator(ctx context.Context, in CollaboratorInput) (*models.Collaborator, error)
	ListCollaborators(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Collaborator], error)
	GetCollaborator(ctx context.Context, id string) (*models.Collaborator, error)
	UpdateCollaborator(ctx context.Context, id string, in CollaboratorInput) (*models.Collaborator, error)
}

// InvoiceServicer defines the contract for invoice business logic.
type InvoiceServicer interface {
	CreateInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, error)
	ListInvoices(ctx context.Context, page pagination.PageRequest, filter InvoiceFilter) (*pagination.PageResponse[models.Invoice], error)
	ExportInvoices(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, in InvoiceInput) (*models.Invoice, error)
	IssueInvoice(ctx context.Context, id string, in IssueInvoiceInput) (*models.Invoice, error)
	CancelInvoice(ctx context.Context, id string) (*models.Invoice, error)
}

// TransactionServicer defines the contract for income and expense documents.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error)
	ListTransactions(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*models.Transaction, error)
	IssueTransaction(ctx context.Context, id string, in IssueTransactionInput) (*models.Transaction, error)
	CancelTransaction(ctx context.Context, id string) (*models.Transaction, error)
	AttachFile(ctx context.Context, id string, file FileUpload) (*models.Transaction, error)
	FileURL(ctx context.Context, id string) (*FileLink, error)
}

// MoneyExchangeServicer defines the contract for currency conversions.
type MoneyExchangeServicer interface {
	CreateMoneyExchange(ctx context.Context, in MoneyExchangeInput) (*models.MoneyExchange, error)
	ListMoneyExchanges(ctx context.Context, page pagination.PageRequest, status *models.Status) (*pagination.PageResponse[models.MoneyExchange], error)
	GetMoneyExchange(ctx context.Context, id string) (*models.MoneyExchange, error)
	UpdateMoneyExchange(ctx context.Context, id string, in MoneyExchangeInput) (*models.MoneyExchange, error)
	IssueMoneyExchange(ctx context.Context, id string, in IssueMoneyExchangeInput) (*models.MoneyExchange, error)
	CancelMoneyExchange(ctx context.Context, id string) (*models.MoneyExchange, error)
	AttachFile(ctx context.Context, id string, file FileUpload) (*models.MoneyExchange, error)
	FileURL(ctx context.Context, id string) (*FileLink, error)
}

// CollectionServicer defines the contract for client collections.
type CollectionServicer interface {
	CreateCollection(ctx context.Context, in CollectionInput) (*models.Collection, error)
	ListCollections(ctx context.Context, page pagination.PageRequest, filter CollectionFilter) (*pagination.PageResponse[models.Collection], error)
	GetCollection(ctx context.Context, id string) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id string, in CollectionInput) (*models.Collection, error)
	ConfirmCollection(ctx context.Context, id string, in ConfirmCollectionInput) (*models.Collection, error)
	CancelCollection(ctx context.Context, id string) (*models.Collection, error)
	AttachFile(ctx context.Context, id string, file FileUpload) (*models.Collection, error)
	FileURL(ctx context.Context, id string) (*FileLink, error)
}

// CollaboratorPaymentServicer defines the contract for payroll entries.
type CollaboratorPaymentServicer interface {
	CreatePayment(ctx context.Context, in PaymentInput) (*models.CollaboratorPayment, error)
	ListPayments(ctx context.Context, page pagination.PageRequest, filter PaymentFilter) (*pagination.PageResponse[models.CollaboratorPayment], error)
	ExportPayments(ctx context.Context, filter PaymentFilter) ([]models.CollaboratorPayment, error)
	GetPayment(ctx context.Context, id string) (*models.CollaboratorPayment, error)
	UpdatePayment(ctx context.Context, id string, in PaymentInput) (*models.CollaboratorPayment, error)
	PayPayment(ctx context.Context, id string, in PayPaymentInput) (*models.CollaboratorPayment, error)
	ConfirmPayment(ctx context.Context, id string) (*models.CollaboratorPayment, error)
	CancelPayment(ctx context.Context, id string) (*models.CollaboratorPayment, error)
	AttachFile(ctx context.Context, id string, file FileUpload) (*models.CollaboratorPayment, error)
	FileURL(ctx context.Context, id string) (*FileLink, error)
}

// ProformaServicer defines the contract for proformas and their items.
type ProformaServicer interface {
	CreateProforma(ctx context.Context, in ProformaInput) (*models.Proforma, error)
	ListProformas(ctx context.Context, page pagination.PageRequest, filter ProformaFilter) (*pagination.PageResponse[models.Proforma], error)
	ExportProformas(ctx context.Context, filter ProformaFilter) ([]models.Proforma, error)
	GetProforma(ctx context.Context, id string) (*models.Proforma, error)
	UpdateProforma(ctx context.Context, id string, in ProformaUpdate) (*models.Proforma, error)
	IssueProforma(ctx context.Context, id string) (*models.Proforma, error)
	CancelProforma(ctx context.Context, id string) (*models.Proforma, error)

	ListItems(ctx context.Context, proformaID string, page pagination.PageRequest) (*pagination.PageResponse[models.ProformaItem], error)
	AddItem(ctx context.Context, proformaID string, in ItemInput) (*models.ProformaItem, error)
	DeleteItem(ctx context.Context, proformaID, itemID string) error
}

// TaxPaymentServicer defines the contract for tax payments and their items.
type TaxPaymentServicer interface {
	CreateTaxPayment(ctx context.Context, in TaxPaymentInput) (*models.TaxPayment, error)
	ListTaxPayments(ctx context.Context, page pagination.PageRequest, filter TaxPaymentFilter) (*pagination.PageResponse[models.TaxPayment], error)
	GetTaxPayment(ctx context.Context, id string) (*models.TaxPayment, error)
	UpdateTaxPayment(ctx context.Context, id string, in TaxPaymentUpdate) (*models.TaxPayment, error)
	PayTaxPayment(ctx context.Context, id string, in PayTaxPaymentInput) (*models.TaxPayment, error)
	CancelTaxPayment(ctx context.Context, id string) (*models.TaxPayment, error)

	ListItems(ctx context.Context, taxPaymentID string, page pagination.PageRequest) (*pagination.PageResponse[models.TaxPaymentItem], error)
	AddItem(ctx context.Context, taxPaymentID string, in ItemInput) (*models.TaxPaymentItem, error)
	DeleteItem(ctx context.Context, taxPaymentID, itemID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(actor, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}

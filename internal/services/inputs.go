package services

import (
	"io"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"backoffice/internal/models"
)

// ClientInput carries the editable fields of a client.
type ClientInput struct {
	Name           string
	DocumentNumber string
	Email          string
	Phone          string
	Address        string
}

// ProjectInput carries the editable fields of a project.
type ProjectInput struct {
	Name        string
	Description string
}

// ContactInput carries the editable fields of a contact.
type ContactInput struct {
	Name     string
	Email    string
	Phone    string
	Position string
}

// RoleInput carries the editable fields of a collaborator role.
type RoleInput struct {
	Name     string
	Currency string
	FeeRate  decimal.Decimal
	CostRate decimal.Decimal
}

// CollaboratorInput carries the editable fields of a collaborator.
type CollaboratorInput struct {
	Name                  string
	DocumentNumber        string
	Email                 string
	RoleID                *string
	WithholdingPercentage decimal.Decimal
}

// InvoiceInput carries the editable fields of an invoice. Total is always
// derived.
type InvoiceInput struct {
	ClientID    string
	Currency    string
	Description string
	Subtotal    decimal.Decimal
	Taxes       decimal.Decimal
}

// IssueInvoiceInput carries the fields stamped when an invoice is issued.
type IssueInvoiceInput struct {
	Number       string
	IssueDate    datatypes.Date
	ExchangeRate *decimal.Decimal
}

// InvoiceFilter holds optional filters for listing invoices.
type InvoiceFilter struct {
	Status   *models.Status
	ClientID *string
}

// TransactionInput carries the editable fields of a transaction.
type TransactionInput struct {
	Description string
	Type        models.TransactionType
	Currency    string
	Subtotal    decimal.Decimal
	Taxes       decimal.Decimal
}

// IssueTransactionInput carries the fields stamped when a transaction is issued.
type IssueTransactionInput struct {
	Number    string
	IssueDate datatypes.Date
}

// TransactionFilter holds optional filters for listing transactions.
type TransactionFilter struct {
	Status *models.Status
	Type   *models.TransactionType
}

// MoneyExchangeInput carries the editable fields of a money exchange.
type MoneyExchangeInput struct {
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	FromAmount   decimal.Decimal
	Taxes        decimal.Decimal
	Description  string
}

// IssueMoneyExchangeInput carries the fields stamped when an exchange is issued.
type IssueMoneyExchangeInput struct {
	ExchangeDate datatypes.Date
}

// CollectionInput carries the editable fields of a collection.
type CollectionInput struct {
	ClientID    string
	Currency    string
	Description string
	Total       decimal.Decimal
	Commission  decimal.Decimal
	Taxes       decimal.Decimal
}

// ConfirmCollectionInput carries the fields stamped when a collection is confirmed.
type ConfirmCollectionInput struct {
	CollectionDate datatypes.Date
}

// CollectionFilter holds optional filters for listing collections.
type CollectionFilter struct {
	Status   *models.Status
	ClientID *string
}

// PaymentInput carries the editable fields of a collaborator payment.
type PaymentInput struct {
	CollaboratorID string
	Currency       string
	Description    string
	GrossSalary    decimal.Decimal
}

// PayPaymentInput carries the fields stamped when a payment is paid.
type PayPaymentInput struct {
	Number      string
	PaymentDate datatypes.Date
}

// PaymentFilter holds optional filters for listing collaborator payments.
type PaymentFilter struct {
	Status         *models.Status
	CollaboratorID *string
}

// ProformaInput carries the fields of a new proforma. Number and subtotal
// are derived.
type ProformaInput struct {
	ClientID    string
	Currency    string
	Description string
	StartDate   datatypes.Date
	EndDate     datatypes.Date
	Expenses    decimal.Decimal
	Discount    decimal.Decimal
	Taxes       decimal.Decimal
}

// ProformaUpdate carries the editable amounts of a proforma.
type ProformaUpdate struct {
	Description *string
	Expenses    decimal.Decimal
	Discount    decimal.Decimal
	Taxes       decimal.Decimal
}

// ProformaFilter holds optional filters for listing proformas.
type ProformaFilter struct {
	Status   *models.Status
	ClientID *string
}

// TaxPaymentInput carries the fields of a new tax payment. Number and taxes
// are derived.
type TaxPaymentInput struct {
	Year        int
	Month       int
	Currency    string
	Description string
	Interest    decimal.Decimal
}

// TaxPaymentUpdate carries the editable fields of a tax payment.
type TaxPaymentUpdate struct {
	Description *string
	Interest    decimal.Decimal
}

// PayTaxPaymentInput carries the fields stamped when a tax payment is paid.
type PayTaxPaymentInput struct {
	PaymentDate datatypes.Date
}

// TaxPaymentFilter holds optional filters for listing tax payments.
type TaxPaymentFilter struct {
	Status *models.Status
	Year   *int
}

// ItemInput carries a proforma or tax payment line.
type ItemInput struct {
	Description string
	Amount      decimal.Decimal
}

// FileUpload is a file received for a document.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileLink is a short-lived download link.
type FileLink struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

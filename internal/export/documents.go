package export

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"backoffice/internal/models"
)

func amount(d decimal.Decimal) interface{} { return d.InexactFloat64() }

func date(d *datatypes.Date) interface{} {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format("2006-01-02")
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Invoices is the invoice list layout.
var Invoices = Sheet[models.Invoice]{
	Name: "Invoices",
	Columns: []Column[models.Invoice]{
		{Header: "ID", Width: 38, Value: func(i models.Invoice) interface{} { return i.ID }},
		{Header: "Number", Value: func(i models.Invoice) interface{} { return str(i.Number) }},
		{Header: "Client", Width: 30, Value: func(i models.Invoice) interface{} { return i.ClientName }},
		{Header: "Status", Value: func(i models.Invoice) interface{} { return string(i.Status) }},
		{Header: "Currency", Value: func(i models.Invoice) interface{} { return i.Currency }},
		{Header: "Subtotal", Value: func(i models.Invoice) interface{} { return amount(i.Subtotal) }},
		{Header: "Taxes", Value: func(i models.Invoice) interface{} { return amount(i.Taxes) }},
		{Header: "Total", Value: func(i models.Invoice) interface{} { return amount(i.Total) }},
		{Header: "Issue Date", Value: func(i models.Invoice) interface{} { return date(i.IssueDate) }},
		{Header: "Description", Width: 40, Value: func(i models.Invoice) interface{} { return i.Description }},
	},
}

// CollaboratorPayments is the payroll list layout.
var CollaboratorPayments = Sheet[models.CollaboratorPayment]{
	Name: "Payments",
	Columns: []Column[models.CollaboratorPayment]{
		{Header: "ID", Width: 38, Value: func(p models.CollaboratorPayment) interface{} { return p.ID }},
		{Header: "Collaborator", Width: 30, Value: func(p models.CollaboratorPayment) interface{} { return p.CollaboratorName }},
		{Header: "Status", Value: func(p models.CollaboratorPayment) interface{} { return string(p.Status) }},
		{Header: "Currency", Value: func(p models.CollaboratorPayment) interface{} { return p.Currency }},
		{Header: "Gross Salary", Value: func(p models.CollaboratorPayment) interface{} { return amount(p.GrossSalary) }},
		{Header: "Withholding", Value: func(p models.CollaboratorPayment) interface{} { return amount(p.Withholding) }},
		{Header: "Net Salary", Value: func(p models.CollaboratorPayment) interface{} { return amount(p.NetSalary) }},
		{Header: "Number", Value: func(p models.CollaboratorPayment) interface{} { return str(p.Number) }},
		{Header: "Payment Date", Value: func(p models.CollaboratorPayment) interface{} { return date(p.PaymentDate) }},
	},
}

// Proformas is the proforma list layout.
var Proformas = Sheet[models.Proforma]{
	Name: "Proformas",
	Columns: []Column[models.Proforma]{
		{Header: "Number", Value: func(p models.Proforma) interface{} { return p.Number }},
		{Header: "Client", Width: 30, Value: func(p models.Proforma) interface{} { return p.ClientName }},
		{Header: "Status", Value: func(p models.Proforma) interface{} { return string(p.Status) }},
		{Header: "Currency", Value: func(p models.Proforma) interface{} { return p.Currency }},
		{Header: "Start Date", Value: func(p models.Proforma) interface{} { return date(&p.StartDate) }},
		{Header: "End Date", Value: func(p models.Proforma) interface{} { return date(&p.EndDate) }},
		{Header: "Subtotal", Value: func(p models.Proforma) interface{} { return amount(p.Subtotal) }},
		{Header: "Expenses", Value: func(p models.Proforma) interface{} { return amount(p.Expenses) }},
		{Header: "Discount", Value: func(p models.Proforma) interface{} { return amount(p.Discount) }},
		{Header: "Taxes", Value: func(p models.Proforma) interface{} { return amount(p.Taxes) }},
		{Header: "Total", Value: func(p models.Proforma) interface{} { return amount(p.Total) }},
	},
}

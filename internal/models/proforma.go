package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Proforma is a pre-invoice quotation. Subtotal is the sum of its items and
// Total is Subtotal + Expenses - Discount + Taxes.
type Proforma struct {
	Document
	ClientID    string          `gorm:"type:uuid;not null;index" json:"clientId"`
	Currency    string          `gorm:"type:char(3);not null" json:"currency"`
	Description string          `gorm:"type:text" json:"description"`
	StartDate   datatypes.Date  `gorm:"not null" json:"startDate"`
	EndDate     datatypes.Date  `gorm:"not null;index" json:"endDate"`
	Number      string          `gorm:"type:varchar(30);not null;uniqueIndex" json:"number"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"subtotal"`
	Expenses    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"expenses"`
	Discount    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"discount"`
	Taxes       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"taxes"`
	Total       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total"`
	IssuedAt    *time.Time      `json:"issuedAt,omitempty"`

	ClientName string `gorm:"->;-:migration" json:"clientName"`
}

// ProformaItem is a billable line of a proforma.
type ProformaItem struct {
	Base
	ProformaID  string          `gorm:"type:uuid;not null;index" json:"proformaId"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TaxPayment groups the taxes settled for a fiscal period. Taxes is the sum
// of its items and Total is Taxes + Interest.
type TaxPayment struct {
	Document
	Year        int             `gorm:"not null;index" json:"year"`
	Month       int             `gorm:"not null" json:"month"`
	Currency    string          `gorm:"type:char(3);not null" json:"currency"`
	Description string          `gorm:"type:text" json:"description"`
	Number      string          `gorm:"type:varchar(30);not null;uniqueIndex" json:"number"`
	Taxes       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"taxes"`
	Interest    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"interest"`
	Total       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total"`
	PaymentDate *datatypes.Date `json:"paymentDate,omitempty"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
}

// TaxPaymentItem is a single tax line within a tax payment.
type TaxPaymentItem struct {
	Base
	TaxPaymentID string          `gorm:"type:uuid;not null;index" json:"taxPaymentId"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Amount       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
}

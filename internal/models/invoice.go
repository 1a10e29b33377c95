package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Invoice is a tax document billed to a client. Number, issue date and
// exchange rate are supplied when the invoice is issued.
type Invoice struct {
	Document
	ClientID     string           `gorm:"type:uuid;not null;index" json:"clientId"`
	Currency     string           `gorm:"type:char(3);not null" json:"currency"`
	Description  string           `gorm:"type:text" json:"description"`
	Subtotal     decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"subtotal"`
	Taxes        decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"taxes"`
	Total        decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"total"`
	Number       *string          `gorm:"type:varchar(50)" json:"number,omitempty"`
	ExchangeRate *decimal.Decimal `gorm:"type:numeric(18,6)" json:"exchangeRate,omitempty"`
	IssueDate    *datatypes.Date  `json:"issueDate,omitempty"`
	IssuedAt     *time.Time       `json:"issuedAt,omitempty"`

	ClientName string `gorm:"->;-:migration" json:"clientName"`
}

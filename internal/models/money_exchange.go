package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MoneyExchange records a currency conversion. ToAmount is always
// FromAmount × Rate rounded to cents.
type MoneyExchange struct {
	Document
	FromCurrency string          `gorm:"type:char(3);not null" json:"fromCurrency"`
	ToCurrency   string          `gorm:"type:char(3);not null" json:"toCurrency"`
	Rate         decimal.Decimal `gorm:"type:numeric(18,6);not null" json:"rate"`
	FromAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"fromAmount"`
	ToAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"toAmount"`
	Taxes        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"taxes"`
	Description  string          `gorm:"type:text" json:"description"`
	ExchangeDate *datatypes.Date `json:"exchangeDate,omitempty"`
	FilePath     *string         `gorm:"type:text" json:"filePath,omitempty"`
	IssuedAt     *time.Time      `json:"issuedAt,omitempty"`
}

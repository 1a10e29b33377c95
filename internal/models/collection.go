package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Collection records money received from a client. Net is Total minus
// Commission minus Taxes.
type Collection struct {
	Document
	ClientID       string          `gorm:"type:uuid;not null;index" json:"clientId"`
	Currency       string          `gorm:"type:char(3);not null" json:"currency"`
	Description    string          `gorm:"type:text" json:"description"`
	Total          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total"`
	Commission     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"commission"`
	Taxes          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"taxes"`
	Net            decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"net"`
	CollectionDate *datatypes.Date `json:"collectionDate,omitempty"`
	FilePath       *string         `gorm:"type:text" json:"filePath,omitempty"`
	ConfirmedAt    *time.Time      `json:"confirmedAt,omitempty"`

	ClientName string `gorm:"->;-:migration" json:"clientName"`
}

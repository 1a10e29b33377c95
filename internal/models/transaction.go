package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// Transaction is a standalone income or expense document.
type Transaction struct {
	Document
	Description string          `gorm:"type:text;not null" json:"description"`
	Type        TransactionType `gorm:"type:varchar(20);not null;index" json:"type"`
	Currency    string          `gorm:"type:char(3);not null" json:"currency"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"subtotal"`
	Taxes       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"taxes"`
	Total       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total"`
	Number      *string         `gorm:"type:varchar(50)" json:"number,omitempty"`
	IssueDate   *datatypes.Date `json:"issueDate,omitempty"`
	FilePath    *string         `gorm:"type:text" json:"filePath,omitempty"`
	IssuedAt    *time.Time      `json:"issuedAt,omitempty"`
}

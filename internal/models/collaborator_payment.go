package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CollaboratorPayment is a payroll entry. Withholding and net salary are
// derived from the gross salary and the collaborator's withholding rate.
type CollaboratorPayment struct {
	Document
	CollaboratorID string          `gorm:"type:uuid;not null;index" json:"collaboratorId"`
	Currency       string          `gorm:"type:char(3);not null" json:"currency"`
	Description    string          `gorm:"type:text" json:"description"`
	GrossSalary    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"grossSalary"`
	Withholding    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"withholding"`
	NetSalary      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"netSalary"`
	Number         *string         `gorm:"type:varchar(50)" json:"number,omitempty"`
	PaymentDate    *datatypes.Date `json:"paymentDate,omitempty"`
	FilePath       *string         `gorm:"type:text" json:"filePath,omitempty"`
	PaidAt         *time.Time      `json:"paidAt,omitempty"`
	ConfirmedAt    *time.Time      `json:"confirmedAt,omitempty"`

	CollaboratorName string `gorm:"->;-:migration" json:"collaboratorName"`
}

package models

import "github.com/shopspring/decimal"

// CollaboratorRole defines billing and cost rates for a kind of work.
type CollaboratorRole struct {
	Base
	Name     string          `gorm:"type:varchar(100);not null" json:"name"`
	Currency string          `gorm:"type:char(3);not null" json:"currency"`
	FeeRate  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"feeRate"`
	CostRate decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"costRate"`
}

// Collaborator is a person paid through collaborator payments.
type Collaborator struct {
	Base
	Name                  string          `gorm:"type:varchar(200);not null" json:"name"`
	DocumentNumber        string          `gorm:"type:varchar(50)" json:"documentNumber"`
	Email                 string          `gorm:"type:varchar(200)" json:"email"`
	RoleID                *string         `gorm:"type:uuid;index" json:"roleId,omitempty"`
	WithholdingPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"withholdingPercentage"`

	RoleName *string `gorm:"->;-:migration" json:"roleName,omitempty"`
}

package models

import "gorm.io/datatypes"

// AuditLog records every mutation performed through the API.
type AuditLog struct {
	Base
	Actor        string         `gorm:"type:varchar(200);not null;index" json:"actor"`
	Action       string         `gorm:"type:varchar(100);not null" json:"action"`
	ResourceType string         `gorm:"type:varchar(100);not null" json:"resourceType"`
	ResourceID   string         `gorm:"type:uuid;index" json:"resourceId"`
	IPAddress    string         `gorm:"type:varchar(64)" json:"ipAddress"`
	Changes      datatypes.JSON `json:"changes,omitempty"`
}

// All lists every persisted model, in dependency order.
var All = []interface{}{
	&Client{},
	&Project{},
	&Contact{},
	&CollaboratorRole{},
	&Collaborator{},
	&Invoice{},
	&Transaction{},
	&MoneyExchange{},
	&Collection{},
	&CollaboratorPayment{},
	&Proforma{},
	&ProformaItem{},
	&TaxPayment{},
	&TaxPaymentItem{},
	&AuditLog{},
}

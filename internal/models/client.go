package models

// Client is a customer billed through invoices, proformas and collections.
type Client struct {
	Base
	Name           string `gorm:"type:varchar(200);not null" json:"name"`
	DocumentNumber string `gorm:"type:varchar(50);not null;uniqueIndex" json:"documentNumber"`
	Email          string `gorm:"type:varchar(200)" json:"email"`
	Phone          string `gorm:"type:varchar(50)" json:"phone"`
	Address        string `gorm:"type:text" json:"address"`
}

// Project is a client engagement.
type Project struct {
	Base
	ClientID    string `gorm:"type:uuid;not null;index" json:"clientId"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Contact is a person at a client.
type Contact struct {
	Base
	ClientID string `gorm:"type:uuid;not null;index" json:"clientId"`
	Name     string `gorm:"type:varchar(200);not null" json:"name"`
	Email    string `gorm:"type:varchar(200)" json:"email"`
	Phone    string `gorm:"type:varchar(50)" json:"phone"`
	Position string `gorm:"type:varchar(100)" json:"position"`
}

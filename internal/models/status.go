package models

import "time"

// Status is the lifecycle state of a financial document.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusIssued    Status = "Issued"
	StatusPaid      Status = "Paid"
	StatusConfirmed Status = "Confirmed"
	StatusCanceled  Status = "Canceled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusIssued, StatusPaid, StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}

// Document holds the columns shared by every status-driven record.
type Document struct {
	Base
	Status     Status     `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CanceledAt *time.Time `json:"canceledAt,omitempty"`
}

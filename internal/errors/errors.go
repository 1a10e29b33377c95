// Package errors provides the structured error type returned by services and
// rendered by handlers. Internal causes are logged but never sent to clients.
package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field details and
// optional internal error.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	StatusCode int          `json:"-"`
	Internal   error        `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Details:    sentinel.Details,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Validation creates a 422 error carrying field-level details.
func Validation(message string, details ...FieldError) *AppError {
	return &AppError{
		Code:       ErrValidation.Code,
		Message:    message,
		Details:    details,
		StatusCode: ErrValidation.StatusCode,
	}
}

// InvalidField creates a 422 error for a single offending field.
func InvalidField(field, message string) *AppError {
	return Validation(field+" "+message, FieldError{Field: field, Message: message})
}

// NotFound creates a not-found error from sentinel naming the entity and id.
func NotFound(sentinel *AppError, entity, id string) *AppError {
	return WithMessage(sentinel, fmt.Sprintf("%s %s not found", entity, id))
}

// InvalidStatus creates a 409 error naming the current and required statuses.
func InvalidStatus(entity, id, current string, required ...string) *AppError {
	return WithMessage(ErrInvalidStatus,
		fmt.Sprintf("%s %s is %s; expected %s", entity, id, current, strings.Join(required, " or ")))
}

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrValidation     = &AppError{Code: "VALIDATION_FAILED", Message: "Invalid input", StatusCode: http.StatusUnprocessableEntity}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInvalidStatus  = &AppError{Code: "INVALID_STATUS", Message: "Operation not allowed in the current status", StatusCode: http.StatusConflict}
	ErrNumberConflict = &AppError{Code: "NUMBER_CONFLICT", Message: "Could not allocate a document number, please retry", StatusCode: http.StatusConflict}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Client errors.
var (
	ErrClientNotFound          = &AppError{Code: "CLIENT_NOT_FOUND", Message: "Client not found", StatusCode: http.StatusNotFound}
	ErrProjectNotFound         = &AppError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", StatusCode: http.StatusNotFound}
	ErrContactNotFound         = &AppError{Code: "CONTACT_NOT_FOUND", Message: "Contact not found", StatusCode: http.StatusNotFound}
	ErrDuplicateDocumentNumber = &AppError{Code: "DUPLICATE_DOCUMENT_NUMBER", Message: "A record with this document number already exists", StatusCode: http.StatusConflict}
)

// Collaborator errors.
var (
	ErrCollaboratorNotFound     = &AppError{Code: "COLLABORATOR_NOT_FOUND", Message: "Collaborator not found", StatusCode: http.StatusNotFound}
	ErrCollaboratorRoleNotFound = &AppError{Code: "COLLABORATOR_ROLE_NOT_FOUND", Message: "Collaborator role not found", StatusCode: http.StatusNotFound}
	ErrPaymentNotFound          = &AppError{Code: "COLLABORATOR_PAYMENT_NOT_FOUND", Message: "Collaborator payment not found", StatusCode: http.StatusNotFound}
)

// Document errors.
var (
	ErrInvoiceNotFound        = &AppError{Code: "INVOICE_NOT_FOUND", Message: "Invoice not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrMoneyExchangeNotFound  = &AppError{Code: "MONEY_EXCHANGE_NOT_FOUND", Message: "Money exchange not found", StatusCode: http.StatusNotFound}
	ErrCollectionNotFound     = &AppError{Code: "COLLECTION_NOT_FOUND", Message: "Collection not found", StatusCode: http.StatusNotFound}
	ErrProformaNotFound       = &AppError{Code: "PROFORMA_NOT_FOUND", Message: "Proforma not found", StatusCode: http.StatusNotFound}
	ErrProformaItemNotFound   = &AppError{Code: "PROFORMA_ITEM_NOT_FOUND", Message: "Proforma item not found", StatusCode: http.StatusNotFound}
	ErrTaxPaymentNotFound     = &AppError{Code: "TAX_PAYMENT_NOT_FOUND", Message: "Tax payment not found", StatusCode: http.StatusNotFound}
	ErrTaxPaymentItemNotFound = &AppError{Code: "TAX_PAYMENT_ITEM_NOT_FOUND", Message: "Tax payment item not found", StatusCode: http.StatusNotFound}
)

// File errors.
var (
	ErrFileNotFound = &AppError{Code: "FILE_NOT_FOUND", Message: "No file attached", StatusCode: http.StatusNotFound}
	ErrFileTooLarge = &AppError{Code: "FILE_TOO_LARGE", Message: "File exceeds the maximum upload size", StatusCode: http.StatusRequestEntityTooLarge}
	ErrStorage      = &AppError{Code: "STORAGE_UNAVAILABLE", Message: "File storage is unavailable", StatusCode: http.StatusBadGateway}
	ErrLinkExpired  = &AppError{Code: "LINK_EXPIRED", Message: "Download link has expired", StatusCode: http.StatusForbidden}
)

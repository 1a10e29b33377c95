package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestNotFound(t *testing.T) {
	err := NotFound(ErrInvoiceNotFound, "Invoice", "0190a1b2-0000-7000-8000-000000000001")
	if err.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.StatusCode)
	}
	if err.Code != "INVOICE_NOT_FOUND" {
		t.Errorf("unexpected code %s", err.Code)
	}
	if err.Message != "Invoice 0190a1b2-0000-7000-8000-000000000001 not found" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestInvalidStatus(t *testing.T) {
	err := InvalidStatus("Proforma", "abc", "Canceled", "Pending", "Issued")
	if err.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", err.StatusCode)
	}
	if err.Message != "Proforma abc is Canceled; expected Pending or Issued" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestInvalidField(t *testing.T) {
	err := InvalidField("id", "must be a valid UUID")
	if err.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", err.StatusCode)
	}
	if len(err.Details) != 1 || err.Details[0].Field != "id" {
		t.Fatalf("expected one detail for id, got %+v", err.Details)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrInternalServer, cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped error to match cause")
	}
	if err.Error() != ErrInternalServer.Message {
		t.Errorf("expected sentinel message, got %q", err.Error())
	}
}

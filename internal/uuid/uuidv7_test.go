package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNew_IsVersion7(t *testing.T) {
	id := New()
	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid uuid, got %v", err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestNew_TimeOrdered(t *testing.T) {
	prev := New()
	for i := 0; i < 50; i++ {
		next := New()
		if next <= prev {
			t.Fatalf("expected %s > %s", next, prev)
		}
		prev = next
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for malformed uuid")
	}
	got, err := Parse("0190A1B2-0000-7000-8000-000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190a1b2-0000-7000-8000-000000000001" {
		t.Errorf("expected lowercase canonical form, got %s", got)
	}
	if IsValid("xyz") {
		t.Error("expected xyz to be invalid")
	}
}

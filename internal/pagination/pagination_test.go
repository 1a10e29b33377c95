package pagination

import "testing"

func TestDefaultsAndOffset(t *testing.T) {
	var p PageRequest
	p.Defaults()
	if p.PageNumber != 1 || p.PageSize != DefaultPageSize {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset())
	}

	p = PageRequest{PageNumber: 3, PageSize: 25}
	p.Defaults()
	if p.Offset() != 50 {
		t.Errorf("expected offset 50, got %d", p.Offset())
	}
}

func TestDefaults_ClampsOutOfRange(t *testing.T) {
	p := PageRequest{PageNumber: int(^uint(0) >> 1), PageSize: 1000}
	p.Defaults()
	if p.PageNumber != MaxPageNumber || p.PageSize != MaxPageSize {
		t.Fatalf("expected clamped page, got %+v", p)
	}
	if p.Offset() < 0 {
		t.Errorf("expected non-negative offset, got %d", p.Offset())
	}
	if want := (MaxPageNumber - 1) * MaxPageSize; p.Offset() != want {
		t.Errorf("expected offset %d, got %d", want, p.Offset())
	}

	p = PageRequest{PageNumber: -4, PageSize: -1}
	p.Defaults()
	if p.PageNumber != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("expected defaults for negative values, got %+v", p)
	}
}

func TestNewPageResponse_NilItems(t *testing.T) {
	resp := NewPageResponse[string](nil, 2, 10, 11)
	if resp.Items == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if resp.TotalCount != 11 || resp.PageNumber != 2 || resp.PageSize != 10 {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

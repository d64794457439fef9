package models

import "testing"

func TestPaginateSixInvoicesAcrossTwoPages(t *testing.T) {
	invoices := demoInvoices()

	page1 := PaginateInvoices(invoices, 1, 5)
	if len(page1.Items) != 5 {
		t.Fatalf("page 1 has %d items, want 5", len(page1.Items))
	}
	if page1.TotalCount != 6 || page1.TotalPages != 2 {
		t.Errorf("total_count=%d total_pages=%d, want 6 and 2", page1.TotalCount, page1.TotalPages)
	}
	if page1.StartIndex != 0 || page1.EndIndex != 5 {
		t.Errorf("page 1 window [%d:%d], want [0:5]", page1.StartIndex, page1.EndIndex)
	}

	page2 := PaginateInvoices(invoices, 2, 5)
	if len(page2.Items) != 1 {
		t.Fatalf("page 2 has %d items, want 1", len(page2.Items))
	}
	if page2.Items[0].ID != 6 {
		t.Errorf("page 2 first item id=%d, want 6", page2.Items[0].ID)
	}
	if page2.StartIndex != 5 || page2.EndIndex != 6 {
		t.Errorf("page 2 window [%d:%d], want [5:6]", page2.StartIndex, page2.EndIndex)
	}
}

func TestPaginateOutOfRangePageIsEmptyNotAnError(t *testing.T) {
	result := PaginateInvoices(demoInvoices(), 3, 5)
	if len(result.Items) != 0 {
		t.Fatalf("page 3 has %d items, want 0", len(result.Items))
	}
	if result.TotalCount != 6 || result.TotalPages != 2 {
		t.Errorf("total_count=%d total_pages=%d, want 6 and 2", result.TotalCount, result.TotalPages)
	}
}

func TestPaginateClampsPageAndPageSize(t *testing.T) {
	result := PaginateInvoices(demoInvoices(), 0, 0)
	if result.Page != 1 {
		t.Errorf("page = %d, want clamped to 1", result.Page)
	}
	if result.PageSize != DefaultPageSize() {
		t.Errorf("page_size = %d, want default %d", result.PageSize, DefaultPageSize())
	}
	if len(result.Items) != 5 {
		t.Errorf("first page has %d items, want 5", len(result.Items))
	}
}

func TestPaginateEmptySequence(t *testing.T) {
	result := PaginateInvoices(nil, 1, 5)
	if len(result.Items) != 0 || result.TotalCount != 0 || result.TotalPages != 0 {
		t.Errorf("empty sequence: items=%d total=%d pages=%d, want all zero",
			len(result.Items), result.TotalCount, result.TotalPages)
	}
}

func TestPaginatePreservesFilteredOrder(t *testing.T) {
	filtered := FilterInvoices(demoInvoices(), &InvoiceFilter{Status: InvoiceStatusPending})
	result := PaginateInvoices(filtered, 1, 3)
	assertIDs(t, result.Items, 1, 2, 4)
}

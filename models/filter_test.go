package models

import (
	"testing"
	"time"
)

func demoInvoices() []*Invoice {
	seed := SeedInvoices()
	out := make([]*Invoice, 0, len(seed))
	for i := range seed {
		out = append(out, &seed[i])
	}
	return out
}

func invoiceIDs(invoices []*Invoice) []int {
	ids := make([]int, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}
	return ids
}

func assertIDs(t *testing.T, got []*Invoice, want ...int) {
	t.Helper()
	ids := invoiceIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("got invoices %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got invoices %v, want %v", ids, want)
		}
	}
}

func TestFilterStatusPending(t *testing.T) {
	got := FilterInvoices(demoInvoices(), &InvoiceFilter{Status: InvoiceStatusPending})
	assertIDs(t, got, 1, 2, 4, 5)
}

func TestFilterStatusResolved(t *testing.T) {
	got := FilterInvoices(demoInvoices(), &InvoiceFilter{Status: InvoiceStatusResolved})
	assertIDs(t, got, 3, 6)
}

func TestFilterStatusResolvedIncludesEmptyItemList(t *testing.T) {
	issue, _ := ParseDate("2023-11-05")
	invoices := append(demoInvoices(), &Invoice{
		ID: 7, NfeNumber: "0015028", CompanyNumber: "7007", CompanyName: "Comércio Sete",
		IssueDate: issue,
	})
	got := FilterInvoices(invoices, &InvoiceFilter{Status: InvoiceStatusResolved})
	assertIDs(t, got, 3, 6, 7)
}

func TestFilterCompanyNameIsCaseInsensitiveSubstring(t *testing.T) {
	got := FilterInvoices(demoInvoices(), &InvoiceFilter{Company: "tech"})
	assertIDs(t, got, 1, 3, 5)
}

func TestFilterCompanyMatchesNumberToo(t *testing.T) {
	got := FilterInvoices(demoInvoices(), &InvoiceFilter{Company: "3099"})
	assertIDs(t, got, 4)
}

func TestFilterNfeNumberSubstring(t *testing.T) {
	got := FilterInvoices(demoInvoices(), &InvoiceFilter{NfeNumber: "892"})
	assertIDs(t, got, 4)
}

func TestFilterIssueDateBoundsAreInclusive(t *testing.T) {
	start, _ := ParseDate("2023-10-26")
	end, _ := ParseDate("2023-10-28")
	got := FilterInvoices(demoInvoices(), &InvoiceFilter{StartDate: &start, EndDate: &end})
	assertIDs(t, got, 2, 3, 4)
}

func TestFilterIgnoresTimeOfDayOnBounds(t *testing.T) {
	// a bound with a late time-of-day must still include invoices issued
	// that same day
	end := time.Date(2023, 10, 25, 23, 59, 0, 0, time.UTC)
	got := FilterInvoices(demoInvoices(), &InvoiceFilter{EndDate: &end})
	assertIDs(t, got, 1)
}

func TestFilterCriteriaCombineWithAnd(t *testing.T) {
	got := FilterInvoices(demoInvoices(), &InvoiceFilter{
		Company: "Tech",
		Status:  InvoiceStatusPending,
	})
	assertIDs(t, got, 1, 5)
}

func TestFilterNilPassesEverythingThrough(t *testing.T) {
	invoices := demoInvoices()
	got := FilterInvoices(invoices, nil)
	assertIDs(t, got, 1, 2, 3, 4, 5, 6)
	if len(got) != len(invoices) {
		t.Fatal("nil filter must not drop invoices")
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	invoices := demoInvoices()
	FilterInvoices(invoices, &InvoiceFilter{Status: InvoiceStatusResolved})
	assertIDs(t, invoices, 1, 2, 3, 4, 5, 6)
}

package models

import (
	"strings"
	"time"
)

// InvoiceFilter is the criteria set applied to the invoice collection.
// Every field is optional; unset fields always match. Matching fields are
// combined with logical AND.
type InvoiceFilter struct {
	Company   string
	NfeNumber string
	StartDate *time.Time
	EndDate   *time.Time
	Status    InvoiceStatusFilter
}

func (f *InvoiceFilter) matchCompany(inv *Invoice) bool {
	if f.Company == "" {
		return true
	}
	if strings.Contains(strings.ToLower(inv.CompanyName), strings.ToLower(f.Company)) {
		return true
	}
	return strings.Contains(inv.CompanyNumber, f.Company)
}

func (f *InvoiceFilter) matchNfeNumber(inv *Invoice) bool {
	if f.NfeNumber == "" {
		return true
	}
	return strings.Contains(inv.NfeNumber, f.NfeNumber)
}

// date-only comparison, inclusive on both bounds
func (f *InvoiceFilter) matchIssueDate(inv *Invoice) bool {
	issue := dateOnly(inv.IssueDate)
	if f.StartDate != nil && issue.Before(dateOnly(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && issue.After(dateOnly(*f.EndDate)) {
		return false
	}
	return true
}

func (f *InvoiceFilter) matchStatus(inv *Invoice) bool {
	switch f.Status {
	case InvoiceStatusPending:
		return inv.UnresolvedCount() > 0
	case InvoiceStatusResolved:
		// an invoice with no inconsistencies counts as resolved
		return inv.UnresolvedCount() == 0
	default:
		return true
	}
}

func (f *InvoiceFilter) Matches(inv *Invoice) bool {
	return f.matchCompany(inv) &&
		f.matchNfeNumber(inv) &&
		f.matchIssueDate(inv) &&
		f.matchStatus(inv)
}

// FilterInvoices returns the matching subset in input order. The input
// slice is never mutated.
func FilterInvoices(invoices []*Invoice, f *InvoiceFilter) []*Invoice {
	if f == nil {
		return invoices
	}
	results := make([]*Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if f.Matches(inv) {
			results = append(results, inv)
		}
	}
	return results
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package reports

import (
	"testing"

	"github.com/mmdatafocus/notas_backend/models"
)

func TestDashboardSummaryPercentageAndAverage(t *testing.T) {
	issue, _ := models.ParseDate("2023-01-01")
	resolvedAt := issue.AddDate(0, 0, 2)
	invoices := []*models.Invoice{
		{
			ID: 1, IssueDate: issue, ResolvedAt: &resolvedAt,
			Inconsistencies: []models.Inconsistency{{ID: 1, IsResolved: true}},
		},
		{
			ID: 2, IssueDate: issue,
			Inconsistencies: []models.Inconsistency{{ID: 2}},
		},
		// no items at all: counts as resolved, but carries no aggregate
		// timestamp so it stays out of the average
		{ID: 3, IssueDate: issue},
	}

	summary := BuildDashboardSummary(invoices)

	if summary.TotalInvoices != 3 || summary.ResolvedCount != 2 {
		t.Fatalf("total=%d resolved=%d, want 3 and 2", summary.TotalInvoices, summary.ResolvedCount)
	}
	if summary.ResolvedPercentage.String() != "67" {
		t.Errorf("resolved_percentage = %s, want 67 (rounded)", summary.ResolvedPercentage)
	}
	if summary.AverageResolutionDays.String() != "2" {
		t.Errorf("average_resolution_days = %s, want 2", summary.AverageResolutionDays)
	}
}

func TestDashboardSummarySkipsNegativeDurations(t *testing.T) {
	issue, _ := models.ParseDate("2023-02-10")
	before := issue.AddDate(0, 0, -3)
	invoices := []*models.Invoice{
		{
			ID: 1, IssueDate: issue, ResolvedAt: &before,
			Inconsistencies: []models.Inconsistency{{ID: 1, IsResolved: true}},
		},
	}

	summary := BuildDashboardSummary(invoices)

	if summary.ResolvedCount != 1 {
		t.Fatalf("resolved_count = %d, want 1", summary.ResolvedCount)
	}
	if summary.ResolvedPercentage.String() != "100" {
		t.Errorf("resolved_percentage = %s, want 100", summary.ResolvedPercentage)
	}
	// the inverted timestamp is excluded from the average, leaving no data
	if !summary.AverageResolutionDays.IsZero() {
		t.Errorf("average_resolution_days = %s, want 0", summary.AverageResolutionDays)
	}
}

func TestDashboardSummaryOnEmptyCollection(t *testing.T) {
	summary := BuildDashboardSummary(nil)
	if summary.TotalInvoices != 0 || summary.ResolvedCount != 0 {
		t.Errorf("empty collection must report zero counts, got %+v", summary)
	}
	if !summary.ResolvedPercentage.IsZero() || !summary.AverageResolutionDays.IsZero() {
		t.Errorf("empty collection must report zero figures, got %+v", summary)
	}
}

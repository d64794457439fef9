package reports

import (
	"context"

	"github.com/mmdatafocus/notas_backend/models"
	"github.com/shopspring/decimal"
)

// DashboardSummaryResponse is the headline card data: how much of the
// collection is fully resolved and how long full resolution takes on
// average, invoice-level (issue date to aggregate resolved-at).
type DashboardSummaryResponse struct {
	TotalInvoices         int             `json:"total_invoices"`
	ResolvedCount         int             `json:"resolved_count"`
	ResolvedPercentage    decimal.Decimal `json:"resolved_percentage"`
	AverageResolutionDays decimal.Decimal `json:"average_resolution_days"`
}

// BuildDashboardSummary runs over the full, unfiltered collection. Both
// figures are rounded to whole numbers. Unlike the proactivity report this
// averages whole invoices, and only those whose aggregate timestamp is set;
// negative durations are skipped here rather than clamped, matching the
// headline-metric behavior.
func BuildDashboardSummary(invoices []*models.Invoice) *DashboardSummaryResponse {
	summary := &DashboardSummaryResponse{
		TotalInvoices:         len(invoices),
		ResolvedPercentage:    decimal.Zero,
		AverageResolutionDays: decimal.Zero,
	}
	if summary.TotalInvoices == 0 {
		return summary
	}

	totalDays := 0.0
	countWithDates := 0
	for _, inv := range invoices {
		if inv.UnresolvedCount() > 0 {
			continue
		}
		summary.ResolvedCount++
		if inv.ResolvedAt == nil {
			continue
		}
		days := inv.ResolvedAt.Sub(inv.IssueDate).Hours() / 24
		if days < 0 {
			continue
		}
		totalDays += days
		countWithDates++
	}

	summary.ResolvedPercentage = decimal.NewFromInt(int64(summary.ResolvedCount * 100)).
		Div(decimal.NewFromInt(int64(summary.TotalInvoices))).Round(0)
	if countWithDates > 0 {
		summary.AverageResolutionDays = decimal.NewFromFloat(totalDays / float64(countWithDates)).Round(0)
	}
	return summary
}

func GetDashboardSummary(ctx context.Context) (*DashboardSummaryResponse, error) {
	invoices, err := models.FetchInvoicesWithItems(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDashboardSummary(invoices), nil
}

package reports

import (
	"context"
	"sort"

	"github.com/mmdatafocus/notas_backend/models"
	"github.com/shopspring/decimal"
)

// CriticalDivergenceThreshold is the concentration (percent) above which a
// single motive raises the critical-divergence signal.
const CriticalDivergenceThreshold = 70

type MotiveRank struct {
	Description string          `json:"description"`
	Count       int             `json:"count"`
	Percentage  decimal.Decimal `json:"percentage"`
}

type MotiveRankingResponse struct {
	Ranking              []*MotiveRank `json:"ranking"`
	CriticalItem         *MotiveRank   `json:"critical_item,omitempty"`
	TotalInconsistencies int           `json:"total_inconsistencies"`
}

// BuildMotiveRanking counts occurrences of each distinct description across
// all inconsistencies, resolved and unresolved alike. Ties keep the
// first-encountered order so report output stays stable across runs.
// CriticalItem is advisory: a computed record, not an action.
func BuildMotiveRanking(invoices []*models.Invoice) *MotiveRankingResponse {
	counts := make(map[string]int)
	order := make([]string, 0)
	total := 0

	for _, inv := range invoices {
		for _, inc := range inv.Inconsistencies {
			if _, seen := counts[inc.Description]; !seen {
				order = append(order, inc.Description)
			}
			counts[inc.Description]++
			total++
		}
	}

	ranking := make([]*MotiveRank, 0, len(order))
	for _, desc := range order {
		count := counts[desc]
		ranking = append(ranking, &MotiveRank{
			Description: desc,
			Count:       count,
			Percentage:  decimal.NewFromInt(int64(count * 100)).Div(decimal.NewFromInt(int64(total))),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})

	response := &MotiveRankingResponse{
		Ranking:              ranking,
		TotalInconsistencies: total,
	}
	threshold := decimal.NewFromInt(CriticalDivergenceThreshold)
	for _, item := range ranking {
		if item.Percentage.GreaterThan(threshold) {
			response.CriticalItem = item
			break
		}
	}
	return response
}

func GetMotiveRanking(ctx context.Context) (*MotiveRankingResponse, error) {
	invoices, err := models.FetchInvoicesWithItems(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMotiveRanking(invoices), nil
}

package reports

import (
	"testing"

	"github.com/mmdatafocus/notas_backend/models"
	"github.com/shopspring/decimal"
)

func invoicesWithMotives(descriptions ...string) []*models.Invoice {
	inv := &models.Invoice{ID: 1}
	for _, d := range descriptions {
		inv.Inconsistencies = append(inv.Inconsistencies, models.Inconsistency{Description: d})
	}
	return []*models.Invoice{inv}
}

func TestMotiveRankingCountsAndSorts(t *testing.T) {
	ranking := BuildMotiveRanking(invoicesWithMotives(
		"NCM inválido",
		"Divergência de valores",
		"Divergência de valores",
		"Falta GTIN",
		"Divergência de valores",
	))

	if ranking.TotalInconsistencies != 5 {
		t.Fatalf("total = %d, want 5", ranking.TotalInconsistencies)
	}
	if len(ranking.Ranking) != 3 {
		t.Fatalf("ranking has %d motives, want 3", len(ranking.Ranking))
	}
	top := ranking.Ranking[0]
	if top.Description != "Divergência de valores" || top.Count != 3 {
		t.Errorf("top motive = %q (%d), want Divergência de valores (3)", top.Description, top.Count)
	}
	if top.Percentage.Round(0).String() != "60" {
		t.Errorf("top percentage = %s, want 60", top.Percentage)
	}
}

func TestMotiveRankingPercentagesSumToOneHundred(t *testing.T) {
	ranking := BuildMotiveRanking(invoicesWithMotives("a1 b2 c3", "a1 b2 c3", "outro"))

	sum := decimal.Zero
	for _, item := range ranking.Ranking {
		sum = sum.Add(item.Percentage)
	}
	if !sum.Round(6).Equal(decimal.NewFromInt(100)) {
		t.Errorf("percentages sum to %s, want 100", sum)
	}
}

func TestMotiveRankingTieBreakKeepsFirstSeenOrder(t *testing.T) {
	ranking := BuildMotiveRanking(invoicesWithMotives(
		"primeiro motivo",
		"segundo motivo",
		"segundo motivo",
		"primeiro motivo",
	))

	if ranking.Ranking[0].Description != "primeiro motivo" {
		t.Errorf("tied motives must keep first-seen order, got %q first", ranking.Ranking[0].Description)
	}
}

func TestCriticalItemAboveSeventyPercent(t *testing.T) {
	// 5 of 6 items share one motive: 83.3% > 70
	ranking := BuildMotiveRanking(invoicesWithMotives(
		"NCM inválido", "NCM inválido", "NCM inválido", "NCM inválido", "NCM inválido",
		"outro motivo",
	))

	if ranking.CriticalItem == nil {
		t.Fatal("expected a critical item above the threshold")
	}
	if ranking.CriticalItem.Description != "NCM inválido" {
		t.Errorf("critical item = %q", ranking.CriticalItem.Description)
	}
}

func TestNoCriticalItemAtExactlySeventyPercent(t *testing.T) {
	// 7 of 10: exactly 70%, the signal requires strictly greater
	descs := make([]string, 0, 10)
	for i := 0; i < 7; i++ {
		descs = append(descs, "motivo dominante")
	}
	for i := 0; i < 3; i++ {
		descs = append(descs, "outro")
	}
	ranking := BuildMotiveRanking(invoicesWithMotives(descs...))

	if ranking.CriticalItem != nil {
		t.Errorf("70%% exactly must not raise the signal, got %+v", ranking.CriticalItem)
	}
}

func TestMotiveRankingOnEmptyCollection(t *testing.T) {
	ranking := BuildMotiveRanking(nil)
	if ranking.TotalInconsistencies != 0 || len(ranking.Ranking) != 0 || ranking.CriticalItem != nil {
		t.Errorf("empty collection must produce an empty ranking, got %+v", ranking)
	}
}

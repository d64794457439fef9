package reports

import (
	"testing"
	"time"

	"github.com/mmdatafocus/notas_backend/models"
)

func fixtureAreas() []*models.Area {
	return []*models.Area{
		{ID: 1, Name: "Fiscal"},
		{ID: 2, Name: "Compras"},
		{ID: 3, Name: "Logística"},
	}
}

func fixtureUsers() []*models.User {
	return []*models.User{
		{ID: 1, Name: "Ana Souza", Role: models.UserRoleGeneral},
		{ID: 2, Name: "Bruno Lima", Role: models.UserRoleAreaSpecialist},
		{ID: 3, Name: "Carla Dias", Role: models.UserRoleAreaSpecialist},
	}
}

func resolvedItem(areaId int, userId int, at time.Time) models.Inconsistency {
	return models.Inconsistency{
		AreaId:        areaId,
		IsResolved:    true,
		SolutionNotes: "resolvido conforme procedimento",
		ResolvedAt:    &at,
		ResolvedBy:    &userId,
	}
}

func TestProactivityAveragesElapsedDays(t *testing.T) {
	issue, _ := models.ParseDate("2023-01-01")
	invoices := []*models.Invoice{
		{
			ID: 1, IssueDate: issue,
			Inconsistencies: []models.Inconsistency{
				resolvedItem(1, 1, issue.AddDate(0, 0, 2)),
				resolvedItem(1, 1, issue.AddDate(0, 0, 3)),
				{AreaId: 2}, // pending, must not count
			},
		},
	}

	report := BuildProactivityReport(invoices, fixtureAreas(), fixtureUsers())

	if len(report.ByArea) != 3 {
		t.Fatalf("by_area has %d rows, want one per area", len(report.ByArea))
	}
	fiscal := report.ByArea[0]
	if fiscal.ResolvedCount != 2 {
		t.Errorf("area 1 resolved_count = %d, want 2", fiscal.ResolvedCount)
	}
	if fiscal.AverageDays == nil || fiscal.AverageDays.String() != "2.5" {
		t.Errorf("area 1 average_days = %v, want 2.5", fiscal.AverageDays)
	}

	ana := report.ByUser[0]
	if ana.ResolvedCount != 2 || ana.AverageDays == nil || ana.AverageDays.String() != "2.5" {
		t.Errorf("user 1 row = %+v, want count 2 and average 2.5", ana)
	}
}

func TestProactivityGroupWithoutResolutionsHasNoData(t *testing.T) {
	report := BuildProactivityReport(nil, fixtureAreas(), fixtureUsers())

	for _, row := range report.ByArea {
		if row.AverageDays != nil || row.ResolvedCount != 0 {
			t.Errorf("area %d must report no data, got %+v", row.AreaId, row)
		}
	}
	for _, row := range report.ByUser {
		if row.AverageDays != nil || row.ResolvedCount != 0 {
			t.Errorf("user %d must report no data, got %+v", row.UserId, row)
		}
	}
}

func TestProactivityClampsNegativeDurationsToZero(t *testing.T) {
	issue, _ := models.ParseDate("2023-02-10")
	before := issue.AddDate(0, 0, -1)
	invoices := []*models.Invoice{
		{
			ID: 1, IssueDate: issue,
			Inconsistencies: []models.Inconsistency{
				resolvedItem(2, 2, before),
			},
		},
	}

	report := BuildProactivityReport(invoices, fixtureAreas(), fixtureUsers())

	compras := report.ByArea[1]
	if compras.ResolvedCount != 1 {
		t.Fatalf("area 2 resolved_count = %d, want 1", compras.ResolvedCount)
	}
	if compras.AverageDays == nil || !compras.AverageDays.IsZero() {
		t.Errorf("area 2 average_days = %v, want 0 (clamped, not negative)", compras.AverageDays)
	}
}

func TestProactivityListsEveryAreaAndUser(t *testing.T) {
	report := BuildProactivityReport(nil, fixtureAreas(), fixtureUsers())
	if len(report.ByArea) != 3 || len(report.ByUser) != 3 {
		t.Errorf("report must list all groups: areas=%d users=%d", len(report.ByArea), len(report.ByUser))
	}
	if report.ByArea[2].AreaName != "Logística" {
		t.Errorf("rows must keep the input order, got %q last", report.ByArea[2].AreaName)
	}
}

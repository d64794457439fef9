package reports

import (
	"context"

	"github.com/mmdatafocus/notas_backend/models"
	"github.com/shopspring/decimal"
)

type AreaProactivityResponse struct {
	AreaId        int              `json:"area_id"`
	AreaName      string           `json:"area_name"`
	ResolvedCount int              `json:"resolved_count"`
	AverageDays   *decimal.Decimal `json:"average_days,omitempty"`
}

type UserProactivityResponse struct {
	UserId        int              `json:"user_id"`
	UserName      string           `json:"user_name"`
	Role          models.UserRole  `json:"role"`
	ResolvedCount int              `json:"resolved_count"`
	AverageDays   *decimal.Decimal `json:"average_days,omitempty"`
}

type ProactivityResponse struct {
	ByArea []*AreaProactivityResponse `json:"by_area"`
	ByUser []*UserProactivityResponse `json:"by_user"`
}

type durationAccumulator struct {
	totalDays float64
	count     int
}

// BuildProactivityReport computes the average elapsed days from invoice
// issue to item resolution, grouped by area and by resolving user. Groups
// with no resolved items report a nil average ("no data"), never zero.
func BuildProactivityReport(invoices []*models.Invoice, areas []*models.Area, users []*models.User) *ProactivityResponse {
	areaStats := make(map[int]*durationAccumulator)
	userStats := make(map[int]*durationAccumulator)

	for _, inv := range invoices {
		for _, inc := range inv.Inconsistencies {
			if !inc.IsResolved || inc.ResolvedAt == nil {
				continue
			}
			// negative raw durations are clamped, not treated as invalid
			days := inc.ResolvedAt.Sub(inv.IssueDate).Hours() / 24
			if days < 0 {
				days = 0
			}

			if areaStats[inc.AreaId] == nil {
				areaStats[inc.AreaId] = &durationAccumulator{}
			}
			areaStats[inc.AreaId].totalDays += days
			areaStats[inc.AreaId].count++

			if inc.ResolvedBy != nil {
				if userStats[*inc.ResolvedBy] == nil {
					userStats[*inc.ResolvedBy] = &durationAccumulator{}
				}
				userStats[*inc.ResolvedBy].totalDays += days
				userStats[*inc.ResolvedBy].count++
			}
		}
	}

	response := &ProactivityResponse{
		ByArea: make([]*AreaProactivityResponse, 0, len(areas)),
		ByUser: make([]*UserProactivityResponse, 0, len(users)),
	}
	for _, area := range areas {
		row := &AreaProactivityResponse{
			AreaId:   area.ID,
			AreaName: area.Name,
		}
		if stat := areaStats[area.ID]; stat != nil && stat.count > 0 {
			row.ResolvedCount = stat.count
			avg := decimal.NewFromFloat(stat.totalDays / float64(stat.count)).Round(1)
			row.AverageDays = &avg
		}
		response.ByArea = append(response.ByArea, row)
	}
	for _, user := range users {
		row := &UserProactivityResponse{
			UserId:   user.ID,
			UserName: user.Name,
			Role:     user.Role,
		}
		if stat := userStats[user.ID]; stat != nil && stat.count > 0 {
			row.ResolvedCount = stat.count
			avg := decimal.NewFromFloat(stat.totalDays / float64(stat.count)).Round(1)
			row.AverageDays = &avg
		}
		response.ByUser = append(response.ByUser, row)
	}
	return response
}

func GetProactivityReport(ctx context.Context) (*ProactivityResponse, error) {
	invoices, err := models.FetchInvoicesWithItems(ctx)
	if err != nil {
		return nil, err
	}
	areas, err := models.GetAreas(ctx)
	if err != nil {
		return nil, err
	}
	users, err := models.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	return BuildProactivityReport(invoices, areas, users), nil
}

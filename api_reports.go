package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mmdatafocus/notas_backend/models"
	"github.com/mmdatafocus/notas_backend/models/reports"
	"github.com/mmdatafocus/notas_backend/utils"
)

// requireReportAccess loads the acting user and checks the per-report grant.
func requireReportAccess(c *gin.Context, report string) bool {
	userId, ok := utils.GetUserIdFromContext(c.Request.Context())
	if !ok || userId <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return false
	}
	user, err := models.GetUser(c.Request.Context(), userId)
	if err != nil {
		respondError(c, "requireReportAccess", err)
		return false
	}
	if !user.CanViewReport(report) {
		c.JSON(http.StatusForbidden, gin.H{"error": "report access denied"})
		return false
	}
	return true
}

// dashboardSummaryHandler backs the headline cards on the invoice listing.
// It is dashboard data, not a managed report, so the per-report grants do
// not apply.
func dashboardSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := reports.GetDashboardSummary(c.Request.Context())
		if err != nil {
			respondError(c, "dashboardSummaryHandler", err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func proactivityReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireReportAccess(c, models.ReportProactivity) {
			return
		}
		report, err := reports.GetProactivityReport(c.Request.Context())
		if err != nil {
			respondError(c, "proactivityReportHandler", err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func motiveRankingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireReportAccess(c, models.ReportMotives) {
			return
		}
		ranking, err := reports.GetMotiveRanking(c.Request.Context())
		if err != nil {
			respondError(c, "motiveRankingHandler", err)
			return
		}
		c.JSON(http.StatusOK, ranking)
	}
}

// exportReportsHandler streams both report sheets as a single xlsx download.
// The export carries the same data as the JSON endpoints, so it requires
// access to both reports.
func exportReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireReportAccess(c, models.ReportProactivity) {
			return
		}
		if !requireReportAccess(c, models.ReportMotives) {
			return
		}

		f, err := reports.BuildReportsWorkbook(c.Request.Context())
		if err != nil {
			respondError(c, "exportReportsHandler", err)
			return
		}
		defer f.Close()

		filename := fmt.Sprintf("relatorios-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		if err := f.Write(c.Writer); err != nil {
			respondError(c, "exportReportsHandler", err)
			return
		}
	}
}

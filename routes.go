package main

import (
	"github.com/gin-gonic/gin"

	"github.com/mmdatafocus/notas_backend/middlewares"
)

func registerRoutes(r *gin.Engine) {
	r.POST("/login", loginHandler())

	auth := r.Group("/", middlewares.RequireAuth())
	auth.POST("/logout", logoutHandler())

	auth.GET("/invoices", listInvoicesHandler())
	auth.POST("/invoices", createInvoiceHandler())
	auth.GET("/invoices/:id", getInvoiceHandler())
	auth.PUT("/invoices/:id/observations", updateObservationsHandler())
	auth.POST("/invoices/:id/inconsistencies/:incId/resolve", resolveInconsistencyHandler())
	auth.POST("/invoices/:id/inconsistencies/:incId/undo", undoResolutionHandler())
	auth.POST("/invoices/:id/inconsistencies/:incId/reassign", reassignAreaHandler())
	auth.POST("/invoices/:id/areas/:areaId/notify", notifyAreaHandler())

	auth.GET("/areas", listAreasHandler())
	auth.POST("/areas", createAreaHandler())
	auth.GET("/areas/:id", getAreaHandler())
	auth.PUT("/areas/:id", updateAreaHandler())
	auth.DELETE("/areas/:id", deleteAreaHandler())

	auth.GET("/users", listUsersHandler())
	auth.POST("/users", createUserHandler())
	auth.GET("/users/:id", getUserHandler())
	auth.PUT("/users/:id", updateUserHandler())
	auth.DELETE("/users/:id", deleteUserHandler())

	auth.GET("/reports/summary", dashboardSummaryHandler())
	auth.GET("/reports/proactivity", proactivityReportHandler())
	auth.GET("/reports/motives", motiveRankingHandler())
	auth.GET("/reports/export", exportReportsHandler())
}

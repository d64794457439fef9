package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mmdatafocus/notas_backend/models"
	"github.com/mmdatafocus/notas_backend/workflow"
)

// listInvoicesHandler serves the dashboard listing: the filter narrows the
// collection, then the page is cut out of the filtered sequence. Query
// params: company, nfe_number, start_date, end_date (YYYY-MM-DD inclusive),
// status (all|pending|resolved), page, page_size.
func listInvoicesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := &models.InvoiceFilter{
			Company:   c.Query("company"),
			NfeNumber: c.Query("nfe_number"),
		}

		if s := c.Query("start_date"); s != "" {
			t, err := models.ParseDate(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
				return
			}
			filter.StartDate = &t
		}
		if s := c.Query("end_date"); s != "" {
			t, err := models.ParseDate(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
				return
			}
			filter.EndDate = &t
		}

		status, err := models.ParseInvoiceStatusFilter(c.DefaultQuery("status", "all"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be all, pending or resolved"})
			return
		}
		filter.Status = status

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

		result, err := models.ListInvoices(c.Request.Context(), filter, page, pageSize)
		if err != nil {
			respondError(c, "listInvoicesHandler", err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func getInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathParamInt(c, "id")
		if !ok {
			return
		}
		invoice, err := models.GetInvoice(c.Request.Context(), id)
		if err != nil {
			respondError(c, "getInvoiceHandler", err)
			return
		}
		c.JSON(http.StatusOK, invoice)
	}
}

func createInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInvoice
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		invoice, err := models.CreateInvoice(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "createInvoiceHandler", err)
			return
		}
		c.JSON(http.StatusCreated, invoice)
	}
}

type observationsRequest struct {
	Observations string `json:"observations"`
}

func updateObservationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathParamInt(c, "id")
		if !ok {
			return
		}
		var req observationsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		invoice, err := models.UpdateInvoiceObservations(c.Request.Context(), id, req.Observations)
		if err != nil {
			respondError(c, "updateObservationsHandler", err)
			return
		}
		c.JSON(http.StatusOK, invoice)
	}
}

type resolveRequest struct {
	SolutionNotes string `json:"solution_notes"`
}

func resolveInconsistencyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		invoiceId, ok := pathParamInt(c, "id")
		if !ok {
			return
		}
		incId, ok := pathParamInt(c, "incId")
		if !ok {
			return
		}
		var req resolveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		invoice, err := workflow.ResolveInconsistency(c.Request.Context(), invoiceId, incId, req.SolutionNotes)
		if err != nil {
			respondError(c, "resolveInconsistencyHandler", err)
			return
		}
		c.JSON(http.StatusOK, invoice)
	}
}

func undoResolutionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		invoiceId, ok := pathParamInt(c, "id")
		if !ok {
			return
		}
		incId, ok := pathParamInt(c, "incId")
		if !ok {
			return
		}

		invoice, stagedNote, err := workflow.UndoResolution(c.Request.Context(), invoiceId, incId)
		if err != nil {
			respondError(c, "undoResolutionHandler", err)
			return
		}
		// The cleared note comes back so the client can pre-fill the next
		// resolution attempt with it.
		c.JSON(http.StatusOK, gin.H{
			"invoice":     invoice,
			"staged_note": stagedNote,
		})
	}
}

type reassignRequest struct {
	AreaId int `json:"area_id" binding:"required"`
}

func reassignAreaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		invoiceId, ok := pathParamInt(c, "id")
		if !ok {
			return
		}
		incId, ok := pathParamInt(c, "incId")
		if !ok {
			return
		}
		var req reassignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "area_id is required"})
			return
		}

		invoice, err := workflow.ReassignArea(c.Request.Context(), invoiceId, incId, req.AreaId)
		if err != nil {
			respondError(c, "reassignAreaHandler", err)
			return
		}
		c.JSON(http.StatusOK, invoice)
	}
}

func notifyAreaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		invoiceId, ok := pathParamInt(c, "id")
		if !ok {
			return
		}
		areaId, ok := pathParamInt(c, "areaId")
		if !ok {
			return
		}

		record, err := models.NotifyArea(c.Request.Context(), invoiceId, areaId)
		if err != nil {
			respondError(c, "notifyAreaHandler", err)
			return
		}
		// 202: the record is committed but delivery happens asynchronously.
		c.JSON(http.StatusAccepted, record)
	}
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmdatafocus/notas_backend/models"
)

func listAreasHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		areas, err := models.GetAreas(c.Request.Context())
		if err != nil {
			respondError(c, "listAreasHandler", err)
			return
		}
		c.JSON(http.StatusOK, areas)
	}
}

func getAreaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathParamInt(c, "id")
		if !ok {
			return
		}
		area, err := models.GetArea(c.Request.Context(), id)
		if err != nil {
			respondError(c, "getAreaHandler", err)
			return
		}
		c.JSON(http.StatusOK, area)
	}
}

func createAreaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewArea
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		area, err := models.CreateArea(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "createAreaHandler", err)
			return
		}
		c.JSON(http.StatusCreated, area)
	}
}

func updateAreaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathParamInt(c, "id")
		if !ok {
			return
		}
		var input models.NewArea
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		area, err := models.UpdateArea(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, "updateAreaHandler", err)
			return
		}
		c.JSON(http.StatusOK, area)
	}
}

func deleteAreaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathParamInt(c, "id")
		if !ok {
			return
		}
		area, err := models.DeleteArea(c.Request.Context(), id)
		if err != nil {
			respondError(c, "deleteAreaHandler", err)
			return
		}
		c.JSON(http.StatusOK, area)
	}
}

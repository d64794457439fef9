package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mmdatafocus/notas_backend/config"
	"github.com/mmdatafocus/notas_backend/utils"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Anything
// unrecognized is a 500 and gets logged with full context; the client only
// sees a generic message.
func respondError(c *gin.Context, funcName string, err error) {
	var validationErr *utils.ValidationError
	var permissionErr *utils.PermissionError
	var stateErr *utils.StateError

	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Reason})
	case errors.As(err, &permissionErr):
		c.JSON(http.StatusForbidden, gin.H{"error": permissionErr.Reason})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Reason})
	default:
		config.LogError(config.GetLogger(), "api", funcName, c.Request.URL.Path, nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func pathParamInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return v, true
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skills4mind/events-api/internal/helpers"
	"github.com/skills4mind/events-api/internal/models"
)

// respondError maps the service error taxonomy to HTTP status codes.
// Unexpected failures are 500s with the underlying message passed
// through to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, helpers.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, helpers.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, helpers.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, helpers.ErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, helpers.FailureResponse("unexpected error", err))
	}
}

// controllers/errors.go
package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dracohq/seller_backend/apperrors"
	"github.com/dracohq/seller_backend/models"
)

// respondError maps the expected failure kinds to client responses; anything
// unclassified surfaces as a server error.
func respondError(c echo.Context, err error) error {
	switch {
	case apperrors.IsNotFound(err):
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: err.Error(),
		})
	case apperrors.IsConflict(err):
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: err.Error(),
		})
	case apperrors.IsInvalidState(err):
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: err.Error(),
		})
	case apperrors.IsValidation(err):
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		c.Logger().Errorf("Internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

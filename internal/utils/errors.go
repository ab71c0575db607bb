package utils

import (
	"errors"
	"net/http"

	"github.com/proman-app/proman/internal/api/dto/common"
	"github.com/proman-app/proman/internal/logging"
	"github.com/proman-app/proman/internal/service"

	"github.com/gin-gonic/gin"
)

// deniedMessage is shared by permission and not-found failures on gated
// resources so a denied request never reveals which check rejected it, nor
// whether the resource exists.
const deniedMessage = "You do not have access to this resource"

// HandleDenied sends the uniform permission-denied response.
func HandleDenied(c *gin.Context) {
	c.JSON(http.StatusForbidden, common.NewErrorResponse(common.ErrCodeForbidden, deniedMessage, nil))
}

// HandleServiceError maps a service-layer error onto the API response
// contract.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied), errors.Is(err, service.ErrNotFound):
		HandleDenied(c)
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, "Invalid request", nil))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, common.NewErrorResponse(common.ErrCodeConflict, "Resource already exists", nil))
	default:
		HandleInternalError(c, err, "An error occurred")
	}
}

// HandleInternalError logs the error and sends a generic internal response.
// Error details are only exposed outside release mode.
func HandleInternalError(c *gin.Context, err error, message string) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		http.StatusInternalServerError,
		message,
		err,
	)

	var details interface{}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, common.NewErrorResponse(common.ErrCodeInternalServer, message, details))
}

// HandleBadRequest sends a validation-failure response for malformed input.
func HandleBadRequest(c *gin.Context, err error) {
	var details interface{}
	if err != nil {
		details = err.Error()
	}
	c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeBadRequest, "Invalid request body", details))
}

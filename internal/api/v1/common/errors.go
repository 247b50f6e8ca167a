package common

import (
	"errors"
	"net/http"

	"teamprompt/internal/pack"
	"teamprompt/internal/repository"
	"teamprompt/internal/services"
	"teamprompt/internal/storage"
	"teamprompt/internal/utils"
	"teamprompt/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusFor maps core errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInvalid), errors.Is(err, pack.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrHostRejected):
		return http.StatusBadGateway
	case storage.IsFault(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err in the standard envelope. Server-side failures are
// logged; client errors are not.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
	}

	var blocked *services.BlockedError
	if errors.As(err, &blocked) {
		c.JSON(status, utils.NewResponse(status, err.Error(), blocked.Report))
		return
	}
	c.JSON(status, utils.NewErrorResponse(status, err.Error()))
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/SscSPs/municipal_tax_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// callerOrAbort returns the verified caller, answering 401 when auth did not run.
func callerOrAbort(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: "Unauthorized"})
		return domain.Caller{}, false
	}
	return caller, true
}

// respondBindError answers a request whose body or query failed binding.
func respondBindError(c *gin.Context, op string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request for "+op, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation_error", Message: "Invalid request format: " + err.Error()})
}

// respondError maps a service error to its status and stable kind.
func respondError(c *gin.Context, op string, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error(op+" failed", slog.String("error", err.Error()))
	} else {
		logger.Warn(op+" rejected", slog.String("kind", apperrors.KindOf(err)), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.NewErrorResponse(err))
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/dto"
	"github.com/SscSPs/workspace_chat_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes the status and message matching err's kind. Expected failures are
// logged at warn, everything else at error.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.Int("status", status), slog.String("reason", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Error: apperrors.PublicMessage(err)})
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// callerID returns the authenticated user or writes 401.
func callerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

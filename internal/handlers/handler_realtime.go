package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/middleware"
	"github.com/SscSPs/workspace_chat_app/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// realtimeHandler upgrades members to a websocket subscribed to their workspace's events.
type realtimeHandler struct {
	access   portssvc.AccessPolicySvc
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// RegisterRealtimeRoutes registers the websocket endpoint. Browser origins must appear in
// allowedOrigins; requests without an Origin header (non-browser clients) are accepted.
func RegisterRealtimeRoutes(rg *gin.RouterGroup, access portssvc.AccessPolicySvc, hub *realtime.Hub, allowedOrigins []string) {
	h := &realtimeHandler{
		access: access,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
	rg.GET("/workspaces/:workspace_id/ws", h.subscribe)
}

// subscribe godoc
// @Summary Subscribe to workspace events
// @Description Upgrades to a websocket that receives message and roster events as JSON frames.
// @Description Browsers pass the bearer token in the access_token query parameter.
// @Tags realtime
// @Param   workspace_id path string true "Workspace ID"
// @Success 101 "Switching Protocols"
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/ws [get]
func (h *realtimeHandler) subscribe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	workspaceID := c.Param("workspace_id")

	if _, err := h.access.AuthorizeUserAction(c.Request.Context(), userID, workspaceID, domain.CapReadMessages); err != nil {
		respondError(c, err, "Websocket subscription denied")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to upgrade connection", slog.String("error", err.Error()))
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Websocket subscribed", slog.String("workspace_id", workspaceID))

	realtime.NewClient(h.hub, conn, workspaceID, userID).Serve()
}

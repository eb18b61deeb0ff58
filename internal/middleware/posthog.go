package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/workspace_chat_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedRoutes are route patterns never reported to PostHog.
var untrackedRoutes = map[string]bool{
	"/health":                             true,
	"/api/v1/workspaces/:workspace_id/ws": true,
}

// PosthogMiddleware reports every successful authenticated API call as a PostHog event
// named after its route, e.g. "workspaces.:workspace_id.messages POST".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untrackedRoutes[c.FullPath()] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := routeEventName(c.FullPath(), c.Request.Method)
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if workspaceID := c.Param("workspace_id"); workspaceID != "" {
			props["workspace_id"] = workspaceID
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

func routeEventName(fullPath, method string) string {
	route := strings.TrimPrefix(fullPath, "/api/v1/")
	route = strings.Trim(route, "/")
	if route == "" {
		return ""
	}
	return strings.ReplaceAll(route, "/", ".") + " " + method
}

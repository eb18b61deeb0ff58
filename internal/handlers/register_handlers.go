package handlers

import (
	"net/http"

	"github.com/SscSPs/workspace_chat_app/cmd/docs"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/middleware"
	"github.com/SscSPs/workspace_chat_app/internal/platform/config"
	"github.com/SscSPs/workspace_chat_app/internal/realtime"
	"github.com/SscSPs/workspace_chat_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps groups the collaborators the router needs besides the services.
type RouteDeps struct {
	Hub     *realtime.Hub
	Limiter *limiter.Limiter
	Posthog *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}
	if deps.Limiter != nil {
		chain = append(chain, middleware.RateLimit(deps.Limiter))
	}
	chain = append(chain, middleware.PosthogMiddleware(deps.Posthog))
	v1 := r.Group("/api/v1", chain...)

	RegisterWorkspaceRoutes(v1, services.Workspace, services.Membership)
	RegisterMessageRoutes(v1, services.Message, services.ReadLedger)
	if deps.Hub != nil {
		RegisterRealtimeRoutes(v1, services.Access, deps.Hub, cfg.CORSAllowedOrigins)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package handlers

import (
	"github.com/SscSPs/restaurant_supply_app/cmd/docs"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/middleware"
	"github.com/SscSPs/restaurant_supply_app/internal/platform/config"
	"github.com/SscSPs/restaurant_supply_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouterOptions carries the optional pieces of the router.
type RouterOptions struct {
	// Metrics, when set, is served at /metrics.
	Metrics *metrics.Metrics
	// APILimiter, when set, rate limits every /api/v1 request per client IP.
	APILimiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouterOptions,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	if opts.Metrics != nil {
		r.GET("/metrics", opts.Metrics.Handler())
	}

	// Register public authentication routes
	registerAuthRoutes(r, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, opts)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	opts RouterOptions,
) {
	var chain []gin.HandlerFunc
	if opts.APILimiter != nil {
		chain = append(chain, middleware.RateLimit(opts.APILimiter))
	}
	chain = append(chain,
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.ActorMiddleware(service.User),
	)
	v1 := r.Group("/api/v1", chain...)

	registerUserRoutes(v1, service.User)
	registerInviteRoutes(v1, service.Invite)
	registerOrganizationRoutes(v1, service.Organization)
	registerProductRoutes(v1, service.Catalog, service.Stock)
	registerProviderRoutes(v1, service.Catalog)
	registerOrderRoutes(v1, service.Order, service.Fulfillment)
	registerDashboardRoutes(v1, service.Dashboard)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package handlers

import (
	"fmt"

	"github.com/SscSPs/p2p_ledger/cmd/docs"
	portssvc "github.com/SscSPs/p2p_ledger/internal/core/ports/services"
	"github.com/SscSPs/p2p_ledger/internal/middleware"
	"github.com/SscSPs/p2p_ledger/internal/platform/config"
	"github.com/SscSPs/p2p_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// authRateLimit guards login and registration against credential stuffing.
const authRateLimit = "5-M"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// posthogClient may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	registerValidators()

	// Add health check route
	r.GET("/health", getHealth)

	authLimiter, err := middleware.NewRateLimiter(authRateLimit)
	if err != nil {
		return err
	}
	apiLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("RATE_LIMIT: %w", err)
	}

	// Register public authentication routes
	registerAuthRoutes(r, middleware.GinMiddlewarize(authLimiter), services.User)
	registerCurrencyRoutes(r.Group("/api/v1"), services.Currency)

	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(apiLimiter), posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 routes.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	limit gin.HandlerFunc,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		limit,
		middleware.PosthogMiddleware(posthogClient),
	)

	registerUserRoutes(v1, service.User)
	RegisterLedgerRoutes(v1, service.Ledger, posthogClient)
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

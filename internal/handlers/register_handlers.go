package handlers

import (
	"fmt"

	"github.com/SscSPs/bizdoc_app/cmd/docs"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/middleware"
	"github.com/SscSPs/bizdoc_app/internal/platform/config"
	"github.com/SscSPs/bizdoc_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	if err := RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	r.GET("/health", getHealth)

	if err := setupPublicRoutes(r, cfg, services); err != nil {
		return err
	}

	setupAPIV1Routes(r, cfg, services, posthogClient)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupPublicRoutes configures the rate limited recipient routes. They carry no authentication.
func setupPublicRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	limiterInstance, err := middleware.NewRateLimiter(cfg.PublicRateLimit)
	if err != nil {
		return err
	}
	public := r.Group("/public", middleware.RateLimit(limiterInstance))
	registerPublicRoutes(public, services.PublicDocument)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	authOpts := []middleware.AuthOption{middleware.WithIssuer(cfg.JWTIssuer)}
	if cfg.DemoMode && cfg.DemoUserID != "" {
		authOpts = append(authOpts, middleware.WithDemoIdentity(cfg.DemoUserID))
	}

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, authOpts...), middleware.PosthogMiddleware(posthogClient))

	registerDocumentRoutes(v1, services.Document, posthogClient)
	registerAuditRoutes(v1, services.Audit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

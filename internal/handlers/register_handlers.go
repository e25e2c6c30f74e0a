package handlers

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
	"github.com/veloxline/reception_backend/internal/middleware"
	"github.com/veloxline/reception_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	registrationLimiter *limiter.Limiter,
) {
	registerCustomValidations()

	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, registrationLimiter)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidations wires the siteident rule into gin's binding
// validator: a site identifier must carry an http(s) scheme because it doubles
// as the base for provider-side callback URLs.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("siteident", func(fl validator.FieldLevel) bool {
			return strings.HasPrefix(fl.Field().String(), "http")
		})
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	registrationLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")

	// Registration is public; it is the route that issues credentials. Each
	// call can fan out into paid provider requests, hence the rate limit.
	public := v1.Group("", middleware.RateLimit(registrationLimiter))
	registerRegistrationRoutes(public, services.Registration, cfg.IsProduction)

	// Everything else requires the account token issued at registration.
	authed := v1.Group("", middleware.AccountTokenAuth(services.Account))
	registerAccountRoutes(authed)
	registerChatRoutes(authed, services.Chat)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

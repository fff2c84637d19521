package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"career-relay/internal/api/handlers"
	"career-relay/internal/api/middleware"
	"career-relay/internal/api/validation"
	"career-relay/internal/config"
)

// Service is what the routes need from the dispatcher
type Service interface {
	handlers.CareerService
	handlers.ProviderStatus
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, service Service) {
	e.Validator = &validation.EchoValidator{Validator: validation.New()}

	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig(cfg))
	e.Use(middleware.RequestValidation(cfg.Server.MaxBodyBytes))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(service))
		health.GET("/live", handlers.LivenessHandler)
	}

	e.GET("/status", handlers.StatusHandler(service))

	// Unversioned paths are the ones the web client calls
	registerCareerRoutes(e, service)
	registerCareerRoutes(e.Group("/api/v1"), service)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Career Relay",
			"version": handlers.Version,
			"status":  "running",
		})
	})
}

// routeRegistrar is satisfied by both *echo.Echo and *echo.Group
type routeRegistrar interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func registerCareerRoutes(g routeRegistrar, service handlers.CareerService) {
	g.POST("/recommendations", handlers.RecommendationsHandler(service))
	g.POST("/chat", handlers.ChatHandler(service))
	g.GET("/market-trends", handlers.MarketTrendsHandler(service))
}

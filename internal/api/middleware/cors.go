package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"career-relay/internal/config"
)

// CORSConfig returns CORS middleware restricted to the configured frontend origins.
// Requested headers are reflected back since AllowHeaders is left empty.
func CORSConfig(cfg *config.Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           86400, // 24 hours
	})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"career-relay/internal/api/middleware"
	"career-relay/internal/logging"
	"career-relay/pkg/models"
)

// Version is reported by the health endpoints
const Version = "1.0.0"

var startTime = time.Now()

// ProviderStatus reports on the completion provider
type ProviderStatus interface {
	IsHealthy() bool
	GetProviderName() string
}

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logging.GetGlobalLogger().Debug("Health check requested", map[string]interface{}{
		"request_id": middleware.GetRequestID(c),
	})

	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	})
}

// ReadinessHandler reports ready only when the completion provider is usable
func ReadinessHandler(status ProviderStatus) echo.HandlerFunc {
	return func(c echo.Context) error {
		logging.GetGlobalLogger().Debug("Readiness check requested", map[string]interface{}{
			"request_id": middleware.GetRequestID(c),
		})

		llmCheck, code, state := "ok", http.StatusOK, "ready"
		if !status.IsHealthy() {
			llmCheck, code, state = "unavailable", http.StatusServiceUnavailable, "not_ready"
		}

		return c.JSON(code, models.HealthResponse{
			Status:    state,
			Timestamp: time.Now(),
			Version:   Version,
			Uptime:    time.Since(startTime),
			Checks: map[string]string{
				"api":          "ok",
				"llm":          llmCheck,
				"llm_provider": status.GetProviderName(),
			},
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
	})
}

// StatusHandler provides service status including the active provider
func StatusHandler(status ProviderStatus) echo.HandlerFunc {
	return func(c echo.Context) error {
		llmState := "operational"
		if !status.IsHealthy() {
			llmState = "degraded"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   Version,
			Uptime:    time.Since(startTime),
			Checks: map[string]string{
				"api":          "operational",
				"llm":          llmState,
				"llm_provider": status.GetProviderName(),
			},
		})
	}
}

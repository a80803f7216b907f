package handlers

import (
	"context"
	"net/http"
	"time"

	"challanmart/internal/caching"
	"challanmart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check endpoints.
type HealthHandlers struct {
	db       repositories.DBTX
	cacheSvc caching.CacheService
}

// NewHealthHandlers creates a new health handlers instance.
func NewHealthHandlers(db repositories.DBTX, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc}
}

// HealthCheck handles GET /health-check
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

// ReadinessCheck handles GET /health/ready. Postgres is the only
// critical dependency; a degraded cache only costs latency.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	services := map[string]string{"database": "healthy", "redis": "healthy"}

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		services["redis"] = "unhealthy"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"services":  services,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

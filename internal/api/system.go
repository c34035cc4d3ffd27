// internal/api/system.go health and metrics endpoints
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// initSystemRoutes registers operational endpoints
func (c *Controller) initSystemRoutes() {
	if c.metrics != nil {
		handler := promhttp.HandlerFor(c.metrics.Registry, promhttp.HandlerOpts{})
		c.Group.GET("/metrics", echo.WrapHandler(handler))
	}
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

// HealthCheck handles GET /health
func (c *Controller) HealthCheck(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, healthResponse{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
	})
}

// internal/api/countries.go country catalog proxy
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// initCountryRoutes registers the country catalog route
func (c *Controller) initCountryRoutes() {
	c.Group.GET("/countries", c.GetCountries)
}

// GetCountries handles GET /countries. Unlike the image endpoints
// there is no fallback catalog, so an upstream failure surfaces as 502.
func (c *Controller) GetCountries(ctx echo.Context) error {
	countries, err := c.Countries.FetchAll(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "Failed to fetch countries", http.StatusBadGateway)
	}
	return ctx.JSON(http.StatusOK, countries)
}

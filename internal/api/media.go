// internal/api/media.go image resolution endpoints
//
// These endpoints validate their parameters and nothing else: once the
// query is present the aggregator guarantees a usable URL, so the only
// non-200 outcome is a missing parameter.
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// initMediaRoutes registers image resolution routes
func (c *Controller) initMediaRoutes() {
	c.Group.GET("/country-image", c.GetCountryImage)
	c.Group.GET("/city-image", c.GetCityImage)
	c.Group.GET("/place-gallery", c.GetPlaceGallery)
}

// imageResponse carries a single resolved image URL.
type imageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// galleryResponse carries a resolved gallery.
type galleryResponse struct {
	Images []string `json:"images"`
}

// GetCountryImage handles GET /country-image?country=
func (c *Controller) GetCountryImage(ctx echo.Context) error {
	country := strings.TrimSpace(ctx.QueryParam("country"))
	if country == "" {
		return c.HandleError(ctx, nil, "Missing country parameter", http.StatusBadRequest)
	}

	url := c.Images.ResolveSingleImage(ctx.Request().Context(), "country", country)
	return ctx.JSON(http.StatusOK, imageResponse{ImageURL: url})
}

// GetCityImage handles GET /city-image?city=&country=
func (c *Controller) GetCityImage(ctx echo.Context) error {
	city := strings.TrimSpace(ctx.QueryParam("city"))
	if city == "" {
		return c.HandleError(ctx, nil, "Missing city parameter", http.StatusBadRequest)
	}

	query := city
	if country := strings.TrimSpace(ctx.QueryParam("country")); country != "" {
		query = city + " " + country
	}

	url := c.Images.ResolveSingleImage(ctx.Request().Context(), "city", query)
	return ctx.JSON(http.StatusOK, imageResponse{ImageURL: url})
}

// GetPlaceGallery handles GET /place-gallery?query=
func (c *Controller) GetPlaceGallery(ctx echo.Context) error {
	query := strings.TrimSpace(ctx.QueryParam("query"))
	if query == "" {
		return c.HandleError(ctx, nil, "Missing query parameter", http.StatusBadRequest)
	}

	images := c.Images.ResolveGallery(ctx.Request().Context(), query)
	return ctx.JSON(http.StatusOK, galleryResponse{Images: images})
}

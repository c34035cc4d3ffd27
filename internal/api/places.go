// internal/api/places.go place listing and detail endpoints
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/roamly/roamly/internal/errors"
	"github.com/roamly/roamly/internal/places"
)

// initPlaceRoutes registers place-related routes
func (c *Controller) initPlaceRoutes() {
	c.Group.GET("/places", c.GetPlaces)
	c.Group.GET("/places/:id", c.GetPlace)
}

// GetPlaces handles GET /places
func (c *Controller) GetPlaces(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	filter := places.ListFilter{
		Country: ctx.QueryParam("country"),
		Search:  ctx.QueryParam("search"),
	}

	result := c.Places.ListPlaces(filter, ctx.QueryParam("sort"), page, limit)
	return ctx.JSON(http.StatusOK, result)
}

// GetPlace handles GET /places/:id
func (c *Controller) GetPlace(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return c.HandleError(ctx, err, "Invalid place ID", http.StatusBadRequest)
	}

	detail, err := c.Places.GetPlaceDetail(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, places.ErrPlaceNotFound) {
			return c.HandleError(ctx, err, "Place not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to get place", statusForCategory(err))
	}

	return ctx.JSON(http.StatusOK, detail)
}

package api

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/roamly/internal/places"
)

func TestGetPlaces_ReturnsListing(t *testing.T) {
	c, _ := newTestController(t)

	rec := request(t, c, http.MethodGet, "/places", "", c.GetPlaces)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body places.ListResult
	decodeJSON(t, rec, &body)
	assert.Equal(t, 3, body.Total)
	assert.False(t, body.HasMore)
	assert.Len(t, body.Places, 3)
}

func TestGetPlaces_FiltersAndPaginates(t *testing.T) {
	c, _ := newTestController(t)

	rec := request(t, c, http.MethodGet, "/places?country=japan&limit=1&page=1", "", c.GetPlaces)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body places.ListResult
	decodeJSON(t, rec, &body)
	assert.Equal(t, 2, body.Total)
	assert.True(t, body.HasMore)
	require.Len(t, body.Places, 1)
}

func TestGetPlace_Success(t *testing.T) {
	c, _ := newTestController(t)

	rec := request(t, c, http.MethodGet, "/places/0", "", c.GetPlace,
		func(req *http.Request, ctx echo.Context) {
			ctx.SetParamNames("id")
			ctx.SetParamValues("0")
		})

	assert.Equal(t, http.StatusOK, rec.Code)
	var body places.PlaceDetail
	decodeJSON(t, rec, &body)
	assert.Equal(t, "Paris", body.Name)
	assert.NotEmpty(t, body.Description)
}

func TestGetPlace_NotFound(t *testing.T) {
	c, _ := newTestController(t)

	rec := request(t, c, http.MethodGet, "/places/99", "", c.GetPlace,
		func(req *http.Request, ctx echo.Context) {
			ctx.SetParamNames("id")
			ctx.SetParamValues("99")
		})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	decodeJSON(t, rec, &body)
	assert.Equal(t, "Place not found", body.Message)
	assert.NotEmpty(t, body.CorrelationID)
}

func TestGetPlace_InvalidID(t *testing.T) {
	c, _ := newTestController(t)

	rec := request(t, c, http.MethodGet, "/places/abc", "", c.GetPlace,
		func(req *http.Request, ctx echo.Context) {
			ctx.SetParamNames("id")
			ctx.SetParamValues("abc")
		})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

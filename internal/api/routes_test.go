package api

import (
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/roamly/roamly/internal/conf"
	"github.com/roamly/roamly/internal/countries"
	"github.com/roamly/roamly/internal/imageprovider"
	"github.com/roamly/roamly/internal/placemeta"
	"github.com/roamly/roamly/internal/places"
	"github.com/roamly/roamly/internal/security"
)

// newRoutedServer builds a fully wired controller the way the server
// does, so requests travel through the real router.
func newRoutedServer(t *testing.T) *echo.Echo {
	t.Helper()
	t.Chdir(t.TempDir()) // keep log files out of the package directory

	ds := newMockDataStore()
	settings := &conf.Settings{}
	settings.Session.Secret = "test-secret"
	settings.Session.Duration = 3600

	e := echo.New()
	images := imageprovider.NewAggregator(nil,
		imageprovider.WithSelector(imageprovider.NewSelector(1)))
	c := New(e, ds, settings, images,
		places.NewService(testCities(), nil, ds),
		countries.NewClient(),
		placemeta.NewClient(placemeta.Config{}),
		security.NewSessionManager(&settings.Session),
		nil, log.New(testWriter{t}, "", 0), true)
	t.Cleanup(c.Shutdown)
	return e
}

// The frontend fetches /places, /country-image and friends without any
// path prefix, so every endpoint must be registered at the site root.
func TestRoutes_ServedAtRoot(t *testing.T) {
	e := newRoutedServer(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"places list", http.MethodGet, "/places", "", http.StatusOK},
		{"place detail", http.MethodGet, "/places/1", "", http.StatusOK},
		{"country image missing param", http.MethodGet, "/country-image", "", http.StatusBadRequest},
		{"city image missing param", http.MethodGet, "/city-image", "", http.StatusBadRequest},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"chat empty message", http.MethodPost, "/chat", `{"message":""}`, http.StatusBadRequest},
		{"comments", http.MethodGet, "/comments/paris-fr", "", http.StatusOK},
		{"prefixed path is not found", http.MethodGet, "/api/places", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.body != "" {
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

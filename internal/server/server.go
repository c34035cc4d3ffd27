// Package server wires the application together and runs the HTTP server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roamly/roamly/internal/api"
	"github.com/roamly/roamly/internal/conf"
	"github.com/roamly/roamly/internal/countries"
	"github.com/roamly/roamly/internal/datastore"
	"github.com/roamly/roamly/internal/imageprovider"
	"github.com/roamly/roamly/internal/logging"
	"github.com/roamly/roamly/internal/observability"
	"github.com/roamly/roamly/internal/placemeta"
	"github.com/roamly/roamly/internal/places"
	"github.com/roamly/roamly/internal/security"
)

const shutdownTimeout = 10 * time.Second

// Run starts the web server and blocks until SIGINT/SIGTERM.
func Run(settings *conf.Settings) error {
	logging.Init(settings.Debug)

	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error("Failed to close datastore", "error", err)
		}
	}()

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	providers := buildProviders(settings)
	aggregator := imageprovider.NewAggregator(providers,
		imageprovider.WithMetrics(metrics.Aggregator))

	metaClient := placemeta.NewClient(placemeta.Config{
		APIKey: settings.Providers.Gemini.APIKey,
		Model:  settings.Providers.Gemini.Model,
	})
	if !metaClient.Configured() {
		logging.Warn("Gemini API key not configured, place metadata will use fallback descriptions")
	}

	cities, err := places.LoadCities()
	if err != nil {
		return fmt.Errorf("failed to load city dataset: %w", err)
	}
	placeService := places.NewService(cities, metaClient, store)
	placeService.PrimeMetadataCache()

	sessions := security.NewSessionManager(&settings.Session)
	countryClient := countries.NewClient()

	e := echo.New()
	e.HideBanner = true

	controller := api.New(e, store, settings, aggregator, placeService,
		countryClient, metaClient, sessions, metrics, log.Default(), true)
	defer controller.Shutdown()

	addr := settings.WebServer.Host + ":" + settings.WebServer.Port

	errChan := make(chan error, 1)
	go func() {
		logging.Info("Starting web server",
			"address", addr,
			"providers", len(providers),
			"places", len(cities))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("web server failed: %w", err)
	case sig := <-quit:
		logging.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	if err := imageprovider.Close(); err != nil {
		logging.Error("Failed to close image provider logger", "error", err)
	}
	if err := placemeta.Close(); err != nil {
		logging.Error("Failed to close metadata logger", "error", err)
	}
	if err := places.Close(); err != nil {
		logging.Error("Failed to close places logger", "error", err)
	}
	return nil
}

// buildProviders creates the image provider set. Providers without
// credentials are still registered; they report unconfigured and the
// aggregator skips them.
func buildProviders(settings *conf.Settings) []imageprovider.Provider {
	providers := []imageprovider.Provider{
		imageprovider.NewUnsplashProvider(settings.Providers.Unsplash.AccessKey),
		imageprovider.NewPexelsProvider(settings.Providers.Pexels.APIKey),
		imageprovider.NewPixabayProvider(settings.Providers.Pixabay.APIKey),
	}

	configured := 0
	for _, p := range providers {
		if p.Configured() {
			configured++
			logging.Info("Image provider configured", "provider", p.Name())
		} else {
			logging.Warn("Image provider has no credentials, skipping", "provider", p.Name())
		}
	}
	if configured == 0 {
		logging.Warn("No image providers configured, all images will come from the fallback list")
	}

	return providers
}

// imageprovider.go: Package imageprovider resolves place names to image URLs
// by querying external image APIs with caching, rotation and fallback.
package imageprovider

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/roamly/roamly/internal/logging"
)

// Package-level logger specific to the image provider service
var (
	imageLogger     *slog.Logger
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "imageprovider.log")
	serviceLevelVar.Set(slog.LevelInfo)

	imageLogger, closeLogger, err = logging.NewFileLogger(logFilePath, "imageprovider", serviceLevelVar)
	if err != nil {
		log.Printf("Failed to initialize imageprovider file logger at %s: %v", logFilePath, err)
		// Fallback to a disabled logger to prevent nil panics
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		imageLogger = slog.New(fbHandler).With("service", "imageprovider")
		closeLogger = func() error { return nil }
	}
}

const (
	// requestTimeout bounds every outbound provider call so one slow
	// provider cannot stall a request indefinitely.
	requestTimeout = 10 * time.Second

	userAgent = "Roamly/1.0 (travel discovery; github.com/roamly/roamly)"

	// galleryPerProvider is how many results each provider contributes
	// to a gallery merge.
	galleryPerProvider = 3
)

// Sentinel errors used to classify provider responses. A miss and a
// rate-limit are expected conditions, not failures.
var (
	// ErrImageNotFound is returned when a provider responds correctly
	// but has no results for the query.
	ErrImageNotFound = errors.New("image not found")

	// ErrRateLimited is returned when a provider signals quota
	// exhaustion. The caller suspends the provider for a cooldown.
	ErrRateLimited = errors.New("provider rate limited")
)

// PlaceImage represents a resolved image for a place query.
type PlaceImage struct {
	URL      string
	Query    string
	Provider string
	CachedAt time.Time
}

// Provider defines the interface for fetching place images from an
// external API.
type Provider interface {
	// Name returns the provider identifier used for circuit breaker
	// state and logging.
	Name() string

	// Configured reports whether the provider has credentials. An
	// unconfigured provider is treated like an unavailable one.
	Configured() bool

	// Fetch resolves the query to a single image. It returns
	// ErrImageNotFound on an empty result set and ErrRateLimited on
	// quota exhaustion; any other error is a soft failure.
	Fetch(ctx context.Context, query string) (PlaceImage, error)

	// FetchGallery returns up to limit image URLs for the query.
	FetchGallery(ctx context.Context, query string, limit int) ([]string, error)
}

// Close releases the package log writer.
func Close() error {
	if closeLogger != nil {
		return closeLogger()
	}
	return nil
}

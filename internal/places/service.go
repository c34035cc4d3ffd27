// service.go: place listing and enrichment on top of the static dataset.
package places

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roamly/roamly/internal/datastore"
	"github.com/roamly/roamly/internal/errors"
	"github.com/roamly/roamly/internal/logging"
	"github.com/roamly/roamly/internal/placemeta"
)

// Package-level logger specific to the places service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar)
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "places.log")
	serviceLevelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "places", serviceLevelVar)
	if err != nil {
		log.Printf("Failed to initialize places file logger at %s: %v", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "places")
		closeLogger = func() error { return nil }
	}
}

const (
	// defaultPopulationFloor keeps the unfiltered listing to major
	// cities. The floor drops when a country filter is active so small
	// countries don't filter down to nothing.
	defaultPopulationFloor = 200000
	countryPopulationFloor = 25000

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PlaceSummary is one row of a place listing.
type PlaceSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"countryName"`
	CountryCode string  `json:"country"`
	Population  int     `json:"population"`
	Rating      float64 `json:"rating"`
}

// PlaceDetail is the full enriched record for a place.
type PlaceDetail struct {
	PlaceSummary
	Description string `json:"description"`
	Currency    string `json:"currency"`
	Language    string `json:"language"`
}

// ListFilter narrows a place listing.
type ListFilter struct {
	Country string // country name or ISO code, case-insensitive
	Search  string // substring match on the place name
}

// ListResult is one page of a listing plus pagination state.
type ListResult struct {
	Places  []PlaceSummary `json:"places"`
	Total   int            `json:"total"`
	HasMore bool           `json:"hasMore"`
}

// ErrPlaceNotFound is returned for a place id outside the dataset.
var ErrPlaceNotFound = errors.Newf("place not found").
	Component("places").
	Category(errors.CategoryNotFound).
	Build()

// Service combines the static dataset, curated overrides, deterministic
// ratings and the metadata provider into place records. Place records
// are recomputed per request; only the metadata cache persists.
type Service struct {
	cities []City
	meta   *placemeta.Client
	store  datastore.Interface
}

// NewService creates the enrichment service. store may be nil, in which
// case generated metadata is not persisted across restarts.
func NewService(cities []City, meta *placemeta.Client, store datastore.Interface) *Service {
	return &Service{
		cities: cities,
		meta:   meta,
		store:  store,
	}
}

// PrimeMetadataCache loads previously persisted metadata rows into the
// provider's in-memory cache so a restart does not re-query the model.
func (s *Service) PrimeMetadataCache() {
	if s.store == nil || s.meta == nil {
		return
	}
	rows, err := s.store.GetAllPlaceDetails()
	if err != nil {
		logger.Warn("Failed to load persisted place metadata", "error", err)
		return
	}
	for i := range rows {
		s.meta.Prime(rows[i].PlaceName, rows[i].Country, placemeta.Metadata{
			Description: rows[i].Description,
			Currency:    rows[i].Currency,
			Language:    rows[i].Language,
		})
	}
	logger.Info("Primed metadata cache from datastore", "entries", len(rows))
}

// summarize builds the summary for a dataset entry, applying the
// curated rating when one exists.
func (s *Service) summarize(city *City) PlaceSummary {
	rating := Rating(city.Name)
	if override, ok := CuratedFor(city.Name); ok {
		rating = override.Rating
	}
	return PlaceSummary{
		ID:          city.ID,
		Name:        city.Name,
		Country:     city.Country,
		CountryCode: city.CountryCode,
		Population:  city.Population,
		Rating:      rating,
	}
}

// matchesCountry checks the filter against both the country name and
// the ISO code.
func matchesCountry(city *City, filter string) bool {
	return strings.EqualFold(city.Country, filter) || strings.EqualFold(city.CountryCode, filter)
}

// ListPlaces filters, rates, sorts and paginates the dataset. The whole
// pass is a linear in-memory scan; the dataset is small enough that a
// search index would be overkill.
func (s *Service) ListPlaces(filter ListFilter, sortKey string, page, limit int) ListResult {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	floor := defaultPopulationFloor
	if filter.Country != "" {
		floor = countryPopulationFloor
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]PlaceSummary, 0, len(s.cities))
	for i := range s.cities {
		city := &s.cities[i]
		if filter.Country != "" && !matchesCountry(city, filter.Country) {
			continue
		}
		if city.Population < floor {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(city.Name), search) {
			continue
		}
		filtered = append(filtered, s.summarize(city))
	}

	switch sortKey {
	case "name":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Name < filtered[j].Name
		})
	case "rating":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	default: // population
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Population > filtered[j].Population
		})
	}

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return ListResult{
		Places:  filtered[start:end],
		Total:   total,
		HasMore: end < total,
	}
}

// GetPlaceDetail looks up a place by its stable id and enriches it with
// generated metadata. Metadata failures degrade to curated or templated
// content; only an out-of-range id is an error.
func (s *Service) GetPlaceDetail(ctx context.Context, id int) (PlaceDetail, error) {
	if id < 0 || id >= len(s.cities) {
		return PlaceDetail{}, ErrPlaceNotFound
	}
	city := &s.cities[id]

	detail := PlaceDetail{
		PlaceSummary: s.summarize(city),
		Currency:     "Unknown",
		Language:     "Unknown",
	}

	meta, err := s.fetchMetadata(ctx, city)
	if err == nil {
		detail.Description = meta.Description
		if meta.Currency != "" {
			detail.Currency = meta.Currency
		}
		if meta.Language != "" {
			detail.Language = meta.Language
		}
		return detail, nil
	}

	// Metadata provider failed or is unconfigured; fall back to the
	// curated description when we have one, else a generic template.
	logger.Warn("Metadata unavailable, using fallback description",
		"place", city.Name,
		"error", err)
	if override, ok := CuratedFor(city.Name); ok {
		detail.Description = override.Description
	} else {
		detail.Description = fmt.Sprintf(
			"%s is a city in %s with a population of %d. A destination worth exploring.",
			city.Name, city.Country, city.Population)
	}
	return detail, nil
}

// fetchMetadata resolves metadata through the provider and persists a
// fresh result. The provider keeps its own in-memory cache.
func (s *Service) fetchMetadata(ctx context.Context, city *City) (placemeta.Metadata, error) {
	if s.meta == nil {
		return placemeta.Metadata{}, errors.Newf("metadata provider not available").
			Component("places").
			Category(errors.CategoryConfiguration).
			Build()
	}

	meta, err := s.meta.Fetch(ctx, city.Name, city.Country)
	if err != nil {
		return placemeta.Metadata{}, err
	}

	if s.store != nil {
		saveErr := s.store.SavePlaceDetails(&datastore.PlaceDetails{
			PlaceName:   city.Name,
			Country:     city.Country,
			Description: meta.Description,
			Currency:    meta.Currency,
			Language:    meta.Language,
		})
		if saveErr != nil {
			// Persistence is best-effort; the in-memory cache still has it.
			logger.Debug("Failed to persist place metadata", "place", city.Name, "error", saveErr)
		}
	}
	return meta, nil
}

// Close releases the package log writer.
func Close() error {
	if closeLogger != nil {
		return closeLogger()
	}
	return nil
}

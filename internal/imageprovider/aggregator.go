// aggregator.go: orchestrates cache, rotation, providers and fallback
package imageprovider

import (
	"context"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/roamly/roamly/internal/errors"
	"github.com/roamly/roamly/internal/observability/metrics"
)

// Aggregator resolves queries against a set of image providers. It
// never returns an error to its caller: every internal failure degrades
// to the next provider or to the static fallback list.
type Aggregator struct {
	providers []Provider
	breaker   *Breaker
	selector  *Selector
	cache     *gocache.Cache
	metrics   *metrics.AggregatorMetrics
}

// AggregatorOption is a functional option for configuring the Aggregator.
type AggregatorOption func(*Aggregator)

// WithBreaker sets the circuit breaker, primarily for tests that need
// an injected clock.
func WithBreaker(b *Breaker) AggregatorOption {
	return func(a *Aggregator) {
		a.breaker = b
	}
}

// WithSelector sets the rotation selector, primarily for tests that
// need deterministic ordering.
func WithSelector(s *Selector) AggregatorOption {
	return func(a *Aggregator) {
		a.selector = s
	}
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.AggregatorMetrics) AggregatorOption {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// NewAggregator creates an Aggregator over the given providers. The
// resolution cache has no expiry and no eviction; entries live for the
// process lifetime.
func NewAggregator(providers []Provider, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		providers: providers,
		cache:     gocache.New(gocache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.breaker == nil {
		a.breaker = NewBreaker()
	}
	if a.selector == nil {
		a.selector = NewSelector(time.Now().UnixNano())
	}
	return a
}

// Breaker exposes the circuit breaker, used by the metadata service to
// share suspension state in logs.
func (a *Aggregator) Breaker() *Breaker {
	return a.breaker
}

// cacheKey normalizes a query into a resolution cache key.
func cacheKey(kind, query string) string {
	return kind + ":" + strings.ToLower(strings.TrimSpace(query))
}

// ResolveSingleImage returns an image URL for the query. The cache is
// consulted first; on a miss each available provider is tried in
// rotated order and the first hit is cached. When everything misses a
// pseudo-random fallback URL is returned and not cached, so a later
// retry can still succeed once a provider recovers.
func (a *Aggregator) ResolveSingleImage(ctx context.Context, kind, query string) string {
	key := cacheKey(kind, query)

	if cached, found := a.cache.Get(key); found {
		if url, ok := cached.(string); ok {
			if a.metrics != nil {
				a.metrics.IncrementCacheHits()
			}
			return url
		}
	}
	if a.metrics != nil {
		a.metrics.IncrementCacheMisses()
	}

	rotation := a.selector.Select(a.providers, a.breaker)
	for _, p := range rotation {
		url, err := a.fetchOne(ctx, p, query)
		if err == nil {
			a.cache.Set(key, url, gocache.NoExpiration)
			return url
		}
	}

	if a.metrics != nil {
		a.metrics.IncrementFallbackUses()
	}
	imageLogger.Info("All providers exhausted, serving fallback image",
		"kind", kind,
		"query", query,
		"providers_tried", len(rotation))
	return fallbackImages[a.selector.intn(len(fallbackImages))]
}

// fetchOne performs a single provider fetch, classifying the outcome
// and updating breaker state and metrics. All errors are soft.
func (a *Aggregator) fetchOne(ctx context.Context, p Provider, query string) (string, error) {
	if a.metrics != nil {
		a.metrics.IncrementProviderCalls(p.Name())
	}

	start := time.Now()
	img, err := p.Fetch(ctx, query)
	if a.metrics != nil {
		a.metrics.ObserveFetchDuration(time.Since(start).Seconds())
	}

	switch {
	case err == nil:
		imageLogger.Debug("Provider returned image",
			"provider", p.Name(),
			"query", query,
			"url", img.URL)
		return img.URL, nil
	case errors.Is(err, ErrImageNotFound):
		imageLogger.Debug("Provider had no results",
			"provider", p.Name(),
			"query", query)
	case errors.Is(err, ErrRateLimited):
		a.breaker.MarkRateLimited(p.Name())
		if a.metrics != nil {
			a.metrics.IncrementProviderRateLimits(p.Name())
		}
	default:
		// Soft failure; a single provider outage must never fail the request.
		if a.metrics != nil {
			a.metrics.IncrementProviderErrors(p.Name())
		}
		imageLogger.Warn("Provider fetch failed",
			"provider", p.Name(),
			"query", query,
			"error", err)
	}
	return "", err
}

// ResolveGallery queries all configured providers concurrently for up
// to galleryPerProvider results each, merges and shuffles the hits.
// Rotation does not apply here; galleries want breadth over a single
// hit. Results are not cached. An empty merge yields a fixed slice of
// the fallback list, never an empty list.
func (a *Aggregator) ResolveGallery(ctx context.Context, query string) []string {
	var (
		mu     sync.Mutex
		merged []string
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range a.providers {
		if !p.Configured() {
			continue
		}
		g.Go(func() error {
			urls, err := p.FetchGallery(gctx, query, galleryPerProvider)
			switch {
			case err == nil:
				mu.Lock()
				merged = append(merged, urls...)
				mu.Unlock()
			case errors.Is(err, ErrImageNotFound):
				// Non-fatal miss
			case errors.Is(err, ErrRateLimited):
				a.breaker.MarkRateLimited(p.Name())
				if a.metrics != nil {
					a.metrics.IncrementProviderRateLimits(p.Name())
				}
			default:
				if a.metrics != nil {
					a.metrics.IncrementProviderErrors(p.Name())
				}
				imageLogger.Warn("Gallery fetch failed",
					"provider", p.Name(),
					"query", query,
					"error", err)
			}
			// Failures are absorbed; the merge just loses one provider.
			return nil
		})
	}
	_ = g.Wait()

	if len(merged) == 0 {
		if a.metrics != nil {
			a.metrics.IncrementFallbackUses()
		}
		imageLogger.Info("Gallery empty, serving fallback slice", "query", query)
		return FallbackImages()[:fallbackGallerySize]
	}

	a.selector.shuffleStrings(merged)
	return merged
}

// pixabay.go: Implements a Provider backed by the Pixabay search API.
package imageprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/roamly/roamly/internal/errors"
)

const (
	pixabayProviderName = "pixabay"
	pixabaySearchURL    = "https://pixabay.com/api/"
)

// pixabayResponse represents the structure of the Pixabay search response
type pixabayResponse struct {
	Total     int `json:"total"`
	TotalHits int `json:"totalHits"`
	Hits      []struct {
		ID            int    `json:"id"`
		WebFormatURL  string `json:"webformatURL"`
		LargeImageURL string `json:"largeImageURL"`
	} `json:"hits"`
}

// PixabayProvider fetches images from the Pixabay search API.
type PixabayProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewPixabayProvider creates a Pixabay provider. An empty API key
// leaves the provider unconfigured.
func NewPixabayProvider(apiKey string) *PixabayProvider {
	return &PixabayProvider{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Name returns the provider identifier.
func (p *PixabayProvider) Name() string { return pixabayProviderName }

// Configured reports whether an API key is present.
func (p *PixabayProvider) Configured() bool { return p.apiKey != "" }

// Fetch resolves the query to a single horizontal photo.
func (p *PixabayProvider) Fetch(ctx context.Context, query string) (PlaceImage, error) {
	urls, err := p.search(ctx, query, 3)
	if err != nil {
		return PlaceImage{}, err
	}
	return PlaceImage{
		URL:      urls[0],
		Query:    query,
		Provider: pixabayProviderName,
		CachedAt: time.Now(),
	}, nil
}

// FetchGallery returns up to limit photo URLs for the query.
func (p *PixabayProvider) FetchGallery(ctx context.Context, query string, limit int) ([]string, error) {
	return p.search(ctx, query, limit)
}

// search performs one Pixabay search call and classifies the outcome.
// Pixabay rejects per_page values below 3, so the minimum is clamped.
func (p *PixabayProvider) search(ctx context.Context, query string, limit int) ([]string, error) {
	perPage := limit
	if perPage < 3 {
		perPage = 3
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("q", query)
	params.Set("image_type", "photo")
	params.Set("orientation", "horizontal")
	params.Set("per_page", strconv.Itoa(perPage))
	searchURL := pixabaySearchURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil, errors.New(err).
			Component(pixabayProviderName).
			Category(errors.CategoryNetwork).
			NetworkContext(pixabaySearchURL, requestTimeout).
			Build()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Component(pixabayProviderName).
			Category(errors.CategoryNetwork).
			NetworkContext(pixabaySearchURL, requestTimeout).
			Build()
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			imageLogger.Debug("Failed to close response body", "provider", pixabayProviderName, "error", err)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parsing
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, errors.Newf("pixabay returned status %d", resp.StatusCode).
			Component(pixabayProviderName).
			Category(errors.CategoryImageFetch).
			Context("status", resp.StatusCode).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(fmt.Errorf("error reading pixabay response: %w", err)).
			Component(pixabayProviderName).
			Category(errors.CategoryImageFetch).
			Build()
	}

	var parsed pixabayResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.New(fmt.Errorf("error parsing pixabay response: %w", err)).
			Component(pixabayProviderName).
			Category(errors.CategoryImageFetch).
			Build()
	}

	if len(parsed.Hits) == 0 {
		return nil, ErrImageNotFound
	}

	if limit > 0 && limit < len(parsed.Hits) {
		parsed.Hits = parsed.Hits[:limit]
	}
	urls := make([]string, 0, len(parsed.Hits))
	for i := range parsed.Hits {
		if u := parsed.Hits[i].WebFormatURL; u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, ErrImageNotFound
	}
	return urls, nil
}

// unsplash.go: Implements a Provider backed by the Unsplash search API.
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
	unsplashProviderName = "unsplash"
	unsplashSearchURL    = "https://api.unsplash.com/search/photos"
)

// unsplashResponse represents the structure of the Unsplash search response
type unsplashResponse struct {
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Results    []struct {
		ID   string `json:"id"`
		URLs struct {
			Raw     string `json:"raw"`
			Full    string `json:"full"`
			Regular string `json:"regular"`
			Small   string `json:"small"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
	} `json:"results"`
}

// UnsplashProvider fetches images from the Unsplash search API.
type UnsplashProvider struct {
	accessKey  string
	httpClient *http.Client
}

// NewUnsplashProvider creates an Unsplash provider. An empty access key
// leaves the provider unconfigured; it is then skipped silently.
func NewUnsplashProvider(accessKey string) *UnsplashProvider {
	return &UnsplashProvider{
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Name returns the provider identifier.
func (p *UnsplashProvider) Name() string { return unsplashProviderName }

// Configured reports whether an access key is present.
func (p *UnsplashProvider) Configured() bool { return p.accessKey != "" }

// Fetch resolves the query to a single landscape photo.
func (p *UnsplashProvider) Fetch(ctx context.Context, query string) (PlaceImage, error) {
	urls, err := p.search(ctx, query, 1)
	if err != nil {
		return PlaceImage{}, err
	}
	return PlaceImage{
		URL:      urls[0],
		Query:    query,
		Provider: unsplashProviderName,
		CachedAt: time.Now(),
	}, nil
}

// FetchGallery returns up to limit photo URLs for the query.
func (p *UnsplashProvider) FetchGallery(ctx context.Context, query string, limit int) ([]string, error) {
	return p.search(ctx, query, limit)
}

// search performs one Unsplash search call and classifies the outcome.
// Unsplash signals demo-quota exhaustion with 403 in addition to 429.
func (p *UnsplashProvider) search(ctx context.Context, query string, perPage int) ([]string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orientation", "landscape")
	searchURL := unsplashSearchURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil, errors.New(err).
			Component(unsplashProviderName).
			Category(errors.CategoryNetwork).
			NetworkContext(searchURL, requestTimeout).
			Build()
	}
	req.Header.Set("Authorization", "Client-ID "+p.accessKey)
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Component(unsplashProviderName).
			Category(errors.CategoryNetwork).
			NetworkContext(searchURL, requestTimeout).
			Build()
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			imageLogger.Debug("Failed to close response body", "provider", unsplashProviderName, "error", err)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parsing
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, errors.Newf("unsplash returned status %d", resp.StatusCode).
			Component(unsplashProviderName).
			Category(errors.CategoryImageFetch).
			Context("status", resp.StatusCode).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(fmt.Errorf("error reading unsplash response: %w", err)).
			Component(unsplashProviderName).
			Category(errors.CategoryImageFetch).
			Build()
	}

	var parsed unsplashResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.New(fmt.Errorf("error parsing unsplash response: %w", err)).
			Component(unsplashProviderName).
			Category(errors.CategoryImageFetch).
			Build()
	}

	if len(parsed.Results) == 0 {
		return nil, ErrImageNotFound
	}

	urls := make([]string, 0, len(parsed.Results))
	for i := range parsed.Results {
		if u := parsed.Results[i].URLs.Regular; u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, ErrImageNotFound
	}
	return urls, nil
}

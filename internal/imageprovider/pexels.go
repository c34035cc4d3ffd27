// pexels.go: Implements a Provider backed by the Pexels search API.
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
	pexelsProviderName = "pexels"
	pexelsSearchURL    = "https://api.pexels.com/v1/search"
)

// pexelsResponse represents the structure of the Pexels search response
type pexelsResponse struct {
	TotalResults int `json:"total_results"`
	Photos       []struct {
		ID  int `json:"id"`
		Src struct {
			Original  string `json:"original"`
			Large2x   string `json:"large2x"`
			Large     string `json:"large"`
			Medium    string `json:"medium"`
			Landscape string `json:"landscape"`
		} `json:"src"`
	} `json:"photos"`
}

// PexelsProvider fetches images from the Pexels search API.
type PexelsProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewPexelsProvider creates a Pexels provider. An empty API key leaves
// the provider unconfigured.
func NewPexelsProvider(apiKey string) *PexelsProvider {
	return &PexelsProvider{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Name returns the provider identifier.
func (p *PexelsProvider) Name() string { return pexelsProviderName }

// Configured reports whether an API key is present.
func (p *PexelsProvider) Configured() bool { return p.apiKey != "" }

// Fetch resolves the query to a single landscape photo.
func (p *PexelsProvider) Fetch(ctx context.Context, query string) (PlaceImage, error) {
	urls, err := p.search(ctx, query, 1)
	if err != nil {
		return PlaceImage{}, err
	}
	return PlaceImage{
		URL:      urls[0],
		Query:    query,
		Provider: pexelsProviderName,
		CachedAt: time.Now(),
	}, nil
}

// FetchGallery returns up to limit photo URLs for the query.
func (p *PexelsProvider) FetchGallery(ctx context.Context, query string, limit int) ([]string, error) {
	return p.search(ctx, query, limit)
}

// search performs one Pexels search call and classifies the outcome.
func (p *PexelsProvider) search(ctx context.Context, query string, perPage int) ([]string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orientation", "landscape")
	searchURL := pexelsSearchURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil, errors.New(err).
			Component(pexelsProviderName).
			Category(errors.CategoryNetwork).
			NetworkContext(searchURL, requestTimeout).
			Build()
	}
	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Component(pexelsProviderName).
			Category(errors.CategoryNetwork).
			NetworkContext(searchURL, requestTimeout).
			Build()
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			imageLogger.Debug("Failed to close response body", "provider", pexelsProviderName, "error", err)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parsing
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, errors.Newf("pexels returned status %d", resp.StatusCode).
			Component(pexelsProviderName).
			Category(errors.CategoryImageFetch).
			Context("status", resp.StatusCode).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(fmt.Errorf("error reading pexels response: %w", err)).
			Component(pexelsProviderName).
			Category(errors.CategoryImageFetch).
			Build()
	}

	var parsed pexelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.New(fmt.Errorf("error parsing pexels response: %w", err)).
			Component(pexelsProviderName).
			Category(errors.CategoryImageFetch).
			Build()
	}

	if len(parsed.Photos) == 0 {
		return nil, ErrImageNotFound
	}

	urls := make([]string, 0, len(parsed.Photos))
	for i := range parsed.Photos {
		if u := parsed.Photos[i].Src.Large; u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, ErrImageNotFound
	}
	return urls, nil
}

// Package countries proxies the REST Countries catalog with caching.
package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/roamly/roamly/internal/errors"
)

const (
	countriesURL   = "https://restcountries.com/v3.1/all?fields=name,capital,population,area,flags,cca2"
	requestTimeout = 10 * time.Second

	// cacheTTL keeps the full catalog for a day; country facts don't
	// move faster than that.
	cacheTTL = 24 * time.Hour
	cacheKey = "countries:all"
)

// Country mirrors the subset of the REST Countries payload the
// frontend consumes.
type Country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2       string   `json:"cca2"`
	Capital    []string `json:"capital"`
	Population int64    `json:"population"`
	Area       float64  `json:"area"`
	Flags      struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
}

// Client fetches and caches the country catalog.
type Client struct {
	httpClient *http.Client
	cache      *gocache.Cache
}

// NewClient creates a countries client with a day-long cache.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// FetchAll returns the country catalog, from cache when fresh.
func (c *Client) FetchAll(ctx context.Context) ([]Country, error) {
	if cached, found := c.cache.Get(cacheKey); found {
		if countries, ok := cached.([]Country); ok {
			return countries, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, countriesURL, http.NoBody)
	if err != nil {
		return nil, errors.New(err).
			Component("countries").
			Category(errors.CategoryNetwork).
			NetworkContext(countriesURL, requestTimeout).
			Build()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Component("countries").
			Category(errors.CategoryNetwork).
			NetworkContext(countriesURL, requestTimeout).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("countries upstream returned status %d", resp.StatusCode).
			Component("countries").
			Category(errors.CategoryNetwork).
			Context("status", resp.StatusCode).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(fmt.Errorf("error reading countries response: %w", err)).
			Component("countries").
			Category(errors.CategoryNetwork).
			Build()
	}

	var countries []Country
	if err := json.Unmarshal(body, &countries); err != nil {
		return nil, errors.New(fmt.Errorf("error parsing countries response: %w", err)).
			Component("countries").
			Category(errors.CategoryNetwork).
			Build()
	}

	c.cache.Set(cacheKey, countries, cacheTTL)
	return countries, nil
}

// Package placemeta generates place metadata (description, currency,
// language) through a generative text API.
package placemeta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/roamly/roamly/internal/errors"
	"github.com/roamly/roamly/internal/logging"
)

// Package-level logger specific to the placemeta service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "placemeta.log")
	serviceLevelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "placemeta", serviceLevelVar)
	if err != nil {
		log.Printf("Failed to initialize placemeta file logger at %s: %v", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "placemeta")
		closeLogger = func() error { return nil }
	}
}

const (
	generateContentURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	requestTimeout     = 15 * time.Second
	defaultModel       = "gemini-1.5-flash"
)

// Metadata is the normalized payload produced for a place.
type Metadata struct {
	Description string `json:"description"`
	Currency    string `json:"currency"`
	Language    string `json:"language"`
}

// Config holds the client configuration.
type Config struct {
	APIKey string
	Model  string
}

// Client calls the generative API and caches results per place. The
// cache is independent of the image resolution cache and keyed by
// city+country; entries live for the process lifetime.
type Client struct {
	config     Config
	httpClient *http.Client
	cache      *gocache.Cache
}

// NewClient creates a metadata client. An empty API key leaves the
// client unconfigured; callers must then fall back to static content.
func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = defaultModel
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.config.APIKey != "" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func cacheKey(city, country string) string {
	return strings.ToLower(city) + "|" + strings.ToLower(country)
}

// Fetch returns metadata for the city, from cache when available. All
// failures are returned as categorized errors for the caller to absorb.
func (c *Client) Fetch(ctx context.Context, city, country string) (Metadata, error) {
	key := cacheKey(city, country)
	if cached, found := c.cache.Get(key); found {
		if meta, ok := cached.(Metadata); ok {
			logger.Debug("Metadata cache hit", "city", city, "country", country)
			return meta, nil
		}
	}

	if !c.Configured() {
		return Metadata{}, errors.Newf("metadata provider not configured").
			Component("placemeta").
			Category(errors.CategoryConfiguration).
			Build()
	}

	meta, err := c.generate(ctx, city, country)
	if err != nil {
		return Metadata{}, err
	}

	c.cache.Set(key, meta, gocache.NoExpiration)
	return meta, nil
}

// Prime seeds the in-memory cache, used at startup to load rows
// persisted by a previous process.
func (c *Client) Prime(city, country string, meta Metadata) {
	c.cache.Set(cacheKey(city, country), meta, gocache.NoExpiration)
}

// generate performs one generateContent call and parses the JSON the
// model was asked to produce.
func (c *Client) generate(ctx context.Context, city, country string) (Metadata, error) {
	prompt := fmt.Sprintf(
		"Provide information about the city %s in %s as strict JSON with exactly these keys: "+
			`"description" (2-3 engaging sentences for travelers), `+
			`"currency" (official currency name), `+
			`"language" (primary spoken language). `+
			"Respond with JSON only, no surrounding text.",
		city, country)

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	payload, err := json.Marshal(&reqBody)
	if err != nil {
		return Metadata{}, errors.New(err).
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Build()
	}

	endpoint := fmt.Sprintf(generateContentURL, url.PathEscape(c.config.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Metadata{}, errors.New(err).
			Component("placemeta").
			Category(errors.CategoryNetwork).
			NetworkContext(endpoint, requestTimeout).
			Build()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Metadata{}, errors.New(err).
			Component("placemeta").
			Category(errors.CategoryNetwork).
			NetworkContext(endpoint, requestTimeout).
			Build()
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Debug("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, errors.Newf("metadata provider returned status %d", resp.StatusCode).
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Context("status", resp.StatusCode).
			Context("city", city).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Metadata{}, errors.New(fmt.Errorf("error reading metadata response: %w", err)).
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Build()
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Metadata{}, errors.New(fmt.Errorf("error parsing metadata envelope: %w", err)).
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Build()
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return Metadata{}, errors.Newf("metadata response contained no candidates").
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Context("city", city).
			Build()
	}

	text := StripCodeFences(parsed.Candidates[0].Content.Parts[0].Text)

	var meta Metadata
	if err := json.Unmarshal([]byte(text), &meta); err != nil {
		// The model sometimes answers with prose despite the prompt;
		// surface the raw parse error as a soft failure.
		return Metadata{}, errors.New(fmt.Errorf("error parsing metadata payload: %w", err)).
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Context("city", city).
			Context("payload_prefix", truncate(text, 120)).
			Build()
	}

	logger.Info("Generated place metadata", "city", city, "country", country)
	return meta, nil
}

// StripCodeFences removes markdown code fence markers the model may
// wrap around its JSON payload.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Close releases the package log writer.
func Close() error {
	if closeLogger != nil {
		return closeLogger()
	}
	return nil
}

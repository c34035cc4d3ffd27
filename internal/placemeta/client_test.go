package placemeta

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/roamly/internal/errors"
)

func newMockedClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(Config{APIKey: "test-key", Model: "test-model"})
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func mockEndpoint() string {
	return fmt.Sprintf(generateContentURL, "test-model")
}

// envelope wraps model output text in a generateContent response body.
func envelope(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestClient_Fetch_Success(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, mockEndpoint(),
		httpmock.NewJsonResponderOrPanic(http.StatusOK,
			envelope(`{"description":"A lovely city.","currency":"Euro","language":"French"}`)))

	meta, err := c.Fetch(context.Background(), "Paris", "France")

	require.NoError(t, err)
	assert.Equal(t, "A lovely city.", meta.Description)
	assert.Equal(t, "Euro", meta.Currency)
	assert.Equal(t, "French", meta.Language)
}

func TestClient_Fetch_StripsMarkdownFences(t *testing.T) {
	c := newMockedClient(t)

	fenced := "```json\n{\"description\":\"Fenced.\",\"currency\":\"Yen\",\"language\":\"Japanese\"}\n```"
	httpmock.RegisterResponder(http.MethodPost, mockEndpoint(),
		httpmock.NewJsonResponderOrPanic(http.StatusOK, envelope(fenced)))

	meta, err := c.Fetch(context.Background(), "Tokyo", "Japan")

	require.NoError(t, err)
	assert.Equal(t, "Fenced.", meta.Description)
	assert.Equal(t, "Yen", meta.Currency)
}

func TestClient_Fetch_CachesResult(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, mockEndpoint(),
		httpmock.NewJsonResponderOrPanic(http.StatusOK,
			envelope(`{"description":"Once.","currency":"Euro","language":"Italian"}`)))

	_, err := c.Fetch(context.Background(), "Rome", "Italy")
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), "Rome", "Italy")
	require.NoError(t, err)

	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "second fetch must hit the cache")
}

func TestClient_Fetch_NonJSONPayloadIsSoftError(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, mockEndpoint(),
		httpmock.NewJsonResponderOrPanic(http.StatusOK,
			envelope("Sorry, I cannot answer that as JSON.")))

	_, err := c.Fetch(context.Background(), "Paris", "France")

	require.Error(t, err)
	assert.Equal(t, errors.CategoryMetadataFetch, errors.CategoryOf(err))
}

func TestClient_Fetch_UpstreamError(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, mockEndpoint(),
		httpmock.NewStringResponder(http.StatusServiceUnavailable, ``))

	_, err := c.Fetch(context.Background(), "Paris", "France")

	require.Error(t, err)
	assert.Equal(t, errors.CategoryMetadataFetch, errors.CategoryOf(err))
}

func TestClient_Fetch_Unconfigured(t *testing.T) {
	c := NewClient(Config{})

	_, err := c.Fetch(context.Background(), "Paris", "France")

	require.Error(t, err)
	assert.Equal(t, errors.CategoryConfiguration, errors.CategoryOf(err))
}

func TestClient_Prime_SeedsCacheWithoutNetwork(t *testing.T) {
	c := NewClient(Config{}) // unconfigured on purpose

	c.Prime("Lisbon", "Portugal", Metadata{
		Description: "Persisted earlier.",
		Currency:    "Euro",
		Language:    "Portuguese",
	})

	meta, err := c.Fetch(context.Background(), "lisbon", "PORTUGAL")

	require.NoError(t, err, "primed entries are served even without an API key")
	assert.Equal(t, "Persisted earlier.", meta.Description)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.input))
		})
	}
}

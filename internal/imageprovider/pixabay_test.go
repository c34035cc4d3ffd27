package imageprovider

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedPixabay(t *testing.T) *PixabayProvider {
	t.Helper()
	p := NewPixabayProvider("test-api-key")
	httpmock.ActivateNonDefault(p.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return p
}

func TestPixabayProvider_Fetch_Success(t *testing.T) {
	p := newMockedPixabay(t)

	httpmock.RegisterResponder(http.MethodGet, pixabaySearchURL,
		httpmock.NewStringResponder(http.StatusOK, `{
			"total": 2,
			"totalHits": 2,
			"hits": [
				{"id": 1, "webformatURL": "https://cdn.pixabay.com/photo/1_640.jpg"},
				{"id": 2, "webformatURL": "https://cdn.pixabay.com/photo/2_640.jpg"}
			]
		}`))

	img, err := p.Fetch(context.Background(), "Lisbon")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.pixabay.com/photo/1_640.jpg", img.URL)
	assert.Equal(t, "pixabay", img.Provider)
}

func TestPixabayProvider_Fetch_EmptyResults(t *testing.T) {
	p := newMockedPixabay(t)

	httpmock.RegisterResponder(http.MethodGet, pixabaySearchURL,
		httpmock.NewStringResponder(http.StatusOK, `{"total": 0, "totalHits": 0, "hits": []}`))

	_, err := p.Fetch(context.Background(), "zzzzz")

	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestPixabayProvider_Fetch_RateLimited(t *testing.T) {
	p := newMockedPixabay(t)

	httpmock.RegisterResponder(http.MethodGet, pixabaySearchURL,
		httpmock.NewStringResponder(http.StatusTooManyRequests, ``))

	_, err := p.Fetch(context.Background(), "Lisbon")

	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestPixabayProvider_PerPageClampedToMinimum(t *testing.T) {
	p := newMockedPixabay(t)

	var requestedPerPage string
	httpmock.RegisterResponder(http.MethodGet, pixabaySearchURL,
		func(req *http.Request) (*http.Response, error) {
			requestedPerPage = req.URL.Query().Get("per_page")
			return httpmock.NewStringResponse(http.StatusOK, `{
				"total": 3,
				"totalHits": 3,
				"hits": [
					{"id": 1, "webformatURL": "https://cdn.pixabay.com/photo/1_640.jpg"},
					{"id": 2, "webformatURL": "https://cdn.pixabay.com/photo/2_640.jpg"},
					{"id": 3, "webformatURL": "https://cdn.pixabay.com/photo/3_640.jpg"}
				]
			}`), nil
		})

	urls, err := p.FetchGallery(context.Background(), "Lisbon", 1)

	require.NoError(t, err)
	// Pixabay rejects per_page below 3, so the request is clamped up
	// and the surplus hits trimmed back to the caller's limit.
	assert.Equal(t, strconv.Itoa(3), requestedPerPage)
	assert.Len(t, urls, 1)
}

func TestPixabayProvider_Configured(t *testing.T) {
	assert.True(t, NewPixabayProvider("key").Configured())
	assert.False(t, NewPixabayProvider("").Configured())
}

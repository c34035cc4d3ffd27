package placemeta

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/roamly/internal/errors"
)

func TestClient_Chat_Success(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, mockEndpoint(),
		httpmock.NewJsonResponderOrPanic(http.StatusOK,
			envelope("Spring is the best time to visit Kyoto.")))

	reply, err := c.Chat(context.Background(), "When should I visit Kyoto?")

	require.NoError(t, err)
	assert.Equal(t, "Spring is the best time to visit Kyoto.", reply)
}

func TestClient_Chat_RateLimited(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, mockEndpoint(),
		httpmock.NewStringResponder(http.StatusTooManyRequests, ``))

	_, err := c.Chat(context.Background(), "Where should I go next?")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChatRateLimited))
	assert.Equal(t, errors.CategoryRateLimit, errors.CategoryOf(err))
}

func TestClient_Chat_Unconfigured(t *testing.T) {
	c := NewClient(Config{})

	_, err := c.Chat(context.Background(), "Any tips for Lisbon?")

	require.Error(t, err)
	assert.Equal(t, errors.CategoryConfiguration, errors.CategoryOf(err))
}

func TestClient_Chat_NotCached(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, mockEndpoint(),
		httpmock.NewJsonResponderOrPanic(http.StatusOK, envelope("Try the old town.")))

	_, err := c.Chat(context.Background(), "What should I see in Tallinn?")
	require.NoError(t, err)
	_, err = c.Chat(context.Background(), "What should I see in Tallinn?")
	require.NoError(t, err)

	assert.Equal(t, 2, httpmock.GetTotalCallCount(), "chat answers are never cached")
}

func TestClient_Chat_TruncatesLongMessages(t *testing.T) {
	c := newMockedClient(t)

	var gotPrompt string
	httpmock.RegisterResponder(http.MethodPost, mockEndpoint(),
		func(req *http.Request) (*http.Response, error) {
			var body geminiRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				return nil, err
			}
			gotPrompt = body.Contents[0].Parts[0].Text
			return httpmock.NewJsonResponse(http.StatusOK, envelope("ok"))
		})

	_, err := c.Chat(context.Background(), strings.Repeat("x", maxChatMessageLength+500))

	require.NoError(t, err)
	assert.LessOrEqual(t, len(gotPrompt), maxChatMessageLength+300,
		"user input beyond the limit must be dropped from the prompt")
}

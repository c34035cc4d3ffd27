// chat.go: conversational travel-guide answers through the same model.
package placemeta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/roamly/roamly/internal/errors"
)

// maxChatMessageLength bounds user input forwarded to the model.
const maxChatMessageLength = 1000

// ErrChatRateLimited is returned when the model rejects a chat request
// for quota reasons.
var ErrChatRateLimited = errors.Newf("chat provider rate limited").
	Component("placemeta").
	Category(errors.CategoryRateLimit).
	Build()

// Chat sends one user message to the model framed as a travel-guide
// conversation and returns the reply text. Replies are not cached;
// unlike place metadata, two identical questions may legitimately get
// different answers.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if !c.Configured() {
		return "", errors.Newf("chat provider not configured").
			Component("placemeta").
			Category(errors.CategoryConfiguration).
			Build()
	}

	message = strings.TrimSpace(message)
	if len(message) > maxChatMessageLength {
		message = message[:maxChatMessageLength]
	}

	prompt := "You are a friendly, knowledgeable travel guide. " +
		"Answer the traveler's question concisely in plain text, " +
		"no markdown formatting.\n\nQuestion: " + message

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	payload, err := json.Marshal(&reqBody)
	if err != nil {
		return "", errors.New(err).
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Build()
	}

	endpoint := fmt.Sprintf(generateContentURL, url.PathEscape(c.config.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.New(err).
			Component("placemeta").
			Category(errors.CategoryNetwork).
			NetworkContext(endpoint, requestTimeout).
			Build()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.New(err).
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

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parsing
	case http.StatusTooManyRequests:
		return "", ErrChatRateLimited
	default:
		return "", errors.Newf("chat provider returned status %d", resp.StatusCode).
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Context("status", resp.StatusCode).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.New(fmt.Errorf("error reading chat response: %w", err)).
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Build()
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.New(fmt.Errorf("error parsing chat envelope: %w", err)).
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Build()
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.Newf("chat response contained no candidates").
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Build()
	}

	reply := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if reply == "" {
		return "", errors.Newf("chat response was empty").
			Component("placemeta").
			Category(errors.CategoryMetadataFetch).
			Build()
	}

	logger.Debug("Generated chat reply", "message_len", len(message), "reply_len", len(reply))
	return reply, nil
}

// internal/api/chat.go travel-guide chat endpoint
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roamly/roamly/internal/errors"
	"github.com/roamly/roamly/internal/placemeta"
)

const (
	chatReplyUnavailable = "Sorry, the travel guide is not available right now. Please try again later."
	chatReplyRateLimited = "The travel guide is a bit busy at the moment. Please try again in a minute."
)

// initChatRoutes registers the chat route
func (c *Controller) initChatRoutes() {
	c.Group.POST("/chat", c.Chat)
}

// chatRequest is the body for POST /chat.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse carries the guide's answer.
type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /chat. Provider trouble degrades to a canned reply
// with status 200; only a missing message is a client error.
func (c *Controller) Chat(ctx echo.Context) error {
	var req chatRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return c.HandleError(ctx, nil, "Message is required", http.StatusBadRequest)
	}

	reply, err := c.Meta.Chat(ctx.Request().Context(), req.Message)
	if err != nil {
		c.Debug("Chat reply failed: %v", err)
		if errors.Is(err, placemeta.ErrChatRateLimited) {
			return ctx.JSON(http.StatusOK, chatResponse{Reply: chatReplyRateLimited})
		}
		return ctx.JSON(http.StatusOK, chatResponse{Reply: chatReplyUnavailable})
	}

	return ctx.JSON(http.StatusOK, chatResponse{Reply: reply})
}

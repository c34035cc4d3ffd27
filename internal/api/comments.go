// internal/api/comments.go place comments
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roamly/roamly/internal/datastore"
)

// maxCommentLength bounds comment text; longer submissions are rejected
// rather than truncated.
const maxCommentLength = 2000

// initCommentRoutes registers comment routes
func (c *Controller) initCommentRoutes() {
	c.Group.GET("/comments/:placeId", c.GetComments)
	c.Group.POST("/comments", c.PostComment)
}

// commentResponse is one comment in API responses.
type commentResponse struct {
	ID        uint   `json:"id"`
	PlaceID   string `json:"placeId"`
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// postCommentRequest is the body for POST /comments.
type postCommentRequest struct {
	PlaceID string `json:"placeId"`
	Text    string `json:"text"`
}

// GetComments handles GET /comments/:placeId
func (c *Controller) GetComments(ctx echo.Context) error {
	placeID := strings.TrimSpace(ctx.Param("placeId"))
	if placeID == "" {
		return c.HandleError(ctx, nil, "Missing place ID", http.StatusBadRequest)
	}

	comments, err := c.DS.GetComments(placeID)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get comments", http.StatusInternalServerError)
	}

	out := make([]commentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, commentResponse{
			ID:        comments[i].ID,
			PlaceID:   comments[i].PlaceID,
			UserName:  comments[i].UserName,
			Text:      comments[i].Text,
			CreatedAt: comments[i].CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return ctx.JSON(http.StatusOK, out)
}

// PostComment handles POST /comments. Posting requires a signed-in
// session; the comment is attributed to the session user, never to a
// client-supplied name.
func (c *Controller) PostComment(ctx echo.Context) error {
	userName, ok := c.Sessions.CurrentUser(ctx.Request())
	if !ok {
		return c.HandleError(ctx, nil, "Sign in to post a comment", http.StatusUnauthorized)
	}

	var req postCommentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	req.PlaceID = strings.TrimSpace(req.PlaceID)
	req.Text = strings.TrimSpace(req.Text)
	if req.PlaceID == "" || req.Text == "" {
		return c.HandleError(ctx, nil, "Place ID and text are required", http.StatusBadRequest)
	}
	if len(req.Text) > maxCommentLength {
		return c.HandleError(ctx, nil, "Comment is too long", http.StatusBadRequest)
	}

	comment := &datastore.Comment{
		PlaceID:  req.PlaceID,
		UserName: userName,
		Text:     req.Text,
	}
	if err := c.DS.SaveComment(comment); err != nil {
		return c.HandleError(ctx, err, "Failed to save comment", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusCreated, commentResponse{
		ID:        comment.ID,
		PlaceID:   comment.PlaceID,
		UserName:  comment.UserName,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

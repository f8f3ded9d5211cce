package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/moringa-qa/client/internal/models"
)

// Follow adds the question to the caller's followed set.
func (c *Client) Follow(ctx context.Context, questionID uuid.UUID) error {
	return c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/questions/" + questionID.String() + "/follow",
	}, nil)
}

// Unfollow removes the question from the caller's followed set.
func (c *Client) Unfollow(ctx context.Context, questionID uuid.UUID) error {
	return c.do(ctx, apiRequest{
		method: http.MethodDelete,
		path:   "/questions/" + questionID.String() + "/follow",
	}, nil)
}

// ListFollows fetches the questions the caller follows. Per-question
// follow state is derived by membership in this list, never by trusting a
// local toggle.
func (c *Client) ListFollows(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "/me/follows",
	}, &questions)
	return questions, err
}

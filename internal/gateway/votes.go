package gateway

import (
	"context"
	"net/http"

	"github.com/moringa-qa/client/internal/models"
)

// CastVote posts a vote. Idempotency and replacement semantics are the
// server's call; the caller must refetch the target to learn the new score.
func (c *Client) CastVote(ctx context.Context, payload models.VoteCreate) (*models.Vote, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var vote models.Vote
	err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/votes",
		body:   payload,
	}, &vote)
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

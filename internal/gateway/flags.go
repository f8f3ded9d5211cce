package gateway

import (
	"context"
	"net/http"

	"github.com/moringa-qa/client/internal/models"
)

// CreateFlag reports content for moderation. Fire-and-forget beyond the
// success/failure result.
func (c *Client) CreateFlag(ctx context.Context, payload models.FlagCreate) (*models.Flag, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var flag models.Flag
	err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/flags",
		body:   payload,
	}, &flag)
	if err != nil {
		return nil, err
	}
	return &flag, nil
}

package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/moringa-qa/client/internal/models"
)

// ListNotifications fetches the caller's notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "/me/notifications",
	}, &notifications)
	return notifications, err
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/notifications/" + id.String() + "/read",
	}, nil)
}

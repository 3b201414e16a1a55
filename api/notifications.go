package api

import (
	"context"
	"net/http"

	"github.com/tapsoran/admintui/domain"
)

func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.get(ctx, "/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/notifications/read-all", map[string]string{}, nil)
}

func (c *Client) MarkNotificationTypeRead(ctx context.Context, t domain.NotificationType) error {
	return c.send(ctx, http.MethodPost, "/notifications/read-type", map[string]string{
		"type": string(t),
	}, nil)
}

package cli

import (
	"context"
	"fmt"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/util"
)

// handleNotifications shows admin notifications with the unread count
func (h *Handler) handleNotifications(ctx context.Context) error {
	rows, err := h.api.Notifications(ctx)
	if err != nil {
		h.output.Error(err)
		return err
	}
	unreadCount := domain.UnreadAdminCount(rows)

	if len(rows) == 0 {
		if h.output.IsJSON() {
			h.output.JSON(NotificationsResponse{
				Notifications: []NotificationItem{},
				UnreadCount:   0,
			})
		} else {
			h.output.Println("No notifications.")
		}
		return nil
	}

	if h.output.IsJSON() {
		items := make([]NotificationItem, 0, len(rows))
		for _, n := range rows {
			items = append(items, NotificationItem{
				ID:        n.Id,
				Type:      string(n.Type),
				Title:     n.Title,
				Body:      n.Body,
				Unread:    n.Unread(),
				CreatedAt: n.CreatedAt,
			})
		}
		h.output.JSON(NotificationsResponse{
			Notifications: items,
			UnreadCount:   unreadCount,
		})
	} else {
		for _, n := range rows {
			marker := " "
			if n.Unread() {
				marker = "*"
			}
			h.output.Print("%s [%s] %s (%s)\n", marker, n.Type, n.Title, util.FormatTimeAgo(n.CreatedAt))
			if n.Body != "" {
				h.output.Print("  %s\n", n.Body)
			}
			h.output.Println("")
		}
		if unreadCount > 0 {
			h.output.Print("(%d unread)\n", unreadCount)
		}
	}

	return nil
}

// handleReadAll marks every notification read
func (h *Handler) handleReadAll(ctx context.Context) error {
	if err := h.api.MarkAllNotificationsRead(ctx); err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		h.output.JSON(MarkReadResponse{Status: "ok"})
	} else {
		h.output.Println("All notifications marked read.")
	}
	return nil
}

// handleReadType marks one notification type read
func (h *Handler) handleReadType(ctx context.Context, args []string) error {
	if len(args) == 0 {
		err := fmt.Errorf("usage: read-type <type>")
		h.output.Error(err)
		return err
	}

	t := domain.NotificationType(args[0])
	if err := h.api.MarkNotificationTypeRead(ctx, t); err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		h.output.JSON(MarkReadResponse{Status: "ok", Type: string(t)})
	} else {
		h.output.Print("Notifications of type %s marked read.\n", t)
	}
	return nil
}

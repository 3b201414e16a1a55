package domain

import (
	"testing"
	"time"
)

func notif(t NotificationType, read bool) Notification {
	n := Notification{Id: "n", Type: t, CreatedAt: time.Now()}
	if read {
		ts := time.Now()
		n.ReadAt = &ts
	}
	return n
}

func TestUnreadAdminCount(t *testing.T) {
	tests := []struct {
		name string
		rows []Notification
		want int
	}{
		{
			name: "empty list",
			rows: nil,
			want: 0,
		},
		{
			name: "counts unread admin types only",
			rows: []Notification{
				notif(NotificationAdminVulgar, false),
				notif(NotificationAdminSafety, false),
				notif(NotificationAdminReport, true),
				notif(NotificationAdminComplaint, false),
			},
			want: 3,
		},
		{
			name: "ignores non-admin types",
			rows: []Notification{
				notif(NotificationType("USER_MESSAGE"), false),
				notif(NotificationType("PROMO"), false),
				notif(NotificationAdminVulgar, false),
			},
			want: 1,
		},
		{
			name: "all read yields zero",
			rows: []Notification{
				notif(NotificationAdminVulgar, true),
				notif(NotificationAdminReport, true),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnreadAdminCount(tt.rows)
			if got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestUnreadCountByType(t *testing.T) {
	rows := []Notification{
		notif(NotificationAdminVulgar, false),
		notif(NotificationAdminVulgar, false),
		notif(NotificationAdminSafety, false),
		notif(NotificationAdminVulgar, true),
	}

	if got := UnreadCountByType(rows, NotificationAdminVulgar); got != 2 {
		t.Errorf("Expected 2 unread ADMIN_VULGAR, got %d", got)
	}
	if got := UnreadCountByType(rows, NotificationAdminSafety); got != 1 {
		t.Errorf("Expected 1 unread ADMIN_SAFETY, got %d", got)
	}
	if got := UnreadCountByType(rows, NotificationAdminReport); got != 0 {
		t.Errorf("Expected 0 unread ADMIN_REPORT, got %d", got)
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/tapsoran/admintui/domain"
)

func TestNotificationsText(t *testing.T) {
	now := time.Now()
	read := now.Add(-time.Hour)
	backend := &mockBackend{notifications: []domain.Notification{
		{Id: "n1", Type: domain.NotificationAdminVulgar, Title: "Vulqar söz aşkarlandı", CreatedAt: now},
		{Id: "n2", Type: domain.NotificationAdminReport, Title: "Yeni şikayət", CreatedAt: now, ReadAt: &read},
	}}

	out := runCommand(t, backend, "notifications")
	if !strings.Contains(out, "* [ADMIN_VULGAR]") {
		t.Errorf("Expected unread marker on the vulgar row, got %q", out)
	}
	if !strings.Contains(out, "(1 unread)") {
		t.Errorf("Expected unread count line, got %q", out)
	}
}

func TestNotificationsJSON(t *testing.T) {
	backend := &mockBackend{notifications: []domain.Notification{
		{Id: "n1", Type: domain.NotificationAdminSafety, Title: "Təhlükə", Body: "Detallar", CreatedAt: time.Now()},
	}}

	out := runCommand(t, backend, "--json", "notifications")

	var resp NotificationsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Failed to decode JSON output: %v", err)
	}
	if resp.UnreadCount != 1 {
		t.Errorf("Expected 1 unread, got %d", resp.UnreadCount)
	}
	if len(resp.Notifications) != 1 || !resp.Notifications[0].Unread {
		t.Errorf("Expected one unread notification, got %+v", resp.Notifications)
	}
}

func TestNotificationsEmpty(t *testing.T) {
	out := runCommand(t, &mockBackend{}, "notifications")
	if !strings.Contains(out, "No notifications.") {
		t.Errorf("Expected empty message, got %q", out)
	}
}

func TestReadAll(t *testing.T) {
	backend := &mockBackend{}
	out := runCommand(t, backend, "read-all")
	if !backend.readAllCalled {
		t.Error("Expected MarkAllNotificationsRead to be called")
	}
	if !strings.Contains(out, "marked read") {
		t.Errorf("Expected confirmation, got %q", out)
	}
}

func TestReadType(t *testing.T) {
	backend := &mockBackend{}
	runCommand(t, backend, "read-type", "ADMIN_VULGAR")
	if backend.readTypeArg != domain.NotificationAdminVulgar {
		t.Errorf("Expected ADMIN_VULGAR passed to backend, got %q", backend.readTypeArg)
	}
}

func TestReadTypeMissingArg(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &mockBackend{}, nil)
	if err := h.Execute(context.Background(), []string{"read-type"}); err == nil {
		t.Fatal("Expected an error when the type argument is missing")
	}
	if !strings.Contains(buf.String(), "usage") {
		t.Errorf("Expected usage hint, got %q", buf.String())
	}
}

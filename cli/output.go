package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Output handles formatting responses in text or JSON format
type Output struct {
	writer   io.Writer
	jsonMode bool
}

// NewOutput creates a new output handler
func NewOutput(w io.Writer, jsonMode bool) *Output {
	return &Output{
		writer:   w,
		jsonMode: jsonMode,
	}
}

// IsJSON returns true if output is in JSON mode
func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// Error outputs an error message
func (o *Output) Error(err error) {
	if o.jsonMode {
		o.writeJSON(map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		fmt.Fprintf(o.writer, "Error: %v\n", err)
	}
}

// Print outputs a line (text mode only)
func (o *Output) Print(format string, args ...interface{}) {
	if !o.jsonMode {
		fmt.Fprintf(o.writer, format, args...)
	}
}

// Println outputs a line with newline (text mode only)
func (o *Output) Println(text string) {
	if !o.jsonMode {
		fmt.Fprintln(o.writer, text)
	}
}

// JSON outputs any value as JSON
func (o *Output) JSON(v interface{}) {
	if o.jsonMode {
		o.writeJSON(v)
	}
}

// writeJSON marshals and writes JSON to the output
func (o *Output) writeJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Fallback to error JSON if marshaling fails
		fmt.Fprintf(o.writer, `{"error":"failed to marshal JSON: %s"}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(o.writer, string(data))
}

// StatsResponse represents the stats output
type StatsResponse struct {
	Users      int `json:"users"`
	Categories int `json:"categories"`
	Requests   int `json:"requests"`
}

// UserItem represents a user in list output
type UserItem struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Blocked  bool   `json:"blocked"`
}

// UsersResponse represents the users output
type UsersResponse struct {
	Users []UserItem `json:"users"`
	Count int        `json:"count"`
}

// CategoryItem represents a category in list output
type CategoryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoriesResponse represents the categories output
type CategoriesResponse struct {
	Categories []CategoryItem `json:"categories"`
	Count      int            `json:"count"`
}

// RequestItem represents a buyer request in list output
type RequestItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Scope     string    `json:"scope"`
	Category  string    `json:"category,omitempty"`
	Buyer     string    `json:"buyer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RequestsResponse represents the requests output
type RequestsResponse struct {
	Requests []RequestItem `json:"requests"`
	Count    int           `json:"count"`
}

// ComplaintItem represents a complaint in list output
type ComplaintItem struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	Reporter  string    `json:"reporter"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

// ComplaintsResponse represents the complaints output
type ComplaintsResponse struct {
	Complaints []ComplaintItem `json:"complaints"`
	Count      int             `json:"count"`
}

// RiskUserItem represents a flagged user in list output
type RiskUserItem struct {
	ID              string     `json:"id"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	ReportCount     int        `json:"report_count"`
	Strikes         int        `json:"strikes"`
	Blocked         bool       `json:"blocked"`
	ChatFrozenUntil *time.Time `json:"chat_frozen_until,omitempty"`
}

// RiskUsersResponse represents the risk-users output
type RiskUsersResponse struct {
	RiskUsers []RiskUserItem `json:"risk_users"`
	Count     int            `json:"count"`
}

// NotificationItem represents a notification in output
type NotificationItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Unread    bool      `json:"unread"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationsResponse represents the notifications output
type NotificationsResponse struct {
	Notifications []NotificationItem `json:"notifications"`
	UnreadCount   int                `json:"unread_count"`
}

// MarkReadResponse represents the read-all and read-type output
type MarkReadResponse struct {
	Status string `json:"status"`
	Type   string `json:"type,omitempty"`
}

// HelpCommand represents a command in help output
type HelpCommand struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Flags       []string `json:"flags,omitempty"`
}

// HelpResponse represents the help output
type HelpResponse struct {
	Version     string        `json:"version"`
	Commands    []HelpCommand `json:"commands"`
	GlobalFlags []string      `json:"global_flags"`
}

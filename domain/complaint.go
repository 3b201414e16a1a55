package domain

import "time"

type ComplaintStatus string

const (
	ComplaintOpen      ComplaintStatus = "OPEN"
	ComplaintResolved  ComplaintStatus = "RESOLVED"
	ComplaintDismissed ComplaintStatus = "DISMISSED"
)

// ComplaintTarget carries the reported user with its moderation counters.
type ComplaintTarget struct {
	Id          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	ReportCount int    `json:"reportCount"`
	Blocked     bool   `json:"blocked"`
}

type Complaint struct {
	Id         string          `json:"id"`
	Status     ComplaintStatus `json:"status"`
	Reason     string          `json:"reason"`
	Details    string          `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	Reporter   UserRef         `json:"reporter"`
	TargetUser ComplaintTarget `json:"targetUser"`
	Request    *RequestRow     `json:"request,omitempty"`
}

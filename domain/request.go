package domain

import "time"

type RequestScope string

const (
	ScopeAllSellers      RequestScope = "ALL_SELLERS"
	ScopeCategorySellers RequestScope = "CATEGORY_SELLERS"
)

// RequestRow is one buyer request in the admin feed.
type RequestRow struct {
	Id        string       `json:"id"`
	Title     string       `json:"title"`
	Scope     RequestScope `json:"scope"`
	ImageUrl  string       `json:"imageUrl,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	Category  *Category    `json:"category,omitempty"`
	Buyer     *UserRef     `json:"buyer,omitempty"`
}

// UserRef is the reduced user embedded in feed and conversation payloads.
type UserRef struct {
	Id       string `json:"id"`
	FullName string `json:"fullName"`
}

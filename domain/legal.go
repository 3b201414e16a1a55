package domain

import "time"

type LegalType string

const (
	LegalPrivacy LegalType = "PRIVACY"
	LegalTerms   LegalType = "TERMS"
)

func (t LegalType) Valid() bool {
	return t == LegalPrivacy || t == LegalTerms
}

type LegalPage struct {
	Type      LegalType  `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

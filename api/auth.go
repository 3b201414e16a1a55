package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tapsoran/admintui/domain"
)

// LoginResponse is the raw payload of POST /auth/login. The role check
// happens in the session manager, not here: this method only reports what
// the server said.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.send(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
			msg := apiErr.Message
			if msg == "" {
				msg = "invalid email or password"
			}
			return nil, &AuthError{Message: msg}
		}
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, &AuthError{Message: "malformed login response"}
	}
	return &out, nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tapsoran/admintui/domain"
)

func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var out domain.Stats
	if err := c.get(ctx, "/admin/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.get(ctx, "/admin/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	var out domain.Category
	err := c.send(ctx, http.MethodPost, "/admin/categories", map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	var out domain.Category
	err := c.send(ctx, http.MethodPut, "/admin/categories/"+url.PathEscape(id), map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/admin/categories/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.get(ctx, "/admin/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BlockUser(ctx context.Context, id, reason string) error {
	return c.send(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/block", map[string]string{"reason": reason}, nil)
}

func (c *Client) UnblockUser(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/unblock", nil, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) FreezeUser(ctx context.Context, id string, hours int, reason string) error {
	return c.send(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/freeze", map[string]any{
		"hours":  hours,
		"reason": reason,
	}, nil)
}

func (c *Client) UnfreezeUser(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/unfreeze", map[string]string{}, nil)
}

func (c *Client) Requests(ctx context.Context) ([]domain.RequestRow, error) {
	var out []domain.RequestRow
	if err := c.get(ctx, "/admin/requests", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteRequest(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/admin/requests/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DeleteAllRequests(ctx context.Context) error {
	return c.send(ctx, http.MethodDelete, "/admin/requests", nil, nil)
}

func (c *Client) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	var out []domain.Conversation
	if err := c.get(ctx, "/admin/conversations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ConversationMessages(ctx context.Context, id string) (*domain.ConversationDetail, error) {
	var out domain.ConversationDetail
	if err := c.get(ctx, "/admin/conversations/"+url.PathEscape(id)+"/messages", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Complaints lists complaints, optionally restricted to one status.
// An empty status (or "ALL") fetches everything.
func (c *Client) Complaints(ctx context.Context, status string) ([]domain.Complaint, error) {
	path := "/admin/complaints"
	if status != "" && status != "ALL" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []domain.Complaint
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetComplaintStatus(ctx context.Context, id string, status domain.ComplaintStatus) error {
	return c.send(ctx, http.MethodPatch, "/admin/complaints/"+url.PathEscape(id)+"/status", map[string]string{
		"status": string(status),
	}, nil)
}

// BlockFromComplaint blocks the complaint's target user with a deadline.
// An empty blockedUntil means an open-ended block.
func (c *Client) BlockFromComplaint(ctx context.Context, id, reason, blockedUntil string) error {
	return c.send(ctx, http.MethodPost, "/admin/complaints/"+url.PathEscape(id)+"/block", map[string]string{
		"reason":       reason,
		"blockedUntil": blockedUntil,
	}, nil)
}

func (c *Client) RiskUsers(ctx context.Context) ([]domain.RiskUser, error) {
	var out []domain.RiskUser
	if err := c.get(ctx, "/admin/risk-users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LegalPage(ctx context.Context, t domain.LegalType) (*domain.LegalPage, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown legal page type: %s", t)
	}
	var out domain.LegalPage
	if err := c.get(ctx, "/admin/legal/"+string(t), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveLegalPage(ctx context.Context, t domain.LegalType, title, content string) error {
	if !t.Valid() {
		return fmt.Errorf("unknown legal page type: %s", t)
	}
	return c.send(ctx, http.MethodPut, "/admin/legal/"+string(t), map[string]string{
		"title":   title,
		"content": content,
	}, nil)
}

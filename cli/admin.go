package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/util"
)

func (h *Handler) handleStats(ctx context.Context) error {
	stats, err := h.api.Stats(ctx)
	if err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		h.output.JSON(StatsResponse{
			Users:      stats.Users,
			Categories: stats.Categories,
			Requests:   stats.Requests,
		})
	} else {
		h.output.Print("Users:      %d\n", stats.Users)
		h.output.Print("Categories: %d\n", stats.Categories)
		h.output.Print("Requests:   %d\n", stats.Requests)
	}
	return nil
}

func (h *Handler) handleUsers(ctx context.Context, args []string) error {
	users, err := h.api.Users(ctx)
	if err != nil {
		h.output.Error(err)
		return err
	}
	if len(args) > 0 {
		users = domain.FilterUsers(users, strings.Join(args, " "))
	}

	if h.output.IsJSON() {
		items := make([]UserItem, 0, len(users))
		for _, u := range users {
			items = append(items, UserItem{
				ID:       u.Id,
				Role:     string(u.Role),
				FullName: u.FullName,
				Email:    u.Email,
				Blocked:  u.Blocked,
			})
		}
		h.output.JSON(UsersResponse{Users: items, Count: len(items)})
		return nil
	}

	if len(users) == 0 {
		h.output.Println("No users.")
		return nil
	}
	for _, u := range users {
		marker := " "
		if u.Blocked {
			marker = "B"
		}
		h.output.Print("%s %-12s %-28s %s\n", marker, u.Role, util.Truncate(u.FullName, 28), u.Email)
	}
	h.output.Print("(%d total)\n", len(users))
	return nil
}

func (h *Handler) handleCategories(ctx context.Context) error {
	categories, err := h.api.Categories(ctx)
	if err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		items := make([]CategoryItem, 0, len(categories))
		for _, c := range categories {
			items = append(items, CategoryItem{ID: c.Id, Name: c.Name})
		}
		h.output.JSON(CategoriesResponse{Categories: items, Count: len(items)})
		return nil
	}

	if len(categories) == 0 {
		h.output.Println("No categories.")
		return nil
	}
	for _, c := range categories {
		h.output.Print("%s  %s\n", c.Id, c.Name)
	}
	h.output.Print("(%d total)\n", len(categories))
	return nil
}

func (h *Handler) handleRequests(ctx context.Context) error {
	requests, err := h.api.Requests(ctx)
	if err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		items := make([]RequestItem, 0, len(requests))
		for _, r := range requests {
			item := RequestItem{
				ID:        r.Id,
				Title:     r.Title,
				Scope:     string(r.Scope),
				CreatedAt: r.CreatedAt,
			}
			if r.Category != nil {
				item.Category = r.Category.Name
			}
			if r.Buyer != nil {
				item.Buyer = r.Buyer.FullName
			}
			items = append(items, item)
		}
		h.output.JSON(RequestsResponse{Requests: items, Count: len(items)})
		return nil
	}

	if len(requests) == 0 {
		h.output.Println("No requests.")
		return nil
	}
	for _, r := range requests {
		category := "-"
		if r.Category != nil {
			category = r.Category.Name
		}
		buyer := "-"
		if r.Buyer != nil {
			buyer = r.Buyer.FullName
		}
		h.output.Print("%s  %-18s %-20s %s\n",
			util.Truncate(r.Title, 32), category, buyer, util.FormatTimeAgo(r.CreatedAt))
	}
	h.output.Print("(%d total)\n", len(requests))
	return nil
}

func (h *Handler) handleComplaints(ctx context.Context, args []string) error {
	status := ""
	if len(args) > 0 {
		status = strings.ToUpper(args[0])
		switch status {
		case "OPEN", "RESOLVED", "DISMISSED", "ALL":
		default:
			err := fmt.Errorf("unknown complaint status: %s", args[0])
			h.output.Error(err)
			return err
		}
	}

	complaints, err := h.api.Complaints(ctx, status)
	if err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		items := make([]ComplaintItem, 0, len(complaints))
		for _, c := range complaints {
			items = append(items, ComplaintItem{
				ID:        c.Id,
				Status:    string(c.Status),
				Reason:    c.Reason,
				Reporter:  c.Reporter.FullName,
				Target:    c.TargetUser.FullName,
				CreatedAt: c.CreatedAt,
			})
		}
		h.output.JSON(ComplaintsResponse{Complaints: items, Count: len(items)})
		return nil
	}

	if len(complaints) == 0 {
		h.output.Println("No complaints.")
		return nil
	}
	for _, c := range complaints {
		h.output.Print("[%s] %s -> %s: %s (%s)\n",
			c.Status, c.Reporter.FullName, c.TargetUser.FullName,
			util.Truncate(c.Reason, 40), util.FormatTimeAgo(c.CreatedAt))
	}
	h.output.Print("(%d total)\n", len(complaints))
	return nil
}

func (h *Handler) handleRiskUsers(ctx context.Context, args []string) error {
	rows, err := h.api.RiskUsers(ctx)
	if err != nil {
		h.output.Error(err)
		return err
	}
	if len(args) > 0 {
		rows = domain.FilterRiskUsers(rows, strings.Join(args, " "))
	}

	if h.output.IsJSON() {
		items := make([]RiskUserItem, 0, len(rows))
		for _, r := range rows {
			items = append(items, RiskUserItem{
				ID:              r.Id,
				FullName:        r.FullName,
				Email:           r.Email,
				ReportCount:     r.ReportCount,
				Strikes:         r.ModerationStrikes,
				Blocked:         r.Blocked,
				ChatFrozenUntil: r.ChatFrozenUntil,
			})
		}
		h.output.JSON(RiskUsersResponse{RiskUsers: items, Count: len(items)})
		return nil
	}

	if len(rows) == 0 {
		h.output.Println("No flagged users.")
		return nil
	}
	for _, r := range rows {
		h.output.Print("%-28s reports:%d strikes:%d", util.Truncate(r.FullName, 28), r.ReportCount, r.ModerationStrikes)
		if r.Blocked {
			h.output.Print(" BLOCKED")
		}
		if r.ChatFrozenUntil != nil {
			h.output.Print(" frozen until %s", r.ChatFrozenUntil.Format(util.DateTimeFormat()))
		}
		h.output.Print("\n")
	}
	h.output.Print("(%d total)\n", len(rows))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/util"
)

// Backend is the slice of the API client the CLI commands need.
type Backend interface {
	Stats(ctx context.Context) (*domain.Stats, error)
	Users(ctx context.Context) ([]domain.User, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Requests(ctx context.Context) ([]domain.RequestRow, error)
	Complaints(ctx context.Context, status string) ([]domain.Complaint, error)
	RiskUsers(ctx context.Context) ([]domain.RiskUser, error)
	Notifications(ctx context.Context) ([]domain.Notification, error)
	MarkAllNotificationsRead(ctx context.Context) error
	MarkNotificationTypeRead(ctx context.Context, t domain.NotificationType) error
}

// Handler processes CLI commands
type Handler struct {
	out      io.Writer
	api      Backend
	output   *Output
	jsonMode bool
	conf     *util.AppConfig
}

// NewHandler creates a new CLI handler
func NewHandler(out io.Writer, api Backend, conf *util.AppConfig) *Handler {
	return &Handler{
		out:      out,
		api:      api,
		jsonMode: false,
		conf:     conf,
	}
}

// Execute parses and executes a CLI command
func (h *Handler) Execute(ctx context.Context, args []string) error {
	// Parse global flags first
	args, h.jsonMode = parseGlobalFlags(args)

	// Create output handler
	h.output = NewOutput(h.out, h.jsonMode)

	// No command provided
	if len(args) == 0 {
		return h.showHelp()
	}

	// Route to command handler
	cmd := strings.ToLower(args[0])
	cmdArgs := args[1:]

	switch cmd {
	case "stats":
		return h.handleStats(ctx)
	case "users":
		return h.handleUsers(ctx, cmdArgs)
	case "categories":
		return h.handleCategories(ctx)
	case "requests":
		return h.handleRequests(ctx)
	case "complaints":
		return h.handleComplaints(ctx, cmdArgs)
	case "risk-users":
		return h.handleRiskUsers(ctx, cmdArgs)
	case "notifications":
		return h.handleNotifications(ctx)
	case "read-all":
		return h.handleReadAll(ctx)
	case "read-type":
		return h.handleReadType(ctx, cmdArgs)
	case "--help", "-h", "help":
		return h.showHelp()
	default:
		err := fmt.Errorf("unknown command: %s", cmd)
		h.output.Error(err)
		return err
	}
}

// parseGlobalFlags extracts global flags like --json from args
func parseGlobalFlags(args []string) ([]string, bool) {
	jsonMode := false
	var filtered []string

	for _, arg := range args {
		switch arg {
		case "--json", "-j":
			jsonMode = true
		default:
			filtered = append(filtered, arg)
		}
	}

	return filtered, jsonMode
}

// showHelp displays help information
func (h *Handler) showHelp() error {
	if h.output.IsJSON() {
		help := HelpResponse{
			Version: util.GetVersion(),
			Commands: []HelpCommand{
				{Name: "stats", Description: "Show platform totals", Usage: "stats"},
				{Name: "users", Description: "List users, optionally filtered", Usage: "users [query]"},
				{Name: "categories", Description: "List categories", Usage: "categories"},
				{Name: "requests", Description: "List buyer requests", Usage: "requests"},
				{Name: "complaints", Description: "List complaints", Usage: "complaints [OPEN|RESOLVED|DISMISSED]"},
				{Name: "risk-users", Description: "List flagged users, optionally filtered", Usage: "risk-users [query]"},
				{Name: "notifications", Description: "Show admin notifications", Usage: "notifications"},
				{Name: "read-all", Description: "Mark all notifications read", Usage: "read-all"},
				{Name: "read-type", Description: "Mark one notification type read", Usage: "read-type <type>"},
			},
			GlobalFlags: []string{"--json, -j: output in JSON format"},
		}
		h.output.JSON(help)
	} else {
		h.output.Println(util.GetNameAndVersion())
		h.output.Println("")
		h.output.Println("Commands:")
		h.output.Println("  stats                                 Show platform totals")
		h.output.Println("  users [query]                         List users, optionally filtered")
		h.output.Println("  categories                            List categories")
		h.output.Println("  requests                              List buyer requests")
		h.output.Println("  complaints [OPEN|RESOLVED|DISMISSED]  List complaints")
		h.output.Println("  risk-users [query]                    List flagged users")
		h.output.Println("  notifications                         Show admin notifications")
		h.output.Println("  read-all                              Mark all notifications read")
		h.output.Println("  read-type <type>                      Mark one notification type read")
		h.output.Println("")
		h.output.Println("Global flags:")
		h.output.Println("  --json, -j                            Output in JSON format")
	}
	return nil
}

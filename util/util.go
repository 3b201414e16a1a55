package util

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

//go:embed version.txt
var embeddedVersion string

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

// GetConfigDir returns (and creates if needed) the user config directory.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, Name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// ResolveFilePath resolves a file name to the working directory if present
// there, otherwise to the user config directory.
func ResolveFilePath(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	dir, err := GetConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, name)
}

// ResolveMediaURL turns a possibly-relative media path into an absolute URL
// against the given API origin. Empty input stays empty, absolute input is
// returned unchanged, so the function is idempotent.
func ResolveMediaURL(origin, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(origin, "/") + "/" + strings.TrimPrefix(path, "/")
}

// Truncate shortens a string to a maximum display width, appending "..."
// when it had to cut. Width-aware so wide runes don't break table layout.
func Truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// FormatTimeAgo formats a time as a relative string (e.g. "2h ago")
func FormatTimeAgo(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		minutes := int(duration.Minutes())
		return fmt.Sprintf("%dm ago", minutes)
	} else if duration < 24*time.Hour {
		hours := int(duration.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if duration < 7*24*time.Hour {
		days := int(duration.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	} else if duration < 30*24*time.Hour {
		weeks := int(duration.Hours() / 24 / 7)
		return fmt.Sprintf("%dw ago", weeks)
	} else if duration < 365*24*time.Hour {
		months := int(duration.Hours() / 24 / 30)
		return fmt.Sprintf("%dmo ago", months)
	} else {
		years := int(duration.Hours() / 24 / 365)
		return fmt.Sprintf("%dy ago", years)
	}
}

func DateTimeFormat() string {
	return "2006-01-02 15:04"
}

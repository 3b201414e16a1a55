package util

import (
	"testing"
)

func TestResolveMediaURL(t *testing.T) {
	origin := "http://localhost:4000"

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input stays empty",
			input: "",
			want:  "",
		},
		{
			name:  "absolute http url unchanged",
			input: "http://x/y",
			want:  "http://x/y",
		},
		{
			name:  "absolute https url unchanged",
			input: "https://cdn.tapsoran.az/img/a.png",
			want:  "https://cdn.tapsoran.az/img/a.png",
		},
		{
			name:  "relative path gets origin prefix",
			input: "/img/a.png",
			want:  "http://localhost:4000/img/a.png",
		},
		{
			name:  "relative path without leading slash",
			input: "sounds/notify.wav",
			want:  "http://localhost:4000/sounds/notify.wav",
		},
		{
			name:  "relative audio attachment",
			input: "/uploads/audio/msg-17.ogg",
			want:  "http://localhost:4000/uploads/audio/msg-17.ogg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMediaURL(origin, tt.input)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}

			// Applying the function to its own output must be a no-op
			again := ResolveMediaURL(origin, got)
			if again != got {
				t.Errorf("Expected idempotent result %q, got %q", got, again)
			}
		})
	}
}

func TestResolveMediaURLTrailingSlashOrigin(t *testing.T) {
	got := ResolveMediaURL("http://localhost:4000/", "/img/a.png")
	if got != "http://localhost:4000/img/a.png" {
		t.Errorf("Expected single slash join, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 20); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	got := Truncate("a very long string that will not fit", 10)
	if len(got) == 0 || got == "a very long string that will not fit" {
		t.Errorf("Expected truncated string, got %q", got)
	}
}

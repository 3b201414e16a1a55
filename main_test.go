package main

import (
	"os/exec"
	"strings"
	"testing"
)

func TestVersionFlag(t *testing.T) {
	// Build the binary first
	buildCmd := exec.Command("go", "build", "-o", "admintui_test")
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}
	defer exec.Command("rm", "admintui_test").Run()

	// Test -v flag
	cmd := exec.Command("./admintui_test", "-v")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to run with -v flag: %v", err)
	}

	outputStr := strings.TrimSpace(string(output))

	// Check if output starts with "admintui / "
	if !strings.HasPrefix(outputStr, "admintui / ") {
		t.Errorf("Expected output to start with 'admintui / ', got: %s", outputStr)
	}

	// Check if version format is correct (should be semantic versioning)
	parts := strings.Split(outputStr, "admintui / ")
	if len(parts) != 2 {
		t.Fatalf("Expected format 'admintui / X.Y.Z', got: %s", outputStr)
	}

	version := parts[1]
	versionParts := strings.Split(version, ".")
	if len(versionParts) != 3 {
		t.Errorf("Expected semantic version format X.Y.Z, got: %s", version)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediastore/internal/testsupport"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func TestConfigInitCreatesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite refuses to clobber the file.
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigShowRendersSettings(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "photos_dir")
	requireContains(t, out, "image_max_bytes")
}

func TestScanReportsCleanRoot(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "scan", "photos")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "No discrepancies found")
}

func TestScanRejectsUnknownClass(t *testing.T) {
	configPath := writeTestConfig(t)

	if _, err := runCLI(t, "--config", configPath, "scan", "music"); err == nil {
		t.Fatal("expected error for unknown asset class")
	}
}

func TestCleanupRequiresConfirm(t *testing.T) {
	configPath := writeTestConfig(t)

	_, err := runCLI(t, "--config", configPath, "cleanup", "photos", "u1_Amy/orphan.jpg")
	if err == nil || !strings.Contains(err.Error(), "--confirm") {
		t.Fatalf("expected confirm guard, got %v", err)
	}
}

func TestRenameUnknownOwner(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "rename", "ghost", "New Name")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	requireContains(t, out, "no-assets")
}

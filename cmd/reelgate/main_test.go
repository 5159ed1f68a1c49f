package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[telegram]
token = "test-token"

[paths]
data_dir = %q
log_dir = %q
`, filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("output = %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected an error when the config already exists")
	}
}

func TestSponsorMaintenanceRoundTrip(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "sponsors", "list")
	if err != nil {
		t.Fatalf("sponsors list: %v", err)
	}
	if !strings.Contains(out, "empty") {
		t.Fatalf("output = %q", out)
	}

	if _, err := runCLI(t, "--config", configPath, "sponsors", "add", "@movies"); err != nil {
		t.Fatalf("sponsors add: %v", err)
	}
	if _, err := runCLI(t, "--config", configPath, "sponsors", "add", "@movies"); err == nil {
		t.Fatal("expected duplicate add to fail")
	}
	if _, err := runCLI(t, "--config", configPath, "sponsors", "add", "no-at-sign"); err == nil {
		t.Fatal("expected invalid channel name to fail")
	}

	out, err = runCLI(t, "--config", configPath, "sponsors", "list")
	if err != nil {
		t.Fatalf("sponsors list: %v", err)
	}
	if !strings.Contains(out, "@movies") {
		t.Fatalf("output = %q", out)
	}

	if _, err := runCLI(t, "--config", configPath, "sponsors", "remove", "@movies"); err != nil {
		t.Fatalf("sponsors remove: %v", err)
	}
	if _, err := runCLI(t, "--config", configPath, "sponsors", "remove", "@movies"); err == nil {
		t.Fatal("expected removing an absent channel to fail")
	}
}

func TestCatalogCommands(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	if !strings.Contains(out, "empty") {
		t.Fatalf("output = %q", out)
	}

	if _, err := runCLI(t, "--config", configPath, "catalog", "show", "42"); err == nil {
		t.Fatal("expected show of a missing code to fail")
	}
	if _, err := runCLI(t, "--config", configPath, "catalog", "remove", "42"); err == nil {
		t.Fatal("expected remove of a missing code to fail")
	}
	if _, err := runCLI(t, "--config", configPath, "catalog", "show", "abc"); err == nil {
		t.Fatal("expected a non-numeric code to fail")
	}
}

func TestConfigShowRedactsToken(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "test-token") {
		t.Fatalf("token leaked: %q", out)
	}
	if !strings.Contains(out, "<redacted>") {
		t.Fatalf("output = %q", out)
	}
}

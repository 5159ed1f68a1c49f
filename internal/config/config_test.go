package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelgate/internal/config"
	"reelgate/internal/services"
)

func TestLoadDefaultConfigUsesEnvTokenAndExpandsPaths(t *testing.T) {
	t.Setenv("REELGATE_TOKEN", "123:test-token")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "reelgate")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogDir != filepath.Join(wantData, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Telegram.Token != "123:test-token" {
		t.Fatalf("expected token from env, got %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.BaseURL != config.Default().Telegram.BaseURL {
		t.Fatalf("unexpected base url: %q", cfg.Telegram.BaseURL)
	}
	if cfg.Workflow.CancelWord != "q" {
		t.Fatalf("unexpected cancel word: %q", cfg.Workflow.CancelWord)
	}
	if cfg.Workflow.SessionTimeout != config.Default().Workflow.SessionTimeout {
		t.Fatalf("unexpected session timeout: %d", cfg.Workflow.SessionTimeout)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "reelgate.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
}

func TestLoadParsesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[telegram]",
		`token = "42:abc"`,
		"poll_timeout = 5",
		"",
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		"",
		"[access]",
		"admin_ids = [7, 8]",
		"",
		"[workflow]",
		`cancel_word = "stop"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Telegram.PollTimeout != 5 {
		t.Fatalf("unexpected poll timeout: %d", cfg.Telegram.PollTimeout)
	}
	if !cfg.IsAdmin(7) || !cfg.IsAdmin(8) || cfg.IsAdmin(9) {
		t.Fatalf("unexpected admin set: %v", cfg.Access.AdminIDs)
	}
	if cfg.Workflow.CancelWord != "stop" {
		t.Fatalf("unexpected cancel word: %q", cfg.Workflow.CancelWord)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantSub string
	}{
		{
			name:    "missing token",
			mutate:  func(c *config.Config) { c.Telegram.Token = "" },
			wantSub: "telegram.token",
		},
		{
			name:    "bad base url",
			mutate:  func(c *config.Config) { c.Telegram.BaseURL = "telegram.org" },
			wantSub: "telegram.base_url",
		},
		{
			name:    "zero session timeout",
			mutate:  func(c *config.Config) { c.Workflow.SessionTimeout = 0 },
			wantSub: "workflow.session_timeout",
		},
		{
			name:    "multi-word cancel token",
			mutate:  func(c *config.Config) { c.Workflow.CancelWord = "stop now" },
			wantSub: "workflow.cancel_word",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *config.Config) { c.Logging.Level = "loud" },
			wantSub: "logging.level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Telegram.Token = "42:abc"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("error %q should carry the configuration marker", err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	t.Setenv("REELGATE_TOKEN", "sample:token")
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

package testsupport

import (
	"path/filepath"
	"testing"

	"reelgate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Telegram.Token = "1000:test-token"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithAdmins sets the privileged operator IDs on the test config.
func WithAdmins(ids ...int64) ConfigOption {
	return func(c *config.Config) {
		c.Access.AdminIDs = ids
	}
}

// WithCancelWord overrides the workflow cancellation token.
func WithCancelWord(word string) ConfigOption {
	return func(c *config.Config) {
		c.Workflow.CancelWord = word
	}
}

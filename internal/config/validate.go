package config

import (
	"errors"
	"fmt"
	"strings"

	"reelgate/internal/services"
)

// Validate ensures the configuration is usable. Failures carry
// services.ErrConfiguration so callers can tell a bad config from a runtime
// fault.
func (c *Config) Validate() error {
	for _, validate := range []func() error{
		c.validateTelegram,
		c.validatePaths,
		c.validateWorkflow,
		c.validateLogging,
	} {
		if err := validate(); err != nil {
			return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validateTelegram() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/reelgate/config.toml"
		}
		return fmt.Errorf("telegram.token is required. Set REELGATE_TOKEN env var or edit %s (create with 'reelgate config init')", defaultPath)
	}
	if !strings.HasPrefix(c.Telegram.BaseURL, "http://") && !strings.HasPrefix(c.Telegram.BaseURL, "https://") {
		return fmt.Errorf("telegram.base_url must be an http(s) URL, got %q", c.Telegram.BaseURL)
	}
	return ensurePositiveMap(map[string]int{
		"telegram.poll_timeout":    c.Telegram.PollTimeout,
		"telegram.request_timeout": c.Telegram.RequestTimeout,
	})
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"workflow.session_timeout": c.Workflow.SessionTimeout,
		"workflow.sweep_interval":  c.Workflow.SweepInterval,
	}); err != nil {
		return err
	}
	if strings.ContainsAny(c.Workflow.CancelWord, " \t\n") {
		return errors.New("workflow.cancel_word must be a single word")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be greater than zero", name)
		}
	}
	return nil
}

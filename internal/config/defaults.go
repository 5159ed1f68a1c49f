package config

const (
	defaultDataDir         = "~/.local/share/reelgate"
	defaultTelegramBaseURL = "https://api.telegram.org"
	defaultPollTimeout     = 30
	defaultRequestTimeout  = 10
	defaultSessionTimeout  = 1800
	defaultSweepInterval   = 300
	defaultCancelWord      = "q"
	defaultLogLevel        = "info"
	defaultLogFormat       = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Telegram: Telegram{
			BaseURL:        defaultTelegramBaseURL,
			PollTimeout:    defaultPollTimeout,
			RequestTimeout: defaultRequestTimeout,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Workflow: Workflow{
			SessionTimeout: defaultSessionTimeout,
			SweepInterval:  defaultSweepInterval,
			CancelWord:     defaultCancelWord,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

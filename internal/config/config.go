// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Addr          string `env:"ADDR" envDefault:":8080"`
	BotToken      string `env:"TG_BOT_TOKEN"`
	WebhookSecret string `env:"TG_WEBHOOK_SECRET"`
	WebhookURL    string `env:"TG_WEBHOOK_URL"`
	DBPath        string `env:"DB_PATH" envDefault:"tgbot.db"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Relay takes precedence over direct service-account credentials.
	RelayURL string `env:"SHEETS_RELAY_URL"`

	ServiceAccountEmail string `env:"GOOGLE_SA_EMAIL"`
	PrivateKeyPEM       string `env:"GOOGLE_SA_PRIVATE_KEY"`

	SpreadsheetID  string `env:"SHEETS_SPREADSHEET_ID"`
	SpreadsheetURL string `env:"SHEETS_SPREADSHEET_URL"`
	SheetGID       string `env:"SHEETS_GID"`
	SheetRange     string `env:"SHEETS_RANGE"`
}

// relayAliases are older env names still accepted for the relay URL.
var relayAliases = []string{"APPS_SCRIPT_URL", "GOOGLE_SCRIPT_URL", "RELAY_URL"}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.RelayURL == "" {
		for _, key := range relayAliases {
			if v := strings.TrimSpace(os.Getenv(key)); v != "" {
				cfg.RelayURL = v
				break
			}
		}
	}

	// Keys arrive from the environment with literal "\n" sequences.
	cfg.PrivateKeyPEM = strings.ReplaceAll(cfg.PrivateKeyPEM, `\n`, "\n")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable. Only the bot token is
// strictly required: without it no user-facing message can be sent at all.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BotToken) == "" {
		return fmt.Errorf("TG_BOT_TOKEN is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	return nil
}

// HasRelay reports whether a pre-authorized relay endpoint is configured.
func (c *Config) HasRelay() bool { return c.RelayURL != "" }

// HasServiceAccount reports whether direct spreadsheet credentials are set.
func (c *Config) HasServiceAccount() bool {
	return c.ServiceAccountEmail != "" && c.PrivateKeyPEM != ""
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds all runtime settings. Every field is read from the
// environment, secrets are never taken from flags so that they do not
// show up in process listings.
type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"8080"`

	// DBPath is the path to the SQLite database file.
	DBPath string `env:"DB_PATH" envDefault:"data/centavo.db"`

	// CORSAllowOrigins is a space separated list of origins the web
	// frontend is served from. CORS is disabled when empty.
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:" "`

	// EnablePprof exposes the pprof endpoints when set.
	EnablePprof bool `env:"ENABLE_PPROF"`

	// TelegramBotToken authenticates the backend against the Telegram
	// Bot API for outgoing messages.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	// TelegramWebhookSecret is the secret token Telegram sends with
	// every webhook request.
	TelegramWebhookSecret string `env:"TELEGRAM_WEBHOOK_SECRET"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

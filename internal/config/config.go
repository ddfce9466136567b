// Package config loads runtime configuration from WALLETPING_-prefixed
// environment variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Redis configures the subscription store connection.
type Redis struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

// Webhook configures the inbound event receiver.
type Webhook struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	// PublicURL is the externally reachable URL of the receiver, handed to
	// the provider as the stream callback target.
	PublicURL string `envconfig:"PUBLIC_URL" required:"true"`
	// Secret is the pre-shared key the provider signs event bodies with.
	Secret string `envconfig:"SECRET" required:"true"`
}

// Streams configures the external stream provider client.
type Streams struct {
	APIKey              string        `envconfig:"API_KEY" required:"true"`
	EVMBaseURL          string        `envconfig:"EVM_BASE_URL"`
	SingleLedgerBaseURL string        `envconfig:"SL_BASE_URL"`
	Timeout             time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// Telegram configures outbound alert delivery.
type Telegram struct {
	Token   string        `envconfig:"TOKEN" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// RateLimit configures the per-user command budget.
type RateLimit struct {
	Commands int64         `envconfig:"COMMANDS" default:"10"`
	Window   time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Config is the full runtime configuration.
type Config struct {
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`

	Redis     Redis     `envconfig:"REDIS"`
	Webhook   Webhook   `envconfig:"WEBHOOK"`
	Streams   Streams   `envconfig:"STREAMS"`
	Telegram  Telegram  `envconfig:"TELEGRAM"`
	RateLimit RateLimit `envconfig:"RATE_LIMIT"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("walletping", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

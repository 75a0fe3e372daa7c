package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime settings for the tokengate CLI.
type Config struct {
	ServerEndpointAddr string        `env:"TOKENGATE_CLI_SERVER_ADDR"`
	RequestTimeout     time.Duration `env:"TOKENGATE_CLI_REQUEST_TIMEOUT"`
	// SessionDB is the SQLite file holding the saved token pair.
	SessionDB string `env:"TOKENGATE_CLI_SESSION_DB"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
	c.SessionDB = "session.db"
}

// LoadConfig constructs a Config from defaults, TOKENGATE_CLI_* environment
// variables and command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("request timeout must be positive, got %s", cfg.RequestTimeout)
	}
	return cfg, nil
}

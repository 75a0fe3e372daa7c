// Package config handles configuration for the tokengate server: defaults,
// an optional YAML/JSON file, TOKENGATE_* environment variables and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	RevocationSQL   = "sql"
	RevocationRedis = "redis"

	// DefaultSecretKey signs tokens in local and dev runs; prod must override it.
	DefaultSecretKey = "secretKey"
)

// Config holds runtime settings for the server.
//
// Durations in a YAML file or in the environment use Go syntax ("60m",
// "168h"); JSON files take nanoseconds.
type Config struct {
	Env      string `yaml:"env" json:"env" env:"TOKENGATE_ENV"`
	GRPCAddr string `yaml:"grpc_addr" json:"grpc_addr" env:"TOKENGATE_GRPC_ADDR"`
	HTTPAddr string `yaml:"http_addr" json:"http_addr" env:"TOKENGATE_HTTP_ADDR"`

	StorageDriver string `yaml:"storage_driver" json:"storage_driver" env:"TOKENGATE_STORAGE_DRIVER"`
	DatabaseDSN   string `yaml:"database_dsn" json:"database_dsn" env:"TOKENGATE_DATABASE_DSN"`

	RevocationBackend string `yaml:"revocation_backend" json:"revocation_backend" env:"TOKENGATE_REVOCATION_BACKEND"`
	RedisAddr         string `yaml:"redis_addr" json:"redis_addr" env:"TOKENGATE_REDIS_ADDR"`
	RedisPassword     string `yaml:"redis_password" json:"redis_password" env:"TOKENGATE_REDIS_PASSWORD"`
	RedisDB           int    `yaml:"redis_db" json:"redis_db" env:"TOKENGATE_REDIS_DB"`

	// SecretKey is the HS256 key. The default is for local runs only.
	SecretKey string `yaml:"secret_key" json:"secret_key" env:"TOKENGATE_SECRET_KEY"`
	Issuer    string `yaml:"issuer" json:"issuer" env:"TOKENGATE_ISSUER"`
	Audience  string `yaml:"audience" json:"audience" env:"TOKENGATE_AUDIENCE"`

	AccessTokenValidity time.Duration `yaml:"access_token_validity" json:"access_token_validity" env:"TOKENGATE_ACCESS_TOKEN_VALIDITY"`
	// RefreshTokenLoginValidity applies to tokens minted by login.
	RefreshTokenLoginValidity time.Duration `yaml:"refresh_token_login_validity" json:"refresh_token_login_validity" env:"TOKENGATE_REFRESH_TOKEN_LOGIN_VALIDITY"`
	// RefreshTokenValidity applies to registration and rotation.
	RefreshTokenValidity time.Duration `yaml:"refresh_token_validity" json:"refresh_token_validity" env:"TOKENGATE_REFRESH_TOKEN_VALIDITY"`
	PruneInterval        time.Duration `yaml:"prune_interval" json:"prune_interval" env:"TOKENGATE_PRUNE_INTERVAL"`

	SentryDSN string `yaml:"sentry_dsn" json:"sentry_dsn" env:"TOKENGATE_SENTRY_DSN"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Env = "local"
	c.GRPCAddr = ":50051"
	c.HTTPAddr = ":8080"
	c.StorageDriver = DriverSQLite
	c.DatabaseDSN = "tokengate.db"
	c.RevocationBackend = RevocationSQL
	c.RedisAddr = "localhost:6379"
	c.RedisDB = 0
	c.SecretKey = DefaultSecretKey
	c.Issuer = "tokengate"
	c.Audience = "tokengate-clients"
	c.AccessTokenValidity = 60 * time.Minute
	c.RefreshTokenLoginValidity = 24 * time.Hour
	c.RefreshTokenValidity = 7 * 24 * time.Hour
	c.PruneInterval = time.Hour
}

// LoadConfig builds the configuration from os.Args and the environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, the file named by -c/-config (which cleanenv reads
// together with the environment), or the environment alone, and finally
// the flags found in args. The result is validated.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigPath(args); path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case "local", "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("env must be local, dev or prod, got %q", c.Env))
	}

	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	} else if c.Env == "prod" && c.SecretKey == DefaultSecretKey {
		errs = append(errs, errors.New("the default secret key cannot be used in prod"))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("issuer is required"))
	}
	if c.Audience == "" {
		errs = append(errs, errors.New("audience is required"))
	}

	for name, d := range map[string]time.Duration{
		"access token validity":        c.AccessTokenValidity,
		"refresh token login validity": c.RefreshTokenLoginValidity,
		"refresh token validity":       c.RefreshTokenValidity,
		"prune interval":               c.PruneInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	switch c.StorageDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}

	switch c.RevocationBackend {
	case RevocationSQL:
	case RevocationRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis address is required for the redis revocation backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported revocation backend %q", c.RevocationBackend))
	}

	return errors.Join(errs...)
}

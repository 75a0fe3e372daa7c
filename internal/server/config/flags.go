package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/tokengate/internal/flagx"
)

var ownFlags = []string{
	"-env", "-a", "-http", "-driver", "-d", "-revocation", "-redis",
	"-s", "-iss", "-aud", "-t", "-rl", "-r", "-prune", "-sentry",
}

// parseFlags overlays the flags this package owns. Others in args are
// skipped via flagx.FilterArgs.
//
//	-env string         local | dev | prod
//	-a string           gRPC bind address
//	-http string        HTTP bind address
//	-driver string      postgres | sqlite
//	-d string           database DSN
//	-revocation string  sql | redis
//	-redis string       Redis address
//	-s string           HS256 secret key
//	-iss, -aud string   token issuer and audience
//	-t duration         access token validity
//	-rl duration        refresh token validity for login
//	-r duration         refresh token validity for registration and rotation
//	-prune duration     prune interval
//	-sentry string      Sentry DSN
func parseFlags(c *Config, args []string) error {
	own := flagx.FilterArgs(args, ownFlags)

	fs := flag.NewFlagSet("tokengate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&c.Env, "env", c.Env, "environment: local, dev or prod")
	fs.StringVar(&c.GRPCAddr, "a", c.GRPCAddr, "gRPC bind address")
	fs.StringVar(&c.HTTPAddr, "http", c.HTTPAddr, "HTTP bind address")
	fs.StringVar(&c.StorageDriver, "driver", c.StorageDriver, "storage driver: postgres or sqlite")
	fs.StringVar(&c.DatabaseDSN, "d", c.DatabaseDSN, "database DSN")
	fs.StringVar(&c.RevocationBackend, "revocation", c.RevocationBackend, "revoked access token store: sql or redis")
	fs.StringVar(&c.RedisAddr, "redis", c.RedisAddr, "Redis address")
	fs.StringVar(&c.SecretKey, "s", c.SecretKey, "HS256 secret key")
	fs.StringVar(&c.Issuer, "iss", c.Issuer, "token issuer")
	fs.StringVar(&c.Audience, "aud", c.Audience, "token audience")
	fs.DurationVar(&c.AccessTokenValidity, "t", c.AccessTokenValidity, "access token validity")
	fs.DurationVar(&c.RefreshTokenLoginValidity, "rl", c.RefreshTokenLoginValidity, "refresh token validity for login")
	fs.DurationVar(&c.RefreshTokenValidity, "r", c.RefreshTokenValidity, "refresh token validity for registration and rotation")
	fs.DurationVar(&c.PruneInterval, "prune", c.PruneInterval, "interval between prune runs")
	fs.StringVar(&c.SentryDSN, "sentry", c.SentryDSN, "Sentry DSN")

	if err := fs.Parse(own); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/tokengate/internal/flagx"
)

// parseFlags overlays flags onto cfg.
//
//	-a string     address and port of the backend server
//	-t duration   per-request timeout
//	-s string     session database file
//
// Unknown flags are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-s"})

	fs := flag.NewFlagSet("tokengate-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "session database file")

	return fs.Parse(args)
}

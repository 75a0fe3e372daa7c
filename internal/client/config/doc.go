// Package config loads runtime configuration for the tokengate CLI.
//
// Values come from built-in defaults, then TOKENGATE_CLI_SERVER_ADDR,
// TOKENGATE_CLI_REQUEST_TIMEOUT and TOKENGATE_CLI_SESSION_DB, then the
// -a, -t and -s flags.
package config

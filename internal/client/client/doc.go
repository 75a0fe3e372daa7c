// Package client talks to a tokengate server over gRPC.
//
// GRPCClient holds the current token pair, attaches the access token to
// protected calls and, when one of them comes back Unauthenticated, rotates
// the pair once and retries. Status codes are mapped to the sentinel errors
// in errors.go.
//
// InitDatabase opens the CLI's local SQLite file and applies the embedded
// goose migrations.
package client

// Package cli provides the interactive tokengate command-line client.
//
// It restores a saved session, then runs a REPL with register, guest, login,
// refresh, whoami and logout (revoke) commands. Passwords are read from the
// terminal without echo and wiped after use.
package cli

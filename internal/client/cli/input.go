package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyInput is returned when the user answers a prompt with nothing.
var ErrEmptyInput = errors.New("empty input")

var (
	// readPassword and stdinFd are replaced in tests.
	readPassword = term.ReadPassword
	stdinFd      = func() int { return int(os.Stdin.Fd()) }
)

// PromptLine asks for one line, e.g. "Email: ". A final line without a
// newline still counts.
func PromptLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprintf(w, "%s: ", label)

	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return "", ErrEmptyInput
	}
	return line, nil
}

// PromptSecret reads a secret with echo off. Wipe the result after use.
func PromptSecret(w io.Writer, label string) ([]byte, error) {
	fmt.Fprintf(w, "%s (hidden): ", label)
	defer fmt.Fprintln(w)

	secret, err := readPassword(stdinFd())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	if len(secret) == 0 {
		return nil, ErrEmptyInput
	}
	return secret, nil
}

package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, secret []byte, err error) {
	t.Helper()
	oldRead, oldFd := readPassword, stdinFd
	readPassword = func(int) ([]byte, error) { return secret, err }
	stdinFd = func() int { return 0 }
	t.Cleanup(func() { readPassword, stdinFd = oldRead, oldFd })
}

func TestPromptLine(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "trimmed line", in: "  alice@example.com \n", want: "alice@example.com"},
		{name: "last line without newline", in: "bob@example.com", want: "bob@example.com"},
		{name: "blank answer", in: "   \n", wantErr: ErrEmptyInput},
		{name: "closed input", in: "", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := PromptLine(bufio.NewReader(strings.NewReader(tt.in)), &out, "Email")

			assert.Equal(t, "Email: ", out.String())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptSecret(t *testing.T) {
	stubTerminal(t, []byte("s3cret"), nil)

	var out bytes.Buffer
	got, err := PromptSecret(&out, "Password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(got))
	assert.Equal(t, "Password (hidden): \n", out.String())
}

func TestPromptSecret_Empty(t *testing.T) {
	stubTerminal(t, []byte{}, nil)

	_, err := PromptSecret(io.Discard, "Password")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestPromptSecret_TerminalError(t *testing.T) {
	boom := errors.New("inappropriate ioctl for device")
	stubTerminal(t, nil, boom)

	_, err := PromptSecret(io.Discard, "Password")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "read password")
}

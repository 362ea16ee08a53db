package prompt

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeWith returns a read end of a pipe preloaded with data.
func pipeWith(t *testing.T, data string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSecret_FromPipe(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(pipeWith(t, "s3cret\r\nnext\n"), &out)

	got, err := r.Secret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(got))
	assert.Equal(t, "Password: ", out.String())

	got, err = r.Secret("")
	require.NoError(t, err)
	assert.Equal(t, "next", string(got))
}

func TestSecret_LastLineWithoutNewline(t *testing.T) {
	r := NewReader(pipeWith(t, "tail"), &bytes.Buffer{})
	got, err := r.Secret("")
	require.NoError(t, err)
	assert.Equal(t, "tail", string(got))

	_, err = r.Secret("")
	assert.Error(t, err)
}

func TestSecret_FromTerminal(t *testing.T) {
	origRead, origIsTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origIsTerm })

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("hidden"), nil }

	var out bytes.Buffer
	r := NewReader(pipeWith(t, ""), &out)
	got, err := r.Secret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hidden", string(got))
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("tty gone") }
	_, err = r.Secret("Password: ")
	assert.EqualError(t, err, "tty gone")
}

func TestConfirmed(t *testing.T) {
	r := NewReader(pipeWith(t, "abc\nabc\nabc\nabd\n"), &bytes.Buffer{})

	got, err := r.Confirmed("a: ", "b: ")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	_, err = r.Confirmed("a: ", "b: ")
	assert.ErrorIs(t, err, ErrMismatch)
}

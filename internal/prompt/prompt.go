// Package prompt reads secrets from the operator's terminal.
package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bailbridge/internal/common"
	"golang.org/x/term"
)

// ErrMismatch is returned when the confirmation differs from the first entry.
var ErrMismatch = errors.New("entries do not match")

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Reader prompts on w and reads secrets from in. When in is a terminal the
// input is not echoed; otherwise one line per secret is read, which lets
// scripts pipe a value in.
type Reader struct {
	in  *os.File
	w   io.Writer
	buf *bufio.Reader
}

func NewReader(in *os.File, w io.Writer) *Reader {
	return &Reader{in: in, w: w, buf: bufio.NewReader(in)}
}

// Secret prints prompt and reads one secret. The returned slice should be
// wiped by the caller when no longer needed.
func (r *Reader) Secret(prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(r.w, prompt); err != nil {
		return nil, err
	}

	fd := int(r.in.Fd())
	if isTerminal(fd) {
		pw, err := readPassword(fd)
		fmt.Fprintln(r.w)
		return pw, err
	}

	line, err := r.buf.ReadBytes('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return nil, err
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// Confirmed reads a secret twice and fails with ErrMismatch when the two
// entries differ. Only the first slice is returned; the second is wiped.
func (r *Reader) Confirmed(prompt, confirm string) ([]byte, error) {
	first, err := r.Secret(prompt)
	if err != nil {
		return nil, err
	}
	second, err := r.Secret(confirm)
	if err != nil {
		common.WipeByteArray(first)
		return nil, err
	}
	defer common.WipeByteArray(second)

	if !bytes.Equal(first, second) {
		common.WipeByteArray(first)
		return nil, ErrMismatch
	}
	return first, nil
}

// Package prompt reads a single answer from the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineReader writes a prompt and reads one line of input
type LineReader struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a LineReader reading from in and prompting on out
func New(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{in: bufio.NewReader(in), out: out}
}

// Prompt writes text and blocks until a line is available.
// The line terminator is removed; everything else is returned as typed.
// A closed input with nothing typed returns io.EOF.
func (r *LineReader) Prompt(text string) (string, error) {
	if _, err := fmt.Fprint(r.out, text); err != nil {
		return "", err
	}

	line, err := r.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

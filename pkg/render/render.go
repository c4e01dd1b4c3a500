// Package render prints the traceback of a captured failure.
package render

import (
	"bytes"
	"fmt"
	"io"
)

// Printer writes the panic header followed by the goroutine trace
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Render prints kind, value and stack in the layout the Go runtime uses for panics
func (p *Printer) Render(kind string, value interface{}, stack []byte) error {
	if _, err := fmt.Fprintf(p.w, "panic: %s [%s]\n", Message(value), kind); err != nil {
		return err
	}
	if len(stack) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(p.w, "\n%s", stack); err != nil {
		return err
	}
	if !bytes.HasSuffix(stack, []byte("\n")) {
		_, err := io.WriteString(p.w, "\n")
		return err
	}
	return nil
}

// Summary writes one line per failure, for traces that were already shown
type Summary struct {
	w io.Writer
}

// NewSummary creates a Summary writing to w
func NewSummary(w io.Writer) *Summary {
	return &Summary{w: w}
}

// Render prints "tracestack: <kind>: <message>"
func (s *Summary) Render(kind string, value interface{}, _ []byte) error {
	_, err := fmt.Fprintf(s.w, "tracestack: %s: %s\n", kind, Message(value))
	return err
}

// Message returns the text a panic value would print as
func Message(v interface{}) string {
	switch m := v.(type) {
	case nil:
		return ""
	case error:
		return m.Error()
	case fmt.Stringer:
		return m.String()
	case string:
		return m
	default:
		return fmt.Sprint(m)
	}
}

// Package browser opens search URLs in the user's browser.
package browser

import (
	"io"

	"github.com/pkg/browser"
)

// Opener opens URLs with the platform's default browser
type Opener struct{}

// New creates an Opener.
// Output of the launched helper (xdg-open, open, rundll32) is discarded so it
// does not interleave with the traceback.
func New() *Opener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Opener{}
}

// Open launches the browser on url
func (o *Opener) Open(url string) error {
	return browser.OpenURL(url)
}

// Printer writes the URL instead of opening it, for headless sessions
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Open writes url followed by a newline
func (p *Printer) Open(url string) error {
	_, err := io.WriteString(p.w, url+"\n")
	return err
}

package handler

import (
	"log/slog"
)

// Config is the user-facing option surface of a handler
type Config struct {
	// Skip bypasses the prompt and always opens the search.
	Skip bool `yaml:"skip" mapstructure:"skip" env:"TRACESTACK_SKIP,default=false"`
	// Engine is one of "default", "google" or "stackoverflow".
	Engine string `yaml:"engine" mapstructure:"engine" env:"TRACESTACK_ENGINE,default=default"`
	// Language is the tag added to every query.
	Language string `yaml:"language" mapstructure:"language" env:"TRACESTACK_LANGUAGE,default=go"`
}

// Renderer prints the traceback of a failure
type Renderer interface {
	Render(kind string, value interface{}, stack []byte) error
}

// Prompter shows text and returns the line the user typed
type Prompter interface {
	Prompt(text string) (string, error)
}

// Opener opens a URL in a browser
type Opener interface {
	Open(url string) error
}

// CurrentFunc reports the failure currently being unwound, if any
type CurrentFunc func() (Descriptor, bool)

// RendererFunc adapts a function to Renderer
type RendererFunc func(kind string, value interface{}, stack []byte) error

func (f RendererFunc) Render(kind string, value interface{}, stack []byte) error {
	return f(kind, value, stack)
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(text string) (string, error)

func (f PrompterFunc) Prompt(text string) (string, error) { return f(text) }

// OpenerFunc adapts a function to Opener
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// Option configures a Handler's collaborators
type Option func(*Handler)

// WithRenderer sets the traceback renderer.
func WithRenderer(r Renderer) Option {
	return func(h *Handler) { h.renderer = r }
}

// WithPrompter sets the line-input prompt.
func WithPrompter(p Prompter) Option {
	return func(h *Handler) { h.prompter = p }
}

// WithOpener sets the browser opener.
func WithOpener(o Opener) Option {
	return func(h *Handler) { h.opener = o }
}

// WithCurrent sets the source used by HandleCurrent.
func WithCurrent(f CurrentFunc) Option {
	return func(h *Handler) { h.current = f }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// Recovered returns a CurrentFunc reporting v, the value returned by recover().
// It reports nothing when v is nil.
func Recovered(v interface{}) CurrentFunc {
	if v == nil {
		return noCurrent
	}
	d := Capture(v, 1)
	return func() (Descriptor, bool) { return d, true }
}

func noCurrent() (Descriptor, bool) { return Descriptor{}, false }

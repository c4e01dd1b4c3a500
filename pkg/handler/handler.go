// Package handler runs one handling cycle for an uncaught failure: print the
// traceback, build a search query, ask the user and open the search.
package handler

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/computerscienceiscool/tracestack/pkg/browser"
	"github.com/computerscienceiscool/tracestack/pkg/engine"
	errs "github.com/computerscienceiscool/tracestack/pkg/errors"
	"github.com/computerscienceiscool/tracestack/pkg/logger"
	"github.com/computerscienceiscool/tracestack/pkg/prompt"
	"github.com/computerscienceiscool/tracestack/pkg/render"
	"github.com/google/uuid"
)

// promptFormat is shown before reading the user's answer
const promptFormat = "Type s to search this error message on %s: "

// Handler searches the web for uncaught failures.
// The engine is bound at construction and never replaced.
type Handler struct {
	skip     bool
	engine   engine.Engine
	renderer Renderer
	prompter Prompter
	opener   Opener
	current  CurrentFunc
	logger   *slog.Logger
}

// New creates a Handler from cfg. An unknown engine name fails with a
// *errors.ConfigurationError before any failure can be handled.
func New(cfg Config, opts ...Option) (*Handler, error) {
	name := cfg.Engine
	if name == "" {
		name = engine.Default.String()
	}
	kind, err := engine.ParseKind(name)
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(kind, engine.Options{Language: cfg.Language})
	if err != nil {
		return nil, err
	}

	h := &Handler{
		skip:     cfg.Skip,
		engine:   eng,
		renderer: render.New(os.Stderr),
		prompter: prompt.New(os.Stdin, os.Stderr),
		opener:   browser.New(),
		current:  noCurrent,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Skip reports whether the prompt is bypassed
func (h *Handler) Skip() bool {
	return h.skip
}

// Engine returns the bound search engine
func (h *Handler) Engine() engine.Engine {
	return h.engine
}

// Query formats the search query for d: kind and message joined by one space
func (h *Handler) Query(d Descriptor) string {
	return d.Kind + " " + d.Message()
}

// URL returns the search URL for d
func (h *Handler) URL(d Descriptor) string {
	return h.engine.Search(h.Query(d))
}

// HandleCurrent handles the failure reported by the handler's CurrentFunc.
// It returns errors.ErrNoActiveError when nothing is being unwound.
func (h *Handler) HandleCurrent() error {
	d, ok := h.current()
	if !ok {
		return errs.ErrNoActiveError
	}
	return h.Handle(d)
}

// Handle runs one handling cycle for d.
// Failures of the renderer, prompter or opener are returned as they are.
func (h *Handler) Handle(d Descriptor) error {
	log := h.logger.With("cycle", uuid.NewString(), "kind", d.Kind)

	if err := h.renderer.Render(d.Kind, d.Value, d.Stack); err != nil {
		return err
	}
	log.Debug("traceback printed")

	url := h.URL(d)
	log.Debug("query formatted", "url", url)

	if !h.skip {
		answer, err := h.prompter.Prompt(fmt.Sprintf(promptFormat, h.engine.Name()))
		if err != nil {
			return err
		}
		if !accepted(answer) {
			log.Debug("search suppressed", "answer", answer)
			return nil
		}
	}

	if err := h.opener.Open(url); err != nil {
		return err
	}
	log.Debug("search dispatched", "engine", h.engine.Name())
	return nil
}

func accepted(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "s")
}

// Package engine turns an error description into a search URL.
//
// Each supported search engine is one variant of a closed set. A variant is
// selected once, by Kind, and never changes afterwards.
package engine

import (
	"fmt"

	errs "github.com/computerscienceiscool/tracestack/pkg/errors"
)

// DefaultLanguage is the tag appended to every query
const DefaultLanguage = "go"

// Engine builds search URLs for one search engine
type Engine interface {
	// Search returns the URL that searches for query.
	Search(query string) string

	// Name returns the engine description used in the prompt.
	Name() string
}

// Kind selects an engine variant
type Kind int

const (
	// Default is Google restricted to Stack Overflow questions.
	Default Kind = iota
	// Google is an unrestricted Google web search.
	Google
	// StackOverflow is the Stack Overflow site search.
	StackOverflow
)

var kindNames = []string{"default", "google", "stackoverflow"}

// Names lists the accepted engine names in order
func Names() []string {
	return append([]string(nil), kindNames...)
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps an engine name to its Kind
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, &errs.ConfigurationError{
		Option:  "engine",
		Value:   name,
		Choices: Names(),
		Err:     errs.ErrInvalidEngine,
	}
}

// Options holds engine-specific construction parameters
type Options struct {
	Language string
}

func (o Options) language() string {
	if o.Language == "" {
		return DefaultLanguage
	}
	return o.Language
}

// New builds the engine variant for kind
func New(kind Kind, opts Options) (Engine, error) {
	switch kind {
	case Default:
		return &GoogleEngine{Restricted: true, Language: opts.language()}, nil
	case Google:
		return &GoogleEngine{Restricted: false, Language: opts.language()}, nil
	case StackOverflow:
		return &StackEngine{Language: opts.language()}, nil
	}
	return nil, &errs.ConfigurationError{
		Option:  "engine",
		Value:   kind,
		Choices: Names(),
		Err:     errs.ErrInvalidEngine,
	}
}

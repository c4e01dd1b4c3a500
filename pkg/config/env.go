package config

import (
	"fmt"

	"github.com/computerscienceiscool/tracestack/pkg/handler"
	env "github.com/netflix/go-env"
)

// FromEnviron reads the handler options from TRACESTACK_SKIP,
// TRACESTACK_ENGINE and TRACESTACK_LANGUAGE
func FromEnviron() (*handler.Config, error) {
	var cfg handler.Config

	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	return &cfg, nil
}
